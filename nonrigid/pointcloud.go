package nonrigid

import (
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"gonum.org/v1/gonum/spatial/r3"
)

// GridLimits is an explicit bounding box for the translation grids. The zero
// value requests limits derived from the cloud.
type GridLimits struct {
	Min r3.Vec
	Max r3.Vec
}

// IsZero reports whether all six limits are zero.
func (l GridLimits) IsZero() bool {
	return l.Min == (r3.Vec{}) && l.Max == (r3.Vec{})
}

// voxelCountSnap absorbs rounding error when a grid span is divided by
// the voxel size.
const voxelCountSnap = 1e-9

// PointCloud is a set of 3-D points with optional normals and correspondence
// ids, plus the translation field that deforms it.
type PointCloud struct {
	original []r3.Vec
	current  []r3.Vec
	normals  []r3.Vec
	ids      []float64

	grids [3]*TranslationGrid

	// Voxel lookup of the original coordinates, valid after InitMatricesForUpdate.
	refs   []VoxelRef
	powers [][numCoefficients]float64
}

// NewPointCloud creates a cloud whose current coordinates equal its original ones.
func NewPointCloud(coords []r3.Vec) (*PointCloud, error) {
	if len(coords) == 0 {
		return nil, fmt.Errorf("creating point cloud: no points: %w", ErrInvalidArgument)
	}
	original := make([]r3.Vec, len(coords))
	copy(original, coords)
	current := make([]r3.Vec, len(coords))
	copy(current, coords)
	return &PointCloud{original: original, current: current}, nil
}

// SetNormals attaches one normal per point.
func (pc *PointCloud) SetNormals(normals []r3.Vec) error {
	if len(normals) != len(pc.original) {
		return fmt.Errorf("setting normals: %d normals for %d points: %w", len(normals), len(pc.original), ErrInvalidArgument)
	}
	pc.normals = make([]r3.Vec, len(normals))
	copy(pc.normals, normals)
	return nil
}

// SetCorrespondenceIDs attaches one correspondence id per point.
func (pc *PointCloud) SetCorrespondenceIDs(ids []float64) error {
	if len(ids) != len(pc.original) {
		return fmt.Errorf("setting correspondence ids: %d ids for %d points: %w", len(ids), len(pc.original), ErrInvalidArgument)
	}
	pc.ids = make([]float64, len(ids))
	copy(pc.ids, ids)
	return nil
}

// NumPoints returns the number of points.
func (pc *PointCloud) NumPoints() int { return len(pc.original) }

// Original returns the undeformed coordinates. The slice must not be modified.
func (pc *PointCloud) Original() []r3.Vec { return pc.original }

// Current returns the deformed coordinates. The slice must not be modified.
func (pc *PointCloud) Current() []r3.Vec { return pc.current }

// Normals returns the normals, or nil if none were set.
func (pc *PointCloud) Normals() []r3.Vec { return pc.normals }

// CorrespondenceIDs returns the ids, or nil if none were set.
func (pc *PointCloud) CorrespondenceIDs() []float64 { return pc.ids }

// HasNormals reports whether normals are attached.
func (pc *PointCloud) HasNormals() bool { return pc.normals != nil }

// HasCorrespondenceIDs reports whether correspondence ids are attached.
func (pc *PointCloud) HasCorrespondenceIDs() bool { return pc.ids != nil }

// Grids returns the x, y and z translation grids, nil before initialization.
func (pc *PointCloud) Grids() [3]*TranslationGrid { return pc.grids }

// NumUnknowns returns the total number of unknowns of the three grids.
func (pc *PointCloud) NumUnknowns() int {
	if pc.grids[2] == nil {
		return 0
	}
	return pc.grids[2].MaxUnknown() + 1
}

// Bounds returns the component-wise minimum and maximum of the original coordinates.
func (pc *PointCloud) Bounds() (min, max r3.Vec) {
	min = pc.original[0]
	max = pc.original[0]
	for _, p := range pc.original[1:] {
		min = r3.Vec{X: math.Min(min.X, p.X), Y: math.Min(min.Y, p.Y), Z: math.Min(min.Z, p.Z)}
		max = r3.Vec{X: math.Max(max.X, p.X), Y: math.Max(max.Y, p.Y), Z: math.Max(max.Z, p.Z)}
	}
	return min, max
}

// InitializeTranslationGrids creates zero-valued x, y and z grids. With zero
// limits the grid covers the cloud, starting at the floor of its minimum, with
// bufferVoxels extra voxels on every side. Explicit limits are widened by the
// same buffer. Current coordinates are reset to the original ones.
func (pc *PointCloud) InitializeTranslationGrids(voxelSize float64, bufferVoxels int, limits GridLimits) error {
	if !(voxelSize > 0) || math.IsInf(voxelSize, 0) {
		return fmt.Errorf("initializing grids: voxel size must be positive, got %v: %w", voxelSize, ErrInvalidArgument)
	}
	if bufferVoxels < 0 {
		return fmt.Errorf("initializing grids: negative buffer %d: %w", bufferVoxels, ErrInvalidArgument)
	}
	buffer := float64(bufferVoxels) * voxelSize

	var lo, hi [3]float64
	if limits.IsZero() {
		min, max := pc.Bounds()
		mins := [3]float64{min.X, min.Y, min.Z}
		maxs := [3]float64{max.X, max.Y, max.Z}
		for a := 0; a < 3; a++ {
			lo[a] = math.Floor(mins[a]) - buffer
			hi[a] = lo[a] + math.Ceil((maxs[a]-lo[a])/voxelSize)*voxelSize + buffer
		}
	} else {
		mins := [3]float64{limits.Min.X, limits.Min.Y, limits.Min.Z}
		maxs := [3]float64{limits.Max.X, limits.Max.Y, limits.Max.Z}
		for a := 0; a < 3; a++ {
			if !(maxs[a] > mins[a]) {
				return fmt.Errorf("initializing grids: empty limits on axis %d [%v, %v]: %w", a, mins[a], maxs[a], ErrInvalidArgument)
			}
			lo[a] = mins[a] - buffer
			hi[a] = maxs[a] + buffer
		}
	}

	var counts [3]int
	for a := 0; a < 3; a++ {
		// Truncate, snapping spans within voxelCountSnap of a whole count
		// up to it.
		counts[a] = int(math.Floor((hi[a]-lo[a])/voxelSize + voxelCountSnap))
		if counts[a] < 1 {
			counts[a] = 1
		}
	}

	origin := r3.Vec{X: lo[0], Y: lo[1], Z: lo[2]}
	first := 0
	var grids [3]*TranslationGrid
	for i := range grids {
		g, err := NewTranslationGrid(origin, counts[0], counts[1], counts[2], voxelSize, first)
		if err != nil {
			return fmt.Errorf("initializing grid %d: %w", i, err)
		}
		grids[i] = g
		first += g.NumGridVals()
	}

	pc.grids = grids
	pc.refs = nil
	pc.powers = nil
	copy(pc.current, pc.original)
	log.Printf("Translation grids: origin %v, %d x %d x %d voxels of %g, %d unknowns",
		origin, counts[0], counts[1], counts[2], voxelSize, pc.NumUnknowns())
	return nil
}

// InitMatricesForUpdate locates every original coordinate in the grids and
// caches the monomial powers used by UpdateCurrent.
func (pc *PointCloud) InitMatricesForUpdate() error {
	if pc.grids[0] == nil {
		return fmt.Errorf("caching voxel lookup: grids not initialized: %w", ErrInvalidArgument)
	}
	refs, err := pc.grids[0].LocateVoxel(pc.original)
	if err != nil {
		return fmt.Errorf("caching voxel lookup: %w", err)
	}
	powers := make([][numCoefficients]float64, len(refs))
	for i, ref := range refs {
		powers[i] = MonomialPowers(ref.Local)
	}
	pc.refs = refs
	pc.powers = powers
	return nil
}

// UpdateCurrent sets current = original + field(original) on every axis. The
// voxel lookup is cached on first use.
func (pc *PointCloud) UpdateCurrent() error {
	if pc.refs == nil {
		if err := pc.InitMatricesForUpdate(); err != nil {
			return fmt.Errorf("updating coordinates: %w", err)
		}
	}
	var shift [3][]float64
	for axis, g := range pc.grids {
		v, err := g.EvaluateFieldCached(pc.refs, pc.powers)
		if err != nil {
			return fmt.Errorf("updating coordinates on axis %d: %w", axis, err)
		}
		shift[axis] = v
	}
	for i, p := range pc.original {
		pc.current[i] = r3.Vec{X: p.X + shift[0][i], Y: p.Y + shift[1][i], Z: p.Z + shift[2][i]}
	}
	return nil
}

// ExportTranslationGrids writes the grids in transform file format.
func (pc *PointCloud) ExportTranslationGrids(w io.Writer) error {
	if pc.grids[0] == nil {
		return fmt.Errorf("exporting grids: grids not initialized: %w", ErrInvalidArgument)
	}
	return WriteTransform(w, pc.grids)
}

// ImportTranslationGrids replaces the grids with the ones read from r. The
// voxel lookup is rebuilt on the next UpdateCurrent.
func (pc *PointCloud) ImportTranslationGrids(r io.Reader) error {
	grids, _, err := ReadTransform(r)
	if err != nil {
		return err
	}
	pc.grids = grids
	pc.refs = nil
	pc.powers = nil
	return nil
}

// SaveTransform writes the grids to path.
func (pc *PointCloud) SaveTransform(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating transform file: %v: %w", err, ErrIO)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing transform file: %v: %w", cerr, ErrIO)
		}
	}()
	return pc.ExportTranslationGrids(f)
}

// LoadTransform reads the grids from path.
func (pc *PointCloud) LoadTransform(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening transform file: %v: %w", err, ErrIO)
	}
	defer f.Close()
	if err := pc.ImportTranslationGrids(f); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}
