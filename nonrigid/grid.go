package nonrigid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Channel indices of the eight scalars stored at every grid node.
const (
	ChannelF = iota
	ChannelFx
	ChannelFy
	ChannelFz
	ChannelFxy
	ChannelFxz
	ChannelFyz
	ChannelFxyz
	numChannels
)

// numCoefficients is the number of tricubic terms per voxel.
const numCoefficients = 64

// NodeValues holds the function value and derivatives at one grid node, in
// channel order f, fx, fy, fz, fxy, fxz, fyz, fxyz. Derivatives are taken with
// respect to the local voxel coordinate.
type NodeValues [numChannels]float64

// VoxelRef locates a point inside the grid: the integer voxel index and the
// local coordinate in [0,1]^3 within that voxel.
type VoxelRef struct {
	Index [3]int
	Local r3.Vec
}

// Triplet is one non-zero entry of a sparse matrix.
type Triplet struct {
	Row   int
	Col   int
	Value float64
}

// TranslationGrid represents one scalar component of the translation field as a
// regular lattice of tricubic Hermite nodes. Each of the eight scalars of every
// node is an unknown of the least squares problem with a global index.
type TranslationGrid struct {
	origin       r3.Vec
	nx, ny, nz   int // voxel counts
	voxelSize    float64
	firstUnknown int
	vals         []float64
	unknowns     []int
}

// NewTranslationGrid allocates a zero-valued grid with nx*ny*nz voxels whose
// unknowns are numbered sequentially from firstUnknown, x outer, z inner.
func NewTranslationGrid(origin r3.Vec, nx, ny, nz int, voxelSize float64, firstUnknown int) (*TranslationGrid, error) {
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, fmt.Errorf("voxel counts must be positive, got %d x %d x %d: %w", nx, ny, nz, ErrInvalidArgument)
	}
	if !(voxelSize > 0) || math.IsInf(voxelSize, 0) {
		return nil, fmt.Errorf("voxel size must be positive and finite, got %v: %w", voxelSize, ErrInvalidArgument)
	}
	if firstUnknown < 0 {
		return nil, fmt.Errorf("first unknown must be non-negative, got %d: %w", firstUnknown, ErrInvalidArgument)
	}
	if !finiteVec(origin) {
		return nil, fmt.Errorf("grid origin %v is not finite: %w", origin, ErrInvalidArgument)
	}

	n := (nx + 1) * (ny + 1) * (nz + 1) * numChannels
	g := &TranslationGrid{
		origin:       origin,
		nx:           nx,
		ny:           ny,
		nz:           nz,
		voxelSize:    voxelSize,
		firstUnknown: firstUnknown,
		vals:         make([]float64, n),
		unknowns:     make([]int, n),
	}
	for i := range g.unknowns {
		g.unknowns[i] = firstUnknown + i
	}
	return g, nil
}

// Origin returns the lower corner of the grid.
func (g *TranslationGrid) Origin() r3.Vec { return g.origin }

// VoxelCounts returns the number of voxels along x, y and z.
func (g *TranslationGrid) VoxelCounts() (nx, ny, nz int) { return g.nx, g.ny, g.nz }

// VoxelSize returns the edge length of a voxel.
func (g *TranslationGrid) VoxelSize() float64 { return g.voxelSize }

// NumGridVals returns the number of scalars (and unknowns) held by the grid.
func (g *TranslationGrid) NumGridVals() int { return len(g.vals) }

// MinUnknown returns the smallest global unknown index of the grid.
func (g *TranslationGrid) MinUnknown() int { return g.firstUnknown }

// MaxUnknown returns the largest global unknown index of the grid.
func (g *TranslationGrid) MaxUnknown() int { return g.firstUnknown + len(g.vals) - 1 }

// UpperBound returns the upper corner of the grid.
func (g *TranslationGrid) UpperBound() r3.Vec {
	return r3.Add(g.origin, r3.Vec{
		X: float64(g.nx) * g.voxelSize,
		Y: float64(g.ny) * g.voxelSize,
		Z: float64(g.nz) * g.voxelSize,
	})
}

// SameGeometry reports whether both grids cover the same lattice.
func (g *TranslationGrid) SameGeometry(o *TranslationGrid) bool {
	return g.origin == o.origin && g.nx == o.nx && g.ny == o.ny && g.nz == o.nz && g.voxelSize == o.voxelSize
}

func (g *TranslationGrid) nodeOffset(ix, iy, iz int) int {
	return ((ix*(g.ny+1)+iy)*(g.nz+1) + iz) * numChannels
}

func (g *TranslationGrid) checkNode(ix, iy, iz int) error {
	if ix < 0 || ix > g.nx || iy < 0 || iy > g.ny || iz < 0 || iz > g.nz {
		return fmt.Errorf("node (%d, %d, %d) outside lattice %d x %d x %d: %w",
			ix, iy, iz, g.nx+1, g.ny+1, g.nz+1, ErrInvalidArgument)
	}
	return nil
}

// NodeValues returns the eight scalars stored at a node.
func (g *TranslationGrid) NodeValues(ix, iy, iz int) (NodeValues, error) {
	var v NodeValues
	if err := g.checkNode(ix, iy, iz); err != nil {
		return v, err
	}
	copy(v[:], g.vals[g.nodeOffset(ix, iy, iz):])
	return v, nil
}

// SetNodeValues overwrites the eight scalars stored at a node.
func (g *TranslationGrid) SetNodeValues(ix, iy, iz int, v NodeValues) error {
	if err := g.checkNode(ix, iy, iz); err != nil {
		return err
	}
	copy(g.vals[g.nodeOffset(ix, iy, iz):], v[:])
	return nil
}

// Unknowns returns the global unknown indices of the eight scalars at a node.
func (g *TranslationGrid) Unknowns(ix, iy, iz int) ([numChannels]int, error) {
	var u [numChannels]int
	if err := g.checkNode(ix, iy, iz); err != nil {
		return u, err
	}
	copy(u[:], g.unknowns[g.nodeOffset(ix, iy, iz):])
	return u, nil
}

// LocateVoxel returns the voxel index and local coordinate of every point.
// A coordinate lying exactly on the upper grid limit belongs to the last voxel.
func (g *TranslationGrid) LocateVoxel(points []r3.Vec) ([]VoxelRef, error) {
	refs := make([]VoxelRef, len(points))
	err := forEachChunk(len(points), func(start, end int) error {
		for i := start; i < end; i++ {
			ref, err := g.locate(points[i])
			if err != nil {
				return fmt.Errorf("point %d: %w", i, err)
			}
			refs[i] = ref
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return refs, nil
}

func (g *TranslationGrid) locate(p r3.Vec) (VoxelRef, error) {
	rel := [3]float64{p.X - g.origin.X, p.Y - g.origin.Y, p.Z - g.origin.Z}
	counts := [3]int{g.nx, g.ny, g.nz}

	var ref VoxelRef
	var local [3]float64
	for axis := 0; axis < 3; axis++ {
		s := rel[axis] / g.voxelSize
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return ref, fmt.Errorf("coordinate %v is not finite: %w", p, ErrOutOfDomain)
		}
		idx := int(math.Floor(s))
		if s == float64(counts[axis]) {
			idx = counts[axis] - 1
		}
		if idx < 0 || idx >= counts[axis] {
			return ref, fmt.Errorf("point %v outside grid [%v, %v]: %w",
				p, g.origin, g.UpperBound(), ErrOutOfDomain)
		}
		ref.Index[axis] = idx
		local[axis] = (rel[axis] - float64(idx)*g.voxelSize) / g.voxelSize
	}
	ref.Local = r3.Vec{X: local[0], Y: local[1], Z: local[2]}
	return ref, nil
}

// MonomialPowers returns x^i y^j z^k for i, j, k in 0..3, i outer and k inner.
func MonomialPowers(local r3.Vec) [numCoefficients]float64 {
	var px, py, pz [4]float64
	px[0], py[0], pz[0] = 1, 1, 1
	for e := 1; e < 4; e++ {
		px[e] = px[e-1] * local.X
		py[e] = py[e-1] * local.Y
		pz[e] = pz[e-1] * local.Z
	}

	var out [numCoefficients]float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				out[16*i+4*j+k] = px[i] * py[j] * pz[k]
			}
		}
	}
	return out
}

// Coefficients maps monomial powers to the weights of the 64 node scalars of
// the enclosing voxel.
func Coefficients(powers [numCoefficients]float64) [numCoefficients]float64 {
	var out [numCoefficients]float64
	for i, p := range powers {
		if p == 0 {
			continue
		}
		row := &tricubicInverse[i]
		for j := range out {
			out[j] += p * row[j]
		}
	}
	return out
}

// cornerOffsets returns the node scalar positions of a voxel in gather order
// (8*channel + corner).
func (g *TranslationGrid) cornerOffsets(idx [3]int) [numCoefficients]int {
	var out [numCoefficients]int
	for c := 0; c < 8; c++ {
		base := g.nodeOffset(idx[0]+c&1, idx[1]+(c>>1)&1, idx[2]+(c>>2)&1)
		for ch := 0; ch < numChannels; ch++ {
			out[8*ch+c] = base + ch
		}
	}
	return out
}

// EvaluateField returns the field value at every point.
func (g *TranslationGrid) EvaluateField(points []r3.Vec) ([]float64, error) {
	refs, err := g.LocateVoxel(points)
	if err != nil {
		return nil, err
	}
	powers := make([][numCoefficients]float64, len(refs))
	for i, ref := range refs {
		powers[i] = MonomialPowers(ref.Local)
	}
	return g.EvaluateFieldCached(refs, powers)
}

// EvaluateFieldCached evaluates the field from precomputed voxel references and
// monomial powers.
func (g *TranslationGrid) EvaluateFieldCached(refs []VoxelRef, powers [][numCoefficients]float64) ([]float64, error) {
	if len(refs) != len(powers) {
		return nil, fmt.Errorf("%d voxel references but %d power rows: %w", len(refs), len(powers), ErrInvalidArgument)
	}
	out := make([]float64, len(refs))
	err := forEachChunk(len(refs), func(start, end int) error {
		for i := start; i < end; i++ {
			coeffs := Coefficients(powers[i])
			offsets := g.cornerOffsets(refs[i].Index)
			var sum float64
			for j, c := range coeffs {
				sum += c * g.vals[offsets[j]]
			}
			out[i] = sum
		}
		return nil
	})
	return out, err
}

// BuildJacobian returns the partial derivatives of the field at every point
// with respect to the grid unknowns: 64 triplets per point, row equal to the
// point's position in the input.
func (g *TranslationGrid) BuildJacobian(points []r3.Vec) ([]Triplet, error) {
	refs, err := g.LocateVoxel(points)
	if err != nil {
		return nil, err
	}
	powers := make([][numCoefficients]float64, len(refs))
	for i, ref := range refs {
		powers[i] = MonomialPowers(ref.Local)
	}
	return g.BuildJacobianCached(refs, powers)
}

// BuildJacobianCached is BuildJacobian on precomputed voxel references and powers.
func (g *TranslationGrid) BuildJacobianCached(refs []VoxelRef, powers [][numCoefficients]float64) ([]Triplet, error) {
	if len(refs) != len(powers) {
		return nil, fmt.Errorf("%d voxel references but %d power rows: %w", len(refs), len(powers), ErrInvalidArgument)
	}
	out := make([]Triplet, len(refs)*numCoefficients)
	err := forEachChunk(len(refs), func(start, end int) error {
		for i := start; i < end; i++ {
			coeffs := Coefficients(powers[i])
			offsets := g.cornerOffsets(refs[i].Index)
			row := out[i*numCoefficients : (i+1)*numCoefficients]
			for j, c := range coeffs {
				row[j] = Triplet{Row: i, Col: g.unknowns[offsets[j]], Value: c}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateFromSolution copies the solution vector entries of the grid's unknowns
// into the node scalars.
func (g *TranslationGrid) UpdateFromSolution(x []float64) error {
	if len(x) <= g.MaxUnknown() {
		return fmt.Errorf("solution has %d entries, grid needs %d: %w", len(x), g.MaxUnknown()+1, ErrInvalidArgument)
	}
	for i, u := range g.unknowns {
		g.vals[i] = x[u]
	}
	return nil
}

func finiteVec(v r3.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}
