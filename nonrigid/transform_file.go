package nonrigid

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// TransformIdentifier starts every transform file.
	TransformIdentifier = "gbpcm"
	// TransformVersion is the only file version understood.
	TransformVersion = 1
	// TransformHeaderSize is the size of the zero padded header in bytes.
	TransformHeaderSize = 1000

	identifierSize = 10

	// maxTransformValues bounds the node scalars of all three grids a
	// transform file may declare.
	maxTransformValues = 1 << 27
	// readChunkValues is the initial capacity of the body buffer.
	readChunkValues = 1 << 16
)

// TransformHeader describes the lattice shared by the three translation grids.
type TransformHeader struct {
	Version   int32
	Origin    r3.Vec
	NumVoxels [3]int32
	VoxelSize float64
}

// rawHeader is the on-disk layout of the header fields, little endian.
type rawHeader struct {
	Identifier [identifierSize]byte
	Version    int32
	Origin     [3]float64
	NumVoxels  [3]int32
	VoxelSize  float64
}

// HeaderFor builds the header describing grid.
func HeaderFor(grid *TranslationGrid) TransformHeader {
	nx, ny, nz := grid.VoxelCounts()
	return TransformHeader{
		Version:   TransformVersion,
		Origin:    grid.Origin(),
		NumVoxels: [3]int32{int32(nx), int32(ny), int32(nz)},
		VoxelSize: grid.VoxelSize(),
	}
}

// WriteTransform writes the header and the node scalars of the three channel
// grids. The grids must share one geometry.
func WriteTransform(w io.Writer, grids [3]*TranslationGrid) error {
	for i, g := range grids {
		if g == nil {
			return fmt.Errorf("writing transform: grid %d missing: %w", i, ErrInvalidArgument)
		}
		if !g.SameGeometry(grids[0]) {
			return fmt.Errorf("writing transform: grid %d geometry differs: %w", i, ErrInvalidArgument)
		}
	}

	h := HeaderFor(grids[0])
	raw := rawHeader{
		Version:   h.Version,
		Origin:    [3]float64{h.Origin.X, h.Origin.Y, h.Origin.Z},
		NumVoxels: h.NumVoxels,
		VoxelSize: h.VoxelSize,
	}
	copy(raw.Identifier[:], TransformIdentifier)

	var header bytes.Buffer
	header.Grow(TransformHeaderSize)
	if err := binary.Write(&header, binary.LittleEndian, raw); err != nil {
		return fmt.Errorf("encoding transform header: %v: %w", err, ErrIO)
	}
	header.Write(make([]byte, TransformHeaderSize-header.Len()))

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(header.Bytes()); err != nil {
		return fmt.Errorf("writing transform header: %v: %w", err, ErrIO)
	}

	nx, ny, nz := grids[0].VoxelCounts()
	var buf [8]byte
	for ix := 0; ix <= nx; ix++ {
		for iy := 0; iy <= ny; iy++ {
			for iz := 0; iz <= nz; iz++ {
				for _, g := range grids {
					off := g.nodeOffset(ix, iy, iz)
					for ch := 0; ch < numChannels; ch++ {
						binary.LittleEndian.PutUint64(buf[:], math.Float64bits(g.vals[off+ch]))
						if _, err := bw.Write(buf[:]); err != nil {
							return fmt.Errorf("writing transform body: %v: %w", err, ErrIO)
						}
					}
				}
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing transform body: %v: %w", err, ErrIO)
	}
	return nil
}

// ReadTransformHeader reads and validates the 1000 byte header.
func ReadTransformHeader(r io.Reader) (TransformHeader, error) {
	block := make([]byte, TransformHeaderSize)
	if _, err := io.ReadFull(r, block); err != nil {
		return TransformHeader{}, fmt.Errorf("reading transform header: %v: %w", err, ErrIO)
	}

	var raw rawHeader
	if err := binary.Read(bytes.NewReader(block), binary.LittleEndian, &raw); err != nil {
		return TransformHeader{}, fmt.Errorf("decoding transform header: %v: %w", err, ErrIO)
	}

	id := string(bytes.TrimRight(raw.Identifier[:], "\x00"))
	if id != TransformIdentifier {
		return TransformHeader{}, fmt.Errorf("unknown transform identifier %q: %w", id, ErrIO)
	}
	if raw.Version != TransformVersion {
		return TransformHeader{}, fmt.Errorf("unsupported transform version %d: %w", raw.Version, ErrIO)
	}
	if !(raw.VoxelSize > 0) || math.IsInf(raw.VoxelSize, 0) {
		return TransformHeader{}, fmt.Errorf("invalid voxel size %v: %w", raw.VoxelSize, ErrIO)
	}

	h := TransformHeader{
		Version:   raw.Version,
		Origin:    r3.Vec{X: raw.Origin[0], Y: raw.Origin[1], Z: raw.Origin[2]},
		NumVoxels: raw.NumVoxels,
		VoxelSize: raw.VoxelSize,
	}
	if _, err := h.bodyValues(); err != nil {
		return TransformHeader{}, err
	}
	return h, nil
}

// bodyValues returns the number of float64 scalars following the header,
// rejecting lattices whose size overflows or exceeds maxTransformValues.
func (h TransformHeader) bodyValues() (int, error) {
	n := int64(numChannels * 3)
	for axis, c := range h.NumVoxels {
		if c < 1 {
			return 0, fmt.Errorf("invalid voxel count %d on axis %d: %w", c, axis, ErrIO)
		}
		nodes := int64(c) + 1
		if n > maxTransformValues/nodes {
			return 0, fmt.Errorf("transform lattice %d x %d x %d is too large: %w",
				h.NumVoxels[0], h.NumVoxels[1], h.NumVoxels[2], ErrIO)
		}
		n *= nodes
	}
	return int(n), nil
}

// ReadTransform reads a transform file and rebuilds the three channel grids with
// unknowns numbered as InitializeTranslationGrids does.
func ReadTransform(r io.Reader) ([3]*TranslationGrid, TransformHeader, error) {
	var grids [3]*TranslationGrid
	br := bufio.NewReader(r)
	h, err := ReadTransformHeader(br)
	if err != nil {
		return grids, h, err
	}

	total, err := h.bodyValues()
	if err != nil {
		return grids, h, err
	}

	// The body is read before any grid is allocated so a truncated file
	// fails after consuming only what it holds.
	body := make([]float64, 0, min(total, readChunkValues))
	var buf [8]byte
	for len(body) < total {
		if _, err := io.ReadFull(br, buf[:]); err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return grids, h, fmt.Errorf("reading transform body: %v: %w", err, ErrIO)
		}
		body = append(body, math.Float64frombits(binary.LittleEndian.Uint64(buf[:])))
	}

	nx, ny, nz := int(h.NumVoxels[0]), int(h.NumVoxels[1]), int(h.NumVoxels[2])
	first := 0
	for i := range grids {
		g, err := NewTranslationGrid(h.Origin, nx, ny, nz, h.VoxelSize, first)
		if err != nil {
			return grids, h, fmt.Errorf("rebuilding grid %d: %v: %w", i, err, ErrIO)
		}
		grids[i] = g
		first += g.NumGridVals()
	}

	// Nodes are stored in lattice order, each node holding the scalars of
	// the x, y and z grids in turn.
	numNodes := total / (3 * numChannels)
	for node := 0; node < numNodes; node++ {
		for gi, g := range grids {
			src := body[(node*3+gi)*numChannels:]
			copy(g.vals[node*numChannels:(node+1)*numChannels], src[:numChannels])
		}
	}
	return grids, h, nil
}
