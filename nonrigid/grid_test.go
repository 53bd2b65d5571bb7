package nonrigid

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// cubicField is reproduced exactly by the tricubic basis.
func cubicField(p r3.Vec) float64 {
	return p.X*p.Y*p.Y + p.Z*p.Z*p.Z - 2*p.X*p.Z
}

func cubicNode(x, y, z float64) NodeValues {
	return NodeValues{
		ChannelF:    x*y*y + z*z*z - 2*x*z,
		ChannelFx:   y*y - 2*z,
		ChannelFy:   2 * x * y,
		ChannelFz:   3*z*z - 2*x,
		ChannelFxy:  2 * y,
		ChannelFxz:  -2,
		ChannelFyz:  0,
		ChannelFxyz: 0,
	}
}

func newUnitGrid(t *testing.T, n int) *TranslationGrid {
	t.Helper()
	g, err := NewTranslationGrid(r3.Vec{}, n, n, n, 1, 0)
	require.NoError(t, err)
	return g
}

func fillGrid(t *testing.T, g *TranslationGrid, f func(ix, iy, iz int) NodeValues) {
	t.Helper()
	nx, ny, nz := g.VoxelCounts()
	for ix := 0; ix <= nx; ix++ {
		for iy := 0; iy <= ny; iy++ {
			for iz := 0; iz <= nz; iz++ {
				require.NoError(t, g.SetNodeValues(ix, iy, iz, f(ix, iy, iz)))
			}
		}
	}
}

func TestNewTranslationGrid(t *testing.T) {
	g, err := NewTranslationGrid(r3.Vec{X: -1, Y: 2, Z: 0.5}, 3, 2, 1, 0.5, 100)
	require.NoError(t, err)

	assert.Equal(t, 4*3*2*8, g.NumGridVals())
	assert.Equal(t, 100, g.MinUnknown())
	assert.Equal(t, 100+4*3*2*8-1, g.MaxUnknown())
	assert.Equal(t, r3.Vec{X: 0.5, Y: 3, Z: 1}, g.UpperBound())

	u, err := g.Unknowns(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, [8]int{100, 101, 102, 103, 104, 105, 106, 107}, u)

	// z varies fastest, then y, then x
	u, err = g.Unknowns(0, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 108, u[0])
	u, err = g.Unknowns(0, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 100+2*8, u[0])
	u, err = g.Unknowns(1, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 100+3*2*8, u[0])

	_, err = g.Unknowns(4, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNewTranslationGrid_InvalidArguments(t *testing.T) {
	tests := []struct {
		name      string
		nx        int
		voxelSize float64
		first     int
	}{
		{"zero voxels", 0, 1, 0},
		{"zero voxel size", 1, 0, 0},
		{"negative voxel size", 1, -1, 0},
		{"nan voxel size", 1, math.NaN(), 0},
		{"infinite voxel size", 1, math.Inf(1), 0},
		{"negative first unknown", 1, 1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTranslationGrid(r3.Vec{}, tt.nx, 1, 1, tt.voxelSize, tt.first)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestMonomialPowers(t *testing.T) {
	p := MonomialPowers(r3.Vec{X: 2, Y: 3, Z: 5})
	assert.Equal(t, 1.0, p[0])
	assert.Equal(t, 5.0, p[1])
	assert.Equal(t, 3.0, p[4])
	assert.Equal(t, 2.0, p[16])
	assert.Equal(t, 8.0*27*125, p[63])
	assert.Equal(t, 4.0*3*25, p[16*2+4*1+2])
}

func TestCoefficients_PartitionOfUnity(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 20; i++ {
		local := r3.Vec{X: rng.Float64(), Y: rng.Float64(), Z: rng.Float64()}
		c := Coefficients(MonomialPowers(local))
		var sum float64
		for corner := 0; corner < 8; corner++ {
			sum += c[8*ChannelF+corner]
		}
		assert.InDelta(t, 1, sum, 1e-12)
	}
}

func TestCoefficients_CornerInterpolation(t *testing.T) {
	// At a corner only that corner's function value contributes.
	c := Coefficients(MonomialPowers(r3.Vec{X: 1, Y: 0, Z: 1}))
	for j, v := range c {
		if j == 8*ChannelF+5 {
			assert.InDelta(t, 1, v, 1e-12)
		} else {
			assert.InDelta(t, 0, v, 1e-12, "coefficient %d", j)
		}
	}
}

func TestEvaluateField_ReproducesCubic(t *testing.T) {
	g := newUnitGrid(t, 2)
	fillGrid(t, g, func(ix, iy, iz int) NodeValues {
		return cubicNode(float64(ix), float64(iy), float64(iz))
	})

	rng := rand.New(rand.NewSource(5))
	points := make([]r3.Vec, 300)
	for i := range points {
		points[i] = r3.Vec{X: 2 * rng.Float64(), Y: 2 * rng.Float64(), Z: 2 * rng.Float64()}
	}
	got, err := g.EvaluateField(points)
	require.NoError(t, err)
	for i, p := range points {
		assert.InDelta(t, cubicField(p), got[i], 1e-10, "point %v", p)
	}
}

func TestEvaluateField_ContinuousAcrossVoxelFaces(t *testing.T) {
	g := newUnitGrid(t, 2)
	rng := rand.New(rand.NewSource(9))
	fillGrid(t, g, func(int, int, int) NodeValues {
		var v NodeValues
		for i := range v {
			v[i] = rng.NormFloat64()
		}
		return v
	})

	eps := 1e-9
	for i := 0; i < 50; i++ {
		y, z := 2*rng.Float64(), 2*rng.Float64()
		pts := []r3.Vec{{X: 1 - eps, Y: y, Z: z}, {X: 1, Y: y, Z: z}, {X: 1 + eps, Y: y, Z: z}}
		v, err := g.EvaluateField(pts)
		require.NoError(t, err)
		assert.InDelta(t, v[1], v[0], 1e-6)
		assert.InDelta(t, v[1], v[2], 1e-6)
	}
}

func TestLocateVoxel(t *testing.T) {
	g, err := NewTranslationGrid(r3.Vec{X: -1, Y: -1, Z: -1}, 2, 2, 2, 1, 0)
	require.NoError(t, err)

	refs, err := g.LocateVoxel([]r3.Vec{{X: -1, Y: 0.25, Z: 0.5}, {X: 1, Y: 1, Z: 1}})
	require.NoError(t, err)

	assert.Equal(t, [3]int{0, 1, 1}, refs[0].Index)
	assert.InDelta(t, 0, refs[0].Local.X, 1e-15)
	assert.InDelta(t, 0.25, refs[0].Local.Y, 1e-15)
	assert.InDelta(t, 0.5, refs[0].Local.Z, 1e-15)

	// The upper grid limit belongs to the last voxel.
	assert.Equal(t, [3]int{1, 1, 1}, refs[1].Index)
	assert.Equal(t, r3.Vec{X: 1, Y: 1, Z: 1}, refs[1].Local)
}

func TestLocateVoxel_OutOfDomain(t *testing.T) {
	g := newUnitGrid(t, 2)
	for _, p := range []r3.Vec{
		{X: 3, Y: 1, Z: 1},
		{X: 1, Y: -0.001, Z: 1},
		{X: 1, Y: 1, Z: 2.5},
		{X: math.NaN(), Y: 1, Z: 1},
		{X: 1, Y: math.Inf(1), Z: 1},
	} {
		_, err := g.LocateVoxel([]r3.Vec{p})
		assert.ErrorIs(t, err, ErrOutOfDomain, "point %v", p)
	}
}

func TestBuildJacobian_MatchesEvaluation(t *testing.T) {
	g, err := NewTranslationGrid(r3.Vec{}, 2, 2, 2, 1, 40)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(13))
	fillGrid(t, g, func(int, int, int) NodeValues {
		var v NodeValues
		for i := range v {
			v[i] = rng.NormFloat64()
		}
		return v
	})

	points := []r3.Vec{{X: 0.3, Y: 1.7, Z: 0.2}, {X: 1.5, Y: 0.5, Z: 1.9}, {X: 2, Y: 2, Z: 2}}
	field, err := g.EvaluateField(points)
	require.NoError(t, err)
	triplets, err := g.BuildJacobian(points)
	require.NoError(t, err)
	require.Len(t, triplets, 64*len(points))

	sums := make([]float64, len(points))
	for k, tr := range triplets {
		assert.Equal(t, k/64, tr.Row)
		assert.GreaterOrEqual(t, tr.Col, g.MinUnknown())
		assert.LessOrEqual(t, tr.Col, g.MaxUnknown())
		sums[tr.Row] += tr.Value * g.vals[tr.Col-g.MinUnknown()]
	}
	for i := range points {
		assert.InDelta(t, field[i], sums[i], 1e-10)
	}
}

func TestUpdateFromSolution(t *testing.T) {
	g, err := NewTranslationGrid(r3.Vec{}, 1, 1, 1, 1, 64)
	require.NoError(t, err)

	x := make([]float64, 128)
	for i := range x {
		x[i] = float64(i)
	}
	require.NoError(t, g.UpdateFromSolution(x))

	v, err := g.NodeValues(1, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, NodeValues{120, 121, 122, 123, 124, 125, 126, 127}, v)

	assert.ErrorIs(t, g.UpdateFromSolution(x[:127]), ErrInvalidArgument)
}

func TestEvaluateField_ParallelMatchesSequential(t *testing.T) {
	g := newUnitGrid(t, 3)
	rng := rand.New(rand.NewSource(17))
	fillGrid(t, g, func(int, int, int) NodeValues {
		var v NodeValues
		for i := range v {
			v[i] = rng.NormFloat64()
		}
		return v
	})

	points := make([]r3.Vec, 5000)
	for i := range points {
		points[i] = r3.Vec{X: 3 * rng.Float64(), Y: 3 * rng.Float64(), Z: 3 * rng.Float64()}
	}
	all, err := g.EvaluateField(points)
	require.NoError(t, err)
	for _, i := range []int{0, 1234, 4999} {
		one, err := g.EvaluateField(points[i : i+1])
		require.NoError(t, err)
		assert.Equal(t, one[0], all[i])
	}
}
