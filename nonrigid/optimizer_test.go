package nonrigid

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// offsetClouds builds clouds inside the unit voxel where every movable point is
// its fixed partner shifted by d. Fixed normals point in random directions.
func offsetClouds(t *testing.T, n int, d r3.Vec) (fixed, movable *PointCloud) {
	t.Helper()
	rng := rand.New(rand.NewSource(31))
	fc := make([]r3.Vec, n)
	mc := make([]r3.Vec, n)
	normals := make([]r3.Vec, n)
	ids := make([]float64, n)
	for i := 0; i < n; i++ {
		fc[i] = r3.Vec{X: 0.15 + 0.7*rng.Float64(), Y: 0.15 + 0.7*rng.Float64(), Z: 0.15 + 0.7*rng.Float64()}
		mc[i] = r3.Add(fc[i], d)
		normals[i] = r3.Unit(r3.Vec{X: rng.NormFloat64(), Y: rng.NormFloat64(), Z: rng.NormFloat64()})
		ids[i] = float64(i)
	}
	fixed = newTestCloud(t, fc...)
	require.NoError(t, fixed.SetNormals(normals))
	require.NoError(t, fixed.SetCorrespondenceIDs(ids))
	movable = newTestCloud(t, mc...)
	require.NoError(t, movable.SetCorrespondenceIDs(ids))

	limits := GridLimits{Max: r3.Vec{X: 1, Y: 1, Z: 1}}
	require.NoError(t, movable.InitializeTranslationGrids(1, 0, limits))
	return fixed, movable
}

func matchedByID(t *testing.T, fixed, movable *PointCloud) *Correspondences {
	t.Helper()
	c := newTestCorrespondences(t, fixed, movable)
	require.NoError(t, c.SelectByRandomSampling(fixed.NumPoints()))
	require.NoError(t, c.MatchByID())
	return c
}

func TestNewOptimizer_Options(t *testing.T) {
	o, err := NewOptimizer()
	require.NoError(t, err)
	assert.Equal(t, 1.0, o.Weight())

	o, err = NewOptimizer(WithWeights([]float64{0.5, 2}))
	require.NoError(t, err)
	assert.Equal(t, 0.5, o.Weight())

	_, err = NewOptimizer(WithWeights(nil))
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewOptimizer(WithWeights([]float64{1, 1, 1, 1, 1}))
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewOptimizer(WithWeights([]float64{-1}))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestOptimizer_RecoversConstantOffset(t *testing.T) {
	d := r3.Vec{X: 0.1, Y: -0.05, Z: 0.08}
	fixed, movable := offsetClouds(t, 400, d)
	c := matchedByID(t, fixed, movable)

	profiler := NewProfiler()
	o, err := NewOptimizer(
		WithWeights([]float64{1e-3}),
		WithSolverSettings(SolverSettings{Tolerance: 1e-10, MaxIterations: 50000}),
		WithOptimizerObserver(profiler),
	)
	require.NoError(t, err)

	res, err := o.Solve(c)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 400+3*64, res.NumObservations)
	assert.Equal(t, 3*64, res.NumUnknowns)
	assert.Greater(t, res.SolverIterations, 0)

	for i, p := range movable.Original() {
		shift := r3.Sub(movable.Current()[i], p)
		assert.InDelta(t, -d.X, shift.X, 2e-3)
		assert.InDelta(t, -d.Y, shift.Y, 2e-3)
		assert.InDelta(t, -d.Z, shift.Z, 2e-3)
	}

	// Distances are refreshed against the deformed coordinates.
	assert.Less(t, math.Abs(c.PointToPlaneCurrent().Mean), 1e-3)
	assert.Less(t, c.EuclideanCurrent().Mean, 5e-3)
	assert.Greater(t, c.Euclidean().Mean, 0.1)

	var names []string
	for _, s := range profiler.Timings() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"assemble", "solve"}, names)
}

func TestOptimizer_IdenticalClouds(t *testing.T) {
	fixed, movable := offsetClouds(t, 50, r3.Vec{})
	c := matchedByID(t, fixed, movable)

	o, err := NewOptimizer(WithWeights([]float64{0}))
	require.NoError(t, err)
	res, err := o.Solve(c)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 0, res.SolverIterations)
	assert.Equal(t, movable.Original(), movable.Current())
	assert.InDelta(t, 0, c.PointToPlaneCurrent().Mean, 1e-15)
}

func TestOptimizer_SolverFailureLeavesGridsUntouched(t *testing.T) {
	fixed, movable := offsetClouds(t, 100, r3.Vec{X: 0.05, Z: -0.05})
	c := matchedByID(t, fixed, movable)

	o, err := NewOptimizer(WithSolverSettings(SolverSettings{Tolerance: 1e-12, MaxIterations: 1}))
	require.NoError(t, err)
	res, err := o.Solve(c)
	assert.ErrorIs(t, err, ErrSolverFailure)
	assert.False(t, res.Success)

	for _, g := range movable.Grids() {
		for _, v := range g.vals {
			assert.Equal(t, 0.0, v)
		}
	}
	assert.Equal(t, movable.Original(), movable.Current())
}

func TestOptimizer_Errors(t *testing.T) {
	o, err := NewOptimizer()
	require.NoError(t, err)

	fixed, _ := offsetClouds(t, 10, r3.Vec{})
	bare := newTestCloud(t, fixed.Original()...)
	require.NoError(t, bare.SetCorrespondenceIDs(fixed.CorrespondenceIDs()))
	c := newTestCorrespondences(t, fixed, bare)
	require.NoError(t, c.SelectByRandomSampling(10))
	require.NoError(t, c.MatchByID())
	_, err = o.Solve(c)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, movable := offsetClouds(t, 10, r3.Vec{})
	c = newTestCorrespondences(t, fixed, movable)
	_, err = o.Solve(c)
	assert.ErrorIs(t, err, ErrEmptyResult)
}
