package nonrigid

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func randomSystem(rng *rand.Rand, rows, cols int) (*CSRMatrix, *mat.Dense, []float64, []float64) {
	var triplets []Triplet
	dense := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if rng.Float64() < 0.4 || i%cols == j {
				v := rng.NormFloat64()
				triplets = append(triplets, Triplet{Row: i, Col: j, Value: v})
				dense.Set(i, j, v)
			}
		}
	}
	m, err := NewCSRFromTriplets(rows, cols, triplets)
	if err != nil {
		panic(err)
	}
	w := make([]float64, rows)
	l := make([]float64, rows)
	for i := range w {
		w[i] = 0.5 + rng.Float64()
		l[i] = rng.NormFloat64()
	}
	return m, dense, w, l
}

func TestSolveWeightedLeastSquares_MatchesNormalEquations(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	a, dense, w, l := randomSystem(rng, 40, 12)

	x, stats, err := SolveWeightedLeastSquares(a, w, l, SolverSettings{Tolerance: 1e-13})
	require.NoError(t, err)
	assert.Greater(t, stats.Iterations, 0)
	assert.LessOrEqual(t, stats.ResidualNorm, 1e-13)

	// Reference: (AᵀWA) x = AᵀWl with a dense solve.
	wa := mat.NewDense(40, 12, nil)
	wa.Apply(func(i, j int, v float64) float64 { return w[i] * v }, dense)
	var ata mat.Dense
	ata.Mul(dense.T(), wa)
	wl := make([]float64, 40)
	for i := range wl {
		wl[i] = w[i] * l[i]
	}
	var atl mat.VecDense
	atl.MulVec(dense.T(), mat.NewVecDense(40, wl))
	var want mat.VecDense
	require.NoError(t, want.SolveVec(&ata, &atl))

	for j := range x {
		assert.InDelta(t, want.AtVec(j), x[j], 1e-8, "unknown %d", j)
	}
}

func TestSolveWeightedLeastSquares_ZeroRightHandSide(t *testing.T) {
	rng := rand.New(rand.NewSource(22))
	a, _, w, _ := randomSystem(rng, 10, 4)
	x, stats, err := SolveWeightedLeastSquares(a, w, make([]float64, 10), DefaultSolverSettings())
	require.NoError(t, err)
	assert.Equal(t, make([]float64, 4), x)
	assert.Equal(t, 0, stats.Iterations)
}

func TestSolveWeightedLeastSquares_Failures(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	a, _, w, l := randomSystem(rng, 60, 20)

	_, _, err := SolveWeightedLeastSquares(a, w, l, SolverSettings{Tolerance: 1e-14, MaxIterations: 1})
	assert.ErrorIs(t, err, ErrSolverFailure)

	_, _, err = SolveWeightedLeastSquares(a, w[:3], l, DefaultSolverSettings())
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// An unknown no row touches makes the normal matrix singular.
	singular, err := NewCSRFromTriplets(2, 2, []Triplet{{Row: 0, Col: 0, Value: 1}, {Row: 1, Col: 0, Value: 2}})
	require.NoError(t, err)
	x, _, err := SolveWeightedLeastSquares(singular, []float64{1, 1}, []float64{1, 2}, DefaultSolverSettings())
	require.NoError(t, err)
	assert.InDelta(t, 1, x[0], 1e-12)
	assert.Equal(t, 0.0, x[1])
}

func TestSolverSettings_MaxIterations(t *testing.T) {
	assert.Equal(t, 1000, SolverSettings{}.maxIterations(5))
	assert.Equal(t, 5000, SolverSettings{}.maxIterations(500))
	assert.Equal(t, 7, SolverSettings{MaxIterations: 7}.maxIterations(500))
}
