package nonrigid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNewCSRFromTriplets(t *testing.T) {
	m, err := NewCSRFromTriplets(3, 4, []Triplet{
		{Row: 2, Col: 3, Value: 5},
		{Row: 0, Col: 2, Value: 1},
		{Row: 0, Col: 0, Value: 2},
		{Row: 0, Col: 2, Value: 0.5},
		{Row: 2, Col: 1, Value: -1},
	})
	require.NoError(t, err)

	rows, cols := m.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 4, cols)
	assert.Equal(t, 2.0, m.At(0, 0))
	assert.Equal(t, 0.0, m.At(1, 1))
	assert.Equal(t, -1.0, m.At(2, 1))
	assert.Equal(t, 5.0, m.At(2, 3))

	// Column 2 holds the two (0, 2) entries summed.
	y := make([]float64, 3)
	m.MulVec(y, []float64{0, 0, 1, 0})
	assert.Equal(t, []float64{1.5, 0, 0}, y)
	assert.Equal(t, []float64{4, 1, 1.5 * 1.5, 25}, m.WeightedColumnSquares([]float64{1, 1, 1}))
}

func TestCSRMatrix_MatchesDense(t *testing.T) {
	m, err := NewCSRFromTriplets(2, 3, []Triplet{
		{Row: 1, Col: 0, Value: 4},
		{Row: 0, Col: 1, Value: -2},
	})
	require.NoError(t, err)

	want := mat.NewDense(2, 3, []float64{
		0, -2, 0,
		4, 0, 0,
	})
	assert.True(t, mat.Equal(want, m))
	assert.True(t, mat.Equal(want.T(), m.T()))
}

func TestNewCSRFromTriplets_OutOfRange(t *testing.T) {
	_, err := NewCSRFromTriplets(2, 2, []Triplet{{Row: 2, Col: 0, Value: 1}})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewCSRFromTriplets(2, 2, []Triplet{{Row: 0, Col: -1, Value: 1}})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewCSRFromTriplets(-1, 2, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewCSRFromTriplets(2, 0, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCSRMatrix_Products(t *testing.T) {
	// [1 0 2]
	// [0 3 0]
	m, err := NewCSRFromTriplets(2, 3, []Triplet{
		{Row: 0, Col: 0, Value: 1},
		{Row: 0, Col: 2, Value: 2},
		{Row: 1, Col: 1, Value: 3},
	})
	require.NoError(t, err)

	y := make([]float64, 2)
	m.MulVec(y, []float64{1, 2, 3})
	assert.Equal(t, []float64{7, 6}, y)

	x := []float64{9, 9, 9}
	m.MulTransVec(x, []float64{1, -1})
	assert.Equal(t, []float64{1, -3, 2}, x)

	assert.Equal(t, []float64{2, 9 * 3, 8}, m.WeightedColumnSquares([]float64{2, 3}))
}
