package nonrigid

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bruteForceKNN(ref [][]float64, q []float64, k int) []int {
	idx := make([]int, len(ref))
	for i := range idx {
		idx[i] = i
	}
	dist := func(i int) float64 {
		var s float64
		for d := range q {
			diff := ref[i][d] - q[d]
			s += diff * diff
		}
		return s
	}
	sort.SliceStable(idx, func(a, b int) bool { return dist(idx[a]) < dist(idx[b]) })
	if k > len(idx) {
		k = len(idx)
	}
	return idx[:k]
}

func TestSpatialIndex_NearestMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	ref := make([][]float64, 500)
	for i := range ref {
		ref[i] = []float64{rng.Float64() * 10, rng.Float64() * 10, rng.Float64() * 10}
	}
	index, err := NewSpatialIndex(ref)
	require.NoError(t, err)
	assert.Equal(t, 500, index.Len())

	for i := 0; i < 100; i++ {
		q := []float64{rng.Float64() * 10, rng.Float64() * 10, rng.Float64() * 10}
		got, _, err := index.Nearest(q)
		require.NoError(t, err)
		assert.Equal(t, bruteForceKNN(ref, q, 1)[0], got)
	}
}

func TestSpatialIndex_KNearestOrdered(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	ref := make([][]float64, 200)
	for i := range ref {
		ref[i] = []float64{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
	}
	index, err := NewSpatialIndex(ref)
	require.NoError(t, err)

	q := []float64{0.1, -0.2, 0.3}
	got, err := index.KNearest(q, 8)
	require.NoError(t, err)
	assert.Equal(t, bruteForceKNN(ref, q, 8), got)
}

func TestSpatialIndex_KLargerThanSet(t *testing.T) {
	index, err := NewSpatialIndex([][]float64{{0}, {5}, {2}})
	require.NoError(t, err)

	got, err := index.KNearest([]float64{1.9}, 10)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0, 1}, got)
}

func TestSpatialIndex_SelfQuery(t *testing.T) {
	ref := [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	index, err := NewSpatialIndex(ref)
	require.NoError(t, err)

	for i, r := range ref {
		got, d, err := index.Nearest(r)
		require.NoError(t, err)
		assert.Equal(t, i, got)
		assert.Zero(t, d)
	}
}

func TestSpatialIndex_Errors(t *testing.T) {
	_, err := NewSpatialIndex(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewSpatialIndex([][]float64{{1, 2}, {1}})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	index, err := NewSpatialIndex([][]float64{{1, 2, 3}})
	require.NoError(t, err)

	_, _, err = index.Nearest([]float64{1, 2})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = index.KNearest([]float64{1, 2, 3}, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestKnnSearch(t *testing.T) {
	ref := [][]float64{{0}, {10}, {20}}
	queries := [][]float64{{11}, {-3}, {19}}

	got, err := KnnSearch(ref, queries, 2)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 2}, {0, 1}, {2, 1}}, got)
}

func TestScalarIndex_ExactIDs(t *testing.T) {
	index, err := NewScalarIndex([]float64{4, 3, 9, 1})
	require.NoError(t, err)

	got, d, err := index.Nearest([]float64{9})
	require.NoError(t, err)
	assert.Equal(t, 2, got)
	assert.Zero(t, d)
}
