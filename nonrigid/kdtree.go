package nonrigid

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// indexedPoint is a kd-tree entry that remembers its row in the reference set.
type indexedPoint struct {
	coords kdtree.Point
	index  int
}

func (p indexedPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(indexedPoint)
	return p.coords[d] - q.coords[d]
}

func (p indexedPoint) Dims() int { return len(p.coords) }

func (p indexedPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(indexedPoint)
	return p.coords.Distance(q.coords)
}

type indexedPoints []indexedPoint

func (p indexedPoints) Index(i int) kdtree.Comparable         { return p[i] }
func (p indexedPoints) Len() int                              { return len(p) }
func (p indexedPoints) Slice(start, end int) kdtree.Interface { return p[start:end] }
func (p indexedPoints) Pivot(d kdtree.Dim) int {
	return kdtree.Partition(indexedPlane{points: p, dim: d}, kdtree.MedianOfMedians(indexedPlane{points: p, dim: d}))
}

// indexedPlane sorts points along one dimension for pivot selection.
type indexedPlane struct {
	points indexedPoints
	dim    kdtree.Dim
}

func (p indexedPlane) Len() int { return len(p.points) }
func (p indexedPlane) Less(i, j int) bool {
	return p.points[i].coords[p.dim] < p.points[j].coords[p.dim]
}
func (p indexedPlane) Swap(i, j int) { p.points[i], p.points[j] = p.points[j], p.points[i] }
func (p indexedPlane) Slice(start, end int) kdtree.SortSlicer {
	return indexedPlane{points: p.points[start:end], dim: p.dim}
}

// SpatialIndex answers nearest neighbour queries over a fixed reference set.
type SpatialIndex struct {
	tree *kdtree.Tree
	dims int
	size int
}

// NewSpatialIndex builds a kd-tree over the given rows. All rows must have the
// same, non-zero dimension.
func NewSpatialIndex(rows [][]float64) (*SpatialIndex, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("building spatial index: empty reference set: %w", ErrInvalidArgument)
	}
	dims := len(rows[0])
	if dims == 0 {
		return nil, fmt.Errorf("building spatial index: zero-dimensional rows: %w", ErrInvalidArgument)
	}

	pts := make(indexedPoints, len(rows))
	for i, row := range rows {
		if len(row) != dims {
			return nil, fmt.Errorf("building spatial index: row %d has %d values, want %d: %w",
				i, len(row), dims, ErrInvalidArgument)
		}
		coords := make(kdtree.Point, dims)
		copy(coords, row)
		pts[i] = indexedPoint{coords: coords, index: i}
	}

	return &SpatialIndex{
		tree: kdtree.New(pts, false),
		dims: dims,
		size: len(rows),
	}, nil
}

// NewPointIndex builds a 3-D spatial index over coordinates.
func NewPointIndex(points []r3.Vec) (*SpatialIndex, error) {
	rows := make([][]float64, len(points))
	for i, p := range points {
		rows[i] = []float64{p.X, p.Y, p.Z}
	}
	return NewSpatialIndex(rows)
}

// NewScalarIndex builds a 1-D spatial index, used for matching correspondence ids.
func NewScalarIndex(values []float64) (*SpatialIndex, error) {
	rows := make([][]float64, len(values))
	for i, v := range values {
		rows[i] = []float64{v}
	}
	return NewSpatialIndex(rows)
}

// Len returns the number of reference points.
func (s *SpatialIndex) Len() int { return s.size }

// Nearest returns the reference row closest to query and the squared distance.
func (s *SpatialIndex) Nearest(query []float64) (int, float64, error) {
	if len(query) != s.dims {
		return -1, 0, fmt.Errorf("nearest neighbour query has %d values, want %d: %w",
			len(query), s.dims, ErrInvalidArgument)
	}
	c, dist := s.tree.Nearest(indexedPoint{coords: kdtree.Point(query), index: -1})
	if c == nil {
		return -1, 0, fmt.Errorf("nearest neighbour query on empty index: %w", ErrInvalidArgument)
	}
	return c.(indexedPoint).index, dist, nil
}

// KNearest returns up to k reference rows ordered by distance. Ties are broken
// by row index so results are reproducible.
func (s *SpatialIndex) KNearest(query []float64, k int) ([]int, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d: %w", k, ErrInvalidArgument)
	}
	if len(query) != s.dims {
		return nil, fmt.Errorf("nearest neighbour query has %d values, want %d: %w",
			len(query), s.dims, ErrInvalidArgument)
	}
	if k == 1 {
		idx, _, err := s.Nearest(query)
		if err != nil {
			return nil, err
		}
		return []int{idx}, nil
	}

	keep := kdtree.NewNKeeper(k)
	s.tree.NearestSet(keep, indexedPoint{coords: kdtree.Point(query), index: -1})

	found := make([]kdtree.ComparableDist, 0, keep.Heap.Len())
	for _, cd := range keep.Heap {
		// The keeper seeds its heap with a sentinel that has no Comparable.
		if cd.Comparable == nil {
			continue
		}
		found = append(found, cd)
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].Dist != found[j].Dist {
			return found[i].Dist < found[j].Dist
		}
		return found[i].Comparable.(indexedPoint).index < found[j].Comparable.(indexedPoint).index
	})

	out := make([]int, len(found))
	for i, cd := range found {
		out[i] = cd.Comparable.(indexedPoint).index
	}
	return out, nil
}

// KnnSearch builds an index over ref and returns, for every query row, the
// indices of its k nearest reference rows.
func KnnSearch(ref, queries [][]float64, k int) ([][]int, error) {
	index, err := NewSpatialIndex(ref)
	if err != nil {
		return nil, err
	}
	out := make([][]int, len(queries))
	for i, q := range queries {
		nn, err := index.KNearest(q, k)
		if err != nil {
			return nil, fmt.Errorf("query %d: %w", i, err)
		}
		out[i] = nn
	}
	return out, nil
}
