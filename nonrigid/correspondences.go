package nonrigid

import (
	"fmt"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// robustScaleFactor is the number of robust standard deviations a residual may
// deviate from the median before it is rejected.
const robustScaleFactor = 3

// Pair is one matched fixed/movable point pair with the attributes the
// optimizer needs.
type Pair struct {
	FixedIndex     int
	MovableIndex   int
	Fixed          r3.Vec
	Normal         r3.Vec // normal of the fixed point
	Movable        r3.Vec // original movable coordinates
	MovableCurrent r3.Vec // deformed movable coordinates
}

// Correspondences tracks which fixed points are matched to which movable points
// and the distances between them.
type Correspondences struct {
	fixed   *PointCloud
	movable *PointCloud

	fixedIdx   []int
	movableIdx []int

	pointToPlane        Dists
	pointToPlaneCurrent Dists
	euclidean           Dists
	euclideanCurrent    Dists

	rng      *rand.Rand
	observer Observer
}

// CorrespondenceOption configures a Correspondences value.
type CorrespondenceOption func(*Correspondences)

// WithRand sets the random source used for sampling.
func WithRand(r *rand.Rand) CorrespondenceOption {
	return func(c *Correspondences) { c.rng = r }
}

// WithObserver sets the observer notified around matching.
func WithObserver(o Observer) CorrespondenceOption {
	return func(c *Correspondences) { c.observer = o }
}

// NewCorrespondences creates an empty correspondence set between two clouds.
// Sampling is deterministic unless a random source is supplied.
func NewCorrespondences(fixed, movable *PointCloud, opts ...CorrespondenceOption) (*Correspondences, error) {
	if fixed == nil || movable == nil {
		return nil, fmt.Errorf("creating correspondences: nil point cloud: %w", ErrInvalidArgument)
	}
	c := &Correspondences{
		fixed:    fixed,
		movable:  movable,
		rng:      rand.New(rand.NewSource(1)),
		observer: NopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Fixed returns the fixed cloud.
func (c *Correspondences) Fixed() *PointCloud { return c.fixed }

// Movable returns the movable cloud.
func (c *Correspondences) Movable() *PointCloud { return c.movable }

// Num returns the number of selected fixed points.
func (c *Correspondences) Num() int { return len(c.fixedIdx) }

// SelectByRandomSampling selects n distinct fixed points uniformly without
// replacement. The selection is stored in ascending order.
func (c *Correspondences) SelectByRandomSampling(n int) error {
	total := c.fixed.NumPoints()
	if n <= 0 {
		return fmt.Errorf("sampling %d points: %w", n, ErrInvalidArgument)
	}
	if n > total {
		return fmt.Errorf("sampling %d points from a cloud of %d: %w", n, total, ErrInvalidArgument)
	}
	idx := c.rng.Perm(total)[:n]
	sort.Ints(idx)
	c.fixedIdx = idx
	c.movableIdx = nil
	return nil
}

// SetSelected replaces the selected fixed points and clears the matches.
func (c *Correspondences) SetSelected(idx []int) error {
	total := c.fixed.NumPoints()
	for _, i := range idx {
		if i < 0 || i >= total {
			return fmt.Errorf("selecting fixed point %d of %d: %w", i, total, ErrInvalidArgument)
		}
	}
	c.fixedIdx = append([]int(nil), idx...)
	c.movableIdx = nil
	return nil
}

// Selected returns a copy of the selected fixed point indices.
func (c *Correspondences) Selected() []int {
	return append([]int(nil), c.fixedIdx...)
}

// MovableIndices returns a copy of the matched movable point indices.
func (c *Correspondences) MovableIndices() []int {
	return append([]int(nil), c.movableIdx...)
}

// MatchByNearestNeighbor matches every selected fixed point with the movable
// point whose current coordinates are closest.
func (c *Correspondences) MatchByNearestNeighbor() error {
	c.observer.Start("match_nearest_neighbor")
	defer c.observer.Stop("match_nearest_neighbor")

	index, err := NewPointIndex(c.movable.Current())
	if err != nil {
		return fmt.Errorf("matching by nearest neighbour: %w", err)
	}
	fixed := c.fixed.Original()
	movableIdx := make([]int, len(c.fixedIdx))
	err = forEachChunk(len(c.fixedIdx), func(start, end int) error {
		for i := start; i < end; i++ {
			p := fixed[c.fixedIdx[i]]
			nn, _, err := index.Nearest([]float64{p.X, p.Y, p.Z})
			if err != nil {
				return err
			}
			movableIdx[i] = nn
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("matching by nearest neighbour: %w", err)
	}
	c.movableIdx = movableIdx
	return c.ComputeDists()
}

// MatchByID matches every selected fixed point with the movable point carrying
// the same correspondence id. Fixed points without an exact id match are
// dropped.
func (c *Correspondences) MatchByID() error {
	c.observer.Start("match_id")
	defer c.observer.Stop("match_id")

	if !c.fixed.HasCorrespondenceIDs() || !c.movable.HasCorrespondenceIDs() {
		return fmt.Errorf("matching by id: both clouds need correspondence ids: %w", ErrInvalidArgument)
	}
	movIDs := c.movable.CorrespondenceIDs()
	index, err := NewScalarIndex(movIDs)
	if err != nil {
		return fmt.Errorf("matching by id: %w", err)
	}

	fixIDs := c.fixed.CorrespondenceIDs()
	var fixedIdx, movableIdx []int
	for _, fi := range c.fixedIdx {
		id := fixIDs[fi]
		nn, _, err := index.Nearest([]float64{id})
		if err != nil {
			return fmt.Errorf("matching by id: %w", err)
		}
		if movIDs[nn] != id {
			continue
		}
		fixedIdx = append(fixedIdx, fi)
		movableIdx = append(movableIdx, nn)
	}
	if len(fixedIdx) == 0 {
		c.fixedIdx, c.movableIdx = nil, nil
		return fmt.Errorf("matching by id: no fixed point has a matching id: %w", ErrEmptyResult)
	}
	c.fixedIdx = fixedIdx
	c.movableIdx = movableIdx
	return c.ComputeDists()
}

// RejectByMaxDistance drops pairs whose current Euclidean distance exceeds t.
func (c *Correspondences) RejectByMaxDistance(t float64) error {
	if err := c.requireMatched(); err != nil {
		return err
	}
	d := c.euclideanCurrent.Values
	return c.keep(func(i int) bool { return d[i] <= t })
}

// RejectByRobustScale drops pairs whose current point-to-plane distance lies
// more than three robust standard deviations from the median.
func (c *Correspondences) RejectByRobustScale() error {
	if err := c.requireMatched(); err != nil {
		return err
	}
	d := c.pointToPlaneCurrent
	limit := robustScaleFactor * d.StdMAD
	return c.keep(func(i int) bool {
		dev := d.Values[i] - d.Median
		if dev < 0 {
			dev = -dev
		}
		return dev <= limit
	})
}

func (c *Correspondences) requireMatched() error {
	if c.movableIdx == nil || len(c.movableIdx) != len(c.fixedIdx) {
		return fmt.Errorf("correspondences are not matched: %w", ErrInvalidArgument)
	}
	if len(c.euclideanCurrent.Values) != len(c.fixedIdx) {
		if err := c.ComputeDists(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Correspondences) keep(pred func(i int) bool) error {
	j := 0
	for i := range c.fixedIdx {
		if pred(i) {
			c.fixedIdx[j] = c.fixedIdx[i]
			c.movableIdx[j] = c.movableIdx[i]
			j++
		}
	}
	c.fixedIdx = c.fixedIdx[:j]
	c.movableIdx = c.movableIdx[:j]
	return c.ComputeDists()
}

// Pairs gathers the coordinates and normals of every matched pair.
func (c *Correspondences) Pairs() []Pair {
	fixed := c.fixed.Original()
	normals := c.fixed.Normals()
	movable := c.movable.Original()
	current := c.movable.Current()

	out := make([]Pair, len(c.movableIdx))
	for i, mi := range c.movableIdx {
		fi := c.fixedIdx[i]
		p := Pair{
			FixedIndex:     fi,
			MovableIndex:   mi,
			Fixed:          fixed[fi],
			Movable:        movable[mi],
			MovableCurrent: current[mi],
		}
		if normals != nil {
			p.Normal = normals[fi]
		}
		out[i] = p
	}
	return out
}

// ComputeDists recomputes the point-to-plane and Euclidean distances of every
// pair against both the original and the current movable coordinates.
func (c *Correspondences) ComputeDists() error {
	if len(c.fixedIdx) == 0 || len(c.movableIdx) != len(c.fixedIdx) {
		return fmt.Errorf("computing distances: %w", ErrEmptyResult)
	}
	if !c.fixed.HasNormals() {
		return fmt.Errorf("computing distances: fixed cloud has no normals: %w", ErrInvalidArgument)
	}

	pairs := c.Pairs()
	n := len(pairs)
	ptp := make([]float64, n)
	ptpCur := make([]float64, n)
	euc := make([]float64, n)
	eucCur := make([]float64, n)
	for i, p := range pairs {
		d := r3.Sub(p.Movable, p.Fixed)
		dt := r3.Sub(p.MovableCurrent, p.Fixed)
		ptp[i] = r3.Dot(d, p.Normal)
		ptpCur[i] = r3.Dot(dt, p.Normal)
		euc[i] = r3.Norm(d)
		eucCur[i] = r3.Norm(dt)
	}

	var err error
	if c.pointToPlane, err = NewDists(ptp); err != nil {
		return err
	}
	if c.pointToPlaneCurrent, err = NewDists(ptpCur); err != nil {
		return err
	}
	if c.euclidean, err = NewDists(euc); err != nil {
		return err
	}
	if c.euclideanCurrent, err = NewDists(eucCur); err != nil {
		return err
	}
	return nil
}

// PointToPlane returns the point-to-plane distances against original movable coordinates.
func (c *Correspondences) PointToPlane() Dists { return c.pointToPlane }

// PointToPlaneCurrent returns the point-to-plane distances against current movable coordinates.
func (c *Correspondences) PointToPlaneCurrent() Dists { return c.pointToPlaneCurrent }

// Euclidean returns the Euclidean distances against original movable coordinates.
func (c *Correspondences) Euclidean() Dists { return c.euclidean }

// EuclideanCurrent returns the Euclidean distances against current movable coordinates.
func (c *Correspondences) EuclideanCurrent() Dists { return c.euclideanCurrent }
