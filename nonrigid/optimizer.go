package nonrigid

import (
	"fmt"
	"log"

	"gonum.org/v1/gonum/spatial/r3"
)

// numPriorWeights is the length of the regularization weight vector. Only the
// first weight is applied, to every unknown.
const numPriorWeights = 4

// OptimizationResult summarizes one least squares solve.
type OptimizationResult struct {
	Success          bool    `json:"success"`
	NumObservations  int     `json:"num_observations"`
	NumUnknowns      int     `json:"num_unknowns"`
	SolverIterations int     `json:"solver_iterations"`
	ResidualNorm     float64 `json:"residual_norm"`
}

// Optimizer fits the translation grids of the movable cloud to a set of
// correspondences.
type Optimizer struct {
	weights  [numPriorWeights]float64
	settings SolverSettings
	observer Observer
}

// OptimizerOption configures an Optimizer.
type OptimizerOption func(*Optimizer) error

// WithWeights sets the weights of the zero observations on the grid unknowns.
// The first weight applies to all unknowns; further weights are accepted and
// currently unused.
func WithWeights(w []float64) OptimizerOption {
	return func(o *Optimizer) error {
		if len(w) == 0 || len(w) > numPriorWeights {
			return fmt.Errorf("expected 1 to %d weights, got %d: %w", numPriorWeights, len(w), ErrInvalidArgument)
		}
		for i, v := range w {
			if v < 0 {
				return fmt.Errorf("weight %d is negative (%g): %w", i, v, ErrInvalidArgument)
			}
		}
		o.weights = [numPriorWeights]float64{}
		copy(o.weights[:], w)
		return nil
	}
}

// WithSolverSettings overrides the conjugate gradient settings.
func WithSolverSettings(s SolverSettings) OptimizerOption {
	return func(o *Optimizer) error {
		o.settings = s
		return nil
	}
}

// WithOptimizerObserver sets the observer notified around assembly and solve.
func WithOptimizerObserver(obs Observer) OptimizerOption {
	return func(o *Optimizer) error {
		o.observer = obs
		return nil
	}
}

// NewOptimizer creates an optimizer with unit weights.
func NewOptimizer(opts ...OptimizerOption) (*Optimizer, error) {
	o := &Optimizer{
		weights:  [numPriorWeights]float64{1, 1, 1, 1},
		settings: DefaultSolverSettings(),
		observer: NopObserver{},
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.weights[1] != o.weights[0] || o.weights[2] != o.weights[0] || o.weights[3] != o.weights[0] {
		log.Printf("Only the first regularization weight (%g) is applied; %v are ignored", o.weights[0], o.weights[1:])
	}
	return o, nil
}

// Weight returns the weight applied to the zero observations.
func (o *Optimizer) Weight() float64 { return o.weights[0] }

// Solve estimates the grid values of the movable cloud so that the matched
// movable points move onto the tangent planes of their fixed partners. On
// success the grids, the current movable coordinates and the correspondence
// distances are updated. On failure nothing is modified.
func (o *Optimizer) Solve(c *Correspondences) (OptimizationResult, error) {
	var res OptimizationResult
	mov := c.Movable()
	grids := mov.Grids()
	if grids[0] == nil {
		return res, fmt.Errorf("solving: movable grids not initialized: %w", ErrInvalidArgument)
	}
	if c.Num() == 0 || len(c.MovableIndices()) != c.Num() {
		return res, fmt.Errorf("solving: %w", ErrEmptyResult)
	}

	o.observer.Start("assemble")
	pairs := c.Pairs()
	numCorr := len(pairs)
	numUnknowns := mov.NumUnknowns()
	numObs := numCorr + numUnknowns

	points := make([]r3.Vec, numCorr)
	for i, p := range pairs {
		points[i] = p.Movable
	}

	triplets := make([]Triplet, 0, 3*numCorr*numCoefficients+numUnknowns)
	for axis, g := range grids {
		block, err := g.BuildJacobian(points)
		if err != nil {
			o.observer.Stop("assemble")
			return res, fmt.Errorf("solving: jacobian of axis %d: %w", axis, err)
		}
		for _, t := range block {
			t.Value *= component(pairs[t.Row].Normal, axis)
			triplets = append(triplets, t)
		}
	}
	for u := 0; u < numUnknowns; u++ {
		triplets = append(triplets, Triplet{Row: numCorr + u, Col: u, Value: 1})
	}

	a, err := NewCSRFromTriplets(numObs, numUnknowns, triplets)
	o.observer.Stop("assemble")
	if err != nil {
		return res, fmt.Errorf("solving: %w", err)
	}

	ptp := c.PointToPlane().Values
	l := make([]float64, numObs)
	w := make([]float64, numObs)
	for i := 0; i < numCorr; i++ {
		l[i] = -ptp[i]
		w[i] = 1
	}
	for i := numCorr; i < numObs; i++ {
		w[i] = o.weights[0]
	}

	o.observer.Start("solve")
	x, stats, err := SolveWeightedLeastSquares(a, w, l, o.settings)
	o.observer.Stop("solve")
	res.NumObservations = numObs
	res.NumUnknowns = numUnknowns
	res.SolverIterations = stats.Iterations
	res.ResidualNorm = stats.ResidualNorm
	if err != nil {
		return res, fmt.Errorf("solving %d observations for %d unknowns: %w", numObs, numUnknowns, err)
	}

	for axis, g := range grids {
		if err := g.UpdateFromSolution(x); err != nil {
			return res, fmt.Errorf("applying solution to axis %d: %w", axis, err)
		}
	}
	if err := mov.UpdateCurrent(); err != nil {
		return res, err
	}
	if err := c.ComputeDists(); err != nil {
		return res, err
	}
	res.Success = true
	return res, nil
}

func component(v r3.Vec, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
