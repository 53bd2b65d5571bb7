package nonrigid

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// ResidualSummary is the mean and spread of the current point-to-plane distances.
type ResidualSummary struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// IterationReport describes one iteration of the registration loop.
type IterationReport struct {
	RunID              string             `json:"run_id"`
	Iteration          int                `json:"iteration"`
	NumCorrespondences int                `json:"num_correspondences"`
	Optimization       OptimizationResult `json:"optimization"`
	Before             ResidualSummary    `json:"before"`
	After              ResidualSummary    `json:"after"`
}

// RunSummary describes a finished registration run.
type RunSummary struct {
	RunID            string          `json:"run_id"`
	NumFixedPoints   int             `json:"num_fixed_points"`
	NumMovablePoints int             `json:"num_movable_points"`
	NumSelected      int             `json:"num_selected"`
	Iterations       int             `json:"iterations"`
	NumUnknowns      int             `json:"num_unknowns"`
	Final            ResidualSummary `json:"final"`
	DurationSeconds  float64         `json:"duration_seconds"`
}

// IterationReporter receives progress of a registration run.
type IterationReporter interface {
	ReportIteration(IterationReport)
	ReportSummary(RunSummary)
}

// RegistrationResult is returned by a successful Register call.
type RegistrationResult struct {
	RunID      string
	Selected   []int
	Iterations []IterationReport
	Summary    RunSummary
}

type registration struct {
	runID     string
	rng       *rand.Rand
	observer  Observer
	reporters []IterationReporter
	debug     *DebugExporter
	solver    SolverSettings
	now       func() time.Time
}

// RegistrationOption configures Register.
type RegistrationOption func(*registration)

// WithReporters adds progress reporters.
func WithReporters(r ...IterationReporter) RegistrationOption {
	return func(reg *registration) { reg.reporters = append(reg.reporters, r...) }
}

// WithRegistrationObserver sets the observer passed to matching and optimization.
func WithRegistrationObserver(o Observer) RegistrationOption {
	return func(reg *registration) { reg.observer = o }
}

// WithDebugExporter writes debug artifacts for every iteration.
func WithDebugExporter(d *DebugExporter) RegistrationOption {
	return func(reg *registration) { reg.debug = d }
}

// WithSolver overrides the solver settings.
func WithSolver(s SolverSettings) RegistrationOption {
	return func(reg *registration) { reg.solver = s }
}

// WithRunID sets the run identifier instead of a random UUID.
func WithRunID(id string) RegistrationOption {
	return func(reg *registration) { reg.runID = id }
}

// WithSampler sets the random source used to select fixed points.
func WithSampler(r *rand.Rand) RegistrationOption {
	return func(reg *registration) { reg.rng = r }
}

// Register deforms movable onto fixed. It initializes the movable grids, selects
// fixed points once and then, per iteration, matches, rejects outliers and
// solves for the grid values. With id matching only one iteration is run. The
// context is checked between iterations.
func Register(ctx context.Context, fixed, movable *PointCloud, cfg RegistrationConfig, opts ...RegistrationOption) (*RegistrationResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	reg := &registration{
		runID:    uuid.New().String(),
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		observer: NopObserver{},
		solver:   DefaultSolverSettings(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(reg)
	}
	start := reg.now()

	if !fixed.HasNormals() {
		return nil, fmt.Errorf("fixed point cloud needs normals: %w", ErrInvalidArgument)
	}
	log.Printf("Run %s: matching mode %q", reg.runID, cfg.MatchingMode)
	log.Printf("  Fixed point cloud has %d points", fixed.NumPoints())
	log.Printf("  Movable point cloud has %d points", movable.NumPoints())

	reg.observer.Start("initialize_grids")
	err := movable.InitializeTranslationGrids(cfg.VoxelSize, cfg.BufferVoxels, cfg.Limits())
	if err == nil {
		err = movable.InitMatricesForUpdate()
	}
	reg.observer.Stop("initialize_grids")
	if err != nil {
		return nil, err
	}

	corr, err := NewCorrespondences(fixed, movable, WithRand(reg.rng), WithObserver(reg.observer))
	if err != nil {
		return nil, err
	}
	if err := corr.SelectByRandomSampling(cfg.NumCorrespondences); err != nil {
		return nil, err
	}
	selected := corr.Selected()
	log.Printf("Selected %d points in fixed point cloud", len(selected))

	optimizer, err := NewOptimizer(
		WithWeights(cfg.Weights),
		WithSolverSettings(reg.solver),
		WithOptimizerObserver(reg.observer),
	)
	if err != nil {
		return nil, err
	}

	numIterations := cfg.NumIterations
	if cfg.MatchingMode == MatchingModeID && numIterations != 1 {
		numIterations = 1
		log.Printf("Set num_iterations to 1 as matching mode %q was selected", cfg.MatchingMode)
	}

	result := &RegistrationResult{RunID: reg.runID, Selected: selected}
	for it := 1; it <= numIterations; it++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("registration stopped before iteration %d: %w", it, err)
		}
		report, err := reg.iterate(it, corr, optimizer, cfg, selected)
		if err != nil {
			return nil, fmt.Errorf("iteration %d: %w", it, err)
		}
		result.Iterations = append(result.Iterations, report)
		for _, r := range reg.reporters {
			r.ReportIteration(report)
		}
	}

	last := result.Iterations[len(result.Iterations)-1]
	result.Summary = RunSummary{
		RunID:            reg.runID,
		NumFixedPoints:   fixed.NumPoints(),
		NumMovablePoints: movable.NumPoints(),
		NumSelected:      len(selected),
		Iterations:       len(result.Iterations),
		NumUnknowns:      movable.NumUnknowns(),
		Final:            last.After,
		DurationSeconds:  reg.now().Sub(start).Seconds(),
	}
	for _, r := range reg.reporters {
		r.ReportSummary(result.Summary)
	}
	return result, nil
}

func (reg *registration) iterate(it int, corr *Correspondences, optimizer *Optimizer, cfg RegistrationConfig, selected []int) (IterationReport, error) {
	report := IterationReport{RunID: reg.runID, Iteration: it}

	if err := corr.SetSelected(selected); err != nil {
		return report, err
	}
	var err error
	if cfg.MatchingMode == MatchingModeID {
		err = corr.MatchByID()
	} else {
		err = corr.MatchByNearestNeighbor()
	}
	if err != nil {
		return report, err
	}

	reg.observer.Start("reject")
	err = corr.RejectByMaxDistance(cfg.MaxEuclideanDistance)
	if err == nil {
		err = corr.RejectByRobustScale()
	}
	reg.observer.Stop("reject")
	if err != nil {
		return report, err
	}

	if reg.debug != nil {
		reg.observer.Start("debug_export")
		err := reg.debug.Export(it, corr)
		reg.observer.Stop("debug_export")
		if err != nil {
			return report, err
		}
	}

	report.NumCorrespondences = corr.Num()
	before := corr.PointToPlaneCurrent()
	report.Before = ResidualSummary{Mean: before.Mean, Std: before.Std}

	res, err := optimizer.Solve(corr)
	report.Optimization = res
	if err != nil {
		return report, err
	}
	after := corr.PointToPlaneCurrent()
	report.After = ResidualSummary{Mean: after.Mean, Std: after.Std}
	return report, nil
}

// LogReporter writes the iteration table to the standard logger.
type LogReporter struct{}

// ReportIteration logs one table row, preceded by the header on the first iteration.
func (LogReporter) ReportIteration(r IterationReport) {
	if r.Iteration == 1 {
		log.Printf("%4s %10s %10s %10s %10s %10s %10s %10s",
			"it", "num_corr", "num_obs", "num_unkn", "mean(dp)", "mean(dp)", "std(dp)", "std(dp)")
		log.Printf("%37s %10s %10s %10s %10s", "", "before", "after", "before", "after")
	}
	log.Printf("%4d %10d %10d %10d %10.3f %10.3f %10.3f %10.3f",
		r.Iteration, r.NumCorrespondences, r.Optimization.NumObservations, r.Optimization.NumUnknowns,
		r.Before.Mean, r.After.Mean, r.Before.Std, r.After.Std)
}

// ReportSummary logs the run duration.
func (LogReporter) ReportSummary(s RunSummary) {
	log.Printf("Finished %d iterations in %.3fs", s.Iterations, s.DurationSeconds)
}
