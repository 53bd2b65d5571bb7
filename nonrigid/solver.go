package nonrigid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// SolverSettings controls the conjugate gradient solve of the normal equations.
type SolverSettings struct {
	Tolerance     float64 `yaml:"tolerance" json:"tolerance"`          // relative residual norm at which the solve stops
	MaxIterations int     `yaml:"maxIterations" json:"maxIterations"` // 0 selects 10 x unknowns, at least 1000
}

// DefaultSolverSettings returns the settings used when none are given.
func DefaultSolverSettings() SolverSettings {
	return SolverSettings{Tolerance: 1e-10}
}

func (s SolverSettings) maxIterations(n int) int {
	if s.MaxIterations > 0 {
		return s.MaxIterations
	}
	if 10*n > 1000 {
		return 10 * n
	}
	return 1000
}

// SolveStats reports how a solve went.
type SolveStats struct {
	Iterations   int
	ResidualNorm float64 // relative to the right hand side
}

// SolveWeightedLeastSquares minimizes Σ w_i (A x - l)_i² by running Jacobi
// preconditioned conjugate gradients on AᵀWA x = AᵀWl without forming AᵀWA.
func SolveWeightedLeastSquares(a *CSRMatrix, w, l []float64, settings SolverSettings) ([]float64, SolveStats, error) {
	rows, n := a.Dims()
	var stats SolveStats
	if len(w) != rows || len(l) != rows {
		return nil, stats, fmt.Errorf("weights (%d) and observations (%d) must match %d rows: %w",
			len(w), len(l), rows, ErrInvalidArgument)
	}
	tol := settings.Tolerance
	if !(tol > 0) {
		tol = DefaultSolverSettings().Tolerance
	}

	wl := make([]float64, rows)
	floats.MulTo(wl, w, l)
	b := make([]float64, n)
	a.MulTransVec(b, wl)
	x := make([]float64, n)

	bnorm := floats.Norm(b, 2)
	if math.IsNaN(bnorm) || math.IsInf(bnorm, 0) {
		return nil, stats, fmt.Errorf("right hand side is not finite: %w", ErrSolverFailure)
	}
	if bnorm == 0 {
		return x, stats, nil
	}

	invDiag := a.WeightedColumnSquares(w)
	for j, d := range invDiag {
		if d == 0 {
			invDiag[j] = 1
		} else {
			invDiag[j] = 1 / d
		}
	}

	r := append([]float64(nil), b...)
	z := make([]float64, n)
	floats.MulTo(z, invDiag, r)
	p := append([]float64(nil), z...)
	rz := floats.Dot(r, z)

	tmp := make([]float64, rows)
	ap := make([]float64, n)
	normal := func(dst, v []float64) {
		a.MulVec(tmp, v)
		floats.Mul(tmp, w)
		a.MulTransVec(dst, tmp)
	}

	maxIter := settings.maxIterations(n)
	for it := 1; it <= maxIter; it++ {
		normal(ap, p)
		pap := floats.Dot(p, ap)
		if !(pap > 0) || math.IsInf(pap, 0) {
			stats.Iterations = it
			return nil, stats, fmt.Errorf("conjugate gradients broke down at iteration %d (pᵀAp = %g): %w",
				it, pap, ErrSolverFailure)
		}
		alpha := rz / pap
		floats.AddScaled(x, alpha, p)
		floats.AddScaled(r, -alpha, ap)

		stats.Iterations = it
		stats.ResidualNorm = floats.Norm(r, 2) / bnorm
		if math.IsNaN(stats.ResidualNorm) {
			return nil, stats, fmt.Errorf("residual became NaN at iteration %d: %w", it, ErrSolverFailure)
		}
		if stats.ResidualNorm <= tol {
			return x, stats, nil
		}

		floats.MulTo(z, invDiag, r)
		rzNext := floats.Dot(r, z)
		beta := rzNext / rz
		rz = rzNext
		for j := range p {
			p[j] = z[j] + beta*p[j]
		}
	}
	return nil, stats, fmt.Errorf("conjugate gradients did not converge in %d iterations (relative residual %g): %w",
		maxIter, stats.ResidualNorm, ErrSolverFailure)
}
