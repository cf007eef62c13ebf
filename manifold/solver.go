// SPDX-License-Identifier: MIT
// Package manifold: default Solver backed by gonum/optimize.
//
// The objective of an inverse retraction is smooth but has no closed-form
// gradient in general, so the gradient is a central finite difference
// (gonum/diff/fd) and the method is LBFGS.

package manifold

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/optimize"
)

// Defaults for GonumSolver.
const (
	// DefaultResidualThreshold is the objective value at or below which a run
	// counts as converged. Inverse retractions normalize their objective by
	// the scale of the target, so the threshold is relative there.
	DefaultResidualThreshold = 1e-16
	// DefaultMaxIterations bounds the LBFGS major iterations.
	DefaultMaxIterations = 200
)

const (
	panicThresholdInvalid  = "manifold: WithResidualThreshold: threshold must be finite, positive"
	panicIterationsInvalid = "manifold: WithMaxIterations: iterations must be > 0"
)

// SolverOption configures GonumSolver.
type SolverOption func(*solverOptions)

type solverOptions struct {
	threshold float64
	maxIter   int
}

// WithResidualThreshold sets the convergence threshold on the objective value.
// Panics when threshold is not finite and positive.
func WithResidualThreshold(threshold float64) SolverOption {
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) || threshold <= 0 {
		panic(panicThresholdInvalid)
	}

	return func(o *solverOptions) { o.threshold = threshold }
}

// WithMaxIterations bounds the number of major iterations. Panics when n ≤ 0.
func WithMaxIterations(n int) SolverOption {
	if n <= 0 {
		panic(panicIterationsInvalid)
	}

	return func(o *solverOptions) { o.maxIter = n }
}

// GonumSolver returns a Solver running LBFGS with a central-difference gradient.
//
// Behavior highlights:
//   - Converged is decided on the objective value alone (F ≤ threshold), so a
//     line search that stalls at an exact minimum still reports success.
//   - Optimizer errors are not returned; they surface as Converged=false
//     with the error kept in SolveResult.Cause.
func GonumSolver(opts ...SolverOption) Solver {
	o := solverOptions{threshold: DefaultResidualThreshold, maxIter: DefaultMaxIterations}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return func(f func([]float64) float64, x0 []float64) (SolveResult, error) {
		if len(x0) == 0 {
			return SolveResult{}, errors.New("manifold: solver: empty start point")
		}
		// x = 0 is often already optimal (q == p); skip the optimizer then.
		if f0 := f(x0); f0 <= o.threshold {
			return SolveResult{X: append([]float64(nil), x0...), Residual: f0, Converged: true}, nil
		}

		problem := optimize.Problem{
			Func: f,
			Grad: func(grad, x []float64) {
				fd.Gradient(grad, f, x, &fd.Settings{Formula: fd.Central})
			},
		}
		settings := &optimize.Settings{
			MajorIterations: o.maxIter,
			Converger: &optimize.FunctionConverge{
				Absolute:   o.threshold,
				Iterations: 20,
			},
		}

		res, err := optimize.Minimize(problem, x0, settings, &optimize.LBFGS{})
		if res == nil {
			return SolveResult{X: append([]float64(nil), x0...), Residual: math.Inf(1), Cause: err}, nil
		}
		out := SolveResult{
			X:          res.X,
			Residual:   res.F,
			Converged:  res.F <= o.threshold,
			Iterations: res.MajorIterations,
		}
		if !out.Converged {
			out.Cause = err
		}

		return out, nil
	}
}
