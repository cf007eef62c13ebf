// SPDX-License-Identifier: MIT
// Package manifold: retractions and their numerical inversion.
//
// An inverse retraction is found by minimizing the relative squared residual
//
//	f(c) = ‖retract(p, Vector(p, c)) − q‖²_F / max(1, ‖q‖²_F)
//
// over orthonormal coordinates c, starting from c = 0. The minimization is
// delegated to a Solver; a result that did not converge is reported as
// ErrOutsideInjectivityRadius.

package manifold

import (
	"fmt"
	"math"
	"sync"

	"github.com/katalvlaran/riemann/matrix"
)

const opInverseRetract = "InverseRetract"

// RetractionFunc writes a retraction of X ∈ T_pM into q.
type RetractionFunc func(q, p, X *matrix.Dense) error

// ExpRetraction uses the exponential map of M as the retraction.
func ExpRetraction(M Manifold) RetractionFunc {
	return func(q, p, X *matrix.Dense) error { return ExpInto(M, q, p, X) }
}

// SolveResult is the outcome of a Solver run.
type SolveResult struct {
	X          []float64 // minimizer found
	Residual   float64   // objective value at X
	Converged  bool
	Iterations int
	Cause      error // optimizer error behind Converged=false, if any
}

// Solver minimizes f starting at x0. A solver reports Converged=false rather
// than an error when it simply failed to reach its tolerance.
type Solver func(f func([]float64) float64, x0 []float64) (SolveResult, error)

// InverseRetractInto writes the tangent vector X ∈ T_pM with retract(p, X) ≈ q.
//
// Implementation:
//   - Stage 1: resolve the coordinate capability of M (orthonormal basis).
//   - Stage 2: minimize the squared residual with solver (GonumSolver when nil).
//   - Stage 3: map the minimizer back to a tangent vector.
//
// Errors:
//   - ErrOutsideInjectivityRadius when the solver does not converge.
//   - ErrNotImplemented when M has no coordinate capability.
func InverseRetractInto(M Manifold, X *matrix.Dense, retract RetractionFunc, p, q *matrix.Dense, solver Solver) error {
	if solver == nil {
		solver = GonumSolver()
	}
	if _, err := resolveAs[HasCoordinates](M, OpVector); err != nil {
		return manifoldErrorf(opInverseRetract, err)
	}

	var (
		firstErr error
		record   sync.Once
	)
	qn := matrix.FrobeniusNorm(q)
	scale := math.Max(1, qn*qn)
	objective := func(c []float64) float64 {
		r, err := retractionResidual(M, retract, p, q, scale, c)
		if err != nil {
			record.Do(func() { firstErr = err })
			return math.Inf(1)
		}

		return r
	}

	res, err := solver(objective, make([]float64, M.Dimension()))
	if err != nil {
		return manifoldErrorf(opInverseRetract, err)
	}
	if !res.Converged {
		cause := fmt.Errorf("residual %g after %d iterations: %w", res.Residual, res.Iterations, ErrOutsideInjectivityRadius)
		if res.Cause != nil {
			cause = fmt.Errorf("%w (solver: %v)", cause, res.Cause)
		}
		if firstErr != nil {
			cause = fmt.Errorf("%w (retraction: %v)", cause, firstErr)
		}
		return manifoldErrorf(opInverseRetract, cause)
	}
	if err = VectorInto(M, X, p, res.X, DefaultOrthonormalBasis); err != nil {
		return manifoldErrorf(opInverseRetract, err)
	}

	return nil
}

// InverseRetract returns the tangent vector X ∈ T_pM with retract(p, X) ≈ q.
func InverseRetract(M Manifold, retract RetractionFunc, p, q *matrix.Dense, solver Solver) (*matrix.Dense, error) {
	X, err := newLike(opInverseRetract, p)
	if err != nil {
		return nil, err
	}
	if err = InverseRetractInto(M, X, retract, p, q, solver); err != nil {
		return nil, err
	}

	return X, nil
}

// retractionResidual returns ‖retract(p, Vector(p, c)) − q‖²_F / scale, where
// scale = max(1, ‖q‖²_F) keeps the threshold relative for large points.
// Scratch is allocated per call: solvers may evaluate concurrently.
func retractionResidual(M Manifold, retract RetractionFunc, p, q *matrix.Dense, scale float64, c []float64) (float64, error) {
	V, err := Vector(M, p, c, DefaultOrthonormalBasis)
	if err != nil {
		return 0, err
	}
	r, err := newLike(opInverseRetract, p)
	if err != nil {
		return 0, err
	}
	if err = retract(r, p, V); err != nil {
		return 0, err
	}
	if err = matrix.AddScaledInto(r, r, -1, q); err != nil {
		return 0, err
	}
	n := matrix.FrobeniusNorm(r)

	return n * n / scale, nil
}
