// SPDX-License-Identifier: MIT
// Package manifold_test contains unit tests for inverse retraction and the default solver.
package manifold_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/riemann/manifold"
	"github.com/katalvlaran/riemann/matrix"
	"github.com/stretchr/testify/require"
)

func TestInverseRetract_Euclidean(t *testing.T) {
	t.Parallel()

	M := euclid{2}
	p := mustFrom(t, [][]float64{{1, 0}, {0, 1}})
	q := mustFrom(t, [][]float64{{1.5, 0.2}, {-0.1, 0.7}})

	X, err := manifold.InverseRetract(M, manifold.ExpRetraction(M), p, q, nil)
	require.NoError(t, err)
	want, err := manifold.Log(M, p, q)
	require.NoError(t, err)
	requireClose(t, want, X, 1e-6)
}

func TestInverseRetract_SamePointSkipsSolver(t *testing.T) {
	t.Parallel()

	M := euclid{2}
	p := mustFrom(t, [][]float64{{1, 0}, {0, 1}})

	X, err := manifold.InverseRetract(M, manifold.ExpRetraction(M), p, p, manifold.GonumSolver())
	require.NoError(t, err)
	require.Equal(t, 0.0, matrix.FrobeniusNorm(X))
}

func TestInverseRetract_NotConverged(t *testing.T) {
	t.Parallel()

	stuck := func(f func([]float64) float64, x0 []float64) (manifold.SolveResult, error) {
		return manifold.SolveResult{X: x0, Residual: f(x0), Converged: false, Iterations: 7}, nil
	}
	M := euclid{1}
	p := mustFrom(t, [][]float64{{0}})
	q := mustFrom(t, [][]float64{{5}})

	_, err := manifold.InverseRetract(M, manifold.ExpRetraction(M), p, q, stuck)
	require.ErrorIs(t, err, manifold.ErrOutsideInjectivityRadius)
	require.Contains(t, err.Error(), "after 7 iterations")

	// the optimizer's own error is reported alongside
	failed := func(f func([]float64) float64, x0 []float64) (manifold.SolveResult, error) {
		return manifold.SolveResult{X: x0, Residual: f(x0), Cause: errors.New("linesearch: no progress")}, nil
	}
	_, err = manifold.InverseRetract(M, manifold.ExpRetraction(M), p, q, failed)
	require.ErrorIs(t, err, manifold.ErrOutsideInjectivityRadius)
	require.Contains(t, err.Error(), "linesearch: no progress")
}

func TestInverseRetract_ResidualIsRelative(t *testing.T) {
	t.Parallel()

	M := euclid{1}
	p := mustFrom(t, [][]float64{{1e6}})
	q := mustFrom(t, [][]float64{{1e6 + 3}})

	var seen float64
	record := func(f func([]float64) float64, x0 []float64) (manifold.SolveResult, error) {
		// off by one unit in the single coordinate
		seen = f([]float64{x0[0] + 2})
		return manifold.SolveResult{X: []float64{3}, Residual: 0, Converged: true}, nil
	}
	X, err := manifold.InverseRetract(M, manifold.ExpRetraction(M), p, q, record)
	require.NoError(t, err)
	require.InDelta(t, 3.0, X.RawData()[0], 1e-12)
	require.InEpsilon(t, 1/((1e6+3)*(1e6+3)), seen, 1e-9)
}

func TestInverseRetract_Errors(t *testing.T) {
	t.Parallel()

	p := mustFrom(t, [][]float64{{1}})

	// no coordinate capability
	_, err := manifold.InverseRetract(asBare(1), func(q, p, X *matrix.Dense) error { return nil }, p, p, nil)
	require.ErrorIs(t, err, manifold.ErrNotImplemented)

	// solver failure is propagated
	boom := errors.New("boom")
	failing := func(func([]float64) float64, []float64) (manifold.SolveResult, error) {
		return manifold.SolveResult{}, boom
	}
	_, err = manifold.InverseRetract(euclid{1}, manifold.ExpRetraction(euclid{1}), p, p, failing)
	require.ErrorIs(t, err, boom)

	// a retraction that always fails cannot converge
	bad := func(q, p, X *matrix.Dense) error { return manifold.ErrFactorization }
	_, err = manifold.InverseRetract(euclid{1}, bad, p, mustFrom(t, [][]float64{{2}}), nil)
	require.ErrorIs(t, err, manifold.ErrOutsideInjectivityRadius)
}

func TestGonumSolver_Quadratic(t *testing.T) {
	t.Parallel()

	f := func(x []float64) float64 {
		a, b := x[0]-1, x[1]+2
		return a*a + 3*b*b
	}
	res, err := manifold.GonumSolver(manifold.WithMaxIterations(100), manifold.WithResidualThreshold(1e-14))(f, []float64{0, 0})
	require.NoError(t, err)
	require.True(t, res.Converged)
	require.InDelta(t, 1.0, res.X[0], 1e-6)
	require.InDelta(t, -2.0, res.X[1], 1e-6)

	_, err = manifold.GonumSolver()(f, nil)
	require.Error(t, err)

	require.Panics(t, func() { manifold.WithMaxIterations(0) })
	require.Panics(t, func() { manifold.WithResidualThreshold(0) })
}
