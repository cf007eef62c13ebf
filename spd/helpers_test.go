// SPDX-License-Identifier: MIT
// Package spd_test holds shared fixtures for the SPD tests.

package spd_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/riemann/manifold"
	"github.com/katalvlaran/riemann/matrix"
	"github.com/katalvlaran/riemann/spd"
	"github.com/stretchr/testify/require"
)

const (
	tol      = 1e-10
	roundTol = 1e-10
)

func mustFrom(t testing.TB, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)

	return m
}

func mustDiag(t testing.TB, d ...float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDiagonal(d)
	require.NoError(t, err)

	return m
}

// randomMatrix returns an n×n matrix with entries in [-1, 1).
func randomMatrix(t testing.TB, n int, rng *rand.Rand) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(n, n)
	require.NoError(t, err)
	require.NoError(t, m.Apply(func(_, _ int, _ float64) float64 { return rng.Float64()*2 - 1 }))

	return m
}

// randomSPD returns a·aᵀ + I/2 for a random a.
func randomSPD(t testing.TB, n int, seed int64) *matrix.Dense {
	t.Helper()
	a := randomMatrix(t, n, rand.New(rand.NewSource(seed)))
	p, err := matrix.ZerosLike(a)
	require.NoError(t, err)
	require.NoError(t, matrix.MulTransInto(p, a, a))
	data := p.RawData()
	for i := 0; i < n; i++ {
		data[i*n+i] += 0.5
	}

	return p
}

// randomTangent returns a random symmetric matrix scaled by s.
func randomTangent(t testing.TB, n int, seed int64, s float64) *matrix.Dense {
	t.Helper()
	a := randomMatrix(t, n, rand.New(rand.NewSource(seed)))
	X, err := matrix.ZerosLike(a)
	require.NoError(t, err)
	require.NoError(t, spd.EuclideanEmbedding{}.ProjectInto(X, nil, a))
	require.NoError(t, matrix.ScaleInto(X, s, X))

	return X
}

// rotatedNearSingular returns R·diag(1e-12, 1)·Rᵀ for the rotation R by
// theta: a valid point whose tiny pivot is coupled to the other coordinate.
func rotatedNearSingular(t testing.TB, theta float64) *matrix.Dense {
	t.Helper()
	const small, large = 1e-12, 1.0
	c, s := math.Cos(theta), math.Sin(theta)
	off := (small - large) * c * s

	return mustFrom(t, [][]float64{
		{small*c*c + large*s*s, off},
		{off, small*s*s + large*c*c},
	})
}

// requireFiniteOrFactorization accepts either manifold.ErrFactorization or
// a finite result.
func requireFiniteOrFactorization(t testing.TB, name string, err error, m *matrix.Dense) {
	t.Helper()
	if err != nil {
		require.ErrorIs(t, err, manifold.ErrFactorization, name)
		return
	}
	require.NoError(t, matrix.ValidateFinite(m), "%s:\n%v", name, m)
}

// requireFiniteScalarOrFactorization is requireFiniteOrFactorization for scalars.
func requireFiniteScalarOrFactorization(t testing.TB, name string, err error, v float64) {
	t.Helper()
	if err != nil {
		require.ErrorIs(t, err, manifold.ErrFactorization, name)
		return
	}
	require.False(t, math.IsNaN(v) || math.IsInf(v, 0), "%s: %v", name, v)
}

func requireClose(t testing.TB, want, got *matrix.Dense, atol float64) {
	t.Helper()
	ok, err := matrix.AllClose(got, want, 0, atol)
	require.NoError(t, err)
	require.Truef(t, ok, "want:\n%v\ngot:\n%v", want, got)
}

// logCholesky decorates SPD(n) with the Log-Cholesky metric.
func logCholesky(n int) manifold.Manifold {
	return manifold.NewMetricManifold(spd.MustNew(n), spd.LogCholesky{})
}

// metrics lists the manifolds every generic property test runs against.
func metrics(n int) map[string]manifold.Manifold {
	return map[string]manifold.Manifold{
		"affine-invariant": spd.MustNew(n),
		"log-cholesky":     logCholesky(n),
	}
}
