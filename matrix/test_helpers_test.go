// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   - Provide small, deterministic fixtures (seeded random SPD / lower-triangular matrices).
//   - Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/riemann/matrix"
	"github.com/stretchr/testify/require"
)

const (
	tightTol = 1e-12
	looseTol = 1e-9
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing the interface fallback path in kernels.
type hide struct{ matrix.Matrix }

// MustDense allocates an r×c *Dense or fails the test.
func MustDense(t testing.TB, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err)

	return m
}

// MustFrom builds a *Dense from rows or fails the test.
func MustFrom(t testing.TB, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)

	return m
}

// MustAt reads m[i,j] or fails the test.
func MustAt(t testing.TB, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// RandomDense fills an r×c matrix with values in [-1, 1) from a seeded source.
func RandomDense(t testing.TB, r, c int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	m := MustDense(t, r, c)
	require.NoError(t, m.Apply(func(_, _ int, _ float64) float64 { return rng.Float64()*2 - 1 }))

	return m
}

// RandomSPD returns a·aᵀ + n·I for a random a: symmetric and well conditioned.
func RandomSPD(t testing.TB, n int, seed int64) *matrix.Dense {
	t.Helper()
	a := RandomDense(t, n, n, seed)
	p := MustDense(t, n, n)
	require.NoError(t, matrix.MulTransInto(p, a, a))
	for i := 0; i < n; i++ {
		require.NoError(t, p.Set(i, i, MustAt(t, p, i, i)+float64(n)))
	}

	return p
}

// RandomSymmetric returns (a + aᵀ)/2 for a random a.
func RandomSymmetric(t testing.TB, n int, seed int64) *matrix.Dense {
	t.Helper()
	a := RandomDense(t, n, n, seed)
	out := MustDense(t, n, n)
	require.NoError(t, matrix.TransposeInto(out, a))
	require.NoError(t, matrix.AddScaledInto(out, a, 1, out))
	require.NoError(t, matrix.ScaleInto(out, 0.5, out))

	return out
}

// RequireClose asserts AllClose(got, want) within an absolute tolerance.
func RequireClose(t testing.TB, want, got matrix.Matrix, atol float64) {
	t.Helper()
	ok, err := matrix.AllClose(got, want, 0, atol)
	require.NoError(t, err)
	require.Truef(t, ok, "matrices differ\nwant:\n%v\ngot:\n%v", want, got)
}
