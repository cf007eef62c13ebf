// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for Cholesky and symmetric spectral kernels.
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/riemann/matrix"
	"github.com/stretchr/testify/require"
)

func TestCholesky_Reconstructs(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 2, 3, 6} {
		p := RandomSPD(t, n, int64(100+n))
		l, err := matrix.Cholesky(p)
		require.NoError(t, err)
		require.NoError(t, matrix.ValidateLowerTriangular(l, 0))
		require.NoError(t, matrix.ValidatePositiveDiagonal(l))

		back := MustDense(t, n, n)
		require.NoError(t, matrix.MulTransInto(back, l, l))
		RequireClose(t, p, back, looseTol)
	}
}

func TestCholesky_Rejects(t *testing.T) {
	t.Parallel()

	indefinite := MustFrom(t, [][]float64{{1, 2}, {2, 1}})
	_, err := matrix.Cholesky(indefinite)
	require.ErrorIs(t, err, matrix.ErrNotPositiveDefinite)

	_, err = matrix.Cholesky(MustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrNonSquare)

	_, err = matrix.Cholesky(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestSymEigen(t *testing.T) {
	t.Parallel()

	a := MustFrom(t, [][]float64{{2, 1}, {1, 2}})
	values, vecs, err := matrix.SymEigen(a)
	require.NoError(t, err)
	require.InDelta(t, 1.0, values[0], tightTol)
	require.InDelta(t, 3.0, values[1], tightTol)

	// V·diag(λ)·Vᵀ == a
	D, err := matrix.NewDiagonal(values)
	require.NoError(t, err)
	back := MustDense(t, 2, 2)
	require.NoError(t, matrix.SymmetricCongruenceInto(back, vecs, D))
	RequireClose(t, a, back, tightTol)

	minEig, err := matrix.MinEigenvalue(a)
	require.NoError(t, err)
	require.InDelta(t, 1.0, minEig, tightTol)
}

func TestSymFunctions(t *testing.T) {
	t.Parallel()

	// exp(diag(0, log 2)) = diag(1, 2)
	d := MustFrom(t, [][]float64{{0, 0}, {0, math.Ln2}})
	e := MustDense(t, 2, 2)
	require.NoError(t, matrix.SymExpInto(e, d))
	RequireClose(t, MustFrom(t, [][]float64{{1, 0}, {0, 2}}), e, tightTol)

	// log ∘ exp is the identity on symmetric matrices
	s := RandomSymmetric(t, 4, 51)
	ex := MustDense(t, 4, 4)
	require.NoError(t, matrix.SymExpInto(ex, s))
	lg := ex.CloneDense()
	require.NoError(t, matrix.SymLogInto(lg, lg))
	RequireClose(t, s, lg, looseTol)

	// sqrt(p)² == p
	p := RandomSPD(t, 3, 52)
	r := MustDense(t, 3, 3)
	require.NoError(t, matrix.SymSqrtInto(r, p))
	r2 := MustDense(t, 3, 3)
	require.NoError(t, matrix.MulInto(r2, r, r))
	RequireClose(t, p, r2, looseTol)

	// log of an indefinite matrix
	require.ErrorIs(t, matrix.SymLogInto(MustDense(t, 2, 2), MustFrom(t, [][]float64{{1, 2}, {2, 1}})), matrix.ErrNotPositiveDefinite)
}
