// SPDX-License-Identifier: MIT
// Package matrix - Cholesky factorization and symmetric spectral functions.
//
// Purpose:
//   - Bridge *Dense to gonum's LAPACK-backed factorizations (mat.Cholesky, mat.EigenSym).
//   - Offer matrix functions of symmetric operands, f(S) = V·diag(f(λ))·Vᵀ,
//     used for the matrix exponential / logarithm / square root on SPD matrices.
//
// Contract:
//   - Symmetric inputs are read from their upper triangle by gonum; callers
//     pass symmetric matrices (validate with ValidateSymmetric when unsure).
//   - Results that are mathematically symmetric are written exactly symmetric.

package matrix

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	opCholesky    = "Cholesky"
	opSymEigen    = "SymEigen"
	opSymFunc     = "SymFuncInto"
	opSymLog      = "SymLogInto"
	opMinEigen    = "MinEigenvalue"
	wantEigenVecs = true
)

// toSym copies a square *Dense into a gonum SymDense (upper triangle is read).
// The buffer is copied: mat.NewSymDense keeps the slice it is given.
func toSym(a *Dense) *mat.SymDense {
	buf := make([]float64, len(a.data))
	copy(buf, a.data)

	return mat.NewSymDense(a.r, buf)
}

// Cholesky returns the lower-triangular factor L with L·Lᵀ = a.
//
// Implementation:
//   - Stage 1: validate a non-nil square input.
//   - Stage 2: factorize with mat.Cholesky; extract L via LTo into a TriDense.
//   - Stage 3: copy L into a fresh *Dense with a zero strictly-upper part.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare.
//   - ErrNotPositiveDefinite when the factorization fails or yields non-finite entries.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func Cholesky(a *Dense) (*Dense, error) {
	if err := ValidateSquareNonNil(a); err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	n := a.r
	var chol mat.Cholesky
	if ok := chol.Factorize(toSym(a)); !ok {
		return nil, matrixErrorf(opCholesky, ErrNotPositiveDefinite)
	}
	var tri mat.TriDense
	chol.LTo(&tri)

	out, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	var i, j int
	var v float64
	for i = 0; i < n; i++ {
		for j = 0; j <= i; j++ {
			v = tri.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, matrixErrorf(opCholesky, ErrNotPositiveDefinite)
			}
			out.data[i*n+j] = v
		}
	}

	return out, nil
}

// SymEigen computes the eigen-decomposition a = V·diag(λ)·Vᵀ of a symmetric matrix.
// Eigenvalues are returned in ascending order; column k of V pairs with λ[k].
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrEigenFailed.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func SymEigen(a *Dense) ([]float64, *Dense, error) {
	if err := ValidateSquareNonNil(a); err != nil {
		return nil, nil, matrixErrorf(opSymEigen, err)
	}
	var es mat.EigenSym
	if ok := es.Factorize(toSym(a), wantEigenVecs); !ok {
		return nil, nil, matrixErrorf(opSymEigen, ErrEigenFailed)
	}
	n := a.r
	values := es.Values(nil)
	var vecs mat.Dense
	es.VectorsTo(&vecs)

	v, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opSymEigen, err)
	}
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			v.data[i*n+j] = vecs.At(i, j)
		}
	}

	return values, v, nil
}

// MinEigenvalue returns the smallest eigenvalue of a symmetric matrix.
// Cheaper than SymEigen: eigenvectors are not requested.
// Errors: ErrNilMatrix, ErrNonSquare, ErrEigenFailed.
func MinEigenvalue(a *Dense) (float64, error) {
	if err := ValidateSquareNonNil(a); err != nil {
		return 0, matrixErrorf(opMinEigen, err)
	}
	var es mat.EigenSym
	if ok := es.Factorize(toSym(a), false); !ok {
		return 0, matrixErrorf(opMinEigen, ErrEigenFailed)
	}

	return es.Values(nil)[0], nil // ascending order
}

// SymFuncInto writes dst = f(a) = V·diag(f(λ))·Vᵀ for symmetric a.
//
// Implementation:
//   - Stage 1: SymEigen(a).
//   - Stage 2: map eigenvalues through f; reject non-finite images.
//   - Stage 3: assemble the lower triangle Σ_k v_ik·f(λ_k)·v_jk and mirror it.
//
// Behavior highlights:
//   - dst may alias a; the output is exactly symmetric.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNonSquare, ErrEigenFailed.
//   - ErrNaNInf when f produces a non-finite value on the spectrum.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func SymFuncInto(dst, a *Dense, f func(float64) float64) error {
	if err := checkSquareShapes(opSymFunc, a, dst); err != nil {
		return err
	}
	values, v, err := SymEigen(a)
	if err != nil {
		return matrixErrorf(opSymFunc, err)
	}
	n := a.r
	fv := make([]float64, n)
	for k, lambda := range values {
		fv[k] = f(lambda)
		if math.IsNaN(fv[k]) || math.IsInf(fv[k], 0) {
			return matrixErrorf(opSymFunc, fmt.Errorf("f(%g): %w", lambda, ErrNaNInf))
		}
	}

	var i, j, k int
	var sum float64
	for i = 0; i < n; i++ {
		for j = 0; j <= i; j++ {
			sum = ZeroSum
			for k = 0; k < n; k++ {
				sum += v.data[i*n+k] * fv[k] * v.data[j*n+k]
			}
			dst.data[i*n+j] = sum
			dst.data[j*n+i] = sum
		}
	}

	return nil
}

// SymExpInto writes the matrix exponential of a symmetric a into dst.
func SymExpInto(dst, a *Dense) error { return SymFuncInto(dst, a, math.Exp) }

// SymSqrtInto writes the principal square root of a symmetric positive
// semi-definite a into dst. Negative eigenvalues surface ErrNaNInf.
func SymSqrtInto(dst, a *Dense) error { return SymFuncInto(dst, a, math.Sqrt) }

// SymLogInto writes the principal logarithm of an SPD a into dst.
// Errors: ErrNotPositiveDefinite when an eigenvalue is ≤ 0.
func SymLogInto(dst, a *Dense) error {
	err := SymFuncInto(dst, a, math.Log)
	if err != nil && errors.Is(err, ErrNaNInf) {
		return matrixErrorf(opSymLog, ErrNotPositiveDefinite)
	}

	return err
}
