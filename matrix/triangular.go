// SPDX-License-Identifier: MIT
// Package matrix - triangular helpers and forward substitution.
//
// Purpose:
//   - Split square matrices into their strictly-lower / diagonal parts.
//   - Solve lower-triangular systems L·Y = B without forming L⁻¹.
//   - Provide the whitening congruence L⁻¹·X·L⁻ᵀ used to pull tangent vectors
//     back through a Cholesky factor.
//
// Determinism & Performance:
//   - Fixed loop orders, no map iteration.
//   - Forward substitution is O(n^3) for an n×n right-hand side.

package matrix

import (
	"fmt"
	"math"
)

const (
	opLowerInto          = "LowerInto"
	opStrictlyLowerInto  = "StrictlyLowerInto"
	opHalfDiagonalLower  = "HalfDiagonalLowerInto"
	opSolveLowerInto     = "SolveLowerInto"
	opWhitenSymmetric    = "WhitenSymmetricInto"
	opDiagonal           = "Diagonal"
	halfDiagonalFactor   = 0.5
	upperTriangleZeroVal = 0.0
)

// LowerInto writes the lower triangle of a (diagonal included) into dst and
// zeroes the strictly-upper part. dst may alias a.
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrNonSquare.
// Complexity: O(n^2).
func LowerInto(dst, a *Dense) error {
	if err := checkSquareShapes(opLowerInto, a, dst); err != nil {
		return err
	}
	n := a.r
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j <= i; j++ {
			dst.data[i*n+j] = a.data[i*n+j]
		}
		for j = i + 1; j < n; j++ {
			dst.data[i*n+j] = upperTriangleZeroVal
		}
	}

	return nil
}

// StrictlyLowerInto writes the strictly-lower part of a into dst (diagonal and
// upper part zeroed). dst may alias a.
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrNonSquare.
// Complexity: O(n^2).
func StrictlyLowerInto(dst, a *Dense) error {
	if err := checkSquareShapes(opStrictlyLowerInto, a, dst); err != nil {
		return err
	}
	n := a.r
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < i; j++ {
			dst.data[i*n+j] = a.data[i*n+j]
		}
		for j = i; j < n; j++ {
			dst.data[i*n+j] = upperTriangleZeroVal
		}
	}

	return nil
}

// HalfDiagonalLowerInto writes strictly_lower(a) + diag(a)/2 into dst.
// This is the lower-triangular half of a symmetric matrix: for symmetric s,
// h + hᵀ == s where h is the result. dst may alias a.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrNonSquare.
// Complexity: O(n^2).
func HalfDiagonalLowerInto(dst, a *Dense) error {
	if err := checkSquareShapes(opHalfDiagonalLower, a, dst); err != nil {
		return err
	}
	n := a.r
	var i, j int
	for i = 0; i < n; i++ {
		// each entry depends only on itself, so a single pass is alias-safe
		for j = 0; j < i; j++ {
			dst.data[i*n+j] = a.data[i*n+j]
		}
		dst.data[i*n+i] = halfDiagonalFactor * a.data[i*n+i]
		for j = i + 1; j < n; j++ {
			dst.data[i*n+j] = upperTriangleZeroVal
		}
	}

	return nil
}

// Diagonal returns a copy of the main diagonal of a square matrix.
// Errors: ErrNilMatrix, ErrNonSquare.
// Complexity: O(n).
func Diagonal(a *Dense) ([]float64, error) {
	if err := ValidateSquareNonNil(a); err != nil {
		return nil, matrixErrorf(opDiagonal, err)
	}
	n := a.r
	d := make([]float64, n)
	for i := 0; i < n; i++ {
		d[i] = a.data[i*n+i]
	}

	return d, nil
}

// SolveLowerInto writes Y = L⁻¹·B by forward substitution, column by column.
//
// Implementation:
//   - Stage 1: shape checks; if dst aliases l, solve into scratch.
//   - Stage 2: for each column j and row i ascending,
//     y_ij = (b_ij - Σ_{k<i} l_ik·y_kj) / l_ii.
//     Rows of B are read before the same rows of Y are written, so dst may alias b.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNonSquare.
//   - ErrSingular when a diagonal entry of l is zero.
//
// Complexity:
//   - Time O(n^3), Space O(1) (O(n^2) only when dst aliases l).
func SolveLowerInto(dst, l, b *Dense) error {
	if err := checkSquareShapes(opSolveLowerInto, l, b, dst); err != nil {
		return err
	}
	n := l.r
	for i := 0; i < n; i++ {
		if l.data[i*n+i] == 0 {
			return matrixErrorf(opSolveLowerInto, fmt.Errorf("pivot %d: %w", i, ErrSingular))
		}
	}

	out := dst.data
	if &dst.data[0] == &l.data[0] {
		out = make([]float64, n*n)
	}

	var i, j, k int
	var sum float64
	for j = 0; j < n; j++ {
		for i = 0; i < n; i++ {
			sum = b.data[i*n+j]
			for k = 0; k < i; k++ {
				sum -= l.data[i*n+k] * out[k*n+j]
			}
			out[i*n+j] = sum / l.data[i*n+i]
		}
	}
	if &out[0] != &dst.data[0] {
		copy(dst.data, out)
	}

	return nil
}

// WhitenSymmetricInto writes dst = L⁻¹·S·L⁻ᵀ for a symmetric S and a
// lower-triangular L with non-zero diagonal.
//
// Implementation:
//   - Stage 1: T = L⁻¹·S (forward substitution into scratch).
//   - Stage 2: U = L⁻¹·Tᵀ; since S is symmetric, U = (L⁻¹·S·L⁻ᵀ)ᵀ = L⁻¹·S·L⁻ᵀ.
//   - Stage 3: symmetrize U by averaging mirrored entries so the output is exactly symmetric.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNonSquare, ErrSingular.
//   - ErrNaNInf when the result is not finite (ill-conditioned factor).
//
// Complexity:
//   - Time O(n^3), Space O(n^2). dst may alias l or s.
func WhitenSymmetricInto(dst, l, s *Dense) error {
	if err := checkSquareShapes(opWhitenSymmetric, l, s, dst); err != nil {
		return err
	}
	n := l.r
	t, err := NewDense(n, n)
	if err != nil {
		return matrixErrorf(opWhitenSymmetric, err)
	}
	if err = SolveLowerInto(t, l, s); err != nil {
		return matrixErrorf(opWhitenSymmetric, err)
	}
	if err = TransposeInto(t, t); err != nil {
		return matrixErrorf(opWhitenSymmetric, err)
	}
	if err = SolveLowerInto(t, l, t); err != nil {
		return matrixErrorf(opWhitenSymmetric, err)
	}

	var i, j int
	var v float64
	for i = 0; i < n; i++ {
		for j = 0; j <= i; j++ {
			v = halfDiagonalFactor * (t.data[i*n+j] + t.data[j*n+i])
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return matrixErrorf(opWhitenSymmetric, ErrNaNInf)
			}
			t.data[i*n+j] = v
			t.data[j*n+i] = v
		}
	}
	copy(dst.data, t.data)

	return nil
}
