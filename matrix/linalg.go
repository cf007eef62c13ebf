// SPDX-License-Identifier: MIT
// Package matrix provides the in-place (*Into) kernels on *Dense used by the
// manifold hot paths: scaled addition, scaling, transpose, products and
// symmetric congruences.
//
// Purpose:
//   - Kernels operate on *Dense only, write into caller-owned storage, and
//     are alias-safe: dst may be any of the inputs.
//
// Notes:
//   - All kernels use central validators and wrap failures via matrixErrorf(op, err).

package matrix

import (
	"fmt"
)

// ZeroSum is the initial sum value for products and forward substitution.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMulInto       = "MulInto"
	opMulTrans      = "MulTrans"
	opScaleInto     = "ScaleInto"
	opSymProductSum = "SymmetricProductSum"
	opSymCongruence = "SymmetricCongruence"
	opTransposeInto = "TransposeInto"
	opAddScaledInto = "AddScaledInto"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// AI-Hints:
//   - Always gate calls with `if err != nil { return nil, matrixErrorf(tag, err) }`.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// mulFlat accumulates out = a·b on row-major buffers (out must be zeroed).
// a is r×n, b is n×c. i-k-j order keeps the inner loop contiguous.
func mulFlat(out, a, b []float64, r, n, c int) {
	var i, j, k, rowA, rowB, rowR int
	var av float64
	for i = 0; i < r; i++ {
		rowA = i * n
		rowR = i * c
		for k = 0; k < n; k++ {
			av = a[rowA+k]
			if av == 0 {
				continue
			}
			rowB = k * c
			for j = 0; j < c; j++ {
				out[rowR+j] += av * b[rowB+j]
			}
		}
	}
}

// checkSameShapes returns ErrNilMatrix / ErrDimensionMismatch unless every
// operand is non-nil and shaped like the first one.
func checkSameShapes(op string, ms ...*Dense) error {
	for _, m := range ms {
		if m == nil {
			return matrixErrorf(op, ErrNilMatrix)
		}
	}
	r, c := ms[0].r, ms[0].c
	for _, m := range ms[1:] {
		if m.r != r || m.c != c {
			return matrixErrorf(op, fmt.Errorf("%dx%d vs %dx%d: %w", r, c, m.r, m.c, ErrDimensionMismatch))
		}
	}

	return nil
}

// checkSquareShapes is checkSameShapes plus a square requirement on the first operand.
func checkSquareShapes(op string, ms ...*Dense) error {
	if err := checkSameShapes(op, ms...); err != nil {
		return err
	}
	if ms[0].r != ms[0].c {
		return matrixErrorf(op, ErrNonSquare)
	}

	return nil
}

// AddScaledInto writes dst = a + alpha*b element-wise.
// dst may alias a or b (element-wise kernel).
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*c), no allocation.
func AddScaledInto(dst, a *Dense, alpha float64, b *Dense) error {
	if err := checkSameShapes(opAddScaledInto, dst, a, b); err != nil {
		return err
	}
	for idx := range dst.data {
		dst.data[idx] = a.data[idx] + alpha*b.data[idx]
	}

	return nil
}

// ScaleInto writes dst = alpha*a element-wise. dst may alias a.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*c), no allocation.
func ScaleInto(dst *Dense, alpha float64, a *Dense) error {
	if err := checkSameShapes(opScaleInto, dst, a); err != nil {
		return err
	}
	for idx := range dst.data {
		dst.data[idx] = alpha * a.data[idx]
	}

	return nil
}

// TransposeInto writes dst = aᵀ for square a. dst may alias a.
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrNonSquare.
// Complexity: O(n^2), no allocation.
func TransposeInto(dst, a *Dense) error {
	if err := checkSquareShapes(opTransposeInto, a, dst); err != nil {
		return err
	}
	n := a.r
	var i, j int
	var aij, aji float64
	for i = 0; i < n; i++ {
		dst.data[i*n+i] = a.data[i*n+i]
		for j = i + 1; j < n; j++ {
			// read the pair before writing so the swap is alias-safe
			aij, aji = a.data[i*n+j], a.data[j*n+i]
			dst.data[i*n+j], dst.data[j*n+i] = aji, aij
		}
	}

	return nil
}

// MulInto writes dst = a·b for square operands of equal size.
// dst may alias a or b: the product is formed in scratch first.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrNonSquare.
// Complexity: Time O(n^3), Space O(n^2) scratch.
func MulInto(dst, a, b *Dense) error {
	if err := checkSquareShapes(opMulInto, a, b, dst); err != nil {
		return err
	}
	n := a.r
	scratch := make([]float64, n*n)
	mulFlat(scratch, a.data, b.data, n, n, n)
	copy(dst.data, scratch)

	return nil
}

// MulTransInto writes dst = a·bᵀ for square operands of equal size.
// dst may alias a or b.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrNonSquare.
// Complexity: Time O(n^3), Space O(n^2) scratch.
func MulTransInto(dst, a, b *Dense) error {
	if err := checkSquareShapes(opMulTrans, a, b, dst); err != nil {
		return err
	}
	n := a.r
	scratch := make([]float64, n*n)
	var i, j, k int
	var sum float64
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			sum = ZeroSum
			for k = 0; k < n; k++ { // row i of a · row j of b
				sum += a.data[i*n+k] * b.data[j*n+k]
			}
			scratch[i*n+j] = sum
		}
	}
	copy(dst.data, scratch)

	return nil
}

// SymmetricProductSumInto writes dst = a·bᵀ + b·aᵀ.
//
// Implementation:
//   - Stage 1: compute the lower triangle s_ij = Σ_k (a_ik·b_jk + b_ik·a_jk), i ≥ j.
//   - Stage 2: mirror into the upper triangle.
//
// Behavior highlights:
//   - The result is exactly symmetric (not just up to rounding).
//   - dst may alias a or b.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrNonSquare.
// Complexity: Time O(n^3), Space O(n^2) scratch.
func SymmetricProductSumInto(dst, a, b *Dense) error {
	if err := checkSquareShapes(opSymProductSum, a, b, dst); err != nil {
		return err
	}
	n := a.r
	scratch := make([]float64, n*n)
	var i, j, k int
	var sum float64
	for i = 0; i < n; i++ {
		for j = 0; j <= i; j++ {
			sum = ZeroSum
			for k = 0; k < n; k++ {
				sum += a.data[i*n+k]*b.data[j*n+k] + b.data[i*n+k]*a.data[j*n+k]
			}
			scratch[i*n+j] = sum
			scratch[j*n+i] = sum
		}
	}
	copy(dst.data, scratch)

	return nil
}

// SymmetricCongruenceInto writes dst = g·s·gᵀ for a symmetric s.
//
// Implementation:
//   - Stage 1: t = g·s (scratch).
//   - Stage 2: dst_ij = Σ_k t_ik·g_jk for i ≥ j, mirrored into the upper triangle.
//
// Behavior highlights:
//   - Only meaningful when s is symmetric; the output is exactly symmetric.
//   - dst may alias g or s.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrNonSquare.
// Complexity: Time O(n^3), Space O(n^2) scratch.
func SymmetricCongruenceInto(dst, g, s *Dense) error {
	if err := checkSquareShapes(opSymCongruence, g, s, dst); err != nil {
		return err
	}
	n := g.r
	t := make([]float64, n*n)
	mulFlat(t, g.data, s.data, n, n, n)

	out := make([]float64, n*n)
	var i, j, k int
	var sum float64
	for i = 0; i < n; i++ {
		for j = 0; j <= i; j++ {
			sum = ZeroSum
			for k = 0; k < n; k++ {
				sum += t[i*n+k] * g.data[j*n+k]
			}
			out[i*n+j] = sum
			out[j*n+i] = sum
		}
	}
	copy(dst.data, out)

	return nil
}
