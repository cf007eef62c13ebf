// SPDX-License-Identifier: MIT

// Package matrix provides the dense storage and numeric kernels that the
// manifold packages are built on.
//
// The matrix package provides:
//
//   - Dense: a row-major float64 matrix with bounds-checked At/Set and an
//     optional finite-value guard.
//   - Allocating kernels over the Matrix interface (Add, Sub, Mul, Transpose,
//     Scale) with a flat-slice fast path for *Dense operands.
//   - In-place *Dense kernels (MulInto, SymmetricProductSumInto,
//     SymmetricCongruenceInto, ...) that tolerate dst aliasing an input.
//   - Triangular helpers: LowerInto, StrictlyLowerInto, HalfDiagonalLowerInto,
//     forward substitution (SolveLowerInto) and whitening L⁻¹·S·L⁻ᵀ.
//   - Factorizations backed by gonum: Cholesky, SymEigen, and symmetric
//     matrix functions (SymExpInto, SymLogInto, SymSqrtInto).
//   - Central validators (ValidateSymmetric, ValidateLowerTriangular, ...) that
//     return sentinel errors for errors.Is matching.
//
// All kernels are deterministic and never panic on user input.
package matrix
