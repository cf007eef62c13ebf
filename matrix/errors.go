// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All kernels MUST return these sentinels and tests MUST check them
// via errors.Is. No kernel should panic on user-triggered error conditions.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Sentinels are returned bare by validators; kernels
// wrap them with matrixErrorf(opTag, err) so callers still match via errors.Is.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil -> shape -> NaN/Inf -> structural violations (symmetry, triangularity,
// diagonal sign) -> factorization failures.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., AddScaledInto on different shapes, or MulInto on unequal sizes.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrAsymmetry signals that a matrix expected to be symmetric violated symmetry
	// within the configured tolerance.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within eps")

	// ErrNotLowerTriangular signals a non-negligible entry above the main diagonal
	// where a lower-triangular matrix was required.
	ErrNotLowerTriangular = errors.New("matrix: matrix is not lower triangular within eps")

	// ErrNonPositiveDiagonal signals a diagonal entry ≤ 0 where a strictly positive
	// diagonal was required (Cholesky factors).
	ErrNonPositiveDiagonal = errors.New("matrix: diagonal entry is not positive")

	// ErrNotPositiveDefinite signals that a symmetric matrix has an eigenvalue ≤ 0,
	// or that a Cholesky factorization could not be formed.
	ErrNotPositiveDefinite = errors.New("matrix: matrix is not positive definite")

	// ErrNaNInf signals a NaN or ±Inf value was encountered where finite values
	// are required by the numeric policy (ingestion, Set, etc.).
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrEigenFailed indicates that the symmetric eigen-decomposition did not converge.
	ErrEigenFailed = errors.New("matrix: eigen decomposition failed")

	// ErrSingular is returned when a zero pivot is encountered during a triangular solve.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrRagged is returned by NewDenseFrom when the input rows differ in length.
	ErrRagged = errors.New("matrix: ragged row lengths")
)
