// SPDX-License-Identifier: MIT
// Package spd: the change of representation between SPD matrices and their
// Cholesky factors, for points and for tangent vectors.
//
// Points:   p = x·xᵀ, x lower triangular with a positive diagonal.
// Tangents: the differential of p ↦ x maps a symmetric X at p to
//
//	W = x·(strictly_lower(w) + diag(w)/2),  w = x⁻¹·X·x⁻ᵀ
//
// and its inverse is X = W·xᵀ + x·Wᵀ.

package spd

import (
	"fmt"
	"math"

	"github.com/katalvlaran/riemann/manifold"
	"github.com/katalvlaran/riemann/matrix"
)

const (
	opFactor            = "spd.Factor"
	opFromFactor        = "spd.FromFactorInto"
	opTangentToFactor   = "spd.TangentToFactor"
	opTangentFromFactor = "spd.TangentFromFactorInto"

	reasonPullBack   = "pull-back through the factor is not finite"
	reasonNoFactor   = "no Cholesky factor"
	reasonAsymmetric = "not symmetric"
	reasonNotFinite  = "result is not finite"

	// symmetryRTol bounds |p_ij − p_ji| relative to max(1, max|p_ij|).
	symmetryRTol = 1e-8
)

// factorizationError reports cause as a manifold.ErrFactorization while
// keeping the matrix sentinel matchable.
func factorizationError(tag, reason string, cause error) error {
	return fmt.Errorf("%s: %s: %w: %w", tag, reason, manifold.ErrFactorization, cause)
}

// finiteResult rejects a non-finite operator output.
func finiteResult(tag string, m *matrix.Dense) error {
	if err := matrix.ValidateFinite(m); err != nil {
		return factorizationError(tag, reasonNotFinite, err)
	}

	return nil
}

// finiteScalar is finiteResult for scalar outputs.
func finiteScalar(tag string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return factorizationError(tag, reasonNotFinite, matrix.ErrNaNInf)
	}

	return nil
}

// symmetryTol scales symmetryRTol by the largest entry magnitude of p.
func symmetryTol(p *matrix.Dense) float64 {
	scale := 1.0
	for _, v := range p.RawData() {
		scale = math.Max(scale, math.Abs(v))
	}

	return symmetryRTol * scale
}

// Factor returns the lower-triangular Cholesky factor x of p (x·xᵀ = p).
// p must be finite and symmetric within a tolerance relative to its largest
// entry; the factorization itself reads a single triangle.
//
// Errors:
//   - manifold.ErrFactorization (with matrix.ErrNotPositiveDefinite, ...) when p has no factor.
//   - manifold.ErrFactorization with matrix.ErrAsymmetry when p is not symmetric.
//
// Complexity: O(N³).
func Factor(p *matrix.Dense) (*matrix.Dense, error) {
	if err := matrix.ValidateSquareNonNil(p); err != nil {
		return nil, factorizationError(opFactor, reasonNoFactor, err)
	}
	if err := matrix.ValidateFinite(p); err != nil {
		return nil, factorizationError(opFactor, reasonNoFactor, err)
	}
	if err := matrix.ValidateSymmetric(p, symmetryTol(p)); err != nil {
		return nil, factorizationError(opFactor, reasonAsymmetric, err)
	}
	x, err := matrix.Cholesky(p)
	if err != nil {
		return nil, factorizationError(opFactor, reasonNoFactor, err)
	}

	return x, nil
}

// FromFactorInto writes p = x·xᵀ. The result is exactly symmetric; p may alias x.
// Complexity: O(N³).
func FromFactorInto(p, x *matrix.Dense) error {
	if err := matrix.MulTransInto(p, x, x); err != nil {
		return fmt.Errorf("%s: %w", opFromFactor, err)
	}

	return nil
}

// FromFactor returns x·xᵀ in a fresh matrix.
func FromFactor(x *matrix.Dense) (*matrix.Dense, error) {
	p, err := matrix.ZerosLike(x)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opFromFactor, err)
	}
	if err = FromFactorInto(p, x); err != nil {
		return nil, err
	}

	return p, nil
}

// TangentToFactorWith writes into W the pull-back of the symmetric X through
// an already computed factor x. W is lower triangular; W may alias X.
//
// Implementation:
//   - Stage 1: w = x⁻¹·X·x⁻ᵀ (two forward substitutions, symmetrized).
//   - Stage 2: h = strictly_lower(w) + diag(w)/2.
//   - Stage 3: W = x·h, rejected unless finite.
//
// Errors:
//   - manifold.ErrFactorization when the pull-back is not finite.
//   - matrix.ErrDimensionMismatch / ErrNilMatrix on malformed operands.
//
// Complexity: O(N³).
func TangentToFactorWith(x, X, W *matrix.Dense) error {
	if x == nil || W == nil {
		return fmt.Errorf("%s: %w", opTangentToFactor, matrix.ErrNilMatrix)
	}
	w, err := matrix.ZerosLike(X)
	if err != nil {
		return fmt.Errorf("%s: %w", opTangentToFactor, err)
	}
	if err = matrix.WhitenSymmetricInto(w, x, X); err != nil {
		return factorizationError(opTangentToFactor, reasonPullBack, err)
	}
	if err = matrix.HalfDiagonalLowerInto(w, w); err != nil {
		return fmt.Errorf("%s: %w", opTangentToFactor, err)
	}
	if err = matrix.MulInto(w, x, w); err != nil {
		return fmt.Errorf("%s: %w", opTangentToFactor, err)
	}
	if err = matrix.ValidateFinite(w); err != nil {
		return factorizationError(opTangentToFactor, reasonPullBack, err)
	}

	return W.CopyFrom(w)
}

// TangentToFactor factors p and pulls X back through the factor.
// Returns the factor x and the lower-triangular W.
func TangentToFactor(p, X *matrix.Dense) (*matrix.Dense, *matrix.Dense, error) {
	x, err := Factor(p)
	if err != nil {
		return nil, nil, err
	}
	W, err := matrix.ZerosLike(x)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opTangentToFactor, err)
	}
	if err = TangentToFactorWith(x, X, W); err != nil {
		return nil, nil, err
	}

	return x, W, nil
}

// TangentFromFactorInto writes X = W·xᵀ + x·Wᵀ. The result is exactly
// symmetric; X may alias x or W.
// Complexity: O(N³).
func TangentFromFactorInto(X, x, W *matrix.Dense) error {
	if err := matrix.SymmetricProductSumInto(X, W, x); err != nil {
		return fmt.Errorf("%s: %w", opTangentFromFactor, err)
	}

	return nil
}

// TangentFromFactor returns W·xᵀ + x·Wᵀ in a fresh matrix.
func TangentFromFactor(x, W *matrix.Dense) (*matrix.Dense, error) {
	X, err := matrix.ZerosLike(x)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opTangentFromFactor, err)
	}
	if err = TangentFromFactorInto(X, x, W); err != nil {
		return nil, err
	}

	return X, nil
}
