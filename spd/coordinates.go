// SPDX-License-Identifier: MIT
// Package spd: tangent-space coordinates.
//
// Layout: the strictly-lower entries in row-major order, then the N diagonal
// entries, matching the cholesky package. The canonical basis reads the raw
// symmetric entries of X and is shared by every metric. The orthonormal
// basis depends on the metric:
//
//	affine-invariant: V = x⁻¹·X·x⁻ᵀ,  c = (√2·V_ij for i>j, V_ii)
//	Log-Cholesky:     the orthonormal Cholesky coordinates of the pull-back W
package spd

import (
	"fmt"
	"math"

	"github.com/katalvlaran/riemann/manifold"
	"github.com/katalvlaran/riemann/matrix"
)

const (
	opCoordinates = "spd.CoordinatesInto"
	opVector      = "spd.VectorInto"
)

// packSymmetric writes the lower triangle of the symmetric s into c, scaling
// the strictly-lower entries by off.
func packSymmetric(c []float64, s *matrix.Dense, off float64) {
	n := s.Rows()
	sd := s.RawData()
	k := 0
	for i := 1; i < n; i++ {
		for j := 0; j < i; j++ {
			c[k] = off * sd[i*n+j]
			k++
		}
	}
	for i := 0; i < n; i++ {
		c[k] = sd[i*n+i]
		k++
	}
}

// unpackSymmetric is the inverse of packSymmetric: it fills both triangles of
// s, dividing the strictly-lower entries by off.
func unpackSymmetric(s *matrix.Dense, c []float64, off float64) {
	n := s.Rows()
	sd := s.RawData()
	k := 0
	for i := 1; i < n; i++ {
		for j := 0; j < i; j++ {
			v := c[k] / off
			sd[i*n+j] = v
			sd[j*n+i] = v
			k++
		}
	}
	for i := 0; i < n; i++ {
		sd[i*n+i] = c[k]
		k++
	}
}

// checkCoordinateArgs validates the basis, len(c) = N(N+1)/2 and that every
// operand is a non-nil N×N matrix, N taken from ref.
func checkCoordinateArgs(tag string, c []float64, b manifold.Basis, ref *matrix.Dense, ms ...*matrix.Dense) error {
	if b != manifold.DefaultOrthonormalBasis && b != manifold.CanonicalBasis {
		return fmt.Errorf("%s: basis %s: %w", tag, b, manifold.ErrNotImplemented)
	}
	if err := matrix.ValidateSquareNonNil(ref); err != nil {
		return fmt.Errorf("%s: %w", tag, err)
	}
	n := ref.Rows()
	if err := matrix.ValidateVecLen(c, n*(n+1)/2); err != nil {
		return fmt.Errorf("%s: %w", tag, err)
	}
	for _, m := range ms {
		if m == nil {
			return fmt.Errorf("%s: %w", tag, matrix.ErrNilMatrix)
		}
		if r, cc := m.Shape(); r != n || cc != n {
			return fmt.Errorf("%s: %dx%d, want %dx%d: %w", tag, r, cc, n, n, matrix.ErrDimensionMismatch)
		}
	}

	return nil
}

// CoordinatesInto writes the coordinates of X ∈ T_pSPD in basis b into c.
//
// Errors: matrix.ErrDimensionMismatch, manifold.ErrNotImplemented (unknown basis),
// manifold.ErrFactorization (orthonormal basis at a non-SPD p).
// Complexity: O(N²) canonical, O(N³) orthonormal.
func (m Manifold) CoordinatesInto(c []float64, p, X *matrix.Dense, b manifold.Basis) error {
	if err := checkCoordinateArgs(opCoordinates, c, b, p, X); err != nil {
		return err
	}
	if b == manifold.CanonicalBasis {
		packSymmetric(c, X, 1)
		return nil
	}
	_, V, err := whitened(opCoordinates, p, X)
	if err != nil {
		return err
	}
	packSymmetric(c, V, math.Sqrt2)

	return nil
}

// VectorInto writes the tangent vector at p with coordinates c in basis b
// into X. X may alias p.
//
// Errors: as CoordinatesInto.
// Complexity: O(N²) canonical, O(N³) orthonormal.
func (m Manifold) VectorInto(X, p *matrix.Dense, c []float64, b manifold.Basis) error {
	if err := checkCoordinateArgs(opVector, c, b, p, X); err != nil {
		return err
	}
	if b == manifold.CanonicalBasis {
		unpackSymmetric(X, c, 1)
		return nil
	}
	x, err := Factor(p)
	if err != nil {
		return fmt.Errorf("%s: %w", opVector, err)
	}
	V, err := matrix.ZerosLike(x)
	if err != nil {
		return fmt.Errorf("%s: %w", opVector, err)
	}
	unpackSymmetric(V, c, math.Sqrt2)
	if err = matrix.SymmetricCongruenceInto(X, x, V); err != nil {
		return fmt.Errorf("%s: %w", opVector, err)
	}

	return nil
}
