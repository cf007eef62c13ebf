// SPDX-License-Identifier: MIT
// Package cholesky: tangent-space coordinates.
//
// Layout (both bases): the strictly-lower entries V_ij, i>j, in row-major
// order, followed by the N diagonal entries. The orthonormal basis divides
// the diagonal by x_ii (the metric weight); the canonical basis keeps the raw
// entries.

package cholesky

import (
	"fmt"

	"github.com/katalvlaran/riemann/manifold"
	"github.com/katalvlaran/riemann/matrix"
)

// CoordinatesInto writes the coordinates of V ∈ T_xL in basis b into c.
// len(c) must equal Dimension().
//
// Errors: matrix.ErrDimensionMismatch, manifold.ErrNotImplemented (unknown basis).
// Complexity: O(N²).
func (s Space) CoordinatesInto(c []float64, x, V *matrix.Dense, b manifold.Basis) error {
	if err := s.checkCoordinateArgs(opCoordinates, c, b, x, V); err != nil {
		return err
	}
	xd, vd := x.RawData(), V.RawData()
	n := s.n
	k := 0
	for i := 1; i < n; i++ {
		for j := 0; j < i; j++ {
			c[k] = vd[i*n+j]
			k++
		}
	}
	for i := 0; i < n; i++ {
		c[k] = vd[i*n+i]
		if b == manifold.DefaultOrthonormalBasis {
			c[k] /= xd[i*n+i]
		}
		k++
	}

	return nil
}

// VectorInto writes the tangent vector at x with coordinates c in basis b into V.
// The strictly-upper part of V is zeroed.
//
// Errors: matrix.ErrDimensionMismatch, manifold.ErrNotImplemented (unknown basis).
// Complexity: O(N²).
func (s Space) VectorInto(V, x *matrix.Dense, c []float64, b manifold.Basis) error {
	if err := s.checkCoordinateArgs(opVector, c, b, x, V); err != nil {
		return err
	}
	xd, vd := x.RawData(), V.RawData()
	n := s.n
	// diagonal first: V may alias x
	k := n * (n - 1) / 2
	for i := 0; i < n; i++ {
		v := c[k]
		if b == manifold.DefaultOrthonormalBasis {
			v *= xd[i*n+i]
		}
		vd[i*n+i] = v
		k++
	}
	k = 0
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			vd[i*n+j] = c[k]
			k++
		}
		for j := i + 1; j < n; j++ {
			vd[i*n+j] = 0
		}
	}

	return nil
}

func (s Space) checkCoordinateArgs(tag string, c []float64, b manifold.Basis, ms ...*matrix.Dense) error {
	if b != manifold.DefaultOrthonormalBasis && b != manifold.CanonicalBasis {
		return fmt.Errorf("%s: basis %s: %w", tag, b, manifold.ErrNotImplemented)
	}
	if err := matrix.ValidateVecLen(c, s.Dimension()); err != nil {
		return fmt.Errorf("%s: %w", tag, err)
	}

	return sameSize(tag, s.n, ms...)
}
