// SPDX-License-Identifier: MIT
// Package spd: the congruence action of GL(N) on SPD(N).
//
// g acts by p ↦ g·p·gᵀ. The action maps SPD matrices to SPD matrices for
// every invertible g and is an isometry of the affine-invariant metric.

package spd

import (
	"fmt"

	"github.com/katalvlaran/riemann/manifold"
	"github.com/katalvlaran/riemann/matrix"
)

const (
	opIdentity = "spd.GeneralLinear.Identity"
	opCompose  = "spd.GeneralLinear.Compose"
	opApply    = "spd.Congruence.Apply"
)

// GeneralLinear is the group of invertible real N×N matrices under multiplication.
// Invertibility of elements is the caller's responsibility.
type GeneralLinear struct{}

// Congruence is the action of GeneralLinear on SPD points by g·p·gᵀ.
type Congruence struct{}

var (
	_ manifold.Group  = GeneralLinear{}
	_ manifold.Action = Congruence{}
)

// Name implements manifold.Group.
func (GeneralLinear) Name() string { return "GL" }

// Identity returns the n×n identity.
func (GeneralLinear) Identity(n int) (*matrix.Dense, error) {
	e, err := matrix.NewIdentity(n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opIdentity, err)
	}

	return e, nil
}

// Compose returns the product g·h.
// Complexity: O(N³).
func (GeneralLinear) Compose(g, h *matrix.Dense) (*matrix.Dense, error) {
	if err := matrix.ValidateSquareNonNil(g); err != nil {
		return nil, fmt.Errorf("%s: %w", opCompose, err)
	}
	out, err := matrix.ZerosLike(g)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opCompose, err)
	}
	if err = matrix.MulInto(out, g, h); err != nil {
		return nil, fmt.Errorf("%s: %w", opCompose, err)
	}

	return out, nil
}

// BaseGroup implements manifold.Action.
func (Congruence) BaseGroup() manifold.Group { return GeneralLinear{} }

// Apply returns g·p·gᵀ, exactly symmetric.
// Complexity: O(N³).
func (Congruence) Apply(g, p *matrix.Dense) (*matrix.Dense, error) {
	if err := matrix.ValidateSquareNonNil(p); err != nil {
		return nil, fmt.Errorf("%s: %w", opApply, err)
	}
	out, err := matrix.ZerosLike(p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opApply, err)
	}
	if err = matrix.SymmetricCongruenceInto(out, g, p); err != nil {
		return nil, fmt.Errorf("%s: %w", opApply, err)
	}

	return out, nil
}
