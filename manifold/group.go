// SPDX-License-Identifier: MIT
// Package manifold: group and group-action boundary.
//
// Group elements and manifold points are both *matrix.Dense. Only the
// contract is defined here; concrete groups and actions live next to the
// manifolds they act on (see spd.GeneralLinear, spd.Congruence).

package manifold

import (
	"fmt"

	"github.com/katalvlaran/riemann/matrix"
)

const (
	opCompose = "Compose"
	opApply   = "Apply"
)

// Group is a matrix group.
type Group interface {
	Name() string
	// Identity returns the identity element for n×n matrices.
	Identity(n int) (*matrix.Dense, error)
	// Compose returns g∘h.
	Compose(g, h *matrix.Dense) (*matrix.Dense, error)
}

// Action is a left action of a group on a manifold's points.
type Action interface {
	BaseGroup() Group
	// Apply returns g·p.
	Apply(g, p *matrix.Dense) (*matrix.Dense, error)
}

// Compose returns g∘h in G.
func Compose(G Group, g, h *matrix.Dense) (*matrix.Dense, error) {
	if G == nil {
		return nil, manifoldErrorf(opCompose, fmt.Errorf("nil group: %w", ErrNotImplemented))
	}
	out, err := G.Compose(g, h)
	if err != nil {
		return nil, manifoldErrorf(opCompose, err)
	}

	return out, nil
}

// Apply returns A(g, p).
func Apply(A Action, g, p *matrix.Dense) (*matrix.Dense, error) {
	if A == nil {
		return nil, manifoldErrorf(opApply, fmt.Errorf("nil action: %w", ErrNotImplemented))
	}
	out, err := A.Apply(g, p)
	if err != nil {
		return nil, manifoldErrorf(opApply, err)
	}

	return out, nil
}

// BaseGroup returns the group acting through A.
func BaseGroup(A Action) Group { return A.BaseGroup() }
