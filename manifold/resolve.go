// SPDX-License-Identifier: MIT
// Package manifold: operation resolution and decoration queries.

package manifold

import "fmt"

// Resolver is implemented by manifolds that choose op implementations
// themselves (Decorated does).
type Resolver interface {
	Resolve(op Op) (any, error)
}

// Resolve finds the implementation of op for M.
//
// Implementation:
//   - Stage 1: a Resolver decides (layer override → base, recursively).
//   - Stage 2: otherwise M itself serves op if it implements the capability.
//   - Stage 3: otherwise ErrNotImplemented naming the op and M.
//
// The returned value implements the Has* interface matching op (Manifold
// for the metric-independent ops).
func Resolve(M Manifold, op Op) (any, error) {
	if M == nil {
		return nil, fmt.Errorf("%s on <nil>: %w", op, ErrNotImplemented)
	}
	if r, ok := M.(Resolver); ok {
		return r.Resolve(op)
	}
	if impl, ok := capability(M, op); ok {
		return impl, nil
	}

	return nil, fmt.Errorf("%s on %s: %w", op, M.Name(), ErrNotImplemented)
}

// MetricOf returns the outermost metric layer decorating M, if any.
// Connection and embedding decorations are looked through.
func MetricOf(M Manifold) (Layer, bool) {
	for {
		d, ok := M.(*Decorated)
		if !ok {
			return nil, false
		}
		if d.category == CategoryMetric {
			return d.layer, true
		}
		M = d.base
	}
}

// BaseOf strips every decoration and returns the innermost manifold.
func BaseOf(M Manifold) Manifold {
	for {
		d, ok := M.(*Decorated)
		if !ok {
			return M
		}
		M = d.base
	}
}
