// SPDX-License-Identifier: MIT

// Package manifold: decorated manifolds.
//
// A Decorated pairs a base manifold with a layer of one Category. At
// construction the layer is checked once for every op of its category; the
// ops it implements are recorded in an override table. Everything else is
// forwarded to the base, so decorations nest:
//
//	M := NewConnectionManifold(NewMetricManifold(base, metric), conn)
//
// resolves exp/log/transport on conn first, then on metric, then on base,
// while inner/distance skip conn (not in its category) and go to metric.
package manifold

import (
	"fmt"

	"github.com/katalvlaran/riemann/matrix"
)

// Decorated is a base manifold carrying an alternate metric, connection or
// embedding. It is immutable after construction and safe for concurrent use.
type Decorated struct {
	base      Manifold
	category  Category
	layer     Layer
	overrides map[Op]any // read-only after construction
}

// Compile-time assertions.
var (
	_ Manifold = (*Decorated)(nil)
	_ Resolver = (*Decorated)(nil)
)

// newDecorated builds the override table for layer under category.
// Complexity: O(|category ops|).
func newDecorated(base Manifold, category Category, layer Layer) *Decorated {
	d := &Decorated{
		base:      base,
		category:  category,
		layer:     layer,
		overrides: make(map[Op]any),
	}
	for _, op := range category.Ops() {
		if impl, ok := capability(layer, op); ok {
			d.overrides[op] = impl
		}
	}

	return d
}

// NewMetricManifold decorates base with a metric layer.
func NewMetricManifold(base Manifold, metric Layer) *Decorated {
	return newDecorated(base, CategoryMetric, metric)
}

// NewConnectionManifold decorates base with an affine connection layer.
func NewConnectionManifold(base Manifold, conn Layer) *Decorated {
	return newDecorated(base, CategoryConnection, conn)
}

// NewEmbeddedManifold decorates base with an embedding layer.
func NewEmbeddedManifold(base Manifold, emb Layer) *Decorated {
	return newDecorated(base, CategoryEmbedding, emb)
}

// Name renders the decoration as Base{Layer}, e.g. "SPD(3){LogCholesky}".
func (d *Decorated) Name() string { return fmt.Sprintf("%s{%s}", d.base.Name(), d.layer.Name()) }

// Size forwards to the base.
func (d *Decorated) Size() int { return d.base.Size() }

// Field forwards to the base.
func (d *Decorated) Field() Field { return d.base.Field() }

// Dimension forwards to the base.
func (d *Decorated) Dimension() int { return d.base.Dimension() }

// CheckPoint forwards to the base.
func (d *Decorated) CheckPoint(p *matrix.Dense) error { return d.base.CheckPoint(p) }

// CheckVector forwards to the base.
func (d *Decorated) CheckVector(p, X *matrix.Dense) error { return d.base.CheckVector(p, X) }

// Base returns the decorated manifold (which may itself be decorated).
func (d *Decorated) Base() Manifold { return d.base }

// Layer returns the decoration layer.
func (d *Decorated) Layer() Layer { return d.layer }

// Category returns the decoration category.
func (d *Decorated) Category() Category { return d.category }

// Overrides reports whether the layer itself overrides op.
func (d *Decorated) Overrides(op Op) bool {
	_, ok := d.overrides[op]
	return ok
}

// Resolve returns the implementation of op: the layer override if any,
// otherwise whatever the base resolves to. Metric-independent ops always
// come from the base.
func (d *Decorated) Resolve(op Op) (any, error) {
	if !op.MetricIndependent() {
		if impl, ok := d.overrides[op]; ok {
			return impl, nil
		}
	}
	impl, err := Resolve(d.base, op)
	if err != nil {
		return nil, fmt.Errorf("%s on %s: %w", op, d.Name(), ErrNotImplemented)
	}

	return impl, nil
}
