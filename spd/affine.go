// SPDX-License-Identifier: MIT

package spd

import "github.com/katalvlaran/riemann/manifold"

// AffineInvariant names the metric the base Manifold already carries. It
// overrides nothing: decorating with it resolves every operator to the base,
// and MetricOf reports it.
type AffineInvariant struct{}

var _ manifold.Layer = AffineInvariant{}

// Name implements manifold.Layer.
func (AffineInvariant) Name() string { return "AffineInvariant" }
