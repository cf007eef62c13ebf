// SPDX-License-Identifier: MIT

// Package manifold defines the capability interfaces of Riemannian manifolds
// and the decoration mechanism that lets a base manifold carry an alternate
// metric, connection or embedding.
//
// The manifold package provides:
//
//   - Manifold: the metric-independent core (size, field, dimension, checks).
//   - Has* capability interfaces (HasInner, HasExp, HasLog, HasDistance,
//     HasParallelTransport, HasCoordinates, HasFlatness, HasEmbedding).
//   - Decorated manifolds (NewMetricManifold, NewConnectionManifold,
//     NewEmbeddedManifold) resolving each op to the layer override first and
//     the base second, with dimension and validity checks always taken from
//     the base.
//   - Generic operators (Exp, Log, Distance, Inner, ParallelTransportTo, ...)
//     in allocating and in-place (…Into) forms.
//   - Group/Action and Solver boundaries, and InverseRetract built on them.
//
// Example:
//
//	M := manifold.NewMetricManifold(spd.New(3), spd.LogCholesky{})
//	q, err := manifold.Exp(M, p, X)
//
// Values are immutable and operators are pure; concurrent calls on
// independent buffers are safe.
package manifold
