// SPDX-License-Identifier: MIT

// Package manifold: the generic operator surface.
//
// Every operator resolves its implementation through Resolve, so the same
// call works on a bare manifold and on any stack of decorations. Operators
// come in pairs: XxxInto writes into caller-owned storage; Xxx allocates the
// destination and then calls XxxInto.
//
// Aliasing: the concrete implementations in this module compute into private
// scratch before writing dst, so dst may alias any input.
//
// Errors: failures are wrapped as "<op>: <cause>" and keep the sentinel
// (ErrFactorization, ErrNotImplemented, matrix.*) reachable via errors.Is.
package manifold

import (
	"fmt"
	"math"

	"github.com/katalvlaran/riemann/matrix"
)

const (
	opInner     = "Inner"
	opNorm      = "Norm"
	opExp       = "Exp"
	opLog       = "Log"
	opDistance  = "Distance"
	opTransport = "ParallelTransportTo"
	opCoords    = "Coordinates"
	opVector    = "Vector"
	opIsFlat    = "IsFlat"
	opEmbed     = "Embed"
	opProject   = "Project"
	opGeodesic  = "GeodesicAt"
)

// resolveAs resolves op on M and narrows the result to T.
func resolveAs[T any](M Manifold, op Op) (T, error) {
	var zero T
	impl, err := Resolve(M, op)
	if err != nil {
		return zero, err
	}
	t, ok := impl.(T)
	if !ok {
		return zero, fmt.Errorf("%s on %s: %w", op, M.Name(), ErrNotImplemented)
	}

	return t, nil
}

// newLike allocates a zero matrix shaped like ref.
func newLike(tag string, ref *matrix.Dense) (*matrix.Dense, error) {
	out, err := matrix.ZerosLike(ref)
	if err != nil {
		return nil, manifoldErrorf(tag, err)
	}

	return out, nil
}

// Dimension returns the real dimension of M. Metric-independent.
func Dimension(M Manifold) int { return M.Dimension() }

// CheckPoint validates p on M. Metric-independent.
func CheckPoint(M Manifold, p *matrix.Dense) error { return M.CheckPoint(p) }

// IsPoint reports whether p is a valid point of M.
func IsPoint(M Manifold, p *matrix.Dense) bool { return M.CheckPoint(p) == nil }

// CheckVector validates X as a tangent vector at p. Metric-independent.
func CheckVector(M Manifold, p, X *matrix.Dense) error { return M.CheckVector(p, X) }

// IsVector reports whether X is a valid tangent vector at p.
func IsVector(M Manifold, p, X *matrix.Dense) bool { return M.CheckVector(p, X) == nil }

// Inner returns the inner product ⟨X, Y⟩_p of the active metric.
func Inner(M Manifold, p, X, Y *matrix.Dense) (float64, error) {
	h, err := resolveAs[HasInner](M, OpInner)
	if err != nil {
		return 0, manifoldErrorf(opInner, err)
	}
	v, err := h.Inner(p, X, Y)
	if err != nil {
		return 0, manifoldErrorf(opInner, err)
	}

	return v, nil
}

// Norm returns sqrt(⟨X, X⟩_p).
func Norm(M Manifold, p, X *matrix.Dense) (float64, error) {
	ip, err := Inner(M, p, X, X)
	if err != nil {
		return 0, manifoldErrorf(opNorm, err)
	}

	return math.Sqrt(math.Max(ip, 0)), nil
}

// ExpInto writes exp_p(X) into q.
func ExpInto(M Manifold, q, p, X *matrix.Dense) error {
	h, err := resolveAs[HasExp](M, OpExp)
	if err != nil {
		return manifoldErrorf(opExp, err)
	}
	if err = h.ExpInto(q, p, X); err != nil {
		return manifoldErrorf(opExp, err)
	}

	return nil
}

// Exp returns exp_p(X) in a fresh matrix.
func Exp(M Manifold, p, X *matrix.Dense) (*matrix.Dense, error) {
	q, err := newLike(opExp, p)
	if err != nil {
		return nil, err
	}
	if err = ExpInto(M, q, p, X); err != nil {
		return nil, err
	}

	return q, nil
}

// LogInto writes log_p(q) into X.
func LogInto(M Manifold, X, p, q *matrix.Dense) error {
	h, err := resolveAs[HasLog](M, OpLog)
	if err != nil {
		return manifoldErrorf(opLog, err)
	}
	if err = h.LogInto(X, p, q); err != nil {
		return manifoldErrorf(opLog, err)
	}

	return nil
}

// Log returns log_p(q) in a fresh matrix.
func Log(M Manifold, p, q *matrix.Dense) (*matrix.Dense, error) {
	X, err := newLike(opLog, p)
	if err != nil {
		return nil, err
	}
	if err = LogInto(M, X, p, q); err != nil {
		return nil, err
	}

	return X, nil
}

// Distance returns the geodesic distance between p and q.
func Distance(M Manifold, p, q *matrix.Dense) (float64, error) {
	h, err := resolveAs[HasDistance](M, OpDistance)
	if err != nil {
		return 0, manifoldErrorf(opDistance, err)
	}
	d, err := h.Distance(p, q)
	if err != nil {
		return 0, manifoldErrorf(opDistance, err)
	}

	return d, nil
}

// ParallelTransportToInto writes the transport of X ∈ T_pM to T_qM into Y.
func ParallelTransportToInto(M Manifold, Y, p, X, q *matrix.Dense) error {
	h, err := resolveAs[HasParallelTransport](M, OpParallelTransport)
	if err != nil {
		return manifoldErrorf(opTransport, err)
	}
	if err = h.ParallelTransportToInto(Y, p, X, q); err != nil {
		return manifoldErrorf(opTransport, err)
	}

	return nil
}

// ParallelTransportTo returns the transport of X ∈ T_pM to T_qM in a fresh matrix.
func ParallelTransportTo(M Manifold, p, X, q *matrix.Dense) (*matrix.Dense, error) {
	Y, err := newLike(opTransport, X)
	if err != nil {
		return nil, err
	}
	if err = ParallelTransportToInto(M, Y, p, X, q); err != nil {
		return nil, err
	}

	return Y, nil
}

// CoordinatesInto writes the coordinates of X ∈ T_pM in basis b into c.
// len(c) must equal Dimension(M).
func CoordinatesInto(M Manifold, c []float64, p, X *matrix.Dense, b Basis) error {
	if err := matrix.ValidateVecLen(c, M.Dimension()); err != nil {
		return manifoldErrorf(opCoords, err)
	}
	h, err := resolveAs[HasCoordinates](M, OpCoordinates)
	if err != nil {
		return manifoldErrorf(opCoords, err)
	}
	if err = h.CoordinatesInto(c, p, X, b); err != nil {
		return manifoldErrorf(opCoords, err)
	}

	return nil
}

// Coordinates returns the coordinates of X ∈ T_pM in basis b.
func Coordinates(M Manifold, p, X *matrix.Dense, b Basis) ([]float64, error) {
	c := make([]float64, M.Dimension())
	if err := CoordinatesInto(M, c, p, X, b); err != nil {
		return nil, err
	}

	return c, nil
}

// VectorInto writes the tangent vector at p with coordinates c in basis b into X.
func VectorInto(M Manifold, X, p *matrix.Dense, c []float64, b Basis) error {
	if err := matrix.ValidateVecLen(c, M.Dimension()); err != nil {
		return manifoldErrorf(opVector, err)
	}
	h, err := resolveAs[HasCoordinates](M, OpVector)
	if err != nil {
		return manifoldErrorf(opVector, err)
	}
	if err = h.VectorInto(X, p, c, b); err != nil {
		return manifoldErrorf(opVector, err)
	}

	return nil
}

// Vector returns the tangent vector at p with coordinates c in basis b.
func Vector(M Manifold, p *matrix.Dense, c []float64, b Basis) (*matrix.Dense, error) {
	X, err := newLike(opVector, p)
	if err != nil {
		return nil, err
	}
	if err = VectorInto(M, X, p, c, b); err != nil {
		return nil, err
	}

	return X, nil
}

// IsFlat reports whether M with its active metric has zero curvature.
func IsFlat(M Manifold) (bool, error) {
	h, err := resolveAs[HasFlatness](M, OpIsFlat)
	if err != nil {
		return false, manifoldErrorf(opIsFlat, err)
	}

	return h.IsFlat(), nil
}

// EmbedInto writes the embedding of p into q.
func EmbedInto(M Manifold, q, p *matrix.Dense) error {
	h, err := resolveAs[HasEmbedding](M, OpEmbed)
	if err != nil {
		return manifoldErrorf(opEmbed, err)
	}
	if err = h.EmbedInto(q, p); err != nil {
		return manifoldErrorf(opEmbed, err)
	}

	return nil
}

// Embed returns the embedding of p in a fresh matrix.
func Embed(M Manifold, p *matrix.Dense) (*matrix.Dense, error) {
	q, err := newLike(opEmbed, p)
	if err != nil {
		return nil, err
	}
	if err = EmbedInto(M, q, p); err != nil {
		return nil, err
	}

	return q, nil
}

// ProjectInto writes the projection of the ambient vector X onto T_pM into Y.
func ProjectInto(M Manifold, Y, p, X *matrix.Dense) error {
	h, err := resolveAs[HasEmbedding](M, OpProject)
	if err != nil {
		return manifoldErrorf(opProject, err)
	}
	if err = h.ProjectInto(Y, p, X); err != nil {
		return manifoldErrorf(opProject, err)
	}

	return nil
}

// Project returns the projection of X onto T_pM in a fresh matrix.
func Project(M Manifold, p, X *matrix.Dense) (*matrix.Dense, error) {
	Y, err := newLike(opProject, X)
	if err != nil {
		return nil, err
	}
	if err = ProjectInto(M, Y, p, X); err != nil {
		return nil, err
	}

	return Y, nil
}

// GeodesicAt returns γ(t) = exp_p(t·X), the geodesic through p with initial velocity X.
// X is not modified.
func GeodesicAt(M Manifold, p, X *matrix.Dense, t float64) (*matrix.Dense, error) {
	tX, err := newLike(opGeodesic, X)
	if err != nil {
		return nil, err
	}
	if err = matrix.ScaleInto(tX, t, X); err != nil {
		return nil, manifoldErrorf(opGeodesic, err)
	}
	q, err := Exp(M, p, tX)
	if err != nil {
		return nil, manifoldErrorf(opGeodesic, err)
	}

	return q, nil
}
