// SPDX-License-Identifier: MIT

// Package manifold: the capability interfaces a manifold (or a decoration
// layer) may implement, the operation identifiers used for resolution, and
// the coordinate bases.
//
// A concrete manifold implements Manifold plus any subset of the Has*
// interfaces. A layer (metric, connection, embedding) implements Layer plus
// the Has* interfaces it overrides. Resolution between the two lives in
// decorator.go and resolve.go.
package manifold

import (
	"fmt"

	"github.com/katalvlaran/riemann/matrix"
)

// Manifold is the metric-independent core every manifold provides.
//
// Points and tangent vectors are square *matrix.Dense values of size Size().
// Operators assume valid inputs; only CheckPoint/CheckVector validate.
type Manifold interface {
	// Name identifies the manifold, e.g. "SPD(3)".
	Name() string
	// Size is the matrix size N of points and tangent vectors.
	Size() int
	// Field is the scalar field the manifold is defined over.
	Field() Field
	// Dimension is the real dimension of the manifold.
	Dimension() int
	// CheckPoint returns a *ValidationError when p is not a point.
	CheckPoint(p *matrix.Dense) error
	// CheckVector returns a *ValidationError when X is not tangent at p.
	CheckVector(p, X *matrix.Dense) error
}

// Layer is a metric, connection or embedding tag that decorates a base manifold.
// A layer overrides an operation by implementing the matching Has* interface.
type Layer interface {
	Name() string
}

// HasInner provides the Riemannian inner product ⟨X, Y⟩_p.
type HasInner interface {
	Inner(p, X, Y *matrix.Dense) (float64, error)
}

// HasExp provides the exponential map, written into q.
type HasExp interface {
	ExpInto(q, p, X *matrix.Dense) error
}

// HasLog provides the logarithmic map, written into X.
type HasLog interface {
	LogInto(X, p, q *matrix.Dense) error
}

// HasDistance provides the geodesic distance.
type HasDistance interface {
	Distance(p, q *matrix.Dense) (float64, error)
}

// HasParallelTransport transports X from T_pM to T_qM along the geodesic, into Y.
type HasParallelTransport interface {
	ParallelTransportToInto(Y, p, X, q *matrix.Dense) error
}

// HasCoordinates maps tangent vectors to and from coordinate vectors in a basis.
type HasCoordinates interface {
	CoordinatesInto(c []float64, p, X *matrix.Dense, b Basis) error
	VectorInto(X, p *matrix.Dense, c []float64, b Basis) error
}

// HasFlatness reports whether the Riemann curvature tensor vanishes everywhere.
type HasFlatness interface {
	IsFlat() bool
}

// HasEmbedding maps points into an ambient space and projects ambient
// vectors onto the tangent space.
type HasEmbedding interface {
	EmbedInto(q, p *matrix.Dense) error
	ProjectInto(Y, p, X *matrix.Dense) error
}

// Basis selects the coordinate basis of a tangent space.
type Basis int

const (
	// DefaultOrthonormalBasis is orthonormal with respect to the active metric.
	DefaultOrthonormalBasis Basis = iota
	// CanonicalBasis uses the raw embedding entries.
	CanonicalBasis
)

// String implements fmt.Stringer.
func (b Basis) String() string {
	switch b {
	case DefaultOrthonormalBasis:
		return "orthonormal"
	case CanonicalBasis:
		return "canonical"
	default:
		return fmt.Sprintf("Basis(%d)", int(b))
	}
}

// Op identifies an operation for resolution.
type Op int

const (
	OpDimension Op = iota
	OpCheckPoint
	OpCheckVector
	OpInner
	OpDistance
	OpExp
	OpLog
	OpParallelTransport
	OpCoordinates
	OpVector
	OpIsFlat
	OpEmbed
	OpProject
)

var opNames = [...]string{
	OpDimension:         "dimension",
	OpCheckPoint:        "check-point",
	OpCheckVector:       "check-vector",
	OpInner:             "inner",
	OpDistance:          "distance",
	OpExp:               "exp",
	OpLog:               "log",
	OpParallelTransport: "parallel-transport",
	OpCoordinates:       "coordinates",
	OpVector:            "vector",
	OpIsFlat:            "is-flat",
	OpEmbed:             "embed",
	OpProject:           "project",
}

// String implements fmt.Stringer.
func (op Op) String() string {
	if op >= 0 && int(op) < len(opNames) {
		return opNames[op]
	}

	return fmt.Sprintf("Op(%d)", int(op))
}

// ParseOp maps a name produced by Op.String back to the Op.
func ParseOp(name string) (Op, error) {
	for i, n := range opNames {
		if n == name {
			return Op(i), nil
		}
	}

	return 0, fmt.Errorf("op %q: %w", name, ErrNotImplemented)
}

// MetricIndependent reports whether op is shared by every metric on a manifold.
// Such ops always resolve to the base, whatever the layer implements.
func (op Op) MetricIndependent() bool {
	return op == OpDimension || op == OpCheckPoint || op == OpCheckVector
}

// Category is the kind of structure a layer decorates.
type Category int

const (
	CategoryMetric Category = iota
	CategoryConnection
	CategoryEmbedding
)

// String implements fmt.Stringer.
func (c Category) String() string {
	switch c {
	case CategoryMetric:
		return "metric"
	case CategoryConnection:
		return "connection"
	case CategoryEmbedding:
		return "embedding"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Ops lists the operations a layer of this category may override.
func (c Category) Ops() []Op {
	switch c {
	case CategoryMetric:
		return []Op{OpInner, OpDistance, OpExp, OpLog, OpParallelTransport, OpCoordinates, OpVector, OpIsFlat}
	case CategoryConnection:
		return []Op{OpExp, OpLog, OpParallelTransport}
	case CategoryEmbedding:
		return []Op{OpEmbed, OpProject}
	default:
		return nil
	}
}

// capability returns impl narrowed to the interface serving op, if impl provides it.
func capability(impl any, op Op) (any, bool) {
	var ok bool
	switch op {
	case OpDimension, OpCheckPoint, OpCheckVector:
		_, ok = impl.(Manifold)
	case OpInner:
		_, ok = impl.(HasInner)
	case OpDistance:
		_, ok = impl.(HasDistance)
	case OpExp:
		_, ok = impl.(HasExp)
	case OpLog:
		_, ok = impl.(HasLog)
	case OpParallelTransport:
		_, ok = impl.(HasParallelTransport)
	case OpCoordinates, OpVector:
		_, ok = impl.(HasCoordinates)
	case OpIsFlat:
		_, ok = impl.(HasFlatness)
	case OpEmbed, OpProject:
		_, ok = impl.(HasEmbedding)
	}
	if !ok {
		return nil, false
	}

	return impl, true
}
