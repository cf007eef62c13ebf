// SPDX-License-Identifier: MIT
// Package spd: the Log-Cholesky metric.
//
// LogCholesky moves every operation to the Cholesky space through the
// bijection p = x·xᵀ, runs the flat closed form there, and maps the result
// back. Decorate the base manifold with it:
//
//	M := manifold.NewMetricManifold(spd.MustNew(n), spd.LogCholesky{})
//
// Point checks and the dimension stay with the base. Inputs that have no
// Cholesky factor, and results that are not finite, surface
// manifold.ErrFactorization.

package spd

import (
	"fmt"

	"github.com/katalvlaran/riemann/cholesky"
	"github.com/katalvlaran/riemann/manifold"
	"github.com/katalvlaran/riemann/matrix"
)

const (
	opLCInner       = "spd.LogCholesky.Inner"
	opLCExp         = "spd.LogCholesky.ExpInto"
	opLCLog         = "spd.LogCholesky.LogInto"
	opLCDistance    = "spd.LogCholesky.Distance"
	opLCTransport   = "spd.LogCholesky.ParallelTransportToInto"
	opLCCoordinates = "spd.LogCholesky.CoordinatesInto"
	opLCVector      = "spd.LogCholesky.VectorInto"
)

// LogCholesky is the Log-Cholesky metric layer. The zero value is ready to use.
type LogCholesky struct{}

// Compile-time assertions for the operators LogCholesky overrides.
var (
	_ manifold.Layer                = LogCholesky{}
	_ manifold.HasInner             = LogCholesky{}
	_ manifold.HasExp               = LogCholesky{}
	_ manifold.HasLog               = LogCholesky{}
	_ manifold.HasDistance          = LogCholesky{}
	_ manifold.HasParallelTransport = LogCholesky{}
	_ manifold.HasCoordinates       = LogCholesky{}
	_ manifold.HasFlatness          = LogCholesky{}
)

// Name implements manifold.Layer.
func (LogCholesky) Name() string { return "LogCholesky" }

// IsFlat reports true for every N: the metric is the pull-back of the flat Cholesky space.
func (LogCholesky) IsFlat() bool { return true }

// space returns the Cholesky space matching the size of p.
func space(tag string, p *matrix.Dense) (cholesky.Space, error) {
	if err := matrix.ValidateSquareNonNil(p); err != nil {
		return cholesky.Space{}, fmt.Errorf("%s: %w", tag, err)
	}
	s, err := cholesky.New(p.Rows())
	if err != nil {
		return cholesky.Space{}, fmt.Errorf("%s: %w", tag, err)
	}

	return s, nil
}

// factors returns the Cholesky factors of p and q.
func factors(tag string, p, q *matrix.Dense) (*matrix.Dense, *matrix.Dense, error) {
	x, err := Factor(p)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: p: %w", tag, err)
	}
	y, err := Factor(q)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: q: %w", tag, err)
	}

	return x, y, nil
}

// Inner returns the Cholesky-space inner product of the pull-backs of X and
// Y through one factorization of p.
// Complexity: O(N³).
func (LogCholesky) Inner(p, X, Y *matrix.Dense) (float64, error) {
	s, err := space(opLCInner, p)
	if err != nil {
		return 0, err
	}
	x, err := Factor(p)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opLCInner, err)
	}
	WX, err := matrix.ZerosLike(x)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opLCInner, err)
	}
	WY, err := matrix.ZerosLike(x)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opLCInner, err)
	}
	if err = TangentToFactorWith(x, X, WX); err != nil {
		return 0, fmt.Errorf("%s: %w", opLCInner, err)
	}
	if err = TangentToFactorWith(x, Y, WY); err != nil {
		return 0, fmt.Errorf("%s: %w", opLCInner, err)
	}
	ip, err := s.Inner(x, WX, WY)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opLCInner, err)
	}
	if err = finiteScalar(opLCInner, ip); err != nil {
		return 0, err
	}

	return ip, nil
}

// ExpInto writes exp_p(X) into q.
//
// Implementation:
//   - Stage 1: (x, W) = TangentToFactor(p, X).
//   - Stage 2: z = exp_x(W) in the Cholesky space.
//   - Stage 3: q = z·zᵀ.
//
// A diagonal that overflows (a tiny pivot against a large step) surfaces
// manifold.ErrFactorization. q may alias p or X.
// Complexity: O(N³).
func (LogCholesky) ExpInto(q, p, X *matrix.Dense) error {
	s, err := space(opLCExp, p)
	if err != nil {
		return err
	}
	x, W, err := TangentToFactor(p, X)
	if err != nil {
		return fmt.Errorf("%s: %w", opLCExp, err)
	}
	if err = s.ExpInto(W, x, W); err != nil {
		return fmt.Errorf("%s: %w", opLCExp, err)
	}
	if err = finiteResult(opLCExp, W); err != nil {
		return err
	}
	if err = FromFactorInto(q, W); err != nil {
		return fmt.Errorf("%s: %w", opLCExp, err)
	}

	return finiteResult(opLCExp, q)
}

// LogInto writes log_p(q) = x·Wᵀ + W·xᵀ into X, where W = log_x(y) in the
// Cholesky space and x, y are the factors of p, q. X may alias p or q.
// Complexity: O(N³).
func (LogCholesky) LogInto(X, p, q *matrix.Dense) error {
	s, err := space(opLCLog, p)
	if err != nil {
		return err
	}
	x, y, err := factors(opLCLog, p, q)
	if err != nil {
		return err
	}
	if err = s.LogInto(y, x, y); err != nil {
		return fmt.Errorf("%s: %w", opLCLog, err)
	}
	if err = finiteResult(opLCLog, y); err != nil {
		return err
	}
	if err = TangentFromFactorInto(X, x, y); err != nil {
		return fmt.Errorf("%s: %w", opLCLog, err)
	}

	return finiteResult(opLCLog, X)
}

// Distance returns the Cholesky-space distance between the factors of p and q.
// Complexity: O(N³).
func (LogCholesky) Distance(p, q *matrix.Dense) (float64, error) {
	s, err := space(opLCDistance, p)
	if err != nil {
		return 0, err
	}
	x, y, err := factors(opLCDistance, p, q)
	if err != nil {
		return 0, err
	}
	d, err := s.Distance(x, y)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opLCDistance, err)
	}
	if err = finiteScalar(opLCDistance, d); err != nil {
		return 0, err
	}

	return d, nil
}

// ParallelTransportToInto writes the transport of X from p to q into Y:
// the pull-back W of X is transported in the Cholesky space from x to y and
// pushed forward through y. Y may alias any input.
// Complexity: O(N³).
func (LogCholesky) ParallelTransportToInto(Y, p, X, q *matrix.Dense) error {
	s, err := space(opLCTransport, p)
	if err != nil {
		return err
	}
	y, err := Factor(q)
	if err != nil {
		return fmt.Errorf("%s: q: %w", opLCTransport, err)
	}
	x, W, err := TangentToFactor(p, X)
	if err != nil {
		return fmt.Errorf("%s: %w", opLCTransport, err)
	}
	if err = s.ParallelTransportToInto(W, x, W, y); err != nil {
		return fmt.Errorf("%s: %w", opLCTransport, err)
	}
	if err = finiteResult(opLCTransport, W); err != nil {
		return err
	}
	if err = TangentFromFactorInto(Y, y, W); err != nil {
		return fmt.Errorf("%s: %w", opLCTransport, err)
	}

	return finiteResult(opLCTransport, Y)
}

// CoordinatesInto writes the coordinates of X ∈ T_pSPD in basis b into c.
// Orthonormal coordinates are those of the pull-back W in the Cholesky
// space; canonical coordinates do not depend on the metric.
// Complexity: O(N³) orthonormal, O(N²) canonical.
func (LogCholesky) CoordinatesInto(c []float64, p, X *matrix.Dense, b manifold.Basis) error {
	if err := checkCoordinateArgs(opLCCoordinates, c, b, p, X); err != nil {
		return err
	}
	if b == manifold.CanonicalBasis {
		packSymmetric(c, X, 1)
		return nil
	}
	s, err := space(opLCCoordinates, p)
	if err != nil {
		return err
	}
	x, W, err := TangentToFactor(p, X)
	if err != nil {
		return fmt.Errorf("%s: %w", opLCCoordinates, err)
	}
	if err = s.CoordinatesInto(c, x, W, b); err != nil {
		return fmt.Errorf("%s: %w", opLCCoordinates, err)
	}

	return nil
}

// VectorInto writes the tangent vector at p with coordinates c in basis b
// into X. X may alias p.
// Complexity: O(N³) orthonormal, O(N²) canonical.
func (LogCholesky) VectorInto(X, p *matrix.Dense, c []float64, b manifold.Basis) error {
	if err := checkCoordinateArgs(opLCVector, c, b, p, X); err != nil {
		return err
	}
	if b == manifold.CanonicalBasis {
		unpackSymmetric(X, c, 1)
		return nil
	}
	s, err := space(opLCVector, p)
	if err != nil {
		return err
	}
	x, err := Factor(p)
	if err != nil {
		return fmt.Errorf("%s: %w", opLCVector, err)
	}
	W, err := matrix.ZerosLike(x)
	if err != nil {
		return fmt.Errorf("%s: %w", opLCVector, err)
	}
	if err = s.VectorInto(W, x, c, b); err != nil {
		return fmt.Errorf("%s: %w", opLCVector, err)
	}
	if err = TangentFromFactorInto(X, x, W); err != nil {
		return fmt.Errorf("%s: %w", opLCVector, err)
	}

	return nil
}
