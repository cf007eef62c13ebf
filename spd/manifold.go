// SPDX-License-Identifier: MIT

// Package spd implements the manifold of symmetric positive-definite matrices.
//
// The base Manifold carries the affine-invariant metric
//
//	⟨X, Y⟩_p = tr(p⁻¹·X·p⁻¹·Y)
//
// evaluated through the Cholesky factor x of p (A = x⁻¹·X·x⁻ᵀ), so that all
// matrix functions act on symmetric operands. The LogCholesky layer swaps
// in the Log-Cholesky metric, under which the SPD manifold is isometric to
// the flat Cholesky space:
//
//	M := manifold.NewMetricManifold(spd.MustNew(3), spd.LogCholesky{})
//
// Operators assume valid inputs; CheckPoint and CheckVector validate. A point
// that cannot be factored surfaces manifold.ErrFactorization, never a NaN.
package spd

import (
	"fmt"

	"github.com/katalvlaran/riemann/manifold"
	"github.com/katalvlaran/riemann/matrix"
)

const (
	opNew       = "spd.New"
	opInner     = "spd.Inner"
	opExp       = "spd.ExpInto"
	opLog       = "spd.LogInto"
	opDistance  = "spd.Distance"
	opTransport = "spd.ParallelTransportToInto"

	halfStep = 0.5
)

// Manifold is the SPD manifold of N×N matrices with the affine-invariant
// metric. It is an immutable value, safe for concurrent use.
type Manifold struct {
	n    int
	opts manifold.Options
}

// Compile-time assertions for the capabilities Manifold provides.
var (
	_ manifold.Manifold             = Manifold{}
	_ manifold.HasInner             = Manifold{}
	_ manifold.HasExp               = Manifold{}
	_ manifold.HasLog               = Manifold{}
	_ manifold.HasDistance          = Manifold{}
	_ manifold.HasParallelTransport = Manifold{}
	_ manifold.HasCoordinates       = Manifold{}
	_ manifold.HasFlatness          = Manifold{}
)

// New returns the SPD manifold of N×N matrices.
//
// Errors:
//   - matrix.ErrInvalidDimensions when n ≤ 0.
//   - manifold.ErrNotImplemented for a non-real field.
func New(n int, opts ...manifold.Option) (Manifold, error) {
	if n <= 0 {
		return Manifold{}, fmt.Errorf("%s(%d): %w", opNew, n, matrix.ErrInvalidDimensions)
	}
	o := manifold.NewOptions(opts...)
	if err := manifold.CheckField(o.Field()); err != nil {
		return Manifold{}, fmt.Errorf("%s: %w", opNew, err)
	}

	return Manifold{n: n, opts: o}, nil
}

// MustNew is New that panics on error. Intended for tests and package-level values.
func MustNew(n int, opts ...manifold.Option) Manifold {
	m, err := New(n, opts...)
	if err != nil {
		panic(err)
	}

	return m
}

// Name implements manifold.Manifold.
func (m Manifold) Name() string { return fmt.Sprintf("SPD(%d)", m.n) }

// Size implements manifold.Manifold.
func (m Manifold) Size() int { return m.n }

// Field implements manifold.Manifold.
func (m Manifold) Field() manifold.Field { return m.opts.Field() }

// Dimension returns N(N+1)/2.
func (m Manifold) Dimension() int { return m.n * (m.n + 1) / 2 }

// Tolerance returns the structural tolerance used by the check operators.
func (m Manifold) Tolerance() float64 { return m.opts.Tolerance() }

// IsFlat reports false for N ≥ 2, where the affine-invariant metric has
// non-zero curvature. SPD(1) is a line.
func (m Manifold) IsFlat() bool { return m.n == 1 }

// CheckPoint validates shape, finiteness, symmetry (within the tolerance)
// and positive definiteness (smallest eigenvalue > 0).
func (m Manifold) CheckPoint(p *matrix.Dense) error {
	if err := m.checkSymmetric(p); err != nil {
		return err
	}
	minEig, err := matrix.MinEigenvalue(p)
	if err != nil {
		return manifold.NewValidationError(m.Name(), "positive-definite", nil, err)
	}
	if !(minEig > 0) {
		return manifold.NewValidationError(m.Name(), "positive-definite", minEig, matrix.ErrNotPositiveDefinite)
	}

	return nil
}

// CheckVector validates the base point, then that X is a finite symmetric N×N matrix.
func (m Manifold) CheckVector(p, X *matrix.Dense) error {
	if err := m.CheckPoint(p); err != nil {
		return err
	}

	return m.checkSymmetric(X)
}

// checkSymmetric validates non-nil, N×N, finite and symmetric.
func (m Manifold) checkSymmetric(a *matrix.Dense) error {
	if err := matrix.ValidateNotNil(a); err != nil {
		return manifold.NewValidationError(m.Name(), "shape", nil, err)
	}
	if r, c := a.Shape(); r != m.n || c != m.n {
		return manifold.NewValidationError(m.Name(), "shape", fmt.Sprintf("%dx%d", r, c), matrix.ErrDimensionMismatch)
	}
	if err := matrix.ValidateFinite(a); err != nil {
		return manifold.NewValidationError(m.Name(), "finite", nil, err)
	}
	if err := matrix.ValidateSymmetric(a, m.opts.Tolerance()); err != nil {
		return manifold.NewValidationError(m.Name(), "symmetric", nil, err)
	}

	return nil
}

// whitened returns the factor x of p and A = x⁻¹·S·x⁻ᵀ.
func whitened(tag string, p, S *matrix.Dense) (*matrix.Dense, *matrix.Dense, error) {
	x, err := Factor(p)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", tag, err)
	}
	A, err := matrix.ZerosLike(S)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", tag, err)
	}
	if err = matrix.WhitenSymmetricInto(A, x, S); err != nil {
		return nil, nil, factorizationError(tag, reasonPullBack, err)
	}

	return x, A, nil
}

// relativeLog returns the factor x of p and S = logm(x⁻¹·q·x⁻ᵀ).
func relativeLog(tag string, p, q *matrix.Dense) (*matrix.Dense, *matrix.Dense, error) {
	x, B, err := whitened(tag, p, q)
	if err != nil {
		return nil, nil, err
	}
	if err = matrix.SymLogInto(B, B); err != nil {
		return nil, nil, factorizationError(tag, "q is not positive definite", err)
	}

	return x, B, nil
}

// Inner returns tr(A·B) with A = x⁻¹·X·x⁻ᵀ, B = x⁻¹·Y·x⁻ᵀ.
// Complexity: O(N³).
func (m Manifold) Inner(p, X, Y *matrix.Dense) (float64, error) {
	x, A, err := whitened(opInner, p, X)
	if err != nil {
		return 0, err
	}
	B, err := matrix.ZerosLike(Y)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opInner, err)
	}
	if err = matrix.WhitenSymmetricInto(B, x, Y); err != nil {
		return 0, factorizationError(opInner, reasonPullBack, err)
	}
	ip, err := matrix.FrobeniusDot(A, B)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opInner, err)
	}
	if err = finiteScalar(opInner, ip); err != nil {
		return 0, err
	}

	return ip, nil
}

// ExpInto writes exp_p(X) = x·expm(x⁻¹·X·x⁻ᵀ)·xᵀ into q. q may alias p or X.
// Complexity: O(N³).
func (m Manifold) ExpInto(q, p, X *matrix.Dense) error {
	x, A, err := whitened(opExp, p, X)
	if err != nil {
		return err
	}
	if err = matrix.SymExpInto(A, A); err != nil {
		return factorizationError(opExp, reasonPullBack, err)
	}
	if err = matrix.SymmetricCongruenceInto(q, x, A); err != nil {
		return fmt.Errorf("%s: %w", opExp, err)
	}

	return finiteResult(opExp, q)
}

// LogInto writes log_p(q) = x·logm(x⁻¹·q·x⁻ᵀ)·xᵀ into X. X may alias p or q.
// Complexity: O(N³).
func (m Manifold) LogInto(X, p, q *matrix.Dense) error {
	x, S, err := relativeLog(opLog, p, q)
	if err != nil {
		return err
	}
	if err = matrix.SymmetricCongruenceInto(X, x, S); err != nil {
		return fmt.Errorf("%s: %w", opLog, err)
	}

	return finiteResult(opLog, X)
}

// Distance returns ‖logm(x⁻¹·q·x⁻ᵀ)‖_F.
// Complexity: O(N³).
func (m Manifold) Distance(p, q *matrix.Dense) (float64, error) {
	_, S, err := relativeLog(opDistance, p, q)
	if err != nil {
		return 0, err
	}
	d := matrix.FrobeniusNorm(S)
	if err = finiteScalar(opDistance, d); err != nil {
		return 0, err
	}

	return d, nil
}

// ParallelTransportToInto writes the transport of X from p to q into Y:
//
//	Y = x·E·(x⁻¹·X·x⁻ᵀ)·E·xᵀ,  E = expm(S/2),  S = logm(x⁻¹·q·x⁻ᵀ)
//
// Y may alias any input.
// Complexity: O(N³).
func (m Manifold) ParallelTransportToInto(Y, p, X, q *matrix.Dense) error {
	x, S, err := relativeLog(opTransport, p, q)
	if err != nil {
		return err
	}
	V, err := matrix.ZerosLike(X)
	if err != nil {
		return fmt.Errorf("%s: %w", opTransport, err)
	}
	if err = matrix.WhitenSymmetricInto(V, x, X); err != nil {
		return factorizationError(opTransport, reasonPullBack, err)
	}
	if err = matrix.ScaleInto(S, halfStep, S); err != nil {
		return fmt.Errorf("%s: %w", opTransport, err)
	}
	if err = matrix.SymExpInto(S, S); err != nil {
		return factorizationError(opTransport, reasonPullBack, err)
	}
	// E symmetric: E·V·E = E·V·Eᵀ
	if err = matrix.SymmetricCongruenceInto(V, S, V); err != nil {
		return fmt.Errorf("%s: %w", opTransport, err)
	}
	if err = matrix.SymmetricCongruenceInto(Y, x, V); err != nil {
		return fmt.Errorf("%s: %w", opTransport, err)
	}

	return finiteResult(opTransport, Y)
}
