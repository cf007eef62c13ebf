// SPDX-License-Identifier: MIT

// Package cholesky implements the manifold of lower-triangular matrices with
// a strictly positive diagonal, carrying the flat metric
//
//	⟨V, W⟩_x = Σ_{i>j} V_ij·W_ij + Σ_i V_ii·W_ii / x_ii²
//
// Under this metric the strictly-lower part is Euclidean and each diagonal
// entry lives on a copy of ℝ₊ with its logarithmic metric, so every operator
// has a closed form and acts entry-wise.
//
// Tangent vectors are arbitrary N×N matrices; only the lower triangle
// (diagonal included) is read and outputs have a zero strictly-upper part.
// Operators do not validate: a non-positive diagonal is a precondition
// violation reported only by CheckPoint.
package cholesky

import (
	"fmt"
	"math"

	"github.com/katalvlaran/riemann/manifold"
	"github.com/katalvlaran/riemann/matrix"
)

const (
	opNew         = "cholesky.New"
	opInner       = "cholesky.Inner"
	opExp         = "cholesky.ExpInto"
	opLog         = "cholesky.LogInto"
	opDistance    = "cholesky.Distance"
	opTransport   = "cholesky.ParallelTransportToInto"
	opCoordinates = "cholesky.CoordinatesInto"
	opVector      = "cholesky.VectorInto"
)

// Space is the Cholesky space of N×N lower-triangular matrices with a
// positive diagonal. It is an immutable value, safe for concurrent use.
type Space struct {
	n    int
	opts manifold.Options
}

// Compile-time assertions for the capabilities Space provides.
var (
	_ manifold.Manifold             = Space{}
	_ manifold.HasInner             = Space{}
	_ manifold.HasExp               = Space{}
	_ manifold.HasLog               = Space{}
	_ manifold.HasDistance          = Space{}
	_ manifold.HasParallelTransport = Space{}
	_ manifold.HasCoordinates       = Space{}
	_ manifold.HasFlatness          = Space{}
)

// New returns the Cholesky space of N×N factors.
//
// Errors:
//   - matrix.ErrInvalidDimensions when n ≤ 0.
//   - manifold.ErrNotImplemented for a non-real field.
func New(n int, opts ...manifold.Option) (Space, error) {
	if n <= 0 {
		return Space{}, fmt.Errorf("%s(%d): %w", opNew, n, matrix.ErrInvalidDimensions)
	}
	o := manifold.NewOptions(opts...)
	if err := manifold.CheckField(o.Field()); err != nil {
		return Space{}, fmt.Errorf("%s: %w", opNew, err)
	}

	return Space{n: n, opts: o}, nil
}

// MustNew is New that panics on error. Intended for tests and package-level values.
func MustNew(n int, opts ...manifold.Option) Space {
	s, err := New(n, opts...)
	if err != nil {
		panic(err)
	}

	return s
}

// Name implements manifold.Manifold.
func (s Space) Name() string { return fmt.Sprintf("Cholesky(%d)", s.n) }

// Size implements manifold.Manifold.
func (s Space) Size() int { return s.n }

// Field implements manifold.Manifold.
func (s Space) Field() manifold.Field { return s.opts.Field() }

// Dimension returns N(N+1)/2.
func (s Space) Dimension() int { return s.n * (s.n + 1) / 2 }

// Tolerance returns the structural tolerance used by the check operators.
func (s Space) Tolerance() float64 { return s.opts.Tolerance() }

// IsFlat reports true: the Cholesky space is flat for every N.
func (s Space) IsFlat() bool { return true }

// CheckPoint validates shape, finiteness, lower-triangularity (within the
// tolerance) and a strictly positive diagonal.
func (s Space) CheckPoint(x *matrix.Dense) error {
	if err := s.checkShape(x); err != nil {
		return err
	}
	if err := matrix.ValidateLowerTriangular(x, s.opts.Tolerance()); err != nil {
		return manifold.NewValidationError(s.Name(), "lower-triangular", nil, err)
	}
	data := x.RawData()
	for i := 0; i < s.n; i++ {
		if d := data[i*s.n+i]; !(d > 0) {
			return manifold.NewValidationError(s.Name(), "positive-diagonal", d, matrix.ErrNonPositiveDiagonal)
		}
	}

	return nil
}

// CheckVector validates the base point, then the shape and finiteness of V.
// Every N×N matrix is a tangent vector; its upper part is ignored.
func (s Space) CheckVector(x, V *matrix.Dense) error {
	if err := s.CheckPoint(x); err != nil {
		return err
	}

	return s.checkShape(V)
}

// checkShape validates non-nil, N×N and finite.
func (s Space) checkShape(m *matrix.Dense) error {
	if err := matrix.ValidateNotNil(m); err != nil {
		return manifold.NewValidationError(s.Name(), "shape", nil, err)
	}
	if r, c := m.Shape(); r != s.n || c != s.n {
		return manifold.NewValidationError(s.Name(), "shape", fmt.Sprintf("%dx%d", r, c), matrix.ErrDimensionMismatch)
	}
	if err := matrix.ValidateFinite(m); err != nil {
		return manifold.NewValidationError(s.Name(), "finite", nil, err)
	}

	return nil
}

// Inner returns Σ_{i>j} V_ij·W_ij + Σ_i V_ii·W_ii / x_ii².
// Complexity: O(N²).
func (s Space) Inner(x, V, W *matrix.Dense) (float64, error) {
	if err := sameSize(opInner, s.n, x, V, W); err != nil {
		return 0, err
	}
	xd, vd, wd := x.RawData(), V.RawData(), W.RawData()
	n := s.n
	var sum float64
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < i; j++ {
			sum += vd[i*n+j] * wd[i*n+j]
		}
		d := xd[i*n+i]
		sum += vd[i*n+i] * wd[i*n+i] / (d * d)
	}

	return sum, nil
}

// ExpInto writes the exponential map into z:
// strictly-lower x + V, diagonal x_ii·exp(V_ii/x_ii), upper zero.
// Entry-wise, so z may alias x or V.
// Complexity: O(N²).
func (s Space) ExpInto(z, x, V *matrix.Dense) error {
	if err := sameSize(opExp, s.n, z, x, V); err != nil {
		return err
	}
	zd, xd, vd := z.RawData(), x.RawData(), V.RawData()
	n := s.n
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < i; j++ {
			zd[i*n+j] = xd[i*n+j] + vd[i*n+j]
		}
		d := xd[i*n+i]
		zd[i*n+i] = d * math.Exp(vd[i*n+i]/d)
		for j = i + 1; j < n; j++ {
			zd[i*n+j] = 0
		}
	}

	return nil
}

// LogInto writes the logarithmic map into V:
// strictly-lower y − x, diagonal x_ii·log(y_ii/x_ii), upper zero.
// Entry-wise, so V may alias x or y.
// Complexity: O(N²).
func (s Space) LogInto(V, x, y *matrix.Dense) error {
	if err := sameSize(opLog, s.n, V, x, y); err != nil {
		return err
	}
	vd, xd, yd := V.RawData(), x.RawData(), y.RawData()
	n := s.n
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < i; j++ {
			vd[i*n+j] = yd[i*n+j] - xd[i*n+j]
		}
		d := xd[i*n+i]
		vd[i*n+i] = d * math.Log(yd[i*n+i]/d)
		for j = i + 1; j < n; j++ {
			vd[i*n+j] = 0
		}
	}

	return nil
}

// Distance returns sqrt(‖y_lower − x_lower‖²_F + ‖log diag(y) − log diag(x)‖²).
// Complexity: O(N²).
func (s Space) Distance(x, y *matrix.Dense) (float64, error) {
	if err := sameSize(opDistance, s.n, x, y); err != nil {
		return 0, err
	}
	xd, yd := x.RawData(), y.RawData()
	n := s.n
	var sum, diff float64
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < i; j++ {
			diff = yd[i*n+j] - xd[i*n+j]
			sum += diff * diff
		}
		diff = math.Log(yd[i*n+i]) - math.Log(xd[i*n+i])
		sum += diff * diff
	}

	return math.Sqrt(sum), nil
}

// ParallelTransportToInto writes the transport of V from x to y into W:
// strictly-lower unchanged, diagonal V_ii·y_ii/x_ii, upper zero.
// Entry-wise, so W may alias any input.
// Complexity: O(N²).
func (s Space) ParallelTransportToInto(W, x, V, y *matrix.Dense) error {
	if err := sameSize(opTransport, s.n, W, x, V, y); err != nil {
		return err
	}
	wd, xd, vd, yd := W.RawData(), x.RawData(), V.RawData(), y.RawData()
	n := s.n
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < i; j++ {
			wd[i*n+j] = vd[i*n+j]
		}
		wd[i*n+i] = vd[i*n+i] * yd[i*n+i] / xd[i*n+i]
		for j = i + 1; j < n; j++ {
			wd[i*n+j] = 0
		}
	}

	return nil
}

// sameSize checks every operand is a non-nil n×n matrix.
func sameSize(tag string, n int, ms ...*matrix.Dense) error {
	for _, m := range ms {
		if m == nil {
			return fmt.Errorf("%s: %w", tag, matrix.ErrNilMatrix)
		}
		if r, c := m.Shape(); r != n || c != n {
			return fmt.Errorf("%s: %dx%d, want %dx%d: %w", tag, r, c, n, n, matrix.ErrDimensionMismatch)
		}
	}

	return nil
}
