// SPDX-License-Identifier: MIT
// Package manifold_test contains test fixtures: a flat Euclidean manifold of
// n×n matrices and a few decoration layers with known behavior.

package manifold_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/riemann/manifold"
	"github.com/katalvlaran/riemann/matrix"
	"github.com/stretchr/testify/require"
)

// euclid is ℝ^{n×n} with the Frobenius metric.
type euclid struct{ n int }

func (e euclid) Name() string          { return fmt.Sprintf("Euclidean(%d)", e.n) }
func (e euclid) Size() int             { return e.n }
func (e euclid) Field() manifold.Field { return manifold.Real }
func (e euclid) Dimension() int        { return e.n * e.n }
func (e euclid) IsFlat() bool          { return true }

func (e euclid) CheckPoint(p *matrix.Dense) error {
	if p == nil || p.Rows() != e.n || p.Cols() != e.n {
		return manifold.NewValidationError(e.Name(), "shape", nil, matrix.ErrDimensionMismatch)
	}

	return nil
}

func (e euclid) CheckVector(p, X *matrix.Dense) error {
	if err := e.CheckPoint(p); err != nil {
		return err
	}

	return e.CheckPoint(X)
}

func (e euclid) Inner(_, X, Y *matrix.Dense) (float64, error) { return matrix.FrobeniusDot(X, Y) }
func (e euclid) ExpInto(q, p, X *matrix.Dense) error          { return matrix.AddScaledInto(q, p, 1, X) }
func (e euclid) LogInto(X, p, q *matrix.Dense) error          { return matrix.AddScaledInto(X, q, -1, p) }

func (e euclid) Distance(p, q *matrix.Dense) (float64, error) {
	d, err := matrix.ZerosLike(p)
	if err != nil {
		return 0, err
	}
	if err = matrix.AddScaledInto(d, q, -1, p); err != nil {
		return 0, err
	}

	return matrix.FrobeniusNorm(d), nil
}

func (e euclid) ParallelTransportToInto(Y, _, X, _ *matrix.Dense) error { return Y.CopyFrom(X) }

func (e euclid) CoordinatesInto(c []float64, _, X *matrix.Dense, _ manifold.Basis) error {
	for i := 0; i < e.n; i++ {
		for j := 0; j < e.n; j++ {
			c[i*e.n+j], _ = X.At(i, j)
		}
	}

	return nil
}

func (e euclid) VectorInto(X, _ *matrix.Dense, c []float64, _ manifold.Basis) error {
	for i := 0; i < e.n; i++ {
		for j := 0; j < e.n; j++ {
			if err := X.Set(i, j, c[i*e.n+j]); err != nil {
				return err
			}
		}
	}

	return nil
}

// asBare hides every capability of euclid except Manifold.
func asBare(n int) manifold.Manifold {
	return struct{ manifold.Manifold }{euclid{n}}
}

// doubled scales the Frobenius inner product by 2 and declares itself curved.
// Its Dimension method must never be picked up.
type doubled struct{}

func (doubled) Name() string   { return "Doubled" }
func (doubled) IsFlat() bool   { return false }
func (doubled) Dimension() int { return -1 }
func (doubled) Inner(_, X, Y *matrix.Dense) (float64, error) {
	v, err := matrix.FrobeniusDot(X, Y)

	return 2 * v, err
}

// shifted is a connection whose exponential adds X twice.
type shifted struct{}

func (shifted) Name() string { return "Shifted" }
func (shifted) ExpInto(q, p, X *matrix.Dense) error {
	return matrix.AddScaledInto(q, p, 2, X)
}

// inert overrides nothing.
type inert struct{}

func (inert) Name() string { return "Inert" }

// sym is an embedding layer projecting onto symmetric matrices.
type sym struct{}

func (sym) Name() string                       { return "Sym" }
func (sym) EmbedInto(q, p *matrix.Dense) error { return q.CopyFrom(p) }
func (sym) ProjectInto(Y, _, X *matrix.Dense) error {
	t, err := matrix.ZerosLike(X)
	if err != nil {
		return err
	}
	if err = matrix.TransposeInto(t, X); err != nil {
		return err
	}
	if err = matrix.AddScaledInto(t, t, 1, X); err != nil {
		return err
	}
	if err = matrix.ScaleInto(t, 0.5, t); err != nil {
		return err
	}

	return Y.CopyFrom(t)
}

func mustFrom(t testing.TB, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)

	return m
}

func requireClose(t testing.TB, want, got *matrix.Dense, atol float64) {
	t.Helper()
	ok, err := matrix.AllClose(got, want, 0, atol)
	require.NoError(t, err)
	require.Truef(t, ok, "want:\n%v\ngot:\n%v", want, got)
}
