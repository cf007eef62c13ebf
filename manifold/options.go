// SPDX-License-Identifier: MIT

// Package manifold: functional configuration shared by concrete manifolds.
// This file defines:
//   - Field (the scalar field a manifold is defined over),
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - NewOptions that resolves options and enforces invariants.
//
// Notes:
//   - Options only affect the check operators (CheckPoint/CheckVector). The
//     geometric operators never validate and never read the tolerance.
//   - Complex is declared so callers can ask for it explicitly; constructors
//     reject it with ErrNotImplemented.
package manifold

import (
	"fmt"
	"math"
)

// Field is the scalar field a manifold's points are defined over.
type Field int

const (
	// Real is the field of real numbers (the only supported field).
	Real Field = iota
	// Complex is the field of complex numbers (declared, not implemented).
	Complex
)

// String implements fmt.Stringer.
func (f Field) String() string {
	switch f {
	case Real:
		return "ℝ"
	case Complex:
		return "ℂ"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultTolerance is the non-negative tolerance used by structural checks
	// (symmetry, lower-triangularity).
	DefaultTolerance = 1e-9

	// DefaultField is the scalar field used when WithField is not given.
	DefaultField = Real
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicToleranceInvalid = "manifold: WithTolerance: tol must be finite, non-negative"
	panicFieldInvalid     = "manifold: WithField: unknown field"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; read them through the accessor methods.
type Options struct {
	tol   float64 // >= 0; DefaultTolerance
	field Field   // DefaultField
}

// WithTolerance sets the tolerance used by the check operators.
// Panics with a stable message when tol is NaN, ±Inf or negative.
//
// AI-Hints:
//   - Prefer small positive tolerances (1e-9 .. 1e-12) for double-precision data.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.tol = tol }
}

// WithField selects the scalar field. Panics on values outside {Real, Complex}.
func WithField(f Field) Option {
	if f != Real && f != Complex {
		panic(panicFieldInvalid)
	}

	return func(o *Options) { o.field = f }
}

// NewOptions resolves opts over the defaults. Nil options are skipped.
// Complexity: O(len(opts)).
func NewOptions(opts ...Option) Options {
	o := Options{tol: DefaultTolerance, field: DefaultField}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// Tolerance returns the configured structural tolerance.
func (o Options) Tolerance() float64 { return o.tol }

// Field returns the configured scalar field.
func (o Options) Field() Field { return o.field }

// CheckField returns ErrNotImplemented for any field other than Real.
func CheckField(f Field) error {
	if f != Real {
		return fmt.Errorf("field %s: %w", f, ErrNotImplemented)
	}

	return nil
}
