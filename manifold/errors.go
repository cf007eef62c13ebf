// SPDX-License-Identifier: MIT
// Package manifold: sentinel errors and the structured validation error.
//
// Every message is prefixed with "manifold: ..." for consistency. Operators
// wrap failures with manifoldErrorf(op, err); callers match with errors.Is /
// errors.As. Matrix sentinels (matrix.ErrAsymmetry, ...) stay reachable
// through the chain.

package manifold

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the umbrella sentinel for rejected points and vectors.
	// Raised only by the check operators, always as a *ValidationError.
	ErrValidation = errors.New("manifold: validation failed")

	// ErrFactorization signals that a Cholesky factor could not be formed, or
	// that the pull-back of a tangent vector through it is not finite.
	ErrFactorization = errors.New("manifold: factorization failed")

	// ErrOutsideInjectivityRadius signals that an iterative inverse retraction
	// did not converge, typically because q is too far from p.
	ErrOutsideInjectivityRadius = errors.New("manifold: outside injectivity radius")

	// ErrNotImplemented signals that neither a decoration layer nor the base
	// manifold provides the requested operation.
	ErrNotImplemented = errors.New("manifold: not implemented")
)

// ValidationError describes why a point or tangent vector was rejected.
//
// Fields:
//   - Manifold: Name() of the manifold that ran the check.
//   - Predicate: the failing predicate ("shape", "finite", "symmetric", ...).
//   - Value: the offending quantity when one exists (e.g. the smallest eigenvalue).
//   - Err: the underlying cause, usually a matrix sentinel.
type ValidationError struct {
	Manifold  string
	Predicate string
	Value     any
	Err       error
}

// NewValidationError builds a *ValidationError.
func NewValidationError(manifold, predicate string, value any, err error) *ValidationError {
	return &ValidationError{Manifold: manifold, Predicate: predicate, Value: value, Err: err}
}

// Error implements error.
func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("manifold: %s: %s (value %v): %v", e.Manifold, e.Predicate, e.Value, e.Err)
	}

	return fmt.Sprintf("manifold: %s: %s: %v", e.Manifold, e.Predicate, e.Err)
}

// Unwrap exposes both ErrValidation and the underlying cause to errors.Is.
func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrValidation}
	}

	return []error{ErrValidation, e.Err}
}

// manifoldErrorf wraps err with an operation tag, preserving it via %w.
// Use only when err != nil.
func manifoldErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
