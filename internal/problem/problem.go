// SPDX-License-Identifier: MIT

// Package problem reads YAML problem files and evaluates their cases.
//
//	manifold: spd            # spd | cholesky
//	metric: log-cholesky     # "" | affine-invariant | log-cholesky
//	cases:
//	  - name: scaled-identity
//	    op: exp
//	    p: [[2, 0], [0, 2]]
//	    x: [[1, 0], [0, 1]]
//
// Each case names its own operands; N is taken from p.
package problem

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/riemann/cholesky"
	"github.com/katalvlaran/riemann/manifold"
	"github.com/katalvlaran/riemann/matrix"
	"github.com/katalvlaran/riemann/spd"
)

// Manifold kinds.
const (
	KindSPD      = "spd"
	KindCholesky = "cholesky"
)

// Metric names.
const (
	MetricDefault         = ""
	MetricAffineInvariant = "affine-invariant"
	MetricLogCholesky     = "log-cholesky"
)

// Case operations.
const (
	OpInner       = "inner"
	OpNorm        = "norm"
	OpExp         = "exp"
	OpLog         = "log"
	OpDistance    = "distance"
	OpTransport   = "transport"
	OpCoordinates = "coordinates"
	OpVector      = "vector"
	OpIsFlat      = "is-flat"
	OpDimension   = "dimension"
	OpGeodesic    = "geodesic"
)

// Basis names.
const (
	BasisOrthonormal = "orthonormal"
	BasisCanonical   = "canonical"
)

var (
	// ErrInvalid reports a malformed problem file or case.
	ErrInvalid = errors.New("problem: invalid problem")

	// ErrUnknownOp reports a case op outside the supported set.
	ErrUnknownOp = errors.New("problem: unknown op")
)

// File is a problem file.
type File struct {
	Manifold string `yaml:"manifold"`
	Metric   string `yaml:"metric,omitempty"`
	Cases    []Case `yaml:"cases"`
}

// Case is one operation with its operands. Which operands are required depends on Op:
//
//	inner:       p, x, y          norm:      p, x
//	exp:         p, x             log:       p, q
//	distance:    p, q             transport: p, x, q
//	coordinates: p, x, basis      vector:    p, c, basis
//	geodesic:    p, x, t          is-flat, dimension: p (for N)
type Case struct {
	Name  string      `yaml:"name"`
	Op    string      `yaml:"op"`
	P     [][]float64 `yaml:"p,omitempty"`
	Q     [][]float64 `yaml:"q,omitempty"`
	X     [][]float64 `yaml:"x,omitempty"`
	Y     [][]float64 `yaml:"y,omitempty"`
	C     []float64   `yaml:"c,omitempty"`
	T     float64     `yaml:"t,omitempty"`
	Basis string      `yaml:"basis,omitempty"`
}

// Load reads and validates a problem file.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("problem: read %s: %w", path, err)
	}

	return Decode(bytes.NewReader(raw))
}

// Decode parses and validates a problem file from r. Unknown keys are rejected.
func Decode(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	return &f, nil
}

// Validate checks the manifold/metric pair and that every case names an op and a point p.
func (f *File) Validate() error {
	switch f.Manifold {
	case KindSPD:
		if f.Metric != MetricDefault && f.Metric != MetricAffineInvariant && f.Metric != MetricLogCholesky {
			return fmt.Errorf("%w: metric %q on %s", ErrInvalid, f.Metric, f.Manifold)
		}
	case KindCholesky:
		if f.Metric != MetricDefault {
			return fmt.Errorf("%w: metric %q on %s", ErrInvalid, f.Metric, f.Manifold)
		}
	default:
		return fmt.Errorf("%w: manifold %q", ErrInvalid, f.Manifold)
	}
	for i, c := range f.Cases {
		if c.Op == "" {
			return fmt.Errorf("%w: case %d (%s): missing op", ErrInvalid, i, c.Name)
		}
		if len(c.P) == 0 {
			return fmt.Errorf("%w: case %d (%s): missing p", ErrInvalid, i, c.Name)
		}
	}

	return nil
}

// Build returns the manifold of the file's kind and metric for N×N points.
func (f *File) Build(n int, opts ...manifold.Option) (manifold.Manifold, error) {
	switch f.Manifold {
	case KindCholesky:
		s, err := cholesky.New(n, opts...)
		if err != nil {
			return nil, err
		}
		return s, nil
	case KindSPD:
		base, err := spd.New(n, opts...)
		if err != nil {
			return nil, err
		}
		switch f.Metric {
		case MetricLogCholesky:
			return manifold.NewMetricManifold(base, spd.LogCholesky{}), nil
		case MetricAffineInvariant:
			return manifold.NewMetricManifold(base, spd.AffineInvariant{}), nil
		default:
			return base, nil
		}
	default:
		return nil, fmt.Errorf("%w: manifold %q", ErrInvalid, f.Manifold)
	}
}

// parseBasis maps a basis name to manifold.Basis; empty means orthonormal.
func parseBasis(name string) (manifold.Basis, error) {
	switch name {
	case "", BasisOrthonormal:
		return manifold.DefaultOrthonormalBasis, nil
	case BasisCanonical:
		return manifold.CanonicalBasis, nil
	default:
		return 0, fmt.Errorf("%w: basis %q", ErrInvalid, name)
	}
}

// operand converts rows to a matrix, naming the operand on failure.
func operand(name string, rows [][]float64) (*matrix.Dense, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalid, name)
	}
	m, err := matrix.NewDenseFrom(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalid, name, err)
	}

	return m, nil
}
