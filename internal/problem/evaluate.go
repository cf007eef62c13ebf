// SPDX-License-Identifier: MIT

package problem

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/riemann/internal/logging"
	"github.com/katalvlaran/riemann/manifold"
	"github.com/katalvlaran/riemann/matrix"
)

// Result is the outcome of one case. Exactly one value field is set on
// success; Error is set instead on failure.
type Result struct {
	Name   string      `yaml:"name"`
	Op     string      `yaml:"op"`
	Scalar *float64    `yaml:"scalar,omitempty"`
	Bool   *bool       `yaml:"bool,omitempty"`
	Int    *int        `yaml:"int,omitempty"`
	Matrix [][]float64 `yaml:"matrix,omitempty"`
	Vector []float64   `yaml:"vector,omitempty"`
	Error  string      `yaml:"error,omitempty"`
}

// Evaluator runs the cases of a problem file.
type Evaluator struct {
	// Workers bounds concurrent cases; ≤ 0 means GOMAXPROCS.
	Workers int
	// Options are applied to every manifold built for a case.
	Options []manifold.Option
	// Log receives one debug entry per case; nil means no logging.
	Log *logging.Logger
}

func (e *Evaluator) logger() *logging.Logger {
	if e.Log == nil {
		return logging.Nop()
	}

	return e.Log
}

func (e *Evaluator) workers() int {
	if e.Workers > 0 {
		return e.Workers
	}

	return runtime.GOMAXPROCS(0)
}

// EvaluateAll evaluates every case concurrently and returns the results in
// case order. A failing case is reported in its Result; the returned error is
// non-nil only when ctx is cancelled.
func (e *Evaluator) EvaluateAll(ctx context.Context, f *File) ([]Result, error) {
	results := make([]Result, len(f.Cases))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers())
	for i := range f.Cases {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = e.Evaluate(f, f.Cases[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("problem: evaluate: %w", err)
	}

	return results, nil
}

// Evaluate runs one case of f.
func (e *Evaluator) Evaluate(f *File, c Case) Result {
	res := Result{Name: c.Name, Op: c.Op}
	log := e.logger().With(zap.String("case", c.Name), zap.String("op", c.Op))
	if err := e.evaluate(f, c, &res); err != nil {
		res.Error = err.Error()
		log.Debug("case failed", zap.Error(err))
		return res
	}
	log.Debug("case done")

	return res
}

// evaluate fills res with the value of c.
func (e *Evaluator) evaluate(f *File, c Case, res *Result) error {
	p, err := operand("p", c.P)
	if err != nil {
		return err
	}
	M, err := f.Build(p.Rows(), e.Options...)
	if err != nil {
		return err
	}

	switch c.Op {
	case OpDimension:
		d := manifold.Dimension(M)
		res.Int = &d
	case OpIsFlat:
		flat, err := manifold.IsFlat(M)
		if err != nil {
			return err
		}
		res.Bool = &flat
	case OpInner:
		X, Y, err := pair("x", c.X, "y", c.Y)
		if err != nil {
			return err
		}
		return scalar(res)(manifold.Inner(M, p, X, Y))
	case OpNorm:
		X, err := operand("x", c.X)
		if err != nil {
			return err
		}
		return scalar(res)(manifold.Norm(M, p, X))
	case OpDistance:
		q, err := operand("q", c.Q)
		if err != nil {
			return err
		}
		return scalar(res)(manifold.Distance(M, p, q))
	case OpExp:
		X, err := operand("x", c.X)
		if err != nil {
			return err
		}
		return dense(res)(manifold.Exp(M, p, X))
	case OpLog:
		q, err := operand("q", c.Q)
		if err != nil {
			return err
		}
		return dense(res)(manifold.Log(M, p, q))
	case OpTransport:
		X, q, err := pair("x", c.X, "q", c.Q)
		if err != nil {
			return err
		}
		return dense(res)(manifold.ParallelTransportTo(M, p, X, q))
	case OpGeodesic:
		X, err := operand("x", c.X)
		if err != nil {
			return err
		}
		return dense(res)(manifold.GeodesicAt(M, p, X, c.T))
	case OpCoordinates:
		X, err := operand("x", c.X)
		if err != nil {
			return err
		}
		b, err := parseBasis(c.Basis)
		if err != nil {
			return err
		}
		v, err := manifold.Coordinates(M, p, X, b)
		if err != nil {
			return err
		}
		res.Vector = v
	case OpVector:
		b, err := parseBasis(c.Basis)
		if err != nil {
			return err
		}
		return dense(res)(manifold.Vector(M, p, c.C, b))
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, c.Op)
	}

	return nil
}

// Check validates the operands of every case: p and q as points, x and y as
// tangent vectors at p. The returned results carry Bool=true or an Error.
func (e *Evaluator) Check(f *File) []Result {
	results := make([]Result, len(f.Cases))
	for i, c := range f.Cases {
		results[i] = Result{Name: c.Name, Op: c.Op}
		if err := e.check(f, c); err != nil {
			results[i].Error = err.Error()
			continue
		}
		ok := true
		results[i].Bool = &ok
	}

	return results
}

func (e *Evaluator) check(f *File, c Case) error {
	p, err := operand("p", c.P)
	if err != nil {
		return err
	}
	M, err := f.Build(p.Rows(), e.Options...)
	if err != nil {
		return err
	}
	if err = manifold.CheckPoint(M, p); err != nil {
		return fmt.Errorf("p: %w", err)
	}
	if len(c.Q) > 0 {
		q, err := operand("q", c.Q)
		if err != nil {
			return err
		}
		if err = manifold.CheckPoint(M, q); err != nil {
			return fmt.Errorf("q: %w", err)
		}
	}
	for _, v := range []struct {
		name string
		rows [][]float64
	}{{"x", c.X}, {"y", c.Y}} {
		if len(v.rows) == 0 {
			continue
		}
		X, err := operand(v.name, v.rows)
		if err != nil {
			return err
		}
		if err = manifold.CheckVector(M, p, X); err != nil {
			return fmt.Errorf("%s: %w", v.name, err)
		}
	}

	return nil
}

// pair converts two operands.
func pair(na string, a [][]float64, nb string, b [][]float64) (*matrix.Dense, *matrix.Dense, error) {
	A, err := operand(na, a)
	if err != nil {
		return nil, nil, err
	}
	B, err := operand(nb, b)
	if err != nil {
		return nil, nil, err
	}

	return A, B, nil
}

// scalar stores a float result.
func scalar(res *Result) func(float64, error) error {
	return func(v float64, err error) error {
		if err != nil {
			return err
		}
		res.Scalar = &v
		return nil
	}
}

// dense stores a matrix result.
func dense(res *Result) func(*matrix.Dense, error) error {
	return func(m *matrix.Dense, err error) error {
		if err != nil {
			return err
		}
		res.Matrix = m.ToRows()
		return nil
	}
}

// Encode writes results as a YAML sequence.
func Encode(w io.Writer, results []Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("problem: encode: %w", err)
	}

	return enc.Close()
}
