// SPDX-License-Identifier: MIT

package problem_test

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/riemann/internal/logging"
	"github.com/katalvlaran/riemann/internal/problem"
	"github.com/katalvlaran/riemann/manifold"
)

func decode(t *testing.T, src string) *problem.File {
	t.Helper()
	f, err := problem.Decode(strings.NewReader(src))
	require.NoError(t, err)

	return f
}

func TestLoad(t *testing.T) {
	t.Parallel()

	f, err := problem.Load("testdata/spd.yaml")
	require.NoError(t, err)
	require.Equal(t, problem.KindSPD, f.Manifold)
	require.Equal(t, problem.MetricLogCholesky, f.Metric)
	require.Len(t, f.Cases, 7)

	_, err = problem.Load("testdata/missing.yaml")
	require.Error(t, err)
}

func TestDecode_Invalid(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"unknown manifold":  "manifold: torus\ncases: []\n",
		"metric on factors": "manifold: cholesky\nmetric: log-cholesky\n",
		"unknown metric":    "manifold: spd\nmetric: bures\n",
		"missing op":        "manifold: spd\ncases:\n  - name: a\n    p: [[1]]\n",
		"missing p":         "manifold: spd\ncases:\n  - name: a\n    op: exp\n",
		"unknown key":       "manifold: spd\nsize: 3\n",
		"not yaml":          "manifold: [\n",
	}
	for name, src := range tests {
		src := src
		t.Run(name, func(t *testing.T) {
			_, err := problem.Decode(strings.NewReader(src))
			require.ErrorIs(t, err, problem.ErrInvalid)
		})
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	spdLC := &problem.File{Manifold: problem.KindSPD, Metric: problem.MetricLogCholesky}
	M, err := spdLC.Build(3)
	require.NoError(t, err)
	require.Equal(t, "SPD(3){LogCholesky}", M.Name())

	ai := &problem.File{Manifold: problem.KindSPD, Metric: problem.MetricAffineInvariant}
	M, err = ai.Build(2)
	require.NoError(t, err)
	layer, ok := manifold.MetricOf(M)
	require.True(t, ok)
	require.Equal(t, "AffineInvariant", layer.Name())

	chol := &problem.File{Manifold: problem.KindCholesky}
	M, err = chol.Build(2, manifold.WithTolerance(1e-3))
	require.NoError(t, err)
	require.Equal(t, "Cholesky(2)", M.Name())

	_, err = chol.Build(0)
	require.Error(t, err)
}

func TestEvaluateAll(t *testing.T) {
	t.Parallel()

	f, err := problem.Load("testdata/spd.yaml")
	require.NoError(t, err)
	e := &problem.Evaluator{Workers: 3, Log: logging.Nop()}
	results, err := e.EvaluateAll(context.Background(), f)
	require.NoError(t, err)
	require.Len(t, results, len(f.Cases))
	for i, r := range results {
		require.Equal(t, f.Cases[i].Name, r.Name)
	}

	e2 := 2 * math.Exp(0.5)
	require.Empty(t, results[0].Error)
	require.InDeltaSlice(t, []float64{e2, 0}, results[0].Matrix[0], 1e-12)
	require.InDelta(t, math.Sqrt2/4, *results[1].Scalar, 1e-12)
	require.InDelta(t, math.Sqrt2/4, *results[2].Scalar, 1e-12)
	require.True(t, *results[3].Bool)
	require.Equal(t, 6, *results[4].Int)
	require.Equal(t, []float64{2, 1, 3}, results[5].Vector)
	require.Contains(t, results[6].Error, "factorization failed")
	require.Nil(t, results[6].Matrix)
}

func TestEvaluate_CaseErrors(t *testing.T) {
	t.Parallel()

	f := decode(t, `
manifold: cholesky
cases:
  - {name: bad-op, op: curvature, p: [[1]]}
  - {name: no-x, op: exp, p: [[1]]}
  - {name: bad-basis, op: vector, basis: polar, p: [[1]], c: [1]}
  - {name: ragged, op: norm, p: [[1, 0], [0]], x: [[1]]}
  - {name: vector, op: vector, p: [[2]], c: [3]}
  - {name: geodesic, op: geodesic, p: [[1]], x: [[1]], t: 0}
`)
	var e problem.Evaluator
	results, err := e.EvaluateAll(context.Background(), f)
	require.NoError(t, err)
	require.Contains(t, results[0].Error, "unknown op")
	require.Contains(t, results[1].Error, "missing x")
	require.Contains(t, results[2].Error, "basis")
	require.Contains(t, results[3].Error, "ragged")
	require.Equal(t, [][]float64{{6}}, results[4].Matrix)
	require.Equal(t, [][]float64{{1}}, results[5].Matrix)
}

func TestEvaluateAll_Cancelled(t *testing.T) {
	t.Parallel()

	f, err := problem.Load("testdata/spd.yaml")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var e problem.Evaluator
	_, err = e.EvaluateAll(ctx, f)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCheck(t *testing.T) {
	t.Parallel()

	f := decode(t, `
manifold: spd
cases:
  - {name: ok, op: inner, p: [[2, 1], [1, 2]], x: [[1, 0], [0, 1]], y: [[0, 1], [1, 0]]}
  - {name: bad-p, op: exp, p: [[1, 2], [2, 1]]}
  - {name: bad-q, op: log, p: [[1, 0], [0, 1]], q: [[1, 2], [0, 1]]}
  - {name: bad-y, op: inner, p: [[1, 0], [0, 1]], x: [[1, 0], [0, 1]], y: [[0, 1], [0, 0]]}
`)
	results := (&problem.Evaluator{}).Check(f)
	require.True(t, *results[0].Bool)
	require.Contains(t, results[1].Error, "p: ")
	require.Contains(t, results[1].Error, "positive-definite")
	require.Contains(t, results[2].Error, "q: ")
	require.Contains(t, results[3].Error, "y: ")
	require.Contains(t, results[3].Error, "symmetric")

	// tolerance from the options relaxes the symmetry check
	loose := &problem.Evaluator{Options: []manifold.Option{manifold.WithTolerance(2)}}
	require.True(t, *loose.Check(f)[3].Bool)
}

func TestEncode(t *testing.T) {
	t.Parallel()

	v := 0.5
	var buf bytes.Buffer
	require.NoError(t, problem.Encode(&buf, []problem.Result{
		{Name: "a", Op: "norm", Scalar: &v},
		{Name: "b", Op: "log", Error: "boom"},
	}))

	var back []problem.Result
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	require.Equal(t, 0.5, *back[0].Scalar)
	require.Equal(t, "boom", back[1].Error)
	require.NotContains(t, buf.String(), "matrix")
}
