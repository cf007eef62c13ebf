// SPDX-License-Identifier: MIT

package spd_test

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/katalvlaran/riemann/manifold"
	"github.com/katalvlaran/riemann/matrix"
	"github.com/katalvlaran/riemann/spd"
	"github.com/stretchr/testify/require"
)

func TestLogCholesky_Resolution(t *testing.T) {
	t.Parallel()

	M := logCholesky(3)
	require.Equal(t, "SPD(3){LogCholesky}", M.Name())
	require.Equal(t, 6, manifold.Dimension(M))

	for _, op := range []manifold.Op{
		manifold.OpInner, manifold.OpExp, manifold.OpLog, manifold.OpDistance,
		manifold.OpParallelTransport, manifold.OpCoordinates, manifold.OpVector, manifold.OpIsFlat,
	} {
		impl, err := manifold.Resolve(M, op)
		require.NoError(t, err, op)
		require.IsType(t, spd.LogCholesky{}, impl, op)
	}
	impl, err := manifold.Resolve(M, manifold.OpCheckPoint)
	require.NoError(t, err)
	require.IsType(t, spd.Manifold{}, impl)

	layer, ok := manifold.MetricOf(M)
	require.True(t, ok)
	require.Equal(t, "LogCholesky", layer.Name())
}

func TestLogCholesky_ScaledIdentity(t *testing.T) {
	t.Parallel()

	M := logCholesky(2)
	p := mustDiag(t, 2, 2)
	X := mustDiag(t, 1, 1)

	q, err := manifold.Exp(M, p, X)
	require.NoError(t, err)
	e := 2 * math.Exp(0.5)
	requireClose(t, mustDiag(t, e, e), q, 1e-12)
	require.InDelta(t, 3.2974, q.RawData()[0], 1e-4)

	d, err := manifold.Distance(M, p, q)
	require.NoError(t, err)
	require.InDelta(t, math.Sqrt2/4, d, 1e-12)

	nrm, err := manifold.Norm(M, p, X)
	require.NoError(t, err)
	require.InDelta(t, d, nrm, 1e-12)

	back, err := manifold.Log(M, p, q)
	require.NoError(t, err)
	requireClose(t, X, back, 1e-12)
}

func TestLogCholesky_FlatForEveryN(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 6; n++ {
		flat, err := manifold.IsFlat(logCholesky(n))
		require.NoError(t, err)
		require.True(t, flat, "N=%d", n)
	}
}

func TestLogCholesky_LogOfExp(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 2, 3, 5} {
		n := n
		t.Run(fmt.Sprintf("N=%d", n), func(t *testing.T) {
			t.Parallel()
			M := logCholesky(n)
			p := randomSPD(t, n, int64(n))
			X := randomTangent(t, n, int64(50+n), 0.3)

			q, err := manifold.Exp(M, p, X)
			require.NoError(t, err)
			require.NoError(t, manifold.CheckPoint(M, q))
			back, err := manifold.Log(M, p, q)
			require.NoError(t, err)
			requireClose(t, X, back, 1e-9)

			// distance equals the norm of the log
			d, err := manifold.Distance(M, p, q)
			require.NoError(t, err)
			nrm, err := manifold.Norm(M, p, back)
			require.NoError(t, err)
			require.InDelta(t, d, nrm, 1e-9)
		})
	}
}

func TestLogCholesky_InnerMatchesCholeskySpace(t *testing.T) {
	t.Parallel()

	M := logCholesky(3)
	p := randomSPD(t, 3, 1)
	X := randomTangent(t, 3, 2, 1)
	Y := randomTangent(t, 3, 3, 1)

	ip, err := manifold.Inner(M, p, X, Y)
	require.NoError(t, err)
	ipYX, err := manifold.Inner(M, p, Y, X)
	require.NoError(t, err)
	require.InDelta(t, ip, ipYX, tol)

	// orthonormal coordinates are an isometry onto ℝ^d
	cx, err := manifold.Coordinates(M, p, X, manifold.DefaultOrthonormalBasis)
	require.NoError(t, err)
	cy, err := manifold.Coordinates(M, p, Y, manifold.DefaultOrthonormalBasis)
	require.NoError(t, err)
	var dot float64
	for i := range cx {
		dot += cx[i] * cy[i]
	}
	require.InDelta(t, ip, dot, tol)
}

func TestLogCholesky_NearSingular(t *testing.T) {
	t.Parallel()

	M := logCholesky(2)
	p := mustDiag(t, 1e-12, 1)
	X := mustFrom(t, [][]float64{{1, 0.5}, {0.5, 1}})

	check := func(name string, err error, vals ...float64) {
		if err != nil {
			require.ErrorIs(t, err, manifold.ErrFactorization, name)
			return
		}
		for _, v := range vals {
			require.False(t, math.IsNaN(v) || math.IsInf(v, 0), "%s: %v", name, v)
		}
	}

	q, err := manifold.Exp(M, p, X)
	if err == nil {
		check("exp", matrix.ValidateFinite(q))
	} else {
		check("exp", err)
	}
	d, err := manifold.Distance(M, p, mustDiag(t, 1, 1))
	check("distance", err, d)
	ip, err := manifold.Inner(M, p, X, X)
	check("inner", err, ip)
	L, err := manifold.Log(M, p, mustDiag(t, 1, 1))
	if err == nil {
		check("log", matrix.ValidateFinite(L))
	} else {
		check("log", err)
	}
}

func TestLogCholesky_NonSPDInputs(t *testing.T) {
	t.Parallel()

	M := logCholesky(2)
	bad := mustFrom(t, [][]float64{{1, 2}, {2, 1}})
	good := mustDiag(t, 1, 1)

	_, err := manifold.Distance(M, good, bad)
	require.ErrorIs(t, err, manifold.ErrFactorization)
	_, err = manifold.Exp(M, bad, good)
	require.ErrorIs(t, err, manifold.ErrFactorization)
	_, err = manifold.Log(M, good, bad)
	require.ErrorIs(t, err, manifold.ErrFactorization)
	_, err = manifold.Inner(M, bad, good, good)
	require.ErrorIs(t, err, manifold.ErrFactorization)
	_, err = manifold.ParallelTransportTo(M, good, good, bad)
	require.ErrorIs(t, err, manifold.ErrFactorization)

	_, err = spd.LogCholesky{}.Distance(nil, good)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	// a single triangle of [[2,1],[0,2]] factors; the full matrix must not
	asym := mustFrom(t, [][]float64{{2, 1}, {0, 2}})
	_, err = manifold.Distance(M, asym, good)
	require.ErrorIs(t, err, manifold.ErrFactorization)
	require.ErrorIs(t, err, matrix.ErrAsymmetry)
	_, err = manifold.Exp(M, asym, good)
	require.ErrorIs(t, err, matrix.ErrAsymmetry)
	_, err = manifold.Inner(M, asym, good, good)
	require.ErrorIs(t, err, matrix.ErrAsymmetry)
	_, err = manifold.Log(M, good, asym)
	require.ErrorIs(t, err, matrix.ErrAsymmetry)
	_, err = manifold.ParallelTransportTo(M, good, good, asym)
	require.ErrorIs(t, err, matrix.ErrAsymmetry)
}

func TestLogCholesky_Coordinates(t *testing.T) {
	t.Parallel()

	M := logCholesky(3)
	p := randomSPD(t, 3, 11)
	X := randomTangent(t, 3, 12, 1)

	for _, b := range []manifold.Basis{manifold.DefaultOrthonormalBasis, manifold.CanonicalBasis} {
		c, err := manifold.Coordinates(M, p, X, b)
		require.NoError(t, err, b)
		require.Len(t, c, 6)
		back, err := manifold.Vector(M, p, c, b)
		require.NoError(t, err, b)
		requireClose(t, X, back, tol)
	}

	// canonical coordinates do not depend on the metric
	c1, err := manifold.Coordinates(M, p, X, manifold.CanonicalBasis)
	require.NoError(t, err)
	c2, err := manifold.Coordinates(spd.MustNew(3), p, X, manifold.CanonicalBasis)
	require.NoError(t, err)
	require.Equal(t, c1, c2)

	// VectorInto with X aliasing p
	c, err := manifold.Coordinates(M, p, X, manifold.DefaultOrthonormalBasis)
	require.NoError(t, err)
	pp := p.CloneDense()
	require.NoError(t, manifold.VectorInto(M, pp, pp, c, manifold.DefaultOrthonormalBasis))
	requireClose(t, X, pp, tol)

	err = manifold.CoordinatesInto(M, make([]float64, 6), p, X, manifold.Basis(7))
	require.ErrorIs(t, err, manifold.ErrNotImplemented)
}

func TestLogCholesky_ConcurrentUse(t *testing.T) {
	t.Parallel()

	M := logCholesky(4)
	p := randomSPD(t, 4, 21)
	q := randomSPD(t, 4, 22)
	want, err := manifold.Distance(M, p, q)
	require.NoError(t, err)

	var wg sync.WaitGroup
	got := make([]float64, 16)
	errs := make([]error, 16)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], errs[i] = manifold.Distance(M, p, q)
		}(i)
	}
	wg.Wait()
	for i := range got {
		require.NoError(t, errs[i])
		require.Equal(t, want, got[i])
	}
}
