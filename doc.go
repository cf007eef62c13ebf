// Package riemann computes on curved spaces of matrices: exponential and
// logarithmic maps, geodesic distances, inner products and parallel
// transport, for optimization and statistics on covariance-like data.
//
// 🚀 What is in the box?
//
//	• SPD manifold with the affine-invariant metric (default)
//	• Log-Cholesky metric as a decoration: flat for every N, closed forms only
//	• Cholesky space: lower-triangular factors with a positive diagonal
//	• Decorations: swap a metric, connection or embedding without touching the base
//	• Coordinates in orthonormal and canonical bases
//	• Inverse retraction through a pluggable solver (gonum LBFGS by default)
//
// Packages:
//
//	matrix/      row-major Dense storage, validators, triangular and spectral kernels
//	manifold/    capability interfaces, decorations, generic operators, solver boundary
//	cholesky/    the Cholesky space
//	spd/         the SPD manifold, the SPD↔Cholesky bijection, metric layers, GL(N) action
//	cmd/riemann  CLI over YAML problem files
//
// Quick example:
//
//	M := manifold.NewMetricManifold(spd.MustNew(2), spd.LogCholesky{})
//	p, _ := matrix.NewDiagonal([]float64{2, 2})
//	X, _ := matrix.NewDiagonal([]float64{1, 1})
//	q, _ := manifold.Exp(M, p, X)        // 2·e^{1/2}·I
//	d, _ := manifold.Distance(M, p, q)   // √2/4
//
//	go get github.com/katalvlaran/riemann
package riemann
