// SPDX-License-Identifier: MIT

package spd_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/riemann/manifold"
)

func BenchmarkDistance(b *testing.B) {
	for _, n := range []int{3, 10, 30} {
		p := randomSPD(b, n, 1)
		q := randomSPD(b, n, 2)
		for name, M := range metrics(n) {
			b.Run(fmt.Sprintf("%s/N=%d", name, n), func(b *testing.B) {
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					if _, err := manifold.Distance(M, p, q); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkExpInto(b *testing.B) {
	for _, n := range []int{3, 10, 30} {
		p := randomSPD(b, n, 3)
		X := randomTangent(b, n, 4, 0.1)
		q := p.CloneDense()
		for name, M := range metrics(n) {
			b.Run(fmt.Sprintf("%s/N=%d", name, n), func(b *testing.B) {
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					if err := manifold.ExpInto(M, q, p, X); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
