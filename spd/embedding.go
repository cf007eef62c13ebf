// SPDX-License-Identifier: MIT

package spd

import (
	"fmt"

	"github.com/katalvlaran/riemann/manifold"
	"github.com/katalvlaran/riemann/matrix"
)

const (
	opEmbed   = "spd.EuclideanEmbedding.EmbedInto"
	opProject = "spd.EuclideanEmbedding.ProjectInto"
)

// EuclideanEmbedding embeds SPD(N) in the space of N×N matrices with the
// Frobenius inner product. Use with manifold.NewEmbeddedManifold.
type EuclideanEmbedding struct{}

var (
	_ manifold.Layer        = EuclideanEmbedding{}
	_ manifold.HasEmbedding = EuclideanEmbedding{}
)

// Name implements manifold.Layer.
func (EuclideanEmbedding) Name() string { return "Euclidean" }

// EmbedInto copies p into q.
func (EuclideanEmbedding) EmbedInto(q, p *matrix.Dense) error {
	if err := matrix.ValidateNotNil(q); err != nil {
		return fmt.Errorf("%s: %w", opEmbed, err)
	}
	if err := q.CopyFrom(p); err != nil {
		return fmt.Errorf("%s: %w", opEmbed, err)
	}

	return nil
}

// ProjectInto writes the symmetric part (X + Xᵀ)/2 of an ambient matrix into
// Y. The result is exactly symmetric; Y may alias X.
// Complexity: O(N²).
func (EuclideanEmbedding) ProjectInto(Y, p, X *matrix.Dense) error {
	if err := matrix.ValidateSquareNonNil(X); err != nil {
		return fmt.Errorf("%s: %w", opProject, err)
	}
	if err := matrix.ValidateBinarySameShape(Y, X); err != nil {
		return fmt.Errorf("%s: %w", opProject, err)
	}
	n := X.Rows()
	yd, xd := Y.RawData(), X.RawData()
	var i, j int
	for i = 0; i < n; i++ {
		yd[i*n+i] = xd[i*n+i]
		for j = 0; j < i; j++ {
			v := 0.5 * (xd[i*n+j] + xd[j*n+i])
			yd[i*n+j] = v
			yd[j*n+i] = v
		}
	}

	return nil
}
