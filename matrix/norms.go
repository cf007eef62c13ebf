// SPDX-License-Identifier: MIT
// Package matrix - Frobenius norm / inner product and tolerance comparison.

package matrix

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	opFrobeniusDot = "FrobeniusDot"
	opAllClose     = "AllClose"
	frobeniusL     = 2 // L2 norm over the flat buffer
)

// FrobeniusNorm returns ‖a‖_F = sqrt(Σ a_ij²). A nil matrix has norm 0.
// Complexity: O(r*c).
func FrobeniusNorm(a *Dense) float64 {
	if a == nil {
		return 0
	}

	return floats.Norm(a.data, frobeniusL)
}

// FrobeniusDot returns ⟨a, b⟩_F = Σ a_ij·b_ij = tr(aᵀ·b).
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*c).
func FrobeniusDot(a, b *Dense) (float64, error) {
	if err := checkSameShapes(opFrobeniusDot, a, b); err != nil {
		return 0, err
	}

	return floats.Dot(a.data, b.data), nil
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol|; NaN/Inf tolerances yield ErrNaNInf.
//
// Complexity: Time O(r*c), Space O(1). Early exit on the first violation.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	var err error
	if rtol, err = normalizeTol(opAllClose, rtol); err != nil {
		return false, err
	}
	if atol, err = normalizeTol(opAllClose, atol); err != nil {
		return false, err
	}
	if err = ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}

	// Dense fast-path over flat slices.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx := range da.data {
				if !within(da.data[idx], db.data[idx], rtol, atol) {
					return false, nil
				}
			}

			return true, nil
		}
	}

	r, c := a.Rows(), a.Cols()
	var av, bv float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			av, _ = a.At(i, j)
			bv, _ = b.At(i, j)
			if !within(av, bv, rtol, atol) {
				return false, nil
			}
		}
	}

	return true, nil
}

// within reports |a-b| ≤ atol + rtol*|b|. NaN never compares close.
func within(a, b, rtol, atol float64) bool {
	return math.Abs(a-b) <= atol+rtol*math.Abs(b)
}
