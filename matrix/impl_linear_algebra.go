// SPDX-License-Identifier: MIT
// Package matrix provides the plain product kernel on any Matrix
// implementation. It performs strict fail-fast validation and returns clear
// errors on dimension mismatches.
//
// Notes:
//   - The step-recording chain engine lives in package chain; Mul here is the
//     untraced reference it is checked against.

package matrix

import "fmt"

// ZeroSum is the initial value for dot-product accumulation.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping.
const (
	opMul = "Mul"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Mul performs standard matrix multiplication C = A × B (no aliasing).
// Implementation:
//   - Stage 1: Validate A,B (not nil) and inner dimensions (A.Cols == B.Rows).
//   - Stage 2: Fast path on two *Dense operands walks flat buffers i→j→k;
//     otherwise the same order through At.
//
// Behavior highlights:
//   - The i→j→k order matches the accumulation order of the traced engine,
//     so both produce bitwise-identical sums.
//
// Inputs:
//   - A: left matrix with shape (r × n).
//   - B: right matrix with shape (n × c).
//
// Returns:
//   - *Dense C with shape (r × c).
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	aRows, aCols, bCols := a.Rows(), a.Cols(), b.Cols()
	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	var (
		i, j, k int
		av, bv  float64
		sum     float64
	)
	// Fast-path for two Dense matrices
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for i = 0; i < aRows; i++ {
				for j = 0; j < bCols; j++ {
					sum = ZeroSum
					for k = 0; k < aCols; k++ {
						sum += da.data[i*aCols+k] * db.data[k*bCols+j]
					}
					if err = res.Set(i, j, sum); err != nil {
						return nil, matrixErrorf(opMul, err) // overflow to ±Inf
					}
				}
			}
			return res, nil
		}
	}

	// Fallback: generic interface triple-loop (i-j-k)
	for i = 0; i < aRows; i++ {
		for j = 0; j < bCols; j++ {
			sum = ZeroSum
			for k = 0; k < aCols; k++ {
				if av, err = a.At(i, k); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				if bv, err = b.At(k, j); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				sum += av * bv // accumulate product
			}
			if err = res.Set(i, j, sum); err != nil {
				return nil, matrixErrorf(opMul, err)
			}
		}
	}

	return res, nil
}
