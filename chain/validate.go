// SPDX-License-Identifier: MIT

package chain

// Validate checks the structural preconditions of a chain given only its
// shapes. Pairs are checked in order against the original shapes and the
// first incompatible pair is reported.
//
// Errors:
//   - ErrTooFewMatrices when len(dims) < 2.
//   - *DimensionMismatchError for the first pair with Cols(i) != Rows(i+1).
//
// Complexity: O(n).
func Validate(dims []Dims) error {
	if len(dims) < 2 {
		return ErrTooFewMatrices
	}
	for i := 0; i+1 < len(dims); i++ {
		if dims[i].Cols != dims[i+1].Rows {
			return &DimensionMismatchError{
				Left:      i + 1,
				Right:     i + 2,
				LeftCols:  dims[i].Cols,
				RightRows: dims[i+1].Rows,
			}
		}
	}

	return nil
}

// StepCount returns the exact number of Steps Multiply would record for a
// chain of the given shapes: Σ over stages of p*q*r + p*q, where the left
// operand of every stage keeps the row count of dims[0].
//
// Errors: same as Validate.
// Complexity: O(n).
func StepCount(dims []Dims) (int, error) {
	if err := Validate(dims); err != nil {
		return 0, err
	}
	p := dims[0].Rows
	total := 0
	for m := 1; m < len(dims); m++ {
		total += stageSteps(p, dims[m].Rows, dims[m].Cols)
	}

	return total, nil
}
