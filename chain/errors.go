// SPDX-License-Identifier: MIT

package chain

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/matstep/matrix"
)

// Sentinel errors for chain operations.
var (
	// ErrDimensionMismatch matches every *DimensionMismatchError via errors.Is.
	ErrDimensionMismatch = errors.New("chain: dimension mismatch")

	// ErrTooFewMatrices indicates a chain with fewer than two matrices.
	ErrTooFewMatrices = errors.New("chain: at least two matrices are required")

	// ErrStepLimit indicates that the predicted trace length exceeds the configured limit.
	ErrStepLimit = errors.New("chain: trace would exceed the step limit")

	// ErrStepIndex indicates a Trace step index outside [0, Len()).
	ErrStepIndex = errors.New("chain: step index out of range")
)

// DimensionMismatchError reports the first adjacent pair whose inner
// dimensions disagree. Left and Right are 1-based ordinals in the chain.
type DimensionMismatchError struct {
	Left, Right int // 1-based ordinals (Right == Left+1)
	LeftCols    int // columns of matrix Left
	RightRows   int // rows of matrix Right
}

// Error renders a message suitable for direct display to the user.
func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf(
		"Cannot multiply matrices %d and %d. The number of columns in Matrix %d (%d) must equal the number of rows in Matrix %d (%d).",
		e.Left, e.Right, e.Left, e.LeftCols, e.Right, e.RightRows)
}

// Is lets errors.Is match both the chain and the matrix mismatch sentinels.
func (e *DimensionMismatchError) Is(target error) bool {
	return target == ErrDimensionMismatch || target == matrix.ErrDimensionMismatch
}

// chainErrorf wraps err with an operation tag, preserving it via %w.
func chainErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
