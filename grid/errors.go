// SPDX-License-Identifier: MIT

package grid

import (
	"errors"
	"fmt"
)

// Sentinel errors for grid operations.
var (
	// ErrEmptyGrid indicates a grid with no rows or no columns.
	ErrEmptyGrid = errors.New("grid: grid must have at least one row and one column")
	// ErrTooLarge indicates a dimension above the allowed maximum.
	ErrTooLarge = errors.New("grid: grid dimension exceeds the maximum size")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("grid: all rows must have the same length")
	// ErrOutOfRange indicates a cell or grid index outside the store.
	ErrOutOfRange = errors.New("grid: index out of range")
	// ErrInvalidCell indicates text that cannot become a cell value.
	ErrInvalidCell = errors.New("grid: invalid cell value")
	// ErrMinimumChain indicates an attempt to drop below two grids.
	ErrMinimumChain = errors.New("grid: a chain keeps at least two matrices")
)

// gridErrorf wraps err with an operation tag, preserving it via %w.
func gridErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
