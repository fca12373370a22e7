// SPDX-License-Identifier: MIT

package grid

import (
	"fmt"

	"github.com/katalvlaran/matstep/matrix"
)

// MaxSize is the hard upper bound on either dimension of a Grid.
const MaxSize = 64

// Grid is one editable rectangular matrix of Cells, stored row-major.
type Grid struct {
	rows, cols int
	cells      []Cell
}

// New returns a rows×cols grid of unset cells.
// Returns ErrEmptyGrid if rows or cols < 1, ErrTooLarge above MaxSize.
// Complexity: O(rows*cols).
func New(rows, cols int) (*Grid, error) {
	if err := checkSize(rows, cols, MaxSize); err != nil {
		return nil, gridErrorf("New", err)
	}
	return &Grid{rows: rows, cols: cols, cells: make([]Cell, rows*cols)}, nil
}

// FromValues builds a fully set grid from a non-empty, rectangular 2D slice.
// It deep-copies the input.
// Returns ErrEmptyGrid, ErrNonRectangular, ErrTooLarge, or ErrInvalidCell
// for NaN/±Inf values.
// Complexity: O(rows*cols).
func FromValues(values [][]float64) (*Grid, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, gridErrorf("FromValues", ErrEmptyGrid)
	}
	h, w := len(values), len(values[0])
	for _, row := range values {
		if len(row) != w {
			return nil, gridErrorf("FromValues", ErrNonRectangular)
		}
	}
	g, err := New(h, w)
	if err != nil {
		return nil, err
	}
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			cell, err := finiteCell(matrix.FormatValue(values[r][c]), values[r][c])
			if err != nil {
				return nil, gridErrorf("FromValues", err)
			}
			g.cells[g.index(r, c)] = cell
		}
	}

	return g, nil
}

// checkSize validates a requested shape against limit.
func checkSize(rows, cols, limit int) error {
	if rows < 1 || cols < 1 {
		return ErrEmptyGrid
	}
	if rows > limit || cols > limit {
		return fmt.Errorf("%dx%d above %d: %w", rows, cols, limit, ErrTooLarge)
	}
	return nil
}

// Rows returns the row count.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the column count.
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether (r,c) lies within the grid.
// Complexity: O(1).
func (g *Grid) InBounds(r, c int) bool {
	return r >= 0 && r < g.rows && c >= 0 && c < g.cols
}

// index maps (r,c) to a row-major index.
func (g *Grid) index(r, c int) int {
	return r*g.cols + c
}

// Cell returns the cell at (r,c). Returns ErrOutOfRange outside the grid.
func (g *Grid) Cell(r, c int) (Cell, error) {
	if !g.InBounds(r, c) {
		return Cell{}, gridErrorf(fmt.Sprintf("Grid.Cell(%d,%d)", r, c), ErrOutOfRange)
	}
	return g.cells[g.index(r, c)], nil
}

// SetCell replaces the cell at (r,c). Returns ErrOutOfRange outside the grid.
func (g *Grid) SetCell(r, c int, cell Cell) error {
	if !g.InBounds(r, c) {
		return gridErrorf(fmt.Sprintf("Grid.SetCell(%d,%d)", r, c), ErrOutOfRange)
	}
	g.cells[g.index(r, c)] = cell

	return nil
}

// Resize replaces the grid with a rows×cols grid of unset cells. Existing
// values are discarded.
// Returns ErrEmptyGrid or ErrTooLarge; the grid is unchanged on error.
func (g *Grid) Resize(rows, cols int) error {
	if err := checkSize(rows, cols, MaxSize); err != nil {
		return gridErrorf("Grid.Resize", err)
	}
	g.rows, g.cols = rows, cols
	g.cells = make([]Cell, rows*cols)

	return nil
}

// Commit resolves every pending "-" to unset.
func (g *Grid) Commit() {
	for i := range g.cells {
		g.cells[i] = g.cells[i].Commit()
	}
}

// Normalize returns the numeric matrix the engine multiplies: unset and
// pending cells become 0.
// Complexity: O(rows*cols).
func (g *Grid) Normalize() *matrix.Dense {
	rows := make([][]float64, g.rows)
	for r := range rows {
		rows[r] = make([]float64, g.cols)
		for c := range rows[r] {
			rows[r][c] = g.cells[g.index(r, c)].Normalized()
		}
	}
	d, err := matrix.NewFromRows(rows)
	if err != nil {
		// unreachable: shape ≥ 1×1 and every value is finite
		panic(fmt.Sprintf("grid: Normalize: %v", err))
	}

	return d
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)

	return &Grid{rows: g.rows, cols: g.cols, cells: cells}
}

// Strings renders every cell as the editor shows it.
func (g *Grid) Strings() [][]string {
	out := make([][]string, g.rows)
	for r := range out {
		out[r] = make([]string, g.cols)
		for c := range out[r] {
			out[r][c] = g.cells[g.index(r, c)].String()
		}
	}

	return out
}
