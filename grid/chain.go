// SPDX-License-Identifier: MIT

package grid

import (
	"fmt"

	"github.com/katalvlaran/matstep/chain"
	"github.com/katalvlaran/matstep/matrix"
)

// Chain defaults.
const (
	// MinChain is the number of grids a Chain never drops below.
	MinChain = 2
	// DefaultRows and DefaultCols size new grids.
	DefaultRows = 2
	DefaultCols = 2
	// DefaultMaxSize bounds user resizes.
	DefaultMaxSize = 20
)

// ChainOption configures a Chain.
type ChainOption func(*Chain)

// WithDefaultSize sets the shape of grids created by NewChain, Append and Reset.
// Panics if rows or cols is outside [1, MaxSize].
func WithDefaultSize(rows, cols int) ChainOption {
	if err := checkSize(rows, cols, MaxSize); err != nil {
		panic(fmt.Sprintf("grid: WithDefaultSize(%d,%d): %v", rows, cols, err))
	}
	return func(c *Chain) { c.defRows, c.defCols = rows, cols }
}

// WithMaxSize bounds Resize. Panics if n is outside [1, MaxSize].
func WithMaxSize(n int) ChainOption {
	if n < 1 || n > MaxSize {
		panic(fmt.Sprintf("grid: WithMaxSize(%d): want 1..%d", n, MaxSize))
	}
	return func(c *Chain) { c.maxSize = n }
}

// Chain is the ordered list of grids the user edits. It always holds at
// least MinChain grids.
type Chain struct {
	grids            []*Grid
	defRows, defCols int
	maxSize          int
}

// NewChain returns a chain of two default-sized unset grids.
// Panics if the default size exceeds the max size.
func NewChain(opts ...ChainOption) *Chain {
	c := &Chain{defRows: DefaultRows, defCols: DefaultCols, maxSize: DefaultMaxSize}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.defRows > c.maxSize || c.defCols > c.maxSize {
		panic(fmt.Sprintf("grid: default size %dx%d above max %d", c.defRows, c.defCols, c.maxSize))
	}
	c.Reset()

	return c
}

// newDefault allocates one default-sized grid.
func (c *Chain) newDefault() *Grid {
	return &Grid{rows: c.defRows, cols: c.defCols, cells: make([]Cell, c.defRows*c.defCols)}
}

// Len returns the number of grids.
func (c *Chain) Len() int { return len(c.grids) }

// MaxSize returns the resize bound.
func (c *Chain) MaxSize() int { return c.maxSize }

// At returns a copy of grid i. Returns ErrOutOfRange for a bad index.
func (c *Chain) At(i int) (*Grid, error) {
	g, err := c.grid("Chain.At", i)
	if err != nil {
		return nil, err
	}
	return g.Clone(), nil
}

// grid returns the live grid i.
func (c *Chain) grid(tag string, i int) (*Grid, error) {
	if i < 0 || i >= len(c.grids) {
		return nil, gridErrorf(fmt.Sprintf("%s(%d)", tag, i), ErrOutOfRange)
	}
	return c.grids[i], nil
}

// Append adds a default-sized unset grid at the end.
func (c *Chain) Append() {
	c.grids = append(c.grids, c.newDefault())
}

// RemoveLast drops the last grid. Returns ErrMinimumChain when only
// MinChain grids remain.
func (c *Chain) RemoveLast() error {
	if len(c.grids) <= MinChain {
		return gridErrorf("Chain.RemoveLast", ErrMinimumChain)
	}
	c.grids[len(c.grids)-1] = nil
	c.grids = c.grids[:len(c.grids)-1]

	return nil
}

// Reset restores the initial state: MinChain default-sized unset grids.
func (c *Chain) Reset() {
	c.grids = make([]*Grid, 0, MinChain)
	for i := 0; i < MinChain; i++ {
		c.grids = append(c.grids, c.newDefault())
	}
}

// Resize gives grid i a fresh rows×cols shape of unset cells.
// Returns ErrOutOfRange, ErrEmptyGrid, or ErrTooLarge (above MaxSize()).
func (c *Chain) Resize(i, rows, cols int) error {
	g, err := c.grid("Chain.Resize", i)
	if err != nil {
		return err
	}
	if err = checkSize(rows, cols, c.maxSize); err != nil {
		return gridErrorf("Chain.Resize", err)
	}

	return g.Resize(rows, cols)
}

// SetCell replaces cell (r,col) of grid i.
// Returns ErrOutOfRange for a bad grid or cell index.
func (c *Chain) SetCell(i, r, col int, cell Cell) error {
	g, err := c.grid("Chain.SetCell", i)
	if err != nil {
		return err
	}
	return g.SetCell(r, col, cell)
}

// Cell returns cell (r,col) of grid i.
func (c *Chain) Cell(i, r, col int) (Cell, error) {
	g, err := c.grid("Chain.Cell", i)
	if err != nil {
		return Cell{}, err
	}
	return g.Cell(r, col)
}

// Commit resolves pending "-" cells in every grid.
func (c *Chain) Commit() {
	for _, g := range c.grids {
		g.Commit()
	}
}

// Normalize returns the numeric chain to multiply, one fresh matrix per grid.
func (c *Chain) Normalize() []matrix.Matrix {
	out := make([]matrix.Matrix, len(c.grids))
	for i, g := range c.grids {
		out[i] = g.Normalize()
	}

	return out
}

// Dims returns the shape of every grid, suitable for chain.Validate and
// chain.StepCount.
func (c *Chain) Dims() []chain.Dims {
	out := make([]chain.Dims, len(c.grids))
	for i, g := range c.grids {
		out[i] = chain.Dims{Rows: g.rows, Cols: g.cols}
	}

	return out
}
