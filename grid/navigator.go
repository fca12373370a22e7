// SPDX-License-Identifier: MIT

package grid

import "github.com/katalvlaran/matstep/chain"

// DefaultViewport is the number of rows and columns an editor shows at once.
const DefaultViewport = 5

// Direction is one of the four orthogonal moves.
type Direction int

const (
	// Up moves one row towards row 0.
	Up Direction = iota
	// Right moves one column towards the last column.
	Right
	// Down moves one row towards the last row.
	Down
	// Left moves one column towards column 0.
	Left
)

// offsets holds the (row, col) delta of each Direction, in declaration order.
var offsets = [4][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}

// Delta returns the (row, col) step of d; unknown directions yield (0, 0).
func (d Direction) Delta() (dr, dc int) {
	if d < Up || d > Left {
		return 0, 0
	}
	return offsets[d][0], offsets[d][1]
}

// clamp bounds v to [lo, hi]; hi < lo yields lo.
func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// Navigator tracks the focused cell of one grid and the top-left corner of
// its square viewport. It never reads or writes cells.
type Navigator struct {
	rows, cols int
	view       int
	focus      chain.Coord
	origin     chain.Coord
}

// NewNavigator returns a Navigator over a rows×cols grid with focus at
// (0,0). viewport < 1 selects DefaultViewport.
func NewNavigator(rows, cols, viewport int) *Navigator {
	if viewport < 1 {
		viewport = DefaultViewport
	}
	n := &Navigator{view: viewport}
	n.SetBounds(rows, cols)

	return n
}

// SetBounds adapts to a new grid shape, clamping focus and viewport.
func (n *Navigator) SetBounds(rows, cols int) {
	n.rows, n.cols = max(rows, 1), max(cols, 1)
	n.focus.Row = clamp(n.focus.Row, 0, n.rows-1)
	n.focus.Col = clamp(n.focus.Col, 0, n.cols-1)
	n.origin.Row = clamp(n.origin.Row, 0, n.rows-n.view)
	n.origin.Col = clamp(n.origin.Col, 0, n.cols-n.view)
	n.follow()
}

// Viewport returns the viewport edge length.
func (n *Navigator) Viewport() int { return n.view }

// Focus returns the focused cell.
func (n *Navigator) Focus() chain.Coord { return n.focus }

// Origin returns the top-left cell of the viewport.
func (n *Navigator) Origin() chain.Coord { return n.origin }

// SetFocus moves focus to (r,c), clamped to the grid, scrolling as needed.
func (n *Navigator) SetFocus(r, c int) {
	n.focus = chain.Coord{Row: clamp(r, 0, n.rows-1), Col: clamp(c, 0, n.cols-1)}
	n.follow()
}

// Move shifts focus one cell in d, clamped to the grid, and scrolls the
// viewport so focus stays visible. Reports whether focus moved.
func (n *Navigator) Move(d Direction) bool {
	dr, dc := d.Delta()
	prev := n.focus
	n.SetFocus(n.focus.Row+dr, n.focus.Col+dc)

	return n.focus != prev
}

// Scroll shifts the viewport one cell in d, clamped so it never leaves the
// grid, and drags focus along when it would fall out of view. Reports
// whether the viewport moved.
func (n *Navigator) Scroll(d Direction) bool {
	dr, dc := d.Delta()
	prev := n.origin
	n.origin.Row = clamp(n.origin.Row+dr, 0, n.rows-n.view)
	n.origin.Col = clamp(n.origin.Col+dc, 0, n.cols-n.view)
	top, left, bottom, right := n.Visible()
	n.focus.Row = clamp(n.focus.Row, top, bottom-1)
	n.focus.Col = clamp(n.focus.Col, left, right-1)

	return n.origin != prev
}

// Visible returns the visible window as half-open ranges
// [top, bottom) × [left, right).
func (n *Navigator) Visible() (top, left, bottom, right int) {
	return n.origin.Row, n.origin.Col,
		min(n.origin.Row+n.view, n.rows), min(n.origin.Col+n.view, n.cols)
}

// follow scrolls the viewport minimally so focus is inside it.
func (n *Navigator) follow() {
	if n.focus.Row < n.origin.Row {
		n.origin.Row = n.focus.Row
	}
	if n.focus.Row >= n.origin.Row+n.view {
		n.origin.Row = n.focus.Row - n.view + 1
	}
	if n.focus.Col < n.origin.Col {
		n.origin.Col = n.focus.Col
	}
	if n.focus.Col >= n.origin.Col+n.view {
		n.origin.Col = n.focus.Col - n.view + 1
	}
}

// SizePicker is the hover state of the grid-size selector: a rows×cols
// shape within [1, max] in each dimension.
type SizePicker struct {
	max        int
	rows, cols int
}

// NewSizePicker returns a picker hovering 1×1. limit < 1 selects DefaultMaxSize.
func NewSizePicker(limit int) *SizePicker {
	if limit < 1 {
		limit = DefaultMaxSize
	}
	return &SizePicker{max: limit, rows: 1, cols: 1}
}

// Max returns the largest selectable dimension.
func (p *SizePicker) Max() int { return p.max }

// Hover sets the highlighted shape, clamped to [1, Max()].
func (p *SizePicker) Hover(rows, cols int) {
	p.rows, p.cols = clamp(rows, 1, p.max), clamp(cols, 1, p.max)
}

// Move grows (Down, Right) or shrinks (Up, Left) the hovered shape by one.
// Reports whether it changed.
func (p *SizePicker) Move(d Direction) bool {
	dr, dc := d.Delta()
	r, c := p.rows, p.cols
	p.Hover(r+dr, c+dc)

	return p.rows != r || p.cols != c
}

// Reset returns the hover to 1×1, as when the pointer leaves the picker.
func (p *SizePicker) Reset() { p.rows, p.cols = 1, 1 }

// Selected returns the hovered shape.
func (p *SizePicker) Selected() (rows, cols int) { return p.rows, p.cols }
