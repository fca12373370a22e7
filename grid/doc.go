// SPDX-License-Identifier: MIT

// Package grid is the editable store behind the calculator: an ordered chain
// of rectangular grids whose cells may be unset while the user types.
//
// What:
//
//   - Cell is unset, a finite number, or the transient "-" of a negative
//     number being typed. ParseCell turns user text into a Cell and accepts
//     arithmetic such as "1/3" or "2*(3+4)".
//   - Grid is one editable matrix; Normalize yields the *matrix.Dense the
//     engine multiplies, with unset and pending cells read as 0.
//   - Chain holds the grids in order, never fewer than two.
//   - Navigator and SizePicker are per-view state (focus, viewport, hover
//     size) and never touch cell data.
//
// Errors:
//
//   - ErrEmptyGrid: fewer than one row or column.
//   - ErrTooLarge: a dimension above the configured maximum.
//   - ErrNonRectangular: ragged input rows.
//   - ErrOutOfRange: cell or grid index outside the store.
//   - ErrInvalidCell: text that is neither a number nor a finite expression.
//   - ErrMinimumChain: removing a grid would leave fewer than two.
package grid
