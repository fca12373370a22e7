// SPDX-License-Identifier: MIT
package grid_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/matstep/chain"
	"github.com/katalvlaran/matstep/grid"
	"github.com/stretchr/testify/require"
)

// TestNew_Errors checks shape validation.
func TestNew_Errors(t *testing.T) {
	_, err := grid.New(0, 2)
	require.ErrorIs(t, err, grid.ErrEmptyGrid)
	_, err = grid.New(2, grid.MaxSize+1)
	require.ErrorIs(t, err, grid.ErrTooLarge)

	g, err := grid.New(2, 3)
	require.NoError(t, err)
	require.Equal(t, 2, g.Rows())
	require.Equal(t, 3, g.Cols())
}

// TestFromValues_Errors mirrors the rectangular input checks.
func TestFromValues_Errors(t *testing.T) {
	cases := []struct {
		name string
		in   [][]float64
		err  error
	}{
		{"nil", nil, grid.ErrEmptyGrid},
		{"empty row", [][]float64{{}}, grid.ErrEmptyGrid},
		{"ragged", [][]float64{{1, 2}, {3}}, grid.ErrNonRectangular},
		{"nan", [][]float64{{math.NaN()}}, grid.ErrInvalidCell},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := grid.FromValues(tc.in)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

// TestGrid_CellAccess covers SetCell/Cell and bounds.
func TestGrid_CellAccess(t *testing.T) {
	g, err := grid.New(2, 2)
	require.NoError(t, err)

	require.NoError(t, g.SetCell(1, 0, grid.Value(4)))
	c, err := g.Cell(1, 0)
	require.NoError(t, err)
	v, ok := c.Float()
	require.True(t, ok)
	require.Equal(t, 4.0, v)

	require.ErrorIs(t, g.SetCell(2, 0, grid.Value(1)), grid.ErrOutOfRange)
	_, err = g.Cell(0, -1)
	require.ErrorIs(t, err, grid.ErrOutOfRange)
	require.False(t, g.InBounds(-1, 0))
}

// TestGrid_Normalize verifies unset and pending cells become literal zeros.
func TestGrid_Normalize(t *testing.T) {
	g, err := grid.New(1, 3)
	require.NoError(t, err)
	require.NoError(t, g.SetCell(0, 1, grid.Value(2)))
	require.NoError(t, g.SetCell(0, 2, grid.Pending()))

	require.Equal(t, [][]float64{{0, 2, 0}}, g.Normalize().ToRows())
	require.Equal(t, [][]string{{"", "2", "-"}}, g.Strings())

	g.Commit()
	require.Equal(t, [][]string{{"", "2", ""}}, g.Strings())
}

// TestGrid_ResizeClears verifies resize yields an all-unset grid of the new shape.
func TestGrid_ResizeClears(t *testing.T) {
	g, err := grid.FromValues([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	require.NoError(t, g.Resize(3, 1))
	require.Equal(t, 3, g.Rows())
	require.Equal(t, 1, g.Cols())
	require.Equal(t, [][]float64{{0}, {0}, {0}}, g.Normalize().ToRows())

	require.ErrorIs(t, g.Resize(0, 1), grid.ErrEmptyGrid)
	require.Equal(t, 3, g.Rows()) // unchanged on error
}

// TestNormalize_FeedsEngine multiplies a partially filled store.
func TestNormalize_FeedsEngine(t *testing.T) {
	a, err := grid.New(1, 2)
	require.NoError(t, err)
	require.NoError(t, a.SetCell(0, 1, grid.Value(2))) // (0,0) left unset
	b, err := grid.FromValues([][]float64{{3}, {4}})
	require.NoError(t, err)

	tr, err := chain.MultiplyRows([][][]float64{a.Normalize().ToRows(), b.Normalize().ToRows()})
	require.NoError(t, err)
	require.Equal(t, [][]float64{{8}}, tr.Result().ToRows()) // 0*3 + 2*4
}
