// SPDX-License-Identifier: MIT
package chain_test

import (
	"testing"

	"github.com/katalvlaran/matstep/chain"
	"github.com/stretchr/testify/require"
)

// TestStepCount covers the closed-form count over a table of chain shapes.
func TestStepCount(t *testing.T) {
	cases := []struct {
		name string
		dims []chain.Dims
		want int
		err  error
	}{
		{"1x1·1x1", []chain.Dims{{Rows: 1, Cols: 1}, {Rows: 1, Cols: 1}}, 2, nil},
		{"2x2·2x2", []chain.Dims{{Rows: 2, Cols: 2}, {Rows: 2, Cols: 2}}, 12, nil},
		{"2x3·3x2", []chain.Dims{{Rows: 2, Cols: 3}, {Rows: 3, Cols: 2}}, 16, nil},
		{"1x3·3x1·1x4", []chain.Dims{{Rows: 1, Cols: 3}, {Rows: 3, Cols: 1}, {Rows: 1, Cols: 4}}, 4 + 8, nil},
		{"single", []chain.Dims{{Rows: 2, Cols: 2}}, 0, chain.ErrTooFewMatrices},
		{"mismatch", []chain.Dims{{Rows: 2, Cols: 3}, {Rows: 4, Cols: 2}}, 0, chain.ErrDimensionMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := chain.StepCount(tc.dims)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

// TestValidate_FirstMismatchWins verifies only the first bad pair is reported.
func TestValidate_FirstMismatchWins(t *testing.T) {
	err := chain.Validate([]chain.Dims{
		{Rows: 2, Cols: 2},
		{Rows: 3, Cols: 5}, // bad pair 1-2
		{Rows: 4, Cols: 1}, // bad pair 2-3
	})
	var dm *chain.DimensionMismatchError
	require.ErrorAs(t, err, &dm)
	require.Equal(t, 1, dm.Left)
	require.Equal(t, 2, dm.Right)
}

// TestSlotLabel covers single and double letter labels.
func TestSlotLabel(t *testing.T) {
	require.Equal(t, "A", chain.SlotLabel(0))
	require.Equal(t, "B", chain.SlotLabel(1))
	require.Equal(t, "Z", chain.SlotLabel(25))
	require.Equal(t, "AA", chain.SlotLabel(26))
	require.Equal(t, "AZ", chain.SlotLabel(51))
	require.Equal(t, "BA", chain.SlotLabel(52))
	require.Equal(t, "", chain.SlotLabel(-1))
}

// TestRole covers role keys and slot accessors.
func TestRole(t *testing.T) {
	require.Equal(t, "result", chain.RoleResult.String())
	require.Equal(t, "matrix0", chain.InputRole(0).String())
	require.Equal(t, -1, chain.RoleResult.Slot())
	require.Equal(t, 3, chain.InputRole(3).Slot())
	require.True(t, chain.RoleResult.IsResult())
	require.Panics(t, func() { chain.InputRole(-1) })

	require.Equal(t, "accumulate", chain.StepAccumulate.String())
	require.Equal(t, "set-result", chain.StepSetResult.String())
	require.Equal(t, "[1,2]", chain.Coord{Row: 0, Col: 1}.String())
}
