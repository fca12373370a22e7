// SPDX-License-Identifier: MIT
package player_test

import (
	"testing"

	"github.com/katalvlaran/matstep/chain"
	"github.com/katalvlaran/matstep/player"
	"github.com/stretchr/testify/require"
)

// twoByTwo returns the trace of [[1,2],[3,4]] × [[5,6],[7,8]].
func twoByTwo(t *testing.T) *chain.Trace {
	t.Helper()
	tr, err := chain.MultiplyRows([][][]float64{
		{{1, 2}, {3, 4}},
		{{5, 6}, {7, 8}},
	})
	require.NoError(t, err)

	return tr
}

// TestPlayer_Clamping verifies Next/Prev never wrap.
func TestPlayer_Clamping(t *testing.T) {
	p := player.New(twoByTwo(t))
	require.Equal(t, 12, p.Len())
	require.True(t, p.AtStart())

	require.False(t, p.Prev()) // no wrap to the end
	require.Equal(t, 0, p.Index())

	require.True(t, p.Next())
	require.Equal(t, 1, p.Index())

	require.True(t, p.Last())
	require.True(t, p.AtEnd())
	require.False(t, p.Next()) // no wrap to the start
	require.Equal(t, 11, p.Index())

	require.True(t, p.First())
	require.False(t, p.Seek(-5))
	require.True(t, p.Seek(100))
	require.Equal(t, 11, p.Index())
}

// TestPlayer_Caption pins the step counter text.
func TestPlayer_Caption(t *testing.T) {
	p := player.New(twoByTwo(t))
	require.Equal(t, "Step 1 of 12", p.Caption())
	p.Last()
	require.Equal(t, "Step 12 of 12", p.Caption())
}

// TestPlayer_Empty verifies nil traces are inert.
func TestPlayer_Empty(t *testing.T) {
	p := player.New(nil)
	require.True(t, p.Empty())
	require.False(t, p.Next())
	require.False(t, p.Last())
	require.Equal(t, "", p.Caption())

	_, ok := p.Current()
	require.False(t, ok)
	_, ok = p.Frame()
	require.False(t, ok)

	var zero player.Player
	require.Equal(t, 0, zero.Len())
}

// TestPlayer_ReplayIsStable verifies stepping back shows the same frame again.
func TestPlayer_ReplayIsStable(t *testing.T) {
	p := player.New(twoByTwo(t))
	p.Seek(5)
	before, ok := p.Frame()
	require.True(t, ok)

	p.Last()
	p.Seek(5)
	after, ok := p.Frame()
	require.True(t, ok)
	require.Equal(t, before, after)
}

// TestFrame_Contents checks panels, highlights and the partial result.
func TestFrame_Contents(t *testing.T) {
	p := player.New(twoByTwo(t))
	p.Seek(1) // (0,0) k=1

	f, ok := p.Frame()
	require.True(t, ok)
	require.Equal(t, "Step 2 of 12", f.Caption)
	require.Equal(t, 1, f.Stage)
	require.Equal(t, chain.StepAccumulate, f.Kind)
	require.Equal(t, "Multiplying 2 (A[1,2]) with 7 (B[2,1]) and adding to the sum.", f.Description)

	require.Len(t, f.Inputs, 2)
	require.Equal(t, "A", f.Inputs[0].Label)
	require.Equal(t, &chain.Coord{Row: 0, Col: 1}, f.Inputs[0].Highlight)
	require.Equal(t, &chain.Coord{Row: 1, Col: 0}, f.Inputs[1].Highlight)
	require.Equal(t, 4.0, *f.Inputs[0].Cells[1][1])

	require.Equal(t, player.ResultLabel, f.Result.Label)
	require.Equal(t, &chain.Coord{Row: 0, Col: 0}, f.Result.Highlight)
	require.Nil(t, f.Result.Cells[0][0]) // not set until the set-result step

	p.Next() // set-result (0,0)
	f, _ = p.Frame()
	require.Nil(t, f.Inputs[0].Highlight) // set steps highlight only the result
	require.Equal(t, 19.0, *f.Result.Cells[0][0])
}

// TestFrame_LaterStageSource verifies the left panel of stage 2 is marked as the previous result.
func TestFrame_LaterStageSource(t *testing.T) {
	tr, err := chain.MultiplyRows([][][]float64{{{1}}, {{2}}, {{3}}})
	require.NoError(t, err)
	p := player.New(tr)
	p.Seek(2) // first step of stage 2

	f, ok := p.Frame()
	require.True(t, ok)
	require.Equal(t, 2, f.Stage)
	require.Nil(t, f.Inputs[0].Highlight)
	require.NotNil(t, f.Inputs[1].Highlight)
	require.Equal(t, chain.OperandPrevious, f.Inputs[1].Source)
	require.Equal(t, chain.OperandInput, f.Inputs[2].Source)
}

// TestFrame_LaterStageShowsFoldedOperand checks a non-square 3×2 · 2×2 · 2×2
// chain: in stage 2 the left panel holds A×B, labelled "AB", and its
// highlight lands on the value the description names.
func TestFrame_LaterStageShowsFoldedOperand(t *testing.T) {
	tr, err := chain.MultiplyRows([][][]float64{
		{{1, 2}, {3, 4}, {5, 6}},
		{{0, 1}, {1, 0}}, // column swap: AB = [[2,1],[4,3],[6,5]]
		{{1, 0}, {0, 2}},
	})
	require.NoError(t, err)
	require.Equal(t, 36, tr.Len()) // 18 steps per stage

	p := player.New(tr)
	require.True(t, p.Seek(34)) // last accumulate of stage 2: cell (2,1), k=1

	f, ok := p.Frame()
	require.True(t, ok)
	require.Equal(t, 2, f.Stage)
	require.Equal(t, "Multiplying 5 (AB[3,2]) with 2 (C[2,2]) and adding to the sum.", f.Description)

	left := f.Inputs[1]
	require.Equal(t, "AB", left.Label)
	require.Equal(t, chain.OperandPrevious, left.Source)
	require.Len(t, left.Cells, 3) // shape of A×B, not of B
	require.Equal(t, &chain.Coord{Row: 2, Col: 1}, left.Highlight)
	require.Equal(t, 5.0, *left.Cells[2][1]) // highlighted value is the one described

	require.Equal(t, "A", f.Inputs[0].Label)
	require.Nil(t, f.Inputs[0].Highlight)
	require.Equal(t, "C", f.Inputs[2].Label)
	require.Equal(t, &chain.Coord{Row: 1, Col: 1}, f.Inputs[2].Highlight)
}
