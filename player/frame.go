// SPDX-License-Identifier: MIT

package player

import (
	"github.com/katalvlaran/matstep/chain"
	"github.com/katalvlaran/matstep/matrix"
)

// Panel is one matrix as it should be drawn for the current Step.
type Panel struct {
	Label     string       // "A", "B", ... or "Result"
	Cells     [][]*float64 // nil entries are unset
	Highlight *chain.Coord // cell to emphasize, if any
	Source    chain.OperandSource
}

// Frame is everything a view needs to draw the current Step.
type Frame struct {
	Index       int    // zero-based cursor
	Total       int    // number of Steps
	Caption     string // "Step x of n"
	Stage       int    // 1-based stage number
	Kind        chain.StepKind
	Description string
	Inputs      []Panel // one per input slot, snapshot values
	Result      Panel   // the stage result as it stands after this Step
}

// ResultLabel names the result panel.
const ResultLabel = "Result"

// Frame builds the render model of the current Step. ok is false for an
// empty player.
//
// Highlight keys follow the Step's role map: slot stage-1 (the left operand),
// slot stage, and the result cell. From stage 2 on the left operand is the
// previous stage result, so that panel shows its values under the folded
// label ("AB") with Source set to chain.OperandPrevious.
func (p *Player) Frame() (Frame, bool) {
	s, ok := p.Current()
	if !ok {
		return Frame{}, false
	}
	f := Frame{
		Index:       p.pos,
		Total:       p.Len(),
		Caption:     p.Caption(),
		Stage:       s.Stage(),
		Kind:        s.Kind(),
		Description: s.Description(),
		Inputs:      make([]Panel, s.NumInputs()),
	}
	for i := range f.Inputs {
		panel := Panel{Label: chain.SlotLabel(i), Source: chain.OperandInput}
		m, err := s.Input(i)
		if i == s.Stage()-1 && s.LeftOperand() == chain.OperandPrevious {
			m, err = s.LeftMatrix(), nil
			panel.Source = chain.OperandPrevious
			panel.Label = p.leftLabel(s.Stage())
		}
		if err == nil && m != nil {
			panel.Cells = denseCells(m)
		}
		if c, hit := s.Highlight(chain.InputRole(i)); hit {
			panel.Highlight = &c
		}
		f.Inputs[i] = panel
	}

	f.Result = Panel{Label: ResultLabel, Cells: s.Result().Cells()}
	if c, hit := s.Highlight(chain.RoleResult); hit {
		f.Result.Highlight = &c
	}

	return f, true
}

// leftLabel returns the left operand label recorded for stage m.
func (p *Player) leftLabel(m int) string {
	stages := p.trace.Stages()
	if m < 1 || m > len(stages) {
		return chain.SlotLabel(m - 1)
	}
	return stages[m-1].LeftLabel
}

// denseCells converts m into panel cells; every cell is set.
func denseCells(m *matrix.Dense) [][]*float64 {
	rows := m.ToRows()
	out := make([][]*float64, len(rows))
	for r := range rows {
		out[r] = make([]*float64, len(rows[r]))
		for c := range rows[r] {
			v := rows[r][c]
			out[r][c] = &v
		}
	}

	return out
}
