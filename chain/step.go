// SPDX-License-Identifier: MIT

package chain

import "github.com/katalvlaran/matstep/matrix"

// Partial is the result matrix of a stage as it stands after one Step:
// the first Filled() cells in row-major order are final, the rest are unset.
//
// All Steps of a stage share one frozen buffer; Partial only ever reveals the
// cells that were final at its Step, so the view never changes.
type Partial struct {
	final  *matrix.Dense // stage result; complete once the stage ends, never mutated after
	filled int           // number of finalized cells, row-major
}

// Rows returns the row count of the stage result.
func (p Partial) Rows() int {
	if p.final == nil {
		return 0
	}
	return p.final.Rows()
}

// Cols returns the column count of the stage result.
func (p Partial) Cols() int {
	if p.final == nil {
		return 0
	}
	return p.final.Cols()
}

// Filled returns how many cells (row-major) are final.
func (p Partial) Filled() int { return p.filled }

// Complete reports whether every cell is final.
func (p Partial) Complete() bool {
	return p.final != nil && p.filled == p.Rows()*p.Cols()
}

// At returns the value of cell (i,j) and whether it is set.
// Unset and out-of-range cells report ok == false.
func (p Partial) At(i, j int) (v float64, ok bool) {
	if p.final == nil || i < 0 || j < 0 || i >= p.Rows() || j >= p.Cols() {
		return 0, false
	}
	if i*p.Cols()+j >= p.filled {
		return 0, false
	}
	v, err := p.final.At(i, j)
	if err != nil {
		return 0, false
	}

	return v, true
}

// Cells returns a copy of the grid with nil for unset cells.
func (p Partial) Cells() [][]*float64 {
	out := make([][]*float64, p.Rows())
	for i := range out {
		out[i] = make([]*float64, p.Cols())
		for j := range out[i] {
			if v, ok := p.At(i, j); ok {
				out[i][j] = &v
			}
		}
	}

	return out
}

// Dense returns a copy with unset cells as zero.
func (p Partial) Dense() *matrix.Dense {
	if p.final == nil {
		return nil
	}
	d, err := matrix.NewDense(p.Rows(), p.Cols())
	if err != nil {
		return nil
	}
	for i := 0; i < p.Rows(); i++ {
		for j := 0; j < p.Cols(); j++ {
			if v, ok := p.At(i, j); ok {
				_ = d.Set(i, j, v) // v is finite: it came out of a Dense
			}
		}
	}

	return d
}

// Step is one recorded elementary operation of a Trace. It is an immutable
// value; accessors return copies of anything mutable.
type Step struct {
	kind        StepKind
	stage       int     // 1-based
	target      Coord   // destination cell (i,j)
	inner       int     // contraction index k; -1 for set-result
	a, b        float64 // operands (accumulate only)
	value       float64 // running sum after this step (accumulate) or final sum (set-result)
	description string
	left        OperandSource

	inputs  []*matrix.Dense // frozen snapshot of the normalized input chain, shared by all steps
	operand *matrix.Dense   // left operand actually read: inputs[0] or the previous stage result
	result  Partial
}

// Kind returns StepAccumulate or StepSetResult.
func (s Step) Kind() StepKind { return s.kind }

// Stage returns the 1-based stage number m.
func (s Step) Stage() int { return s.stage }

// Description returns the narrated text of the step.
func (s Step) Description() string { return s.description }

// String implements fmt.Stringer with the description.
func (s Step) String() string { return s.description }

// Target returns the destination cell (i,j) in the stage result.
func (s Step) Target() Coord { return s.target }

// Inner returns the contraction index k, or -1 for a set-result step.
func (s Step) Inner() int { return s.inner }

// Operands returns the two factors of an accumulate step (zeros otherwise).
func (s Step) Operands() (left, right float64) { return s.a, s.b }

// Value returns the running sum after an accumulate step, or the final sum
// stored by a set-result step.
func (s Step) Value() float64 { return s.value }

// LeftOperand reports whether the highlighted left operand is literal input
// slot 0 or the previous stage's result.
func (s Step) LeftOperand() OperandSource { return s.left }

// LeftMatrix returns a copy of the left operand of this Step's stage: input
// slot 0 for stage 1, the complete previous stage result afterwards. It is
// the matrix Highlight(InputRole(Stage()-1)) points into. Nil for a zero Step.
func (s Step) LeftMatrix() *matrix.Dense {
	if s.operand == nil {
		return nil
	}
	return s.operand.Clone().(*matrix.Dense)
}

// NumInputs returns the length of the input chain snapshot.
func (s Step) NumInputs() int { return len(s.inputs) }

// Input returns a copy of input slot i as it was at invocation time.
func (s Step) Input(i int) (*matrix.Dense, error) {
	if i < 0 || i >= len(s.inputs) {
		return nil, chainErrorf("Step.Input", matrix.ErrOutOfRange)
	}
	return s.inputs[i].Clone().(*matrix.Dense), nil
}

// Result returns the stage result as it stands after this step.
func (s Step) Result() Partial { return s.result }

// Highlight returns the coordinate this step touches in role r, if any.
func (s Step) Highlight(r Role) (Coord, bool) {
	if s.stage < 1 {
		return Coord{}, false // zero Step
	}
	if r.IsResult() {
		return s.target, true
	}
	if s.kind != StepAccumulate {
		return Coord{}, false
	}
	switch r.Slot() {
	case s.stage - 1:
		return Coord{Row: s.target.Row, Col: s.inner}, true
	case s.stage:
		return Coord{Row: s.inner, Col: s.target.Col}, true
	}

	return Coord{}, false
}

// Highlights returns a fresh map of every highlighted role.
// Accumulate steps name three roles, set-result steps only RoleResult.
// The zero Step has none.
func (s Step) Highlights() map[Role]Coord {
	if s.stage < 1 {
		return map[Role]Coord{}
	}
	out := map[Role]Coord{RoleResult: s.target}
	if s.kind == StepAccumulate {
		out[InputRole(s.stage-1)], _ = s.Highlight(InputRole(s.stage - 1))
		out[InputRole(s.stage)], _ = s.Highlight(InputRole(s.stage))
	}

	return out
}
