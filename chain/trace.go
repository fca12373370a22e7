// SPDX-License-Identifier: MIT

package chain

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/katalvlaran/matstep/matrix"
)

// Trace is the ordered record of one completed calculation. It is created
// fresh by every Multiply call and never amended afterwards. A nil *Trace
// reads as empty: every accessor returns a zero or empty value.
type Trace struct {
	id     uuid.UUID
	inputs []*matrix.Dense // frozen normalized input chain
	steps  []Step
	stages []Stage
	result *matrix.Dense
}

// ID returns the content-derived identifier of the calculation. Equal input
// chains always produce equal IDs.
func (t *Trace) ID() uuid.UUID {
	if t == nil {
		return uuid.Nil
	}
	return t.id
}

// Len returns the number of Steps.
func (t *Trace) Len() int {
	if t == nil {
		return 0
	}
	return len(t.steps)
}

// Step returns the i-th Step (zero-based).
func (t *Trace) Step(i int) (Step, error) {
	if i < 0 || i >= t.Len() {
		return Step{}, fmt.Errorf("Trace.Step(%d): %w", i, ErrStepIndex)
	}
	return t.steps[i], nil
}

// Steps returns a copy of the step list.
func (t *Trace) Steps() []Step {
	out := make([]Step, t.Len())
	if t != nil {
		copy(out, t.steps)
	}

	return out
}

// Stages returns a copy of the stage table, one entry per pairwise product.
func (t *Trace) Stages() []Stage {
	if t == nil {
		return []Stage{}
	}
	out := make([]Stage, len(t.stages))
	copy(out, t.stages)

	return out
}

// NumInputs returns the chain length.
func (t *Trace) NumInputs() int {
	if t == nil {
		return 0
	}
	return len(t.inputs)
}

// Inputs returns copies of the normalized input chain.
func (t *Trace) Inputs() []*matrix.Dense {
	out := make([]*matrix.Dense, t.NumInputs())
	for i := range out {
		m := t.inputs[i]
		out[i] = m.Clone().(*matrix.Dense)
	}

	return out
}

// Result returns a copy of the final product, or nil for a nil Trace.
func (t *Trace) Result() *matrix.Dense {
	if t == nil {
		return nil
	}
	return t.result.Clone().(*matrix.Dense)
}
