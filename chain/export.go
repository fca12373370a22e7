// SPDX-License-Identifier: MIT

package chain

import "github.com/google/uuid"

// StepRecord is the serializable form of a Step (json / yaml).
type StepRecord struct {
	Index       int               `json:"index" yaml:"index"`
	Stage       int               `json:"stage" yaml:"stage"`
	Kind        string            `json:"kind" yaml:"kind"`
	Description string            `json:"description" yaml:"description"`
	Highlights  map[string][2]int `json:"highlights" yaml:"highlights"`
	Result      [][]*float64      `json:"result" yaml:"result"`
}

// TraceRecord is the serializable form of a whole Trace.
type TraceRecord struct {
	ID     string        `json:"id" yaml:"id"`
	Inputs [][][]float64 `json:"inputs" yaml:"inputs"`
	Result [][]float64   `json:"result" yaml:"result"`
	Stages []Stage       `json:"stages" yaml:"stages"`
	Steps  []StepRecord  `json:"steps,omitempty" yaml:"steps,omitempty"`
}

// Record converts s into its serializable form; index is its Trace position.
func (s Step) Record(index int) StepRecord {
	hl := s.Highlights()
	rec := StepRecord{
		Index:       index,
		Stage:       s.stage,
		Kind:        s.kind.String(),
		Description: s.description,
		Highlights:  make(map[string][2]int, len(hl)),
		Result:      s.result.Cells(),
	}
	for role, c := range hl {
		rec.Highlights[role.String()] = [2]int{c.Row, c.Col}
	}

	return rec
}

// Record converts t into its serializable form. withSteps controls whether
// the (potentially long) step list is included. A nil Trace gives a record
// with the nil UUID and no matrices.
func (t *Trace) Record(withSteps bool) TraceRecord {
	if t == nil {
		return TraceRecord{ID: uuid.Nil.String(), Inputs: [][][]float64{}, Stages: []Stage{}}
	}
	rec := TraceRecord{
		ID:     t.id.String(),
		Inputs: make([][][]float64, len(t.inputs)),
		Result: t.result.ToRows(),
		Stages: t.Stages(),
	}
	for i, m := range t.inputs {
		rec.Inputs[i] = m.ToRows()
	}
	if withSteps {
		rec.Steps = make([]StepRecord, len(t.steps))
		for i, s := range t.steps {
			rec.Steps[i] = s.Record(i)
		}
	}

	return rec
}
