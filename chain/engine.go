// SPDX-License-Identifier: MIT

package chain

import (
	"fmt"

	"github.com/katalvlaran/matstep/matrix"
)

// Operation tags for error wrapping.
const (
	opMultiply     = "Multiply"
	opMultiplyRows = "MultiplyRows"
)

// Description templates. Coordinates are rendered 1-based. From stage 2 on
// the left operand is named by the folded prefix ("AB"), not by the slot
// label its role is keyed under.
const (
	fmtAccumulate = "Multiplying %s (%s[%d,%d]) with %s (%s[%d,%d]) and adding to the sum."
	fmtSetResult  = "Setting the result at position [%d,%d] to %s."
)

// Multiply computes M[0] × M[1] × … × M[n-1] left to right and records the
// full step trace.
// MAIN DESCRIPTION:
//   - Pure function of the chain: inputs are deep-copied on entry and never
//     touched again; the returned Trace owns everything it references.
//
// Implementation:
//   - Stage 1: snapshot inputs (nil/empty guards), n ≥ 2 guard.
//   - Stage 2: Validate shapes pairwise on the original matrices; the first
//     mismatch aborts with *DimensionMismatchError before any arithmetic.
//   - Stage 3: enforce WithStepLimit from the predicted step count.
//   - Stage 4: fold acc := acc × M[m], emitting Steps in i→j→k order.
//
// Errors:
//   - ErrTooFewMatrices, matrix.ErrNilMatrix, matrix.ErrInvalidDimensions,
//     *DimensionMismatchError (returned unwrapped), ErrStepLimit,
//     matrix.ErrNaNInf (overflow).
//
// Complexity:
//   - Time O(Σ p*q*r), Space O(steps + Σ p*q).
func Multiply(ms []matrix.Matrix, opts ...Option) (*Trace, error) {
	o := NewOptions(opts...)

	if len(ms) < 2 {
		return nil, ErrTooFewMatrices
	}
	inputs := make([]*matrix.Dense, len(ms))
	dims := make([]Dims, len(ms))
	for i, m := range ms {
		d, err := matrix.AsDense(m)
		if err != nil {
			return nil, chainErrorf(opMultiply, fmt.Errorf("matrix %d: %w", i+1, err))
		}
		inputs[i] = d
		dims[i] = Dims{Rows: d.Rows(), Cols: d.Cols()}
	}

	total, err := StepCount(dims)
	if err != nil {
		return nil, err // *DimensionMismatchError is shown to users as-is
	}
	if o.stepLimit > 0 && total > o.stepLimit {
		return nil, chainErrorf(opMultiply,
			fmt.Errorf("%d steps > limit %d: %w", total, o.stepLimit, ErrStepLimit))
	}

	t := &Trace{
		id:     traceID(inputs),
		inputs: inputs,
		steps:  make([]Step, 0, total),
		stages: make([]Stage, 0, len(inputs)-1),
	}
	acc := inputs[0]
	for m := 1; m < len(inputs); m++ {
		if acc, err = t.runStage(acc, m, o); err != nil {
			return nil, chainErrorf(opMultiply, err)
		}
	}
	t.result = acc

	return t, nil
}

// MultiplyRows is Multiply over literal row data.
// Errors additionally include matrix.ErrNonRectangular for ragged input.
func MultiplyRows(chain [][][]float64, opts ...Option) (*Trace, error) {
	ms := make([]matrix.Matrix, len(chain))
	for i, rows := range chain {
		d, err := matrix.NewFromRows(rows)
		if err != nil {
			return nil, chainErrorf(opMultiplyRows, fmt.Errorf("matrix %d: %w", i+1, err))
		}
		ms[i] = d
	}

	return Multiply(ms, opts...)
}

// runStage computes acc × inputs[m] and appends its Steps to t.
//
// Implementation:
//   - Stage 1: allocate the stage buffer shared by every Partial of the stage.
//   - Stage 2: for i, j: for k: accumulate Step (cell (i,j) still unset);
//     then store the sum and append the set-result Step.
//
// Notes:
//   - The buffer is written only at set-result time and each Partial reveals
//     only cells below its fill mark, so earlier Steps never observe later writes.
func (t *Trace) runStage(acc *matrix.Dense, m int, o Options) (*matrix.Dense, error) {
	right := t.inputs[m]
	p, r, q := acc.Rows(), acc.Cols(), right.Cols()

	out, err := matrix.NewDense(p, q)
	if err != nil {
		return nil, err
	}
	lrows, rrows := acc.ToRows(), right.ToRows()

	leftLabel, rightLabel := prefixLabel(o.label, m), o.label(m)
	source := OperandInput
	if m > 1 {
		source = OperandPrevious
	}
	t.stages = append(t.stages, Stage{
		Index:      m,
		LeftRows:   p,
		Inner:      r,
		RightCols:  q,
		First:      len(t.steps),
		Count:      stageSteps(p, r, q),
		LeftLabel:  leftLabel,
		RightLabel: rightLabel,
	})

	var (
		i, j, k int
		a, b    float64
		sum     float64
	)
	for i = 0; i < p; i++ {
		for j = 0; j < q; j++ {
			sum = matrix.ZeroSum
			for k = 0; k < r; k++ {
				a, b = lrows[i][k], rrows[k][j]
				sum += a * b
				t.steps = append(t.steps, Step{
					kind:   StepAccumulate,
					stage:  m,
					target: Coord{Row: i, Col: j},
					inner:  k,
					a:      a,
					b:      b,
					value:  sum,
					description: fmt.Sprintf(fmtAccumulate,
						matrix.FormatValue(a), leftLabel, i+1, k+1,
						matrix.FormatValue(b), rightLabel, k+1, j+1),
					left:    source,
					inputs:  t.inputs,
					operand: acc,
					result:  Partial{final: out, filled: i*q + j},
				})
			}
			if err = out.Set(i, j, sum); err != nil {
				return nil, fmt.Errorf("stage %d: %w", m, err)
			}
			t.steps = append(t.steps, Step{
				kind:        StepSetResult,
				stage:       m,
				target:      Coord{Row: i, Col: j},
				inner:       -1,
				value:       sum,
				description: fmt.Sprintf(fmtSetResult, i+1, j+1, matrix.FormatValue(sum)),
				left:        source,
				inputs:      t.inputs,
				operand:     acc,
				result:      Partial{final: out, filled: i*q + j + 1},
			})
		}
	}

	return out, nil
}
