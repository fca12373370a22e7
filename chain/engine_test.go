// SPDX-License-Identifier: MIT
package chain_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/katalvlaran/matstep/chain"
	"github.com/katalvlaran/matstep/matrix"
	"github.com/stretchr/testify/require"
)

// mustDense builds a *matrix.Dense from literal rows or fails the test.
func mustDense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(t, err)

	return m
}

// mustMultiply runs chain.Multiply over literal matrices and requires success.
func mustMultiply(t *testing.T, rows ...[][]float64) *chain.Trace {
	t.Helper()
	tr, err := chain.MultiplyRows(rows)
	require.NoError(t, err)
	require.NotNil(t, tr)

	return tr
}

// stepAt fetches step i or fails the test.
func stepAt(t *testing.T, tr *chain.Trace, i int) chain.Step {
	t.Helper()
	s, err := tr.Step(i)
	require.NoError(t, err)

	return s
}

// TestMultiply_OneByOne verifies [[x]]×[[y]] = [[x*y]] with exactly two steps.
func TestMultiply_OneByOne(t *testing.T) {
	tr := mustMultiply(t, [][]float64{{3}}, [][]float64{{-4}})

	require.Equal(t, [][]float64{{-12}}, tr.Result().ToRows()) // x*y
	require.Equal(t, 2, tr.Len())                              // one accumulate + one set

	require.Equal(t, chain.StepAccumulate, stepAt(t, tr, 0).Kind())
	require.Equal(t, chain.StepSetResult, stepAt(t, tr, 1).Kind())
	require.Equal(t, "Multiplying 3 (A[1,1]) with -4 (B[1,1]) and adding to the sum.", stepAt(t, tr, 0).Description())
	require.Equal(t, "Setting the result at position [1,1] to -12.", stepAt(t, tr, 1).Description())
}

// TestMultiply_DimensionMismatch verifies the first incompatible pair is reported and nothing is produced.
func TestMultiply_DimensionMismatch(t *testing.T) {
	a := make([][]float64, 2) // 2×3
	for i := range a {
		a[i] = []float64{1, 2, 3}
	}
	b := make([][]float64, 4) // 4×2
	for i := range b {
		b[i] = []float64{1, 2}
	}

	tr, err := chain.MultiplyRows([][][]float64{a, b})
	require.Nil(t, tr) // no trace on failure
	require.ErrorIs(t, err, chain.ErrDimensionMismatch)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	var dm *chain.DimensionMismatchError
	require.True(t, errors.As(err, &dm))
	require.Equal(t, 1, dm.Left)
	require.Equal(t, 2, dm.Right)
	require.Equal(t, 3, dm.LeftCols)
	require.Equal(t, 4, dm.RightRows)
	require.Equal(t,
		"Cannot multiply matrices 1 and 2. The number of columns in Matrix 1 (3) must equal the number of rows in Matrix 2 (4).",
		err.Error()) // displayed verbatim
}

// TestMultiply_MismatchChecksOriginalShapes verifies a later pair is validated against
// the original matrices, before any arithmetic happens.
func TestMultiply_MismatchChecksOriginalShapes(t *testing.T) {
	a := [][]float64{{1, 2}}         // 1×2
	b := [][]float64{{1}, {2}}       // 2×1
	c := [][]float64{{1, 2}, {3, 4}} // 2×2: incompatible with b (1 != 2)

	_, err := chain.MultiplyRows([][][]float64{a, b, c})
	var dm *chain.DimensionMismatchError
	require.True(t, errors.As(err, &dm))
	require.Equal(t, 2, dm.Left)
	require.Equal(t, 3, dm.Right)
	require.Equal(t, 1, dm.LeftCols)
	require.Equal(t, 2, dm.RightRows)
}

// TestMultiply_Standard2x2 pins the textbook product, trace length and the first steps.
func TestMultiply_Standard2x2(t *testing.T) {
	tr := mustMultiply(t,
		[][]float64{{1, 2}, {3, 4}},
		[][]float64{{5, 6}, {7, 8}},
	)

	require.Equal(t, [][]float64{{19, 22}, {43, 50}}, tr.Result().ToRows())
	require.Equal(t, 2*2*2+2*2, tr.Len()) // 12

	s0 := stepAt(t, tr, 0)
	require.Equal(t, "Multiplying 1 (A[1,1]) with 5 (B[1,1]) and adding to the sum.", s0.Description())
	l, r := s0.Operands()
	require.Equal(t, 1.0, l)
	require.Equal(t, 5.0, r)
	require.Equal(t, 5.0, s0.Value()) // running sum

	s1 := stepAt(t, tr, 1)
	require.Equal(t, "Multiplying 2 (A[1,2]) with 7 (B[2,1]) and adding to the sum.", s1.Description())
	require.Equal(t, 19.0, s1.Value())

	set := stepAt(t, tr, 2) // final set-result step for (0,0)
	require.Equal(t, chain.StepSetResult, set.Kind())
	require.Equal(t, chain.Coord{Row: 0, Col: 0}, set.Target())
	require.Equal(t, 19.0, set.Value())
	require.Equal(t, "Setting the result at position [1,1] to 19.", set.Description())

	last := stepAt(t, tr, tr.Len()-1)
	require.Equal(t, "Setting the result at position [2,2] to 50.", last.Description())
}

// TestMultiply_Highlights checks the role map of accumulate and set steps.
func TestMultiply_Highlights(t *testing.T) {
	tr := mustMultiply(t,
		[][]float64{{1, 2}, {3, 4}},
		[][]float64{{5, 6}, {7, 8}},
	)

	s := stepAt(t, tr, 7) // (1,0) k=1
	require.Equal(t, chain.Coord{Row: 1, Col: 0}, s.Target())
	require.Equal(t, 1, s.Inner())
	require.Equal(t, map[chain.Role]chain.Coord{
		chain.InputRole(0): {Row: 1, Col: 1},
		chain.InputRole(1): {Row: 1, Col: 0},
		chain.RoleResult:   {Row: 1, Col: 0},
	}, s.Highlights())
	require.Equal(t, chain.OperandInput, s.LeftOperand())

	set := stepAt(t, tr, 8) // set (1,0)
	require.Equal(t, map[chain.Role]chain.Coord{chain.RoleResult: {Row: 1, Col: 0}}, set.Highlights())
	_, ok := set.Highlight(chain.InputRole(0))
	require.False(t, ok)
	require.Equal(t, -1, set.Inner())
}

// TestMultiply_PartialResultSnapshots verifies each step sees the result as it stood after that step.
func TestMultiply_PartialResultSnapshots(t *testing.T) {
	tr := mustMultiply(t,
		[][]float64{{1, 2}, {3, 4}},
		[][]float64{{5, 6}, {7, 8}},
	)

	first := stepAt(t, tr, 0).Result()
	require.Equal(t, 0, first.Filled())
	_, ok := first.At(0, 0)
	require.False(t, ok) // (0,0) in progress, not yet set

	set := stepAt(t, tr, 2).Result()
	v, ok := set.At(0, 0)
	require.True(t, ok)
	require.Equal(t, 19.0, v)
	_, ok = set.At(0, 1)
	require.False(t, ok) // later cells still unset

	mid := stepAt(t, tr, 3).Result() // accumulate for (0,1)
	require.Equal(t, 1, mid.Filled())
	_, ok = mid.At(0, 1)
	require.False(t, ok)

	cells := set.Cells()
	require.NotNil(t, cells[0][0])
	require.Equal(t, 19.0, *cells[0][0])
	require.Nil(t, cells[1][1])
	require.Equal(t, [][]float64{{19, 0}, {0, 0}}, set.Dense().ToRows())

	final := stepAt(t, tr, tr.Len()-1).Result()
	require.True(t, final.Complete())
	require.Equal(t, [][]float64{{19, 22}, {43, 50}}, final.Dense().ToRows())
}

// TestMultiply_ChainOfThree verifies (A×B)×C: the second stage reads the first stage's result.
func TestMultiply_ChainOfThree(t *testing.T) {
	tr := mustMultiply(t,
		[][]float64{{1, 2}, {3, 4}},
		[][]float64{{5, 6}, {7, 8}},
		[][]float64{{2, 0}, {1, 1}},
	)

	require.Equal(t, [][]float64{{60, 22}, {136, 50}}, tr.Result().ToRows())
	require.Equal(t, 12+12, tr.Len()) // sum of per-stage counts

	stages := tr.Stages()
	require.Len(t, stages, 2)
	require.Equal(t, chain.Stage{Index: 1, LeftRows: 2, Inner: 2, RightCols: 2, First: 0, Count: 12, LeftLabel: "A", RightLabel: "B"}, stages[0])
	require.Equal(t, chain.Stage{Index: 2, LeftRows: 2, Inner: 2, RightCols: 2, First: 12, Count: 12, LeftLabel: "AB", RightLabel: "C"}, stages[1])

	s := stepAt(t, tr, 12) // first step of stage 2
	require.Equal(t, 2, s.Stage())
	l, r := s.Operands()
	require.Equal(t, 19.0, l) // (A×B)[0][0], not B[0][0]
	require.Equal(t, 2.0, r)
	require.Equal(t, "Multiplying 19 (AB[1,1]) with 2 (C[1,1]) and adding to the sum.", s.Description())
	require.Equal(t, chain.OperandPrevious, s.LeftOperand())

	hl := s.Highlights()
	require.Equal(t, chain.Coord{Row: 0, Col: 0}, hl[chain.InputRole(1)]) // keyed positionally as slot m-1
	require.Equal(t, chain.Coord{Row: 0, Col: 0}, hl[chain.InputRole(2)])
	_, ok := hl[chain.InputRole(0)]
	require.False(t, ok)

	require.Equal(t, 3, s.NumInputs()) // every step references the original chain
	b, err := s.Input(1)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{5, 6}, {7, 8}}, b.ToRows())
}

// TestMultiply_ZeroFilledCell multiplies a normalized unset cell as literal zero.
func TestMultiply_ZeroFilledCell(t *testing.T) {
	tr := mustMultiply(t, [][]float64{{0, 2}}, [][]float64{{3}, {4}})
	require.Equal(t, [][]float64{{8}}, tr.Result().ToRows())
}

// TestMultiply_StepOrder2x3By3x2 pins the exact i→j→k order plus one set step per cell.
func TestMultiply_StepOrder2x3By3x2(t *testing.T) {
	tr := mustMultiply(t,
		[][]float64{{1, 2, 3}, {4, 5, 6}},
		[][]float64{{7, 8}, {9, 10}, {11, 12}},
	)
	require.Equal(t, [][]float64{{58, 64}, {139, 154}}, tr.Result().ToRows())
	require.Equal(t, 2*2*3+2*2, tr.Len())

	type key struct {
		kind    chain.StepKind
		i, j, k int
	}
	var want []key
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 3; k++ {
				want = append(want, key{chain.StepAccumulate, i, j, k})
			}
			want = append(want, key{chain.StepSetResult, i, j, -1})
		}
	}

	got := make([]key, 0, tr.Len())
	for _, s := range tr.Steps() {
		got = append(got, key{s.Kind(), s.Target().Row, s.Target().Col, s.Inner()})
	}
	require.Equal(t, want, got)
}

// TestMultiply_Independence verifies traces are frozen at invocation time and share nothing.
func TestMultiply_Independence(t *testing.T) {
	a := mustDense(t, [][]float64{{1, 2}, {3, 4}})
	b := mustDense(t, [][]float64{{5, 6}, {7, 8}})

	tr1, err := chain.Multiply([]matrix.Matrix{a, b})
	require.NoError(t, err)
	desc := stepAt(t, tr1, 0).Description()

	require.NoError(t, a.Set(0, 0, 100)) // mutate caller-owned input afterwards

	require.Equal(t, [][]float64{{19, 22}, {43, 50}}, tr1.Result().ToRows())
	require.Equal(t, desc, stepAt(t, tr1, 0).Description())
	in0, err := stepAt(t, tr1, 0).Input(0)
	require.NoError(t, err)
	require.Equal(t, 1.0, in0.ToRows()[0][0])

	res := tr1.Result()
	require.NoError(t, res.Set(0, 0, -1)) // mutating a returned copy does not leak back
	require.Equal(t, 19.0, tr1.Result().ToRows()[0][0])

	tr2, err := chain.Multiply([]matrix.Matrix{a, b})
	require.NoError(t, err)
	require.Equal(t, [][]float64{{514, 616}, {43, 50}}, tr2.Result().ToRows())
	require.Equal(t, [][]float64{{19, 22}, {43, 50}}, tr1.Result().ToRows())
	require.NotEqual(t, tr1.ID(), tr2.ID())
}

// TestMultiply_Deterministic verifies equal chains yield identical traces and IDs.
func TestMultiply_Deterministic(t *testing.T) {
	rows := [][][]float64{{{1, 2}, {3, 4}}, {{0.5}, {-1}}}
	tr1, err := chain.MultiplyRows(rows)
	require.NoError(t, err)
	tr2, err := chain.MultiplyRows(rows)
	require.NoError(t, err)

	require.Equal(t, tr1.ID(), tr2.ID())
	require.Equal(t, tr1.Len(), tr2.Len())
	for i := 0; i < tr1.Len(); i++ {
		require.Equal(t, stepAt(t, tr1, i).Description(), stepAt(t, tr2, i).Description())
	}
}

// TestMultiply_MatchesMul cross-checks the traced fold against the plain kernel.
func TestMultiply_MatchesMul(t *testing.T) {
	a := mustDense(t, [][]float64{{0.1, 0.2, 0.3}, {1.5, -2, 4}})
	b := mustDense(t, [][]float64{{1, 2}, {3, 4}, {5, 6}})
	c := mustDense(t, [][]float64{{0.7, 1, 2}, {-3, 0.25, 8}})

	tr, err := chain.Multiply([]matrix.Matrix{a, b, c})
	require.NoError(t, err)

	ab, err := matrix.Mul(a, b)
	require.NoError(t, err)
	abc, err := matrix.Mul(ab, c)
	require.NoError(t, err)
	require.True(t, abc.Equal(tr.Result())) // bitwise: same accumulation order

	n, err := chain.StepCount([]chain.Dims{{Rows: 2, Cols: 3}, {Rows: 3, Cols: 2}, {Rows: 2, Cols: 3}})
	require.NoError(t, err)
	require.Equal(t, n, tr.Len())
}

// TestMultiply_InputGuards covers the explicit precondition errors.
func TestMultiply_InputGuards(t *testing.T) {
	one := mustDense(t, [][]float64{{1}})

	_, err := chain.Multiply(nil)
	require.ErrorIs(t, err, chain.ErrTooFewMatrices)

	_, err = chain.Multiply([]matrix.Matrix{one})
	require.ErrorIs(t, err, chain.ErrTooFewMatrices)

	_, err = chain.Multiply([]matrix.Matrix{one, nil})
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	require.Contains(t, err.Error(), "matrix 2")

	_, err = chain.MultiplyRows([][][]float64{{{1, 2}, {3}}, {{1}}})
	require.ErrorIs(t, err, matrix.ErrNonRectangular)

	_, err = chain.MultiplyRows([][][]float64{{}, {{1}}})
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestMultiply_StepLimit verifies the guard fires before computing and is inclusive.
func TestMultiply_StepLimit(t *testing.T) {
	rows := [][][]float64{{{1, 2}, {3, 4}}, {{5, 6}, {7, 8}}}

	tr, err := chain.MultiplyRows(rows, chain.WithStepLimit(11))
	require.Nil(t, tr)
	require.ErrorIs(t, err, chain.ErrStepLimit)

	tr, err = chain.MultiplyRows(rows, chain.WithStepLimit(12))
	require.NoError(t, err)
	require.Equal(t, 12, tr.Len())

	require.Panics(t, func() { chain.WithStepLimit(-1) })
}

// TestMultiply_CustomLabels verifies WithLabels feeds the descriptions and stage table.
func TestMultiply_CustomLabels(t *testing.T) {
	names := []string{"X", "Y"}
	tr, err := chain.MultiplyRows(
		[][][]float64{{{2}}, {{3}}},
		chain.WithLabels(func(slot int) string { return names[slot] }),
	)
	require.NoError(t, err)
	require.Equal(t, "Multiplying 2 (X[1,1]) with 3 (Y[1,1]) and adding to the sum.", stepAt(t, tr, 0).Description())
	require.Equal(t, "X", tr.Stages()[0].LeftLabel)

	require.Panics(t, func() { chain.WithLabels(nil) })
}

// TestMultiply_Overflow reports ErrNaNInf and produces no trace.
func TestMultiply_Overflow(t *testing.T) {
	tr, err := chain.MultiplyRows([][][]float64{{{math.MaxFloat64}}, {{2}}})
	require.Nil(t, tr)
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

// TestTrace_StepIndex covers out-of-range access.
func TestTrace_StepIndex(t *testing.T) {
	tr := mustMultiply(t, [][]float64{{1}}, [][]float64{{1}})

	_, err := tr.Step(-1)
	require.ErrorIs(t, err, chain.ErrStepIndex)
	_, err = tr.Step(tr.Len())
	require.ErrorIs(t, err, chain.ErrStepIndex)

	var nilTrace *chain.Trace
	require.Equal(t, 0, nilTrace.Len())
	require.Empty(t, nilTrace.Steps())
	require.Equal(t, uuid.Nil, nilTrace.ID())
	require.Empty(t, nilTrace.Stages())
	require.Equal(t, 0, nilTrace.NumInputs())
	require.Empty(t, nilTrace.Inputs())
	require.Nil(t, nilTrace.Result())

	rec := nilTrace.Record(true)
	require.Equal(t, uuid.Nil.String(), rec.ID)
	require.Empty(t, rec.Steps)
}

// TestStep_ZeroValue verifies the Step returned alongside an error is inert.
func TestStep_ZeroValue(t *testing.T) {
	tr := mustMultiply(t, [][]float64{{1}}, [][]float64{{1}})
	s, err := tr.Step(99)
	require.ErrorIs(t, err, chain.ErrStepIndex)

	require.NotPanics(t, func() { s.Highlights() })
	require.Empty(t, s.Highlights())
	_, ok := s.Highlight(chain.RoleResult)
	require.False(t, ok)
	require.Nil(t, s.LeftMatrix())
	require.Empty(t, s.Record(0).Highlights)
}

// TestStep_LeftMatrix verifies later stages expose the folded left operand.
func TestStep_LeftMatrix(t *testing.T) {
	tr := mustMultiply(t,
		[][]float64{{1, 2}, {3, 4}, {5, 6}},
		[][]float64{{0, 1}, {1, 0}},
		[][]float64{{1, 0}, {0, 2}},
	)

	first := stepAt(t, tr, 0)
	require.Equal(t, [][]float64{{1, 2}, {3, 4}, {5, 6}}, first.LeftMatrix().ToRows()) // stage 1 reads slot 0

	s := stepAt(t, tr, 34) // stage 2, cell (2,1), k=1
	require.Equal(t, "Multiplying 5 (AB[3,2]) with 2 (C[2,2]) and adding to the sum.", s.Description())
	left := s.LeftMatrix()
	require.Equal(t, [][]float64{{2, 1}, {4, 3}, {6, 5}}, left.ToRows())

	c, ok := s.Highlight(chain.InputRole(1))
	require.True(t, ok)
	v, err := left.At(c.Row, c.Col)
	require.NoError(t, err)
	require.Equal(t, 5.0, v) // highlight indexes the matrix actually read

	require.NoError(t, left.Set(0, 0, 99))
	require.Equal(t, 2.0, mustAt(t, s.LeftMatrix(), 0, 0)) // returned copy is detached
}

// TestMultiply_LargeValuesInDescriptions pins plain decimal text for big numbers.
func TestMultiply_LargeValuesInDescriptions(t *testing.T) {
	tr := mustMultiply(t, [][]float64{{1000}}, [][]float64{{1000}})
	require.Equal(t, "Setting the result at position [1,1] to 1000000.", stepAt(t, tr, 1).Description())

	tr = mustMultiply(t, [][]float64{{1234567}}, [][]float64{{1}})
	require.Equal(t, "Multiplying 1234567 (A[1,1]) with 1 (B[1,1]) and adding to the sum.", stepAt(t, tr, 0).Description())
}

// mustAt reads m[i][j] or fails the test.
func mustAt(t *testing.T, m *matrix.Dense, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}
