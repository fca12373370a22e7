// SPDX-License-Identifier: MIT

// Package chain: small value types shared by the engine, Step and Trace.
package chain

import "fmt"

// Coord is a zero-based (row, column) cell coordinate.
type Coord struct {
	Row, Col int
}

// String renders the coordinate 1-based, as shown to users: "[2,3]".
func (c Coord) String() string {
	return fmt.Sprintf("[%d,%d]", c.Row+1, c.Col+1)
}

// Role names the operand a highlighted coordinate belongs to: an input slot
// of the chain, or the accumulating result.
//
// For stages m > 1 the left operand is the previous stage's result, yet it is
// still keyed by slot m-1. Step.LeftOperand tells which one a Step really
// read.
type Role int

// RoleResult is the Role of the accumulating result matrix.
const RoleResult Role = -1

// InputRole returns the Role of chain slot (zero-based).
func InputRole(slot int) Role {
	if slot < 0 {
		panic(fmt.Sprintf("chain: InputRole(%d): negative slot", slot))
	}
	return Role(slot)
}

// IsResult reports whether r is RoleResult.
func (r Role) IsResult() bool { return r == RoleResult }

// Slot returns the input slot of r, or -1 for RoleResult.
func (r Role) Slot() int {
	if r.IsResult() {
		return -1
	}
	return int(r)
}

// String renders the role key used by players and exports: "matrix0", "result".
func (r Role) String() string {
	if r.IsResult() {
		return "result"
	}
	return fmt.Sprintf("matrix%d", int(r))
}

// StepKind distinguishes the two elementary operations of a Trace.
type StepKind int

const (
	// StepAccumulate multiplies acc[i][k] by M[k][j] and adds it to the running sum.
	StepAccumulate StepKind = iota
	// StepSetResult stores the finished sum into result cell (i,j).
	StepSetResult
)

// String returns "accumulate" or "set-result".
func (k StepKind) String() string {
	switch k {
	case StepAccumulate:
		return "accumulate"
	case StepSetResult:
		return "set-result"
	default:
		return fmt.Sprintf("StepKind(%d)", int(k))
	}
}

// OperandSource tells where the left operand of a stage came from.
type OperandSource int

const (
	// OperandInput means the left operand is literal input slot 0 (stage 1).
	OperandInput OperandSource = iota
	// OperandPrevious means the left operand is the previous stage's result.
	OperandPrevious
)

// String returns "input" or "previous".
func (s OperandSource) String() string {
	if s == OperandPrevious {
		return "previous"
	}
	return "input"
}

// Dims is the shape of one chain element.
type Dims struct {
	Rows, Cols int
}

// Stage describes one pairwise multiplication of the fold.
// The stage produces a LeftRows×RightCols result from a LeftRows×Inner left
// operand and an Inner×RightCols right operand. Its Steps occupy
// [First, First+Count) in the Trace.
type Stage struct {
	Index      int    `json:"index" yaml:"index"`             // 1-based stage number m (right operand is slot m)
	LeftRows   int    `json:"left_rows" yaml:"left_rows"`     // p
	Inner      int    `json:"inner" yaml:"inner"`             // r
	RightCols  int    `json:"right_cols" yaml:"right_cols"`   // q
	First      int    `json:"first" yaml:"first"`             // index of the first Step of this stage
	Count      int    `json:"count" yaml:"count"`             // p*q*r + p*q
	LeftLabel  string `json:"left_label" yaml:"left_label"`   // e.g. "A" for stage 1, "AB" for stage 2
	RightLabel string `json:"right_label" yaml:"right_label"` // e.g. "B" for stage 1
}

// stageSteps returns the number of Steps a p×r · r×q stage emits.
func stageSteps(p, r, q int) int {
	return p*q*r + p*q
}
