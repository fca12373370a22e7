// Package chain multiplies a chain of matrices left to right and records
// every scalar operation of the computation as a replayable Trace.
//
// What:
//
//   - Validate: pairwise compatibility Cols(Mi) == Rows(Mi+1) on the original
//     matrices, before any arithmetic.
//   - Multiply: left fold acc := acc × M[m]; for each destination cell (i,j)
//     in row-major order and each contraction index k ascending, one
//     accumulate Step, then one set-result Step once the sum is final.
//   - Trace: immutable, ordered Steps plus the final result and a stage table.
//
// Why:
//
//   - Teaching/visualisation: a player walks the Trace one Step at a time and
//     highlights the operand cells each Step touched.
//
// Complexity:
//
//   - A stage (p×r)·(r×q) emits exactly p*q*r + p*q Steps; time O(p*q*r).
//   - Step snapshots share one frozen copy of the inputs and one result buffer
//     per stage, so memory is O(steps + Σ stage sizes).
//
// Determinism:
//
//   - Output (result, step order, description text, Trace ID) is a pure
//     function of the input chain. No clocks, no randomness, no shared state;
//     concurrent calls are safe.
//
// Errors:
//
//   - *DimensionMismatchError (errors.Is ErrDimensionMismatch): first
//     incompatible adjacent pair, 1-based ordinals and the conflicting sizes.
//   - ErrTooFewMatrices, matrix.ErrNilMatrix, matrix.ErrInvalidDimensions:
//     input precondition guards.
//   - ErrStepLimit: the predicted trace length exceeds WithStepLimit.
//   - matrix.ErrNaNInf: an accumulated sum overflowed to ±Inf.
//
// On any error no Trace is produced.
package chain
