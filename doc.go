// Package matstep is an interactive calculator for chained matrix
// multiplication that shows its work: every multiply-accumulate of
// M₁ × M₂ × … × Mₙ is recorded, narrated and can be replayed step by step.
//
// What is inside?
//
//   - matrix: Dense float64 matrices, validators and the plain Mul kernel
//   - chain: the step-recording engine (Multiply, Step, Trace, Stage)
//   - grid: the editable store; cells that may be unset, grids, the chain
//     of grids, viewport navigation and the size picker
//   - player: a clamped cursor over a Trace and the frames it renders
//   - tui: the bubbletea editor and player
//   - config: viper-backed settings (TOML file + MATSTEP_* env)
//   - logging: leveled slog loggers
//
// Data flows one way:
//
//	grid.Chain ──Normalize──▶ chain.Multiply ──Trace──▶ player.Player ──Frame──▶ tui / cmd/matstep
//
// Quick start:
//
//	tr, err := chain.MultiplyRows([][][]float64{
//		{{1, 2}, {3, 4}},
//		{{5, 6}, {7, 8}},
//	})
//	if err != nil {
//		// *chain.DimensionMismatchError reads as a user-facing message
//	}
//	s, _ := tr.Step(2)
//	fmt.Println(s.Description()) // Setting the result at position [1,1] to 19.
//	fmt.Print(tr.Result())       // [19, 22]\n[43, 50]
//
// Guarantees:
//
//   - Deterministic: the same chain always yields the same Steps and Trace ID.
//   - Immutable traces: inputs are snapshotted; later edits never leak in.
//   - No panics on user input: every failure is a sentinel matched with errors.Is.
package matstep
