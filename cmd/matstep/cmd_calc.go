// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/matstep/chain"
	"github.com/katalvlaran/matstep/grid"
	"github.com/katalvlaran/matstep/logging"
	"github.com/katalvlaran/matstep/matrix"
	"github.com/katalvlaran/matstep/player"
)

// Output formats of the calc command.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// unsetToken marks an empty cell in a matrix argument.
const unsetToken = "_"

func newCalcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc MATRIX MATRIX [MATRIX...]",
		Short: "Multiply a chain of matrices given as arguments",
		Long: `Multiply matrices left to right and print the result.

Each matrix is written row by row: cells separated by ",", rows by ";".
"_" or an empty cell is unset and counts as 0. Cells may be arithmetic
expressions such as 1/3 or 2*(3+4).

Examples:
  matstep calc "1,2;3,4" "5,6;7,8"
  matstep calc --steps "1,2,3" "4;5;6"
  matstep calc --step 3 --format json "_,2" "3;4"`,
		Args: cobra.MinimumNArgs(2),
		RunE: runCalc,
	}

	cmd.Flags().Bool("steps", false, "Print every recorded step")
	cmd.Flags().Int("step", 0, "Print the frame of step N (1-based)")
	cmd.Flags().String("format", formatText, "Output format: text, json or yaml")
	cmd.Flags().Bool("no-trace", false, "Multiply without recording steps")

	return cmd
}

func runCalc(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	level, _ := cmd.Flags().GetString("log-level")
	if level == "" {
		level = cfg.Logging.Level
	}
	log := logging.NewLogger(level, os.Stderr)

	showSteps, _ := cmd.Flags().GetBool("steps")
	stepN, _ := cmd.Flags().GetInt("step")
	format, _ := cmd.Flags().GetString("format")
	noTrace, _ := cmd.Flags().GetBool("no-trace")
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		format = formatJSON
	}
	switch format {
	case formatText, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
	if noTrace && (showSteps || stepN != 0) {
		return fmt.Errorf("--no-trace cannot be combined with --steps or --step")
	}

	ms, err := parseChain(args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if noTrace {
		res, err := multiplyPlain(ms)
		if err != nil {
			return err
		}
		log.Debug("multiplied without trace", "matrices", len(ms))
		return writeResult(out, format, res)
	}

	tr, err := chain.Multiply(ms, chain.WithStepLimit(cfg.Engine.StepLimit))
	if err != nil {
		return err
	}
	log.Debug("calculated", "id", tr.ID(), "matrices", tr.NumInputs(), "steps", tr.Len())

	if stepN != 0 {
		p := player.New(tr)
		if stepN < 1 || stepN > p.Len() {
			return fmt.Errorf("--step %d outside 1..%d", stepN, p.Len())
		}
		p.Seek(stepN - 1)
		return writeStep(out, format, p)
	}

	return writeTrace(out, format, tr, showSteps)
}

// parseChain parses every argument into a normalized matrix.
func parseChain(args []string) ([]matrix.Matrix, error) {
	ms := make([]matrix.Matrix, len(args))
	for i, arg := range args {
		g, err := parseMatrixArg(arg)
		if err != nil {
			return nil, fmt.Errorf("matrix %d: %w", i+1, err)
		}
		ms[i] = g.Normalize()
	}

	return ms, nil
}

// parseMatrixArg parses "1,2;3,4" into a Grid. "_" and empty cells are unset.
func parseMatrixArg(s string) (*grid.Grid, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, grid.ErrEmptyGrid
	}
	rowsText := strings.Split(s, ";")
	cells := make([][]grid.Cell, len(rowsText))
	for r, rowText := range rowsText {
		fields := strings.Split(rowText, ",")
		cells[r] = make([]grid.Cell, len(fields))
		for c, f := range fields {
			f = strings.TrimSpace(f)
			if f == unsetToken {
				continue
			}
			cell, err := grid.ParseCell(f)
			if err != nil {
				return nil, err
			}
			cells[r][c] = cell.Commit()
		}
	}
	for _, row := range cells {
		if len(row) != len(cells[0]) {
			return nil, grid.ErrNonRectangular
		}
	}

	g, err := grid.New(len(cells), len(cells[0]))
	if err != nil {
		return nil, err
	}
	for r, row := range cells {
		for c, cell := range row {
			if err = g.SetCell(r, c, cell); err != nil {
				return nil, err
			}
		}
	}

	return g, nil
}

// multiplyPlain folds the chain with the untraced kernel.
func multiplyPlain(ms []matrix.Matrix) (*matrix.Dense, error) {
	dims := make([]chain.Dims, len(ms))
	for i, m := range ms {
		dims[i] = chain.Dims{Rows: m.Rows(), Cols: m.Cols()}
	}
	if err := chain.Validate(dims); err != nil {
		return nil, err
	}
	acc, err := matrix.AsDense(ms[0])
	if err != nil {
		return nil, err
	}
	for _, m := range ms[1:] {
		if acc, err = matrix.Mul(acc, m); err != nil {
			return nil, err
		}
	}

	return acc, nil
}

// resultRecord is the serializable form of an untraced product.
type resultRecord struct {
	Result [][]float64 `json:"result" yaml:"result"`
}

func writeResult(w io.Writer, format string, res *matrix.Dense) error {
	switch format {
	case formatJSON:
		return encodeJSON(w, resultRecord{Result: res.ToRows()})
	case formatYAML:
		return encodeYAML(w, resultRecord{Result: res.ToRows()})
	}
	_, err := fmt.Fprint(w, res.String())
	return err
}

func writeTrace(w io.Writer, format string, tr *chain.Trace, withSteps bool) error {
	switch format {
	case formatJSON:
		return encodeJSON(w, tr.Record(withSteps))
	case formatYAML:
		return encodeYAML(w, tr.Record(withSteps))
	}

	if withSteps {
		for i, s := range tr.Steps() {
			if _, err := fmt.Fprintf(w, "%d. %s\n", i+1, s.Description()); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s%d steps\n", tr.Result().String(), tr.Len())
	return err
}

func writeStep(w io.Writer, format string, p *player.Player) error {
	s, _ := p.Current()
	switch format {
	case formatJSON:
		return encodeJSON(w, s.Record(p.Index()))
	case formatYAML:
		return encodeYAML(w, s.Record(p.Index()))
	}

	f, _ := p.Frame()
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n", f.Caption, f.Description)
	for _, panel := range append(f.Inputs, f.Result) {
		fmt.Fprintf(&b, "%s:\n", panel.Label)
		for r, row := range panel.Cells {
			b.WriteString(" ")
			for c, v := range row {
				text := unsetToken
				if v != nil {
					text = matrix.FormatValue(*v)
				}
				if panel.Highlight != nil && panel.Highlight.Row == r && panel.Highlight.Col == c {
					text = "[" + text + "]"
				}
				b.WriteString(" " + text)
			}
			b.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
