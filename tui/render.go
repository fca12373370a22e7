// SPDX-License-Identifier: MIT

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/katalvlaran/matstep/chain"
	"github.com/katalvlaran/matstep/config"
	"github.com/katalvlaran/matstep/grid"
	"github.com/katalvlaran/matstep/matrix"
	"github.com/katalvlaran/matstep/player"
)

// cellWidth is the rendered width of one matrix cell.
const cellWidth = 8

// styles holds every lipgloss style the views use.
type styles struct {
	title     lipgloss.Style
	label     lipgloss.Style
	cell      lipgloss.Style
	empty     lipgloss.Style
	focus     lipgloss.Style
	highlight lipgloss.Style
	muted     lipgloss.Style
	alert     lipgloss.Style
	panel     lipgloss.Style
}

func newStyles(ui config.UIConfig) styles {
	accent := lipgloss.Color(ui.AccentColor)
	hl := lipgloss.Color(ui.HighlightColor)
	muted := lipgloss.Color(ui.MutedColor)
	cell := lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Right).PaddingRight(1)

	return styles{
		title:     lipgloss.NewStyle().Bold(true).Underline(true).Foreground(accent),
		label:     lipgloss.NewStyle().Bold(true),
		cell:      cell,
		empty:     cell.Foreground(muted),
		focus:     cell.Reverse(true).Foreground(accent),
		highlight: cell.Bold(true).Background(hl).Foreground(lipgloss.Color("#000000")),
		muted:     lipgloss.NewStyle().Foreground(muted),
		alert: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#C0392B")).Padding(0, 1),
		panel: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1),
	}
}

func (a *App) View() string {
	var body string
	switch a.mode {
	case ModePlayer:
		body = a.renderPlayer()
	case ModePicker:
		body = a.renderEditor() + "\n" + a.renderPicker()
	default:
		body = a.renderEditor()
	}

	var footer []string
	if a.mode == ModeCommand {
		footer = append(footer, ":"+a.command)
	}
	if a.alert != "" {
		footer = append(footer, a.styles.alert.Render(a.alert), a.styles.muted.Render("press any key"))
	} else if a.status != "" {
		footer = append(footer, a.status)
	}
	footer = append(footer, a.styles.muted.Render(a.help()))

	return body + "\n" + strings.Join(footer, "\n")
}

func (a *App) help() string {
	switch a.mode {
	case ModeInput:
		return "[enter] Confirm  [arrows] Confirm+move  [esc] Done"
	case ModePicker:
		return "[arrows] Size  [enter] Apply  [esc] Cancel"
	case ModePlayer:
		return "[←/→] Step  [home/end] First/Last  [esc] Back"
	case ModeCommand:
		return "calc  add  remove  reset  resize RxC  play  quit"
	default:
		return "[arrows] Move  [tab] Next matrix  [0-9] Edit  [a] Add  [x] Remove  [r] Reset  [s] Size  [c] Calculate  [p] Play  [:] Command  [q] Quit"
	}
}

// renderEditor draws every matrix of the store plus the last result.
func (a *App) renderEditor() string {
	title := a.styles.title.Render("Matrix Chain Multiplication")

	panels := make([]string, 0, a.store.Len()+1)
	for i := 0; i < a.store.Len(); i++ {
		g, err := a.store.At(i)
		if err != nil {
			continue
		}
		panels = append(panels, a.renderGrid(i, g))
	}
	if a.trace != nil {
		panels = append(panels, a.renderResult(a.trace.Result()))
	}

	return title + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, panels...)
}

// renderGrid draws the visible window of matrix i.
func (a *App) renderGrid(i int, g *grid.Grid) string {
	nav := a.navs[i]
	top, left, bottom, right := nav.Visible()
	focus := nav.Focus()

	var b strings.Builder
	head := fmt.Sprintf("%s (%d×%d)", chain.SlotLabel(i), g.Rows(), g.Cols())
	if i == a.active {
		head = "▶ " + head
	}
	b.WriteString(a.styles.label.Render(head))
	if bottom-top < g.Rows() || right-left < g.Cols() {
		b.WriteString(a.styles.muted.Render(fmt.Sprintf(" rows %d-%d cols %d-%d", top+1, bottom, left+1, right)))
	}
	for r := top; r < bottom; r++ {
		b.WriteString("\n")
		for c := left; c < right; c++ {
			cell, _ := g.Cell(r, c)
			text := cell.String()
			if i == a.active && r == focus.Row && c == focus.Col && a.mode == ModeInput {
				text = a.input + "_"
			}
			style := a.styles.cell
			switch {
			case i == a.active && r == focus.Row && c == focus.Col:
				style = a.styles.focus
			case text == "":
				text = "·"
				style = a.styles.empty
			}
			b.WriteString(style.Render(text))
		}
	}

	return a.styles.panel.Render(b.String())
}

// renderResult draws a finished product.
func (a *App) renderResult(m *matrix.Dense) string {
	var b strings.Builder
	b.WriteString(a.styles.label.Render(fmt.Sprintf("Result (%d×%d)", m.Rows(), m.Cols())))
	for _, row := range m.ToRows() {
		b.WriteString("\n")
		for _, v := range row {
			b.WriteString(a.styles.cell.Render(matrix.FormatValue(v)))
		}
	}

	return a.styles.panel.Render(b.String())
}

// renderPicker draws the hovered size as a block of the picker square.
func (a *App) renderPicker() string {
	rows, cols := a.picker.Selected()
	var b strings.Builder
	b.WriteString(a.styles.label.Render(fmt.Sprintf("Resize %s to %d × %d", chain.SlotLabel(a.active), rows, cols)))
	for r := 0; r < a.picker.Max(); r++ {
		b.WriteString("\n")
		for c := 0; c < a.picker.Max(); c++ {
			if r < rows && c < cols {
				b.WriteString(a.styles.title.UnsetUnderline().Render("■ "))
			} else {
				b.WriteString(a.styles.muted.Render("· "))
			}
		}
	}

	return a.styles.panel.Render(b.String())
}

// renderPlayer draws the current step frame.
func (a *App) renderPlayer() string {
	f, ok := a.player.Frame()
	if !ok {
		return a.styles.muted.Render("No steps")
	}
	title := a.styles.title.Render(fmt.Sprintf("Step-by-step explanation, stage %d", f.Stage))

	panels := make([]string, 0, len(f.Inputs)+1)
	for _, p := range f.Inputs {
		label := p.Label
		if p.Source == chain.OperandPrevious {
			label += " (previous result)"
		}
		panels = append(panels, a.renderPanel(label, p))
	}
	panels = append(panels, a.renderPanel(f.Result.Label, f.Result))

	return strings.Join([]string{
		title,
		lipgloss.JoinHorizontal(lipgloss.Top, panels...),
		f.Description,
		a.styles.label.Render(f.Caption),
	}, "\n")
}

// renderPanel draws one player panel with its highlighted cell.
func (a *App) renderPanel(label string, p player.Panel) string {
	var b strings.Builder
	b.WriteString(a.styles.label.Render(label))
	for r, row := range p.Cells {
		b.WriteString("\n")
		for c, v := range row {
			text, style := "·", a.styles.empty
			if v != nil {
				text, style = matrix.FormatValue(*v), a.styles.cell
			}
			if p.Highlight != nil && p.Highlight.Row == r && p.Highlight.Col == c {
				style = a.styles.highlight
			}
			b.WriteString(style.Render(text))
		}
	}

	return a.styles.panel.Render(b.String())
}
