// SPDX-License-Identifier: MIT

package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/katalvlaran/matstep/grid"
)

// directionKeys maps navigation keys to grid directions.
var directionKeys = map[string]grid.Direction{
	"up": grid.Up, "k": grid.Up,
	"down": grid.Down, "j": grid.Down,
	"left": grid.Left, "h": grid.Left,
	"right": grid.Right, "l": grid.Right,
}

// startsNumber reports whether s begins a cell entry in edit mode.
func startsNumber(s string) bool {
	if len(s) != 1 {
		return false
	}
	c := s[0]
	return (c >= '0' && c <= '9') || c == '-' || c == '.'
}

func (a *App) handleEditKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := m.String()
	if d, ok := directionKeys[key]; ok {
		a.leaveCell()
		a.navs[a.active].Move(d)
		return a, nil
	}
	if startsNumber(key) {
		a.mode = ModeInput
		a.input = key
		a.applyInput()
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "tab":
		a.leaveCell()
		a.active = (a.active + 1) % a.store.Len()
	case "shift+tab":
		a.leaveCell()
		a.active = (a.active + a.store.Len() - 1) % a.store.Len()
	case "enter":
		f := a.Focus()
		if c, err := a.store.Cell(a.active, f.Row, f.Col); err == nil {
			a.input = c.String()
		}
		a.mode = ModeInput
	case "backspace", "delete":
		f := a.Focus()
		_ = a.store.SetCell(a.active, f.Row, f.Col, grid.Unset())
	case "a":
		a.addMatrix()
	case "x":
		a.removeMatrix()
	case "r":
		a.reset()
	case "s":
		a.leaveCell()
		a.picker.Reset()
		a.mode = ModePicker
	case "c", "=":
		a.calculate()
	case "p":
		a.openPlayer()
	case ":":
		a.command = ""
		a.mode = ModeCommand
	}

	return a, nil
}

// applyInput writes the typed text to the focused cell when it parses.
// A lone "-" is kept as pending; text that does not parse yet is only kept
// in the buffer until enter.
func (a *App) applyInput() {
	c, err := a.parser.Parse(a.input)
	if err != nil {
		return
	}
	f := a.Focus()
	_ = a.store.SetCell(a.active, f.Row, f.Col, c)
}

func (a *App) handleInputKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := m.String()
	switch m.Type {
	case tea.KeyEsc:
		a.input = ""
		a.mode = ModeEdit
		a.leaveCell()
		return a, nil
	case tea.KeyEnter, tea.KeyTab:
		return a, a.commitInput(grid.Direction(-1))
	case tea.KeyUp, tea.KeyDown, tea.KeyLeft, tea.KeyRight:
		return a, a.commitInput(directionKeys[key])
	case tea.KeyBackspace, tea.KeyCtrlH:
		if len(a.input) > 0 {
			a.input = a.input[:len(a.input)-1]
			a.applyInput()
		}
	case tea.KeyRunes:
		a.input += string(m.Runes)
		a.applyInput()
	}

	return a, nil
}

// commitInput parses the buffer into the focused cell and returns to edit
// mode, moving focus in d when d is a valid direction. Invalid text keeps
// the editor open with an error.
func (a *App) commitInput(d grid.Direction) tea.Cmd {
	c, err := a.parser.Parse(a.input)
	if err != nil {
		a.status = err.Error()
		return nil
	}
	f := a.Focus()
	if err = a.store.SetCell(a.active, f.Row, f.Col, c); err != nil {
		a.status = err.Error()
		return nil
	}
	a.input = ""
	a.mode = ModeEdit
	a.status = ""
	if d >= grid.Up && d <= grid.Left {
		a.leaveCell()
		a.navs[a.active].Move(d)
	}

	return nil
}

func (a *App) handlePickerKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := m.String()
	if d, ok := directionKeys[key]; ok {
		a.picker.Move(d)
		return a, nil
	}
	switch key {
	case "enter":
		rows, cols := a.picker.Selected()
		a.resize(rows, cols)
		a.picker.Reset()
		a.mode = ModeEdit
	case "esc", "q", "s":
		a.picker.Reset()
		a.mode = ModeEdit
	}

	return a, nil
}

func (a *App) handlePlayerKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "right", "l", "n", " ":
		a.player.Next()
	case "left", "h", "b":
		a.player.Prev()
	case "home", "g":
		a.player.First()
	case "end", "G":
		a.player.Last()
	case "esc", "q", "p":
		a.mode = ModeEdit
	}

	return a, nil
}

func (a *App) handleCommandKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.command = ""
		a.mode = ModeEdit
	case tea.KeyEnter:
		line := strings.TrimSpace(a.command)
		a.command = ""
		a.mode = ModeEdit
		return a, a.runCommand(line)
	case tea.KeyBackspace, tea.KeyCtrlH:
		if len(a.command) > 0 {
			a.command = a.command[:len(a.command)-1]
		}
	case tea.KeySpace:
		a.command += " "
	case tea.KeyRunes:
		a.command += string(m.Runes)
	}

	return a, nil
}
