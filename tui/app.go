// SPDX-License-Identifier: MIT

// Package tui is the terminal front end: a grid editor for the matrix chain,
// a size picker, and a step player over the last calculation.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/katalvlaran/matstep/chain"
	"github.com/katalvlaran/matstep/config"
	"github.com/katalvlaran/matstep/grid"
	"github.com/katalvlaran/matstep/logging"
	"github.com/katalvlaran/matstep/player"
)

// Mode is the current input mode of the App.
type Mode string

const (
	ModeEdit    Mode = "edit"
	ModeInput   Mode = "input"
	ModePicker  Mode = "picker"
	ModePlayer  Mode = "player"
	ModeCommand Mode = "command"
)

// App ties together the store, the engine and the player.
type App struct {
	cfg    config.Config
	log    *slog.Logger
	styles styles

	store  *grid.Chain
	parser *grid.Parser
	navs   []*grid.Navigator // one per matrix
	active int
	picker *grid.SizePicker

	mode    Mode
	input   string // cell being typed
	command string // ":" line being typed

	trace  *chain.Trace
	player *player.Player

	status string
	alert  string // blocking message; the next key dismisses it
}

// New builds an App with two empty matrices sized from cfg.
// A nil logger discards.
func New(cfg config.Config, log *slog.Logger) *App {
	if log == nil {
		log = logging.Discard()
	}
	a := &App{
		cfg:    cfg,
		log:    log,
		styles: newStyles(cfg.UI),
		store: grid.NewChain(
			grid.WithMaxSize(cfg.Editor.MaxSize),
			grid.WithDefaultSize(cfg.Editor.DefaultRows, cfg.Editor.DefaultCols),
		),
		parser: grid.NewParser(),
		picker: grid.NewSizePicker(cfg.Editor.MaxSize),
		mode:   ModeEdit,
	}
	a.syncNavigators()

	return a
}

// Run starts the program on the alternate screen and blocks until it quits.
func Run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	p := tea.NewProgram(New(cfg, log), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()

	return err
}

// Mode returns the current input mode.
func (a *App) Mode() Mode { return a.mode }

// Status returns the last status line.
func (a *App) Status() string { return a.status }

// Alert returns the pending blocking message, if any.
func (a *App) Alert() string { return a.alert }

// Trace returns the last successful calculation, or nil.
func (a *App) Trace() *chain.Trace { return a.trace }

// Player returns the player over Trace(), or nil.
func (a *App) Player() *player.Player { return a.player }

// Store returns the matrix chain being edited.
func (a *App) Store() *grid.Chain { return a.store }

// Active returns the index of the focused matrix.
func (a *App) Active() int { return a.active }

// Focus returns the focused cell of the active matrix.
func (a *App) Focus() chain.Coord { return a.navs[a.active].Focus() }

// Input returns the cell text being typed.
func (a *App) Input() string { return a.input }

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if m.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.alert != "" {
			a.alert = ""
			return a, nil
		}
		switch a.mode {
		case ModeInput:
			return a.handleInputKey(m)
		case ModePicker:
			return a.handlePickerKey(m)
		case ModePlayer:
			return a.handlePlayerKey(m)
		case ModeCommand:
			return a.handleCommandKey(m)
		default:
			return a.handleEditKey(m)
		}
	}

	return a, nil
}

// syncNavigators keeps one Navigator per matrix with matching bounds.
func (a *App) syncNavigators() {
	n := a.store.Len()
	if len(a.navs) > n {
		a.navs = a.navs[:n]
	}
	for i := 0; i < n; i++ {
		g, err := a.store.At(i)
		if err != nil {
			continue
		}
		if i < len(a.navs) {
			a.navs[i].SetBounds(g.Rows(), g.Cols())
			continue
		}
		a.navs = append(a.navs, grid.NewNavigator(g.Rows(), g.Cols(), a.cfg.Editor.ViewportSize))
	}
	if a.active >= n {
		a.active = n - 1
	}
}

// leaveCell resolves a pending "-" once focus moves on.
func (a *App) leaveCell() {
	a.store.Commit()
}

// calculate runs the engine over the current store. Failures keep the prior
// trace and raise a blocking alert.
func (a *App) calculate() {
	a.leaveCell()
	tr, err := chain.Multiply(a.store.Normalize(), chain.WithStepLimit(a.cfg.Engine.StepLimit))
	if err != nil {
		var dm *chain.DimensionMismatchError
		if errors.As(err, &dm) {
			a.log.Warn("dimension mismatch", "left", dm.Left, "right", dm.Right,
				"left_cols", dm.LeftCols, "right_rows", dm.RightRows)
		} else {
			a.log.Error("calculation failed", "err", err)
		}
		a.alert = err.Error()
		return
	}

	a.trace = tr
	a.player = player.New(tr)
	a.status = fmt.Sprintf("Calculated %d matrices in %d steps", tr.NumInputs(), tr.Len())
	a.log.Info("calculated", "id", tr.ID(), "matrices", tr.NumInputs(), "steps", tr.Len())
	if a.log.Enabled(context.Background(), logging.LevelTrace) {
		for i, s := range tr.Steps() {
			a.log.Log(context.Background(), logging.LevelTrace, "step", "index", i, "desc", s.Description())
		}
	}
}

// addMatrix appends an empty matrix and focuses it.
func (a *App) addMatrix() {
	a.leaveCell()
	a.store.Append()
	a.syncNavigators()
	a.active = a.store.Len() - 1
	a.status = fmt.Sprintf("Added matrix %s", chain.SlotLabel(a.active))
	a.log.Debug("matrix added", "count", a.store.Len())
}

// removeMatrix drops the last matrix, refusing below two.
func (a *App) removeMatrix() {
	a.leaveCell()
	if err := a.store.RemoveLast(); err != nil {
		if errors.Is(err, grid.ErrMinimumChain) {
			a.status = "At least two matrices are required"
			return
		}
		a.status = err.Error()
		return
	}
	a.syncNavigators()
	a.status = fmt.Sprintf("Removed matrix %s", chain.SlotLabel(a.store.Len()))
	a.log.Debug("matrix removed", "count", a.store.Len())
}

// reset restores two empty matrices and forgets the calculation.
func (a *App) reset() {
	a.store.Reset()
	a.navs = nil
	a.active = 0
	a.syncNavigators()
	a.trace, a.player = nil, nil
	a.status = "Reset"
	a.log.Debug("store reset")
}

// resize gives the active matrix a fresh rows×cols shape.
func (a *App) resize(rows, cols int) {
	if err := a.store.Resize(a.active, rows, cols); err != nil {
		a.status = err.Error()
		return
	}
	a.syncNavigators()
	a.navs[a.active].SetFocus(0, 0)
	a.status = fmt.Sprintf("Matrix %s is now %d×%d", chain.SlotLabel(a.active), rows, cols)
	a.log.Debug("matrix resized", "slot", a.active, "rows", rows, "cols", cols)
}

// openPlayer switches to the player when there is something to play.
func (a *App) openPlayer() {
	if a.player == nil || a.player.Empty() {
		a.status = "Nothing to play yet: calculate first"
		return
	}
	a.mode = ModePlayer
}

// runCommand executes a parsed ":" line.
func (a *App) runCommand(line string) tea.Cmd {
	c, err := parseCommand(line)
	if err != nil {
		a.status = err.Error()
		return nil
	}
	switch c.name {
	case cmdCalc:
		a.calculate()
	case cmdAdd:
		a.addMatrix()
	case cmdRemove:
		a.removeMatrix()
	case cmdReset:
		a.reset()
	case cmdResize:
		a.resize(c.rows, c.cols)
	case cmdPlay:
		a.openPlayer()
	case cmdQuit:
		return tea.Quit
	}

	return nil
}
