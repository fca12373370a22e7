// SPDX-License-Identifier: MIT

// Package player replays a chain.Trace one Step at a time.
//
// A Player owns a single cursor clamped to [0, Len()-1]: Next and Prev never
// wrap, and every Frame is built from the immutable Step under the cursor, so
// replaying forwards or backwards always shows the same state.
package player

import (
	"fmt"

	"github.com/katalvlaran/matstep/chain"
)

// Player is a cursor over a Trace. The zero value is an empty player.
type Player struct {
	trace *chain.Trace
	pos   int
}

// New returns a Player positioned on the first Step of t.
// A nil or empty trace yields an empty Player.
func New(t *chain.Trace) *Player {
	return &Player{trace: t}
}

// Len returns the number of Steps.
func (p *Player) Len() int { return p.trace.Len() }

// Empty reports whether there is nothing to play.
func (p *Player) Empty() bool { return p.Len() == 0 }

// Index returns the zero-based cursor.
func (p *Player) Index() int { return p.pos }

// AtStart reports whether the cursor is on the first Step.
func (p *Player) AtStart() bool { return p.pos == 0 }

// AtEnd reports whether the cursor is on the last Step.
func (p *Player) AtEnd() bool { return p.pos >= p.Len()-1 }

// Next advances one Step; at the end it stays put. Reports whether it moved.
func (p *Player) Next() bool { return p.Seek(p.pos + 1) }

// Prev goes back one Step; at the start it stays put. Reports whether it moved.
func (p *Player) Prev() bool { return p.Seek(p.pos - 1) }

// First jumps to the first Step.
func (p *Player) First() bool { return p.Seek(0) }

// Last jumps to the final Step.
func (p *Player) Last() bool { return p.Seek(p.Len() - 1) }

// Seek moves the cursor to i, clamped to [0, Len()-1]. Reports whether it moved.
func (p *Player) Seek(i int) bool {
	if p.Empty() {
		return false
	}
	i = max(0, min(i, p.Len()-1))
	moved := i != p.pos
	p.pos = i

	return moved
}

// Current returns the Step under the cursor; ok is false for an empty player.
func (p *Player) Current() (chain.Step, bool) {
	if p.Empty() {
		return chain.Step{}, false
	}
	s, err := p.trace.Step(p.pos)
	if err != nil {
		return chain.Step{}, false
	}

	return s, true
}

// Caption returns "Step x of n" for the cursor, or "" for an empty player.
func (p *Player) Caption() string {
	if p.Empty() {
		return ""
	}
	return fmt.Sprintf("Step %d of %d", p.pos+1, p.Len())
}
