// SPDX-License-Identifier: MIT

package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// command names accepted on the ":" line.
const (
	cmdCalc   = "calc"
	cmdAdd    = "add"
	cmdRemove = "remove"
	cmdReset  = "reset"
	cmdResize = "resize"
	cmdPlay   = "play"
	cmdQuit   = "quit"
)

// commandNames lists every command in help order.
var commandNames = []string{cmdCalc, cmdAdd, cmdRemove, cmdReset, cmdResize, cmdPlay, cmdQuit}

// maxSuggestDistance bounds how far a typo may be from a command to be suggested.
const maxSuggestDistance = 3

// errUnknownCommand is returned by parseCommand for names not in commandNames.
var errUnknownCommand = errors.New("unknown command")

// command is one parsed ":" line.
type command struct {
	name       string
	rows, cols int // resize only
}

// parseCommand splits line into a command and validates its arguments.
// Unknown names produce an error naming the closest known command.
func parseCommand(line string) (command, error) {
	fields := strings.Fields(strings.TrimPrefix(strings.TrimSpace(line), ":"))
	if len(fields) == 0 {
		return command{}, fmt.Errorf("empty command")
	}
	name := strings.ToLower(fields[0])
	switch name {
	case cmdCalc, cmdAdd, cmdRemove, cmdReset, cmdPlay, cmdQuit:
		return command{name: name}, nil
	case cmdResize:
		if len(fields) != 2 {
			return command{}, fmt.Errorf("usage: :resize ROWSxCOLS")
		}
		var c command
		if _, err := fmt.Sscanf(strings.ToLower(fields[1]), "%dx%d", &c.rows, &c.cols); err != nil {
			return command{}, fmt.Errorf("usage: :resize ROWSxCOLS")
		}
		c.name = cmdResize
		return c, nil
	}

	if s := suggest(name); s != "" {
		return command{}, fmt.Errorf("%w %q, did you mean %q?", errUnknownCommand, name, s)
	}
	return command{}, fmt.Errorf("%w %q", errUnknownCommand, name)
}

// suggest returns the command closest to name by edit distance, or "" when
// nothing is within maxSuggestDistance.
func suggest(name string) string {
	best, bestDist := "", maxSuggestDistance+1
	for _, c := range commandNames {
		if d := levenshtein.ComputeDistance(name, c); d < bestDist {
			best, bestDist = c, d
		}
	}

	return best
}
