// SPDX-License-Identifier: MIT

package grid

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
	"github.com/katalvlaran/matstep/matrix"
)

// pendingMinus is the only partial input a Cell keeps verbatim.
const pendingMinus = "-"

// Cell is one editor cell: unset, a finite value, or the pending "-" of a
// negative number still being typed. The zero value is unset.
type Cell struct {
	value   float64
	set     bool
	pending bool
}

// Unset returns an empty cell.
func Unset() Cell { return Cell{} }

// Value returns a cell holding v. Callers must pass a finite v; ParseCell and
// FromValues enforce that for user data.
func Value(v float64) Cell { return Cell{value: v, set: true} }

// Pending returns the transient "-" cell.
func Pending() Cell { return Cell{pending: true} }

// IsSet reports whether the cell holds a number.
func (c Cell) IsSet() bool { return c.set }

// IsPending reports whether the cell holds the lone "-".
func (c Cell) IsPending() bool { return c.pending }

// Float returns the numeric value and whether there is one.
func (c Cell) Float() (float64, bool) { return c.value, c.set }

// Normalized returns the value the engine sees: unset and pending read as 0.
func (c Cell) Normalized() float64 {
	if !c.set {
		return 0
	}
	return c.value
}

// Commit resolves a pending "-" to unset, as happens when the editor leaves
// the cell. Other cells are returned unchanged.
func (c Cell) Commit() Cell {
	if c.pending {
		return Unset()
	}
	return c
}

// String renders the cell as the editor shows it: "", "-" or the number.
func (c Cell) String() string {
	switch {
	case c.pending:
		return pendingMinus
	case c.set:
		return matrix.FormatValue(c.value)
	default:
		return ""
	}
}

// DefaultCacheSize bounds the number of compiled expressions a Parser keeps.
const DefaultCacheSize = 256

// Parser turns user text into cells, caching compiled expressions.
// The cache holds at most its size; the oldest program is evicted first.
// A Parser is safe for concurrent use.
type Parser struct {
	mu       sync.Mutex
	programs map[string]*exprvm.Program
	order    []string // insertion ring, len == cap once full
	next     int      // ring slot to overwrite next
}

// ParserOption configures a Parser.
type ParserOption func(*parserConfig)

type parserConfig struct {
	cacheSize int
}

// WithCacheSize bounds the program cache to n entries.
// Panics if n < 1.
func WithCacheSize(n int) ParserOption {
	if n < 1 {
		panic(fmt.Sprintf("grid: WithCacheSize(%d): size must be >= 1", n))
	}
	return func(c *parserConfig) { c.cacheSize = n }
}

// NewParser returns a Parser with an empty program cache of
// DefaultCacheSize entries unless WithCacheSize says otherwise.
func NewParser(opts ...ParserOption) *Parser {
	cfg := parserConfig{cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Parser{
		programs: make(map[string]*exprvm.Program, cfg.cacheSize),
		order:    make([]string, 0, cfg.cacheSize),
	}
}

var defaultParser = NewParser()

// ParseCell parses text with the package-level Parser.
func ParseCell(text string) (Cell, error) {
	return defaultParser.Parse(text)
}

// Parse converts text into a Cell.
//
//   - "" (after trimming) → unset.
//   - "-" → pending.
//   - a numeric literal → its value.
//   - anything else is evaluated as an arithmetic expression ("1/3", "2*(3+4)").
//
// Errors: ErrInvalidCell for syntax errors, non-numeric results, NaN or ±Inf.
func (p *Parser) Parse(text string) (Cell, error) {
	s := strings.TrimSpace(text)
	switch s {
	case "":
		return Unset(), nil
	case pendingMinus:
		return Pending(), nil
	}

	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return finiteCell(s, v)
	}

	program, err := p.compile(s)
	if err != nil {
		return Unset(), gridErrorf("ParseCell", fmt.Errorf("%q: %v: %w", s, err, ErrInvalidCell))
	}
	out, err := exprlang.Run(program, map[string]any{})
	if err != nil {
		return Unset(), gridErrorf("ParseCell", fmt.Errorf("%q: %v: %w", s, err, ErrInvalidCell))
	}
	v, ok := out.(float64)
	if !ok {
		return Unset(), gridErrorf("ParseCell", fmt.Errorf("%q: result %T is not a number: %w", s, out, ErrInvalidCell))
	}

	return finiteCell(s, v)
}

// compile returns the cached program for s, compiling it on first use.
func (p *Parser) compile(s string) (*exprvm.Program, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if program, ok := p.programs[s]; ok {
		return program, nil
	}
	program, err := exprlang.Compile(s,
		exprlang.Env(map[string]any{}),
		exprlang.AsFloat64(),
	)
	if err != nil {
		return nil, err
	}
	p.store(s, program)

	return program, nil
}

// store adds program under s, evicting the oldest entry when full.
// Callers hold p.mu.
func (p *Parser) store(s string, program *exprvm.Program) {
	if len(p.order) < cap(p.order) {
		p.order = append(p.order, s)
	} else {
		delete(p.programs, p.order[p.next])
		p.order[p.next] = s
		p.next = (p.next + 1) % len(p.order)
	}
	p.programs[s] = program
}

// Cached returns the number of compiled expressions held by p.
func (p *Parser) Cached() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.programs)
}

// finiteCell rejects NaN and ±Inf.
func finiteCell(s string, v float64) (Cell, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Unset(), gridErrorf("ParseCell", fmt.Errorf("%q is not finite: %w", s, ErrInvalidCell))
	}
	return Value(v), nil
}
