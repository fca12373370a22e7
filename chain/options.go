// SPDX-License-Identifier: MIT

// Package chain: functional configuration for Multiply.
//
// Design goals:
//   - Deterministic behavior: no global state.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package chain

import "fmt"

// DefaultStepLimit disables the trace-length guard.
const DefaultStepLimit = 0

// Option configures a Multiply call.
type Option func(*Options)

// Options holds the resolved configuration. Fields are unexported; build it
// with NewOptions or pass Option values to Multiply.
type Options struct {
	stepLimit int
	label     func(slot int) string
}

// NewOptions applies opts over the defaults.
func NewOptions(opts ...Option) Options {
	o := Options{stepLimit: DefaultStepLimit, label: SlotLabel}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

// StepLimit returns the configured limit (0 = unlimited).
func (o Options) StepLimit() int { return o.stepLimit }

// WithStepLimit rejects, before any arithmetic, chains whose trace would hold
// more than n Steps. n == 0 disables the guard.
// Panics on negative n.
func WithStepLimit(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("chain: WithStepLimit(%d): limit must be >= 0", n))
	}
	return func(o *Options) { o.stepLimit = n }
}

// WithLabels overrides how input slots are named in step descriptions.
// Panics on nil fn.
func WithLabels(fn func(slot int) string) Option {
	if fn == nil {
		panic("chain: WithLabels(nil)")
	}
	return func(o *Options) { o.label = fn }
}
