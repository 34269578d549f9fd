// SPDX-License-Identifier: MIT

package ascent

import (
	"fmt"
	"math"

	"github.com/katalvlaran/nexsys/calculus"
	"github.com/katalvlaran/nexsys/solution"
)

// Defaults.
const (
	DefaultIterationLimit = 10000
	DefaultTolerance      = 1e-6
	DefaultMinDelta       = 0.0 // disabled
	DefaultInitialStep    = 100.0
	DefaultStepFloor      = 1e-12
	DefaultGuess          = 1.0
)

// Phi is the golden ratio, the default budget decay divisor.
var Phi = (1 + math.Sqrt(5)) / 2

// Option configures a Solver.
type Option func(*Options)

// Options is the effective Solver configuration.
type Options struct {
	iterationLimit int
	tolerance      float64
	minDelta       float64
	initialStep    float64
	stepFloor      float64
	decay          float64
	step           float64
	guess          map[string]float64
	params         map[string]float64
	observer       solution.Observer
}

func positive(name string, v float64) {
	if !(v > 0) || math.IsInf(v, 0) {
		panic(fmt.Sprintf("ascent: %s(%g): value must be positive and finite", name, v))
	}
}

// WithIterationLimit caps the number of iterations, accepted or not.
func WithIterationLimit(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("ascent: WithIterationLimit(%d): need at least one iteration", n))
	}

	return func(o *Options) { o.iterationLimit = n }
}

// WithTolerance sets the residual below which the guess counts as solved.
func WithTolerance(tol float64) Option {
	positive("WithTolerance", tol)
	return func(o *Options) { o.tolerance = tol }
}

// WithMinDelta stops the solve once an accepted step raises correctness by
// less than d. Zero disables the check.
func WithMinDelta(d float64) Option {
	if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		panic(fmt.Sprintf("ascent: WithMinDelta(%g): value must be finite and >= 0", d))
	}

	return func(o *Options) { o.minDelta = d }
}

// WithInitialStep sets the starting step budget.
func WithInitialStep(b float64) Option {
	positive("WithInitialStep", b)
	return func(o *Options) { o.initialStep = b }
}

// WithStepFloor sets the budget below which the solve gives up.
func WithStepFloor(f float64) Option {
	positive("WithStepFloor", f)
	return func(o *Options) { o.stepFloor = f }
}

// WithDecay sets the divisor applied to the budget after a rejected step.
// Panics unless factor > 1.
func WithDecay(factor float64) Option {
	if !(factor > 1) || math.IsInf(factor, 0) {
		panic(fmt.Sprintf("ascent: WithDecay(%g): factor must be > 1", factor))
	}

	return func(o *Options) { o.decay = factor }
}

// WithStep sets the finite-difference step (see calculus.WithStep).
func WithStep(h float64) Option {
	calculus.WithStep(h)
	return func(o *Options) { o.step = h }
}

// WithGuess sets starting values; unknowns not listed start at DefaultGuess.
func WithGuess(values map[string]float64) Option {
	cp := make(map[string]float64, len(values))
	for k, v := range values {
		cp[k] = v
	}

	return func(o *Options) { o.guess = cp }
}

// WithParams binds fixed named values. Parameters are never unknowns.
func WithParams(params map[string]float64) Option {
	cp := make(map[string]float64, len(params))
	for k, v := range params {
		cp[k] = v
	}

	return func(o *Options) { o.params = cp }
}

// WithObserver installs a per-iteration callback.
func WithObserver(obs solution.Observer) Option {
	return func(o *Options) { o.observer = obs }
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		iterationLimit: DefaultIterationLimit,
		tolerance:      DefaultTolerance,
		minDelta:       DefaultMinDelta,
		initialStep:    DefaultInitialStep,
		stepFloor:      DefaultStepFloor,
		decay:          Phi,
		step:           calculus.DefaultStep,
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
