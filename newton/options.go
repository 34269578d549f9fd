// SPDX-License-Identifier: MIT

package newton

import (
	"fmt"
	"math"

	"github.com/katalvlaran/nexsys/calculus"
	"github.com/katalvlaran/nexsys/solution"
)

const (
	// DefaultTolerance bounds the aggregate absolute residual at convergence.
	DefaultTolerance = 1e-3
	// DefaultMaxIterations caps the number of Newton steps.
	DefaultMaxIterations = 100
)

// ZeroDerivativePolicy decides what a univariate step does when f'(x) == 0.
type ZeroDerivativePolicy int

const (
	// FailOnZeroDerivative stops with a Failed outcome (ErrZeroDerivative).
	FailOnZeroDerivative ZeroDerivativePolicy = iota
	// NudgeZeroDerivative replaces f'(x) with math.SmallestNonzeroFloat64
	// and takes the resulting (very large, possibly clamped) step.
	NudgeZeroDerivative
)

// Option configures a Solver.
type Option func(*Options)

// Options is the effective Solver configuration.
type Options struct {
	tolerance     float64
	maxIterations int
	step          float64
	pivoting      bool
	zeroPolicy    ZeroDerivativePolicy
	observer      solution.Observer
}

// WithTolerance sets the convergence threshold. Panics unless tol > 0.
func WithTolerance(tol float64) Option {
	if !(tol > 0) || math.IsInf(tol, 0) {
		panic(fmt.Sprintf("newton: WithTolerance(%g): tolerance must be positive and finite", tol))
	}

	return func(o *Options) { o.tolerance = tol }
}

// WithMaxIterations caps the number of steps. Panics unless n >= 1.
func WithMaxIterations(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("newton: WithMaxIterations(%d): need at least one iteration", n))
	}

	return func(o *Options) { o.maxIterations = n }
}

// WithStep sets the finite-difference step (see calculus.WithStep).
func WithStep(h float64) Option {
	calculus.WithStep(h) // validates
	return func(o *Options) { o.step = h }
}

// WithPartialPivoting lets the Jacobian inversion swap rows.
func WithPartialPivoting() Option {
	return func(o *Options) { o.pivoting = true }
}

// WithZeroDerivativePolicy selects the univariate zero-derivative behaviour.
func WithZeroDerivativePolicy(p ZeroDerivativePolicy) Option {
	return func(o *Options) { o.zeroPolicy = p }
}

// WithObserver installs a per-iteration callback.
func WithObserver(obs solution.Observer) Option {
	return func(o *Options) { o.observer = obs }
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		tolerance:     DefaultTolerance,
		maxIterations: DefaultMaxIterations,
		step:          calculus.DefaultStep,
		zeroPolicy:    FailOnZeroDerivative,
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
