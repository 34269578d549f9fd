// SPDX-License-Identifier: MIT

package calculus

import (
	"fmt"
	"math"
)

// DefaultStep is the finite-difference step h.
const DefaultStep = 1e-7

// Option configures a Differentiator.
type Option func(*Options)

// Options holds the effective Differentiator configuration.
type Options struct {
	step float64 // DefaultStep
}

// WithStep sets the finite-difference step.
// Panics if h is not a positive finite number.
func WithStep(h float64) Option {
	if !(h > 0) || math.IsInf(h, 0) {
		panic(fmt.Sprintf("calculus: WithStep(%g): step must be positive and finite", h))
	}

	return func(o *Options) { o.step = h }
}

func gatherOptions(opts ...Option) Options {
	o := Options{step: DefaultStep}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
