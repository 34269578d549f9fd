// SPDX-License-Identifier: MIT

package variable

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidDomain is returned when a domain has Low > High or a non-finite bound.
var ErrInvalidDomain = errors.New("variable: invalid domain")

// Domain is a closed interval [Low, High].
type Domain struct {
	Low  float64
	High float64
}

// Validate reports ErrInvalidDomain for NaN/Inf bounds or Low > High.
func (d Domain) Validate() error {
	if math.IsNaN(d.Low) || math.IsNaN(d.High) || math.IsInf(d.Low, 0) || math.IsInf(d.High, 0) {
		return fmt.Errorf("[%g, %g]: %w", d.Low, d.High, ErrInvalidDomain)
	}
	if d.Low > d.High {
		return fmt.Errorf("[%g, %g]: %w", d.Low, d.High, ErrInvalidDomain)
	}

	return nil
}

// Contains reports whether Low <= x <= High.
func (d Domain) Contains(x float64) bool {
	return d.Low <= x && x <= d.High
}

// clamp applies the boundary policy to a candidate value.
// Strictly inside → accepted; at/beyond a bound → that bound.
func (d Domain) clamp(candidate float64) float64 {
	switch {
	case d.Low < candidate && candidate < d.High:
		return candidate
	case candidate <= d.Low:
		return d.Low
	default:
		return d.High
	}
}

// String implements fmt.Stringer.
func (d Domain) String() string {
	return fmt.Sprintf("[%g, %g]", d.Low, d.High)
}

// Variable is a float64 with an optional closed domain.
// The zero value is an unbounded variable equal to 0.
type Variable struct {
	value   float64
	domain  Domain
	bounded bool
}

// New returns an unbounded Variable.
func New(value float64) Variable {
	return Variable{value: value}
}

// NewBounded returns a Variable restricted to [low, high].
// An initial value outside the domain is clamped.
func NewBounded(value, low, high float64) (Variable, error) {
	d := Domain{Low: low, High: high}
	if err := d.Validate(); err != nil {
		return Variable{}, err
	}
	v := Variable{domain: d, bounded: true, value: low}
	v.Set(value)

	return v, nil
}

// WithDomain returns a copy of v restricted to d (value clamped).
func (v Variable) WithDomain(d Domain) (Variable, error) {
	return NewBounded(v.value, d.Low, d.High)
}

// Value returns the current value.
func (v Variable) Value() float64 { return v.value }

// Domain returns the domain and whether one is set.
func (v Variable) Domain() (Domain, bool) { return v.domain, v.bounded }

// Bounded reports whether a domain is set.
func (v Variable) Bounded() bool { return v.bounded }

// Contains reports whether x is admissible for v.
func (v Variable) Contains(x float64) bool {
	return !v.bounded || v.domain.Contains(x)
}

// Step moves the value by delta under the boundary policy.
func (v *Variable) Step(delta float64) {
	v.Set(v.value + delta)
}

// Set assigns x under the boundary policy.
// A NaN candidate leaves a bounded variable unchanged.
func (v *Variable) Set(x float64) {
	if !v.bounded {
		v.value = x
		return
	}
	if math.IsNaN(x) {
		return
	}
	v.value = v.domain.clamp(x)
}

// String implements fmt.Stringer.
func (v Variable) String() string {
	if v.bounded {
		return fmt.Sprintf("%g on %s", v.value, v.domain)
	}

	return fmt.Sprintf("%g", v.value)
}
