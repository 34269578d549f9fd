// SPDX-License-Identifier: MIT

// Package variable provides the bounded scalar every solver mutates.
//
// A Variable is a float64 with an optional closed interval [Low, High].
// Both mutation modes, relative (Step) and absolute (Set), share one
// boundary policy: a candidate strictly inside the interval is accepted
// as-is, a candidate at or beyond a bound is clamped to that bound.
// The invariant Low <= Value() <= High therefore holds after every
// mutation, including construction.
//
// A Vector is the guess vector of a solve: unknown name → Variable.
// Names() returns the names in lexicographic order; that order is the
// single deterministic column order used by Jacobians.
package variable
