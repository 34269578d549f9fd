// SPDX-License-Identifier: MIT

// Package ascent solves equation systems without a Jacobian by climbing the
// "correctness" of a guess, C = 1 / Σ|rᵢ|.
//
// Each iteration builds two candidate steps, each capped at a step budget:
// the finite-difference gradient of C, and the least-squares Gauss-Newton
// step that walks along the ridge where a residual changes sign (the kink
// of |rᵢ| stalls a pure gradient climb there). The better candidate is
// tried on a copy of the guess. A step that makes C worse (or leaves it
// unchanged without moving) is rolled back and the budget is divided by the
// decay factor, the golden ratio by default. The solver stops when the
// residual drops below tolerance (Converged), or Exhausted with a cause
// naming the stop: solution.ErrIterationLimit, ErrStepFloor, ErrStalled or
// the context error. It never reports Failed: the best guess is always
// returned.
//
// Unlike package newton, the system need not be square; every identifier in
// the equations that is not a builtin, a constant or a configured parameter
// is an unknown.
package ascent
