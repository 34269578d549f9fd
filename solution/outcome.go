// SPDX-License-Identifier: MIT

package solution

import (
	"errors"
	"fmt"
)

// ErrIterationLimit is the Cause of an Exhausted outcome that ran out of
// iterations.
var ErrIterationLimit = errors.New("solution: iteration limit reached")

// Status tags an Outcome.
type Status int

const (
	// Converged means the residual is below tolerance.
	Converged Status = iota
	// Exhausted means the solver stopped before converging.
	Exhausted
	// Failed means the solver hit a numerical dead end.
	Failed
)

var statusNames = [...]string{
	Converged: "converged",
	Exhausted: "exhausted",
	Failed:    "failed",
}

// String implements fmt.Stringer.
func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}

	return statusNames[s]
}

// MarshalText renders the status name, so YAML and JSON show "converged".
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Outcome is the result of a solve.
//
// Value is the best estimate reached in every status: the solution when
// Converged, the last iterate when Exhausted, the iterate at which the
// solver stopped when Failed. Residual is the aggregate error at Value.
type Outcome[T any] struct {
	Status     Status
	Value      T
	Residual   float64
	Iterations int
	Cause      error
}

// Converge builds a Converged outcome.
func Converge[T any](value T, residual float64, iterations int) Outcome[T] {
	return Outcome[T]{Status: Converged, Value: value, Residual: residual, Iterations: iterations}
}

// Exhaust builds an Exhausted outcome. A nil cause means ErrIterationLimit.
func Exhaust[T any](value T, residual float64, iterations int, cause error) Outcome[T] {
	if cause == nil {
		cause = ErrIterationLimit
	}

	return Outcome[T]{Status: Exhausted, Value: value, Residual: residual, Iterations: iterations, Cause: cause}
}

// Fail builds a Failed outcome.
func Fail[T any](value T, residual float64, iterations int, cause error) Outcome[T] {
	return Outcome[T]{Status: Failed, Value: value, Residual: residual, Iterations: iterations, Cause: cause}
}

// Converged reports o.Status == Converged.
func (o Outcome[T]) Converged() bool { return o.Status == Converged }

// Err returns nil for a Converged outcome and otherwise an error that
// wraps Cause, so errors.Is(o.Err(), matrix.ErrSingular) works.
func (o Outcome[T]) Err() error {
	if o.Status == Converged {
		return nil
	}
	cause := o.Cause
	if cause == nil {
		cause = ErrIterationLimit
	}

	return fmt.Errorf("%s after %d iterations (residual %g): %w", o.Status, o.Iterations, o.Residual, cause)
}
