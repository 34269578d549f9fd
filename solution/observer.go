// SPDX-License-Identifier: MIT

package solution

import (
	"context"
	"log/slog"
)

// Iteration describes one solver step.
type Iteration struct {
	Solver   string  // "newton", "newton-univariate" or "ascent"
	N        int     // 1-based iteration number
	Residual float64 // aggregate error after the step
	Step     float64 // step magnitude (Newton: max |Δ|; ascent: current budget)
	Accepted bool    // false when ascent rejected and rolled back the step
}

// Observer receives every Iteration. Observers run synchronously on the
// solving goroutine and must not retain the solver's state.
type Observer func(Iteration)

// Notify calls o when it is non-nil.
func (o Observer) Notify(it Iteration) {
	if o != nil {
		o(it)
	}
}

// Chain returns an Observer that calls each non-nil observer in order.
func Chain(observers ...Observer) Observer {
	var live []Observer
	for _, o := range observers {
		if o != nil {
			live = append(live, o)
		}
	}
	if len(live) == 0 {
		return nil
	}

	return func(it Iteration) {
		for _, o := range live {
			o(it)
		}
	}
}

// LogObserver writes each Iteration as a debug record on logger
// (slog.Default() when nil).
func LogObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}

	return func(it Iteration) {
		logger.LogAttrs(context.Background(), slog.LevelDebug, "iteration",
			slog.String("solver", it.Solver),
			slog.Int("n", it.N),
			slog.Float64("residual", it.Residual),
			slog.Float64("step", it.Step),
			slog.Bool("accepted", it.Accepted),
		)
	}
}
