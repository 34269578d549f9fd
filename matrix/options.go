// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the inversion kernel.
//
// Design goals:
//   - Deterministic behavior: no global state.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: options carry no invalid states.
package matrix

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultPartialPivoting keeps Gauss-Jordan free of row reordering:
	// any exact-zero pivot fails with ErrSingular.
	DefaultPartialPivoting = false
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	partialPivoting bool // DefaultPartialPivoting
}

// WithPartialPivoting enables row swaps on the largest |pivot| candidate in
// the current column. The exact-zero contract is kept: if every candidate
// is zero the kernel still returns ErrSingular.
//
// Complexity:
//   - Adds O(n) comparisons per column; total remains O(n³).
func WithPartialPivoting() Option {
	return func(o *Options) { o.partialPivoting = true }
}

// WithoutPivoting restores the default naive elimination order.
func WithoutPivoting() Option {
	return func(o *Options) { o.partialPivoting = false }
}

// defaultOptions returns the zero-surprise configuration.
func defaultOptions() Options {
	return Options{partialPivoting: DefaultPartialPivoting}
}

// gatherOptions folds setters over the defaults. nil setters are skipped.
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
