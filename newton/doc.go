// SPDX-License-Identifier: MIT

// Package newton implements Newton-Raphson iteration for one equation in
// one unknown (Univariate) and for square systems (Multivariate).
//
// Derivatives come from package calculus (finite differences) and the
// multivariate step solves J·Δ = f(x) by inverting the Jacobian with
// package matrix. A singular Jacobian ends the solve as a Failed outcome
// carrying matrix.ErrSingular; a zero univariate derivative either fails
// with ErrZeroDerivative (default) or is nudged to the smallest positive
// float64, depending on the configured ZeroDerivativePolicy.
//
// Defaults: tolerance 1e-3, at most 100 iterations, step calculus.DefaultStep,
// no pivoting.
package newton
