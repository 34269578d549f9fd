// SPDX-License-Identifier: MIT

// Package solution holds the result vocabulary shared by every solver:
// the tagged Outcome, its Status, and the per-iteration Observer hook.
//
// A solver returns (Outcome[T], error). The error is reserved for problems
// with the input (evaluation failures, a non-square system); numerical
// verdicts travel inside the Outcome:
//
//	Converged  residual fell below tolerance; Cause is nil
//	Exhausted  stopped without converging; Cause is ErrIterationLimit, a
//	           solver-specific stop (ascent.ErrStepFloor, ascent.ErrStalled)
//	           or ctx.Err()
//	Failed     cannot continue; Cause is matrix.ErrSingular or a zero derivative
package solution
