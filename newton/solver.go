// SPDX-License-Identifier: MIT

package newton

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/nexsys/calculus"
	"github.com/katalvlaran/nexsys/expr"
	"github.com/katalvlaran/nexsys/matrix"
	"github.com/katalvlaran/nexsys/solution"
	"github.com/katalvlaran/nexsys/variable"
)

// ErrZeroDerivative is the Cause of a Failed univariate outcome whose
// derivative vanished under FailOnZeroDerivative.
var ErrZeroDerivative = errors.New("newton: zero derivative")

const (
	opUnivariate   = "Univariate"
	opMultivariate = "Multivariate"

	solverUnivariate   = "newton-univariate"
	solverMultivariate = "newton"
)

// Solver runs Newton-Raphson iterations over expressions evaluated by an
// expr.Evaluator. A Solver holds no per-solve state and may be reused.
type Solver struct {
	eval expr.Evaluator
	diff *calculus.Differentiator
	opts Options
}

// New returns a Solver over eval.
func New(eval expr.Evaluator, opts ...Option) *Solver {
	o := gatherOptions(opts...)

	return &Solver{
		eval: eval,
		diff: calculus.New(eval, calculus.WithStep(o.step)),
		opts: o,
	}
}

// Univariate solves equation for the unknown name starting at x. params
// binds every other name the equation uses.
//
// Implementation:
//   - r = |f(x)|; r < tolerance → Converged.
//   - d = f'(x) (one-sided, domain-aware); d == 0 → zero-derivative policy.
//   - x.Step(-f(x)/d); after maxIterations steps → Exhausted.
//
// Errors (returned, not wrapped in the Outcome):
//   - evaluation failures, wrapping expr.ErrEvaluation.
func (s *Solver) Univariate(
	ctx context.Context,
	equation, name string,
	x variable.Variable,
	params map[string]float64,
) (solution.Outcome[variable.Variable], error) {
	bindings := make(map[string]float64, len(params)+1)
	for k, v := range params {
		bindings[k] = v
	}
	f := func(v float64) (float64, error) {
		bindings[name] = v
		return s.eval.Evaluate(equation, bindings)
	}

	var (
		n         int
		fx, r, d  float64
		lastDelta float64
		err       error
	)
	for {
		if fx, err = f(x.Value()); err != nil {
			return solution.Outcome[variable.Variable]{}, fmt.Errorf("%s: %w", opUnivariate, err)
		}
		r = math.Abs(fx)
		if n > 0 {
			s.opts.observer.Notify(solution.Iteration{
				Solver: solverUnivariate, N: n, Residual: r, Step: math.Abs(lastDelta), Accepted: true,
			})
		}
		if r < s.opts.tolerance {
			return solution.Converge(x, r, n), nil
		}
		if n >= s.opts.maxIterations {
			return solution.Exhaust(x, r, n, nil), nil
		}
		if err = ctx.Err(); err != nil {
			return solution.Exhaust(x, r, n, err), nil
		}

		if d, err = s.diff.Derivative(f, x); err != nil {
			return solution.Outcome[variable.Variable]{}, fmt.Errorf("%s: %w", opUnivariate, err)
		}
		if d == 0 {
			if s.opts.zeroPolicy == FailOnZeroDerivative {
				return solution.Fail(x, r, n, fmt.Errorf("%s at %s = %g: %w", opUnivariate, name, x.Value(), ErrZeroDerivative)), nil
			}
			d = math.SmallestNonzeroFloat64
		}
		lastDelta = -fx / d
		x.Step(lastDelta)
		n++
	}
}

// Multivariate solves the square system equations starting from guess.
// guess is not modified; the Outcome carries the final vector.
//
// Implementation:
//   - Stage 0: |equations| must equal |guess| (ErrUnderOrOverConstrained).
//     A guess that already satisfies the tolerance converges in 0 steps.
//   - Stage 1: J = Jacobian(equations, guess); invert J in place.
//   - Stage 2: Δ = J⁻¹·f(guess); guess[name].Step(-Δ[name]) with names
//     taken from J's column labels.
//   - Stage 3: error = Σ|f_i(guess)|; < tolerance → Converged;
//     maxIterations reached → Exhausted with the error attached.
//
// Errors (returned):
//   - calculus.ErrUnderOrOverConstrained, evaluation failures.
//
// Outcomes:
//   - Failed with matrix.ErrSingular when J cannot be inverted.
//   - Exhausted with ctx.Err() when ctx is cancelled between steps.
func (s *Solver) Multivariate(
	ctx context.Context,
	equations []string,
	guess variable.Vector,
) (solution.Outcome[variable.Vector], error) {
	var zero solution.Outcome[variable.Vector]
	if len(equations) == 0 || len(equations) != len(guess) {
		return zero, fmt.Errorf("%s: %d equations, %d unknowns: %w",
			opMultivariate, len(equations), len(guess), calculus.ErrUnderOrOverConstrained)
	}
	guess = guess.Clone()

	fx, err := s.diff.Residuals(equations, guess.Values())
	if err != nil {
		return zero, fmt.Errorf("%s: %w", opMultivariate, err)
	}
	aggregate := sumAbs(fx)
	if aggregate < s.opts.tolerance {
		return solution.Converge(guess, aggregate, 0), nil
	}

	var invOpts []matrix.Option
	if s.opts.pivoting {
		invOpts = append(invOpts, matrix.WithPartialPivoting())
	}

	var (
		n     int
		j     *matrix.Dense
		delta []float64
	)
	for n = 1; ; n++ {
		if err = ctx.Err(); err != nil {
			return solution.Exhaust(guess, aggregate, n-1, err), nil
		}
		if j, err = s.diff.Jacobian(equations, guess); err != nil {
			return zero, fmt.Errorf("%s: %w", opMultivariate, err)
		}
		if err = j.Invert(invOpts...); err != nil {
			if errors.Is(err, matrix.ErrSingular) {
				return solution.Fail(guess, aggregate, n-1, err), nil
			}
			return zero, fmt.Errorf("%s: %w", opMultivariate, err)
		}
		if delta, err = matrix.MatVec(j, fx); err != nil {
			return zero, fmt.Errorf("%s: %w", opMultivariate, err)
		}
		for i, name := range j.Vars() {
			guess.Step(name, -delta[i])
		}

		if fx, err = s.diff.Residuals(equations, guess.Values()); err != nil {
			return zero, fmt.Errorf("%s: %w", opMultivariate, err)
		}
		aggregate = sumAbs(fx)
		s.opts.observer.Notify(solution.Iteration{
			Solver: solverMultivariate, N: n, Residual: aggregate, Step: maxAbs(delta), Accepted: true,
		})
		if aggregate < s.opts.tolerance {
			return solution.Converge(guess, aggregate, n), nil
		}
		if n >= s.opts.maxIterations {
			return solution.Exhaust(guess, aggregate, n, nil), nil
		}
	}
}

func sumAbs(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += math.Abs(x)
	}

	return s
}

func maxAbs(xs []float64) float64 {
	var m float64
	for _, x := range xs {
		m = math.Max(m, math.Abs(x))
	}

	return m
}
