// SPDX-License-Identifier: MIT

package ascent

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/nexsys/calculus"
	"github.com/katalvlaran/nexsys/expr"
	"github.com/katalvlaran/nexsys/matrix"
	"github.com/katalvlaran/nexsys/solution"
	"github.com/katalvlaran/nexsys/variable"
)

const (
	opSolve    = "ascent"
	solverName = "ascent"
)

var (
	// ErrStepFloor is the Cause of an Exhausted outcome whose step budget
	// decayed below the floor without finding a better guess.
	ErrStepFloor = errors.New("ascent: step budget below floor")

	// ErrStalled is the Cause of an Exhausted outcome whose last accepted
	// step raised correctness by less than the minimum delta.
	ErrStalled = errors.New("ascent: improvement below minimum delta")
)

// Solver runs steepest correctness ascent. It holds no per-solve state.
type Solver struct {
	eval expr.Evaluator
	diff *calculus.Differentiator
	opts Options
}

// New returns a Solver over eval.
func New(eval expr.Evaluator, opts ...Option) *Solver {
	o := gatherOptions(opts...)
	eval = expr.WithConstants(eval, o.params)

	return &Solver{
		eval: eval,
		diff: calculus.New(eval, calculus.WithStep(o.step)),
		opts: o,
	}
}

// SolveText splits system on newlines and calls Solve.
func (s *Solver) SolveText(
	ctx context.Context,
	system string,
	bounds map[string]variable.Domain,
) (solution.Outcome[map[string]float64], error) {
	return s.Solve(ctx, expr.SplitSystem(system), bounds)
}

// Solve climbs the correctness of equations from the configured guess.
// bounds restricts unknowns to closed intervals; bounds for names that are
// not unknowns are ignored.
//
// Implementation:
//   - Stage 1: unknowns = identifiers of the system minus params, sorted;
//     start each at its configured guess (default 1.0), clamped into bounds.
//   - Stage 2: per iteration, build two candidate steps, both capped at the
//     budget: the gradient g = ∇C with ∂C/∂x = -(∂E/∂x)/E² and ∂E/∂x by
//     finite difference, and the ridge step d = -J⁺r (the least-squares
//     Gauss-Newton step, skipped when JJᵀ or JᵀJ is singular). The gradient
//     alone zig-zags across the ridge where some rᵢ changes sign; d follows it.
//   - Stage 3: keep the candidate with the lower E. Roll back and divide the
//     budget by the decay when C drops, or stays equal while the guess did
//     not move; otherwise accept.
//
// Errors (returned):
//   - evaluation failures, wrapping expr.ErrEvaluation;
//   - variable.ErrInvalidDomain for a malformed bound.
//
// Outcomes:
//   - Converged when Σ|rᵢ| < tolerance (including an exact zero).
//   - Exhausted with solution.ErrIterationLimit at the iteration limit,
//     ErrStepFloor when the budget decays below the floor, ErrStalled when an
//     accepted step gains less than the minimum delta, or ctx.Err() when
//     cancelled.
func (s *Solver) Solve(
	ctx context.Context,
	equations []string,
	bounds map[string]variable.Domain,
) (solution.Outcome[map[string]float64], error) {
	var zero solution.Outcome[map[string]float64]
	guess, err := s.initialGuess(equations, bounds)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", opSolve, err)
	}
	names := guess.Names()

	e, err := s.totalError(equations, guess)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", opSolve, err)
	}
	if e < s.opts.tolerance {
		return solution.Converge(guess.Values(), e, 0), nil
	}

	var (
		n                int
		budget           = s.opts.initialStep
		grad             = make([]float64, len(names))
		ridge            []float64
		trial, alt       variable.Vector
		trialErr, altErr float64
	)
	for n = 1; ; n++ {
		if n > s.opts.iterationLimit {
			return solution.Exhaust(guess.Values(), e, n-1, nil), nil
		}
		if err = ctx.Err(); err != nil {
			return solution.Exhaust(guess.Values(), e, n-1, err), nil
		}

		if err = s.gradient(equations, guess, names, e, grad); err != nil {
			return zero, fmt.Errorf("%s: %w", opSolve, err)
		}
		capLength(grad, budget)
		trial = stepped(guess, names, grad)
		if trialErr, err = s.totalError(equations, trial); err != nil {
			return zero, fmt.Errorf("%s: %w", opSolve, err)
		}

		if ridge, err = s.ridge(equations, guess, names); err != nil {
			return zero, fmt.Errorf("%s: %w", opSolve, err)
		}
		if ridge != nil {
			capLength(ridge, budget)
			alt = stepped(guess, names, ridge)
			if altErr, err = s.totalError(equations, alt); err != nil {
				return zero, fmt.Errorf("%s: %w", opSolve, err)
			}
			if altErr < trialErr {
				trial, trialErr = alt, altErr
			}
		}

		// Compare errors rather than correctness: C = 1/E is monotone in E
		// and E is never zero here.
		accepted := trialErr < e || (trialErr == e && moved(guess, trial, names))
		if !accepted {
			budget /= s.opts.decay
			s.notify(n, e, budget, false)
			if budget < s.opts.stepFloor {
				return solution.Exhaust(guess.Values(), e, n, ErrStepFloor), nil
			}
			continue
		}

		gain := correctness(trialErr) - correctness(e)
		guess, e = trial, trialErr
		s.notify(n, e, budget, true)
		if e < s.opts.tolerance {
			return solution.Converge(guess.Values(), e, n), nil
		}
		if s.opts.minDelta > 0 && gain < s.opts.minDelta {
			return solution.Exhaust(guess.Values(), e, n, ErrStalled), nil
		}
	}
}

// stepped returns a copy of guess moved by delta, clamped into each domain.
func stepped(guess variable.Vector, names []string, delta []float64) variable.Vector {
	out := guess.Clone()
	for i, name := range names {
		out.Step(name, delta[i])
	}

	return out
}

// ridge returns the minimum-norm least-squares step d solving J·d = -r at
// guess, or nil when the normal matrix is singular.
//
// Implementation:
//   - m ≤ n: y = (JJᵀ)⁻¹ r, d = -Jᵀ y.
//   - m > n: d = -(JᵀJ)⁻¹ Jᵀ r.
func (s *Solver) ridge(equations []string, guess variable.Vector, names []string) ([]float64, error) {
	r, err := s.diff.Residuals(equations, guess.Values())
	if err != nil {
		return nil, err
	}
	j, err := s.diff.Sensitivities(equations, guess)
	if err != nil {
		return nil, err
	}
	jt, err := matrix.Transpose(j)
	if err != nil {
		return nil, err
	}

	var d []float64
	if len(equations) <= len(names) {
		var normal, inv *matrix.Dense
		if normal, err = matrix.Mul(j, jt); err != nil {
			return nil, err
		}
		if inv, err = matrix.Inverse(normal, matrix.WithPartialPivoting()); err != nil {
			return singular(err)
		}
		var y []float64
		if y, err = matrix.MatVec(inv, r); err != nil {
			return nil, err
		}
		if d, err = matrix.MatVec(jt, y); err != nil {
			return nil, err
		}
	} else {
		var normal, pseudo *matrix.Dense
		if normal, err = matrix.Mul(jt, j); err != nil {
			return nil, err
		}
		if normal, err = matrix.Inverse(normal, matrix.WithPartialPivoting()); err != nil {
			return singular(err)
		}
		if pseudo, err = matrix.Mul(normal, jt); err != nil {
			return nil, err
		}
		if d, err = matrix.MatVec(pseudo, r); err != nil {
			return nil, err
		}
	}
	for i := range d {
		d[i] = -d[i]
	}

	return d, nil
}

// singular maps matrix.ErrSingular to "no ridge step" and passes anything
// else through.
func singular(err error) ([]float64, error) {
	if errors.Is(err, matrix.ErrSingular) {
		return nil, nil
	}

	return nil, err
}

func (s *Solver) notify(n int, residual, budget float64, accepted bool) {
	s.opts.observer.Notify(solution.Iteration{
		Solver: solverName, N: n, Residual: residual, Step: budget, Accepted: accepted,
	})
}

// initialGuess builds the starting vector from the system's unknowns.
func (s *Solver) initialGuess(equations []string, bounds map[string]variable.Domain) (variable.Vector, error) {
	idents, err := expr.Identifiers(equations...)
	if err != nil {
		return nil, err
	}
	guess := make(variable.Vector, len(idents))
	for _, name := range idents {
		if _, isParam := s.opts.params[name]; isParam {
			continue
		}
		x, ok := s.opts.guess[name]
		if !ok {
			x = DefaultGuess
		}
		v := variable.New(x)
		if d, bounded := bounds[name]; bounded {
			if v, err = v.WithDomain(d); err != nil {
				return nil, fmt.Errorf("bounds for %s: %w", name, err)
			}
		}
		guess[name] = v
	}

	return guess, nil
}

// totalError returns E = Σ|rᵢ| at guess.
func (s *Solver) totalError(equations []string, guess variable.Vector) (float64, error) {
	rs, err := s.diff.Residuals(equations, guess.Values())
	if err != nil {
		return 0, err
	}
	var e float64
	for _, r := range rs {
		e += math.Abs(r)
	}

	return e, nil
}

// gradient fills out with ∂C/∂x for every name, where C = 1/E and e = E(guess).
func (s *Solver) gradient(equations []string, guess variable.Vector, names []string, e float64, out []float64) error {
	bindings := guess.Values()
	for i, name := range names {
		f := func(x float64) (float64, error) {
			bindings[name] = x
			rs, err := s.diff.Residuals(equations, bindings)
			if err != nil {
				return 0, err
			}
			var sum float64
			for _, r := range rs {
				sum += math.Abs(r)
			}
			return sum, nil
		}
		dE, err := s.diff.Derivative(f, guess[name])
		if err != nil {
			return err
		}
		bindings[name] = guess[name].Value()
		out[i] = -dE / (e * e)
	}

	return nil
}

// capLength scales v down to Euclidean length budget when it is longer.
// A non-finite component zeroes the vector.
func capLength(v []float64, budget float64) {
	var sq float64
	for _, x := range v {
		sq += x * x
	}
	length := math.Sqrt(sq)
	if math.IsNaN(length) || math.IsInf(length, 0) {
		for i := range v {
			v[i] = 0
		}
		return
	}
	if length > budget {
		k := budget / length
		for i := range v {
			v[i] *= k
		}
	}
}

func moved(a, b variable.Vector, names []string) bool {
	for _, name := range names {
		if a[name].Value() != b[name].Value() {
			return true
		}
	}

	return false
}

func correctness(e float64) float64 { return 1 / e }

// Unknowns returns the sorted names Solve would treat as unknowns.
func (s *Solver) Unknowns(equations []string) ([]string, error) {
	idents, err := expr.Identifiers(equations...)
	if err != nil {
		return nil, err
	}
	out := idents[:0]
	for _, name := range idents {
		if _, isParam := s.opts.params[name]; !isParam {
			out = append(out, name)
		}
	}
	sort.Strings(out)

	return out, nil
}
