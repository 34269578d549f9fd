// SPDX-License-Identifier: MIT

package problem

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/nexsys/ascent"
	"github.com/katalvlaran/nexsys/expr"
	"github.com/katalvlaran/nexsys/newton"
	"github.com/katalvlaran/nexsys/solution"
	"github.com/katalvlaran/nexsys/variable"
)

// Method selects the solver.
type Method int

const (
	// Newton uses Newton-Raphson: Univariate for one unknown, Multivariate
	// otherwise. The system must be square.
	Newton Method = iota
	// Ascent uses gradient ascent on correctness.
	Ascent
)

// Document defaults, used when SolveOptions leaves a field zero.
const (
	DefaultLimit     = 300
	DefaultTolerance = 1e-5
)

// String implements fmt.Stringer.
func (m Method) String() string {
	switch m {
	case Newton:
		return "newton"
	case Ascent:
		return "ascent"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod maps "newton" or "ascent" (case-insensitive) to a Method.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "newton", "newton-raphson", "nr":
		return Newton, nil
	case "ascent", "gradient":
		return Ascent, nil
	default:
		return 0, fmt.Errorf("%w: unknown method %q", ErrSyntax, s)
	}
}

// SolveOptions tunes Solve. Zero fields take the document defaults.
//
// Documents invert their Jacobian with partial pivoting: the column order
// comes from sorted unknown names, not from the author, so a zero on the
// diagonal says nothing about the system. NoPivoting restores the plain
// Gauss-Jordan order of package newton.
type SolveOptions struct {
	Limit      int     // iteration cap
	Tolerance  float64 // residual threshold
	MinDelta   float64 // ascent only; 0 disables
	NoPivoting bool    // newton only
	Observer   solution.Observer
}

func (o SolveOptions) withDefaults() SolveOptions {
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if !(o.Tolerance > 0) || math.IsInf(o.Tolerance, 0) {
		o.Tolerance = DefaultTolerance
	}
	if !(o.MinDelta > 0) || math.IsInf(o.MinDelta, 0) {
		o.MinDelta = 0
	}

	return o
}

// Solution is the result of solving a document. Values holds the unknowns;
// Params echoes the resolved parameters.
type Solution struct {
	Method     string             `yaml:"method"`
	Status     solution.Status    `yaml:"status"`
	Iterations int                `yaml:"iterations"`
	Residual   float64            `yaml:"residual"`
	Values     map[string]float64 `yaml:"values"`
	Params     map[string]float64 `yaml:"params,omitempty"`
	Warning    string             `yaml:"warning,omitempty"`
	Cause      error              `yaml:"-"`
}

// Solve resolves the parameters and runs the selected solver. Numerical
// verdicts (Exhausted, Failed) come back in the Solution with a warning;
// the error is reserved for malformed problems.
func (p *Problem) Solve(ctx context.Context, eval expr.Evaluator, m Method, o SolveOptions) (*Solution, error) {
	o = o.withDefaults()
	params, err := p.Resolve(eval)
	if err != nil {
		return nil, err
	}
	unknowns, err := p.Unknowns()
	if err != nil {
		return nil, err
	}

	var out solution.Outcome[map[string]float64]
	switch m {
	case Newton:
		out, err = p.solveNewton(ctx, expr.WithConstants(eval, params), unknowns, o)
	case Ascent:
		out, err = p.solveAscent(ctx, eval, params, o)
	default:
		return nil, fmt.Errorf("problem: unsupported method %s", m)
	}
	if err != nil {
		return nil, err
	}

	s := &Solution{
		Method:     m.String(),
		Status:     out.Status,
		Iterations: out.Iterations,
		Residual:   out.Residual,
		Values:     out.Value,
		Params:     params,
		Cause:      out.Cause,
	}
	if err = out.Err(); err != nil {
		s.Warning = err.Error()
	}

	return s, nil
}

func (p *Problem) guessVector(unknowns []string) (variable.Vector, error) {
	values := make(map[string]float64, len(unknowns))
	bounds := make(map[string]variable.Domain)
	for _, name := range unknowns {
		x, ok := p.Guesses[name]
		if !ok {
			x = ascent.DefaultGuess
		}
		values[name] = x
		if d, ok := p.Bounds[name]; ok {
			bounds[name] = d
		}
	}

	return variable.FromValues(values, bounds)
}

func (p *Problem) solveNewton(
	ctx context.Context,
	eval expr.Evaluator,
	unknowns []string,
	o SolveOptions,
) (solution.Outcome[map[string]float64], error) {
	var zero solution.Outcome[map[string]float64]
	guess, err := p.guessVector(unknowns)
	if err != nil {
		return zero, err
	}
	opts := []newton.Option{
		newton.WithTolerance(o.Tolerance),
		newton.WithMaxIterations(o.Limit),
		newton.WithObserver(o.Observer),
	}
	if !o.NoPivoting {
		opts = append(opts, newton.WithPartialPivoting())
	}
	s := newton.New(eval, opts...)

	if len(unknowns) == 1 && len(p.Equations) == 1 {
		name := unknowns[0]
		uni, err := s.Univariate(ctx, p.Equations[0], name, guess[name], nil)
		if err != nil {
			return zero, err
		}
		return remap(uni, func(v variable.Variable) map[string]float64 {
			return map[string]float64{name: v.Value()}
		}), nil
	}

	multi, err := s.Multivariate(ctx, p.Equations, guess)
	if err != nil {
		return zero, err
	}

	return remap(multi, variable.Vector.Values), nil
}

func (p *Problem) solveAscent(
	ctx context.Context,
	eval expr.Evaluator,
	params map[string]float64,
	o SolveOptions,
) (solution.Outcome[map[string]float64], error) {
	s := ascent.New(eval,
		ascent.WithParams(params),
		ascent.WithGuess(p.Guesses),
		ascent.WithIterationLimit(o.Limit),
		ascent.WithTolerance(o.Tolerance),
		ascent.WithMinDelta(o.MinDelta),
		ascent.WithObserver(o.Observer),
	)

	return s.Solve(ctx, p.Equations, p.Bounds)
}

// remap converts an Outcome's value while keeping its verdict.
func remap[T, U any](o solution.Outcome[T], f func(T) U) solution.Outcome[U] {
	return solution.Outcome[U]{
		Status:     o.Status,
		Value:      f(o.Value),
		Residual:   o.Residual,
		Iterations: o.Iterations,
		Cause:      o.Cause,
	}
}

// Round returns a copy of s with values and params rounded to places
// decimal places. Negative places leave them untouched.
func (s *Solution) Round(places int) *Solution {
	cp := *s
	if places < 0 {
		return &cp
	}
	cp.Values = roundAll(s.Values, places)
	cp.Params = roundAll(s.Params, places)

	return &cp
}

func roundAll(in map[string]float64, places int) map[string]float64 {
	if in == nil {
		return nil
	}
	scale := math.Pow(10, float64(places))
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = math.Round(v*scale) / scale
	}

	return out
}
