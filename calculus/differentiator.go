// SPDX-License-Identifier: MIT

package calculus

import (
	"fmt"

	"github.com/katalvlaran/nexsys/expr"
	"github.com/katalvlaran/nexsys/matrix"
	"github.com/katalvlaran/nexsys/variable"
)

// Func is a scalar function of one variable that may fail.
type Func func(x float64) (float64, error)

// Derivative returns the forward difference (f(x+h) - f(x)) / h.
func Derivative(f Func, x, h float64) (float64, error) {
	fx, err := f(x)
	if err != nil {
		return 0, calculusErrorf(opDerivative, err)
	}
	fxh, err := f(x + h)
	if err != nil {
		return 0, calculusErrorf(opDerivative, err)
	}

	return (fxh - fx) / h, nil
}

// Differentiator evaluates derivatives of textual expressions through an
// expr.Evaluator.
type Differentiator struct {
	eval expr.Evaluator
	step float64
}

// New returns a Differentiator over eval.
func New(eval expr.Evaluator, opts ...Option) *Differentiator {
	o := gatherOptions(opts...)

	return &Differentiator{eval: eval, step: o.step}
}

// Step returns the configured finite-difference step.
func (d *Differentiator) Step() float64 { return d.step }

// probe returns the second sample point and the sign of the difference:
// x+h when it stays in v's domain (or x-h does not either), else x-h.
func (d *Differentiator) probe(v variable.Variable) (float64, float64) {
	x := v.Value()
	if !v.Contains(x+d.step) && v.Contains(x-d.step) {
		return x - d.step, -1
	}

	return x + d.step, 1
}

// Derivative returns f'(v) by a one-sided difference that never probes
// outside v's domain when the domain is wider than the step.
func (d *Differentiator) Derivative(f Func, v variable.Variable) (float64, error) {
	fx, err := f(v.Value())
	if err != nil {
		return 0, calculusErrorf(opDerivative, err)
	}
	at, sign := d.probe(v)
	fp, err := f(at)
	if err != nil {
		return 0, calculusErrorf(opDerivative, err)
	}

	return sign * (fp - fx) / d.step, nil
}

// Partial returns ∂expression/∂target at guess. Every other unknown stays
// at its guess value. guess is not modified.
//
// Errors:
//   - ErrUnknownVariable when target is not in guess.
//   - evaluation errors (wrapping expr.ErrEvaluation).
func (d *Differentiator) Partial(expression string, guess variable.Vector, target string) (float64, error) {
	v, ok := guess[target]
	if !ok {
		return 0, calculusErrorf(opPartial, fmt.Errorf("%q: %w", target, ErrUnknownVariable))
	}
	bindings := guess.Values()
	f := func(x float64) (float64, error) {
		bindings[target] = x
		return d.eval.Evaluate(expression, bindings)
	}
	dv, err := d.Derivative(f, v)
	if err != nil {
		return 0, calculusErrorf(opPartial, err)
	}

	return dv, nil
}

// Jacobian builds J with J[i][j] = ∂equations[i]/∂names[j], where names is
// guess.Names(). The result carries names as its column labels.
//
// Implementation:
//   - Stage 1: require len(equations) == len(guess) > 0.
//   - Stage 2: evaluate every residual once at the guess.
//   - Stage 3: per unknown, move it to its probe point and re-evaluate
//     every equation; difference against Stage 2.
//
// Errors:
//   - ErrUnderOrOverConstrained (shape), evaluation errors.
//
// Complexity:
//   - n·(n+1) evaluations, O(n²) space.
func (d *Differentiator) Jacobian(equations []string, guess variable.Vector) (*matrix.Dense, error) {
	n := len(equations)
	if n == 0 || n != len(guess) {
		return nil, calculusErrorf(opJacobian,
			fmt.Errorf("%d equations, %d unknowns: %w", n, len(guess), ErrUnderOrOverConstrained))
	}
	names := guess.Names()
	columns, err := d.columns(equations, guess, names)
	if err != nil {
		return nil, calculusErrorf(opJacobian, err)
	}

	return matrix.FromColumns(columns, names)
}

// Sensitivities is the rectangular form of Jacobian: an m×n matrix for m
// equations and the n unknowns of guess, column j belonging to
// guess.Names()[j]. Over- and under-determined systems are allowed.
//
// Errors:
//   - ErrUnderOrOverConstrained when equations or guess is empty.
//   - evaluation errors.
func (d *Differentiator) Sensitivities(equations []string, guess variable.Vector) (*matrix.Dense, error) {
	rows, cols := len(equations), len(guess)
	if rows == 0 || cols == 0 {
		return nil, calculusErrorf(opSensitivities,
			fmt.Errorf("%d equations, %d unknowns: %w", rows, cols, ErrUnderOrOverConstrained))
	}
	columns, err := d.columns(equations, guess, guess.Names())
	if err != nil {
		return nil, calculusErrorf(opSensitivities, err)
	}
	out, err := matrix.NewDense(rows, cols)
	if err != nil {
		return nil, calculusErrorf(opSensitivities, err)
	}
	for j, col := range columns {
		for i, v := range col {
			if err = out.Set(i, j, v); err != nil {
				return nil, calculusErrorf(opSensitivities, err)
			}
		}
	}

	return out, nil
}

// columns returns ∂equations/∂name for every name, one column per name.
func (d *Differentiator) columns(equations []string, guess variable.Vector, names []string) ([][]float64, error) {
	bindings := guess.Values()
	base, err := d.Residuals(equations, bindings)
	if err != nil {
		return nil, err
	}

	columns := make([][]float64, len(names))
	var (
		at, sign, fp float64
		v            variable.Variable
	)
	for j, name := range names {
		v = guess[name]
		at, sign = d.probe(v)
		bindings[name] = at
		columns[j] = make([]float64, len(equations))
		for i, eq := range equations {
			if fp, err = d.eval.Evaluate(eq, bindings); err != nil {
				return nil, err
			}
			columns[j][i] = sign * (fp - base[i]) / d.step
		}
		bindings[name] = v.Value()
	}

	return columns, nil
}

// Residual evaluates one equation (lhs - rhs) under bindings.
func (d *Differentiator) Residual(equation string, bindings map[string]float64) (float64, error) {
	r, err := d.eval.Evaluate(equation, bindings)
	if err != nil {
		return 0, calculusErrorf(opResidual, err)
	}

	return r, nil
}

// Residuals evaluates every equation in order under bindings.
func (d *Differentiator) Residuals(equations []string, bindings map[string]float64) ([]float64, error) {
	out := make([]float64, len(equations))
	var err error
	for i, eq := range equations {
		if out[i], err = d.Residual(eq, bindings); err != nil {
			return nil, err
		}
	}

	return out, nil
}
