// SPDX-License-Identifier: MIT

package expr

import (
	"strings"
)

// Evaluator computes the numeric value of an expression under bindings.
//
// An expression containing "=" evaluates to lhs - rhs, its residual.
// Failures (unparsable text, unbound identifiers, non-numeric results)
// wrap ErrEvaluation.
type Evaluator interface {
	Evaluate(expression string, bindings map[string]float64) (float64, error)
}

// EvaluatorFunc adapts an ordinary function to the Evaluator interface.
type EvaluatorFunc func(expression string, bindings map[string]float64) (float64, error)

// Evaluate calls f(expression, bindings).
func (f EvaluatorFunc) Evaluate(expression string, bindings map[string]float64) (float64, error) {
	return f(expression, bindings)
}

// WithConstants returns an Evaluator that binds consts under every call.
// A name present in both maps takes the per-call binding.
func WithConstants(eval Evaluator, consts map[string]float64) Evaluator {
	if len(consts) == 0 {
		return eval
	}
	fixed := make(map[string]float64, len(consts))
	for k, v := range consts {
		fixed[k] = v
	}

	return EvaluatorFunc(func(expression string, bindings map[string]float64) (float64, error) {
		merged := make(map[string]float64, len(fixed)+len(bindings))
		for k, v := range fixed {
			merged[k] = v
		}
		for k, v := range bindings {
			merged[k] = v
		}

		return eval.Evaluate(expression, merged)
	})
}

// SplitSystem splits a newline-separated system into trimmed, non-empty lines.
func SplitSystem(text string) []string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}

	return out
}
