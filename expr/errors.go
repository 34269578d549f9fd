// SPDX-License-Identifier: MIT

package expr

import (
	"errors"
	"fmt"
)

// ErrEvaluation is wrapped by every failure to parse or evaluate an expression.
var ErrEvaluation = errors.New("expr: evaluation failed")

// syntaxErrorf reports a malformed expression at byte offset pos.
func syntaxErrorf(expression string, pos int, format string, a ...any) error {
	return fmt.Errorf("%w: %q at %d: %s", ErrEvaluation, expression, pos, fmt.Sprintf(format, a...))
}
