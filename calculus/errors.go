// SPDX-License-Identifier: MIT

package calculus

import (
	"errors"
	"fmt"
)

var (
	// ErrUnderOrOverConstrained is returned when the number of equations
	// differs from the number of unknowns.
	ErrUnderOrOverConstrained = errors.New("calculus: system is under- or over-constrained")

	// ErrUnknownVariable is returned when a partial derivative targets a
	// name absent from the guess vector.
	ErrUnknownVariable = errors.New("calculus: unknown variable")
)

const (
	opDerivative    = "Derivative"
	opPartial       = "Partial"
	opJacobian      = "Jacobian"
	opSensitivities = "Sensitivities"
	opResidual      = "Residual"
)

func calculusErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
