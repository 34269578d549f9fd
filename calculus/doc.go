// SPDX-License-Identifier: MIT

// Package calculus approximates derivatives by finite differences and
// assembles Jacobian matrices of equation systems.
//
// Every derivative is a one-sided difference with step h (DefaultStep unless
// configured). The forward form (f(x+h) - f(x)) / h is used unless x+h would
// leave the variable's domain, in which case the backward form
// (f(x) - f(x-h)) / h keeps the probe inside the interval.
//
// Jacobian columns follow variable.Vector.Names() (ascending), rows follow
// equation order, and the returned matrix carries the column names.
package calculus
