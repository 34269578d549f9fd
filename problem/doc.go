// SPDX-License-Identifier: MIT

// Package problem reads problem documents and hands them to a solver.
//
// The text form is line oriented:
//
//	# comments and blank lines are ignored
//	g: 9.81                 parameter (evaluated in order, may use earlier ones)
//	t_total: 2 * 3
//	guess 10 for v          starting value for an unknown (default 1.0)
//	keep h on [0, 100]      closed domain for an unknown
//	v = g t_total           any other line with "=" is an equation
//	h = v t_total - g t_total^2 / 2
//
// The YAML form carries the same information:
//
//	equations: ["v = g t", "h = v t - g t^2 / 2"]
//	params:    {g: 9.81, t: "2 * 3"}
//	guess:     {v: 10}
//	bounds:    {h: [0, 100]}
//
// In equations and parameter expressions, unit markup [from->to] becomes the
// conversion factor from package units: "d: 12 [ft->m]" reads as
// "12 * (0.3048)". Unknown or incompatible units are ErrSyntax.
//
// Builtin names (e, pi, the functions and Lua keywords) cannot be guessed,
// bounded or defined as parameters.
//
// Sweep re-solves a document while one parameter walks an evenly spaced
// range, warm-starting each point from the last converged one.
package problem
