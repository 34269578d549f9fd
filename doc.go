// SPDX-License-Identifier: MIT

// Package nexsys is a numeric solver for systems of equations written in
// plain mathematical notation.
//
// What is in the box?
//
//	variable/   scalar unknowns with optional closed domains, and named vectors of them
//	expr/       equation text → residual expression, evaluated on an embedded Lua VM
//	matrix/     dense matrices, row operations, Gauss-Jordan inversion
//	calculus/   finite-difference derivatives, partials and Jacobians
//	solution/   Outcome[T] (converged / exhausted / failed) and iteration observers
//	newton/     Newton-Raphson, univariate and multivariate
//	ascent/     gradient ascent on correctness 1/Σ|rᵢ|, for systems Newton cannot take
//	incidence/  equation/unknown graph and independent blocks
//	problem/    problem documents (text and YAML): params, guesses, bounds, equations
//	config/     CLI settings: defaults, TOML file, NEXSYS_* environment
//	cmd/nexsys  the command line: solve, check, version
//
// Quick start:
//
//	p, _ := problem.Parse("x + y = 9\nx - y = 4")
//	sol, _ := p.Solve(ctx, expr.NewLua(), problem.Newton, problem.SolveOptions{})
//	fmt.Println(sol.Values) // map[x:6.5 y:2.5]
//
// Equations may use implicit multiplication ("2x", "g t"), "^" for powers
// and the builtins listed by expr.Builtins(). Every numerical verdict comes
// back in an Outcome; returned errors are reserved for malformed input.
package nexsys
