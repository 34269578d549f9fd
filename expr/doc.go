// SPDX-License-Identifier: MIT

// Package expr is the expression boundary of nexsys.
//
// Solvers only ever see the Evaluator interface: a textual expression plus a
// set of name → value bindings in, a float64 (or an error) out. The package
// ships one implementation, Lua, which rewrites the expression into a tiny
// Lua function body and runs it on an embedded, sandboxed VM
// (github.com/Shopify/go-lua, no standard libraries opened).
//
// Syntax accepted by Normalize and Lua:
//
//	numbers      2  0.5  .5  1e-7  6.02E23
//	identifiers  x  T_hot  x1   (ASCII letters, digits, underscore)
//	operators    + - * / ^ %    (^ is power, right-associative)
//	grouping     ( ) and f(a, b) calls to the builtin functions
//	equations    lhs = rhs  →  (lhs) - (rhs)
//
// Implicit multiplication is made explicit: "2x", "3(x+1)", "(a)(b)" and
// "2 pi" become products.
//
// Builtins: sqrt exp ln log log10 abs sin cos tan asin acos atan atan2 sinh
// cosh tanh floor ceil round signum min max. Constants: pi, e.
//
// Constants always win: "e" and "pi" in an expression are never reported by
// Identifiers and never read from the bindings, so they cannot serve as
// unknowns. IsReserved lets callers reject them (and the builtin and keyword
// names) where a document declares a variable.
package expr
