// SPDX-License-Identifier: MIT

package expr

import (
	"math"
	"sort"
)

// variadic marks a builtin that accepts one or more arguments.
const variadic = -1

// builtin is a pure numeric function callable from expressions.
type builtin struct {
	arity int
	fn    func(args ...float64) float64
}

func unary(f func(float64) float64) builtin {
	return builtin{arity: 1, fn: func(a ...float64) float64 { return f(a[0]) }}
}

// builtins lists every callable name. log is the natural logarithm, like ln.
var builtins = map[string]builtin{
	"sqrt":   unary(math.Sqrt),
	"exp":    unary(math.Exp),
	"ln":     unary(math.Log),
	"log":    unary(math.Log),
	"log10":  unary(math.Log10),
	"abs":    unary(math.Abs),
	"sin":    unary(math.Sin),
	"cos":    unary(math.Cos),
	"tan":    unary(math.Tan),
	"asin":   unary(math.Asin),
	"acos":   unary(math.Acos),
	"atan":   unary(math.Atan),
	"sinh":   unary(math.Sinh),
	"cosh":   unary(math.Cosh),
	"tanh":   unary(math.Tanh),
	"floor":  unary(math.Floor),
	"ceil":   unary(math.Ceil),
	"round":  unary(math.Round),
	"signum": unary(signum),
	"atan2": {arity: 2, fn: func(a ...float64) float64 {
		return math.Atan2(a[0], a[1])
	}},
	"min": {arity: variadic, fn: func(a ...float64) float64 {
		m := a[0]
		for _, x := range a[1:] {
			m = math.Min(m, x)
		}
		return m
	}},
	"max": {arity: variadic, fn: func(a ...float64) float64 {
		m := a[0]
		for _, x := range a[1:] {
			m = math.Max(m, x)
		}
		return m
	}},
}

// constants are predefined names that never count as unknowns.
var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

// reserved are Lua keywords; they cannot name variables.
var reserved = map[string]struct{}{
	"and": {}, "break": {}, "do": {}, "else": {}, "elseif": {}, "end": {},
	"false": {}, "for": {}, "function": {}, "goto": {}, "if": {}, "in": {},
	"local": {}, "nil": {}, "not": {}, "or": {}, "repeat": {}, "return": {},
	"then": {}, "true": {}, "until": {}, "while": {},
}

func signum(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return x
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func isFunction(name string) bool {
	_, ok := builtins[name]
	return ok
}

func isConstant(name string) bool {
	_, ok := constants[name]
	return ok
}

// IsReserved reports whether name is a builtin function, a constant (pi, e)
// or a Lua keyword. Such a name can never be an unknown or a parameter.
func IsReserved(name string) bool {
	_, keyword := reserved[name]
	return keyword || isConstant(name) || isFunction(name)
}

// Builtins returns the callable function names in ascending order.
func Builtins() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
