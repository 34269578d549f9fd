// SPDX-License-Identifier: MIT

package expr

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Shopify/go-lua"
)

// program is one compiled expression: a Lua global holding a function
// whose parameters are the expression's unknowns, in order.
type program struct {
	global string
	params []string
}

// Lua evaluates expressions on an embedded Lua VM.
//
// Each distinct expression text is compiled once into a function
// `function(<unknowns>) return <body> end`; later calls only push the
// bound values and run it. No Lua library is opened, so expressions can
// reach nothing but arithmetic and the builtin functions.
//
// A Lua is safe for concurrent use; calls are serialised on one VM.
type Lua struct {
	mu       sync.Mutex
	state    *lua.State
	programs map[string]*program
}

var _ Evaluator = (*Lua)(nil)

// NewLua returns an evaluator with builtins and constants installed.
func NewLua() *Lua {
	l := lua.NewState()
	l.PushGlobalTable()
	lua.SetFunctions(l, luaBuiltins(), 0)
	l.Pop(1)
	for name, v := range constants {
		l.PushNumber(v)
		l.SetGlobal(name)
	}

	return &Lua{state: l, programs: make(map[string]*program)}
}

// luaBuiltins adapts the builtin table, in name order, to Lua functions.
func luaBuiltins() []lua.RegistryFunction {
	names := Builtins()
	out := make([]lua.RegistryFunction, 0, len(names))
	for _, name := range names {
		out = append(out, lua.RegistryFunction{Name: name, Function: luaBuiltin(name, builtins[name])})
	}

	return out
}

func luaBuiltin(name string, b builtin) lua.Function {
	return func(l *lua.State) int {
		n := l.Top()
		if b.arity == variadic && n == 0 {
			lua.Errorf(l, "%s: expected at least one argument", name)
		}
		if b.arity != variadic && n != b.arity {
			lua.Errorf(l, "%s: expected %d argument(s), got %d", name, b.arity, n)
		}
		args := make([]float64, n)
		for i := range args {
			args[i] = lua.CheckNumber(l, i+1)
		}
		l.PushNumber(b.fn(args...))

		return 1
	}
}

// Compile parses and compiles expression without evaluating it, returning
// its unknowns in first-appearance order. Evaluate compiles on demand; call
// Compile to surface syntax errors early.
func (e *Lua) Compile(expression string) ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, err := e.compile(expression)
	if err != nil {
		return nil, err
	}

	return append([]string(nil), p.params...), nil
}

func (e *Lua) compile(expression string) (*program, error) {
	if p, ok := e.programs[expression]; ok {
		return p, nil
	}
	body, names, err := parse(expression)
	if err != nil {
		return nil, err
	}
	p := &program{
		global: fmt.Sprintf("__nexsys_%d", len(e.programs)),
		params: names,
	}
	chunk := fmt.Sprintf("%s = function(%s) return %s end", p.global, strings.Join(names, ", "), body)
	if err = lua.DoString(e.state, chunk); err != nil {
		e.state.SetTop(0)
		return nil, fmt.Errorf("%w: %q: %v", ErrEvaluation, expression, err)
	}
	e.programs[expression] = p

	return p, nil
}

// Evaluate implements Evaluator. Every unknown of expression must be bound;
// extra bindings are ignored.
func (e *Lua) Evaluate(expression string, bindings map[string]float64) (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, err := e.compile(expression)
	if err != nil {
		return 0, err
	}
	if missing := unbound(p.params, bindings); len(missing) > 0 {
		return 0, fmt.Errorf("%w: %q: unbound %s", ErrEvaluation, expression, strings.Join(missing, ", "))
	}

	l := e.state
	l.Global(p.global)
	for _, name := range p.params {
		l.PushNumber(bindings[name])
	}
	if err = l.ProtectedCall(len(p.params), 1, 0); err != nil {
		l.SetTop(0)
		return 0, fmt.Errorf("%w: %q: %v", ErrEvaluation, expression, err)
	}
	v, ok := l.ToNumber(-1)
	l.Pop(1)
	if !ok {
		return 0, fmt.Errorf("%w: %q: result is not a number", ErrEvaluation, expression)
	}

	return v, nil
}

func unbound(params []string, bindings map[string]float64) []string {
	var missing []string
	for _, name := range params {
		if _, ok := bindings[name]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)

	return missing
}
