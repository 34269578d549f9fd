// SPDX-License-Identifier: MIT

package problem

import (
	"bufio"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/nexsys/expr"
	"github.com/katalvlaran/nexsys/units"
	"github.com/katalvlaran/nexsys/variable"
)

var (
	// ErrSyntax reports a line (or YAML field) that cannot be understood.
	ErrSyntax = errors.New("problem: syntax error")

	// ErrNoEquations reports a document without a single equation.
	ErrNoEquations = errors.New("problem: no equations")
)

// Param is a named value defined by an expression over earlier params.
type Param struct {
	Name string
	Expr string
}

// Problem is a parsed document. Equations keep document order.
type Problem struct {
	Equations []string
	Params    []Param
	Guesses   map[string]float64
	Bounds    map[string]variable.Domain
}

var (
	reGuess = regexp.MustCompile(`(?i)^guess\s+(\S+)\s+for\s+([A-Za-z_][A-Za-z0-9_]*)$`)
	reKeep  = regexp.MustCompile(`(?i)^keep\s+([A-Za-z_][A-Za-z0-9_]*)\s+on\s+\[\s*([^,\]]+?)\s*,\s*([^,\]]+?)\s*\]$`)
	reParam = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*:\s*(.+)$`)
	reUnit  = regexp.MustCompile(`\[([^\]]*)->([^\]]*)\]`)
)

func newProblem() *Problem {
	return &Problem{
		Guesses: make(map[string]float64),
		Bounds:  make(map[string]variable.Domain),
	}
}

func lineErrorf(line int, err error, format string, a ...any) error {
	return fmt.Errorf("line %d: %s: %w", line, fmt.Sprintf(format, a...), err)
}

// Parse reads the text form of a problem document.
//
// Errors:
//   - ErrSyntax with the offending line number;
//   - variable.ErrInvalidDomain for a keep line with low > high;
//   - ErrNoEquations when no line holds an equation.
func Parse(text string) (*Problem, error) {
	p := newProblem()
	sc := bufio.NewScanner(strings.NewReader(text))
	for n := 1; sc.Scan(); n++ {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := p.parseLine(n, line); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("problem: read: %w", err)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Problem) parseLine(n int, line string) error {
	line, err := convertUnits(line)
	if err != nil {
		return lineErrorf(n, ErrSyntax, "%v", err)
	}
	if m := reGuess.FindStringSubmatch(line); m != nil {
		x, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return lineErrorf(n, ErrSyntax, "guess value %q", m[1])
		}
		if err = checkName(m[2]); err != nil {
			return lineErrorf(n, err, "guess")
		}
		p.Guesses[m[2]] = x
		return nil
	}
	if m := reKeep.FindStringSubmatch(line); m != nil {
		if err = checkName(m[1]); err != nil {
			return lineErrorf(n, err, "keep")
		}
		return p.addBound(n, m[1], m[2], m[3])
	}
	if strings.HasPrefix(strings.ToLower(line), "guess ") || strings.HasPrefix(strings.ToLower(line), "keep ") {
		return lineErrorf(n, ErrSyntax, "malformed directive %q", line)
	}
	if m := reParam.FindStringSubmatch(line); m != nil {
		if err = checkName(m[1]); err != nil {
			return lineErrorf(n, err, "parameter")
		}
		p.Params = append(p.Params, Param{Name: m[1], Expr: strings.TrimSpace(m[2])})
		return nil
	}
	if strings.Contains(line, "=") {
		p.Equations = append(p.Equations, line)
		return nil
	}

	return lineErrorf(n, ErrSyntax, "unrecognised line %q", line)
}

func (p *Problem) addBound(n int, name, low, high string) error {
	lo, err := strconv.ParseFloat(low, 64)
	if err != nil {
		return lineErrorf(n, ErrSyntax, "lower bound %q", low)
	}
	hi, err := strconv.ParseFloat(high, 64)
	if err != nil {
		return lineErrorf(n, ErrSyntax, "upper bound %q", high)
	}
	d := variable.Domain{Low: lo, High: hi}
	if err = d.Validate(); err != nil {
		return lineErrorf(n, err, "bounds for %s", name)
	}
	p.Bounds[name] = d

	return nil
}

func (p *Problem) validate() error {
	if len(p.Equations) == 0 {
		return ErrNoEquations
	}
	seen := make(map[string]struct{}, len(p.Params))
	for _, prm := range p.Params {
		if err := checkName(prm.Name); err != nil {
			return fmt.Errorf("parameter: %w", err)
		}
		if _, dup := seen[prm.Name]; dup {
			return fmt.Errorf("%w: parameter %s defined twice", ErrSyntax, prm.Name)
		}
		seen[prm.Name] = struct{}{}
	}
	for _, name := range sortedKeys(p.Guesses) {
		if err := checkName(name); err != nil {
			return fmt.Errorf("guess: %w", err)
		}
	}
	for _, name := range sortedKeys(p.Bounds) {
		if err := checkName(name); err != nil {
			return fmt.Errorf("bounds: %w", err)
		}
	}

	return nil
}

// checkName rejects builtin names, which expressions never read from
// bindings: a guess for "e" would be silently ignored.
func checkName(name string) error {
	if expr.IsReserved(name) {
		return fmt.Errorf("%w: %q is a built-in name and cannot be a variable", ErrSyntax, name)
	}

	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

// convertUnits replaces every [from->to] with " * (k)", where k takes a
// value in from-units to to-units.
func convertUnits(s string) (string, error) {
	var firstErr error
	out := reUnit.ReplaceAllStringFunc(s, func(m string) string {
		if firstErr != nil {
			return m
		}
		sub := reUnit.FindStringSubmatch(m)
		k, err := units.Factor(sub[1], sub[2])
		if err != nil {
			firstErr = fmt.Errorf("unit conversion %s: %w", m, err)
			return m
		}
		return " * (" + strconv.FormatFloat(k, 'g', -1, 64) + ")"
	})

	return out, firstErr
}

// Resolve evaluates the parameters in document order; each may use the
// ones defined before it.
func (p *Problem) Resolve(eval expr.Evaluator) (map[string]float64, error) {
	values := make(map[string]float64, len(p.Params))
	for _, prm := range p.Params {
		v, err := eval.Evaluate(prm.Expr, values)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", prm.Name, err)
		}
		values[prm.Name] = v
	}

	return values, nil
}

// Unknowns returns the sorted names used by the equations that are not
// parameters.
func (p *Problem) Unknowns() ([]string, error) {
	idents, err := expr.Identifiers(p.Equations...)
	if err != nil {
		return nil, err
	}
	params := make(map[string]struct{}, len(p.Params))
	for _, prm := range p.Params {
		params[prm.Name] = struct{}{}
	}
	out := make([]string, 0, len(idents))
	for _, name := range idents {
		if _, isParam := params[name]; !isParam {
			out = append(out, name)
		}
	}
	sort.Strings(out)

	return out, nil
}
