package problem_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/nexsys/expr"
	"github.com/katalvlaran/nexsys/problem"
	"github.com/katalvlaran/nexsys/solution"
	"github.com/katalvlaran/nexsys/variable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projectile = `
# projectile
g: 9.81
t: 2 * 1.5          # seconds
guess 10 for v
keep h on [0, 100]

v = g t
h = v t - g t^2 / 2
`

func TestParse(t *testing.T) {
	p, err := problem.Parse(projectile)
	require.NoError(t, err)

	assert.Equal(t, []string{"v = g t", "h = v t - g t^2 / 2"}, p.Equations)
	assert.Equal(t, []problem.Param{{Name: "g", Expr: "9.81"}, {Name: "t", Expr: "2 * 1.5"}}, p.Params)
	assert.Equal(t, map[string]float64{"v": 10}, p.Guesses)
	assert.Equal(t, map[string]variable.Domain{"h": {Low: 0, High: 100}}, p.Bounds)

	unknowns, err := p.Unknowns()
	require.NoError(t, err)
	assert.Equal(t, []string{"h", "v"}, unknowns)
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]struct {
		text string
		want error
	}{
		"no equations":    {"a: 1\nguess 2 for x", problem.ErrNoEquations},
		"empty":           {"   \n# only a comment\n", problem.ErrNoEquations},
		"bad guess":       {"guess ten for x\nx = 1", problem.ErrSyntax},
		"malformed keep":  {"keep x on 0..1\nx = 1", problem.ErrSyntax},
		"bad bound":       {"keep x on [a, 1]\nx = 1", problem.ErrSyntax},
		"inverted bounds": {"keep x on [2, 1]\nx = 1", variable.ErrInvalidDomain},
		"unknown unit":    {"x = 3 [furlong->m]", problem.ErrSyntax},
		"unit mismatch":   {"x = 3 [ft->kg]", problem.ErrSyntax},
		"guess constant":  {"guess 2 for e\nx = 1", problem.ErrSyntax},
		"keep constant":   {"keep pi on [0, 4]\nx = 1", problem.ErrSyntax},
		"param builtin":   {"sin: 3\nx = 1", problem.ErrSyntax},
		"param constant":  {"e: 2\nx = e", problem.ErrSyntax},
		"unrecognised":    {"x + 1", problem.ErrSyntax},
		"duplicate param": {"a: 1\na: 2\nx = a", problem.ErrSyntax},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := problem.Parse(tc.text)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestParse_UnitConversion(t *testing.T) {
	p, err := problem.Parse("d: 12 [ft->m]\nx = d + 1 [km->m]")
	require.NoError(t, err)
	assert.Equal(t, "12  * (0.3048)", p.Params[0].Expr)

	params, err := p.Resolve(expr.NewLua())
	require.NoError(t, err)
	assert.InDelta(t, 3.6576, params["d"], 1e-12)

	s, err := p.Solve(context.Background(), expr.NewLua(), problem.Newton, problem.SolveOptions{})
	require.NoError(t, err)
	assert.InDelta(t, 1003.6576, s.Values["x"], 1e-6)

	_, err = problem.Parse("x = 2\ny = x [N->lbf-ft]")
	require.ErrorIs(t, err, problem.ErrSyntax)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParse_LineNumbers(t *testing.T) {
	_, err := problem.Parse("x = 1\n\nwhat is this")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestParseYAML(t *testing.T) {
	doc := []byte(`
equations:
  - v = g t
  - h = v t - g t^2 / 2
params:
  g: 9.81
  t: 2 * 1.5
guess:
  v: 10
bounds:
  h: [0, 100]
`)
	p, err := problem.ParseYAML(doc)
	require.NoError(t, err)

	text, err := problem.Parse(projectile)
	require.NoError(t, err)
	assert.Equal(t, text, p)
}

func TestParseYAML_Units(t *testing.T) {
	p, err := problem.ParseYAML([]byte(`
equations:
  - F = m a [lbf->N]
params:
  m: 2 [lb->kg]
  a: 1
`))
	require.NoError(t, err)
	params, err := p.Resolve(expr.NewLua())
	require.NoError(t, err)
	assert.InDelta(t, 0.90718474, params["m"], 1e-12)
	assert.Equal(t, []string{"F = m a  * (4.4482216152605)"}, p.Equations)
}

func TestParseYAML_Errors(t *testing.T) {
	for name, doc := range map[string]string{
		"equation unit":   "equations: [\"x = 1 [m->s]\"]",
		"param unit":      "equations: [x = a]\nparams: {a: \"1 [psi->ft]\"}",
		"guess constant":  "equations: [x = 1]\nguess: {e: 1}",
		"bounds builtin":  "equations: [x = 1]\nbounds: {sqrt: [0, 1]}",
		"param keyword":   "equations: [x = 1]\nparams: {end: 1}",
		"not yaml":        "equations: [",
		"bounds arity":    "equations: [x = 1]\nbounds: {x: [1]}",
		"params sequence": "equations: [x = 1]\nparams: [1, 2]",
		"params nested":   "equations: [x = 1]\nparams: {a: {b: 1}}",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := problem.ParseYAML([]byte(doc))
			assert.ErrorIs(t, err, problem.ErrSyntax)
		})
	}
	_, err := problem.ParseYAML([]byte("params: {a: 1}"))
	assert.ErrorIs(t, err, problem.ErrNoEquations)
}

func TestResolve_OrderMatters(t *testing.T) {
	p, err := problem.Parse("a: 2\nb: a^3\nx = b")
	require.NoError(t, err)
	params, err := p.Resolve(expr.NewLua())
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"a": 2, "b": 8}, params)

	p, err = problem.Parse("b: a^3\na: 2\nx = b")
	require.NoError(t, err)
	_, err = p.Resolve(expr.NewLua())
	assert.ErrorIs(t, err, expr.ErrEvaluation)
}

func TestSolve_Methods(t *testing.T) {
	p, err := problem.Parse(projectile)
	require.NoError(t, err)

	for _, m := range []problem.Method{problem.Newton, problem.Ascent} {
		t.Run(m.String(), func(t *testing.T) {
			s, err := p.Solve(context.Background(), expr.NewLua(), m, problem.SolveOptions{Limit: 10000})
			require.NoError(t, err)
			assert.Equal(t, m.String(), s.Method)
			assert.InDelta(t, 29.43, s.Values["v"], 1e-3)
			assert.InDelta(t, 44.145, s.Values["h"], 1e-3)
			assert.Equal(t, map[string]float64{"g": 9.81, "t": 3}, s.Params)
			assert.NotContains(t, s.Values, "g")
		})
	}
}

// The projectile's Jacobian over (h, v) has a zero in its first pivot; the
// document path swaps rows instead of giving up.
func TestSolve_NewtonPivotsByDefault(t *testing.T) {
	p, err := problem.Parse(projectile)
	require.NoError(t, err)

	s, err := p.Solve(context.Background(), expr.NewLua(), problem.Newton, problem.SolveOptions{})
	require.NoError(t, err)
	require.Equal(t, solution.Converged, s.Status, s.Warning)
	assert.InDelta(t, 29.43, s.Values["v"], 1e-6)
	assert.InDelta(t, 44.145, s.Values["h"], 1e-6)

	s, err = p.Solve(context.Background(), expr.NewLua(), problem.Newton, problem.SolveOptions{NoPivoting: true})
	require.NoError(t, err)
	assert.Equal(t, solution.Failed, s.Status)
	assert.Contains(t, s.Warning, "singular")
}

func TestSolve_Univariate(t *testing.T) {
	p, err := problem.Parse("guess -5 for x\nkeep x on [-10, 0]\nx^2 = 4")
	require.NoError(t, err)
	s, err := p.Solve(context.Background(), expr.NewLua(), problem.Newton, problem.SolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, solution.Converged, s.Status)
	assert.InDelta(t, -2, s.Values["x"], 1e-4)
	assert.Empty(t, s.Warning)
}

func TestSolve_FailedCarriesWarning(t *testing.T) {
	p, err := problem.Parse("x - 1 = 0\nx - 2 + 0 y = 0")
	require.NoError(t, err)
	s, err := p.Solve(context.Background(), expr.NewLua(), problem.Newton, problem.SolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, solution.Failed, s.Status)
	assert.Contains(t, s.Warning, "singular")
}

func TestSolve_NotSquare(t *testing.T) {
	p, err := problem.Parse("x + y = 2")
	require.NoError(t, err)
	_, err = p.Solve(context.Background(), expr.NewLua(), problem.Newton, problem.SolveOptions{})
	assert.Error(t, err)
}

func TestParseMethod(t *testing.T) {
	m, err := problem.ParseMethod("Newton")
	require.NoError(t, err)
	assert.Equal(t, problem.Newton, m)
	m, err = problem.ParseMethod("gradient")
	require.NoError(t, err)
	assert.Equal(t, problem.Ascent, m)
	_, err = problem.ParseMethod("bisection")
	assert.ErrorIs(t, err, problem.ErrSyntax)
	assert.Equal(t, "Method(9)", problem.Method(9).String())
}

func TestSolution_Round(t *testing.T) {
	s := &problem.Solution{
		Values: map[string]float64{"x": 0.6180339887, "y": -2.5000004},
		Params: map[string]float64{"g": 9.80665},
	}
	r := s.Round(3)
	assert.Equal(t, map[string]float64{"x": 0.618, "y": -2.5}, r.Values)
	assert.Equal(t, map[string]float64{"g": 9.807}, r.Params)
	assert.Equal(t, 0.6180339887, s.Values["x"], "original untouched")
	assert.Equal(t, s.Values, s.Round(-1).Values)
}
