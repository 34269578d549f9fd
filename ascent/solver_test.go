package ascent_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/nexsys/ascent"
	"github.com/katalvlaran/nexsys/expr"
	"github.com/katalvlaran/nexsys/solution"
	"github.com/katalvlaran/nexsys/variable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolValue = 1e-3

func TestSolveText_Linear(t *testing.T) {
	s := ascent.New(expr.NewLua())
	out, err := s.SolveText(context.Background(), "x+y=9\nx-y=4", nil)
	require.NoError(t, err)
	assert.InDelta(t, 6.5, out.Value["x"], tolValue)
	assert.InDelta(t, 2.5, out.Value["y"], tolValue)
	assert.NotEqual(t, solution.Failed, out.Status)
}

func TestSolveText_Nonlinear(t *testing.T) {
	s := ascent.New(expr.NewLua())
	out, err := s.SolveText(context.Background(), "x^2-y=0\nz-x=1\nx+y=1", nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.618, out.Value["x"], tolValue)
	assert.InDelta(t, 0.382, out.Value["y"], tolValue)
	assert.InDelta(t, 1.618, out.Value["z"], tolValue)
}

func TestSolve_Table(t *testing.T) {
	cases := []struct {
		name      string
		equations []string
		opts      []ascent.Option
		want      map[string]float64
	}{
		{
			name:      "params are not unknowns",
			equations: []string{"a x = b"},
			opts:      []ascent.Option{ascent.WithParams(map[string]float64{"a": 2, "b": 8})},
			want:      map[string]float64{"x": 4},
		},
		{
			name:      "guess selects the root",
			equations: []string{"x^2 = 4"},
			opts:      []ascent.Option{ascent.WithGuess(map[string]float64{"x": -3})},
			want:      map[string]float64{"x": -2},
		},
		{
			name:      "decay by ten",
			equations: []string{"x + y = 9", "x - y = 4"},
			opts:      []ascent.Option{ascent.WithDecay(10), ascent.WithInitialStep(1)},
			want:      map[string]float64{"x": 6.5, "y": 2.5},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := ascent.New(expr.NewLua(), tc.opts...).Solve(context.Background(), tc.equations, nil)
			require.NoError(t, err)
			require.Len(t, out.Value, len(tc.want))
			for name, want := range tc.want {
				assert.InDelta(t, want, out.Value[name], tolValue, name)
			}
		})
	}
}

func TestSolve_AlreadySolved(t *testing.T) {
	out, err := ascent.New(expr.NewLua()).Solve(context.Background(), []string{"x - 1", "2y = 2"}, nil)
	require.NoError(t, err)
	assert.Equal(t, solution.Converged, out.Status)
	assert.Equal(t, 0, out.Iterations)
	assert.Equal(t, map[string]float64{"x": 1, "y": 1}, out.Value)
}

func TestSolve_BoundedInfeasible(t *testing.T) {
	bounds := map[string]variable.Domain{
		"x":     {Low: 0, High: 5},
		"ghost": {Low: 0, High: 1}, // not an unknown: ignored
	}
	out, err := ascent.New(expr.NewLua()).Solve(context.Background(), []string{"x + y = 9", "x - y = 4"}, bounds)
	require.NoError(t, err)
	assert.Equal(t, solution.Exhausted, out.Status)
	assert.LessOrEqual(t, out.Value["x"], 5.0)
	assert.InDelta(t, 5, out.Value["x"], 1e-2)
	assert.NotContains(t, out.Value, "ghost")
	assert.GreaterOrEqual(t, out.Residual, 3.0-1e-6)
}

func TestSolve_StepFloor(t *testing.T) {
	bounds := map[string]variable.Domain{"x": {Low: 0, High: 5}}
	out, err := ascent.New(expr.NewLua()).Solve(context.Background(), []string{"x = 9"}, bounds)
	require.NoError(t, err)
	assert.Equal(t, solution.Exhausted, out.Status)
	assert.ErrorIs(t, out.Cause, ascent.ErrStepFloor)
	assert.NotErrorIs(t, out.Cause, solution.ErrIterationLimit)
	assert.Equal(t, 5.0, out.Value["x"])
	assert.InDelta(t, 4, out.Residual, 1e-9)
}

// Both equations change sign across the answer, so Σ|rᵢ| has a kink along
// each line and the gradient alone creeps along the ridge.
func TestSolve_AcrossKink(t *testing.T) {
	cases := []struct {
		name      string
		equations []string
		opts      []ascent.Option
		bounds    map[string]variable.Domain
		want      map[string]float64
	}{
		{
			name:      "non-symmetric 2x2",
			equations: []string{"x + y = 9", "x - 3 y = 4"},
			want:      map[string]float64{"x": 7.75, "y": 1.25},
		},
		{
			name:      "steep and shallow",
			equations: []string{"10 x + y = 12", "x - 5 y = -4"},
			opts:      []ascent.Option{ascent.WithGuess(map[string]float64{"x": -3, "y": 7})},
			want:      map[string]float64{"x": 56.0 / 51, "y": 52.0 / 51},
		},
		{
			name:      "bounded projectile",
			equations: []string{"v = g t", "h = v t - g t^2 / 2"},
			opts: []ascent.Option{
				ascent.WithParams(map[string]float64{"g": 9.81, "t": 3}),
				ascent.WithGuess(map[string]float64{"v": 10}),
			},
			bounds: map[string]variable.Domain{"h": {Low: 0, High: 100}},
			want:   map[string]float64{"v": 29.43, "h": 44.145},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := ascent.New(expr.NewLua(), tc.opts...).Solve(context.Background(), tc.equations, tc.bounds)
			require.NoError(t, err)
			require.Equal(t, solution.Converged, out.Status, "cause: %v", out.Cause)
			for name, want := range tc.want {
				assert.InDelta(t, want, out.Value[name], tolValue, name)
			}
		})
	}
}

func TestSolve_Overdetermined(t *testing.T) {
	out, err := ascent.New(expr.NewLua()).Solve(context.Background(),
		[]string{"x + y = 3", "x - y = 1", "2 x + y = 5"}, nil)
	require.NoError(t, err)
	assert.Equal(t, solution.Converged, out.Status)
	assert.InDelta(t, 2, out.Value["x"], tolValue)
	assert.InDelta(t, 1, out.Value["y"], tolValue)
}

func TestSolve_IterationLimitAndObserver(t *testing.T) {
	var trace []solution.Iteration
	s := ascent.New(expr.NewLua(),
		ascent.WithIterationLimit(3),
		ascent.WithInitialStep(0.01),
		ascent.WithObserver(func(it solution.Iteration) { trace = append(trace, it) }),
	)
	out, err := s.Solve(context.Background(), []string{"x + y = 9", "x - y = 4"}, nil)
	require.NoError(t, err)
	assert.Equal(t, solution.Exhausted, out.Status)
	assert.Equal(t, 3, out.Iterations)
	assert.ErrorIs(t, out.Cause, solution.ErrIterationLimit)
	require.Len(t, trace, 3)
	for i, it := range trace {
		assert.Equal(t, i+1, it.N)
		assert.Equal(t, "ascent", it.Solver)
	}
}

func TestSolve_MinDelta(t *testing.T) {
	s := ascent.New(expr.NewLua(), ascent.WithMinDelta(1e9), ascent.WithInitialStep(0.5))
	out, err := s.Solve(context.Background(), []string{"x + y = 9", "x - y = 4"}, nil)
	require.NoError(t, err)
	assert.Equal(t, solution.Exhausted, out.Status)
	assert.ErrorIs(t, out.Cause, ascent.ErrStalled)
	assert.Less(t, out.Residual, 11.0)
}

func TestSolve_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out, err := ascent.New(expr.NewLua()).Solve(ctx, []string{"x = 3"}, nil)
	require.NoError(t, err)
	assert.Equal(t, solution.Exhausted, out.Status)
	assert.ErrorIs(t, out.Cause, context.Canceled)
	assert.Equal(t, 1.0, out.Value["x"])
}

func TestSolve_Errors(t *testing.T) {
	s := ascent.New(expr.NewLua())

	_, err := s.Solve(context.Background(), []string{"x +"}, nil)
	assert.ErrorIs(t, err, expr.ErrEvaluation)

	_, err = s.Solve(context.Background(), []string{"x = 1 = 2"}, nil)
	assert.ErrorIs(t, err, expr.ErrEvaluation)

	_, err = s.Solve(context.Background(), []string{"x = 1"}, map[string]variable.Domain{"x": {Low: 2, High: 1}})
	assert.ErrorIs(t, err, variable.ErrInvalidDomain)
}

func TestUnknowns(t *testing.T) {
	s := ascent.New(expr.NewLua(), ascent.WithParams(map[string]float64{"g": 9.81}))
	names, err := s.Unknowns([]string{"v = g t", "h = g t^2 / 2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"h", "t", "v"}, names)
}

func TestOptions_Panic(t *testing.T) {
	assert.Panics(t, func() { ascent.WithIterationLimit(0) })
	assert.Panics(t, func() { ascent.WithTolerance(-1) })
	assert.Panics(t, func() { ascent.WithMinDelta(-1) })
	assert.Panics(t, func() { ascent.WithInitialStep(0) })
	assert.Panics(t, func() { ascent.WithStepFloor(0) })
	assert.Panics(t, func() { ascent.WithDecay(1) })
	assert.InDelta(t, 1.618034, ascent.Phi, 1e-6)
}
