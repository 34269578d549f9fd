// SPDX-License-Identifier: MIT

package problem

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/katalvlaran/nexsys/expr"
	"github.com/katalvlaran/nexsys/solution"
)

// DefaultSweepPoints is the sample count when SweepSpec.Points is zero.
const DefaultSweepPoints = 25

// ErrSweep reports a sweep that cannot run on the document.
var ErrSweep = errors.New("problem: invalid sweep")

var reName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SweepSpec describes a parameter sweep.
type SweepSpec struct {
	Param    string   // name to vary: a parameter or an unknown of the document
	From, To float64  // inclusive range
	Points   int      // samples, at least 2; 0 means DefaultSweepPoints
	Report   []string // names to tabulate; empty means every unknown
}

// SweepResult is a finished sweep. Report lists the tabulated names in
// column order.
type SweepResult struct {
	Param  string
	Report []string
	Points []SweepPoint
}

// SweepPoint is one solved sample.
type SweepPoint struct {
	Value    float64
	Solution *Solution
}

// Lookup returns name from the point's values or, failing that, its params.
func (pt SweepPoint) Lookup(name string) (float64, bool) {
	if v, ok := pt.Solution.Values[name]; ok {
		return v, true
	}
	v, ok := pt.Solution.Params[name]

	return v, ok
}

// Sweep solves the document once per sample of spec.Param.
//
// Implementation:
//   - Stage 1: fix spec.Param. A parameter keeps its position (later ones
//     may use it) and has its expression replaced by the sample; an unknown
//     becomes a leading parameter and leaves the solve.
//   - Stage 2: sample i is From + i·(To-From)/(Points-1), the last one
//     exactly To.
//   - Stage 3: solve each sample in order. A converged sample seeds the
//     guesses of the next one.
//
// Errors:
//   - ErrSweep for a bad name, range or point count, or a report name the
//     document does not define;
//   - anything Solve returns, and ctx.Err() between samples.
//
// Complexity:
//   - Points solves.
func (p *Problem) Sweep(
	ctx context.Context,
	eval expr.Evaluator,
	m Method,
	o SolveOptions,
	spec SweepSpec,
) (*SweepResult, error) {
	points := spec.Points
	if points == 0 {
		points = DefaultSweepPoints
	}
	if points < 2 {
		return nil, fmt.Errorf("%w: need at least 2 points, got %d", ErrSweep, points)
	}
	if math.IsNaN(spec.From) || math.IsInf(spec.From, 0) || math.IsNaN(spec.To) || math.IsInf(spec.To, 0) {
		return nil, fmt.Errorf("%w: range [%g, %g] must be finite", ErrSweep, spec.From, spec.To)
	}
	if !reName.MatchString(spec.Param) || expr.IsReserved(spec.Param) {
		return nil, fmt.Errorf("%w: cannot sweep %q", ErrSweep, spec.Param)
	}

	q, slot, err := p.withSwept(spec.Param)
	if err != nil {
		return nil, err
	}
	report, err := q.reportNames(spec.Report)
	if err != nil {
		return nil, err
	}

	out := &SweepResult{Param: spec.Param, Report: report, Points: make([]SweepPoint, 0, points)}
	step := (spec.To - spec.From) / float64(points-1)
	for i := 0; i < points; i++ {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		x := spec.From + float64(i)*step
		if i == points-1 {
			x = spec.To
		}
		q.Params[slot].Expr = strconv.FormatFloat(x, 'g', -1, 64)

		s, err := q.Solve(ctx, eval, m, o)
		if err != nil {
			return nil, fmt.Errorf("%s = %g: %w", spec.Param, x, err)
		}
		if s.Status == solution.Converged {
			for name, v := range s.Values {
				q.Guesses[name] = v
			}
		}
		out.Points = append(out.Points, SweepPoint{Value: x, Solution: s})
	}

	return out, nil
}

// withSwept returns a copy of p in which name is a parameter, and the index
// of that parameter.
func (p *Problem) withSwept(name string) (*Problem, int, error) {
	q := &Problem{
		Equations: append([]string(nil), p.Equations...),
		Params:    append([]Param(nil), p.Params...),
		Guesses:   make(map[string]float64, len(p.Guesses)),
		Bounds:    p.Bounds,
	}
	for k, v := range p.Guesses {
		q.Guesses[k] = v
	}
	for i, prm := range q.Params {
		if prm.Name == name {
			return q, i, nil
		}
	}

	unknowns, err := p.Unknowns()
	if err != nil {
		return nil, 0, err
	}
	for _, u := range unknowns {
		if u == name {
			q.Params = append([]Param{{Name: name}}, q.Params...)
			return q, 0, nil
		}
	}

	return nil, 0, fmt.Errorf("%w: %s is neither a parameter nor an unknown", ErrSweep, name)
}

// reportNames validates names against q, defaulting to every unknown.
func (p *Problem) reportNames(names []string) ([]string, error) {
	unknowns, err := p.Unknowns()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return unknowns, nil
	}
	known := make(map[string]struct{}, len(unknowns)+len(p.Params))
	for _, u := range unknowns {
		known[u] = struct{}{}
	}
	for _, prm := range p.Params {
		known[prm.Name] = struct{}{}
	}
	for _, name := range names {
		if _, ok := known[name]; !ok {
			return nil, fmt.Errorf("%w: cannot report %q: not a parameter or an unknown", ErrSweep, name)
		}
	}

	return append([]string(nil), names...), nil
}
