// SPDX-License-Identifier: MIT

package incidence

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvlath/graph/core"
	"github.com/katalvlaran/nexsys/expr"
)

// ErrConstantEquation reports an equation that mentions no unknown.
var ErrConstantEquation = errors.New("incidence: equation has no unknowns")

// Vertex ID prefixes. Equations and unknowns share one ID space, so every
// ID carries its side of the bipartition.
const (
	eqPrefix  = "eq:"
	varPrefix = "var:"
)

// Metadata keys on equation vertices.
const (
	metaIndex = "index" // int, position in the system
	metaUses  = "uses"  // []string, unknowns in first-appearance order
)

func equationID(i int) string { return eqPrefix + strconv.Itoa(i) }

func unknownID(name string) string { return varPrefix + name }

// Graph is the equation/unknown incidence structure: an undirected,
// unweighted lvlath graph with an edge between "eq:<i>" and "var:<name>"
// whenever equation i mentions unknown name.
type Graph struct {
	g *core.Graph
	n int // equations
}

// Build reads the unknowns of every equation, skipping names in params.
//
// Errors:
//   - expr syntax errors (wrapping expr.ErrEvaluation);
//   - ErrConstantEquation for an equation left with no unknowns.
func Build(equations []string, params map[string]float64) (*Graph, error) {
	g := &Graph{g: core.NewGraph(false, false), n: len(equations)}
	for i, eq := range equations {
		names, err := expr.Identifiers(eq)
		if err != nil {
			return nil, fmt.Errorf("equation %d: %w", i+1, err)
		}
		uses := make([]string, 0, len(names))
		for _, name := range names {
			if _, isParam := params[name]; !isParam {
				uses = append(uses, name)
			}
		}
		if len(uses) == 0 {
			return nil, fmt.Errorf("equation %d %q: %w", i+1, eq, ErrConstantEquation)
		}

		id := equationID(i)
		g.g.AddVertex(&core.Vertex{ID: id, Metadata: map[string]interface{}{
			metaIndex: i,
			metaUses:  uses,
		}})
		for _, name := range uses {
			g.g.AddEdge(id, unknownID(name), 0)
		}
	}

	return g, nil
}

// Unknowns returns every unknown name, sorted.
func (g *Graph) Unknowns() []string {
	var out []string
	for _, v := range g.g.Vertices() {
		if name, ok := strings.CutPrefix(v.ID, varPrefix); ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)

	return out
}

// Uses returns the unknowns of equation i in first-appearance order.
func (g *Graph) Uses(i int) []string {
	if i < 0 || i >= g.n {
		return nil
	}
	v := g.g.VerticesMap()[equationID(i)]
	uses, _ := v.Metadata[metaUses].([]string)

	return append([]string(nil), uses...)
}

// UsedBy returns the indices of the equations that mention name, ascending.
func (g *Graph) UsedBy(name string) []int {
	var out []int
	for _, v := range g.g.Neighbors(unknownID(name)) {
		out = append(out, equationIndex(v))
	}
	sort.Ints(out)

	return out
}

// equationIndex reads the index stored on an equation vertex.
func equationIndex(v *core.Vertex) int {
	i, _ := v.Metadata[metaIndex].(int)
	return i
}
