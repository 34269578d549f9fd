// SPDX-License-Identifier: MIT

package incidence

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/lvlath/graph/algorithms"
)

// Block is one connected component of the incidence graph.
type Block struct {
	Equations []int    // ascending indices into the system
	Unknowns  []string // sorted
}

// Square reports whether the block has as many equations as unknowns.
func (b Block) Square() bool { return len(b.Equations) == len(b.Unknowns) }

// Components splits g into blocks, one lvlath BFS per block. The walk
// alternates between equation and unknown vertices, so everything it
// reaches from an equation is one block.
//
// Determinism:
//   - Walks start from equations in index order, so blocks come out
//     ordered by their lowest equation index. Within a block both lists
//     are sorted, whatever order the walk visited them in.
//
// Errors:
//   - ctx.Err() when cancelled between vertices.
//
// Complexity:
//   - Time O(E + U + I) where I is the number of incidences, Space O(E + U).
func (g *Graph) Components(ctx context.Context) ([]Block, error) {
	seen := make([]bool, g.n)
	var blocks []Block

	for start := 0; start < g.n; start++ {
		if seen[start] {
			continue
		}
		res, err := algorithms.BFS(g.g, equationID(start), &algorithms.BFSOptions{Ctx: ctx})
		if err != nil {
			return nil, fmt.Errorf("components from equation %d: %w", start+1, err)
		}

		var b Block
		for _, v := range res.Order {
			if name, ok := strings.CutPrefix(v.ID, varPrefix); ok {
				b.Unknowns = append(b.Unknowns, name)
				continue
			}
			i := equationIndex(v)
			seen[i] = true
			b.Equations = append(b.Equations, i)
		}
		sort.Ints(b.Equations)
		sort.Strings(b.Unknowns)
		blocks = append(blocks, b)
	}

	return blocks, nil
}

// Blocks is Build followed by Components.
func Blocks(ctx context.Context, equations []string, params map[string]float64) ([]Block, error) {
	g, err := Build(equations, params)
	if err != nil {
		return nil, err
	}

	return g.Components(ctx)
}
