// SPDX-License-Identifier: MIT

// Package incidence builds the bipartite graph linking equations to the
// unknowns they mention and splits a system into independent blocks.
//
// Two equations belong to the same block when a chain of shared unknowns
// connects them. Blocks can be solved separately; a block with more
// equations than unknowns (or fewer) is over- or under-constrained on its
// own, even when the whole system looks square.
//
// The graph itself is a github.com/katalvlaran/lvlath core.Graph with
// "eq:<index>" and "var:<name>" vertices; blocks are its BFS components.
//
//	blocks, _ := incidence.Blocks(ctx, []string{"x + y = 3", "x - y = 1", "z = 2"}, nil)
//	// blocks[0]: equations [0 1], unknowns [x y]
//	// blocks[1]: equations [2],   unknowns [z]
package incidence
