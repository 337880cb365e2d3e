package maze

import (
	"math/rand"

	"github.com/matzehuels/mazewalk/pkg/errors"
)

// Generate builds a maze of the given size from seed.
//
// Steps:
//  1. Allocate the grid; width or height below 1 → INVALID_CONFIG error.
//  2. Draw candidate edges from a math/rand source seeded with seed and sort
//     them by weight (see [CandidateEdges]).
//  3. Border pre-pass (see [Maze.BorderSkipped]).
//  4. Kruskal pass over the sorted edges until width·height−1 edges are taken.
//  5. Derive passage flags from the tree and check their symmetry.
//
// Equal (width, height, seed) always produce identical trees and passages.
//
// Complexity: O(E log E) for E ≈ 2·width·height candidate edges.
func Generate(width, height int, seed int64) (*Maze, error) {
	grid, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	edges := CandidateEdges(grid, rng)

	m := &Maze{grid: grid, seed: seed}
	m.tree, m.borderSkipped = spanningTree(grid, edges)

	derivePassages(grid, m.tree)
	if err := ValidatePassages(grid); err != nil {
		panic(errors.Wrap(errors.ErrCodeInvariant, err, "derived passages"))
	}
	return m, nil
}

// spanningTree selects width·height−1 edges of the sorted candidate list.
// It returns the tree and the border edges the pre-pass could not take.
func spanningTree(grid *Grid, edges []Edge) (tree, skipped []Edge) {
	want := grid.Len() - 1
	sets := NewDisjointSet(grid.Len())
	taken := make([]bool, len(edges))
	tree = make([]Edge, 0, want)

	// Border pre-pass. Every same-side edge is unioned whatever its weight.
	// On grids at least 2×2 the four sides form a closed ring; the ring edge
	// whose ends are already joined would close a cycle, so it is recorded
	// as skipped and its union is a no-op.
	for i, e := range edges {
		if !grid.SameBorder(e.Pair) {
			continue
		}
		a, b := grid.Index(e.A), grid.Index(e.B)
		joined := sets.Connected(a, b)
		sets.Union(a, b)
		if joined {
			skipped = append(skipped, e)
			continue
		}
		taken[i] = true
		tree = append(tree, e)
	}

	for i, e := range edges {
		if len(tree) == want {
			break
		}
		if taken[i] {
			continue
		}
		a, b := grid.Index(e.A), grid.Index(e.B)
		if sets.Connected(a, b) {
			continue
		}
		sets.Union(a, b)
		taken[i] = true
		tree = append(tree, e)
	}

	if len(tree) != want {
		errors.Invariant("spanning tree has %d edges, want %d", len(tree), want)
	}
	if n := sets.Components(); n != 1 {
		errors.Invariant("spanning tree leaves %d components, want 1", n)
	}
	return tree, skipped
}
