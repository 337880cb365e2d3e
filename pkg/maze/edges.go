package maze

import (
	"math/rand"
	"sort"
)

// MaxWeight is the exclusive upper bound of candidate edge weights.
const MaxWeight = 50

// Edge is a weighted pair of adjacent cells.
type Edge struct {
	Pair
	Weight int `json:"weight"`
}

// CandidateEdges assigns an independent weight in [0, MaxWeight) to every
// adjacent pair of g and returns the edges sorted ascending by weight.
// Equal weights keep the discovery order of [Grid.AdjacentPairs], so the
// result depends only on the grid size and the state of rng.
func CandidateEdges(g *Grid, rng *rand.Rand) []Edge {
	pairs := g.AdjacentPairs()
	edges := make([]Edge, len(pairs))
	for i, p := range pairs {
		edges[i] = Edge{Pair: p, Weight: rng.Intn(MaxWeight)}
	}
	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].Weight < edges[j].Weight
	})
	return edges
}
