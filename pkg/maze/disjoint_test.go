package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisjointSet_Singletons(t *testing.T) {
	s := NewDisjointSet(4)
	assert.Equal(t, 4, s.Components())
	for i := 0; i < 4; i++ {
		assert.Equal(t, i, s.Find(i))
	}
	assert.False(t, s.Connected(0, 1))
}

func TestDisjointSet_UnionPointsAtSecondRoot(t *testing.T) {
	s := NewDisjointSet(3)
	s.Union(0, 1)
	assert.Equal(t, 1, s.Find(0), "root of a points at root of b")

	s.Union(2, 0)
	assert.Equal(t, 1, s.Find(2))
	assert.True(t, s.Connected(0, 2))
	assert.Equal(t, 1, s.Components())
}

func TestDisjointSet_UnionIdempotent(t *testing.T) {
	s := NewDisjointSet(3)
	s.Union(0, 1)
	s.Union(0, 1)
	s.Union(1, 0)
	assert.Equal(t, 2, s.Components())
}

func TestDisjointSet_PathCompression(t *testing.T) {
	s := NewDisjointSet(6)
	// Build a chain 0 → 1 → 2 → 3 → 4 → 5.
	for i := 0; i < 5; i++ {
		s.Union(i, i+1)
	}
	require.Equal(t, 5, s.Find(0))
	for i := 0; i < 6; i++ {
		assert.Equal(t, 5, s.parent[i], "element %d should point at the root", i)
	}
}

func TestSpanningTree_PanicsOnDisconnectedCandidates(t *testing.T) {
	g, err := NewGrid(3, 3)
	require.NoError(t, err)
	// Drop every candidate that touches the centre cell.
	var edges []Edge
	for _, p := range g.AdjacentPairs() {
		if p.A == (Coord{1, 1}) || p.B == (Coord{1, 1}) {
			continue
		}
		edges = append(edges, Edge{Pair: p})
	}
	assert.Panics(t, func() { spanningTree(g, edges) })
}

func TestValidatePassages_DetectsAsymmetry(t *testing.T) {
	g, err := NewGrid(2, 1)
	require.NoError(t, err)
	require.NoError(t, ValidatePassages(g))

	g.cells[0].OpenRight = true
	assert.Error(t, ValidatePassages(g))

	g.cells[1].OpenLeft = true
	assert.NoError(t, ValidatePassages(g))

	g.cells[1].OpenRight = true
	assert.Error(t, ValidatePassages(g), "opening onto the boundary")
}
