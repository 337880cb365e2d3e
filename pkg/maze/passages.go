package maze

import (
	"fmt"
)

// derivePassages opens both facing sides of every tree edge. All other flags
// stay closed.
func derivePassages(g *Grid, tree []Edge) {
	for i := range g.cells {
		g.cells[i] = Cell{}
	}
	for _, e := range tree {
		g.open(e.Pair)
	}
}

// ValidatePassages checks that passage flags agree across every adjacent
// pair (open right on A ⇔ open left on B, open down on A ⇔ open up on B) and
// that no cell opens onto the outside of the grid.
func ValidatePassages(g *Grid) error {
	for _, p := range g.AdjacentPairs() {
		d := p.Direction()
		a, b := g.Cell(p.A), g.Cell(p.B)
		if a.Open(d) != b.Open(d.Opposite()) {
			return fmt.Errorf("asymmetric passage between %s and %s: %s=%v, %s=%v",
				p.A, p.B, d, a.Open(d), d.Opposite(), b.Open(d.Opposite()))
		}
	}
	for i, c := range g.cells {
		at := g.CoordOf(i)
		for _, d := range Directions {
			if _, ok := g.Neighbor(at, d); !ok && c.Open(d) {
				return fmt.Errorf("cell %s opens %s onto the boundary", at, d)
			}
		}
	}
	return nil
}
