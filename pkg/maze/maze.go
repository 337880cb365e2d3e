package maze

// Maze is a generated grid maze. It is immutable once [Generate] returns.
type Maze struct {
	grid          *Grid
	tree          []Edge
	borderSkipped []Edge
	seed          int64
}

// Width returns the number of columns.
func (m *Maze) Width() int { return m.grid.width }

// Height returns the number of rows.
func (m *Maze) Height() int { return m.grid.height }

// Seed returns the random seed the maze was generated from.
func (m *Maze) Seed() int64 { return m.seed }

// Grid returns the underlying grid. Callers must not modify it.
func (m *Maze) Grid() *Grid { return m.grid }

// Start is the top-left cell.
func (m *Maze) Start() Coord { return Coord{} }

// Goal is the bottom-right cell.
func (m *Maze) Goal() Coord {
	return Coord{Col: m.grid.width - 1, Row: m.grid.height - 1}
}

// Contains reports whether c lies inside the maze.
func (m *Maze) Contains(c Coord) bool { return m.grid.Contains(c) }

// Cell returns the passage flags of c.
func (m *Maze) Cell(c Coord) Cell { return m.grid.Cell(c) }

// Open reports whether the passage from c in direction d is open.
// Cells outside the maze have no open passages.
func (m *Maze) Open(c Coord, d Direction) bool {
	return m.grid.Cell(c).Open(d)
}

// Neighbor returns the cell adjacent to c in direction d, ignoring walls.
func (m *Maze) Neighbor(c Coord, d Direction) (Coord, bool) {
	return m.grid.Neighbor(c, d)
}

// Tree returns a copy of the spanning-tree edges in selection order.
func (m *Maze) Tree() []Edge {
	out := make([]Edge, len(m.tree))
	copy(out, m.tree)
	return out
}

// BorderSkipped returns the same-side border edges the border pre-pass
// visited but did not add because their cells were already joined along the
// border ring. It holds exactly one edge when both width and height are at
// least 2, and none otherwise.
func (m *Maze) BorderSkipped() []Edge {
	out := make([]Edge, len(m.borderSkipped))
	copy(out, m.borderSkipped)
	return out
}
