package maze

import (
	"fmt"
	"strings"

	"github.com/matzehuels/mazewalk/pkg/errors"
)

// Coord addresses a cell by column and row, both 0-indexed.
type Coord struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// String formats the coordinate as "(col,row)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Step returns the coordinate one cell away in direction d. The result may
// lie outside the grid; use [Grid.Neighbor] for a bounds-checked lookup.
func (c Coord) Step(d Direction) Coord {
	dc, dr := d.Delta()
	return Coord{Col: c.Col + dc, Row: c.Row + dr}
}

// Direction is one of the four grid directions.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every direction in declaration order.
var Directions = [...]Direction{Up, Down, Left, Right}

var directionNames = [...]string{"up", "down", "left", "right"}

// String returns the lower-case direction name.
func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// Opposite returns the direction pointing back.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Delta returns the column and row offsets of one step in direction d.
func (d Direction) Delta() (dc, dr int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

// ParseDirection accepts direction names ("up"), compass names ("north") and
// the wasd keys ("w").
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u", "north", "n", "w":
		return Up, nil
	case "down", "south", "s":
		return Down, nil
	case "left", "l", "west", "a":
		return Left, nil
	case "right", "r", "east", "e", "d":
		return Right, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidDirection, "unknown direction %q", s)
}

// Cell holds the passage flags of one grid cell. A flag is true when there is
// no wall between the cell and its neighbour in that direction.
type Cell struct {
	OpenUp    bool `json:"up"`
	OpenDown  bool `json:"down"`
	OpenLeft  bool `json:"left"`
	OpenRight bool `json:"right"`
}

// Open reports whether the passage in direction d is open.
func (c Cell) Open(d Direction) bool {
	switch d {
	case Up:
		return c.OpenUp
	case Down:
		return c.OpenDown
	case Left:
		return c.OpenLeft
	case Right:
		return c.OpenRight
	}
	return false
}

func (c *Cell) setOpen(d Direction) {
	switch d {
	case Up:
		c.OpenUp = true
	case Down:
		c.OpenDown = true
	case Left:
		c.OpenLeft = true
	case Right:
		c.OpenRight = true
	}
}

// Pair is an unordered pair of grid-adjacent cells. B is always the Down or
// Right neighbour of A.
type Pair struct {
	A, B Coord
}

// Direction returns the direction from A to B.
func (p Pair) Direction() Direction {
	if p.B.Row > p.A.Row {
		return Down
	}
	if p.B.Row < p.A.Row {
		return Up
	}
	if p.B.Col < p.A.Col {
		return Left
	}
	return Right
}

// Grid is a fixed-size rectangular array of cells.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// NewGrid allocates a grid with every passage closed.
// It returns an INVALID_CONFIG error if width or height is below 1.
func NewGrid(width, height int) (*Grid, error) {
	if err := errors.ValidateDimensions(width, height); err != nil {
		return nil, err
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// Contains reports whether c lies inside the grid.
func (g *Grid) Contains(c Coord) bool {
	return c.Col >= 0 && c.Col < g.width && c.Row >= 0 && c.Row < g.height
}

// Index returns the row-major slice index of c. c must lie inside the grid.
func (g *Grid) Index(c Coord) int {
	return c.Row*g.width + c.Col
}

// CoordOf is the inverse of Index.
func (g *Grid) CoordOf(i int) Coord {
	return Coord{Col: i % g.width, Row: i / g.width}
}

// Cell returns the cell at c, or a closed cell if c is outside the grid.
func (g *Grid) Cell(c Coord) Cell {
	if !g.Contains(c) {
		return Cell{}
	}
	return g.cells[g.Index(c)]
}

// Neighbor returns the cell adjacent to c in direction d. The boolean is
// false at the grid boundary.
func (g *Grid) Neighbor(c Coord, d Direction) (Coord, bool) {
	n := c.Step(d)
	if !g.Contains(n) {
		return Coord{}, false
	}
	return n, true
}

// AdjacentPairs enumerates every grid-adjacent pair exactly once. Cells are
// visited row-major and each contributes its Down pair before its Right pair.
func (g *Grid) AdjacentPairs() []Pair {
	pairs := make([]Pair, 0, 2*g.width*g.height-g.width-g.height)
	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			c := Coord{Col: col, Row: row}
			if n, ok := g.Neighbor(c, Down); ok {
				pairs = append(pairs, Pair{A: c, B: n})
			}
			if n, ok := g.Neighbor(c, Right); ok {
				pairs = append(pairs, Pair{A: c, B: n})
			}
		}
	}
	return pairs
}

// SameBorder reports whether both cells of p lie on one outer side of the
// grid: both in the first column, the first row, the last column or the
// last row.
func (g *Grid) SameBorder(p Pair) bool {
	lastCol, lastRow := g.width-1, g.height-1
	switch {
	case p.A.Col == 0 && p.B.Col == 0:
		return true
	case p.A.Row == 0 && p.B.Row == 0:
		return true
	case p.A.Col == lastCol && p.B.Col == lastCol:
		return true
	case p.A.Row == lastRow && p.B.Row == lastRow:
		return true
	}
	return false
}

// open marks the passage between the cells of p on both sides.
func (g *Grid) open(p Pair) {
	d := p.Direction()
	g.cells[g.Index(p.A)].setOpen(d)
	g.cells[g.Index(p.B)].setOpen(d.Opposite())
}
