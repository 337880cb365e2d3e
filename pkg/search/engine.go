package search

import (
	"github.com/matzehuels/mazewalk/pkg/errors"
	"github.com/matzehuels/mazewalk/pkg/maze"
)

// Passages is the read-only view of a maze the engine searches.
// *maze.Maze implements it.
type Passages interface {
	Width() int
	Height() int
	Open(c maze.Coord, d maze.Direction) bool
	Neighbor(c maze.Coord, d maze.Direction) (maze.Coord, bool)
}

// expandOrder is the neighbour order used when a cell is expanded.
var expandOrder = [...]maze.Direction{maze.Down, maze.Up, maze.Left, maze.Right}

// Stats summarises a search pass.
type Stats struct {
	Steps       int `json:"steps"`
	Visited     int `json:"visited"`
	PathLength  int `json:"path_length"`
	MaxFrontier int `json:"max_frontier"`
}

// Engine is a stepwise BFS/DFS search from a start cell to a goal cell.
type Engine struct {
	p           Passages
	width       int
	start, goal int

	mode     Mode
	state    State
	frontier frontier

	visited  []bool
	expanded []bool
	onPath   []bool
	pred     []int
	path     []maze.Coord

	steps       int
	maxFrontier int
}

// NewEngine creates an idle engine. It returns an INVALID_INPUT error when
// start or goal lies outside the grid.
func NewEngine(p Passages, start, goal maze.Coord) (*Engine, error) {
	w, h := p.Width(), p.Height()
	if err := errors.ValidateDimensions(w, h); err != nil {
		return nil, err
	}
	for _, c := range []maze.Coord{start, goal} {
		if c.Col < 0 || c.Col >= w || c.Row < 0 || c.Row >= h {
			return nil, errors.New(errors.ErrCodeInvalidInput, "cell %s outside %dx%d grid", c, w, h)
		}
	}
	n := w * h
	e := &Engine{
		p:        p,
		width:    w,
		visited:  make([]bool, n),
		expanded: make([]bool, n),
		onPath:   make([]bool, n),
		pred:     make([]int, n),
	}
	e.start = e.index(start)
	e.goal = e.index(goal)
	e.Reset()
	return e, nil
}

func (e *Engine) index(c maze.Coord) int { return c.Row*e.width + c.Col }

func (e *Engine) coord(i int) maze.Coord {
	return maze.Coord{Col: i % e.width, Row: i / e.width}
}

func (e *Engine) contains(c maze.Coord) bool {
	return c.Col >= 0 && c.Col < e.width && c.Row >= 0 && c.Row < len(e.visited)/e.width
}

// Reset clears all search state and returns the engine to Idle.
func (e *Engine) Reset() {
	for i := range e.visited {
		e.visited[i] = false
		e.expanded[i] = false
		e.onPath[i] = false
		e.pred[i] = -1
	}
	e.path = nil
	e.frontier = nil
	e.state = StateIdle
	e.steps = 0
	e.maxFrontier = 0
}

// Start resets the engine and seeds the frontier with the start cell.
func (e *Engine) Start(m Mode) {
	e.Reset()
	e.mode = m
	e.frontier = newFrontier(m)
	e.frontier.push(e.start)
	e.visited[e.start] = true
	e.maxFrontier = 1
	e.state = StateRunning
}

// Advance performs one search step and returns the resulting state.
//
// Idle, Found and Exhausted engines are left unchanged. A running engine
// with an empty frontier becomes Exhausted. Otherwise one cell is popped: the
// goal ends the search and builds the path, any other cell pushes its open,
// unvisited neighbours.
func (e *Engine) Advance() State {
	if e.state != StateRunning {
		return e.state
	}
	if e.frontier.len() == 0 {
		e.state = StateExhausted
		return e.state
	}

	cur := e.frontier.pop()
	e.steps++
	e.visited[cur] = true
	e.expanded[cur] = true

	if cur == e.goal {
		e.state = StateFound
		e.buildPath()
		return e.state
	}

	at := e.coord(cur)
	for _, d := range expandOrder {
		if !e.p.Open(at, d) {
			continue
		}
		next, ok := e.p.Neighbor(at, d)
		if !ok {
			continue
		}
		ni := e.index(next)
		if e.visited[ni] {
			continue
		}
		e.visited[ni] = true
		e.pred[ni] = cur
		e.frontier.push(ni)
	}
	if n := e.frontier.len(); n > e.maxFrontier {
		e.maxFrontier = n
	}
	return e.state
}

// Run advances until the search terminates or limit steps have been taken.
// A limit of zero or less means no limit.
func (e *Engine) Run(limit int) State {
	for i := 0; e.state == StateRunning && (limit <= 0 || i < limit); i++ {
		e.Advance()
	}
	return e.state
}

func (e *Engine) buildPath() {
	var rev []int
	for i := e.goal; i != -1; i = e.pred[i] {
		rev = append(rev, i)
		if i == e.start {
			break
		}
	}
	if rev[len(rev)-1] != e.start {
		errors.Invariant("path from %s does not reach start %s", e.coord(e.goal), e.coord(e.start))
	}
	e.path = make([]maze.Coord, len(rev))
	for k, i := range rev {
		e.path[len(rev)-1-k] = e.coord(i)
		e.onPath[i] = true
	}
}

// State returns the current lifecycle state.
func (e *Engine) State() State { return e.state }

// Mode returns the mode of the current or last search pass.
func (e *Engine) Mode() Mode { return e.mode }

// StartCell returns the cell searches begin from.
func (e *Engine) StartCell() maze.Coord { return e.coord(e.start) }

// GoalCell returns the cell searches look for.
func (e *Engine) GoalCell() maze.Coord { return e.coord(e.goal) }

// Visited reports whether c has been pushed onto the frontier during the
// current pass. Cells outside the grid are never visited.
func (e *Engine) Visited(c maze.Coord) bool {
	return e.contains(c) && e.visited[e.index(c)]
}

// Expanded reports whether c has been popped from the frontier.
func (e *Engine) Expanded(c maze.Coord) bool {
	return e.contains(c) && e.expanded[e.index(c)]
}

// OnPath reports whether c lies on the reconstructed path.
func (e *Engine) OnPath(c maze.Coord) bool {
	return e.contains(c) && e.onPath[e.index(c)]
}

// Predecessor returns the cell c was discovered from. The boolean is false
// for the start cell and for undiscovered cells.
func (e *Engine) Predecessor(c maze.Coord) (maze.Coord, bool) {
	if !e.contains(c) {
		return maze.Coord{}, false
	}
	p := e.pred[e.index(c)]
	if p < 0 {
		return maze.Coord{}, false
	}
	return e.coord(p), true
}

// Path returns a copy of the start-to-goal path, or nil before Found.
func (e *Engine) Path() []maze.Coord {
	if e.path == nil {
		return nil
	}
	out := make([]maze.Coord, len(e.path))
	copy(out, e.path)
	return out
}

// Frontier returns the pending cells, next to be popped first.
func (e *Engine) Frontier() []maze.Coord {
	if e.frontier == nil {
		return nil
	}
	items := e.frontier.items()
	out := make([]maze.Coord, len(items))
	for k, i := range items {
		out[k] = e.coord(i)
	}
	return out
}

// Steps returns the number of cells popped in the current pass.
func (e *Engine) Steps() int { return e.steps }

// Stats summarises the current pass.
func (e *Engine) Stats() Stats {
	s := Stats{
		Steps:       e.steps,
		PathLength:  len(e.path),
		MaxFrontier: e.maxFrontier,
	}
	for _, v := range e.visited {
		if v {
			s.Visited++
		}
	}
	return s
}
