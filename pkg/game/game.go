// Package game combines a maze, a player and a search engine into one
// step-driven session.
//
// A Game owns no goroutines and no timers. The caller drives it: [Game.Move]
// on player input, [Game.Tick] once per animation frame, [Game.Regenerate]
// to start over on a fresh maze. A Game is not safe for concurrent use.
package game

import (
	"math/rand"
	"time"

	"github.com/matzehuels/mazewalk/pkg/errors"
	"github.com/matzehuels/mazewalk/pkg/maze"
	"github.com/matzehuels/mazewalk/pkg/search"
)

// Option configures a [Game].
type Option func(*options)

type options struct {
	seed   int64
	seeded bool
}

// WithSeed fixes the seed of the first maze. Subsequent mazes created by
// [Game.Regenerate] derive their seeds from it, so a seeded session always
// replays the same sequence.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// Game is one interactive maze session.
type Game struct {
	width, height int

	rng    *rand.Rand
	maze   *maze.Maze
	engine *search.Engine

	player     maze.Coord
	moves      int
	trail      []bool
	generation int
}

// New generates the first maze. It returns an INVALID_CONFIG error when
// width or height is below 1. Without [WithSeed] the seed is taken from the
// clock.
func New(width, height int, opts ...Option) (*Game, error) {
	if err := errors.ValidateDimensions(width, height); err != nil {
		return nil, err
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.seeded {
		o.seed = time.Now().UnixNano()
	}

	g := &Game{
		width:  width,
		height: height,
		rng:    rand.New(rand.NewSource(o.seed)),
	}
	if err := g.load(o.seed); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) load(seed int64) error {
	m, err := maze.Generate(g.width, g.height, seed)
	if err != nil {
		return err
	}
	eng, err := search.NewEngine(m, m.Start(), m.Goal())
	if err != nil {
		return err
	}
	g.maze = m
	g.engine = eng
	g.player = m.Start()
	g.moves = 0
	g.trail = make([]bool, m.Grid().Len())
	g.generation++
	return nil
}

// Regenerate replaces the maze with a new one of the same size. The player
// returns to the start and any search is discarded.
func (g *Game) Regenerate() {
	if err := g.load(g.rng.Int63()); err != nil {
		// Dimensions were validated by New.
		errors.Invariant("regenerate %dx%d: %v", g.width, g.height, err)
	}
}

// Move steps the player one cell in direction d. It reports false and leaves
// the player in place when the passage is closed.
func (g *Game) Move(d maze.Direction) bool {
	if !g.maze.Open(g.player, d) {
		return false
	}
	next, ok := g.maze.Neighbor(g.player, d)
	if !ok {
		return false
	}
	g.trail[g.maze.Grid().Index(g.player)] = true
	g.player = next
	g.moves++
	return true
}

// StartSearch begins a new search pass from the start cell. Any running or
// finished search is reset first. The player is not affected.
func (g *Game) StartSearch(m search.Mode) { g.engine.Start(m) }

// StartBreadthFirst is StartSearch(search.BreadthFirst).
func (g *Game) StartBreadthFirst() { g.StartSearch(search.BreadthFirst) }

// StartDepthFirst is StartSearch(search.DepthFirst).
func (g *Game) StartDepthFirst() { g.StartSearch(search.DepthFirst) }

// Tick advances the search by one step.
func (g *Game) Tick() search.State { return g.engine.Advance() }

// ResetSearch clears the search and returns it to idle.
func (g *Game) ResetSearch() { g.engine.Reset() }

// Open reports whether the passage from c in direction d is open.
func (g *Game) Open(c maze.Coord, d maze.Direction) bool { return g.maze.Open(c, d) }

func (g *Game) Visited(c maze.Coord) bool  { return g.engine.Visited(c) }
func (g *Game) Expanded(c maze.Coord) bool { return g.engine.Expanded(c) }
func (g *Game) OnPath(c maze.Coord) bool   { return g.engine.OnPath(c) }

// Trodden reports whether the player has stepped off c since the maze was
// generated.
func (g *Game) Trodden(c maze.Coord) bool {
	return g.maze.Contains(c) && g.trail[g.maze.Grid().Index(c)]
}

func (g *Game) Width() int             { return g.width }
func (g *Game) Height() int            { return g.height }
func (g *Game) Start() maze.Coord      { return g.maze.Start() }
func (g *Game) Goal() maze.Coord       { return g.maze.Goal() }
func (g *Game) Player() maze.Coord     { return g.player }
func (g *Game) State() search.State    { return g.engine.State() }
func (g *Game) Mode() search.Mode      { return g.engine.Mode() }
func (g *Game) Path() []maze.Coord     { return g.engine.Path() }
func (g *Game) Frontier() []maze.Coord { return g.engine.Frontier() }
func (g *Game) Seed() int64            { return g.maze.Seed() }
func (g *Game) Steps() int             { return g.engine.Steps() }
func (g *Game) Stats() search.Stats    { return g.engine.Stats() }

// Moves returns the number of successful player moves on the current maze.
func (g *Game) Moves() int { return g.moves }

// Generation counts the mazes this game has produced, starting at 1.
func (g *Game) Generation() int { return g.generation }

// Maze returns the current maze.
func (g *Game) Maze() *maze.Maze { return g.maze }

// Won reports whether the player stands on the goal.
func (g *Game) Won() bool { return g.player == g.maze.Goal() }

// Solvable reports false only once a search has exhausted its frontier
// without reaching the goal.
func (g *Game) Solvable() bool { return g.engine.State() != search.StateExhausted }
