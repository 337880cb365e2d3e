package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/mazewalk/pkg/errors"
	"github.com/matzehuels/mazewalk/pkg/maze"
	"github.com/matzehuels/mazewalk/pkg/search"
)

// fakeGrid is a Passages where every passage is open or every passage is
// closed.
type fakeGrid struct {
	w, h int
	open bool
}

func (g fakeGrid) Width() int  { return g.w }
func (g fakeGrid) Height() int { return g.h }

func (g fakeGrid) Neighbor(c maze.Coord, d maze.Direction) (maze.Coord, bool) {
	n := c.Step(d)
	if n.Col < 0 || n.Col >= g.w || n.Row < 0 || n.Row >= g.h {
		return maze.Coord{}, false
	}
	return n, true
}

func (g fakeGrid) Open(c maze.Coord, d maze.Direction) bool {
	_, ok := g.Neighbor(c, d)
	return ok && g.open
}

// distances runs an independent BFS over p and returns the hop count from
// start to every reachable cell.
func distances(p search.Passages, start maze.Coord) map[maze.Coord]int {
	dist := map[maze.Coord]int{start: 0}
	queue := []maze.Coord{start}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, d := range maze.Directions {
			if !p.Open(c, d) {
				continue
			}
			n, ok := p.Neighbor(c, d)
			if !ok {
				continue
			}
			if _, seen := dist[n]; !seen {
				dist[n] = dist[c] + 1
				queue = append(queue, n)
			}
		}
	}
	return dist
}

func requireValidPath(t *testing.T, p search.Passages, eng *search.Engine, path []maze.Coord) {
	t.Helper()
	require.NotEmpty(t, path)
	assert.Equal(t, eng.StartCell(), path[0])
	assert.Equal(t, eng.GoalCell(), path[len(path)-1])

	seen := map[maze.Coord]bool{}
	for i, c := range path {
		assert.False(t, seen[c], "cell %s repeated", c)
		seen[c] = true
		assert.True(t, eng.OnPath(c), "cell %s not marked on-path", c)
		if i == 0 {
			continue
		}
		prev := path[i-1]
		var linked bool
		for _, d := range maze.Directions {
			if n, ok := p.Neighbor(prev, d); ok && n == c {
				linked = p.Open(prev, d)
			}
		}
		assert.True(t, linked, "no open passage between %s and %s", prev, c)
	}
}

func newMazeEngine(t *testing.T, w, h int, seed int64) (*maze.Maze, *search.Engine) {
	t.Helper()
	m, err := maze.Generate(w, h, seed)
	require.NoError(t, err)
	eng, err := search.NewEngine(m, m.Start(), m.Goal())
	require.NoError(t, err)
	return m, eng
}

func TestEngine_BreadthFirstIsShortest(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		m, eng := newMazeEngine(t, 14, 9, seed)
		eng.Start(search.BreadthFirst)
		require.Equal(t, search.StateFound, eng.Run(0))

		path := eng.Path()
		requireValidPath(t, m, eng, path)
		dist := distances(m, m.Start())
		assert.Equal(t, dist[m.Goal()]+1, len(path), "seed %d", seed)
		assert.Equal(t, len(path), eng.Stats().PathLength)
	}
}

func TestEngine_BreadthFirstShortestOnOpenGrid(t *testing.T) {
	g := fakeGrid{w: 6, h: 4, open: true}
	eng, err := search.NewEngine(g, maze.Coord{}, maze.Coord{Col: 5, Row: 3})
	require.NoError(t, err)
	eng.Start(search.BreadthFirst)
	require.Equal(t, search.StateFound, eng.Run(0))

	path := eng.Path()
	requireValidPath(t, g, eng, path)
	assert.Len(t, path, 5+3+1)
}

func TestEngine_DepthFirstFindsValidPath(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		m, eng := newMazeEngine(t, 11, 13, seed)
		eng.Start(search.DepthFirst)
		require.Equal(t, search.StateFound, eng.Run(0))
		requireValidPath(t, m, eng, eng.Path())

		// A perfect maze has a single simple path between two cells.
		dfs := eng.Path()
		eng.Start(search.BreadthFirst)
		eng.Run(0)
		assert.Equal(t, eng.Path(), dfs, "seed %d", seed)
	}
}

func TestEngine_DepthFirstValidOnOpenGrid(t *testing.T) {
	g := fakeGrid{w: 5, h: 5, open: true}
	eng, err := search.NewEngine(g, maze.Coord{}, maze.Coord{Col: 4, Row: 4})
	require.NoError(t, err)
	eng.Start(search.DepthFirst)
	require.Equal(t, search.StateFound, eng.Run(0))
	requireValidPath(t, g, eng, eng.Path())
}

func TestEngine_ThreeByThree(t *testing.T) {
	m, eng := newMazeEngine(t, 3, 3, 5)
	eng.Start(search.BreadthFirst)

	var ticks int
	for eng.Advance() == search.StateRunning {
		ticks++
		require.Less(t, ticks, 9, "a 3x3 search pops at most 9 cells")
	}
	require.Equal(t, search.StateFound, eng.State())

	path := eng.Path()
	assert.Equal(t, maze.Coord{Col: 0, Row: 0}, path[0])
	assert.Equal(t, maze.Coord{Col: 2, Row: 2}, path[len(path)-1])
	requireValidPath(t, m, eng, path)
	assert.True(t, eng.Visited(m.Goal()))
}

func TestEngine_SingleCell(t *testing.T) {
	_, eng := newMazeEngine(t, 1, 1, 0)
	eng.Start(search.DepthFirst)
	assert.Equal(t, search.StateFound, eng.Advance())
	assert.Equal(t, []maze.Coord{{}}, eng.Path())
}

func TestEngine_ExpansionOrder(t *testing.T) {
	g := fakeGrid{w: 3, h: 3, open: true}
	centre := maze.Coord{Col: 1, Row: 1}
	want := []maze.Coord{
		{Col: 1, Row: 2}, // down
		{Col: 1, Row: 0}, // up
		{Col: 0, Row: 1}, // left
		{Col: 2, Row: 1}, // right
	}

	bfs, err := search.NewEngine(g, centre, maze.Coord{})
	require.NoError(t, err)
	bfs.Start(search.BreadthFirst)
	bfs.Advance()
	assert.Equal(t, want, bfs.Frontier())

	dfs, err := search.NewEngine(g, centre, maze.Coord{})
	require.NoError(t, err)
	dfs.Start(search.DepthFirst)
	dfs.Advance()
	reversed := []maze.Coord{want[3], want[2], want[1], want[0]}
	assert.Equal(t, reversed, dfs.Frontier())

	for _, c := range want {
		assert.True(t, bfs.Visited(c), "%s marked at push time", c)
		assert.False(t, bfs.Expanded(c))
		p, ok := bfs.Predecessor(c)
		assert.True(t, ok)
		assert.Equal(t, centre, p)
	}
	assert.True(t, bfs.Expanded(centre))
	_, ok := bfs.Predecessor(centre)
	assert.False(t, ok)
}

func TestEngine_Exhausted(t *testing.T) {
	g := fakeGrid{w: 2, h: 2}
	eng, err := search.NewEngine(g, maze.Coord{}, maze.Coord{Col: 1, Row: 1})
	require.NoError(t, err)

	eng.Start(search.BreadthFirst)
	assert.Equal(t, search.StateRunning, eng.Advance(), "popping the start leaves the search running")
	assert.Equal(t, search.StateExhausted, eng.Advance(), "the empty frontier is seen on the next tick")
	assert.Equal(t, search.StateExhausted, eng.Advance())
	assert.Nil(t, eng.Path())
	assert.Equal(t, 1, eng.Steps())
	assert.True(t, eng.State().Done())
}

func TestEngine_IdleAdvanceIsNoop(t *testing.T) {
	m, eng := newMazeEngine(t, 4, 4, 1)
	assert.Equal(t, search.StateIdle, eng.Advance())
	assert.Equal(t, 0, eng.Steps())
	assert.False(t, eng.Visited(m.Start()))
	assert.Nil(t, eng.Frontier())
}

func TestEngine_RestartClearsState(t *testing.T) {
	m, eng := newMazeEngine(t, 8, 8, 3)
	eng.Start(search.BreadthFirst)
	eng.Run(0)
	require.Equal(t, search.StateFound, eng.State())

	eng.Start(search.DepthFirst)
	assert.Equal(t, search.StateRunning, eng.State())
	assert.Equal(t, search.DepthFirst, eng.Mode())
	assert.Nil(t, eng.Path())
	assert.Equal(t, 0, eng.Steps())
	assert.False(t, eng.OnPath(m.Goal()))
	assert.Equal(t, 1, eng.Stats().Visited)

	eng.Reset()
	assert.Equal(t, search.StateIdle, eng.State())
	assert.Equal(t, 0, eng.Stats().Visited)
}

func TestEngine_RunLimit(t *testing.T) {
	_, eng := newMazeEngine(t, 20, 20, 8)
	eng.Start(search.BreadthFirst)
	assert.Equal(t, search.StateRunning, eng.Run(3))
	assert.Equal(t, 3, eng.Steps())
}

func TestEngine_Stats(t *testing.T) {
	_, eng := newMazeEngine(t, 10, 10, 4)
	eng.Start(search.BreadthFirst)
	eng.Run(0)
	s := eng.Stats()
	assert.Equal(t, eng.Steps(), s.Steps)
	assert.GreaterOrEqual(t, s.Visited, s.Steps)
	assert.LessOrEqual(t, s.Visited, 100)
	assert.GreaterOrEqual(t, s.MaxFrontier, 1)
}

func TestNewEngine_OutOfRange(t *testing.T) {
	g := fakeGrid{w: 3, h: 3}
	_, err := search.NewEngine(g, maze.Coord{Col: 3}, maze.Coord{})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
	_, err = search.NewEngine(g, maze.Coord{}, maze.Coord{Row: -1})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want search.Mode
	}{
		{"bfs", search.BreadthFirst},
		{"Breadth-First", search.BreadthFirst},
		{"dfs", search.DepthFirst},
		{"depth", search.DepthFirst},
	}
	for _, tt := range tests {
		got, err := search.ParseMode(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
	_, err := search.ParseMode("astar")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidMode))

	var m search.Mode
	require.NoError(t, m.UnmarshalText([]byte("dfs")))
	assert.Equal(t, "dfs", m.String())
}
