package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/mazewalk/pkg/game"
	"github.com/matzehuels/mazewalk/pkg/maze"
	"github.com/matzehuels/mazewalk/pkg/search"
)

// Board styles
var (
	boardWallStyle     = lipgloss.NewStyle().Foreground(colorGray)
	boardPlayerStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	boardGoalStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	boardStartStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	boardTrailStyle    = lipgloss.NewStyle().Foreground(colorDim)
	boardPathBg        = lipgloss.Color("178")
	boardExpandedBg    = lipgloss.Color("24")
	boardFrontierBg    = lipgloss.Color("31")
	boardHelpStyle     = lipgloss.NewStyle().Foreground(colorDim)
	boardStatusStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	boardWonStyle      = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	boardExhaustedText = StyleWarning.Render("no path")
)

const (
	minTick = 5 * time.Millisecond
	maxTick = 2 * time.Second
)

// tickMsg advances a running search by one step.
type tickMsg time.Time

// PlayModel is the bubbletea model of the interactive game. Every key maps
// to one game command; a running search advances one step per tick. Space
// starts a search in Mode.
type PlayModel struct {
	Game      *game.Game
	Tick      time.Duration
	CellWidth int
	Mode      search.Mode
}

// NewPlayModel wraps g. cellWidth is the number of columns per cell.
func NewPlayModel(g *game.Game, tick time.Duration, cellWidth int) PlayModel {
	if cellWidth < 1 {
		cellWidth = 1
	}
	return PlayModel{Game: g, Tick: tick, CellWidth: cellWidth}
}

func (m PlayModel) tick() tea.Cmd {
	return tea.Tick(m.Tick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m PlayModel) Init() tea.Cmd {
	return m.tick()
}

func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "w", "up":
			m.Game.Move(maze.Up)
		case "s", "down":
			m.Game.Move(maze.Down)
		case "a", "left":
			m.Game.Move(maze.Left)
		case "d", "right":
			m.Game.Move(maze.Right)
		case "b", "n":
			m.Game.StartBreadthFirst()
		case "f", "m":
			m.Game.StartDepthFirst()
		case " ":
			m.Game.StartSearch(m.Mode)
		case "r":
			m.Game.ResetSearch()
		case "enter":
			m.Game.Regenerate()
		case "+", "=":
			m.Tick = max(m.Tick/2, minTick)
		case "-", "_":
			m.Tick = min(m.Tick*2, maxTick)
		}
	case tickMsg:
		if m.Game.State() == search.StateRunning {
			m.Game.Tick()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m PlayModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("mazewalk"))
	b.WriteString("\n\n")
	b.WriteString(renderBoard(m.Game, m.CellWidth))
	b.WriteString("\n")
	b.WriteString(m.status())
	b.WriteString("\n")
	b.WriteString(boardHelpStyle.Render("wasd/arrows move  b bfs  f dfs  space "+m.Mode.String()+"  r reset  ⏎ new maze  +/- speed  q quit"))
	return b.String()
}

func (m PlayModel) status() string {
	g := m.Game
	st := g.Stats()
	parts := []string{
		fmt.Sprintf("seed %d", g.Seed()),
		fmt.Sprintf("moves %d", g.Moves()),
	}
	if g.State() != search.StateIdle {
		parts = append(parts,
			fmt.Sprintf("%s %s", g.Mode(), g.State()),
			fmt.Sprintf("steps %d", st.Steps),
			fmt.Sprintf("visited %d", st.Visited),
		)
		if st.PathLength > 0 {
			parts = append(parts, fmt.Sprintf("path %d", st.PathLength))
		}
	}
	parts = append(parts, fmt.Sprintf("tick %s", m.Tick))

	line := boardStatusStyle.Render(strings.Join(parts, " · "))
	switch {
	case g.Won():
		line += "  " + boardWonStyle.Render("you made it!")
	case !g.Solvable():
		line += "  " + boardExhaustedText
	}
	return line
}

// renderBoard draws the maze with walls, search overlay, trail and markers.
func renderBoard(g *game.Game, cellWidth int) string {
	var b strings.Builder
	w, h := g.Width(), g.Height()
	corner := boardWallStyle.Render("+")
	hwall := boardWallStyle.Render(strings.Repeat("-", cellWidth))
	vwall := boardWallStyle.Render("|")
	gap := strings.Repeat(" ", cellWidth)

	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			b.WriteString(corner)
			if g.Open(maze.Coord{Col: col, Row: row}, maze.Up) {
				b.WriteString(gap)
			} else {
				b.WriteString(hwall)
			}
		}
		b.WriteString(corner)
		b.WriteByte('\n')

		for col := 0; col < w; col++ {
			c := maze.Coord{Col: col, Row: row}
			if g.Open(c, maze.Left) {
				b.WriteByte(' ')
			} else {
				b.WriteString(vwall)
			}
			b.WriteString(renderCell(g, c, cellWidth))
		}
		b.WriteString(vwall)
		b.WriteByte('\n')
	}
	for col := 0; col < w; col++ {
		b.WriteString(corner)
		b.WriteString(hwall)
	}
	b.WriteString(corner)
	b.WriteByte('\n')
	return b.String()
}

func renderCell(g *game.Game, c maze.Coord, width int) string {
	style := lipgloss.NewStyle()
	glyph := ""
	switch {
	case g.Player() == c:
		style, glyph = boardPlayerStyle, "@"
	case g.Goal() == c:
		style, glyph = boardGoalStyle, "G"
	case g.Start() == c:
		style, glyph = boardStartStyle, "S"
	case g.Trodden(c):
		style, glyph = boardTrailStyle, "·"
	}

	switch {
	case g.OnPath(c):
		style = style.Background(boardPathBg)
	case g.Expanded(c):
		style = style.Background(boardExpandedBg)
	case g.Visited(c):
		style = style.Background(boardFrontierBg)
	}
	return style.Render(center(glyph, width))
}

// center pads s with spaces to width runes.
func center(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}
