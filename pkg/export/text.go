package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/matzehuels/mazewalk/pkg/maze"
)

// WriteText draws scene as ASCII art, one text row per wall line and one per
// cell row:
//
//	+---+---+---+
//	| S   ·   · |
//	+---+---+   +
//	| .   .   G |
//	+---+---+---+
func WriteText(w io.Writer, scene Scene) error {
	m := scene.Maze
	bw := bufio.NewWriter(w)

	for row := 0; row < m.Height(); row++ {
		for col := 0; col < m.Width(); col++ {
			if m.Open(maze.Coord{Col: col, Row: row}, maze.Up) {
				bw.WriteString("+   ")
			} else {
				bw.WriteString("+---")
			}
		}
		bw.WriteString("+\n")

		for col := 0; col < m.Width(); col++ {
			c := maze.Coord{Col: col, Row: row}
			if m.Open(c, maze.Left) {
				bw.WriteByte(' ')
			} else {
				bw.WriteByte('|')
			}
			fmt.Fprintf(bw, " %s ", glyph(scene, c))
		}
		bw.WriteString("|\n")
	}
	for col := 0; col < m.Width(); col++ {
		bw.WriteString("+---")
	}
	bw.WriteString("+\n")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	return nil
}

func glyph(scene Scene, c maze.Coord) string {
	switch {
	case scene.player(c):
		return "@"
	case c == scene.Maze.Start():
		return "S"
	case c == scene.Maze.Goal():
		return "G"
	case scene.onPath(c):
		return "·"
	case scene.visited(c):
		return "."
	}
	return " "
}
