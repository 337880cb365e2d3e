package export

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/mazewalk/pkg/maze"
)

// DOTOptions configures DOT generation.
type DOTOptions struct {
	// Spacing is the distance between cell centres in inches. Zero means 0.4.
	Spacing float64
	// ShowVisited fills cells the search has visited.
	ShowVisited bool
}

const (
	colorPath    = "#e4572e"
	colorVisited = "#c9d6df"
	colorStart   = "#17bebb"
	colorGoal    = "#ffc914"
	colorPlayer  = "#76b041"
)

// ToDOT converts scene to an undirected Graphviz graph. Each cell is a node
// pinned at its grid position and each open passage is an edge. Path edges
// are drawn in a contrasting colour.
//
// Pinned positions only hold under the neato layout; [RenderSVG] and
// [RenderPNG] select it.
func ToDOT(scene Scene, opts DOTOptions) string {
	spacing := opts.Spacing
	if spacing <= 0 {
		spacing = 0.4
	}
	m := scene.Maze

	var buf bytes.Buffer
	buf.WriteString("graph maze {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, color=\"#555555\", label=\"\", width=0.12, fixedsize=true];\n")
	buf.WriteString("  edge [color=\"#333333\", penwidth=3];\n")
	buf.WriteString("\n")

	for row := 0; row < m.Height(); row++ {
		for col := 0; col < m.Width(); col++ {
			c := maze.Coord{Col: col, Row: row}
			attrs := fmt.Sprintf("pos=\"%.2f,%.2f!\"", float64(col)*spacing, float64(m.Height()-1-row)*spacing)
			if fill := nodeFill(scene, c, opts.ShowVisited); fill != "" {
				attrs += fmt.Sprintf(", fillcolor=%q", fill)
			}
			if c == m.Start() || c == m.Goal() || scene.player(c) {
				attrs += ", width=0.22"
			}
			fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(c), attrs)
		}
	}

	buf.WriteString("\n")
	for _, e := range m.Tree() {
		fmt.Fprintf(&buf, "  %q -- %q", nodeID(e.A), nodeID(e.B))
		if scene.onPath(e.A) && scene.onPath(e.B) {
			fmt.Fprintf(&buf, " [color=%q, penwidth=5]", colorPath)
		}
		buf.WriteString(";\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(c maze.Coord) string { return fmt.Sprintf("%d_%d", c.Col, c.Row) }

func nodeFill(scene Scene, c maze.Coord, showVisited bool) string {
	switch {
	case scene.player(c):
		return colorPlayer
	case c == scene.Maze.Start():
		return colorStart
	case c == scene.Maze.Goal():
		return colorGoal
	case scene.onPath(c):
		return colorPath
	case showVisited && scene.visited(c):
		return colorVisited
	}
	return ""
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

// RenderSVG renders DOT source to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	svg, err := renderDOT(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(svg), nil
}

// RenderPNG renders DOT source to PNG.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.PNG)
}

// RenderPDF renders DOT source to SVG and converts it with rsvg-convert.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, fmt.Errorf("pdf export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin")
	}

	cmd := exec.CommandContext(ctx, "rsvg-convert", "-f", "pdf")
	cmd.Stdin = bytes.NewReader(svg)
	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("rsvg-convert: %v: %s", err, errBuf.String())
	}
	return out.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces graphviz's pt-sized svg header with a
// viewBox-only one so the image scales with its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
