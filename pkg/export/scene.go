package export

import (
	"context"
	"strings"

	"github.com/matzehuels/mazewalk/pkg/errors"
	"github.com/matzehuels/mazewalk/pkg/game"
	"github.com/matzehuels/mazewalk/pkg/maze"
	"github.com/matzehuels/mazewalk/pkg/search"
)

// SearchView is the read side of a search pass.
type SearchView interface {
	State() search.State
	Mode() search.Mode
	Visited(c maze.Coord) bool
	OnPath(c maze.Coord) bool
	Path() []maze.Coord
	Stats() search.Stats
}

// Scene is a maze with optional overlays.
type Scene struct {
	Maze   *maze.Maze
	Search SearchView  // nil: walls only
	Player *maze.Coord // nil: no player marker
}

// FromGame captures the current state of g.
func FromGame(g *game.Game) Scene {
	p := g.Player()
	return Scene{Maze: g.Maze(), Search: g, Player: &p}
}

func (s Scene) visited(c maze.Coord) bool { return s.Search != nil && s.Search.Visited(c) }
func (s Scene) onPath(c maze.Coord) bool  { return s.Search != nil && s.Search.OnPath(c) }
func (s Scene) player(c maze.Coord) bool  { return s.Player != nil && *s.Player == c }

// Format names an output format.
type Format string

const (
	FormatText Format = "txt"
	FormatJSON Format = "json"
	FormatDOT  Format = "dot"
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatPDF  Format = "pdf"
)

// Formats lists every format [Render] accepts.
var Formats = []string{
	string(FormatText), string(FormatJSON), string(FormatDOT),
	string(FormatSVG), string(FormatPNG), string(FormatPDF),
}

// ParseFormat validates a format name. "text" is accepted for txt.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "text" {
		s = string(FormatText)
	}
	if err := errors.ValidateFormat(s, Formats); err != nil {
		return "", err
	}
	return Format(s), nil
}

// Binary reports whether the format produces non-text output.
func (f Format) Binary() bool { return f == FormatPNG || f == FormatPDF }

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz"
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	}
	return "text/plain; charset=utf-8"
}

// Render produces scene in the given format.
func Render(ctx context.Context, scene Scene, format Format, opts DOTOptions) ([]byte, error) {
	var buf strings.Builder
	switch format {
	case FormatText:
		if err := WriteText(&buf, scene); err != nil {
			return nil, err
		}
		return []byte(buf.String()), nil
	case FormatJSON:
		if err := WriteJSON(&buf, scene); err != nil {
			return nil, err
		}
		return []byte(buf.String()), nil
	case FormatDOT:
		return []byte(ToDOT(scene, opts)), nil
	case FormatSVG:
		return RenderSVG(ctx, ToDOT(scene, opts))
	case FormatPNG:
		return RenderPNG(ctx, ToDOT(scene, opts))
	case FormatPDF:
		return RenderPDF(ctx, ToDOT(scene, opts))
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
}
