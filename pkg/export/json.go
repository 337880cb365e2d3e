package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/matzehuels/mazewalk/pkg/errors"
	"github.com/matzehuels/mazewalk/pkg/maze"
	"github.com/matzehuels/mazewalk/pkg/search"
)

// Document is the JSON form of a scene.
type Document struct {
	Width  int           `json:"width"`
	Height int           `json:"height"`
	Seed   int64         `json:"seed"`
	Start  maze.Coord    `json:"start"`
	Goal   maze.Coord    `json:"goal"`
	Tree   []Edge        `json:"tree"`
	Cells  [][]maze.Cell `json:"cells"`
	Player *maze.Coord   `json:"player,omitempty"`
	Search *SearchDoc    `json:"search,omitempty"`
}

// Edge is one spanning-tree edge.
type Edge struct {
	A      maze.Coord `json:"a"`
	B      maze.Coord `json:"b"`
	Weight int        `json:"weight"`
}

// SearchDoc is the JSON form of a search pass.
type SearchDoc struct {
	State   search.State `json:"state"`
	Mode    search.Mode  `json:"mode"`
	Stats   search.Stats `json:"stats"`
	Path    []maze.Coord `json:"path,omitempty"`
	Visited []maze.Coord `json:"visited,omitempty"`
}

// NewDocument converts scene to its JSON form.
func NewDocument(scene Scene) Document {
	m := scene.Maze
	doc := Document{
		Width:  m.Width(),
		Height: m.Height(),
		Seed:   m.Seed(),
		Start:  m.Start(),
		Goal:   m.Goal(),
		Player: scene.Player,
		Cells:  make([][]maze.Cell, m.Height()),
	}
	for _, e := range m.Tree() {
		doc.Tree = append(doc.Tree, Edge{A: e.A, B: e.B, Weight: e.Weight})
	}
	for row := range doc.Cells {
		doc.Cells[row] = make([]maze.Cell, m.Width())
		for col := range doc.Cells[row] {
			doc.Cells[row][col] = m.Cell(maze.Coord{Col: col, Row: row})
		}
	}

	if s := scene.Search; s != nil && s.State() != search.StateIdle {
		sd := &SearchDoc{
			State: s.State(),
			Mode:  s.Mode(),
			Stats: s.Stats(),
			Path:  s.Path(),
		}
		for row := 0; row < m.Height(); row++ {
			for col := 0; col < m.Width(); col++ {
				if c := (maze.Coord{Col: col, Row: row}); s.Visited(c) {
					sd.Visited = append(sd.Visited, c)
				}
			}
		}
		doc.Search = sd
	}
	return doc
}

// WriteJSON encodes scene as indented JSON and writes it to w.
func WriteJSON(w io.Writer, scene Scene) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(scene)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes scene to a JSON file at path.
func ExportJSON(scene Scene, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(f, scene)
}

// ReadJSON decodes a document from r and rebuilds its maze by regenerating
// it from width, height and seed. It returns an INVALID_INPUT error when the
// document's tree does not match the regenerated one. Search and player
// fields are ignored.
func ReadJSON(r io.Reader) (*maze.Maze, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode maze document")
	}
	m, err := maze.Generate(doc.Width, doc.Height, doc.Seed)
	if err != nil {
		return nil, err
	}

	want := make([]Edge, 0, len(doc.Tree))
	for _, e := range m.Tree() {
		want = append(want, Edge{A: e.A, B: e.B, Weight: e.Weight})
	}
	if !slices.Equal(want, doc.Tree) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"tree does not match a %dx%d maze with seed %d", doc.Width, doc.Height, doc.Seed)
	}
	return m, nil
}

// ImportJSON reads a maze document from the file at path.
func ImportJSON(path string) (*maze.Maze, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	m, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
