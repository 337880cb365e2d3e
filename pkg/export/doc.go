// Package export writes mazes and search progress in text, JSON, DOT and
// image formats.
//
// # Scenes
//
// Every writer takes a [Scene]: the maze itself plus optional overlays.
// The search overlay is satisfied by both *search.Engine and *game.Game,
// so a scene can be built from a headless solve or from a live game:
//
//	scene := export.Scene{Maze: m, Search: eng}
//	scene := export.FromGame(g)
//
// # Formats
//
//   - txt:  ASCII walls with S (start), G (goal), @ (player), · (path), . (visited)
//   - json: dimensions, seed, tree edges, per-cell passage flags and search state
//   - dot:  Graphviz source with one pinned node per cell and one edge per passage
//   - svg, png: rendered in-process with [github.com/goccy/go-graphviz]
//   - pdf:  SVG converted by rsvg-convert (requires librsvg)
//
// [Render] dispatches on a format name; the individual writers are exported
// for callers that need only one.
//
// # JSON Round Trip
//
// Mazes are fully determined by (width, height, seed). [ReadJSON] rebuilds
// the maze by regenerating it from those fields and rejects documents whose
// tree edges do not match.
package export
