package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mazewalk/pkg/export"
	"github.com/matzehuels/mazewalk/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	maze     mazeFlags
	output   string  // output file path (or base path for multiple outputs)
	formats  string  // comma-separated output formats
	solve    bool    // run a search and highlight the path
	mode     string  // search mode when solving
	maxSteps int     // stop the search after this many pops (0 = no limit)
	visited  bool    // shade visited cells
	spacing  float64 // inches between cell centres in DOT output
	noCache  bool    // bypass the render cache entirely
	refresh  bool    // ignore cached artifacts but store the new ones
}

// renderCommand creates the render command for writing image files.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [maze.json]",
		Short: "Render a maze to DOT, SVG, PNG or PDF files",
		Long: `Render a maze to one or more files.

The maze is drawn as a graph with one pinned node per cell and one edge per
open passage. With --solve the search path is highlighted; --visited also
shades every cell the search reached. Artifacts are cached by size, seed and
options, so rendering the same maze twice is instant.

Pass a document written by "generate -f json" to render that maze instead
of building one from the size and seed flags.`,
		Example: `  mazewalk render --seed 7 -W 40 -H 25
  mazewalk render --seed 7 --solve --mode dfs --visited -f svg,png -o maze
  mazewalk render maze.json --solve`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args, &opts)
		},
	}

	opts.maze.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json, txt (comma-separated)")
	cmd.Flags().BoolVar(&opts.solve, "solve", false, "solve the maze and highlight the path")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "", "search mode: bfs or dfs (default from config)")
	cmd.Flags().IntVar(&opts.maxSteps, "max-steps", 0, "stop the search after this many steps")
	cmd.Flags().BoolVar(&opts.visited, "visited", false, "shade cells visited by the search")
	cmd.Flags().Float64Var(&opts.spacing, "spacing", 0, "distance between cell centres in inches")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if a cached artifact exists")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, args []string, opts *renderOpts) error {
	ctx := cmd.Context()
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := pipeline.Options{
		Solve:       opts.solve,
		Mode:        opts.mode,
		MaxSteps:    opts.maxSteps,
		Formats:     parseFormats(opts.formats, pipeline.DefaultFormat),
		ShowVisited: opts.visited,
		Spacing:     opts.spacing,
		Refresh:     opts.refresh,
	}
	if popts.Mode == "" {
		popts.Mode = c.cfg.Search.Mode
	}
	if err := opts.maze.resolveInput(cmd, args, c.cfg, &popts); err != nil {
		return err
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	spin := newSpinner(ctx, os.Stderr, fmt.Sprintf("Rendering %s...", popts.String()))
	spin.Start()
	result, err := runner.Execute(ctx, popts)
	if err != nil {
		spin.StopWithError("Render failed")
		return err
	}
	spin.Stop()

	paths, err := writeArtifacts(os.Stdout, result.Artifacts, popts.Formats, outputBase(opts.output, popts.Seed))
	if err != nil {
		return err
	}

	printSuccess("Rendered %dx%d maze %s", popts.Width, popts.Height, StyleDim.Render(fmt.Sprintf("seed %d", popts.Seed)))
	for _, p := range paths {
		printFile(p)
	}
	var pathLen int
	if result.Search != nil {
		pathLen = result.Stats.Search.PathLength
	}
	printStats(popts.Width*popts.Height, pathLen, result.CacheInfo.RenderHit)
	return nil
}

// outputBase returns the user's output path, or "maze-<seed>" when empty.
func outputBase(output string, seed int64) string {
	if output != "" {
		return output
	}
	return fmt.Sprintf("maze-%d", seed)
}

// writeArtifacts writes each artifact under base. A single format is written
// to base as given (adding the extension if base has none); several formats
// share base with the extension replaced. A base of "-" writes the single
// text artifact to stdout.
func writeArtifacts(stdout io.Writer, artifacts map[string][]byte, formats []string, base string) ([]string, error) {
	if base == "-" {
		if len(formats) != 1 {
			return nil, fmt.Errorf("stdout output needs exactly one format, got %d", len(formats))
		}
		f, _ := export.ParseFormat(formats[0])
		if f.Binary() {
			return nil, fmt.Errorf("refusing to write %s to stdout", f)
		}
		_, err := stdout.Write(artifacts[formats[0]])
		return nil, err
	}

	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := artifactPath(base, f, len(formats) > 1)
		if err := ensureDir(path); err != nil {
			return paths, err
		}
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// ensureDir creates the parent directory of path.
func ensureDir(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

func artifactPath(base, format string, multi bool) string {
	ext := filepath.Ext(base)
	if multi || ext == "" {
		return strings.TrimSuffix(base, ext) + "." + format
	}
	return base
}

// renderToWriter runs the pipeline and writes one text artifact to w.
func renderToWriter(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, w io.Writer) (*pipeline.Result, error) {
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(result.Artifacts[opts.Formats[0]]); err != nil {
		return nil, err
	}
	return result, nil
}
