// Package pipeline runs the headless generate → solve → render pipeline.
//
// The CLI commands generate, solve and render all go through a [Runner], so
// validation, caching, hooks and logging behave the same for each of them.
//
// # Stages
//
//  1. Generate: build the maze from (width, height, seed)
//  2. Solve: optionally run a BFS or DFS search to completion, or until
//     MaxSteps pops, checking the context between batches of steps
//  3. Render: produce each requested format, reading and writing the cache
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Width:   40,
//	    Height:  25,
//	    Seed:    7,
//	    Solve:   true,
//	    Formats: []string{"svg", "txt"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mazewalk/pkg/cache"
	"github.com/matzehuels/mazewalk/pkg/errors"
	"github.com/matzehuels/mazewalk/pkg/export"
	"github.com/matzehuels/mazewalk/pkg/maze"
	"github.com/matzehuels/mazewalk/pkg/search"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the default maze width in cells.
	DefaultWidth = 20

	// DefaultHeight is the default maze height in cells.
	DefaultHeight = 15

	// DefaultMode is the default search discipline.
	DefaultMode = "bfs"

	// DefaultFormat is the default output format.
	DefaultFormat = string(export.FormatSVG)
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Generate options
	Width  int   `json:"width,omitempty"`
	Height int   `json:"height,omitempty"`
	Seed   int64 `json:"seed"`

	// Maze, when set, is used instead of generating one. Width, Height and
	// Seed are taken from it.
	Maze *maze.Maze `json:"-"`

	// Solve options
	Solve    bool   `json:"solve,omitempty"`
	Mode     string `json:"mode,omitempty"`
	MaxSteps int    `json:"max_steps,omitempty"` // 0 = run to completion

	// Render options
	Formats     []string `json:"formats,omitempty"`
	ShowVisited bool     `json:"show_visited,omitempty"`
	Spacing     float64  `json:"spacing,omitempty"`
	Refresh     bool     `json:"refresh,omitempty"` // Bypass cache reads

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	mode      search.Mode
	formats   []export.Format
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Maze is the generated maze.
	Maze *maze.Maze

	// Search is the finished search, or nil when Solve was not requested.
	Search *search.Engine

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and search information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	GenerateTime time.Duration
	SolveTime    time.Duration
	RenderTime   time.Duration
	Search       search.Stats
	State        search.State
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// Scene returns the export scene of the result.
func (r *Result) Scene() export.Scene {
	s := export.Scene{Maze: r.Maze}
	if r.Search != nil {
		s.Search = r.Search
	}
	return s
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForGenerate(); err != nil {
		return err
	}
	if err := o.ValidateForSolve(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForGenerate applies dimension defaults and checks the bounds.
func (o *Options) ValidateForGenerate() error {
	if o.Maze != nil {
		o.Width, o.Height, o.Seed = o.Maze.Width(), o.Maze.Height(), o.Maze.Seed()
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return errors.ValidateSize(o.Width, o.Height)
}

// ValidateForSolve parses the search mode.
func (o *Options) ValidateForSolve() error {
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	m, err := search.ParseMode(o.Mode)
	if err != nil {
		return err
	}
	o.mode = m
	o.Mode = m.String()
	if o.MaxSteps < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max steps must not be negative, got %d", o.MaxSteps)
	}
	return nil
}

// ValidateForRender parses the output formats.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.formats = make([]export.Format, 0, len(o.Formats))
	for i, f := range o.Formats {
		format, err := export.ParseFormat(f)
		if err != nil {
			return err
		}
		o.Formats[i] = string(format)
		o.formats = append(o.formats, format)
	}
	return nil
}

// SearchMode returns the parsed search mode. Valid after ValidateForSolve.
func (o *Options) SearchMode() search.Mode { return o.mode }

// ArtifactKeyOpts returns cache key options for one output format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Width:   o.Width,
		Height:  o.Height,
		Seed:    o.Seed,
		Solved:  o.Solve,
		Spacing: o.Spacing,
		Format:  format,
	}
	if o.Solve {
		k.Mode = o.Mode
		k.MaxSteps = o.MaxSteps
		k.Visited = o.ShowVisited
	}
	return k
}

func (o *Options) dotOptions() export.DOTOptions {
	return export.DOTOptions{Spacing: o.Spacing, ShowVisited: o.ShowVisited}
}

func (o *Options) String() string {
	return fmt.Sprintf("%dx%d seed=%d", o.Width, o.Height, o.Seed)
}
