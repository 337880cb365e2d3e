package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mazewalk/pkg/cache"
	"github.com/matzehuels/mazewalk/pkg/maze"
	"github.com/matzehuels/mazewalk/pkg/observability"
	"github.com/matzehuels/mazewalk/pkg/search"
)

// solveBatch is the number of search steps between context checks.
const solveBatch = 4096

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs generate → solve → render with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Generate
	start := time.Now()
	m, err := r.Generate(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Maze = m
	result.Stats.GenerateTime = time.Since(start)

	r.Logger.Info("generated maze",
		"width", m.Width(),
		"height", m.Height(),
		"seed", m.Seed(),
		"duration", result.Stats.GenerateTime)

	// Stage 2: Solve
	if opts.Solve {
		start = time.Now()
		eng, err := r.Solve(ctx, m, opts)
		if err != nil {
			return nil, fmt.Errorf("solve: %w", err)
		}
		result.Search = eng
		result.Stats.SolveTime = time.Since(start)
		result.Stats.Search = eng.Stats()
		result.Stats.State = eng.State()

		r.Logger.Info("searched maze",
			"mode", eng.Mode(),
			"state", eng.State(),
			"steps", eng.Steps(),
			"path", len(eng.Path()),
			"duration", result.Stats.SolveTime)
	}

	// Stage 3: Render
	start = time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, result, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Generate builds the maze described by opts, or returns opts.Maze.
func (r *Runner) Generate(ctx context.Context, opts Options) (*maze.Maze, error) {
	if err := opts.ValidateForGenerate(); err != nil {
		return nil, err
	}
	if opts.Maze != nil {
		return opts.Maze, nil
	}
	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, opts.Width, opts.Height, opts.Seed)
	start := time.Now()
	m, err := maze.Generate(opts.Width, opts.Height, opts.Seed)
	hooks.OnGenerateComplete(ctx, opts.Width, opts.Height, opts.Seed, time.Since(start), err)
	return m, err
}

// Solve runs a search over m until it finishes, MaxSteps pops have been
// made, or ctx is cancelled. A search stopped by MaxSteps is returned in the
// Running state without error.
func (r *Runner) Solve(ctx context.Context, m *maze.Maze, opts Options) (*search.Engine, error) {
	if err := opts.ValidateForSolve(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnSolveStart(ctx, opts.Mode)
	start := time.Now()

	eng, err := search.NewEngine(m, m.Start(), m.Goal())
	if err == nil {
		err = runSearch(ctx, eng, opts.SearchMode(), opts.MaxSteps)
	}

	var steps, pathLen int
	if eng != nil {
		steps, pathLen = eng.Steps(), len(eng.Path())
	}
	hooks.OnSolveComplete(ctx, opts.Mode, steps, pathLen, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return eng, nil
}

func runSearch(ctx context.Context, eng *search.Engine, mode search.Mode, maxSteps int) error {
	eng.Start(mode)
	for eng.State() == search.StateRunning {
		if err := ctx.Err(); err != nil {
			return err
		}
		batch := solveBatch
		if maxSteps > 0 {
			left := maxSteps - eng.Steps()
			if left <= 0 {
				return nil
			}
			batch = min(batch, left)
		}
		eng.Run(batch)
	}
	return nil
}

// RenderWithCacheInfo renders every requested format of result and reports
// whether all of them came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, result *Result, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	hooks := observability.Cache()

	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := true
	for _, format := range opts.formats {
		key := r.Keyer.ArtifactKey(opts.ArtifactKeyOpts(string(format)))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				hooks.OnCacheHit(ctx, "artifact")
				artifacts[string(format)] = data
				continue
			}
			hooks.OnCacheMiss(ctx, "artifact")
		}
		allCached = false

		data, err := renderFormat(ctx, result.Scene(), format, opts)
		if err != nil {
			return nil, false, err
		}
		artifacts[string(format)] = data

		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "err", err)
		} else {
			hooks.OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return artifacts, allCached, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
