// Package cli implements the mazewalk command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mazewalk/pkg/buildinfo"
	"github.com/matzehuels/mazewalk/pkg/cache"
	"github.com/matzehuels/mazewalk/pkg/config"
	"github.com/matzehuels/mazewalk/pkg/errors"
	"github.com/matzehuels/mazewalk/pkg/export"
	"github.com/matzehuels/mazewalk/pkg/observability"
	"github.com/matzehuels/mazewalk/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "mazewalk"

	// envFile is the dotenv file read from the working directory.
	envFile = ".env"

	redisDialTimeout = 3 * time.Second
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level. At debug level the pipeline,
// cache and HTTP hooks log every event as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetHTTPHooks(hooks)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Mazewalk generates mazes and watches them being solved",
		Long: `Mazewalk builds perfect mazes with randomized Kruskal, solves them step by
step with breadth-first or depth-first search, and renders the result as
text, JSON, DOT, SVG, PNG or PDF. "mazewalk play" opens an interactive
terminal game; "mazewalk serve" exposes the same game over HTTP.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/mazewalk/config.toml)")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.solveCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	registerCompletions(root)

	return root
}

// loadConfig reads the config file and .env overrides into c.cfg.
func (c *CLI) loadConfig() error {
	path, err := c.resolveConfigPath()
	if err != nil {
		return err
	}
	cfg, err := config.Load(path, envFile)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.Logger.Debug("config loaded", "path", path)
	return nil
}

func (c *CLI) resolveConfigPath() (string, error) {
	if c.configPath != "" {
		return c.configPath, nil
	}
	return config.Path()
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(nil, buildinfo.CacheScope())
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || !c.cfg.Cache.Enabled {
		return cache.NewNullCache(), nil
	}
	if url := c.cfg.Cache.RedisURL; url != "" {
		ctx, cancel := context.WithTimeout(ctx, redisDialTimeout)
		defer cancel()
		rc, err := cache.DialRedis(ctx, url)
		if err != nil {
			c.Logger.Warn("redis cache unavailable, rendering without cache", "error", err)
			return cache.NewNullCache(), nil
		}
		return rc, nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, or the XDG default.
func (c *CLI) cacheDir() (string, error) {
	if c.cfg.Cache.Dir != "" {
		return c.cfg.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/mazewalk/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// mazeFlags are the flags shared by every command that builds a maze.
type mazeFlags struct {
	width  int
	height int
	seed   int64
}

func (f *mazeFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.width, "width", "W", 0, "maze width in cells (default from config)")
	cmd.Flags().IntVarP(&f.height, "height", "H", 0, "maze height in cells (default from config)")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "random seed (default from config, else the clock)")
}

// resolve fills opts from the flags, falling back to the config and then to
// a clock seed.
func (f *mazeFlags) resolve(cmd *cobra.Command, cfg config.Config, opts *pipeline.Options) {
	opts.Width, opts.Height = f.width, f.height
	if opts.Width == 0 {
		opts.Width = cfg.Maze.Width
	}
	if opts.Height == 0 {
		opts.Height = cfg.Maze.Height
	}
	switch {
	case cmd.Flags().Changed("seed"):
		opts.Seed = f.seed
	case cfg.Maze.Seed != nil:
		opts.Seed = *cfg.Maze.Seed
	default:
		opts.Seed = time.Now().UnixNano()
	}
}

// resolveInput fills opts from the maze document named by args, or from the
// flags when args is empty. A document fixes the maze, so it cannot be
// combined with the size or seed flags.
func (f *mazeFlags) resolveInput(cmd *cobra.Command, args []string, cfg config.Config, opts *pipeline.Options) error {
	if len(args) == 0 {
		f.resolve(cmd, cfg, opts)
		return nil
	}
	for _, name := range []string{"width", "height", "seed"} {
		if cmd.Flags().Changed(name) {
			return errors.New(errors.ErrCodeInvalidInput, "--%s cannot be combined with an input file", name)
		}
	}
	m, err := export.ImportJSON(args[0])
	if err != nil {
		return err
	}
	opts.Maze = m
	return nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s, fallback string) []string {
	if s == "" {
		return []string{fallback}
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{fallback}
	}
	return out
}
