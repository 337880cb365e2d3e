// Package config loads mazewalk settings.
//
// Settings are layered, later layers winning:
//
//  1. Built-in defaults ([Default])
//  2. The TOML file at [Path], usually ~/.config/mazewalk/config.toml
//  3. A .env file in the working directory
//  4. MAZEWALK_* environment variables
//  5. Command-line flags (applied by the CLI)
//
// A missing config file or .env file is not an error. Unknown keys in the
// TOML file are.
//
// Example config.toml:
//
//	[maze]
//	width = 40
//	height = 25
//
//	[play]
//	tick = "50ms"
//
//	[search]
//	mode = "dfs"
//
//	[server]
//	addr = ":9090"
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/mazewalk/pkg/errors"
	"github.com/matzehuels/mazewalk/pkg/search"
)

// Environment variables read by [Load].
const (
	EnvWidth  = "MAZEWALK_WIDTH"
	EnvHeight = "MAZEWALK_HEIGHT"
	EnvSeed   = "MAZEWALK_SEED"
	EnvTick   = "MAZEWALK_TICK"
	EnvAddr   = "MAZEWALK_ADDR"
	EnvMode   = "MAZEWALK_MODE"
	EnvRedis  = "MAZEWALK_REDIS_URL"
)

// Config is the complete settings tree.
type Config struct {
	Maze   MazeConfig   `toml:"maze"`
	Play   PlayConfig   `toml:"play"`
	Search SearchConfig `toml:"search"`
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
}

// MazeConfig sets the default maze.
type MazeConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Seed   *int64 `toml:"seed,omitempty"` // nil: seed from the clock
}

// PlayConfig tunes the interactive game.
type PlayConfig struct {
	Tick      Duration `toml:"tick"`
	CellWidth int      `toml:"cell_width"`
}

// SearchConfig sets the search mode used by solve, render, the space key
// in play and HTTP search requests that name no mode.
type SearchConfig struct {
	Mode string `toml:"mode"`
}

// ServerConfig tunes the HTTP server.
type ServerConfig struct {
	Addr        string   `toml:"addr"`
	MaxSessions int      `toml:"max_sessions"`
	SessionTTL  Duration `toml:"session_ttl"`
}

// CacheConfig controls the render cache.
type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir,omitempty"` // empty: XDG cache dir
	// RedisURL selects a shared Redis cache (redis://host:port/db) instead
	// of the directory.
	RedisURL string `toml:"redis_url,omitempty"`
}

// Duration is a time.Duration written as a string ("30ms") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Maze: MazeConfig{Width: 20, Height: 15},
		Play: PlayConfig{
			Tick:      Duration{30 * time.Millisecond},
			CellWidth: 2,
		},
		Search: SearchConfig{Mode: "bfs"},
		Server: ServerConfig{
			Addr:        ":8080",
			MaxSessions: 256,
			SessionTTL:  Duration{30 * time.Minute},
		},
		Cache: CacheConfig{Enabled: true},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "mazewalk", "config.toml"), nil
}

// Load reads the TOML file at path and then the .env file at envFile on top
// of the defaults, applies MAZEWALK_* variables and validates the result.
// Either path may be empty to skip that layer.
func Load(path, envFile string) (Config, error) {
	cfg := Default()

	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		default:
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
			}
		}
	}

	env, err := readEnv(envFile)
	if err != nil {
		return cfg, err
	}
	if err := cfg.applyEnv(env); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// readEnv merges the .env file with the process environment. Process
// variables take precedence.
func readEnv(envFile string) (map[string]string, error) {
	env := map[string]string{}
	if envFile != "" {
		fileEnv, err := godotenv.Read(envFile)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", envFile)
		default:
			env = fileEnv
		}
	}
	for _, key := range []string{EnvWidth, EnvHeight, EnvSeed, EnvTick, EnvAddr, EnvMode, EnvRedis} {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}
	return env, nil
}

func (c *Config) applyEnv(env map[string]string) error {
	atoi := func(key string, dst *int) error {
		v, ok := env[key]
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be an integer, got %q", key, v)
		}
		*dst = n
		return nil
	}
	if err := atoi(EnvWidth, &c.Maze.Width); err != nil {
		return err
	}
	if err := atoi(EnvHeight, &c.Maze.Height); err != nil {
		return err
	}
	if v, ok := env[EnvSeed]; ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be an integer, got %q", EnvSeed, v)
		}
		c.Maze.Seed = &seed
	}
	if v, ok := env[EnvTick]; ok {
		if err := c.Play.Tick.UnmarshalText([]byte(v)); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", EnvTick)
		}
	}
	if v, ok := env[EnvMode]; ok {
		c.Search.Mode = v
	}
	if v, ok := env[EnvAddr]; ok {
		c.Server.Addr = v
	}
	if v, ok := env[EnvRedis]; ok {
		c.Cache.RedisURL = v
	}
	return nil
}

// Validate checks every setting.
func (c Config) Validate() error {
	if err := errors.ValidateSize(c.Maze.Width, c.Maze.Height); err != nil {
		return err
	}
	if _, err := search.ParseMode(c.Search.Mode); err != nil {
		return err
	}
	if c.Play.Tick.Duration <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "play.tick must be positive, got %s", c.Play.Tick)
	}
	if c.Play.CellWidth < 1 || c.Play.CellWidth > 4 {
		return errors.New(errors.ErrCodeInvalidConfig, "play.cell_width must be between 1 and 4, got %d", c.Play.CellWidth)
	}
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server.addr cannot be empty")
	}
	if c.Server.MaxSessions < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_sessions must be at least 1, got %d", c.Server.MaxSessions)
	}
	if c.Server.SessionTTL.Duration <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.session_ttl must be positive, got %s", c.Server.SessionTTL)
	}
	return nil
}

// Encode returns the TOML form of c.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Write saves c to path, creating parent directories.
func (c Config) Write(path string) error {
	data, err := c.Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
