package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/mazewalk/pkg/errors"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvWidth, EnvHeight, EnvSeed, EnvTick, EnvAddr, EnvMode, EnvRedis} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Maze.Width != 20 || cfg.Maze.Height != 15 {
		t.Errorf("default size = %dx%d", cfg.Maze.Width, cfg.Maze.Height)
	}
	if cfg.Play.Tick.Duration != 30*time.Millisecond {
		t.Errorf("default tick = %s", cfg.Play.Tick)
	}
	if cfg.Search.Mode != "bfs" || cfg.Server.Addr != ":8080" || cfg.Play.CellWidth != 2 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadMissingFiles(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "nope.toml"), filepath.Join(dir, ".env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Maze != Default().Maze {
		t.Errorf("maze config = %+v, want defaults", cfg.Maze)
	}
}

func TestLoadTOML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, t.TempDir(), "config.toml", `
[maze]
width = 40
height = 25
seed = 7

[play]
tick = "50ms"

[search]
mode = "dfs"

[server]
addr = ":9090"
`)
	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Maze.Width != 40 || cfg.Maze.Height != 25 {
		t.Errorf("size = %dx%d", cfg.Maze.Width, cfg.Maze.Height)
	}
	if cfg.Maze.Seed == nil || *cfg.Maze.Seed != 7 {
		t.Errorf("seed = %v", cfg.Maze.Seed)
	}
	if cfg.Play.Tick.Duration != 50*time.Millisecond || cfg.Search.Mode != "dfs" {
		t.Errorf("play = %+v, search = %+v", cfg.Play, cfg.Search)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	// Unset keys keep their defaults.
	if cfg.Server.MaxSessions != Default().Server.MaxSessions {
		t.Errorf("max_sessions = %d", cfg.Server.MaxSessions)
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[maze\nwidth = 3"},
		{"unknown key", "[maze]\ncolour = \"red\""},
		{"bad duration", "[play]\ntick = \"soon\""},
		{"zero width", "[maze]\nwidth = 0"},
		{"too wide", "[maze]\nwidth = 5000"},
		{"bad mode", "[search]\nmode = \"astar\""},
		{"mode under play", "[play]\nmode = \"dfs\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.name+".toml", tt.content)
			if _, err := Load(path, ""); err == nil {
				t.Error("Load should fail")
			}
		})
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", "[maze]\nwidth = 40\nheight = 25\n")
	envFile := writeFile(t, dir, ".env", "MAZEWALK_WIDTH=12\nMAZEWALK_SEED=99\nMAZEWALK_MODE=dfs\nMAZEWALK_REDIS_URL=redis://cache:6379/1\n")
	t.Setenv(EnvWidth, "8")
	t.Setenv(EnvTick, "10ms")

	cfg, err := Load(path, envFile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Maze.Width != 8 {
		t.Errorf("width = %d, want 8 (process env beats .env)", cfg.Maze.Width)
	}
	if cfg.Maze.Height != 25 {
		t.Errorf("height = %d, want 25 from TOML", cfg.Maze.Height)
	}
	if cfg.Maze.Seed == nil || *cfg.Maze.Seed != 99 {
		t.Errorf("seed = %v, want 99 from .env", cfg.Maze.Seed)
	}
	if cfg.Search.Mode != "dfs" || cfg.Play.Tick.Duration != 10*time.Millisecond {
		t.Errorf("play = %+v", cfg.Play)
	}
	if cfg.Cache.RedisURL != "redis://cache:6379/1" {
		t.Errorf("redis url = %q", cfg.Cache.RedisURL)
	}
}

func TestLoadEnvInvalid(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvHeight, "tall")
	_, err := Load("", "")
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	cfg := Default()
	cfg.Maze.Width = 33
	cfg.Play.Tick = Duration{75 * time.Millisecond}
	seed := int64(-4)
	cfg.Maze.Seed = &seed

	if err := cfg.Write(path); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Maze.Width != 33 || got.Play.Tick.Duration != 75*time.Millisecond {
		t.Errorf("round trip = %+v", got)
	}
	if got.Maze.Seed == nil || *got.Maze.Seed != -4 {
		t.Errorf("seed = %v", got.Maze.Seed)
	}
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	p, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if p != filepath.Join("/tmp/xdg", "mazewalk", "config.toml") {
		t.Errorf("Path() = %q", p)
	}
}
