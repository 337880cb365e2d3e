package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mazewalk/pkg/cache"
	"github.com/matzehuels/mazewalk/pkg/config"
	"github.com/matzehuels/mazewalk/pkg/observability"
	"github.com/matzehuels/mazewalk/pkg/pipeline"
	"github.com/matzehuels/mazewalk/pkg/search"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty uses fallback", "", []string{"svg"}},
		{"single format", "png", []string{"png"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces and blanks", " svg, ,txt ", []string{"svg", "txt"}},
		{"only commas", ",,", []string{"svg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input, "svg")
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestArtifactPath(t *testing.T) {
	tests := []struct {
		base   string
		format string
		multi  bool
		want   string
	}{
		{"maze-7", "svg", false, "maze-7.svg"},
		{"out.svg", "svg", false, "out.svg"},
		{"out/maze.png", "png", false, "out/maze.png"},
		{"out.svg", "png", true, "out.png"},
		{"maze", "pdf", true, "maze.pdf"},
	}
	for _, tt := range tests {
		if got := artifactPath(tt.base, tt.format, tt.multi); got != tt.want {
			t.Errorf("artifactPath(%q, %q, %v) = %q, want %q", tt.base, tt.format, tt.multi, got, tt.want)
		}
	}
}

func TestOutputBase(t *testing.T) {
	if got := outputBase("", 12); got != "maze-12" {
		t.Errorf("outputBase = %q", got)
	}
	if got := outputBase("x.svg", 12); got != "x.svg" {
		t.Errorf("outputBase = %q", got)
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{"txt": []byte("maze\n"), "json": []byte("{}")}

	paths, err := writeArtifacts(io.Discard, artifacts, []string{"txt", "json"}, filepath.Join(dir, "sub", "m"))
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("paths = %v", paths)
	}
	data, err := os.ReadFile(filepath.Join(dir, "sub", "m.txt"))
	if err != nil || string(data) != "maze\n" {
		t.Errorf("m.txt = %q, %v", data, err)
	}

	var stdout bytes.Buffer
	if _, err := writeArtifacts(&stdout, artifacts, []string{"txt"}, "-"); err != nil {
		t.Fatal(err)
	}
	if stdout.String() != "maze\n" {
		t.Errorf("stdout = %q", stdout.String())
	}
	if _, err := writeArtifacts(&stdout, map[string][]byte{"png": {1}}, []string{"png"}, "-"); err == nil {
		t.Error("binary format to stdout should fail")
	}
	if _, err := writeArtifacts(&stdout, artifacts, []string{"txt", "json"}, "-"); err == nil {
		t.Error("several formats to stdout should fail")
	}
}

func TestMazeFlagsResolve(t *testing.T) {
	seed := int64(5)
	cfg := config.Default()
	cfg.Maze.Seed = &seed

	newCmd := func(args ...string) (*cobra.Command, *mazeFlags) {
		var f mazeFlags
		cmd := &cobra.Command{Use: "x"}
		f.register(cmd)
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatal(err)
		}
		return cmd, &f
	}

	cmd, f := newCmd()
	var opts pipeline.Options
	f.resolve(cmd, cfg, &opts)
	if opts.Width != cfg.Maze.Width || opts.Height != cfg.Maze.Height || opts.Seed != 5 {
		t.Errorf("config defaults: %dx%d seed %d", opts.Width, opts.Height, opts.Seed)
	}

	cmd, f = newCmd("-W", "9", "--seed", "0")
	opts = pipeline.Options{}
	f.resolve(cmd, cfg, &opts)
	if opts.Width != 9 || opts.Seed != 0 {
		t.Errorf("flags: width %d seed %d, want 9 and an explicit 0", opts.Width, opts.Seed)
	}
}

func TestStatsTable(t *testing.T) {
	opts := pipeline.Options{Width: 4, Height: 3, Seed: 2, Mode: "bfs"}
	out := statsTable(opts, pipeline.Stats{
		State:  search.StateFound,
		Search: search.Stats{Steps: 10, Visited: 11, PathLength: 6, MaxFrontier: 3},
	})
	for _, want := range []string{"4x3 seed 2", "bfs", "found", "11 of 12", "Path length"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestSetLogLevelRegistersHooks(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.SetLogLevel(LogDebug)
	defer observability.Reset()
	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v", c.Logger.GetLevel())
	}
	if _, ok := observability.Pipeline().(*observability.LogHooks); !ok {
		t.Errorf("pipeline hooks = %T, want *LogHooks", observability.Pipeline())
	}
}

func TestGenerateCommand(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	out := filepath.Join(t.TempDir(), "maze.txt")

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"generate", "-W", "4", "-H", "3", "--seed", "1", "-o", out})
	if err := root.Execute(); err != nil {
		t.Fatalf("generate: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2*3+1 {
		t.Errorf("text maze has %d lines, want 7:\n%s", len(lines), data)
	}
}

func TestGenerateRejectsImageFormat(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"generate", "-f", "svg"})
	root.SetErr(io.Discard)
	if err := root.Execute(); err == nil {
		t.Error("generate -f svg should fail")
	}
}

func TestConfigFileIsUsed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[maze]\nwidth = 7\nheight = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"--config", path, "cache", "path"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if c.cfg.Maze.Width != 7 || c.cfg.Maze.Height != 2 {
		t.Errorf("config not applied: %+v", c.cfg.Maze)
	}
}

func TestNewCacheSelection(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(*config.CacheConfig)
		noCache bool
		want    string
	}{
		{"no-cache flag", func(*config.CacheConfig) {}, true, "*cache.NullCache"},
		{"disabled", func(c *config.CacheConfig) { c.Enabled = false }, false, "*cache.NullCache"},
		{"file", func(c *config.CacheConfig) { c.Dir = t.TempDir() }, false, "*cache.FileCache"},
		{"unreachable redis", func(c *config.CacheConfig) { c.RedisURL = "redis://127.0.0.1:1/0" }, false, "*cache.NullCache"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			c := New(&logs, LogInfo)
			tt.setup(&c.cfg.Cache)

			store, err := c.newCache(context.Background(), tt.noCache)
			if err != nil {
				t.Fatalf("newCache: %v", err)
			}
			defer store.Close()

			var got string
			switch store.(type) {
			case *cache.NullCache:
				got = "*cache.NullCache"
			case *cache.FileCache:
				got = "*cache.FileCache"
			case *cache.RedisCache:
				got = "*cache.RedisCache"
			}
			if got != tt.want {
				t.Errorf("cache = %T, want %s", store, tt.want)
			}
			if tt.name == "unreachable redis" && !strings.Contains(logs.String(), "redis cache unavailable") {
				t.Errorf("missing fallback warning: %q", logs.String())
			}
		})
	}
}

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetErr(io.Discard)
	root.SetOut(io.Discard)
	return root.Execute()
}

func TestGenerateDocumentRendersSameMaze(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	doc := filepath.Join(dir, "saved", "maze.json")

	if err := runCLI(t, "generate", "-W", "5", "-H", "4", "--seed", "3", "-f", "json", "-o", doc); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := os.Stat(doc); err != nil {
		t.Fatalf("document not written: %v", err)
	}

	fromDoc := filepath.Join(dir, "from-doc.txt")
	direct := filepath.Join(dir, "direct.txt")
	if err := runCLI(t, "render", doc, "--solve", "-f", "txt", "--no-cache", "-o", fromDoc); err != nil {
		t.Fatalf("render document: %v", err)
	}
	if err := runCLI(t, "render", "-W", "5", "-H", "4", "--seed", "3", "--solve", "-f", "txt", "--no-cache", "-o", direct); err != nil {
		t.Fatalf("render flags: %v", err)
	}

	a, err := os.ReadFile(fromDoc)
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(direct)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Errorf("rendered document differs from direct render:\n%s\nvs\n%s", a, b)
	}

	if err := runCLI(t, "solve", doc, "-q", "--no-cache"); err != nil {
		t.Errorf("solve document: %v", err)
	}
}

func TestInputFileRejectsMazeFlags(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	doc := filepath.Join(t.TempDir(), "maze.json")
	if err := runCLI(t, "generate", "--seed", "1", "-f", "json", "-o", doc); err != nil {
		t.Fatal(err)
	}

	tests := [][]string{
		{"render", doc, "--seed", "2"},
		{"solve", doc, "-W", "9"},
		{"solve", filepath.Join(t.TempDir(), "missing.json")},
		{"render", doc, doc},
	}
	for _, args := range tests {
		if err := runCLI(t, args...); err == nil {
			t.Errorf("%v should fail", args)
		}
	}
}

func TestCompletions(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"__complete", "solve", "--mode", ""}, []string{"bfs", "dfs"}},
		{[]string{"__complete", "render", "--format", ""}, []string{"svg", "png", "json"}},
		{[]string{"__complete", "generate", "-f", ""}, []string{"txt", "json"}},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args[1:3], " "), func(t *testing.T) {
			var out bytes.Buffer
			c := New(io.Discard, LogInfo)
			root := c.RootCommand()
			root.SetArgs(tt.args)
			root.SetOut(&out)
			root.SetErr(io.Discard)
			if err := root.Execute(); err != nil {
				t.Fatal(err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out.String(), w+"\n") {
					t.Errorf("completions missing %q:\n%s", w, out.String())
				}
			}
		})
	}

	var script bytes.Buffer
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"completion", "bash"})
	root.SetOut(&script)
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(script.String(), "mazewalk") {
		t.Error("bash script does not mention mazewalk")
	}
}

func TestNewPlayModel(t *testing.T) {
	tests := []struct {
		name    string
		cfgMode string
		args    []string
		mode    search.Mode
		state   search.State
		wantErr bool
	}{
		{"config mode", "dfs", []string{"--seed", "1"}, search.DepthFirst, search.StateIdle, false},
		{"flag beats config", "dfs", []string{"-m", "bfs"}, search.BreadthFirst, search.StateIdle, false},
		{"search at launch", "dfs", []string{"--search", "-W", "6", "-H", "4"}, search.DepthFirst, search.StateRunning, false},
		{"bad mode", "bfs", []string{"-m", "astar"}, 0, 0, true},
		{"too large", "bfs", []string{"-W", "5000"}, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(io.Discard, LogInfo)
			c.cfg.Search.Mode = tt.cfgMode
			var opts playOpts
			cmd := &cobra.Command{Use: "play"}
			opts.register(cmd)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatal(err)
			}

			model, err := c.newPlayModel(cmd, &opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if model.Mode != tt.mode || model.Game.State() != tt.state {
				t.Errorf("model mode %s state %s, want %s %s", model.Mode, model.Game.State(), tt.mode, tt.state)
			}
			if model.Tick != c.cfg.Play.Tick.Duration || model.CellWidth != c.cfg.Play.CellWidth {
				t.Errorf("tick %s cell width %d not from config", model.Tick, model.CellWidth)
			}
		})
	}
}
