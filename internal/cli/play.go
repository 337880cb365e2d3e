package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mazewalk/pkg/errors"
	"github.com/matzehuels/mazewalk/pkg/game"
	"github.com/matzehuels/mazewalk/pkg/pipeline"
	"github.com/matzehuels/mazewalk/pkg/search"
)

// playOpts holds the command-line flags for the play command.
type playOpts struct {
	maze      mazeFlags
	tick      time.Duration
	cellWidth int
	mode      string // search started by space, and by --search at launch
	search    bool
}

func (c *CLI) playCommand() *cobra.Command {
	var opts playOpts

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Walk a maze and watch BFS or DFS solve it",
		Long: `Open the maze in the terminal. Move with w/a/s/d or the arrow keys, press
b (or n) to start a breadth-first search and f (or m) for depth-first; space
starts the search named by --mode or the [search] config. The search advances
one step per tick. r discards the search, enter builds a new maze, + and -
change the speed, q quits.`,
		Example: `  mazewalk play --seed 7
  mazewalk play -W 60 -H 30 --search --mode dfs --tick 10ms`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := c.newPlayModel(cmd, &opts)
			if err != nil {
				return err
			}
			g := model.Game
			loggerFromContext(cmd.Context()).Debug("starting game",
				"maze", fmt.Sprintf("%dx%d seed=%d", g.Width(), g.Height(), g.Seed()),
				"tick", model.Tick, "mode", model.Mode)

			prog := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := prog.Run(); err != nil {
				return fmt.Errorf("run game: %w", err)
			}

			if g.Won() {
				printSuccess("Reached the goal in %d moves", g.Moves())
			} else {
				printInfo("Left after %d moves", g.Moves())
			}
			printDetail("last maze: %dx%d seed %d", g.Width(), g.Height(), g.Seed())
			return nil
		},
	}

	opts.register(cmd)
	return cmd
}

func (o *playOpts) register(cmd *cobra.Command) {
	o.maze.register(cmd)
	cmd.Flags().DurationVar(&o.tick, "tick", 0, "time per search step (default from config)")
	cmd.Flags().IntVar(&o.cellWidth, "cell-width", 0, "terminal columns per cell (default from config)")
	cmd.Flags().StringVarP(&o.mode, "mode", "m", "", "search mode for the space key: bfs or dfs (default from config)")
	cmd.Flags().BoolVar(&o.search, "search", false, "start the search as soon as the maze opens")
}

// newPlayModel builds the game and its model from the flags and config.
func (c *CLI) newPlayModel(cmd *cobra.Command, opts *playOpts) (PlayModel, error) {
	var popts pipeline.Options
	opts.maze.resolve(cmd, c.cfg, &popts)
	if err := errors.ValidateSize(popts.Width, popts.Height); err != nil {
		return PlayModel{}, err
	}

	tick := opts.tick
	if !cmd.Flags().Changed("tick") {
		tick = c.cfg.Play.Tick.Duration
	}
	if tick <= 0 {
		return PlayModel{}, errors.New(errors.ErrCodeInvalidConfig, "tick must be positive, got %s", tick)
	}
	cellWidth := opts.cellWidth
	if !cmd.Flags().Changed("cell-width") {
		cellWidth = c.cfg.Play.CellWidth
	}
	name := opts.mode
	if name == "" {
		name = c.cfg.Search.Mode
	}
	mode, err := search.ParseMode(name)
	if err != nil {
		return PlayModel{}, err
	}

	g, err := game.New(popts.Width, popts.Height, game.WithSeed(popts.Seed))
	if err != nil {
		return PlayModel{}, err
	}
	model := NewPlayModel(g, tick, cellWidth)
	model.Mode = mode
	if opts.search {
		g.StartSearch(mode)
	}
	return model, nil
}
