package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mazewalk/pkg/export"
	"github.com/matzehuels/mazewalk/pkg/pipeline"
	"github.com/matzehuels/mazewalk/pkg/search"
)

func (c *CLI) solveCommand() *cobra.Command {
	var (
		flags    mazeFlags
		mode     string
		maxSteps int
		quiet    bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "solve [maze.json]",
		Short: "Solve a maze with BFS or DFS and show the statistics",
		Long: `Generate a maze, or load one saved with "generate -f json", run a
breadth-first or depth-first search from the start to the goal and print the
maze with the path drawn in, followed by the search statistics.`,
		Example: `  mazewalk solve --seed 7
  mazewalk solve --seed 7 --mode dfs --quiet
  mazewalk solve maze.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := pipeline.Options{
				Solve:    true,
				Mode:     mode,
				MaxSteps: maxSteps,
				Formats:  []string{string(export.FormatText)},
			}
			if opts.Mode == "" {
				opts.Mode = c.cfg.Search.Mode
			}
			if err := flags.resolveInput(cmd, args, c.cfg, &opts); err != nil {
				return err
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			spin := newSpinner(cmd.Context(), os.Stderr, fmt.Sprintf("Solving %s...", opts.String()))
			spin.Start()
			result, err := runner.Execute(cmd.Context(), opts)
			spin.Stop()
			if err != nil {
				return err
			}
			if !quiet {
				if _, err := os.Stdout.Write(result.Artifacts[opts.Formats[0]]); err != nil {
					return err
				}
			}
			fmt.Println(statsTable(opts, result.Stats))
			if result.Stats.State == search.StateRunning {
				printWarning("Search stopped after %d steps", opts.MaxSteps)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "search mode: bfs or dfs (default from config)")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 0, "stop the search after this many steps")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print only the statistics")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")

	return cmd
}

// statsTable renders the search statistics as a bordered table.
func statsTable(opts pipeline.Options, st pipeline.Stats) string {
	ms := func(d time.Duration) string { return d.Round(time.Microsecond).String() }
	rows := [][]string{
		{"Maze", fmt.Sprintf("%dx%d seed %d", opts.Width, opts.Height, opts.Seed)},
		{"Mode", opts.Mode},
		{"State", st.State.String()},
		{"Steps", fmt.Sprint(st.Search.Steps)},
		{"Visited", fmt.Sprintf("%d of %d", st.Search.Visited, opts.Width*opts.Height)},
		{"Path length", fmt.Sprint(st.Search.PathLength)},
		{"Max frontier", fmt.Sprint(st.Search.MaxFrontier)},
		{"Generate", ms(st.GenerateTime)},
		{"Solve", ms(st.SolveTime)},
	}

	keyStyle := lipgloss.NewStyle().Foreground(colorGray).PaddingRight(1)
	valueStyle := lipgloss.NewStyle().Foreground(colorWhite)
	stateStyle := StyleSuccess
	if st.State != search.StateFound {
		stateStyle = StyleWarning
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case col == 0:
				return keyStyle
			case row == 2:
				return stateStyle
			default:
				return valueStyle
			}
		}).
		Render()
}
