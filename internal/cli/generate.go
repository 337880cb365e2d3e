package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mazewalk/pkg/errors"
	"github.com/matzehuels/mazewalk/pkg/export"
	"github.com/matzehuels/mazewalk/pkg/pipeline"
)

// generateFormats are the formats generate can write to a terminal.
var generateFormats = []string{string(export.FormatText), "text", string(export.FormatJSON)}

func (c *CLI) generateCommand() *cobra.Command {
	var (
		flags  mazeFlags
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a maze and print it",
		Long: `Generate a perfect maze with randomized Kruskal and print it as text or
JSON. The same width, height and seed always give the same maze.`,
		Example: `  mazewalk generate --seed 7
  mazewalk generate -W 40 -H 25 -f json -o maze.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateFormat(format, generateFormats); err != nil {
				return err
			}
			logger := loggerFromContext(cmd.Context())
			runner, err := c.newRunner(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := pipeline.Options{Formats: []string{format}}
			flags.resolve(cmd, c.cfg, &opts)
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			prog := newProgress(logger)
			if output == "" || output == "-" {
				if _, err := renderToWriter(cmd.Context(), runner, opts, os.Stdout); err != nil {
					return err
				}
				prog.done(fmt.Sprintf("Generated %s", opts.String()))
				return nil
			}

			if f, _ := export.ParseFormat(format); f == export.FormatJSON {
				path, err := saveDocument(cmd.Context(), runner, opts, output)
				if err != nil {
					return err
				}
				prog.done(fmt.Sprintf("Generated %s", opts.String()))
				printFile(path)
				printNextStep("Solve it", "mazewalk render "+path+" --solve")
				return nil
			}

			result, err := runner.Execute(cmd.Context(), opts)
			if err != nil {
				return err
			}
			paths, err := writeArtifacts(os.Stdout, result.Artifacts, opts.Formats, output)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Generated %s", opts.String()))
			for _, p := range paths {
				printFile(p)
			}
			printNextStep("Render it", fmt.Sprintf("mazewalk render -W %d -H %d --seed %d --solve", opts.Width, opts.Height, opts.Seed))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatText), "output format: txt or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}

// saveDocument generates the maze and writes its JSON document under output,
// where render and solve can load it again.
func saveDocument(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, output string) (string, error) {
	m, err := runner.Generate(ctx, opts)
	if err != nil {
		return "", err
	}
	path := artifactPath(output, string(export.FormatJSON), false)
	if err := ensureDir(path); err != nil {
		return "", err
	}
	if err := export.ExportJSON(export.Scene{Maze: m}, path); err != nil {
		return "", err
	}
	return path, nil
}
