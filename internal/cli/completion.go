package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/mazewalk/pkg/export"
)

var searchModes = []string{"bfs", "dfs"}

// completionCommand prints a shell completion script.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for your shell. Completions cover the
subcommands, --mode and --format values, and the maze.json argument of render
and solve.`,
		Example: `  source <(mazewalk completion bash)
  mazewalk completion zsh > "${fpath[1]}/_mazewalk"
  mazewalk completion fish | source`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// registerCompletions adds value completions to every command under root
// that has a --mode or --format flag or takes a maze document.
func registerCompletions(root *cobra.Command) {
	fixed := func(values []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp)
	}
	for _, cmd := range root.Commands() {
		if cmd.Flags().Lookup("mode") != nil {
			_ = cmd.RegisterFlagCompletionFunc("mode", fixed(searchModes))
		}
		switch cmd.Name() {
		case "generate":
			_ = cmd.RegisterFlagCompletionFunc("format", fixed(generateFormats))
		case "render":
			_ = cmd.RegisterFlagCompletionFunc("format", fixed(export.Formats))
			cmd.ValidArgsFunction = documentArg
		case "solve":
			cmd.ValidArgsFunction = documentArg
		}
	}
}

// documentArg completes a single .json file.
func documentArg(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"json"}, cobra.ShellCompDirectiveFilterFileExt
}
