package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartlayout/pkg/pipeline"
)

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// completionCommand prints a shell completion script. Besides subcommands it
// completes chart definition files and the values of --cache, --format,
// --measurer and --side-by-side.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [" + strings.Join(completionShells, "|") + "]",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for chartlayout.

  $ source <(chartlayout completion bash)
  $ chartlayout completion zsh > "${fpath[1]}/_chartlayout"
  $ chartlayout completion fish > ~/.config/fish/completions/chartlayout.fish
  PS> chartlayout completion powershell | Out-String | Invoke-Expression

Start a new shell after installing the zsh or fish script.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             completionShells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, w := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(w, true)
			case "zsh":
				return root.GenZshCompletion(w)
			case "fish":
				return root.GenFishCompletion(w, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(w)
			}
			return fmt.Errorf("unsupported shell %q", args[0])
		},
	}
}

// definitionFiles completes chart definitions and computed layouts.
var definitionFiles = cobra.FixedCompletions(
	[]string{"json", "yaml", "yml", "toml"},
	cobra.ShellCompDirectiveFilterFileExt,
)

// completeValues registers fixed completions for a flag. Flags that take a
// comma-separated list complete one entry at a time.
func completeValues(cmd *cobra.Command, flag string, values ...string) {
	_ = cmd.RegisterFlagCompletionFunc(flag, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
}

func formatNames() []string {
	return []string{
		pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF,
		pipeline.FormatJSON, pipeline.FormatDOT, pipeline.FormatTopology,
	}
}
