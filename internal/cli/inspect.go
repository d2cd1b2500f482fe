package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartlayout/pkg/model"
	"github.com/matzehuels/chartlayout/pkg/pipeline"
)

// inspectCommand creates the inspect command for browsing a layout.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		plain      bool
		sideBySide string
		cf         cacheFlags
	)
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()

	cmd := &cobra.Command{
		Use:   "inspect [chart.yaml | chart.layout.json]",
		Short: "Browse the axes and series of a layout",
		Long: `Browse the axes and series of a layout.

A chart definition is laid out first; a .layout.json file is shown as is.
In a terminal the tables are interactive. Use --plain, or pipe the output,
for static tables.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: definitionFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applySideBySide(&opts, sideBySide); err != nil {
				return err
			}
			layout, err := c.loadLayout(cmd.Context(), args[0], opts, cf)
			if err != nil {
				return err
			}
			if plain || !isTerminal(os.Stdout) {
				fmt.Fprint(c.Out, renderInspect(layout))
				return nil
			}
			_, err = tea.NewProgram(NewInspectModel(layout), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print static tables instead of the interactive view")
	cf.register(cmd)
	layoutFlags(cmd, &opts, &sideBySide)

	return cmd
}

// loadLayout reads a layout file or lays out a definition.
func (c *CLI) loadLayout(ctx context.Context, input string, opts pipeline.Options, cf cacheFlags) (model.Layout, error) {
	if strings.HasSuffix(input, layoutSuffix) {
		return model.ReadLayoutFile(input)
	}
	def, err := pipeline.ParseFile(input)
	if err != nil {
		return model.Layout{}, err
	}
	runner, err := c.newRunner(ctx, cf)
	if err != nil {
		return model.Layout{}, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger
	return runner.Layout(ctx, def, opts)
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
