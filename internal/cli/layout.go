package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartlayout/pkg/model"
	"github.com/matzehuels/chartlayout/pkg/pipeline"
)

// layoutCommand creates the layout command for computing chart layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output     string
		sideBySide string
		cf         cacheFlags
	)
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()

	cmd := &cobra.Command{
		Use:   "layout [chart.yaml]",
		Short: "Compute the layout of a chart definition",
		Long: `Compute the layout of a chart definition.

The definition may be JSON, TOML or YAML; the format follows the file
extension. The output is a .layout.json file holding the plot area, axis
ticks, series segments and data label boxes in chart-area pixels. It can be
rendered later with 'chartlayout render'.

Results are cached locally for faster subsequent runs.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: definitionFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applySideBySide(&opts, sideBySide); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], opts, output, cf)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cf.register(cmd)
	layoutFlags(cmd, &opts, &sideBySide)

	return cmd
}

// runLayout loads the definition, computes the layout and writes it.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, cf cacheFlags) error {
	def, err := pipeline.ParseFile(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cf)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	layout, cacheHit, err := runner.LayoutWithCacheInfo(ctx, def, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done("Laid out " + input)

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + layoutSuffix
	}
	if err := model.WriteLayoutFile(layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	out := c.report()
	out.success("Layout complete")
	out.file(outputPath)
	out.stats(pipeline.Stats{
		AxisCount:   len(layout.Axes),
		SeriesCount: len(layout.Series),
		LabelCount:  layout.LabelCount(),
		Iterations:  layout.Iterations,
		Converged:   layout.Converged,
	}, cacheHit)
	if !layout.Converged {
		out.warning("Layout did not converge after %d passes", layout.Iterations)
	}
	out.nextStep("Render", "chartlayout render "+outputPath)

	return nil
}
