package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartlayout/pkg/model"
	"github.com/matzehuels/chartlayout/pkg/pipeline"
)

// renderCommand creates the render command. It accepts a chart definition,
// which is laid out first, or a .layout.json file from the layout command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		sideBySide string
		cf         cacheFlags
	)
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()

	cmd := &cobra.Command{
		Use:   "render [chart.yaml | chart.layout.json]",
		Short: "Render a chart to SVG, PNG, PDF or Graphviz",
		Long: `Render a chart to SVG, PNG, PDF or Graphviz.

The input is either a chart definition (JSON, TOML or YAML), which is laid out
first, or a .layout.json file produced by 'chartlayout layout'.

Formats:
  svg       wireframe of the layout: plot area, axes, segments, label boxes
  png, pdf  the wireframe converted with rsvg-convert
  json      the layout itself
  dot       Graphviz source of the axis/series structure
  topology  the Graphviz structure rendered to SVG

Results are cached locally for faster subsequent runs.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: definitionFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if err := applySideBySide(&opts, sideBySide); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, cf)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot, topology (comma-separated)")
	cf.register(cmd)
	layoutFlags(cmd, &opts, &sideBySide)

	cmd.Flags().BoolVar(&opts.ShowLabels, "labels", false, "draw data label boxes and text")
	cmd.Flags().BoolVar(&opts.ShowGrid, "grid", false, "draw gridlines at axis ticks")
	cmd.Flags().BoolVar(&opts.ShowTitle, "title", false, "draw the chart title")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show ranges and slots in topology diagrams")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "PNG scale factor")
	completeValues(cmd, "format", formatNames()...)

	return cmd
}

// runRender lays out (unless given a layout) and renders the input.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, cf cacheFlags) error {
	runner, err := c.newRunner(ctx, cf)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger
	ctx = withLogger(ctx, c.Logger)

	spinner := newSpinnerWithContext(ctx, "Rendering "+strings.Join(opts.Formats, ", ")+"...")
	spinner.Start()

	var (
		artifacts map[string][]byte
		stats     pipeline.Stats
		cacheHit  bool
	)
	if strings.HasSuffix(input, layoutSuffix) {
		layout, err := model.ReadLayoutFile(input)
		if err != nil {
			spinner.StopWithError("Render failed")
			return fmt.Errorf("load layout %s: %w", input, err)
		}
		artifacts, cacheHit, err = runner.RenderWithCacheInfo(ctx, layout, opts)
		if err != nil {
			spinner.StopWithError("Render failed")
			return fmt.Errorf("render: %w", err)
		}
		stats = pipeline.Stats{
			AxisCount:   len(layout.Axes),
			SeriesCount: len(layout.Series),
			LabelCount:  layout.LabelCount(),
			Iterations:  layout.Iterations,
			Converged:   layout.Converged,
		}
	} else {
		def, err := pipeline.ParseFile(input)
		if err != nil {
			spinner.StopWithError("Render failed")
			return err
		}
		res, err := runner.Execute(ctx, def, opts)
		if err != nil {
			spinner.StopWithError("Render failed")
			return fmt.Errorf("render: %w", err)
		}
		artifacts, stats = res.Artifacts, res.Stats
		cacheHit = res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit
	}
	spinner.Stop()
	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(ctx, artifacts, opts.Formats, input, output)
	if err != nil {
		return err
	}

	out := c.report()
	out.success("Render complete")
	for _, p := range paths {
		out.file(p)
	}
	out.stats(stats, cacheHit)
	return nil
}

// writeArtifacts writes each rendered format to its output file and returns
// the written paths in format order.
func writeArtifacts(ctx context.Context, artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	logger := loggerFromContext(ctx)
	single := len(formats) == 1

	var paths []string
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			return paths, fmt.Errorf("renderer produced no %s output", format)
		}
		path := outputPath(output, input, format, single)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		logger.Debugf("Generated %s: %d bytes", path, len(data))
		paths = append(paths, path)
	}
	return paths, nil
}
