package pipeline

import (
	"github.com/matzehuels/chartlayout/pkg/chart"
	"github.com/matzehuels/chartlayout/pkg/chart/axis"
	"github.com/matzehuels/chartlayout/pkg/fonts"
	"github.com/matzehuels/chartlayout/pkg/model"
)

// =============================================================================
// Layout Generation
// =============================================================================

// ComputeLayout builds the chart described by def and runs one layout pass
// at the definition's size, or at the options' size when the definition
// sets none.
func ComputeLayout(def model.Definition, opts Options) (model.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return model.Layout{}, err
	}

	c, err := def.Build(chartOptions(opts)...)
	if err != nil {
		return model.Layout{}, err
	}

	res := c.Layout(def.Size(opts.Width, opts.Height))
	opts.Logger.Debug("layout pass",
		"iterations", res.Iterations,
		"converged", res.Converged,
		"plot_area", res.PlotArea)
	if !res.Converged {
		opts.Logger.Warn("axis arrangement did not converge; keeping last margins",
			"iterations", res.Iterations)
	}
	return model.FromResult(def.Title, res), nil
}

// chartOptions translates pipeline options into chart options. They are
// applied after the definition's own settings.
func chartOptions(opts Options) []chart.Option {
	co := []chart.Option{
		chart.WithTextMeasurer(textMeasurer(opts.Measurer)),
		chart.WithLogger(opts.Logger),
	}
	if opts.SideBySide != nil {
		co = append(co, chart.WithSideBySide(*opts.SideBySide))
	}
	if opts.MaxIterations > 0 {
		co = append(co, chart.WithMaxIterations(opts.MaxIterations))
	}
	return co
}

func textMeasurer(name string) axis.TextMeasurer {
	if name == MeasurerApprox {
		return fonts.Approx{}
	}
	return fonts.Default()
}
