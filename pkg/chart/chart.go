package chart

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartlayout/pkg/chart/arrange"
	"github.com/matzehuels/chartlayout/pkg/chart/axis"
	"github.com/matzehuels/chartlayout/pkg/chart/sbs"
	"github.com/matzehuels/chartlayout/pkg/chart/series"
	"github.com/matzehuels/chartlayout/pkg/fonts"
	"github.com/matzehuels/chartlayout/pkg/geom"
)

var (
	// ErrUnknownAxis is returned when an axis ID does not name a live axis.
	ErrUnknownAxis = errors.New("unknown axis")

	// ErrUnknownSeries is returned when a series ID does not name a live series.
	ErrUnknownSeries = errors.New("unknown series")

	// ErrParallelAxes is returned by [Chart.AddSeries] when the x and y axes
	// have the same orientation.
	ErrParallelAxes = errors.New("series axes must be perpendicular")
)

// SegmentStyler assigns drawing styles to built segments. It is called once
// per segment during a layout pass and may invalidate the chart; such
// invalidations take effect on the next pass.
type SegmentStyler interface {
	StyleSegment(s *series.Series, seg *series.Segment)
}

// StylerFunc adapts a function to the SegmentStyler interface.
type StylerFunc func(s *series.Series, seg *series.Segment)

// StyleSegment calls f(s, seg).
func (f StylerFunc) StyleSegment(s *series.Series, seg *series.Segment) { f(s, seg) }

// Option configures a Chart.
type Option func(*Chart)

// WithLogger sets the logger used for pass diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *Chart) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStyler sets the segment styler.
func WithStyler(s SegmentStyler) Option {
	return func(c *Chart) { c.styler = s }
}

// WithTextMeasurer sets the text measurer used for tick and data labels.
func WithTextMeasurer(m axis.TextMeasurer) Option {
	return func(c *Chart) {
		if m != nil {
			c.text = m
		}
	}
}

// WithMaxIterations caps the axis arrangement loop.
func WithMaxIterations(n int) Option {
	return func(c *Chart) { c.solver.MaxIterations = n }
}

// WithSideBySide enables or disables side-by-side column placement.
// It is enabled by default.
func WithSideBySide(enabled bool) Option {
	return func(c *Chart) { c.sideBySide = enabled }
}

// Chart is the layout arena for one Cartesian chart.
//
// The zero value is not usable; use New.
type Chart struct {
	axes   []*axis.Axis
	series []*series.Series

	axisState   []State
	seriesState []State
	state       State
	pending     []invalidation
	inPass      bool

	text       axis.TextMeasurer
	solver     *arrange.Solver
	sbs        sbs.Solver
	styler     SegmentStyler
	logger     *log.Logger
	sideBySide bool

	last     *Result
	lastSize geom.Size
	passes   int
}

// New returns an empty chart. Labels are measured with the Go Regular font
// unless WithTextMeasurer is given.
func New(opts ...Option) *Chart {
	c := &Chart{
		text:       fonts.Default(),
		logger:     log.New(io.Discard),
		sideBySide: true,
		state:      NeedsMeasure,
	}
	c.solver = arrange.NewSolver(axis.SizeCalculator{})
	for _, opt := range opts {
		opt(c)
	}
	c.solver.Measurer = axis.SizeCalculator{Text: c.text}
	return c
}

// AddAxis appends an axis and returns it for configuration. Its ID is its
// index in the arena.
func (c *Chart) AddAxis(name string, o axis.Orientation, vt axis.ValueType) *axis.Axis {
	a := axis.New(axis.ID(len(c.axes)), name, o, vt)
	c.axes = append(c.axes, a)
	c.axisState = append(c.axisState, NeedsMeasure)
	c.mark(invalidation{target: kindAxis, id: int(a.ID), state: NeedsMeasure})
	return a
}

// RemoveAxis removes an axis. Series still bound to it are skipped by
// layout until rebound.
func (c *Chart) RemoveAxis(id axis.ID) error {
	if c.Axis(id) == nil {
		return ErrUnknownAxis
	}
	c.axes[id] = nil
	c.Invalidate(NeedsGrouping)
	return nil
}

// Axis returns the axis with the given ID, or nil.
func (c *Chart) Axis(id axis.ID) *axis.Axis {
	if id < 0 || int(id) >= len(c.axes) {
		return nil
	}
	return c.axes[id]
}

// Axes returns the live axes in registration order.
func (c *Chart) Axes() []*axis.Axis {
	out := make([]*axis.Axis, 0, len(c.axes))
	for _, a := range c.axes {
		if a != nil {
			out = append(out, a)
		}
	}
	return out
}

// UpdateAxis applies fn to an axis and marks it with s.
func (c *Chart) UpdateAxis(id axis.ID, s State, fn func(*axis.Axis)) error {
	a := c.Axis(id)
	if a == nil {
		return ErrUnknownAxis
	}
	fn(a)
	c.InvalidateAxis(id, s)
	return nil
}

// AddSeries appends a series bound to the x and y axes.
func (c *Chart) AddSeries(name string, k series.Kind, x, y axis.ID) (*series.Series, error) {
	xa, ya := c.Axis(x), c.Axis(y)
	if xa == nil || ya == nil {
		return nil, ErrUnknownAxis
	}
	if xa.Orientation == ya.Orientation {
		return nil, ErrParallelAxes
	}
	s := series.New(series.ID(len(c.series)), name, k, x, y)
	c.series = append(c.series, s)
	c.seriesState = append(c.seriesState, NeedsGrouping)
	c.mark(invalidation{target: kindSeries, id: int(s.ID), state: NeedsGrouping})
	return s, nil
}

// RemoveSeries removes a series.
func (c *Chart) RemoveSeries(id series.ID) error {
	if c.Series(id) == nil {
		return ErrUnknownSeries
	}
	c.series[id] = nil
	c.Invalidate(NeedsGrouping)
	return nil
}

// Series returns the series with the given ID, or nil.
func (c *Chart) Series(id series.ID) *series.Series {
	if id < 0 || int(id) >= len(c.series) {
		return nil
	}
	return c.series[id]
}

// SeriesList returns the live series in registration order.
func (c *Chart) SeriesList() []*series.Series {
	out := make([]*series.Series, 0, len(c.series))
	for _, s := range c.series {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// UpdateSeries applies fn to a series and marks it with s.
func (c *Chart) UpdateSeries(id series.ID, s State, fn func(*series.Series)) error {
	sr := c.Series(id)
	if sr == nil {
		return ErrUnknownSeries
	}
	fn(sr)
	c.InvalidateSeries(id, s)
	return nil
}

// SetSeriesVisible shows or hides a series. Visibility changes regroup
// side-by-side slots.
func (c *Chart) SetSeriesVisible(id series.ID, visible bool) error {
	return c.UpdateSeries(id, NeedsGrouping, func(s *series.Series) { s.Visible = visible })
}

// Passes returns the number of layout passes run so far, counting label-only
// passes.
func (c *Chart) Passes() int { return c.passes }
