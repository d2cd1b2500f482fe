package model

import (
	"github.com/matzehuels/chartlayout/pkg/chart"
	"github.com/matzehuels/chartlayout/pkg/chart/axis"
	"github.com/matzehuels/chartlayout/pkg/chart/datalabel"
	"github.com/matzehuels/chartlayout/pkg/chart/series"
	"github.com/matzehuels/chartlayout/pkg/errors"
	"github.com/matzehuels/chartlayout/pkg/geom"
)

// Size returns the definition's size, falling back to the given defaults for
// unset dimensions.
func (d *Definition) Size(defaultWidth, defaultHeight float64) geom.Size {
	s := geom.Size{Width: d.Width, Height: d.Height}
	if s.Width == 0 {
		s.Width = defaultWidth
	}
	if s.Height == 0 {
		s.Height = defaultHeight
	}
	return s
}

// Build validates the definition and constructs a chart from it. Axis IDs
// follow definition order, as do series IDs. opts are applied after the
// definition's own chart settings.
func (d *Definition) Build(opts ...chart.Option) (*chart.Chart, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	var base []chart.Option
	if d.SideBySide != nil {
		base = append(base, chart.WithSideBySide(*d.SideBySide))
	}
	if d.MaxIterations > 0 {
		base = append(base, chart.WithMaxIterations(d.MaxIterations))
	}
	c := chart.New(append(base, opts...)...)

	for i := range d.Axes {
		def := &d.Axes[i]
		o, _ := axis.ParseOrientation(def.Orientation)
		vt, _ := axis.ParseValueType(def.Type)
		a := c.AddAxis(def.Name, o, vt)
		applyAxis(a, def)
		a.CrossAxis = d.crossAxisID(def, o)
	}

	for i := range d.Series {
		def := &d.Series[i]
		k, _ := series.ParseKind(def.Type)
		x, y := axis.ID(d.AxisIndex(def.XAxis)), axis.ID(d.AxisIndex(def.YAxis))
		s, err := c.AddSeries(def.Name, k, x, y)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSeries, err, "series %q", def.Name)
		}
		applySeries(s, def)
	}
	return c, nil
}

// crossAxisID resolves the axis CrossesAt refers to. Without an explicit
// name the first perpendicular axis is used.
func (d *Definition) crossAxisID(def *Axis, o axis.Orientation) axis.ID {
	if def.CrossAxis != "" {
		return axis.ID(d.AxisIndex(def.CrossAxis))
	}
	if def.CrossesAt == nil {
		return axis.NoAxis
	}
	for j := range d.Axes {
		if co, _ := axis.ParseOrientation(d.Axes[j].Orientation); co != o {
			return axis.ID(j)
		}
	}
	return axis.NoAxis
}

func applyAxis(a *axis.Axis, def *Axis) {
	a.Opposed = def.Opposed
	a.Inversed = def.Inversed
	if def.Min != nil {
		a.Minimum = *def.Min
	}
	if def.Max != nil {
		a.Maximum = *def.Max
	}
	a.Interval = def.Interval
	a.IntervalType, _ = axis.ParseIntervalType(def.IntervalType)
	if def.LogBase > 0 {
		a.LogBase = def.LogBase
	}
	a.RangePadding, _ = axis.ParseRangePadding(def.RangePadding)
	a.Categories = append([]string(nil), def.Categories...)
	if def.CrossesAt != nil {
		a.CrossesAt = *def.CrossesAt
	}
	a.RenderNextToCrossingValue = def.RenderAtCrossing

	st := &a.Style
	in := def.Style
	if in.LabelFontSize > 0 {
		st.LabelFontSize = in.LabelFontSize
	}
	if in.LabelMargin > 0 {
		st.LabelMargin = in.LabelMargin
	}
	st.LabelRotation = in.LabelRotation
	st.LabelFormat = in.LabelFormat
	st.LabelPosition, _ = axis.ParsePosition(in.LabelPosition)
	st.HideLabels = in.HideLabels
	if in.TickLength != nil {
		st.TickLength = *in.TickLength
	}
	st.TickPosition, _ = axis.ParsePosition(in.TickPosition)
	if in.LineWidth != nil {
		st.LineWidth = *in.LineWidth
	}
	st.Title = in.Title
	if in.TitleFontSize > 0 {
		st.TitleFontSize = in.TitleFontSize
	}
	if in.TitleMargin > 0 {
		st.TitleMargin = in.TitleMargin
	}
	st.IntersectAction, _ = axis.ParseIntersectAction(in.IntersectAction)
}

func applySeries(s *series.Series, def *Series) {
	s.Visible = !def.Hidden
	if def.Width != nil {
		s.Width = *def.Width
	}
	s.Spacing = def.Spacing
	s.Group = def.Group
	if def.StrokeWidth != nil {
		s.StrokeWidth = *def.StrokeWidth
	}
	s.MarkerSize = def.MarkerSize

	switch {
	case len(def.Points) > 0:
		s.Points = make([]series.Point, len(def.Points))
		for i, p := range def.Points {
			s.Points[i] = series.Point{X: p.X, Y: p.YValue()}
		}
	case len(def.Values) > 0:
		s.Points = make([]series.Point, len(def.Values))
		for i, v := range def.Values {
			s.Points[i] = series.Point{X: float64(i), Y: Point{Y: v}.YValue()}
		}
	}

	if l := def.Labels; l != nil {
		st := &s.Labels
		st.Visible = !l.Hidden
		st.Position, _ = datalabel.ParsePosition(l.Position)
		st.Alignment, _ = datalabel.ParseAlignment(l.Alignment)
		st.Format = l.Format
		if l.FontSize > 0 {
			st.FontSize = l.FontSize
		}
		if l.Padding != nil {
			st.Padding = *l.Padding
		}
		if l.Margin != nil {
			st.Margin = *l.Margin
		}
		st.StrokeWidth = l.StrokeWidth
	}
}
