package model

import (
	"fmt"

	"github.com/matzehuels/chartlayout/pkg/chart/axis"
	"github.com/matzehuels/chartlayout/pkg/chart/datalabel"
	"github.com/matzehuels/chartlayout/pkg/chart/series"
	"github.com/matzehuels/chartlayout/pkg/errors"
)

// Validate checks that the definition can be built into a chart: names are
// valid and unique, enumerations are known, series reference existing
// perpendicular axes and numeric settings are in range. A zero size is
// accepted and left to the caller's defaults.
func (d *Definition) Validate() error {
	if d.Width != 0 || d.Height != 0 {
		if err := errors.ValidateSize(d.Width, d.Height); err != nil {
			return err
		}
	}
	if d.MaxIterations < 0 {
		return errors.New(errors.ErrCodeInvalidDefinition, "max_iterations cannot be negative")
	}

	seen := make(map[string]bool, len(d.Axes))
	for i := range d.Axes {
		a := &d.Axes[i]
		if err := errors.ValidateName(errors.ErrCodeInvalidAxis, "axis", a.Name); err != nil {
			return err
		}
		if seen[a.Name] {
			return errors.New(errors.ErrCodeInvalidAxis, "duplicate axis name %q", a.Name)
		}
		seen[a.Name] = true
		if err := validateAxis(a); err != nil {
			return err
		}
	}

	for i := range d.Axes {
		if err := d.validateAxisRefs(&d.Axes[i]); err != nil {
			return err
		}
	}

	names := make(map[string]bool, len(d.Series))
	for i := range d.Series {
		s := &d.Series[i]
		if err := errors.ValidateName(errors.ErrCodeInvalidSeries, "series", s.Name); err != nil {
			return err
		}
		if names[s.Name] {
			return errors.New(errors.ErrCodeInvalidSeries, "duplicate series name %q", s.Name)
		}
		names[s.Name] = true
		if err := d.validateSeries(s); err != nil {
			return err
		}
	}
	return nil
}

func validateAxis(a *Axis) error {
	if _, ok := axis.ParseOrientation(a.Orientation); !ok {
		return errors.New(errors.ErrCodeInvalidAxis, "axis %q: unknown orientation %q (must be horizontal or vertical)", a.Name, a.Orientation)
	}
	vt, ok := axis.ParseValueType(a.Type)
	if !ok {
		return errors.New(errors.ErrCodeInvalidAxis, "axis %q: unknown type %q", a.Name, a.Type)
	}
	if _, ok := axis.ParseIntervalType(a.IntervalType); !ok {
		return errors.New(errors.ErrCodeInvalidAxis, "axis %q: unknown interval_type %q", a.Name, a.IntervalType)
	}
	if _, ok := axis.ParseRangePadding(a.RangePadding); !ok {
		return errors.New(errors.ErrCodeInvalidAxis, "axis %q: unknown range_padding %q", a.Name, a.RangePadding)
	}
	if _, ok := axis.ParseIntersectAction(a.Style.IntersectAction); !ok {
		return errors.New(errors.ErrCodeInvalidAxis, "axis %q: unknown intersect_action %q", a.Name, a.Style.IntersectAction)
	}
	if _, ok := axis.ParsePosition(a.Style.LabelPosition); !ok {
		return errors.New(errors.ErrCodeInvalidAxis, "axis %q: unknown label_position %q", a.Name, a.Style.LabelPosition)
	}
	if _, ok := axis.ParsePosition(a.Style.TickPosition); !ok {
		return errors.New(errors.ErrCodeInvalidAxis, "axis %q: unknown tick_position %q", a.Name, a.Style.TickPosition)
	}

	if a.Min != nil {
		if err := errors.ValidateFinite(errors.ErrCodeInvalidAxis, "axis "+a.Name+": min", *a.Min); err != nil {
			return err
		}
	}
	if a.Max != nil {
		if err := errors.ValidateFinite(errors.ErrCodeInvalidAxis, "axis "+a.Name+": max", *a.Max); err != nil {
			return err
		}
	}
	if a.Min != nil && a.Max != nil && *a.Min > *a.Max {
		return errors.New(errors.ErrCodeInvalidAxis, "axis %q: min %g exceeds max %g", a.Name, *a.Min, *a.Max)
	}
	if err := errors.ValidateNonNegative(errors.ErrCodeInvalidAxis, "axis "+a.Name+": interval", a.Interval); err != nil {
		return err
	}
	if vt == axis.Logarithmic {
		if a.LogBase != 0 && !(a.LogBase > 1) {
			return errors.New(errors.ErrCodeInvalidAxis, "axis %q: log_base must be greater than 1", a.Name)
		}
		if a.Min != nil && *a.Min <= 0 {
			return errors.New(errors.ErrCodeInvalidAxis, "axis %q: logarithmic min must be positive", a.Name)
		}
	}
	if a.CrossesAt != nil {
		if err := errors.ValidateFinite(errors.ErrCodeInvalidAxis, "axis "+a.Name+": crosses_at", *a.CrossesAt); err != nil {
			return err
		}
	}

	st := a.Style
	for _, f := range []struct {
		field string
		v     float64
	}{
		{"label_font_size", st.LabelFontSize},
		{"label_margin", st.LabelMargin},
		{"title_font_size", st.TitleFontSize},
		{"title_margin", st.TitleMargin},
	} {
		if err := errors.ValidateNonNegative(errors.ErrCodeInvalidAxis, "axis "+a.Name+": "+f.field, f.v); err != nil {
			return err
		}
	}
	if err := errors.ValidateFinite(errors.ErrCodeInvalidAxis, "axis "+a.Name+": label_rotation", st.LabelRotation); err != nil {
		return err
	}
	if st.TickLength != nil {
		if err := errors.ValidateNonNegative(errors.ErrCodeInvalidAxis, "axis "+a.Name+": tick_length", *st.TickLength); err != nil {
			return err
		}
	}
	if st.LineWidth != nil {
		if err := errors.ValidateNonNegative(errors.ErrCodeInvalidAxis, "axis "+a.Name+": line_width", *st.LineWidth); err != nil {
			return err
		}
	}
	return nil
}

// validateAxisRefs checks the cross axis reference of a against the full
// axis list.
func (d *Definition) validateAxisRefs(a *Axis) error {
	o, _ := axis.ParseOrientation(a.Orientation)
	if a.CrossAxis != "" {
		j := d.AxisIndex(a.CrossAxis)
		if j < 0 {
			return errors.New(errors.ErrCodeInvalidAxis, "axis %q: cross_axis %q not found", a.Name, a.CrossAxis)
		}
		if co, _ := axis.ParseOrientation(d.Axes[j].Orientation); co == o {
			return errors.New(errors.ErrCodeInvalidAxis, "axis %q: cross_axis %q must be perpendicular", a.Name, a.CrossAxis)
		}
	}
	return nil
}

func (d *Definition) validateSeries(s *Series) error {
	if _, ok := series.ParseKind(s.Type); !ok {
		return errors.New(errors.ErrCodeInvalidSeries, "series %q: unknown type %q", s.Name, s.Type)
	}
	x, y := d.AxisIndex(s.XAxis), d.AxisIndex(s.YAxis)
	if x < 0 {
		return errors.New(errors.ErrCodeInvalidSeries, "series %q: x_axis %q not found", s.Name, s.XAxis)
	}
	if y < 0 {
		return errors.New(errors.ErrCodeInvalidSeries, "series %q: y_axis %q not found", s.Name, s.YAxis)
	}
	xo, _ := axis.ParseOrientation(d.Axes[x].Orientation)
	yo, _ := axis.ParseOrientation(d.Axes[y].Orientation)
	if xo == yo {
		return errors.New(errors.ErrCodeInvalidSeries, "series %q: x_axis and y_axis must be perpendicular", s.Name)
	}
	if len(s.Points) > 0 && len(s.Values) > 0 {
		return errors.New(errors.ErrCodeInvalidSeries, "series %q: set points or values, not both", s.Name)
	}

	if s.Width != nil {
		if err := errors.ValidateFraction(errors.ErrCodeInvalidSeries, "series "+s.Name+": width", *s.Width); err != nil {
			return err
		}
	}
	if err := errors.ValidateFraction(errors.ErrCodeInvalidSeries, "series "+s.Name+": spacing", s.Spacing); err != nil {
		return err
	}
	if s.StrokeWidth != nil {
		if err := errors.ValidateNonNegative(errors.ErrCodeInvalidSeries, "series "+s.Name+": stroke_width", *s.StrokeWidth); err != nil {
			return err
		}
	}
	if err := errors.ValidateNonNegative(errors.ErrCodeInvalidSeries, "series "+s.Name+": marker_size", s.MarkerSize); err != nil {
		return err
	}
	for i, p := range s.Points {
		if err := errors.ValidateFinite(errors.ErrCodeInvalidSeries, fmt.Sprintf("series %s: point %d x", s.Name, i), p.X); err != nil {
			return err
		}
	}

	if l := s.Labels; l != nil {
		if _, ok := datalabel.ParsePosition(l.Position); !ok {
			return errors.New(errors.ErrCodeInvalidSeries, "series %q: unknown label position %q", s.Name, l.Position)
		}
		if _, ok := datalabel.ParseAlignment(l.Alignment); !ok {
			return errors.New(errors.ErrCodeInvalidSeries, "series %q: unknown label alignment %q", s.Name, l.Alignment)
		}
		if err := errors.ValidateNonNegative(errors.ErrCodeInvalidSeries, "series "+s.Name+": label font_size", l.FontSize); err != nil {
			return err
		}
		if err := errors.ValidateNonNegative(errors.ErrCodeInvalidSeries, "series "+s.Name+": label stroke_width", l.StrokeWidth); err != nil {
			return err
		}
	}
	return nil
}
