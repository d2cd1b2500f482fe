package chart

import (
	"github.com/matzehuels/chartlayout/pkg/chart/axis"
	"github.com/matzehuels/chartlayout/pkg/chart/datalabel"
	"github.com/matzehuels/chartlayout/pkg/chart/sbs"
	"github.com/matzehuels/chartlayout/pkg/chart/series"
	"github.com/matzehuels/chartlayout/pkg/geom"
)

// Result is the geometry of one layout pass. All rectangles are in
// chart-area coordinates with the origin at the top-left corner.
type Result struct {
	Size       geom.Size
	Margin     geom.Thickness
	PlotArea   geom.Rect
	Iterations int
	Converged  bool
	Axes       []AxisLayout
	Series     []SeriesLayout
}

// Tick is one axis tick.
type Tick struct {
	Value    float64
	Position float64 // x for horizontal axes, y for vertical axes
	Label    string
	Visible  bool
}

// AxisLayout is the arranged state of an axis.
type AxisLayout struct {
	ID            axis.ID
	Name          string
	Orientation   axis.Orientation
	Opposed       bool
	Inversed      bool
	AtCrossing    bool
	Rect          geom.Rect
	DesiredSize   geom.Size
	InsidePadding float64
	Min, Max      float64
	Interval      float64
	Ticks         []Tick
	Associated    []axis.ID
	SideBySide    int // number of side-by-side slots on the axis
}

// SeriesLayout is the geometry of a series.
type SeriesLayout struct {
	ID            series.ID
	Name          string
	Kind          series.Kind
	Visible       bool
	XAxis, YAxis  axis.ID
	SideBySide    sbs.Info
	HasSideBySide bool
	Segments      []series.Segment
	Labels        []datalabel.Label
}

// Labels returns every placed label in series order.
func (r *Result) Labels() []datalabel.Label {
	var out []datalabel.Label
	for _, s := range r.Series {
		out = append(out, s.Labels...)
	}
	return out
}

// Axis returns the layout of an axis.
func (r *Result) Axis(id axis.ID) (AxisLayout, bool) {
	for _, a := range r.Axes {
		if a.ID == id {
			return a, true
		}
	}
	return AxisLayout{}, false
}

// SeriesByID returns the layout of a series.
func (r *Result) SeriesByID(id series.ID) (SeriesLayout, bool) {
	for _, s := range r.Series {
		if s.ID == id {
			return s, true
		}
	}
	return SeriesLayout{}, false
}

func snapshotAxis(a *axis.Axis, atCrossing bool) AxisLayout {
	al := AxisLayout{
		ID:            a.ID,
		Name:          a.Name,
		Orientation:   a.Orientation,
		Opposed:       a.Opposed,
		Inversed:      a.Inversed,
		AtCrossing:    atCrossing,
		Rect:          a.ArrangeRect,
		DesiredSize:   a.DesiredSize,
		InsidePadding: a.InsidePadding,
		Min:           a.Min,
		Max:           a.Max,
		Interval:      a.ActualInterval,
		Associated:    append([]axis.ID(nil), a.Associated...),
		SideBySide:    a.SideBySideSeriesCount,
	}
	al.Ticks = make([]Tick, len(a.Ticks))
	for i, v := range a.Ticks {
		al.Ticks[i] = Tick{
			Value:    v,
			Position: a.ValueToPixel(v),
			Label:    a.Labels[i],
			Visible:  a.LabelVisible[i] && !a.Style.HideLabels,
		}
	}
	return al
}
