package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/matzehuels/chartlayout/pkg/chart"
	"github.com/matzehuels/chartlayout/pkg/chart/series"
	"github.com/matzehuels/chartlayout/pkg/geom"
)

// =============================================================================
// Layout - Serialized Layout Result
// =============================================================================

// Layout is the serialization format of a layout pass, used for JSON files,
// API responses and caching. All coordinates are in chart-area pixels with
// the origin at the top-left corner.
//
// Non-finite values never appear: empty points carry Empty and zero
// geometry.
type Layout struct {
	RunID string `json:"run_id,omitempty" bson:"run_id,omitempty"`
	Title string `json:"title,omitempty" bson:"title,omitempty"`

	Width      float64   `json:"width" bson:"width"`
	Height     float64   `json:"height" bson:"height"`
	Margin     Thickness `json:"margin" bson:"margin"`
	PlotArea   Rect      `json:"plot_area" bson:"plot_area"`
	Iterations int       `json:"iterations" bson:"iterations"`
	Converged  bool      `json:"converged" bson:"converged"`

	Axes   []AxisLayout   `json:"axes,omitempty" bson:"axes,omitempty"`
	Series []SeriesLayout `json:"series,omitempty" bson:"series,omitempty"`
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Thickness holds per-edge extents.
type Thickness struct {
	Left   float64 `json:"left" bson:"left"`
	Top    float64 `json:"top" bson:"top"`
	Right  float64 `json:"right" bson:"right"`
	Bottom float64 `json:"bottom" bson:"bottom"`
}

// Pos is a position in chart-area pixels.
type Pos struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// AxisLayout is the arranged state of one axis.
type AxisLayout struct {
	ID            int     `json:"id" bson:"id"`
	Name          string  `json:"name" bson:"name"`
	Orientation   string  `json:"orientation" bson:"orientation"`
	Opposed       bool    `json:"opposed,omitempty" bson:"opposed,omitempty"`
	Inversed      bool    `json:"inversed,omitempty" bson:"inversed,omitempty"`
	AtCrossing    bool    `json:"at_crossing,omitempty" bson:"at_crossing,omitempty"`
	Rect          Rect    `json:"rect" bson:"rect"`
	DesiredWidth  float64 `json:"desired_width" bson:"desired_width"`
	DesiredHeight float64 `json:"desired_height" bson:"desired_height"`
	InsidePadding float64 `json:"inside_padding,omitempty" bson:"inside_padding,omitempty"`
	Min           float64 `json:"min" bson:"min"`
	Max           float64 `json:"max" bson:"max"`
	Interval      float64 `json:"interval" bson:"interval"`
	Ticks         []Tick  `json:"ticks,omitempty" bson:"ticks,omitempty"`
	SideBySide    int     `json:"side_by_side,omitempty" bson:"side_by_side,omitempty"`
}

// Tick is one axis tick.
type Tick struct {
	Value    float64 `json:"value" bson:"value"`
	Position float64 `json:"position" bson:"position"`
	Label    string  `json:"label,omitempty" bson:"label,omitempty"`
	Hidden   bool    `json:"hidden,omitempty" bson:"hidden,omitempty"`
}

// SeriesLayout is the geometry of one series.
type SeriesLayout struct {
	ID         int         `json:"id" bson:"id"`
	Name       string      `json:"name" bson:"name"`
	Kind       string      `json:"kind" bson:"kind"`
	Hidden     bool        `json:"hidden,omitempty" bson:"hidden,omitempty"`
	XAxis      string      `json:"x_axis" bson:"x_axis"`
	YAxis      string      `json:"y_axis" bson:"y_axis"`
	SideBySide *Slot       `json:"side_by_side,omitempty" bson:"side_by_side,omitempty"`
	Segments   []Segment   `json:"segments,omitempty" bson:"segments,omitempty"`
	Labels     []DataLabel `json:"labels,omitempty" bson:"labels,omitempty"`
}

// Slot is the side-by-side range of a series, in x-axis units relative to
// each x value.
type Slot struct {
	Start float64 `json:"start" bson:"start"`
	End   float64 `json:"end" bson:"end"`
	Index int     `json:"index" bson:"index"`
	Count int     `json:"count" bson:"count"`
}

// Segment is the geometry of one data point.
type Segment struct {
	Index  int     `json:"index" bson:"index"`
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Empty  bool    `json:"empty,omitempty" bson:"empty,omitempty"`
	Rect   Rect    `json:"rect" bson:"rect"`
	Anchor Pos     `json:"anchor" bson:"anchor"`
	Base   Pos     `json:"base" bson:"base"`
	Fill   string  `json:"fill,omitempty" bson:"fill,omitempty"`
	Stroke string  `json:"stroke,omitempty" bson:"stroke,omitempty"`
	Hidden bool    `json:"hidden,omitempty" bson:"hidden,omitempty"`
}

// DataLabel is a placed data label. X and Y are the center of its box.
type DataLabel struct {
	Index    int     `json:"index" bson:"index"`
	Content  string  `json:"content" bson:"content"`
	X        float64 `json:"x" bson:"x"`
	Y        float64 `json:"y" bson:"y"`
	Width    float64 `json:"width" bson:"width"`
	Height   float64 `json:"height" bson:"height"`
	Position string  `json:"position" bson:"position"`
	Clamped  bool    `json:"clamped,omitempty" bson:"clamped,omitempty"`
}

// Bounds returns the label box.
func (l DataLabel) Bounds() Rect {
	return Rect{X: l.X - l.Width/2, Y: l.Y - l.Height/2, Width: l.Width, Height: l.Height}
}

// Right returns X + Width.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns Y + Height.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Axis returns the layout of the named axis.
func (l *Layout) Axis(name string) (AxisLayout, bool) {
	for _, a := range l.Axes {
		if a.Name == name {
			return a, true
		}
	}
	return AxisLayout{}, false
}

// FindSeries returns the layout of the named series.
func (l *Layout) FindSeries(name string) (SeriesLayout, bool) {
	for _, s := range l.Series {
		if s.Name == name {
			return s, true
		}
	}
	return SeriesLayout{}, false
}

// LabelCount returns the number of placed data labels.
func (l *Layout) LabelCount() int {
	n := 0
	for _, s := range l.Series {
		n += len(s.Labels)
	}
	return n
}

// =============================================================================
// Result ↔ Layout Conversion
// =============================================================================

// FromResult converts a layout pass result to its serialization format.
func FromResult(title string, r *chart.Result) Layout {
	out := Layout{
		Title:      title,
		Width:      finite(r.Size.Width),
		Height:     finite(r.Size.Height),
		Margin:     thicknessOf(r.Margin),
		PlotArea:   rectOf(r.PlotArea),
		Iterations: r.Iterations,
		Converged:  r.Converged,
	}

	names := make(map[int]string, len(r.Axes))
	for _, a := range r.Axes {
		names[int(a.ID)] = a.Name
		al := AxisLayout{
			ID:            int(a.ID),
			Name:          a.Name,
			Orientation:   a.Orientation.String(),
			Opposed:       a.Opposed,
			Inversed:      a.Inversed,
			AtCrossing:    a.AtCrossing,
			Rect:          rectOf(a.Rect),
			DesiredWidth:  finite(a.DesiredSize.Width),
			DesiredHeight: finite(a.DesiredSize.Height),
			InsidePadding: finite(a.InsidePadding),
			Min:           finite(a.Min),
			Max:           finite(a.Max),
			Interval:      finite(a.Interval),
			SideBySide:    a.SideBySide,
		}
		for _, t := range a.Ticks {
			al.Ticks = append(al.Ticks, Tick{
				Value:    finite(t.Value),
				Position: finite(t.Position),
				Label:    t.Label,
				Hidden:   !t.Visible,
			})
		}
		out.Axes = append(out.Axes, al)
	}

	for _, s := range r.Series {
		sl := SeriesLayout{
			ID:     int(s.ID),
			Name:   s.Name,
			Kind:   s.Kind.String(),
			Hidden: !s.Visible,
			XAxis:  names[int(s.XAxis)],
			YAxis:  names[int(s.YAxis)],
		}
		if s.HasSideBySide {
			sl.SideBySide = &Slot{
				Start: finite(s.SideBySide.Start),
				End:   finite(s.SideBySide.End),
				Index: s.SideBySide.Slot,
				Count: s.SideBySide.Count,
			}
		}
		for _, seg := range s.Segments {
			sl.Segments = append(sl.Segments, segmentOf(seg))
		}
		for _, lb := range s.Labels {
			sl.Labels = append(sl.Labels, DataLabel{
				Index:    lb.Index,
				Content:  lb.Content,
				X:        finite(lb.Anchor.X),
				Y:        finite(lb.Anchor.Y),
				Width:    finite(lb.Size.Width),
				Height:   finite(lb.Size.Height),
				Position: lb.Position.String(),
				Clamped:  lb.Clamped,
			})
		}
		out.Series = append(out.Series, sl)
	}
	return out
}

func segmentOf(seg series.Segment) Segment {
	out := Segment{
		Index:  seg.Index,
		X:      finite(seg.X),
		Y:      finite(seg.Y),
		Empty:  seg.Empty,
		Fill:   seg.Style.Fill,
		Stroke: seg.Style.Stroke,
		Hidden: seg.Style.Hidden,
	}
	if seg.Empty {
		return out
	}
	out.Rect = rectOf(seg.Rect)
	out.Anchor = Pos{X: finite(seg.Anchor.X), Y: finite(seg.Anchor.Y)}
	out.Base = Pos{X: finite(seg.Base.X), Y: finite(seg.Base.Y)}
	return out
}

func rectOf(r geom.Rect) Rect {
	return Rect{X: finite(r.X), Y: finite(r.Y), Width: finite(r.Width), Height: finite(r.Height)}
}

func thicknessOf(t geom.Thickness) Thickness {
	return Thickness{Left: finite(t.Left), Top: finite(t.Top), Right: finite(t.Right), Bottom: finite(t.Bottom)}
}

// finite maps NaN and infinities to zero so layouts always encode.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.Width <= 0 || l.Height <= 0 {
		return Layout{}, fmt.Errorf("layout must have a positive size")
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
