package series

import (
	"math"

	"github.com/matzehuels/chartlayout/pkg/chart/axis"
	"github.com/matzehuels/chartlayout/pkg/geom"
)

// Style is the drawing style a segment styler assigns. It does not affect
// layout.
type Style struct {
	Fill        string
	Stroke      string
	StrokeWidth float64
	Hidden      bool
}

// Segment is the geometry of one data point.
type Segment struct {
	Series ID
	Index  int
	Kind   Kind
	X, Y   float64

	// Rect is the bar for columns and the marker box for other kinds.
	Rect geom.Rect
	// Anchor is the value point: the value end of a bar or the vertex.
	Anchor geom.Point
	// Base is the baseline point below Anchor.
	Base  geom.Point
	Empty bool
	Style Style
}

// Baseline returns the value bars and areas grow from: zero clamped into
// the axis range, or the minimum of a logarithmic axis.
func Baseline(a *axis.Axis) float64 {
	if a.ValueType == axis.Logarithmic {
		return math.Min(a.Min, a.Max)
	}
	return geom.Clamp(0, a.Min, a.Max)
}

// pixel maps a data point to chart-area coordinates. When the x axis has the
// vertical role the chart is transposed.
func pixel(xa, ya *axis.Axis, x, y float64) geom.Point {
	px, py := xa.ValueToPixel(x), ya.ValueToPixel(y)
	if xa.IsVertical() {
		return geom.Point{X: py, Y: px}
	}
	return geom.Point{X: px, Y: py}
}

// Build computes segment geometry for s. start and end are the side-by-side
// range of the series relative to each x value; they only affect columns.
// Points with a NaN coordinate produce empty segments.
func Build(s *Series, xa, ya *axis.Axis, start, end float64) []Segment {
	base := Baseline(ya)
	segs := make([]Segment, len(s.Points))
	for i, p := range s.Points {
		seg := Segment{Series: s.ID, Index: i, Kind: s.Kind, X: p.X, Y: p.Y}
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			seg.Empty = true
			segs[i] = seg
			continue
		}

		if s.Kind == Column {
			mid := p.X + (start+end)/2
			a := pixel(xa, ya, p.X+start, p.Y)
			b := pixel(xa, ya, p.X+end, base)
			seg.Rect = geom.RectFromLTRB(a.X, a.Y, b.X, b.Y)
			seg.Anchor = pixel(xa, ya, mid, p.Y)
			seg.Base = pixel(xa, ya, mid, base)
		} else {
			seg.Anchor = pixel(xa, ya, p.X, p.Y)
			seg.Base = pixel(xa, ya, p.X, base)
			seg.Rect = geom.RectFromCenter(seg.Anchor, geom.Size{Width: s.MarkerSize, Height: s.MarkerSize})
		}
		if seg.Anchor.IsNaN() {
			seg.Empty = true
		}
		segs[i] = seg
	}
	return segs
}
