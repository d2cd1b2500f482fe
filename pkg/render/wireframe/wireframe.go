package wireframe

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/chartlayout/pkg/fonts"
	"github.com/matzehuels/chartlayout/pkg/model"
)

const (
	tickLength    = 5.0
	tickLabelGap  = 3.0
	tickFontSize  = 11.0
	labelFontSize = 10.0
	titleFontSize = 14.0
	markerRadius  = 3.0
)

// DefaultPalette is the series color cycle.
var DefaultPalette = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f",
	"#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac",
}

// Option configures wireframe rendering.
type Option func(*renderer)

type renderer struct {
	labels  bool
	grid    bool
	title   bool
	bounds  bool
	palette []string
}

// WithLabels draws data label boxes and their text.
func WithLabels() Option { return func(r *renderer) { r.labels = true } }

// WithGrid draws gridlines across the plot area at every tick.
func WithGrid() Option { return func(r *renderer) { r.grid = true } }

// WithTitle draws the layout title centered in the top margin.
func WithTitle() Option { return func(r *renderer) { r.title = true } }

// WithAxisBounds outlines each axis's arranged rectangle.
func WithAxisBounds() Option { return func(r *renderer) { r.bounds = true } }

// WithPalette replaces the series color cycle. An empty palette is ignored.
func WithPalette(colors ...string) Option {
	return func(r *renderer) {
		if len(colors) > 0 {
			r.palette = colors
		}
	}
}

// Render draws l as an SVG document.
func Render(l model.Layout, opts ...Option) []byte {
	r := renderer{palette: DefaultPalette}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" font-family="%s">`+"\n",
		l.Width, l.Height, l.Width, l.Height, EscapeXML(fonts.FallbackFontFamily))
	fmt.Fprintf(&buf, `  <rect class="background" width="%.2f" height="%.2f" fill="white"/>`+"\n", l.Width, l.Height)

	if r.title && l.Title != "" {
		fmt.Fprintf(&buf, `  <text class="title" x="%.2f" y="%.2f" font-size="%.0f" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
			l.Width/2, math.Max(l.Margin.Top/2, titleFontSize/2), titleFontSize, EscapeXML(l.Title))
	}

	p := l.PlotArea
	if r.grid {
		renderGrid(&buf, l)
	}
	fmt.Fprintf(&buf, `  <rect class="plot-area" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="#cccccc" stroke-dasharray="4 2"/>`+"\n",
		p.X, p.Y, p.Width, p.Height)

	for _, a := range l.Axes {
		r.renderAxis(&buf, a)
	}
	for i, s := range l.Series {
		if s.Hidden {
			continue
		}
		r.renderSeries(&buf, l, s, r.palette[i%len(r.palette)])
	}
	if r.labels {
		for _, s := range l.Series {
			if s.Hidden {
				continue
			}
			renderLabels(&buf, s)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderGrid(buf *bytes.Buffer, l model.Layout) {
	p := l.PlotArea
	buf.WriteString(`  <g class="grid" stroke="#eeeeee" stroke-width="1">` + "\n")
	for _, a := range l.Axes {
		for _, t := range a.Ticks {
			if vertical(a) {
				fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n", p.X, t.Position, p.Right(), t.Position)
			} else {
				fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n", t.Position, p.Y, t.Position, p.Bottom())
			}
		}
	}
	buf.WriteString("  </g>\n")
}

// AxisLine returns the coordinate of the axis line: x for vertical axes and
// y for horizontal ones. The line sits on the plot-facing edge of the axis
// rectangle, moved inward by the inside padding.
func AxisLine(a model.AxisLayout) float64 {
	rc, in := a.Rect, a.InsidePadding
	switch {
	case vertical(a) && a.Opposed:
		return rc.X + in
	case vertical(a):
		return rc.Right() - in
	case a.Opposed:
		return rc.Bottom() - in
	default:
		return rc.Y + in
	}
}

// outward is the direction pointing away from the plot area across the axis.
func outward(a model.AxisLayout) float64 {
	if vertical(a) == a.Opposed {
		return 1
	}
	return -1
}

func (r *renderer) renderAxis(buf *bytes.Buffer, a model.AxisLayout) {
	fmt.Fprintf(buf, `  <g class="axis" id="axis-%s">`+"\n", EscapeXML(a.Name))
	rc := a.Rect
	if r.bounds {
		fmt.Fprintf(buf, `    <rect class="axis-bounds" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="#dddddd" stroke-dasharray="2 2"/>`+"\n",
			rc.X, rc.Y, rc.Width, rc.Height)
	}

	line, dir := AxisLine(a), outward(a)
	if vertical(a) {
		fmt.Fprintf(buf, `    <line class="axis-line" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="black"/>`+"\n", line, rc.Y, line, rc.Bottom())
	} else {
		fmt.Fprintf(buf, `    <line class="axis-line" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="black"/>`+"\n", rc.X, line, rc.Right(), line)
	}

	for _, t := range a.Ticks {
		end := line + dir*tickLength
		at := line + dir*(tickLength+tickLabelGap)
		if vertical(a) {
			fmt.Fprintf(buf, `    <line class="tick" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="black"/>`+"\n", line, t.Position, end, t.Position)
		} else {
			fmt.Fprintf(buf, `    <line class="tick" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="black"/>`+"\n", t.Position, line, t.Position, end)
		}
		if t.Hidden || t.Label == "" {
			continue
		}
		if vertical(a) {
			anchor := "end"
			if dir > 0 {
				anchor = "start"
			}
			fmt.Fprintf(buf, `    <text class="tick-label" x="%.2f" y="%.2f" font-size="%.0f" text-anchor="%s" dominant-baseline="middle">%s</text>`+"\n",
				at, t.Position, tickFontSize, anchor, EscapeXML(t.Label))
		} else {
			baseline := "hanging"
			if dir < 0 {
				baseline = "auto"
			}
			fmt.Fprintf(buf, `    <text class="tick-label" x="%.2f" y="%.2f" font-size="%.0f" text-anchor="middle" dominant-baseline="%s">%s</text>`+"\n",
				t.Position, at, tickFontSize, baseline, EscapeXML(t.Label))
		}
	}
	buf.WriteString("  </g>\n")
}

func (r *renderer) renderSeries(buf *bytes.Buffer, l model.Layout, s model.SeriesLayout, color string) {
	fmt.Fprintf(buf, `  <g class="series series-%s" id="series-%s">`+"\n", s.Kind, EscapeXML(s.Name))
	switch s.Kind {
	case "column":
		for _, seg := range s.Segments {
			if seg.Empty || seg.Hidden {
				continue
			}
			rc := seg.Rect
			fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" fill-opacity="0.6" stroke="%s"/>`+"\n",
				rc.X, rc.Y, rc.Width, rc.Height, pick(seg.Fill, color), pick(seg.Stroke, color))
		}
	case "scatter":
		for _, seg := range s.Segments {
			if seg.Empty || seg.Hidden {
				continue
			}
			rad := math.Max(seg.Rect.Width/2, markerRadius)
			fmt.Fprintf(buf, `    <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n", seg.Anchor.X, seg.Anchor.Y, rad, pick(seg.Fill, color))
		}
	case "area":
		for _, run := range runs(s.Segments) {
			pts := make([]model.Pos, 0, 2*len(run))
			for _, seg := range run {
				pts = append(pts, seg.Anchor)
			}
			for i := len(run) - 1; i >= 0; i-- {
				pts = append(pts, run[i].Base)
			}
			fmt.Fprintf(buf, `    <polygon points="%s" fill="%s" fill-opacity="0.4" stroke="%s"/>`+"\n", points(pts), color, color)
		}
	default:
		step := s.Kind == "step_line"
		transposed := false
		if xa, ok := l.Axis(s.XAxis); ok {
			transposed = vertical(xa)
		}
		for _, run := range runs(s.Segments) {
			pts := make([]model.Pos, 0, 2*len(run))
			for i, seg := range run {
				if step && i > 0 {
					prev := run[i-1].Anchor
					if transposed {
						pts = append(pts, model.Pos{X: seg.Anchor.X, Y: prev.Y})
					} else {
						pts = append(pts, model.Pos{X: prev.X, Y: seg.Anchor.Y})
					}
				}
				pts = append(pts, seg.Anchor)
			}
			fmt.Fprintf(buf, `    <polyline points="%s" fill="none" stroke="%s" stroke-width="2"/>`+"\n", points(pts), color)
		}
	}
	buf.WriteString("  </g>\n")
}

func renderLabels(buf *bytes.Buffer, s model.SeriesLayout) {
	if len(s.Labels) == 0 {
		return
	}
	fmt.Fprintf(buf, `  <g class="data-labels" id="labels-%s">`+"\n", EscapeXML(s.Name))
	for _, lb := range s.Labels {
		b := lb.Bounds()
		stroke := "#888888"
		if lb.Clamped {
			stroke = "#e15759"
		}
		fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="white" fill-opacity="0.8" stroke="%s" stroke-dasharray="2 1"/>`+"\n",
			b.X, b.Y, b.Width, b.Height, stroke)
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-size="%.0f" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
			lb.X, lb.Y, labelFontSize, EscapeXML(lb.Content))
	}
	buf.WriteString("  </g>\n")
}

// runs splits segments into maximal stretches of drawable points.
func runs(segs []model.Segment) [][]model.Segment {
	var out [][]model.Segment
	var cur []model.Segment
	for _, seg := range segs {
		if seg.Empty {
			if len(cur) > 0 {
				out = append(out, cur)
			}
			cur = nil
			continue
		}
		cur = append(cur, seg)
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

func points(ps []model.Pos) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}

func vertical(a model.AxisLayout) bool { return a.Orientation == "vertical" }

func pick(v, def string) string {
	if v != "" {
		return EscapeXML(v)
	}
	return def
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
