package topology

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/chartlayout/pkg/model"
)

// Options configures topology diagram generation.
type Options struct {
	// Detailed includes ranges, intervals and side-by-side slots in labels.
	// When false, only names and kinds are shown.
	Detailed bool
}

// ToDOT converts a layout to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Hidden series are drawn dashed and grey. Axes placed at a crossing value
// get a double outline.
func ToDOT(l model.Layout, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph chart {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=14, style=\"filled\", fillcolor=white];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	if l.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", l.Title)
	}
	buf.WriteString("\n")

	for _, a := range l.Axes {
		attrs := []string{"shape=box", fmt.Sprintf("label=%q", axisLabel(a, opts.Detailed))}
		if a.AtCrossing {
			attrs = append(attrs, "peripheries=2")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", axisNode(a.Name), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, s := range l.Series {
		attrs := []string{"shape=ellipse", fmt.Sprintf("label=%q", seriesLabel(s, opts.Detailed))}
		if s.Hidden {
			attrs = append(attrs, "style=\"filled,dashed\"", "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", seriesNode(s.Name), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, s := range l.Series {
		fmt.Fprintf(&buf, "  %q -> %q [label=\"x\"];\n", seriesNode(s.Name), axisNode(s.XAxis))
		fmt.Fprintf(&buf, "  %q -> %q [label=\"y\"];\n", seriesNode(s.Name), axisNode(s.YAxis))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func axisNode(name string) string   { return "axis:" + name }
func seriesNode(name string) string { return "series:" + name }

func axisLabel(a model.AxisLayout, detailed bool) string {
	side := a.Orientation
	if a.Opposed {
		side += ", opposed"
	}
	if !detailed {
		return a.Name + "\n" + side
	}
	parts := []string{
		a.Name,
		side,
		fmt.Sprintf("range: [%g, %g]", a.Min, a.Max),
		fmt.Sprintf("interval: %g", a.Interval),
	}
	if a.Inversed {
		parts = append(parts, "inversed")
	}
	if a.SideBySide > 0 {
		parts = append(parts, fmt.Sprintf("side-by-side slots: %d", a.SideBySide))
	}
	return strings.Join(parts, "\n")
}

func seriesLabel(s model.SeriesLayout, detailed bool) string {
	if !detailed {
		return s.Name + "\n" + s.Kind
	}
	parts := []string{s.Name, s.Kind, fmt.Sprintf("points: %d", len(s.Segments))}
	if sl := s.SideBySide; sl != nil {
		parts = append(parts, fmt.Sprintf("slot %d of %d: [%.3g, %.3g]", sl.Index, sl.Count, sl.Start, sl.End))
	}
	if n := len(s.Labels); n > 0 {
		parts = append(parts, fmt.Sprintf("labels: %d", n))
	}
	return strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// render.ToPDF or render.ToPNG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root tag with one whose viewBox
// starts at the origin and whose size matches it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
