// Package topology renders the axis and series structure of a chart layout
// as a Graphviz diagram.
//
// # Overview
//
// Axes appear as boxes and series as ellipses, with an edge from each series
// to its x and y axes. The diagram answers which series share an axis and
// therefore which series take part in one side-by-side group.
//
// # Usage
//
// Convert a layout to DOT format, then render to SVG:
//
//	dot := topology.ToDOT(layout, topology.Options{Detailed: true})
//	svg, err := topology.RenderSVG(ctx, dot)
//
// For PDF or PNG output, pass the SVG through [render.ToPDF] or
// [render.ToPNG].
//
// # Options
//
//   - Detailed: When true, labels include axis ranges and intervals and the
//     side-by-side slot of each series.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering, so no external Graphviz installation is needed.
//
// [render.ToPDF]: github.com/matzehuels/chartlayout/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/chartlayout/pkg/render.ToPNG
package topology
