// Package render provides output rendering for chart layouts.
//
// # Overview
//
// This package contains the rendering stage that turns a serialized
// [model.Layout] into visual outputs. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Wireframe chart drawings (in [wireframe] subpackage)
//   - Axis and series topology diagrams (in [topology] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	doc := wireframe.Render(layout, wireframe.WithLabels(), wireframe.WithGrid())
//	pdf, err := render.ToPDF(ctx, doc)
//	png, err := render.ToPNG(ctx, doc, 2.0)  // 2x scale
//
// # Topology Diagrams
//
// The [topology] subpackage draws which series are bound to which axes as a
// Graphviz diagram:
//
//	dot := topology.ToDOT(layout)
//	svg, err := topology.RenderSVG(ctx, dot)
//
// [model.Layout]: github.com/matzehuels/chartlayout/pkg/model.Layout
// [wireframe]: github.com/matzehuels/chartlayout/pkg/render/wireframe
// [topology]: github.com/matzehuels/chartlayout/pkg/render/topology
package render
