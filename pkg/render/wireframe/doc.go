// Package wireframe draws a [model.Layout] as an SVG wireframe.
//
// The drawing shows the computed geometry only: the plot area, each axis's
// arranged rectangle with its line, ticks and labels, series segments and,
// optionally, the data label boxes. It is meant for inspecting a layout, not
// for presentation, so there is no theming.
//
//	doc := wireframe.Render(layout,
//	    wireframe.WithGrid(),
//	    wireframe.WithLabels(),
//	)
//
// Series are colored from a fixed palette in series order unless a segment
// carries its own fill or stroke. Use [WithPalette] to replace the palette.
//
// [model.Layout]: github.com/matzehuels/chartlayout/pkg/model.Layout
package wireframe
