// Package geom provides the value types shared by the chart layout packages.
//
// All coordinates are in logical units (pixels in SVG output). Rectangles use a
// top-left origin with y growing downward, matching the chart area coordinate
// space: the origin is the top-left corner of the available size handed to the
// layout pass.
package geom
