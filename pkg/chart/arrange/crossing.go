package arrange

import (
	"math"

	"github.com/matzehuels/chartlayout/pkg/chart/axis"
	"github.com/matzehuels/chartlayout/pkg/geom"
)

// crossAxis returns the perpendicular axis a is drawn against, or nil when a
// is placed at a plot edge. An axis renders at its crossing value only when
// it asks to, has a CrossesAt value, and names an existing perpendicular axis
// with a non-degenerate range.
func crossAxis(a *axis.Axis, all []*axis.Axis) *axis.Axis {
	if !a.RenderNextToCrossingValue || math.IsNaN(a.CrossesAt) || a.CrossAxis == axis.NoAxis {
		return nil
	}
	for _, c := range all {
		if c.ID != a.CrossAxis {
			continue
		}
		if c.Orientation == a.Orientation || c.Min == c.Max {
			return nil
		}
		return c
	}
	return nil
}

// ResolveCrossing positions every axis that renders next to a crossing value
// of a perpendicular axis, using the plot area computed by [Solver.Arrange].
// It returns the number of axes placed.
//
// When the crossing position cannot be computed the axis is put at its plot
// edge without reserving margin.
func ResolveCrossing(plot geom.Rect, axes []*axis.Axis) int {
	n := 0
	for _, a := range axes {
		cross := crossAxis(a, axes)
		if cross == nil {
			continue
		}
		// Along its own direction every axis spans the plot area, so the
		// cross axis maps values through the plot rect whether or not it
		// has been placed yet.
		ref := *cross
		ref.ArrangeRect = plot
		pos := a.CrossingPosition(&ref)
		w, h := a.DesiredSize.Width, a.DesiredSize.Height
		in := a.InsidePadding

		if a.IsVertical() {
			if math.IsNaN(pos) {
				pos = plot.Left()
				if a.Opposed {
					pos = plot.Right()
				}
			}
			x := pos - (w - in)
			if a.Opposed {
				x = pos - in
			}
			a.ArrangeRect = geom.Rect{X: x, Y: plot.Y, Width: w, Height: plot.Height}
		} else {
			if math.IsNaN(pos) {
				pos = plot.Bottom()
				if a.Opposed {
					pos = plot.Top()
				}
			}
			y := pos - in
			if a.Opposed {
				y = pos - (h - in)
			}
			a.ArrangeRect = geom.Rect{X: plot.X, Y: y, Width: plot.Width, Height: h}
		}
		n++
	}
	return n
}

// AtCrossing reports whether a is drawn at a crossing value rather than at a
// plot edge.
func AtCrossing(a *axis.Axis, all []*axis.Axis) bool { return crossAxis(a, all) != nil }
