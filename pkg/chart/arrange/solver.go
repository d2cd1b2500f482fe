package arrange

import (
	"math"

	"github.com/matzehuels/chartlayout/pkg/chart/axis"
	"github.com/matzehuels/chartlayout/pkg/geom"
)

const (
	// DefaultMaxIterations caps the measure/arrange loop.
	DefaultMaxIterations = 10
	// DefaultEpsilon is the plot extent change, in pixels, below which the
	// loop is considered converged.
	DefaultEpsilon = 0.5
)

// Measurer computes the desired size of an axis for an available size.
// [axis.SizeCalculator] is the production implementation.
type Measurer interface {
	Measure(a *axis.Axis, available geom.Size) geom.Size
}

// MeasureFunc adapts a function to the Measurer interface.
type MeasureFunc func(a *axis.Axis, available geom.Size) geom.Size

// Measure calls f(a, available).
func (f MeasureFunc) Measure(a *axis.Axis, available geom.Size) geom.Size {
	return f(a, available)
}

// Solver runs the iterative axis arrangement.
type Solver struct {
	Measurer      Measurer
	MaxIterations int
	Epsilon       float64
}

// NewSolver returns a solver with the default iteration cap and epsilon.
func NewSolver(m Measurer) *Solver {
	return &Solver{Measurer: m, MaxIterations: DefaultMaxIterations, Epsilon: DefaultEpsilon}
}

// Result is the outcome of an arrangement.
type Result struct {
	Margin     geom.Thickness
	PlotArea   geom.Rect
	Iterations int
	// Converged is false when the iteration cap was hit; the margins of the
	// last pass are kept.
	Converged bool
}

// Arrange measures axes against the available size, computes plot margins,
// and sets DesiredSize and ArrangeRect on every edge-placed axis. Axes are
// given in registration order; their Orientation selects the layout role.
//
// A zero or negative available size yields a zero Result without measuring.
// With no axes the plot area is the whole available rect.
func (s *Solver) Arrange(available geom.Size, axes []*axis.Axis) Result {
	if available.IsEmpty() {
		return Result{Converged: true}
	}
	full := geom.Rect{Width: available.Width, Height: available.Height}
	if len(axes) == 0 {
		return Result{PlotArea: full, Converged: true}
	}

	maxIter := s.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}
	eps := s.Epsilon
	if !(eps > 0) {
		eps = DefaultEpsilon
	}

	var vertical, horizontal []*axis.Axis
	for _, a := range axes {
		if a.IsVertical() {
			vertical = append(vertical, a)
		} else {
			horizontal = append(horizontal, a)
		}
	}

	var (
		res          Result
		m            geom.Thickness
		plotW        = available.Width
		plotH        = available.Height
		measuredHorz bool
	)
	for it := 1; it <= maxIter; it++ {
		res.Iterations = it

		m.Left, m.Right = s.measureSide(vertical, axes, geom.Size{Width: available.Width, Height: plotH})
		candW := available.Width - m.Left - m.Right

		if !measuredHorz || math.Abs(candW-plotW) > eps {
			m.Bottom, m.Top = s.measureSide(horizontal, axes, geom.Size{Width: candW, Height: available.Height})
			measuredHorz = true
		}
		plotW = candW

		candH := available.Height - m.Top - m.Bottom
		if math.Abs(candH-plotH) <= eps {
			plotH = candH
			res.Converged = true
			break
		}
		plotH = candH
	}

	res.Margin = m
	res.PlotArea = geom.Rect{
		X:      m.Left,
		Y:      m.Top,
		Width:  math.Max(0, available.Width-m.Left-m.Right),
		Height: math.Max(0, available.Height-m.Top-m.Bottom),
	}
	stack(res.PlotArea, vertical, horizontal, axes)
	return res
}

// measureSide measures axes of one orientation and returns the margin they
// need on the near side (left or bottom) and the far side (right or top).
func (s *Solver) measureSide(list, all []*axis.Axis, available geom.Size) (near, far float64) {
	firstNear, firstFar := true, true
	for _, a := range list {
		a.DesiredSize = s.Measurer.Measure(a, available)
		if crossAxis(a, all) != nil {
			continue
		}
		t := a.Thickness()
		if a.Opposed {
			if firstFar {
				t = math.Max(0, t-a.InsidePadding)
				firstFar = false
			}
			far += t
		} else {
			if firstNear {
				t = math.Max(0, t-a.InsidePadding)
				firstNear = false
			}
			near += t
		}
	}
	return near, far
}

// stack assigns arrange rects outward from each plot edge.
func stack(plot geom.Rect, vertical, horizontal, all []*axis.Axis) {
	var left, right, bottom, top []*axis.Axis
	for _, a := range vertical {
		if crossAxis(a, all) != nil {
			continue
		}
		if a.Opposed {
			right = append(right, a)
		} else {
			left = append(left, a)
		}
	}
	for _, a := range horizontal {
		if crossAxis(a, all) != nil {
			continue
		}
		if a.Opposed {
			top = append(top, a)
		} else {
			bottom = append(bottom, a)
		}
	}

	if len(left) > 0 {
		cursor := plot.Left() + left[0].InsidePadding
		for _, a := range left {
			w := a.DesiredSize.Width
			cursor -= w
			a.ArrangeRect = geom.Rect{X: cursor, Y: plot.Y, Width: w, Height: plot.Height}
		}
	}
	if len(right) > 0 {
		cursor := plot.Right() - right[0].InsidePadding
		for _, a := range right {
			w := a.DesiredSize.Width
			a.ArrangeRect = geom.Rect{X: cursor, Y: plot.Y, Width: w, Height: plot.Height}
			cursor += w
		}
	}
	if len(bottom) > 0 {
		cursor := plot.Bottom() - bottom[0].InsidePadding
		for _, a := range bottom {
			h := a.DesiredSize.Height
			a.ArrangeRect = geom.Rect{X: plot.X, Y: cursor, Width: plot.Width, Height: h}
			cursor += h
		}
	}
	if len(top) > 0 {
		cursor := plot.Top() + top[0].InsidePadding
		for _, a := range top {
			h := a.DesiredSize.Height
			cursor -= h
			a.ArrangeRect = geom.Rect{X: plot.X, Y: cursor, Width: plot.Width, Height: h}
		}
	}
}
