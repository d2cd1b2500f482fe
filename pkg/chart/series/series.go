// Package series describes chart series and builds their segment geometry.
package series

import (
	"math"

	"github.com/matzehuels/chartlayout/pkg/chart/axis"
	"github.com/matzehuels/chartlayout/pkg/chart/datalabel"
)

// ID identifies a series inside a chart arena.
type ID int

// Kind is the series type.
type Kind int

const (
	Column Kind = iota
	Line
	Spline
	StepLine
	Area
	Scatter
)

var kindNames = map[Kind]string{
	Column:   "column",
	Line:     "line",
	Spline:   "spline",
	StepLine: "step_line",
	Area:     "area",
	Scatter:  "scatter",
}

func (k Kind) String() string { return kindNames[k] }

// ParseKind maps a name to a Kind. "bar" is accepted as an alias of column.
func ParseKind(s string) (Kind, bool) {
	if s == "bar" {
		return Column, true
	}
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return Column, false
}

// SideBySide reports whether series of this kind share category slots.
func (k Kind) SideBySide() bool { return k == Column }

// Continuous reports whether the kind draws a connected line.
func (k Kind) Continuous() bool { return k == Line || k == Spline || k == StepLine }

// DefaultWidth is the fraction of a category slot a column occupies.
const DefaultWidth = 0.8

// Point is one data point. Y is NaN for an empty point.
type Point struct {
	X, Y float64
}

// Series is a data series bound to one horizontal-data axis (XAxis) and one
// value axis (YAxis).
type Series struct {
	ID      ID
	Name    string
	Kind    Kind
	XAxis   axis.ID
	YAxis   axis.ID
	Visible bool

	// Width and Spacing are fractions in [0,1] of the side-by-side slot.
	Width   float64
	Spacing float64
	// Group names a stacking group; series with the same non-empty group
	// share one side-by-side slot.
	Group string

	StrokeWidth float64
	MarkerSize  float64

	Points []Point
	Labels datalabel.Settings
}

// New returns a visible series with default width and hidden labels.
func New(id ID, name string, k Kind, x, y axis.ID) *Series {
	return &Series{
		ID:          id,
		Name:        name,
		Kind:        k,
		XAxis:       x,
		YAxis:       y,
		Visible:     true,
		Width:       DefaultWidth,
		StrokeWidth: 1,
		Labels:      datalabel.DefaultSettings(),
	}
}

// Xs returns the x values of the points.
func (s *Series) Xs() []float64 {
	xs := make([]float64, len(s.Points))
	for i, p := range s.Points {
		xs[i] = p.X
	}
	return xs
}

// Ys returns the y values of the points.
func (s *Series) Ys() []float64 {
	ys := make([]float64, len(s.Points))
	for i, p := range s.Points {
		ys[i] = p.Y
	}
	return ys
}

// ClampedWidth returns Width limited to [0,1]; NaN counts as the default.
func (s *Series) ClampedWidth() float64 { return clampFraction(s.Width, DefaultWidth) }

// ClampedSpacing returns Spacing limited to [0,1]; NaN counts as zero.
func (s *Series) ClampedSpacing() float64 { return clampFraction(s.Spacing, 0) }

func clampFraction(v, def float64) float64 {
	if math.IsNaN(v) {
		return def
	}
	return math.Max(0, math.Min(1, v))
}
