package axis

import (
	"math"

	"github.com/matzehuels/chartlayout/pkg/geom"
)

// ID identifies an axis inside a chart arena. It is the index of the axis in
// the chart's axis collection.
type ID int

// NoAxis marks an absent axis reference.
const NoAxis ID = -1

// Orientation is the layout role of an axis.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// ParseOrientation maps "horizontal" or "vertical" (also "x" and "y") to an
// Orientation.
func ParseOrientation(s string) (Orientation, bool) {
	switch s {
	case "horizontal", "x":
		return Horizontal, true
	case "vertical", "y":
		return Vertical, true
	}
	return Horizontal, false
}

// Perpendicular returns the other orientation.
func (o Orientation) Perpendicular() Orientation {
	if o == Vertical {
		return Horizontal
	}
	return Vertical
}

// ValueType selects how data values map onto the axis.
type ValueType int

const (
	Numeric ValueType = iota
	Category
	DateTime
	Logarithmic
)

var valueTypeNames = map[ValueType]string{
	Numeric:     "numeric",
	Category:    "category",
	DateTime:    "datetime",
	Logarithmic: "logarithmic",
}

func (v ValueType) String() string { return valueTypeNames[v] }

// ParseValueType maps a name ("numeric", "category", "datetime",
// "logarithmic") to a ValueType. Unknown names report false.
func ParseValueType(s string) (ValueType, bool) {
	if s == "" {
		return Numeric, true
	}
	for v, name := range valueTypeNames {
		if name == s {
			return v, true
		}
	}
	return Numeric, false
}

// Axis is the layout state of one chart axis.
//
// Minimum and Maximum are the requested range (NaN means automatic); Min and
// Max are the actual range after padding, set by [Axis.UpdateScale].
type Axis struct {
	ID          ID
	Name        string
	Orientation Orientation
	Opposed     bool
	Inversed    bool
	ValueType   ValueType

	// DateTime axes
	IntervalType IntervalType

	// Logarithmic axes
	LogBase float64

	Minimum, Maximum float64
	Interval         float64
	RangePadding     RangePadding

	// DataMin and DataMax are the extent of the data registered on the axis,
	// including any side-by-side half-width padding.
	DataMin, DataMax float64

	// Categories labels category positions 0..n-1.
	Categories []string

	Min, Max       float64
	ActualInterval float64
	Ticks          []float64
	Labels         []string
	// LabelVisible is parallel to Labels; false when the intersect action hides a label.
	LabelVisible []bool

	// CrossesAt is the perpendicular axis value the axis is drawn at when
	// RenderNextToCrossingValue is set. NaN means unset.
	CrossesAt                 float64
	CrossAxis                 ID
	RenderNextToCrossingValue bool

	Style Style

	InsidePadding float64
	DesiredSize   geom.Size
	ArrangeRect   geom.Rect

	// Series lists the IDs of series registered on this axis. The axis does
	// not own them.
	Series []int
	// Associated lists perpendicular axes whose extent gridlines should span.
	Associated []ID

	SideBySideSeriesCount int
}

// New returns an axis with automatic range and default style.
func New(id ID, name string, o Orientation, vt ValueType) *Axis {
	return &Axis{
		ID:          id,
		Name:        name,
		Orientation: o,
		ValueType:   vt,
		LogBase:     10,
		Minimum:     math.NaN(),
		Maximum:     math.NaN(),
		DataMin:     math.NaN(),
		DataMax:     math.NaN(),
		Min:         0,
		Max:         1,
		CrossesAt:   math.NaN(),
		CrossAxis:   NoAxis,
		Style:       DefaultStyle(),
	}
}

// IsVertical reports whether the axis has the vertical layout role.
func (a *Axis) IsVertical() bool { return a.Orientation == Vertical }

// Length returns the arranged extent along the axis.
func (a *Axis) Length() float64 {
	if a.IsVertical() {
		return a.ArrangeRect.Height
	}
	return a.ArrangeRect.Width
}

// Thickness returns the desired extent across the axis.
func (a *Axis) Thickness() float64 {
	if a.IsVertical() {
		return a.DesiredSize.Width
	}
	return a.DesiredSize.Height
}

// Normalize maps v into [0,1] over the actual range, honoring inversion and
// logarithmic scale. It returns NaN for a degenerate range or a value the
// scale cannot represent.
func (a *Axis) Normalize(v float64) float64 {
	lo, hi, x := a.Min, a.Max, v
	if a.ValueType == Logarithmic {
		if lo <= 0 || hi <= 0 || v <= 0 {
			return math.NaN()
		}
		lo, hi, x = a.logOf(lo), a.logOf(hi), a.logOf(v)
	}
	if hi == lo || math.IsNaN(lo) || math.IsNaN(hi) {
		return math.NaN()
	}
	n := (x - lo) / (hi - lo)
	if a.Inversed {
		n = 1 - n
	}
	return n
}

// ValueToPixel maps a data value to a chart-area coordinate: x for
// horizontal axes, y for vertical axes.
func (a *Axis) ValueToPixel(v float64) float64 {
	n := a.Normalize(v)
	r := a.ArrangeRect
	if a.IsVertical() {
		return r.Y + (1-n)*r.Height
	}
	return r.X + n*r.Width
}

// PixelToValue is the inverse of ValueToPixel.
func (a *Axis) PixelToValue(p float64) float64 {
	r := a.ArrangeRect
	var n float64
	if a.IsVertical() {
		if r.Height == 0 {
			return math.NaN()
		}
		n = 1 - (p-r.Y)/r.Height
	} else {
		if r.Width == 0 {
			return math.NaN()
		}
		n = (p - r.X) / r.Width
	}
	if a.Inversed {
		n = 1 - n
	}
	if a.ValueType == Logarithmic {
		lo, hi := a.logOf(a.Min), a.logOf(a.Max)
		return math.Pow(a.base(), lo+n*(hi-lo))
	}
	return a.Min + n*(a.Max-a.Min)
}

// Contains reports whether v lies within the actual range.
func (a *Axis) Contains(v float64) bool {
	return v >= math.Min(a.Min, a.Max) && v <= math.Max(a.Min, a.Max)
}

// CrossingPosition returns the chart-area coordinate at which a should be
// drawn when it renders next to its crossing value: the crossing value
// clamped into cross's range and mapped through cross. It returns NaN when
// cross is nil, CrossesAt is unset, or cross has a degenerate range; callers
// fall back to edge placement.
func (a *Axis) CrossingPosition(cross *Axis) float64 {
	if cross == nil || math.IsNaN(a.CrossesAt) {
		return math.NaN()
	}
	lo, hi := math.Min(cross.Min, cross.Max), math.Max(cross.Min, cross.Max)
	return cross.ValueToPixel(geom.Clamp(a.CrossesAt, lo, hi))
}

// RegisterSeries records a series ID on the axis, ignoring duplicates.
func (a *Axis) RegisterSeries(id int) {
	for _, s := range a.Series {
		if s == id {
			return
		}
	}
	a.Series = append(a.Series, id)
}

// Associate records a perpendicular axis, ignoring duplicates.
func (a *Axis) Associate(id ID) {
	for _, x := range a.Associated {
		if x == id {
			return
		}
	}
	a.Associated = append(a.Associated, id)
}

// ResetLayout clears per-pass state (registrations, measured sizes).
func (a *Axis) ResetLayout() {
	a.Series = a.Series[:0]
	a.Associated = a.Associated[:0]
	a.DataMin, a.DataMax = math.NaN(), math.NaN()
	a.InsidePadding = 0
	a.DesiredSize = geom.Size{}
	a.ArrangeRect = geom.Rect{}
	a.SideBySideSeriesCount = 0
}

// IncludeData widens the data extent to cover v. NaN and infinite values are ignored.
func (a *Axis) IncludeData(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	if math.IsNaN(a.DataMin) || v < a.DataMin {
		a.DataMin = v
	}
	if math.IsNaN(a.DataMax) || v > a.DataMax {
		a.DataMax = v
	}
}

func (a *Axis) base() float64 {
	if a.LogBase <= 1 {
		return 10
	}
	return a.LogBase
}

func (a *Axis) logOf(v float64) float64 {
	return math.Log(v) / math.Log(a.base())
}
