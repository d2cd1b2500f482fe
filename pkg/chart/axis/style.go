package axis

import "time"

// Position places ticks or labels relative to the axis line.
type Position int

const (
	// Outside places the element away from the plot area.
	Outside Position = iota
	// Inside places the element over the plot area.
	Inside
)

var positionNames = map[string]Position{
	"":        Outside,
	"outside": Outside,
	"inside":  Inside,
}

// ParsePosition maps "outside" or "inside" to a Position.
func ParsePosition(s string) (Position, bool) {
	p, ok := positionNames[s]
	return p, ok
}

// IntersectAction decides what a horizontal axis does when its labels do not
// fit in their tick slots.
type IntersectAction int

const (
	IntersectNone IntersectAction = iota
	IntersectHide
	IntersectMultipleRows
	IntersectRotate45
	IntersectRotate90
)

var intersectNames = map[string]IntersectAction{
	"":              IntersectNone,
	"none":          IntersectNone,
	"hide":          IntersectHide,
	"multiple_rows": IntersectMultipleRows,
	"rotate45":      IntersectRotate45,
	"rotate90":      IntersectRotate90,
}

// ParseIntersectAction maps a name to an IntersectAction.
func ParseIntersectAction(s string) (IntersectAction, bool) {
	a, ok := intersectNames[s]
	return a, ok
}

// RangePadding controls how the actual range extends past the data.
type RangePadding int

const (
	// PaddingAuto rounds value axes to the interval and leaves others alone.
	PaddingAuto RangePadding = iota
	PaddingNone
	PaddingRound
	PaddingAdditional
)

var paddingNames = map[string]RangePadding{
	"":           PaddingAuto,
	"auto":       PaddingAuto,
	"none":       PaddingNone,
	"round":      PaddingRound,
	"additional": PaddingAdditional,
}

// ParseRangePadding maps a name to a RangePadding.
func ParseRangePadding(s string) (RangePadding, bool) {
	p, ok := paddingNames[s]
	return p, ok
}

// Style holds the space-relevant style of an axis. Colors and fonts other
// than size do not affect layout and are not modeled.
type Style struct {
	LabelFontSize   float64
	LabelMargin     float64
	LabelRotation   float64 // degrees
	LabelFormat     string  // fmt verb for numeric labels, time layout for datetime
	LabelPosition   Position
	HideLabels      bool
	TickLength      float64
	TickPosition    Position
	LineWidth       float64
	Title           string
	TitleFontSize   float64
	TitleMargin     float64
	IntersectAction IntersectAction
}

// DefaultStyle returns the style new axes start with.
func DefaultStyle() Style {
	return Style{
		LabelFontSize: 12,
		LabelMargin:   4,
		TickLength:    8,
		LineWidth:     1,
		TitleFontSize: 14,
		TitleMargin:   5,
	}
}

// IntervalType is the granularity of a DateTime axis.
type IntervalType int

const (
	IntervalAuto IntervalType = iota
	IntervalYears
	IntervalMonths
	IntervalDays
	IntervalHours
	IntervalMinutes
	IntervalSeconds
	IntervalMilliseconds
)

const day = 24 * time.Hour

var intervalDurations = map[IntervalType]time.Duration{
	IntervalAuto:         day,
	IntervalYears:        365 * day,
	IntervalMonths:       30 * day,
	IntervalDays:         day,
	IntervalHours:        time.Hour,
	IntervalMinutes:      time.Minute,
	IntervalSeconds:      time.Second,
	IntervalMilliseconds: time.Millisecond,
}

var intervalNames = map[string]IntervalType{
	"":             IntervalAuto,
	"auto":         IntervalAuto,
	"years":        IntervalYears,
	"months":       IntervalMonths,
	"days":         IntervalDays,
	"hours":        IntervalHours,
	"minutes":      IntervalMinutes,
	"seconds":      IntervalSeconds,
	"milliseconds": IntervalMilliseconds,
}

// ParseIntervalType maps a name to an IntervalType.
func ParseIntervalType(s string) (IntervalType, bool) {
	it, ok := intervalNames[s]
	return it, ok
}

// Millis returns the nominal length of one interval unit in milliseconds.
// Months and years use 30 and 365 days.
func (it IntervalType) Millis() float64 {
	return float64(intervalDurations[it].Milliseconds())
}

// resolveIntervalType picks a granularity for a span of ms milliseconds.
func resolveIntervalType(ms float64) IntervalType {
	for _, it := range []IntervalType{IntervalYears, IntervalMonths, IntervalDays, IntervalHours, IntervalMinutes, IntervalSeconds} {
		if ms >= 2*it.Millis() {
			return it
		}
	}
	return IntervalMilliseconds
}

var dateLayouts = map[IntervalType]string{
	IntervalYears:        "2006",
	IntervalMonths:       "Jan 2006",
	IntervalDays:         "Jan 02",
	IntervalHours:        "Jan 02 15:04",
	IntervalMinutes:      "15:04",
	IntervalSeconds:      "15:04:05",
	IntervalMilliseconds: "05.000",
}
