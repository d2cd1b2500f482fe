package datalabel

import (
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/chartlayout/pkg/geom"
)

// Position is the placement mode of a label relative to its segment.
type Position int

const (
	Auto Position = iota
	Outer
	Inner
	Center
)

var positionNames = map[Position]string{
	Auto:   "auto",
	Outer:  "outer",
	Inner:  "inner",
	Center: "center",
}

func (p Position) String() string { return positionNames[p] }

// ParsePosition maps a name to a Position. The empty name means Auto.
func ParsePosition(s string) (Position, bool) {
	if s == "" {
		return Auto, true
	}
	for p, name := range positionNames {
		if name == s {
			return p, true
		}
	}
	return Auto, false
}

// Alignment selects the reference point of a bar label: the value end (Top),
// the bar center (Middle) or the base (Bottom).
type Alignment int

const (
	AlignTop Alignment = iota
	AlignMiddle
	AlignBottom
)

var alignmentNames = map[string]Alignment{
	"":       AlignTop,
	"top":    AlignTop,
	"middle": AlignMiddle,
	"bottom": AlignBottom,
}

// ParseAlignment maps a name to an Alignment.
func ParseAlignment(s string) (Alignment, bool) {
	a, ok := alignmentNames[s]
	return a, ok
}

// Settings configures the labels of one series.
type Settings struct {
	Visible     bool
	Position    Position
	Alignment   Alignment
	Format      string  // fmt verb applied to the value, e.g. "%.1f"
	FontSize    float64
	Padding     float64 // gap between anchor and label box
	Margin      float64 // space between text and box border
	StrokeWidth float64 // box border
}

// DefaultSettings returns hidden labels with the usual spacing.
func DefaultSettings() Settings {
	return Settings{
		FontSize: 12,
		Padding:  5,
		Margin:   2,
	}
}

// Text formats a value for display. NaN formats as the empty string.
func (s Settings) Text(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	if s.Format != "" {
		return fmt.Sprintf(s.Format, v)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// BoxSize returns the label box for measured text.
func (s Settings) BoxSize(text geom.Size) geom.Size {
	return geom.Size{Width: text.Width + 2*s.Margin, Height: text.Height + 2*s.Margin}
}
