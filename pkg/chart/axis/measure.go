package axis

import (
	"math"

	"github.com/matzehuels/chartlayout/pkg/geom"
)

// TextMeasurer measures a single line of text at a font size.
type TextMeasurer interface {
	MeasureText(text string, fontSize float64) geom.Size
}

// SizeCalculator measures the desired size of an axis.
type SizeCalculator struct {
	Text TextMeasurer
}

// Measure updates the axis scale for the available length and returns its
// desired size. The extent along the axis is the available length; the extent
// across it covers the line, ticks, labels and title. The part of that extent
// drawn over the plot area is stored in InsidePadding.
//
// Measure sets DesiredSize; it never touches ArrangeRect.
func (c SizeCalculator) Measure(a *Axis, available geom.Size) geom.Size {
	length := available.Width
	if a.IsVertical() {
		length = available.Height
	}
	length = math.Max(0, length)
	a.UpdateScale(length)

	st := a.Style
	across, inside := st.LineWidth, 0.0

	if st.TickPosition == Inside {
		inside += st.TickLength
	} else {
		across += st.TickLength
	}

	if labels := c.labelExtent(a, length); labels > 0 {
		if st.LabelPosition == Inside {
			inside += labels + st.LabelMargin
		} else {
			across += labels + st.LabelMargin
		}
	}

	if st.Title != "" && c.Text != nil {
		across += c.Text.MeasureText(st.Title, st.TitleFontSize).Height + st.TitleMargin
	}

	a.InsidePadding = inside
	thickness := across + inside
	if a.IsVertical() {
		a.DesiredSize = geom.Size{Width: thickness, Height: length}
	} else {
		a.DesiredSize = geom.Size{Width: length, Height: thickness}
	}
	return a.DesiredSize
}

// labelExtent returns the space labels need across the axis, applying the
// intersect action to horizontal axes whose labels collide.
func (c SizeCalculator) labelExtent(a *Axis, length float64) float64 {
	st := a.Style
	if st.HideLabels || len(a.Labels) == 0 || c.Text == nil {
		return 0
	}

	var maxW, maxH float64
	sizes := make([]geom.Size, len(a.Labels))
	for i, l := range a.Labels {
		sizes[i] = c.Text.MeasureText(l, st.LabelFontSize)
		maxW = math.Max(maxW, sizes[i].Width)
		maxH = math.Max(maxH, sizes[i].Height)
	}

	if st.LabelRotation != 0 {
		var ext float64
		for _, s := range sizes {
			r := RotatedBounds(s, st.LabelRotation)
			if a.IsVertical() {
				ext = math.Max(ext, r.Width)
			} else {
				ext = math.Max(ext, r.Height)
			}
		}
		return ext
	}

	if a.IsVertical() {
		return maxW
	}

	slot := length / float64(len(a.Labels))
	if maxW <= slot {
		return maxH
	}

	switch st.IntersectAction {
	case IntersectHide:
		step := int(math.Ceil(maxW / math.Max(slot, 1e-9)))
		for i := range a.LabelVisible {
			a.LabelVisible[i] = i%step == 0
		}
		return maxH
	case IntersectMultipleRows:
		return 2 * maxH
	case IntersectRotate45:
		var ext float64
		for _, s := range sizes {
			ext = math.Max(ext, RotatedBounds(s, 45).Height)
		}
		return ext
	case IntersectRotate90:
		return maxW
	}
	return maxH
}

// RotatedBounds returns the axis-aligned bounds of a box of size s rotated by
// deg degrees.
func RotatedBounds(s geom.Size, deg float64) geom.Size {
	rad := deg * math.Pi / 180
	sin, cos := math.Abs(math.Sin(rad)), math.Abs(math.Cos(rad))
	return geom.Size{
		Width:  s.Width*cos + s.Height*sin,
		Height: s.Width*sin + s.Height*cos,
	}
}
