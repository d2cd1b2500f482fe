package datalabel

import (
	"math"

	"github.com/matzehuels/chartlayout/pkg/geom"
)

const clipTolerance = 1e-9

// Label is a placed data label.
type Label struct {
	Content string
	// Anchor is the center of the label box in chart-area coordinates.
	Anchor   geom.Point
	Size     geom.Size
	Position Position // resolved mode: Outer, Inner or Center
	Series   int
	Index    int
	// Clamped reports that neither Outer nor Inner fit and the box was
	// pulled into the plot bounds.
	Clamped bool
}

// Bounds returns the label box.
func (l Label) Bounds() geom.Rect { return geom.RectFromCenter(l.Anchor, l.Size) }

// Input describes one label request.
type Input struct {
	Text   string
	Value  float64
	Size   geom.Size  // label box size
	Anchor geom.Point // segment anchor in chart-area coordinates
	Marker float64    // marker size drawn at the anchor, 0 for none
	Series int
	Index  int
}

func (in Input) empty() bool { return in.Text == "" || math.IsNaN(in.Value) }

// Placer places labels for one series.
type Placer struct {
	// Bounds is the plot area labels should stay within.
	Bounds geom.Rect
	// Inversed reports that the value axis is inversed.
	Inversed bool
	// Transposed reports that the value axis runs horizontally.
	Transposed bool
	Settings   Settings
}

// unit returns the screen direction of increasing values on a non-inversed
// value axis.
func (p Placer) unit() geom.Point {
	if p.Transposed {
		return geom.Pt(1, 0)
	}
	return geom.Pt(0, -1)
}

// sign returns +1 when larger values move along unit(), honoring the value
// sign when signed is set.
func (p Placer) sign(v float64, signed bool) float64 {
	s := 1.0
	if signed && v < 0 {
		s = -s
	}
	if p.Inversed {
		s = -s
	}
	return s
}

func (p Placer) offset(in Input) float64 {
	half := in.Size.Height / 2
	if p.Transposed {
		half = in.Size.Width / 2
	}
	return half + p.Settings.Padding + p.Settings.StrokeWidth/2 + in.Marker/2
}

func shift(pt, u geom.Point, d float64) geom.Point {
	return geom.Point{X: pt.X + u.X*d, Y: pt.Y + u.Y*d}
}

// clips reports whether a box centered at c leaves the bounds along the
// value direction.
func (p Placer) clips(c geom.Point, size geom.Size) bool {
	r := geom.RectFromCenter(c, size)
	b := p.Bounds
	if p.Transposed {
		return r.Left() < b.Left()-clipTolerance || r.Right() > b.Right()+clipTolerance
	}
	return r.Top() < b.Top()-clipTolerance || r.Bottom() > b.Bottom()+clipTolerance
}

func clampAxis(c, size, lo, hi float64) float64 {
	if size >= hi-lo {
		return (lo + hi) / 2
	}
	return geom.Clamp(c, lo+size/2, hi-size/2)
}

// clampValue pulls c into the bounds along the value direction.
func (p Placer) clampValue(c geom.Point, size geom.Size) geom.Point {
	b := p.Bounds
	if p.Transposed {
		c.X = clampAxis(c.X, size.Width, b.Left(), b.Right())
	} else {
		c.Y = clampAxis(c.Y, size.Height, b.Top(), b.Bottom())
	}
	return c
}

// clampCross pulls c into the bounds across the value direction.
func (p Placer) clampCross(c geom.Point, size geom.Size) geom.Point {
	b := p.Bounds
	if p.Transposed {
		c.Y = clampAxis(c.Y, size.Height, b.Top(), b.Bottom())
	} else {
		c.X = clampAxis(c.X, size.Width, b.Left(), b.Right())
	}
	return c
}

// resolve applies the placement mode to precomputed candidate anchors. Auto
// makes exactly one corrective attempt before clamping.
func (p Placer) resolve(in Input, mode Position, outer, inner, center geom.Point) Label {
	l := Label{
		Content: in.Text,
		Size:    in.Size,
		Series:  in.Series,
		Index:   in.Index,
	}
	switch mode {
	case Outer:
		l.Anchor, l.Position = outer, Outer
	case Inner:
		l.Anchor, l.Position = inner, Inner
	case Center:
		l.Anchor, l.Position = center, Center
	default:
		switch {
		case !p.clips(outer, in.Size):
			l.Anchor, l.Position = outer, Outer
		case !p.clips(inner, in.Size):
			l.Anchor, l.Position = inner, Inner
		default:
			l.Anchor, l.Position, l.Clamped = p.clampValue(inner, in.Size), Inner, true
		}
		l.Anchor = p.clampCross(l.Anchor, in.Size)
	}
	return l
}

// PlaceRect places the label of a bar. bar is the bar rectangle; the value
// end is chosen from the value sign and axis inversion.
func (p Placer) PlaceRect(in Input, bar geom.Rect) (Label, bool) {
	if in.empty() {
		return Label{}, false
	}
	u := p.unit()
	s := p.sign(in.Value, true)
	ext := bar.Height
	if p.Transposed {
		ext = bar.Width
	}
	center := bar.Center()
	top := shift(center, u, s*ext/2)
	base := shift(center, u, -s*ext/2)
	off := p.offset(in)

	ref, out := top, s
	switch p.Settings.Alignment {
	case AlignMiddle:
		ref = center
	case AlignBottom:
		ref, out = base, -s
	}
	outer := shift(ref, u, out*off)
	inner := shift(ref, u, -out*off)

	mode := p.Settings.Position
	if p.Settings.Alignment == AlignBottom && (mode == Outer || mode == Auto) && p.clips(outer, in.Size) {
		// A bottom label that would leave the plot sits on the base.
		l := p.resolve(in, Outer, ref, ref, ref)
		if mode == Auto {
			l.Anchor = p.clampCross(l.Anchor, in.Size)
		}
		return l, true
	}
	return p.resolve(in, mode, outer, inner, center), true
}

// PlaceContinuous places the label of a line vertex. xs and ys are the data
// values of the whole series and in.Index selects the vertex; the side is
// chosen by [Above].
func (p Placer) PlaceContinuous(in Input, xs, ys []float64) (Label, bool) {
	if in.empty() {
		return Label{}, false
	}
	u := p.unit()
	s := p.sign(in.Value, false)
	if !Above(xs, ys, in.Index) {
		s = -s
	}
	off := p.offset(in)
	outer := shift(in.Anchor, u, s*off)
	inner := shift(in.Anchor, u, -s*off)
	return p.resolve(in, p.Settings.Position, outer, inner, in.Anchor), true
}

// PlaceArea places the label of an area vertex. base is the baseline point
// below the vertex; Center puts the label halfway between the two.
func (p Placer) PlaceArea(in Input, base geom.Point) (Label, bool) {
	if in.empty() {
		return Label{}, false
	}
	u := p.unit()
	s := p.sign(in.Value, true)
	off := p.offset(in)
	outer := shift(in.Anchor, u, s*off)
	inner := shift(in.Anchor, u, -s*off)
	center := geom.Point{X: (in.Anchor.X + base.X) / 2, Y: (in.Anchor.Y + base.Y) / 2}
	return p.resolve(in, p.Settings.Position, outer, inner, center), true
}

// PlacePoint places the label of a scatter marker.
func (p Placer) PlacePoint(in Input) (Label, bool) {
	if in.empty() {
		return Label{}, false
	}
	u := p.unit()
	s := p.sign(in.Value, false)
	off := p.offset(in)
	outer := shift(in.Anchor, u, s*off)
	inner := shift(in.Anchor, u, -s*off)
	return p.resolve(in, p.Settings.Position, outer, inner, in.Anchor), true
}
