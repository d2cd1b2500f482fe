package chart

import (
	"math"

	"github.com/matzehuels/chartlayout/pkg/chart/arrange"
	"github.com/matzehuels/chartlayout/pkg/chart/axis"
	"github.com/matzehuels/chartlayout/pkg/chart/datalabel"
	"github.com/matzehuels/chartlayout/pkg/chart/sbs"
	"github.com/matzehuels/chartlayout/pkg/chart/series"
	"github.com/matzehuels/chartlayout/pkg/geom"
)

// Layout runs a layout pass for the available size and returns its result.
//
// When nothing changed since the previous pass and the size is the same, the
// previous result is returned. A label-only invalidation re-places labels on
// the previous geometry. Everything else runs the full pass.
func (c *Chart) Layout(available geom.Size) *Result {
	c.applyPending()

	st := c.state
	if c.last == nil || available != c.lastSize {
		st = NeedsMeasure
	}
	if st == Clean {
		return c.last
	}

	c.inPass = true
	defer func() { c.inPass = false }()
	c.passes++

	var res *Result
	if st == NeedsLabels {
		res = c.relabel()
	} else {
		if st >= NeedsGrouping {
			c.sbs.Invalidate()
		}
		res = c.fullPass(available)
	}

	c.clearStates()
	c.last, c.lastSize = res, available
	return res
}

// bound returns the live series whose axes both exist.
func (c *Chart) bound() []*series.Series {
	var out []*series.Series
	for _, s := range c.SeriesList() {
		if c.Axis(s.XAxis) == nil || c.Axis(s.YAxis) == nil {
			c.logger.Warn("series skipped: axis missing", "series", s.Name)
			continue
		}
		out = append(out, s)
	}
	return out
}

func (c *Chart) fullPass(available geom.Size) *Result {
	axes := c.Axes()
	list := c.bound()

	// ranges
	for _, a := range axes {
		a.ResetLayout()
	}
	for _, s := range list {
		xa, ya := c.Axis(s.XAxis), c.Axis(s.YAxis)
		xa.RegisterSeries(int(s.ID))
		ya.RegisterSeries(int(s.ID))
		xa.Associate(ya.ID)
		ya.Associate(xa.ID)
	}
	infos := c.sbs.Solve(axes, list, c.sideBySide)
	for _, s := range list {
		if s.Visible {
			c.includeData(s, infos)
		}
	}

	// arrangement
	ar := c.solver.Arrange(available, axes)
	if available.IsEmpty() {
		c.logger.Debug("layout pass skipped", "available", available)
		return &Result{Size: available, Margin: ar.Margin, PlotArea: ar.PlotArea, Converged: ar.Converged}
	}
	arrange.ResolveCrossing(ar.PlotArea, axes)
	if !ar.Converged {
		c.logger.Warn("axis arrangement did not converge", "iterations", ar.Iterations)
	}
	c.logger.Debug("layout pass",
		"iterations", ar.Iterations,
		"plot", ar.PlotArea,
		"axes", len(axes),
		"series", len(list))

	res := &Result{
		Size:       available,
		Margin:     ar.Margin,
		PlotArea:   ar.PlotArea,
		Iterations: ar.Iterations,
		Converged:  ar.Converged,
	}
	for _, a := range axes {
		res.Axes = append(res.Axes, snapshotAxis(a, arrange.AtCrossing(a, axes)))
	}

	// segments and labels
	for _, s := range list {
		xa, ya := c.Axis(s.XAxis), c.Axis(s.YAxis)
		sl := SeriesLayout{
			ID:      s.ID,
			Name:    s.Name,
			Kind:    s.Kind,
			Visible: s.Visible,
			XAxis:   s.XAxis,
			YAxis:   s.YAxis,
		}
		sl.SideBySide, sl.HasSideBySide = infos[s.ID]
		if s.Visible {
			sl.Segments = series.Build(s, xa, ya, sl.SideBySide.Start, sl.SideBySide.End)
			if c.styler != nil {
				for i := range sl.Segments {
					c.styler.StyleSegment(s, &sl.Segments[i])
				}
			}
			sl.Labels = c.placeLabels(s, sl.Segments, res.PlotArea, xa, ya)
		}
		res.Series = append(res.Series, sl)
	}
	return res
}

// includeData widens axis data extents for a visible series. Side-by-side
// columns reserve their band on the x axis, and bars and areas include
// their baseline.
func (c *Chart) includeData(s *series.Series, infos map[series.ID]sbs.Info) {
	xa, ya := c.Axis(s.XAxis), c.Axis(s.YAxis)
	info, hasInfo := infos[s.ID]
	for _, p := range s.Points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			continue
		}
		if hasInfo {
			xa.IncludeData(p.X + info.Start)
			xa.IncludeData(p.X + info.End)
		} else {
			xa.IncludeData(p.X)
		}
		ya.IncludeData(p.Y)
	}
	if (s.Kind == series.Column || s.Kind == series.Area) && ya.ValueType != axis.Logarithmic && len(s.Points) > 0 {
		ya.IncludeData(0)
	}
}

// relabel re-places labels of series marked NeedsLabels on the previous
// geometry.
func (c *Chart) relabel() *Result {
	prev := c.last
	res := *prev
	res.Series = append([]SeriesLayout(nil), prev.Series...)
	for i, sl := range res.Series {
		if c.seriesState[sl.ID] < NeedsLabels {
			continue
		}
		s := c.Series(sl.ID)
		if s == nil || !s.Visible {
			continue
		}
		xa, ya := c.Axis(s.XAxis), c.Axis(s.YAxis)
		if xa == nil || ya == nil {
			continue
		}
		res.Series[i].Labels = c.placeLabels(s, sl.Segments, res.PlotArea, xa, ya)
	}
	c.logger.Debug("label pass", "series", len(res.Series))
	return &res
}

// placeLabels places the labels of one series.
func (c *Chart) placeLabels(s *series.Series, segs []series.Segment, plot geom.Rect, xa, ya *axis.Axis) []datalabel.Label {
	st := s.Labels
	if !st.Visible {
		return nil
	}
	p := datalabel.Placer{
		Bounds:     plot,
		Inversed:   ya.Inversed,
		Transposed: xa.IsVertical(),
		Settings:   st,
	}
	xs, ys := s.Xs(), s.Ys()

	var out []datalabel.Label
	for _, seg := range segs {
		if seg.Empty || seg.Style.Hidden {
			continue
		}
		text := st.Text(seg.Y)
		in := datalabel.Input{
			Text:   text,
			Value:  seg.Y,
			Size:   st.BoxSize(c.text.MeasureText(text, st.FontSize)),
			Anchor: seg.Anchor,
			Series: int(s.ID),
			Index:  seg.Index,
		}
		var (
			l  datalabel.Label
			ok bool
		)
		switch {
		case s.Kind == series.Column:
			l, ok = p.PlaceRect(in, seg.Rect)
		case s.Kind.Continuous():
			in.Marker = s.MarkerSize
			l, ok = p.PlaceContinuous(in, xs, ys)
		case s.Kind == series.Area:
			l, ok = p.PlaceArea(in, seg.Base)
		default:
			in.Marker = s.MarkerSize
			l, ok = p.PlacePoint(in)
		}
		if ok {
			out = append(out, l)
		}
	}
	return out
}
