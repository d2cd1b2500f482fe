package sbs

import (
	"math"
	"sort"
	"testing"
	"time"

	"github.com/matzehuels/chartlayout/pkg/chart/axis"
	"github.com/matzehuels/chartlayout/pkg/chart/series"
)

const tol = 1e-12

func near(a, b float64) bool { return math.Abs(a-b) <= tol }

func columns(x *axis.Axis, widths ...float64) []*series.Series {
	list := make([]*series.Series, len(widths))
	for i, w := range widths {
		s := series.New(series.ID(i), "s", series.Column, x.ID, 1)
		s.Width = w
		s.Points = []series.Point{{X: 0, Y: 1}, {X: 1, Y: 2}}
		list[i] = s
	}
	return list
}

func TestTwoSeriesSplitCategory(t *testing.T) {
	x := axis.New(0, "x", axis.Horizontal, axis.Category)
	list := columns(x, 0.8, 0.8)

	var s Solver
	got := s.Solve([]*axis.Axis{x}, list, true)

	want := []Info{
		{Start: -0.4, End: 0, Slot: 0, Count: 2},
		{Start: 0, End: 0.4, Slot: 1, Count: 2},
	}
	for i, w := range want {
		g := got[series.ID(i)]
		if !near(g.Start, w.Start) || !near(g.End, w.End) || g.Slot != w.Slot || g.Count != w.Count {
			t.Errorf("series %d = %+v, want %+v", i, g, w)
		}
	}
	if span := got[1].End - got[0].Start; !near(span, 0.8) {
		t.Errorf("joint span = %v, want 0.8", span)
	}
	if x.SideBySideSeriesCount != 2 {
		t.Errorf("SideBySideSeriesCount = %d, want 2", x.SideBySideSeriesCount)
	}
}

func TestDisjointAndSymmetric(t *testing.T) {
	tests := []struct {
		name    string
		widths  []float64
		spacing float64
	}{
		{"equal widths", []float64{0.8, 0.8, 0.8}, 0},
		{"mixed widths", []float64{0.2, 1, 0.5, 0.7}, 0},
		{"with spacing", []float64{0.6, 0.9}, 0.3},
		{"out of range widths", []float64{1.7, -0.5, 0.4}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := axis.New(0, "x", axis.Horizontal, axis.Category)
			list := columns(x, tt.widths...)
			for _, s := range list {
				s.Spacing = tt.spacing
			}
			var s Solver
			got := s.Solve([]*axis.Axis{x}, list, true)

			infos := make([]Info, 0, len(got))
			for _, in := range got {
				infos = append(infos, in)
			}
			sort.Slice(infos, func(i, j int) bool { return infos[i].Slot < infos[j].Slot })
			for i := 1; i < len(infos); i++ {
				if infos[i-1].End > infos[i].Start+tol {
					t.Errorf("slots %d and %d overlap: %+v %+v", i-1, i, infos[i-1], infos[i])
				}
			}
			for _, in := range infos {
				if in.Start > in.End {
					t.Errorf("inverted range %+v", in)
				}
			}

			// without spacing the outer edges are symmetric about zero
			var total float64
			for _, w := range tt.widths {
				total += math.Max(0, math.Min(1, w))
			}
			half := total / float64(len(tt.widths)) / 2
			lo, hi := infos[0].Start, infos[len(infos)-1].End
			if tt.spacing == 0 && (!near(lo, -half) || !near(hi, half)) {
				t.Errorf("slots span [%v, %v], want [%v, %v]", lo, hi, -half, half)
			}
		})
	}
}

func TestStackingGroupSharesSlot(t *testing.T) {
	x := axis.New(0, "x", axis.Horizontal, axis.Category)
	list := columns(x, 0.8, 0.4, 0.8)
	list[0].Group = "a"
	list[1].Group = "a"

	var s Solver
	got := s.Solve([]*axis.Axis{x}, list, true)
	if got[0].Slot != 0 || got[1].Slot != 0 || got[2].Slot != 1 {
		t.Fatalf("slots = %d %d %d, want 0 0 1", got[0].Slot, got[1].Slot, got[2].Slot)
	}
	// the narrower member is centered in the shared band [-0.4, 0]
	if !near(got[1].Start, -0.3) || !near(got[1].End, -0.1) {
		t.Errorf("narrow member = %+v, want [-0.3, -0.1]", got[1])
	}
	if x.SideBySideSeriesCount != 2 {
		t.Errorf("SideBySideSeriesCount = %d, want 2", x.SideBySideSeriesCount)
	}
}

func TestSpacing(t *testing.T) {
	x := axis.New(0, "x", axis.Horizontal, axis.Category)
	list := columns(x, 0.8, 0.8)
	list[0].Spacing = 0.5

	var s Solver
	got := s.Solve([]*axis.Axis{x}, list, true)
	if !near(got[0].Start, -0.275) || !near(got[0].End, -0.125) {
		t.Errorf("spaced = %+v, want [-0.275, -0.125]", got[0])
	}

	list[0].Width, list[0].Spacing = 0.1, 1
	got = s.Solve([]*axis.Axis{x}, list, true)
	if got[0].Start != got[0].End {
		t.Errorf("over-spaced range %+v should collapse to a point", got[0])
	}
}

func TestDisabled(t *testing.T) {
	x := axis.New(0, "x", axis.Horizontal, axis.Category)
	list := columns(x, 0.8, 0.5)

	var s Solver
	got := s.Solve([]*axis.Axis{x}, list, false)
	if !near(got[0].Start, -0.4) || !near(got[0].End, 0.4) {
		t.Errorf("series 0 = %+v, want [-0.4, 0.4]", got[0])
	}
	if !near(got[1].Start, -0.25) || !near(got[1].End, 0.25) {
		t.Errorf("series 1 = %+v, want [-0.25, 0.25]", got[1])
	}
}

func TestNonEligibleSeriesIgnored(t *testing.T) {
	x := axis.New(0, "x", axis.Horizontal, axis.Category)
	list := columns(x, 0.8, 0.8, 0.8)
	list[1].Visible = false
	list[2].Kind = series.Line

	var s Solver
	got := s.Solve([]*axis.Axis{x}, list, true)
	if len(got) != 1 {
		t.Fatalf("got %d ranges, want 1", len(got))
	}
	if !near(got[0].Start, -0.4) || !near(got[0].End, 0.4) {
		t.Errorf("sole series = %+v, want [-0.4, 0.4]", got[0])
	}
}

func TestMinWidth(t *testing.T) {
	mk := func(xs ...float64) []*series.Series {
		s := series.New(0, "s", series.Column, 0, 1)
		for _, x := range xs {
			s.Points = append(s.Points, series.Point{X: x, Y: 1})
		}
		return []*series.Series{s}
	}
	day := float64((24 * time.Hour).Milliseconds())

	tests := []struct {
		name string
		vt   axis.ValueType
		it   axis.IntervalType
		xs   []float64
		want float64
	}{
		{"category", axis.Category, axis.IntervalAuto, []float64{0, 5}, 1},
		{"numeric gap", axis.Numeric, axis.IntervalAuto, []float64{0, 10, 20, 25}, 5},
		{"duplicates ignored", axis.Numeric, axis.IntervalAuto, []float64{3, 3, 7}, 4},
		{"single numeric", axis.Numeric, axis.IntervalAuto, []float64{3}, 1},
		{"single datetime", axis.DateTime, axis.IntervalAuto, []float64{1e12}, day},
		{"single datetime months", axis.DateTime, axis.IntervalMonths, []float64{1e12}, 30 * day},
		{"NaN skipped", axis.Numeric, axis.IntervalAuto, []float64{math.NaN(), 2, 4}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := axis.New(0, "x", axis.Horizontal, tt.vt)
			a.IntervalType = tt.it
			if got := MinWidth(a, mk(tt.xs...)); got != tt.want {
				t.Errorf("MinWidth = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNumericAxisUsesGap(t *testing.T) {
	x := axis.New(0, "x", axis.Horizontal, axis.Numeric)
	s := series.New(0, "s", series.Column, x.ID, 1)
	s.Points = []series.Point{{X: 0, Y: 1}, {X: 10, Y: 1}, {X: 20, Y: 1}}

	var sv Solver
	got := sv.Solve([]*axis.Axis{x}, []*series.Series{s}, true)
	if !near(got[0].Start, -4) || !near(got[0].End, 4) {
		t.Errorf("range = %+v, want [-4, 4]", got[0])
	}
}

func TestGroupingCache(t *testing.T) {
	x := axis.New(0, "x", axis.Horizontal, axis.Category)
	list := columns(x, 0.8, 0.8)
	axes := []*axis.Axis{x}

	var s Solver
	s.Solve(axes, list, true)
	s.Solve(axes, list, true)
	if s.Builds() != 1 {
		t.Errorf("Builds = %d after unchanged solve, want 1", s.Builds())
	}

	list[1].Visible = false
	got := s.Solve(axes, list, true)
	if s.Builds() != 2 {
		t.Errorf("Builds = %d after visibility change, want 2", s.Builds())
	}
	if len(got) != 1 || got[0].Count != 1 {
		t.Errorf("after hiding: %+v", got)
	}

	list[0].Points = append(list[0].Points, series.Point{X: 2, Y: 3})
	s.Solve(axes, list, true)
	if s.Builds() != 2 {
		t.Errorf("data change should not regroup, Builds = %d", s.Builds())
	}

	s.Invalidate()
	s.Solve(axes, list, true)
	if s.Builds() != 3 {
		t.Errorf("Builds = %d after Invalidate, want 3", s.Builds())
	}
}
