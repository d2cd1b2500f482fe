// Package sbs positions side-by-side series.
//
// Column series sharing an x axis are grouped into slots: series in the same
// stacking group share a slot, every other series gets its own. Each slot
// receives a band of the category width proportional to its widest member,
// and each member is centered in its band. The resulting [Info] ranges are
// offsets in data space relative to the category value.
package sbs

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/chartlayout/pkg/chart/axis"
	"github.com/matzehuels/chartlayout/pkg/chart/series"
)

// Info is the side-by-side range of one series.
type Info struct {
	Start, End float64
	Slot       int
	Count      int
}

// Width returns End - Start.
func (i Info) Width() float64 { return i.End - i.Start }

// Solver computes side-by-side ranges. The slot grouping is cached until the
// series configuration changes or Invalidate is called; the zero value is
// ready to use.
type Solver struct {
	fingerprint string
	grouping    map[axis.ID][][]series.ID
	order       []axis.ID
	builds      int
}

// Invalidate discards the cached grouping.
func (s *Solver) Invalidate() {
	s.grouping = nil
	s.order = nil
	s.fingerprint = ""
}

// Builds returns how many times the grouping has been computed.
func (s *Solver) Builds() int { return s.builds }

// Eligible reports whether a series takes part in side-by-side placement.
func Eligible(sr *series.Series) bool { return sr.Visible && sr.Kind.SideBySide() }

// Solve returns the side-by-side range of every eligible series and records
// the slot count on each x axis. With enabled unset every series spans its
// own width centered on the category.
func (s *Solver) Solve(axes []*axis.Axis, list []*series.Series, enabled bool) map[series.ID]Info {
	byID := make(map[series.ID]*series.Series, len(list))
	for _, sr := range list {
		byID[sr.ID] = sr
	}

	fp := fingerprint(list, enabled)
	if s.grouping == nil || fp != s.fingerprint {
		s.group(list)
		s.fingerprint = fp
	}

	out := make(map[series.ID]Info)
	for _, id := range s.order {
		slots := s.grouping[id]
		a := find(axes, id)
		if a != nil {
			a.SideBySideSeriesCount = len(slots)
		}
		members := make([]*series.Series, 0)
		for _, slot := range slots {
			for _, sid := range slot {
				members = append(members, byID[sid])
			}
		}
		mw := MinWidth(a, members)

		if !enabled {
			for _, sr := range members {
				w := sr.ClampedWidth()
				out[sr.ID] = Info{Start: -w * mw / 2, End: w * mw / 2, Count: 1}
			}
			continue
		}
		place(out, slots, byID, mw)
	}
	return out
}

// place distributes slots across the category width.
func place(out map[series.ID]Info, slots [][]series.ID, byID map[series.ID]*series.Series, mw float64) {
	n := float64(len(slots))
	maxWidths := make([]float64, len(slots))
	var total float64
	for i, slot := range slots {
		for _, sid := range slot {
			maxWidths[i] = math.Max(maxWidths[i], byID[sid].ClampedWidth())
		}
		total += maxWidths[i]
	}
	total /= n

	pos := -mw * total / 2
	for i, slot := range slots {
		sbsMax := maxWidths[i]
		for _, sid := range slot {
			sr := byID[sid]
			w := sr.ClampedWidth()
			space := (sbsMax - w) / n
			start := pos + space*mw/2
			end := start + (w/n)*mw

			if sp := sr.ClampedSpacing(); sp > 0 {
				inset := sp * mw / (2 * n)
				if start+inset > end-inset {
					mid := (start + end) / 2
					start, end = mid, mid
				} else {
					start, end = start+inset, end-inset
				}
			}
			out[sid] = Info{Start: start, End: end, Slot: i, Count: len(slots)}
		}
		pos += (sbsMax / n) * mw
	}
}

// group assigns slots in discovery order.
func (s *Solver) group(list []*series.Series) {
	s.grouping = make(map[axis.ID][][]series.ID)
	s.order = s.order[:0]
	stacks := make(map[axis.ID]map[string]int)
	for _, sr := range list {
		if !Eligible(sr) {
			continue
		}
		id := sr.XAxis
		if _, ok := s.grouping[id]; !ok {
			s.order = append(s.order, id)
			stacks[id] = make(map[string]int)
		}
		if sr.Group != "" {
			if slot, ok := stacks[id][sr.Group]; ok {
				s.grouping[id][slot] = append(s.grouping[id][slot], sr.ID)
				continue
			}
			stacks[id][sr.Group] = len(s.grouping[id])
		}
		s.grouping[id] = append(s.grouping[id], []series.ID{sr.ID})
	}
	s.builds++
}

func fingerprint(list []*series.Series, enabled bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%t/%d|", enabled, len(list))
	for _, sr := range list {
		fmt.Fprintf(&b, "%d:%t:%d:%d:%g:%g:%q;",
			sr.ID, Eligible(sr), sr.Kind, sr.XAxis, sr.Width, sr.Spacing, sr.Group)
	}
	return b.String()
}

func find(axes []*axis.Axis, id axis.ID) *axis.Axis {
	for _, a := range axes {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// MinWidth returns the data-space width of one category: the smallest gap
// between distinct x values of the given series. Category axes, and axes
// with fewer than two distinct values, use 1; a DateTime axis with a single
// value uses one unit of its interval type in milliseconds.
func MinWidth(a *axis.Axis, list []*series.Series) float64 {
	if a != nil && a.ValueType == axis.Category {
		return 1
	}
	var xs []float64
	for _, sr := range list {
		for _, p := range sr.Points {
			if !math.IsNaN(p.X) && !math.IsInf(p.X, 0) {
				xs = append(xs, p.X)
			}
		}
	}
	slices.Sort(xs)
	xs = slices.Compact(xs)
	if len(xs) < 2 {
		if a != nil && a.ValueType == axis.DateTime {
			return a.IntervalType.Millis()
		}
		return 1
	}
	gap := math.Inf(1)
	for i := 1; i < len(xs); i++ {
		gap = math.Min(gap, xs[i]-xs[i-1])
	}
	return gap
}
