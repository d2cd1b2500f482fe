package chart

import (
	"github.com/matzehuels/chartlayout/pkg/chart/axis"
	"github.com/matzehuels/chartlayout/pkg/chart/series"
)

// State is the dirty state of an axis, a series or the whole chart. States
// are ordered: a larger state implies the work of every smaller one.
type State int

const (
	// Clean entities need no work.
	Clean State = iota
	// NeedsLabels re-places data labels on the existing geometry.
	NeedsLabels
	// NeedsMeasure runs a full pass.
	NeedsMeasure
	// NeedsGrouping discards the side-by-side grouping, then runs a full pass.
	NeedsGrouping
)

var stateNames = [...]string{"clean", "needs_labels", "needs_measure", "needs_grouping"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// merge returns the stronger of two states.
func merge(a, b State) State {
	if b > a {
		return b
	}
	return a
}

// invalidation is a queued state change.
type invalidation struct {
	target kind
	id     int
	state  State
}

type kind int

const (
	kindChart kind = iota
	kindAxis
	kindSeries
)

// Invalidate marks the whole chart and every entity in it. During a pass the change is deferred to
// the next Layout call.
func (c *Chart) Invalidate(s State) {
	c.mark(invalidation{target: kindChart, state: s})
}

// InvalidateAxis marks one axis.
func (c *Chart) InvalidateAxis(id axis.ID, s State) {
	c.mark(invalidation{target: kindAxis, id: int(id), state: s})
}

// InvalidateSeries marks one series.
func (c *Chart) InvalidateSeries(id series.ID, s State) {
	c.mark(invalidation{target: kindSeries, id: int(id), state: s})
}

func (c *Chart) mark(inv invalidation) {
	if inv.state == Clean {
		return
	}
	if c.inPass {
		c.pending = append(c.pending, inv)
		c.logger.Debug("deferred invalidation", "state", inv.state)
		return
	}
	c.apply(inv)
}

func (c *Chart) apply(inv invalidation) {
	switch inv.target {
	case kindChart:
		for i := range c.axisState {
			c.axisState[i] = merge(c.axisState[i], inv.state)
		}
		for i := range c.seriesState {
			c.seriesState[i] = merge(c.seriesState[i], inv.state)
		}
	case kindAxis:
		if inv.id >= 0 && inv.id < len(c.axisState) {
			c.axisState[inv.id] = merge(c.axisState[inv.id], inv.state)
		}
	case kindSeries:
		if inv.id >= 0 && inv.id < len(c.seriesState) {
			c.seriesState[inv.id] = merge(c.seriesState[inv.id], inv.state)
		}
	}
	c.state = merge(c.state, inv.state)
}

// applyPending replays invalidations queued during the previous pass.
func (c *Chart) applyPending() {
	for _, inv := range c.pending {
		c.apply(inv)
	}
	c.pending = c.pending[:0]
}

// State returns the chart-wide dirty state.
func (c *Chart) State() State { return c.state }

// Pending returns the number of invalidations waiting for the next pass.
func (c *Chart) Pending() int { return len(c.pending) }

func (c *Chart) clearStates() {
	c.state = Clean
	for i := range c.axisState {
		c.axisState[i] = Clean
	}
	for i := range c.seriesState {
		c.seriesState[i] = Clean
	}
}
