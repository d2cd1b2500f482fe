// Package arrange places chart axes around the plot area.
//
// Axis sizes depend on each other: the width of a vertical axis depends on
// how many ticks fit its height, which depends on the heights of the
// horizontal axes, which in turn depend on the remaining width when their
// labels wrap or rotate. [Solver] resolves this by alternating measurement of
// the two orientations until the plot area stops moving by more than
// Epsilon, or MaxIterations passes have run.
//
// Once margins are known, axes are stacked outward from each plot edge in
// registration order. Axes drawn at a crossing value of a perpendicular axis
// do not take part in margins; [ResolveCrossing] positions them after the
// plot area is fixed.
package arrange
