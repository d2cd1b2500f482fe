// Package chart coordinates the layout of a Cartesian chart.
//
// A [Chart] is an arena: axes and series live in slices and refer to each
// other by integer ID ([axis.ID], [series.ID]). Removing an entity leaves a
// tombstone so IDs stay stable.
//
// # Layout pass
//
// [Chart.Layout] runs one coordinating pass over the arena:
//
//  1. Range computation: series are registered on their axes, side-by-side
//     ranges are solved (package sbs) and data extents are collected.
//  2. Axis arrangement: the iterative measure/arrange loop (package arrange)
//     computes plot margins and per-axis rectangles.
//  3. Crossing resolution: axes drawn at a crossing value are positioned.
//  4. Segment geometry: bar rectangles and vertices are built and handed to
//     the [SegmentStyler].
//  5. Data labels: label anchors are placed (package datalabel).
//
// # Dirty state
//
// Every axis and series carries a [State]. Mutations mark entities with the
// cheapest state that covers them: label settings need only labels, series
// visibility or width needs regrouping, and anything touching ranges needs a
// full measure. A pass clears all states. Invalidations raised while a pass
// runs, for example from a segment styler, are queued and applied when the
// next Layout call starts, so a pass never recurses into itself.
//
// A Chart is not safe for concurrent use.
package chart
