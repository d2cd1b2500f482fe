// Package axis holds per-axis layout state and the axis size calculator.
//
// An [Axis] carries everything the arrangement pass needs to know about one
// axis: its orientation (already normalized for transposed charts), whether it
// is opposed or inversed, its actual range and tick positions, how much space
// its ticks and labels need, and where it was finally arranged.
//
// # Scale
//
// [Axis.UpdateScale] derives the actual range, interval and tick positions for
// a given axis length. Auto intervals follow the usual "nice number" rule: the
// axis aims for [MaxLabelsPer100px] labels per 100 units of length and picks
// the largest of 10, 5, 2 or 1 times a power of ten that still produces at
// least that many intervals. Because the tick count depends on the length, and
// the length depends on how much room the perpendicular axes take, measuring
// is repeated by the arrangement solver until the plot area settles.
//
// # Measurement
//
// [SizeCalculator] measures an axis against an available size: the extent
// along the axis is the available length, the extent across it is the sum of
// line width, tick length, label margin, label extent and title. Ticks and
// labels positioned inside the plot area are reported separately as
// [Axis.InsidePadding] so that the solver can let them overlap the plot edge.
//
// # Coordinates
//
// [Axis.ValueToPixel] maps a data value to a chart-area coordinate using the
// axis ArrangeRect: x for horizontal axes, y for vertical axes (with larger
// values higher up unless the axis is inversed).
package axis
