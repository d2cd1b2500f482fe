// Package datalabel positions data labels around the segments they belong to.
//
// A [Placer] turns a segment anchor (the value end of a bar, a line vertex, a
// scatter marker) into the center point of the label box. Each series family
// has its own placement function sharing one pattern: the label is pushed
// along the value direction by half its extent plus padding and half the
// border stroke, toward the outside (Outer) or the inside (Inner) of the
// shape. Auto tries Outer, falls back to Inner measured from the original
// anchor when Outer clips the plot bounds, and clamps the box into the
// bounds when both clip.
//
// Placement is a pure function of its inputs.
package datalabel
