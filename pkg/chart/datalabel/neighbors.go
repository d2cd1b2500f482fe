package datalabel

import "math"

// Above reports whether the label of point i of a line series goes on the
// high-value side. ys may contain NaN for empty points.
//
// A local maximum goes above and a local minimum below. An edge point goes
// above when it is not lower than its sole neighbor; a point with no
// informative neighbor goes above. Monotonic points, and points with one
// empty neighbor, are compared against the chord between the informative
// points on either side, looking past the gap for the nearest one.
func Above(xs, ys []float64, i int) bool {
	n := len(ys)
	if i < 0 || i >= n || len(xs) != n {
		return true
	}
	y := ys[i]

	prev, next := i-1, i+1
	hasPrev, hasNext := prev >= 0, next < n
	prevNaN := hasPrev && math.IsNaN(ys[prev])
	nextNaN := hasNext && math.IsNaN(ys[next])

	switch {
	case !hasPrev && !hasNext:
		return true
	case !hasPrev:
		return nextNaN || y >= ys[next]
	case !hasNext:
		return prevNaN || y >= ys[prev]
	case prevNaN && nextNaN:
		return true
	case prevNaN:
		far := informative(ys, prev, -1)
		if far < 0 {
			return y >= ys[next]
		}
		return y >= chord(xs[far], ys[far], xs[next], ys[next], xs[i])
	case nextNaN:
		far := informative(ys, next, 1)
		if far < 0 {
			return y >= ys[prev]
		}
		return y >= chord(xs[prev], ys[prev], xs[far], ys[far], xs[i])
	}

	p, q := ys[prev], ys[next]
	switch {
	case y >= p && y >= q:
		return true
	case y <= p && y <= q:
		return false
	}
	return y >= chord(xs[prev], p, xs[next], q, xs[i])
}

// informative returns the index of the first non-NaN value from start in
// direction step, or -1.
func informative(ys []float64, start, step int) int {
	for j := start; j >= 0 && j < len(ys); j += step {
		if !math.IsNaN(ys[j]) {
			return j
		}
	}
	return -1
}

// chord returns the value at x of the line through (x0, y0) and (x1, y1).
func chord(x0, y0, x1, y1, x float64) float64 {
	if x1 == x0 {
		return (y0 + y1) / 2
	}
	return y0 + (y1-y0)*(x-x0)/(x1-x0)
}
