package axis

import (
	"math"
	"strconv"
)

// MaxLabelsPer100px is the label density auto intervals aim for.
const MaxLabelsPer100px = 3

// maxTicks bounds tick generation for pathological ranges.
const maxTicks = 1000

// DesiredIntervals returns the number of intervals an axis of the given
// length should aim for.
func DesiredIntervals(length float64) float64 {
	return math.Max(1, length/100*MaxLabelsPer100px)
}

// NiceInterval returns a "nice" interval (1, 2, 5 or 10 times a power of ten)
// dividing delta into roughly desired parts.
func NiceInterval(delta, desired float64) float64 {
	if !(delta > 0) || !(desired > 0) || math.IsInf(delta, 0) {
		return 1
	}
	nice := delta / desired
	minInterval := math.Pow(10, math.Floor(math.Log10(nice)))
	for _, mul := range []float64{10, 5, 2, 1} {
		cur := minInterval * mul
		if desired < delta/cur {
			break
		}
		nice = cur
	}
	return nice
}

// UpdateScale derives the actual range, interval, tick positions and labels
// for an axis of the given length.
func (a *Axis) UpdateScale(length float64) {
	switch a.ValueType {
	case Category:
		a.updateCategory(length)
	case Logarithmic:
		a.updateLogarithmic(length)
	case DateTime:
		a.updateDateTime(length)
	default:
		a.updateNumeric(length)
	}
	a.Labels = a.Labels[:0]
	a.LabelVisible = a.LabelVisible[:0]
	for _, v := range a.Ticks {
		a.Labels = append(a.Labels, a.FormatLabel(v))
		a.LabelVisible = append(a.LabelVisible, true)
	}
}

// baseRange returns the requested range, falling back to the data extent.
func (a *Axis) baseRange() (lo, hi float64) {
	lo, hi = a.Minimum, a.Maximum
	if math.IsNaN(lo) {
		lo = a.DataMin
	}
	if math.IsNaN(hi) {
		hi = a.DataMax
	}
	switch {
	case math.IsNaN(lo) && math.IsNaN(hi):
		lo, hi = 0, 1
	case math.IsNaN(lo):
		lo = hi - 1
	case math.IsNaN(hi):
		hi = lo + 1
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == hi {
		hi = lo + 1
	}
	return lo, hi
}

func (a *Axis) padding() RangePadding {
	if a.RangePadding != PaddingAuto {
		return a.RangePadding
	}
	if a.IsVertical() {
		return PaddingRound
	}
	return PaddingNone
}

func (a *Axis) applyPadding(lo, hi, interval float64) (float64, float64) {
	switch a.padding() {
	case PaddingRound:
		if math.IsNaN(a.Minimum) {
			lo = math.Floor(lo/interval) * interval
		}
		if math.IsNaN(a.Maximum) {
			hi = math.Ceil(hi/interval) * interval
		}
	case PaddingAdditional:
		if math.IsNaN(a.Minimum) {
			lo -= interval
		}
		if math.IsNaN(a.Maximum) {
			hi += interval
		}
	}
	return lo, hi
}

func (a *Axis) updateNumeric(length float64) {
	lo, hi := a.baseRange()
	interval := a.Interval
	if !(interval > 0) {
		interval = NiceInterval(hi-lo, DesiredIntervals(length))
	}
	lo, hi = a.applyPadding(lo, hi, interval)
	a.Min, a.Max, a.ActualInterval = lo, hi, interval
	a.Ticks = linearTicks(a.Ticks[:0], lo, hi, interval)
}

func (a *Axis) updateCategory(length float64) {
	count := float64(len(a.Categories))
	if !math.IsNaN(a.DataMax) {
		count = math.Max(count, math.Floor(a.DataMax+0.5)+1)
	}
	lo, hi := -0.5, math.Max(count, 1)-0.5
	if !math.IsNaN(a.Minimum) {
		lo = a.Minimum
	}
	if !math.IsNaN(a.Maximum) {
		hi = a.Maximum
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	interval := a.Interval
	if !(interval > 0) {
		interval = math.Max(1, math.Ceil(NiceInterval(hi-lo, DesiredIntervals(length))))
	}
	a.Min, a.Max, a.ActualInterval = lo, hi, interval
	a.Ticks = linearTicks(a.Ticks[:0], math.Ceil(lo), hi, interval)
}

func (a *Axis) updateDateTime(length float64) {
	lo, hi := a.baseRange()
	it := a.IntervalType
	if it == IntervalAuto {
		it = resolveIntervalType(hi - lo)
	}
	unit := it.Millis()
	interval := a.Interval * unit
	if !(interval > 0) {
		n := NiceInterval((hi-lo)/unit, DesiredIntervals(length))
		interval = math.Max(1, math.Round(n)) * unit
	}
	lo, hi = a.applyPadding(lo, hi, interval)
	a.Min, a.Max, a.ActualInterval = lo, hi, interval
	a.Ticks = linearTicks(a.Ticks[:0], lo, hi, interval)
}

func (a *Axis) updateLogarithmic(length float64) {
	lo, hi := a.baseRange()
	if lo <= 0 {
		lo = 1
	}
	if hi <= lo {
		hi = lo * a.base()
	}
	elo, ehi := math.Floor(a.logOf(lo)), math.Ceil(a.logOf(hi))
	if !math.IsNaN(a.Minimum) && a.Minimum > 0 {
		elo = a.logOf(a.Minimum)
	}
	if !math.IsNaN(a.Maximum) && a.Maximum > 0 {
		ehi = a.logOf(a.Maximum)
	}
	if ehi <= elo {
		ehi = elo + 1
	}
	interval := a.Interval
	if !(interval > 0) {
		interval = math.Max(1, math.Round(NiceInterval(ehi-elo, DesiredIntervals(length))))
	}
	a.Min, a.Max, a.ActualInterval = math.Pow(a.base(), elo), math.Pow(a.base(), ehi), interval
	a.Ticks = a.Ticks[:0]
	for i := 0; i < maxTicks; i++ {
		e := math.Ceil(elo) + float64(i)*interval
		if e > ehi+1e-9 {
			break
		}
		a.Ticks = append(a.Ticks, math.Pow(a.base(), e))
	}
}

// linearTicks appends multiples of interval in [lo, hi] to dst.
func linearTicks(dst []float64, lo, hi, interval float64) []float64 {
	if !(interval > 0) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return dst
	}
	eps := interval * 1e-9
	start := math.Ceil((lo-eps)/interval) * interval
	for i := 0; i < maxTicks; i++ {
		v := roundNoise(start + float64(i)*interval)
		if v > hi+eps {
			break
		}
		dst = append(dst, v)
	}
	return dst
}

// roundNoise removes floating-point accumulation noise from tick values by
// rounding to 15 significant digits.
func roundNoise(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', 15, 64), 64)
	if err != nil {
		return v
	}
	return r
}
