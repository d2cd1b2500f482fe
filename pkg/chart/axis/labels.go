package axis

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// FormatLabel formats a tick value according to the axis value type and
// Style.LabelFormat.
func (a *Axis) FormatLabel(v float64) string {
	switch a.ValueType {
	case Category:
		i := int(math.Round(v))
		if i >= 0 && i < len(a.Categories) {
			return a.Categories[i]
		}
		return strconv.Itoa(i)
	case DateTime:
		layout := a.Style.LabelFormat
		if layout == "" {
			it := a.IntervalType
			if it == IntervalAuto {
				it = resolveIntervalType(a.Max - a.Min)
			}
			layout = dateLayouts[it]
		}
		return time.UnixMilli(int64(v)).UTC().Format(layout)
	}
	if a.Style.LabelFormat != "" {
		return fmt.Sprintf(a.Style.LabelFormat, v)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
