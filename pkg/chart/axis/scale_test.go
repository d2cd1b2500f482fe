package axis

import (
	"math"
	"slices"
	"testing"
	"time"
)

func TestNiceInterval(t *testing.T) {
	tests := []struct {
		delta, desired float64
		want           float64
	}{
		{100, 3, 50},
		{100, 6, 20},
		{94, 9, 20},
		{1, 3, 0.5},
		{0, 3, 1},
		{math.NaN(), 3, 1},
	}
	for _, tt := range tests {
		if got := NiceInterval(tt.delta, tt.desired); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("NiceInterval(%v, %v) = %v, want %v", tt.delta, tt.desired, got, tt.want)
		}
	}
}

func TestDesiredIntervals(t *testing.T) {
	if got := DesiredIntervals(300); got != 9 {
		t.Errorf("DesiredIntervals(300) = %v, want 9", got)
	}
	if got := DesiredIntervals(10); got != 1 {
		t.Errorf("DesiredIntervals(10) = %v, want 1", got)
	}
}

func TestUpdateScaleNumericRound(t *testing.T) {
	a := New(0, "y", Vertical, Numeric)
	a.IncludeData(3)
	a.IncludeData(97)
	a.UpdateScale(300)

	if a.Min != 0 || a.Max != 100 {
		t.Errorf("range = [%v, %v], want [0, 100]", a.Min, a.Max)
	}
	want := []float64{0, 20, 40, 60, 80, 100}
	if !slices.Equal(a.Ticks, want) {
		t.Errorf("Ticks = %v, want %v", a.Ticks, want)
	}
	if a.Labels[5] != "100" {
		t.Errorf("Labels[5] = %q, want 100", a.Labels[5])
	}
}

func TestUpdateScaleRequestedRange(t *testing.T) {
	a := New(0, "x", Horizontal, Numeric)
	a.Minimum, a.Maximum, a.Interval = -1, 1, 0.5
	a.IncludeData(100)
	a.UpdateScale(300)
	if a.Min != -1 || a.Max != 1 {
		t.Errorf("range = [%v, %v], want [-1, 1]", a.Min, a.Max)
	}
	want := []float64{-1, -0.5, 0, 0.5, 1}
	if !slices.Equal(a.Ticks, want) {
		t.Errorf("Ticks = %v, want %v", a.Ticks, want)
	}
}

func TestUpdateScaleNoData(t *testing.T) {
	a := New(0, "x", Horizontal, Numeric)
	a.UpdateScale(100)
	if a.Min != 0 || a.Max != 1 {
		t.Errorf("empty axis range = [%v, %v], want [0, 1]", a.Min, a.Max)
	}
}

func TestUpdateScaleTickNoise(t *testing.T) {
	a := New(0, "x", Horizontal, Numeric)
	a.Minimum, a.Maximum, a.Interval = 0, 1, 0.1
	a.UpdateScale(100)
	if len(a.Ticks) != 11 {
		t.Fatalf("got %d ticks, want 11", len(a.Ticks))
	}
	if a.Ticks[3] != 0.3 {
		t.Errorf("Ticks[3] = %v, want exactly 0.3", a.Ticks[3])
	}
}

func TestUpdateScaleCategory(t *testing.T) {
	a := New(0, "x", Horizontal, Category)
	a.Categories = []string{"Q1", "Q2", "Q3"}
	a.UpdateScale(300)
	if a.Min != -0.5 || a.Max != 2.5 {
		t.Errorf("range = [%v, %v], want [-0.5, 2.5]", a.Min, a.Max)
	}
	if !slices.Equal(a.Labels, []string{"Q1", "Q2", "Q3"}) {
		t.Errorf("Labels = %v", a.Labels)
	}
}

func TestUpdateScaleLogarithmic(t *testing.T) {
	a := New(0, "y", Vertical, Logarithmic)
	a.IncludeData(2)
	a.IncludeData(900)
	a.UpdateScale(300)
	if a.Min != 1 || a.Max != 1000 {
		t.Errorf("range = [%v, %v], want [1, 1000]", a.Min, a.Max)
	}
	if len(a.Ticks) != 4 || math.Abs(a.Ticks[2]-100) > 1e-9 {
		t.Errorf("Ticks = %v, want decades", a.Ticks)
	}
}

func TestUpdateScaleDateTime(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := New(0, "x", Horizontal, DateTime)
	a.RangePadding = PaddingNone
	a.IncludeData(float64(start.UnixMilli()))
	a.IncludeData(float64(start.Add(10 * 24 * time.Hour).UnixMilli()))
	a.UpdateScale(300)

	if a.ActualInterval < float64((24 * time.Hour).Milliseconds()) {
		t.Errorf("ActualInterval = %v, want at least one day", a.ActualInterval)
	}
	// two-day ticks are aligned to the epoch, so the first falls on Jan 02
	if len(a.Labels) == 0 || a.Labels[0] != "Jan 02" {
		t.Errorf("Labels = %v, want first label Jan 02", a.Labels)
	}
}
