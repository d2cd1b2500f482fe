package chart_test

import (
	"fmt"

	"github.com/matzehuels/chartlayout/pkg/chart"
	"github.com/matzehuels/chartlayout/pkg/chart/axis"
	"github.com/matzehuels/chartlayout/pkg/chart/series"
	"github.com/matzehuels/chartlayout/pkg/fonts"
	"github.com/matzehuels/chartlayout/pkg/geom"
)

func ExampleChart_Layout() {
	c := chart.New(chart.WithTextMeasurer(fonts.Approx{}))
	x := c.AddAxis("quarter", axis.Horizontal, axis.Category)
	x.Categories = []string{"Q1", "Q2", "Q3", "Q4"}
	y := c.AddAxis("revenue", axis.Vertical, axis.Numeric)

	for _, name := range []string{"2023", "2024"} {
		s, _ := c.AddSeries(name, series.Column, x.ID, y.ID)
		for i, v := range []float64{12, 18, 9, 22} {
			s.Points = append(s.Points, series.Point{X: float64(i), Y: v})
		}
	}

	res := c.Layout(geom.Size{Width: 640, Height: 480})
	fmt.Println("converged:", res.Converged)
	for _, s := range res.Series {
		fmt.Printf("%s: [%.2f, %.2f] slot %d of %d\n",
			s.Name, s.SideBySide.Start, s.SideBySide.End, s.SideBySide.Slot, s.SideBySide.Count)
	}
	// Output:
	// converged: true
	// 2023: [-0.40, 0.00] slot 0 of 2
	// 2024: [0.00, 0.40] slot 1 of 2
}
