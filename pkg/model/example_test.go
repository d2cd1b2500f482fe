package model_test

import (
	"fmt"

	"github.com/matzehuels/chartlayout/pkg/chart"
	"github.com/matzehuels/chartlayout/pkg/fonts"
	"github.com/matzehuels/chartlayout/pkg/model"
)

func ExampleUnmarshalDefinition() {
	data := `
width: 640
height: 480
axes:
  - name: year
    orientation: horizontal
    type: category
    categories: ["2023", "2024"]
  - name: revenue
    orientation: vertical
series:
  - name: north
    type: column
    x_axis: year
    y_axis: revenue
    values: [12, 17.5]
  - name: south
    type: column
    x_axis: year
    y_axis: revenue
    values: [9, 14]
`
	def, err := model.UnmarshalDefinition([]byte(data), model.FormatYAML)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	c, err := def.Build(chart.WithTextMeasurer(fonts.Approx{}))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	layout := model.FromResult(def.Title, c.Layout(def.Size(800, 600)))

	for _, s := range layout.Series {
		fmt.Printf("%s: [%.2f, %.2f] slot %d of %d\n",
			s.Name, s.SideBySide.Start, s.SideBySide.End, s.SideBySide.Index, s.SideBySide.Count)
	}
	// Output:
	// north: [-0.40, 0.00] slot 0 of 2
	// south: [0.00, 0.40] slot 1 of 2
}
