// Package model provides the serialization types for chart definitions and
// layout results.
//
// This package defines the wire format of chartlayout: chart definitions read
// from JSON, TOML or YAML files and API requests, and layout results written
// as JSON for files, API responses and caching.
//
// # Architecture
//
// The package sits at the serialization boundary between the chart arena and
// external formats:
//
//   - [Definition]: axes and series referenced by name (this package)
//   - pkg/chart.Chart: the layout arena with integer IDs
//   - [Layout]: the serialized pass result (this package)
//
// Use [Definition.Build] to construct a chart and [FromResult] to serialize
// what its layout pass produced.
//
// # Definition Files
//
// The format follows the file extension (.json, .toml, .yaml, .yml):
//
//	width = 640
//	height = 480
//
//	[[axes]]
//	name = "year"
//	orientation = "horizontal"
//	type = "category"
//	categories = ["2023", "2024"]
//
//	[[axes]]
//	name = "revenue"
//	orientation = "vertical"
//
//	[[series]]
//	name = "north"
//	type = "column"
//	x_axis = "year"
//	y_axis = "revenue"
//	values = [12.0, 17.5]
//
// Common operations:
//
//	def, _ := model.ReadDefinitionFile("chart.toml")  // File → Definition
//	c, _ := def.Build()                               // Definition → Chart
//	res := c.Layout(def.Size(800, 600))
//	layout := model.FromResult(def.Title, res)        // Result → Layout
//	model.WriteLayoutFile(layout, "layout.json")      // Layout → File
//
// # Validation
//
// Decoding validates the definition. Failures are *errors.Error values with
// INVALID_DEFINITION, INVALID_AXIS, INVALID_SERIES, INVALID_SIZE or
// INVALID_FORMAT codes.
package model
