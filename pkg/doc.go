// Package pkg provides the libraries behind chartlayout, a layout core for
// Cartesian charts.
//
// # Overview
//
// Given a chart's axes, series and available size, chartlayout computes the
// geometry a renderer needs: the plot area, axis rectangles and ticks, the
// pixel geometry of every data point and the boxes of data labels. The pkg
// directory is organized into these areas:
//
//  1. [chart] - Layout engine (axes, series, side-by-side grouping, labels)
//  2. [geom] and [fonts] - Geometry primitives and text measurement
//  3. [model] - Chart definitions (JSON, TOML, YAML) and serialized layouts
//  4. [render] - Wireframe SVG, PNG/PDF conversion and Graphviz topology
//  5. [pipeline] - Orchestration (parse → layout → render) with caching
//  6. [cache], [errors], [observability], [buildinfo] - Infrastructure
//
// # Architecture
//
//	Definition (JSON/TOML/YAML)
//	         ↓
//	    [model] package (validate, build chart)
//	         ↓
//	    [chart] package (measure → arrange → segments → labels)
//	         ↓
//	    [model.Layout] (serialized geometry)
//	         ↓
//	    [render] packages
//	         ↓
//	    SVG/PNG/PDF/DOT/JSON output
//
// # Quick Start
//
//	def, _ := pipeline.ParseFile("revenue.yaml")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, _ := runner.Execute(ctx, def, pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	os.WriteFile("revenue.svg", res.Artifacts[pipeline.FormatSVG], 0o644)
//
// [chart]: github.com/matzehuels/chartlayout/pkg/chart
// [geom]: github.com/matzehuels/chartlayout/pkg/geom
// [fonts]: github.com/matzehuels/chartlayout/pkg/fonts
// [model]: github.com/matzehuels/chartlayout/pkg/model
// [model.Layout]: github.com/matzehuels/chartlayout/pkg/model#Layout
// [render]: github.com/matzehuels/chartlayout/pkg/render
// [pipeline]: github.com/matzehuels/chartlayout/pkg/pipeline
// [cache]: github.com/matzehuels/chartlayout/pkg/cache
// [errors]: github.com/matzehuels/chartlayout/pkg/errors
// [observability]: github.com/matzehuels/chartlayout/pkg/observability
// [buildinfo]: github.com/matzehuels/chartlayout/pkg/buildinfo
package pkg
