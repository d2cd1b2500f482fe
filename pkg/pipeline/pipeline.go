// Package pipeline provides the parse → layout → render pipeline for chart
// definitions.
//
// This package is the single entry point used by the CLI and the HTTP API so
// both apply the same defaults, cache keys and validation.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Decode and validate a chart definition (JSON, TOML or YAML)
//  2. Layout: Build the chart and run one layout pass
//  3. Render: Generate output in various formats (JSON, SVG, DOT, PNG, PDF)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	def, err := pipeline.ParseFile("chart.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Execute(ctx, def, pipeline.Options{Formats: []string{"svg"}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Layout only
//	layout, err := runner.Layout(ctx, def, opts)
//
//	// Render an existing layout
//	artifacts, err := runner.Render(ctx, layout, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartlayout/pkg/cache"
	"github.com/matzehuels/chartlayout/pkg/errors"
	"github.com/matzehuels/chartlayout/pkg/model"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the chart width used when neither the definition nor
	// the options set one.
	DefaultWidth = 800.0

	// DefaultHeight is the chart height used when neither the definition nor
	// the options set one.
	DefaultHeight = 600.0

	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0

	// DefaultMeasurer is the default text measurer.
	DefaultMeasurer = MeasurerFont
)

// Text measurers. The font measurer uses the embedded Go Regular font; the
// approximate one derives widths from rune counts and is fully portable.
const (
	MeasurerFont   = "font"
	MeasurerApprox = "approx"
)

// Format constants for output formats.
const (
	FormatJSON     = "json"
	FormatSVG      = "svg"
	FormatPNG      = "png"
	FormatPDF      = "pdf"
	FormatDOT      = "dot"
	FormatTopology = "topology"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON:     true,
	FormatSVG:      true,
	FormatPNG:      true,
	FormatPDF:      true,
	FormatDOT:      true,
	FormatTopology: true,
}

// ValidMeasurers is the set of supported text measurers.
var ValidMeasurers = map[string]bool{
	MeasurerFont:   true,
	MeasurerApprox: true,
}

// ContentType returns the MIME type of an output format.
func ContentType(format string) string {
	switch format {
	case FormatJSON:
		return "application/json"
	case FormatSVG, FormatTopology:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatDOT:
		return "text/vnd.graphviz"
	}
	return "application/octet-stream"
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options. Width and Height apply only when the definition sets
	// no size; SideBySide and MaxIterations override the definition.
	Width         float64 `json:"width,omitempty"`
	Height        float64 `json:"height,omitempty"`
	SideBySide    *bool   `json:"side_by_side,omitempty"`
	MaxIterations int     `json:"max_iterations,omitempty"`
	Measurer      string  `json:"measurer,omitempty"`
	Refresh       bool    `json:"refresh,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	ShowLabels bool     `json:"show_labels,omitempty"`
	ShowGrid   bool     `json:"show_grid,omitempty"`
	ShowTitle  bool     `json:"show_title,omitempty"`
	Detailed   bool     `json:"detailed,omitempty"` // topology labels
	Scale      float64  `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run. It is also set on Layout.
	RunID string

	// DefinitionHash is the content hash of the definition.
	DefinitionHash string

	// Layout is the computed layout.
	Layout model.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	AxisCount   int
	SeriesCount int
	LabelCount  int
	Iterations  int
	Converged   bool
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, svg, png, pdf, dot, topology)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateMeasurer checks that a text measurer name is valid.
func ValidateMeasurer(m string) error {
	if !ValidMeasurers[m] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid measurer: %q (must be one of: font, approx)", m)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks options and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Measurer == "" {
		o.Measurer = DefaultMeasurer
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := errors.ValidateSize(o.Width, o.Height); err != nil {
		return err
	}
	if o.MaxIterations < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max_iterations cannot be negative")
	}
	return ValidateMeasurer(o.Measurer)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale cannot be negative")
	}
	return ValidateFormats(o.Formats)
}

// LayoutKeyOpts returns cache key options for layout computation. def
// supplies the settings the options do not override.
func (o *Options) LayoutKeyOpts(def model.Definition) cache.LayoutKeyOpts {
	size := def.Size(o.Width, o.Height)
	sbs := true
	if def.SideBySide != nil {
		sbs = *def.SideBySide
	}
	if o.SideBySide != nil {
		sbs = *o.SideBySide
	}
	iters := def.MaxIterations
	if o.MaxIterations > 0 {
		iters = o.MaxIterations
	}
	return cache.LayoutKeyOpts{
		Width:         size.Width,
		Height:        size.Height,
		SideBySide:    sbs,
		MaxIterations: iters,
		Measurer:      o.Measurer,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		ShowLabels: o.ShowLabels,
		ShowGrid:   o.ShowGrid,
		ShowTitle:  o.ShowTitle,
		Detailed:   o.Detailed,
		Scale:      o.Scale,
	}
}
