package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/chartlayout/pkg/errors"
)

// Definition file formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// =============================================================================
// Definition - Chart Input Format
// =============================================================================

// Definition is the serialized form of a chart: its axes, series and the size
// to lay it out at. Axes are referenced by name.
//
// The same structure decodes from JSON, TOML and YAML.
type Definition struct {
	Title         string   `json:"title,omitempty" toml:"title" yaml:"title,omitempty"`
	Width         float64  `json:"width,omitempty" toml:"width" yaml:"width,omitempty"`
	Height        float64  `json:"height,omitempty" toml:"height" yaml:"height,omitempty"`
	SideBySide    *bool    `json:"side_by_side,omitempty" toml:"side_by_side" yaml:"side_by_side,omitempty"`
	MaxIterations int      `json:"max_iterations,omitempty" toml:"max_iterations" yaml:"max_iterations,omitempty"`
	Axes          []Axis   `json:"axes" toml:"axes" yaml:"axes"`
	Series        []Series `json:"series" toml:"series" yaml:"series"`
}

// Axis describes one chart axis.
type Axis struct {
	Name        string `json:"name" toml:"name" yaml:"name"`
	Orientation string `json:"orientation" toml:"orientation" yaml:"orientation"` // "horizontal" or "vertical"
	Type        string `json:"type,omitempty" toml:"type" yaml:"type,omitempty"`  // numeric, category, datetime, logarithmic
	Opposed     bool   `json:"opposed,omitempty" toml:"opposed" yaml:"opposed,omitempty"`
	Inversed    bool   `json:"inversed,omitempty" toml:"inversed" yaml:"inversed,omitempty"`

	Min          *float64 `json:"min,omitempty" toml:"min" yaml:"min,omitempty"`
	Max          *float64 `json:"max,omitempty" toml:"max" yaml:"max,omitempty"`
	Interval     float64  `json:"interval,omitempty" toml:"interval" yaml:"interval,omitempty"`
	IntervalType string   `json:"interval_type,omitempty" toml:"interval_type" yaml:"interval_type,omitempty"`
	LogBase      float64  `json:"log_base,omitempty" toml:"log_base" yaml:"log_base,omitempty"`
	RangePadding string   `json:"range_padding,omitempty" toml:"range_padding" yaml:"range_padding,omitempty"`
	Categories   []string `json:"categories,omitempty" toml:"categories" yaml:"categories,omitempty"`

	// CrossAxis names the perpendicular axis CrossesAt is measured on.
	CrossAxis        string   `json:"cross_axis,omitempty" toml:"cross_axis" yaml:"cross_axis,omitempty"`
	CrossesAt        *float64 `json:"crosses_at,omitempty" toml:"crosses_at" yaml:"crosses_at,omitempty"`
	RenderAtCrossing bool     `json:"render_at_crossing,omitempty" toml:"render_at_crossing" yaml:"render_at_crossing,omitempty"`

	Style AxisStyle `json:"style,omitempty" toml:"style" yaml:"style,omitempty"`
}

// AxisStyle holds the space-relevant axis style. Zero values keep defaults.
type AxisStyle struct {
	LabelFontSize   float64  `json:"label_font_size,omitempty" toml:"label_font_size" yaml:"label_font_size,omitempty"`
	LabelMargin     float64  `json:"label_margin,omitempty" toml:"label_margin" yaml:"label_margin,omitempty"`
	LabelRotation   float64  `json:"label_rotation,omitempty" toml:"label_rotation" yaml:"label_rotation,omitempty"`
	LabelFormat     string   `json:"label_format,omitempty" toml:"label_format" yaml:"label_format,omitempty"`
	LabelPosition   string   `json:"label_position,omitempty" toml:"label_position" yaml:"label_position,omitempty"`
	HideLabels      bool     `json:"hide_labels,omitempty" toml:"hide_labels" yaml:"hide_labels,omitempty"`
	TickLength      *float64 `json:"tick_length,omitempty" toml:"tick_length" yaml:"tick_length,omitempty"`
	TickPosition    string   `json:"tick_position,omitempty" toml:"tick_position" yaml:"tick_position,omitempty"`
	LineWidth       *float64 `json:"line_width,omitempty" toml:"line_width" yaml:"line_width,omitempty"`
	Title           string   `json:"title,omitempty" toml:"title" yaml:"title,omitempty"`
	TitleFontSize   float64  `json:"title_font_size,omitempty" toml:"title_font_size" yaml:"title_font_size,omitempty"`
	TitleMargin     float64  `json:"title_margin,omitempty" toml:"title_margin" yaml:"title_margin,omitempty"`
	IntersectAction string   `json:"intersect_action,omitempty" toml:"intersect_action" yaml:"intersect_action,omitempty"`
}

// Series describes one data series. Data is given either as Points or as
// Values, which are placed at x = 0, 1, 2, ...
type Series struct {
	Name        string   `json:"name" toml:"name" yaml:"name"`
	Type        string   `json:"type" toml:"type" yaml:"type"` // column, line, spline, step_line, area, scatter
	XAxis       string   `json:"x_axis" toml:"x_axis" yaml:"x_axis"`
	YAxis       string   `json:"y_axis" toml:"y_axis" yaml:"y_axis"`
	Hidden      bool     `json:"hidden,omitempty" toml:"hidden" yaml:"hidden,omitempty"`
	Width       *float64 `json:"width,omitempty" toml:"width" yaml:"width,omitempty"`
	Spacing     float64  `json:"spacing,omitempty" toml:"spacing" yaml:"spacing,omitempty"`
	Group       string   `json:"group,omitempty" toml:"group" yaml:"group,omitempty"`
	StrokeWidth *float64 `json:"stroke_width,omitempty" toml:"stroke_width" yaml:"stroke_width,omitempty"`
	MarkerSize  float64  `json:"marker_size,omitempty" toml:"marker_size" yaml:"marker_size,omitempty"`

	Points []Point     `json:"points,omitempty" toml:"points" yaml:"points,omitempty"`
	Values []*float64  `json:"values,omitempty" toml:"values" yaml:"values,omitempty"`
	Labels *DataLabels `json:"labels,omitempty" toml:"labels" yaml:"labels,omitempty"`
}

// Point is one data point. A missing Y marks an empty point.
type Point struct {
	X float64  `json:"x" toml:"x" yaml:"x"`
	Y *float64 `json:"y" toml:"y" yaml:"y"`
}

// DataLabels configures the labels of a series. Setting the block makes the
// labels visible unless Hidden is set.
type DataLabels struct {
	Hidden      bool     `json:"hidden,omitempty" toml:"hidden" yaml:"hidden,omitempty"`
	Position    string   `json:"position,omitempty" toml:"position" yaml:"position,omitempty"`
	Alignment   string   `json:"alignment,omitempty" toml:"alignment" yaml:"alignment,omitempty"`
	Format      string   `json:"format,omitempty" toml:"format" yaml:"format,omitempty"`
	FontSize    float64  `json:"font_size,omitempty" toml:"font_size" yaml:"font_size,omitempty"`
	Padding     *float64 `json:"padding,omitempty" toml:"padding" yaml:"padding,omitempty"`
	Margin      *float64 `json:"margin,omitempty" toml:"margin" yaml:"margin,omitempty"`
	StrokeWidth float64  `json:"stroke_width,omitempty" toml:"stroke_width" yaml:"stroke_width,omitempty"`
}

// Float returns a pointer to v. It is a helper for building definitions in
// code.
func Float(v float64) *float64 { return &v }

// YValue returns the y value of p, NaN when absent.
func (p Point) YValue() float64 {
	if p.Y == nil {
		return math.NaN()
	}
	return *p.Y
}

// AxisIndex returns the position of the named axis, or -1.
func (d *Definition) AxisIndex(name string) int {
	for i := range d.Axes {
		if d.Axes[i].Name == name {
			return i
		}
	}
	return -1
}

// =============================================================================
// Definition Serialization API
// =============================================================================

// FormatFromPath returns the definition format implied by a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat,
		"unsupported definition file %q (must be .json, .toml, .yaml or .yml)", filepath.Base(path))
}

// UnmarshalDefinition decodes a definition in the given format and validates
// it.
func UnmarshalDefinition(data []byte, format string) (Definition, error) {
	var d Definition
	var err error
	switch format {
	case FormatJSON, "":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&d)
	case FormatTOML:
		err = toml.Unmarshal(data, &d)
	case FormatYAML:
		err = yaml.Unmarshal(data, &d)
	default:
		return Definition{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported definition format %q", format)
	}
	if err != nil {
		return Definition{}, errors.Wrap(errors.ErrCodeInvalidDefinition, err, "decode %s definition", formatName(format))
	}
	if err := d.Validate(); err != nil {
		return Definition{}, err
	}
	return d, nil
}

// ReadDefinition decodes a definition from r.
func ReadDefinition(r io.Reader, format string) (Definition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Definition{}, fmt.Errorf("read definition: %w", err)
	}
	return UnmarshalDefinition(data, format)
}

// ReadDefinitionFile reads a definition file. The format follows the file
// extension.
func ReadDefinitionFile(path string) (Definition, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Definition{}, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Definition{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "definition %s not found", path)
	}
	if err != nil {
		return Definition{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalDefinition(data, format)
}

// MarshalDefinition serializes a definition to canonical JSON. Equal
// definitions produce equal bytes, so the output is used for cache keys.
func MarshalDefinition(d Definition) ([]byte, error) {
	return json.Marshal(d)
}

func formatName(format string) string {
	if format == "" {
		return FormatJSON
	}
	return format
}
