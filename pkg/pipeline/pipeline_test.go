package pipeline

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/chartlayout/pkg/errors"
	"github.com/matzehuels/chartlayout/pkg/model"
	"github.com/matzehuels/chartlayout/pkg/observability"
)

const testDefinition = `
title: Revenue
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
    labels: {}
  - name: south
    type: column
    x_axis: year
    y_axis: revenue
    values: [9, 14]
`

func testDef(t *testing.T) model.Definition {
	t.Helper()
	def, err := Parse([]byte(testDefinition), model.FormatYAML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return def
}

// memCache is an in-memory cache for runner tests.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"dot", false},
		{"topology", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want INVALID_FORMAT", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "json"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateMeasurer(t *testing.T) {
	for _, m := range []string{"font", "approx"} {
		if err := ValidateMeasurer(m); err != nil {
			t.Errorf("ValidateMeasurer(%q) = %v", m, err)
		}
	}
	if err := ValidateMeasurer("fancy"); err == nil {
		t.Error("unknown measurer should fail")
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("size = %vx%v, want defaults", opts.Width, opts.Height)
	}
	if opts.Measurer != DefaultMeasurer {
		t.Errorf("Measurer = %q, want %q", opts.Measurer, DefaultMeasurer)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("Formats = %v, want [json]", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discarding logger")
	}

	// Idempotent
	opts.Formats = []string{"bogus"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call should be a no-op, got %v", err)
	}
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"negative width", Options{Width: -1}},
		{"negative iterations", Options{MaxIterations: -1}},
		{"bad measurer", Options{Measurer: "fancy"}},
		{"bad format", Options{Formats: []string{"gif"}}},
		{"negative scale", Options{Scale: -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); !errors.IsInvalid(err) {
				t.Errorf("error = %v, want a validation error", err)
			}
		})
	}
}

func TestLayoutKeyOpts(t *testing.T) {
	def := testDef(t)
	def.Width = 640
	def.SideBySide = new(bool)
	def.MaxIterations = 4

	opts := Options{}
	opts.SetLayoutDefaults()
	k := opts.LayoutKeyOpts(def)
	if k.Width != 640 || k.Height != DefaultHeight {
		t.Errorf("size = %vx%v, want 640x%v", k.Width, k.Height, DefaultHeight)
	}
	if k.SideBySide || k.MaxIterations != 4 {
		t.Errorf("definition settings not used: %+v", k)
	}

	on := true
	opts.SideBySide = &on
	opts.MaxIterations = 7
	k = opts.LayoutKeyOpts(def)
	if !k.SideBySide || k.MaxIterations != 7 {
		t.Errorf("option overrides not used: %+v", k)
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		FormatJSON:     "application/json",
		FormatSVG:      "image/svg+xml",
		FormatTopology: "image/svg+xml",
		FormatPNG:      "image/png",
		FormatPDF:      "application/pdf",
		FormatDOT:      "text/vnd.graphviz",
		"other":        "application/octet-stream",
	}
	for format, want := range tests {
		if got := ContentType(format); got != want {
			t.Errorf("ContentType(%q) = %q, want %q", format, got, want)
		}
	}
}

func TestComputeLayoutSize(t *testing.T) {
	def := testDef(t)
	l, err := ComputeLayout(def, Options{Measurer: MeasurerApprox})
	if err != nil {
		t.Fatalf("ComputeLayout: %v", err)
	}
	if l.Width != DefaultWidth || l.Height != DefaultHeight {
		t.Errorf("size = %vx%v, want default", l.Width, l.Height)
	}
	if l.Title != "Revenue" {
		t.Errorf("Title = %q", l.Title)
	}
	if l.PlotArea.Width <= 0 || l.PlotArea.Right() > l.Width || l.PlotArea.Bottom() > l.Height {
		t.Errorf("plot area %+v outside chart", l.PlotArea)
	}

	def.Width, def.Height = 320, 240
	l, err = ComputeLayout(def, Options{Measurer: MeasurerApprox})
	if err != nil {
		t.Fatalf("ComputeLayout: %v", err)
	}
	if l.Width != 320 || l.Height != 240 {
		t.Errorf("size = %vx%v, want definition size", l.Width, l.Height)
	}
}

func TestRenderFormats(t *testing.T) {
	def := testDef(t)
	l, err := ComputeLayout(def, Options{Measurer: MeasurerApprox})
	if err != nil {
		t.Fatalf("ComputeLayout: %v", err)
	}

	artifacts, err := Render(context.Background(), l, Options{
		Formats:    []string{FormatJSON, FormatSVG, FormatDOT},
		ShowLabels: true,
		ShowGrid:   true,
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(artifacts) != 3 {
		t.Fatalf("artifacts = %d, want 3", len(artifacts))
	}
	if _, err := model.UnmarshalLayout(artifacts[FormatJSON]); err != nil {
		t.Errorf("json artifact does not decode: %v", err)
	}
	svg := string(artifacts[FormatSVG])
	if !strings.HasPrefix(svg, "<svg") || !strings.Contains(svg, `class="data-labels"`) {
		t.Errorf("svg artifact missing labels: %.200s", svg)
	}
	if !strings.Contains(string(artifacts[FormatDOT]), `"series:north" -> "axis:year"`) {
		t.Errorf("dot artifact missing edge:\n%s", artifacts[FormatDOT])
	}
}

func TestRenderInvalidFormat(t *testing.T) {
	_, err := Render(context.Background(), model.Layout{Width: 1, Height: 1}, Options{Formats: []string{"gif"}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestRunnerExecuteCaches(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	def := testDef(t)
	opts := Options{Measurer: MeasurerApprox, Formats: []string{FormatJSON, FormatSVG}}

	first, err := r.Execute(context.Background(), def, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run should miss: %+v", first.CacheInfo)
	}
	if first.RunID == "" || first.Layout.RunID != first.RunID {
		t.Errorf("run ID not set on layout: %q vs %q", first.Layout.RunID, first.RunID)
	}
	if first.DefinitionHash == "" {
		t.Error("DefinitionHash not set")
	}
	if first.Stats.AxisCount != 2 || first.Stats.SeriesCount != 2 || first.Stats.LabelCount != 2 {
		t.Errorf("Stats = %+v", first.Stats)
	}
	if c.sets != 3 {
		t.Errorf("cache sets = %d, want 3 (layout + 2 artifacts)", c.sets)
	}

	second, err := r.Execute(context.Background(), def, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit: %+v", second.CacheInfo)
	}
	if second.RunID == first.RunID {
		t.Error("run IDs should differ between runs")
	}
	if string(second.Artifacts[FormatSVG]) != string(first.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from rendered svg")
	}

	var raw map[string]any
	if err := json.Unmarshal(second.Artifacts[FormatJSON], &raw); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if _, ok := raw["run_id"]; ok {
		t.Error("cached json artifact should not carry a run ID")
	}
}

func TestRunnerOptionsChangeKey(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	def := testDef(t)

	if _, err := r.Execute(context.Background(), def, Options{Measurer: MeasurerApprox}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	res, err := r.Execute(context.Background(), def, Options{Measurer: MeasurerApprox, Width: 400})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.CacheInfo.LayoutHit {
		t.Error("different size should not hit the cached layout")
	}
	if res.Layout.Width != 400 {
		t.Errorf("Width = %v, want 400", res.Layout.Width)
	}
}

func TestRunnerRefresh(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	def := testDef(t)
	opts := Options{Measurer: MeasurerApprox}

	if _, err := r.Execute(context.Background(), def, opts); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	opts.Refresh = true
	res, err := r.Execute(context.Background(), def, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Errorf("refresh should bypass the cache: %+v", res.CacheInfo)
	}
}

func TestRunnerInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), testDef(t), Options{Formats: []string{"gif"}})
	if err == nil || !errors.IsInvalid(err) {
		t.Errorf("error = %v, want a validation error", err)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks
	mu   sync.Mutex
	axes []string
	sets []string
}

func (h *recordingHooks) OnAxisArranged(_ context.Context, axis string, _, _ float64, _ int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.axes = append(h.axes, axis)
}

func (h *recordingHooks) OnCacheSet(_ context.Context, keyType string, _ int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sets = append(h.sets, keyType)
}

func TestRunnerReportsAxesAndCacheStages(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	defer observability.Reset()

	r := NewRunner(newMemCache(), nil, nil)
	opts := Options{Measurer: MeasurerApprox, Formats: []string{FormatSVG}}
	if _, err := r.Execute(context.Background(), testDef(t), opts); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	sort.Strings(h.axes)
	if strings.Join(h.axes, ",") != "revenue,year" {
		t.Errorf("arranged axes = %v, want [revenue year]", h.axes)
	}
	if strings.Join(h.sets, ",") != "layout,artifact" {
		t.Errorf("cache set types = %v, want [layout artifact]", h.sets)
	}
}
