package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/chartlayout/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name string
		xdg  string
		want string
	}{
		{"home fallback", "", filepath.Join(home, ".cache", "chartlayout")},
		{"xdg", "/var/cache/ci", filepath.Join("/var/cache/ci", "chartlayout")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CACHE_HOME", tt.xdg)
			dir, err := cacheDir()
			if err != nil {
				t.Fatalf("cacheDir() error: %v", err)
			}
			if dir != tt.want {
				t.Errorf("cacheDir() = %q, want %q", dir, tt.want)
			}
		})
	}
}

func TestFileCacheUsesChartlayoutDir(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	ch, err := testCLI().newCache(context.Background(), cacheFlags{backend: cacheFile})
	if err != nil {
		t.Fatalf("newCache: %v", err)
	}
	defer ch.Close()

	fc, ok := ch.(*cache.FileCache)
	if !ok {
		t.Fatalf("file backend returned %T", ch)
	}
	if want := filepath.Join(xdg, "chartlayout"); fc.Dir() != want {
		t.Errorf("cache dir = %q, want %q", fc.Dir(), want)
	}
	if info, err := os.Stat(fc.Dir()); err != nil || !info.IsDir() {
		t.Errorf("cache dir not created: %v", err)
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "charts/revenue.yaml", "charts/revenue"},
		{"", "charts/revenue.layout.json", "charts/revenue"},
		{"", "charts/revenue.json", "charts/revenue"},
		{"out/chart.svg", "revenue.yaml", "out/chart"},
		{"out/chart.pdf", "revenue.layout.json", "out/chart"},
		{"out/chart", "revenue.yaml", "out/chart"},
		{"out/chart.v2", "revenue.yaml", "out/chart.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		output, input, format string
		single                bool
		want                  string
	}{
		{"", "revenue.yaml", "svg", true, "revenue.svg"},
		{"", "revenue.layout.json", "png", true, "revenue.png"},
		{"chart.png", "revenue.yaml", "png", true, "chart.png"},
		{"chart.svg", "revenue.yaml", "png", false, "chart.png"},
		{"", "revenue.yaml", "topology", false, "revenue.topology.svg"},
		{"", "revenue.yaml", "dot", false, "revenue.dot"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.output, tt.input, tt.format, tt.single); got != tt.want {
			t.Errorf("outputPath(%q, %q, %q) = %q, want %q", tt.output, tt.input, tt.format, got, tt.want)
		}
	}
}
