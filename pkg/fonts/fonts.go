// Package fonts measures label text for axis and data-label layout.
//
// The default [Measurer] uses the Go Regular font embedded in
// golang.org/x/image, so measurements are identical on every platform.
// [Approx] is a metric-free estimate for callers that do not need real
// glyph advances.
package fonts

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/chartlayout/pkg/geom"
)

// FontFamily is the CSS font-family matching the measurement font.
const FontFamily = "Go"

// FallbackFontFamily provides fallback fonts for viewers without Go Regular.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Arial, sans-serif`

// Measurer measures single-line text with an OpenType font. Faces are
// created once per font size. It is safe for concurrent use.
type Measurer struct {
	font *opentype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// New returns a measurer for the given TrueType/OpenType font data.
func New(data []byte) (*Measurer, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fonts: parse: %w", err)
	}
	return &Measurer{font: f, faces: make(map[float64]font.Face)}, nil
}

var (
	defaultMeasurer     *Measurer
	defaultMeasurerOnce sync.Once
)

// Default returns the shared Go Regular measurer.
func Default() *Measurer {
	defaultMeasurerOnce.Do(func() {
		m, err := New(goregular.TTF)
		if err != nil {
			// embedded font; unreachable in practice
			m = &Measurer{}
		}
		defaultMeasurer = m
	})
	return defaultMeasurer
}

// MeasureText returns the advance width and line height of text at size
// pixels per em.
func (m *Measurer) MeasureText(text string, size float64) geom.Size {
	if text == "" || !(size > 0) {
		return geom.Size{}
	}
	face, err := m.face(size)
	if err != nil {
		return Approx{}.MeasureText(text, size)
	}
	m.mu.Lock()
	adv := font.MeasureString(face, text)
	met := face.Metrics()
	m.mu.Unlock()
	return geom.Size{
		Width:  float64(adv) / 64,
		Height: float64(met.Ascent+met.Descent) / 64,
	}
}

func (m *Measurer) face(size float64) (font.Face, error) {
	if m.font == nil {
		return nil, fmt.Errorf("fonts: no font loaded")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("fonts: face at %gpx: %w", size, err)
	}
	m.faces[size] = f
	return f, nil
}

// Close releases cached faces.
func (m *Measurer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for size, f := range m.faces {
		_ = f.Close()
		delete(m.faces, size)
	}
	return nil
}

// DefaultCharWidth is the average advance of a character, as a fraction of
// the font size, used by Approx.
const DefaultCharWidth = 0.55

// Approx estimates text size from the rune count.
type Approx struct {
	// CharWidth is the advance per rune as a fraction of the font size.
	// Zero means DefaultCharWidth.
	CharWidth float64
}

// MeasureText implements the text measurer contract.
func (a Approx) MeasureText(text string, size float64) geom.Size {
	if text == "" || !(size > 0) {
		return geom.Size{}
	}
	cw := a.CharWidth
	if cw <= 0 {
		cw = DefaultCharWidth
	}
	return geom.Size{Width: float64(utf8.RuneCountInString(text)) * size * cw, Height: size}
}
