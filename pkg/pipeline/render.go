package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/chartlayout/pkg/model"
	"github.com/matzehuels/chartlayout/pkg/render"
	"github.com/matzehuels/chartlayout/pkg/render/topology"
	"github.com/matzehuels/chartlayout/pkg/render/wireframe"
)

// Render generates output artifacts in the requested formats.
//
// PNG and PDF are converted from the wireframe SVG and require rsvg-convert.
func Render(ctx context.Context, l model.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var svg []byte
	wire := func() []byte {
		if svg == nil {
			svg = wireframe.Render(l, wireframeOptions(opts)...)
		}
		return svg
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = model.MarshalLayout(l)
		case FormatSVG:
			data = wire()
		case FormatPNG:
			data, err = render.ToPNG(ctx, wire(), opts.Scale)
		case FormatPDF:
			data, err = render.ToPDF(ctx, wire())
		case FormatDOT:
			data = []byte(topology.ToDOT(l, topology.Options{Detailed: opts.Detailed}))
		case FormatTopology:
			data, err = topology.RenderSVG(ctx, topology.ToDOT(l, topology.Options{Detailed: opts.Detailed}))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func wireframeOptions(opts Options) []wireframe.Option {
	var wo []wireframe.Option
	if opts.ShowLabels {
		wo = append(wo, wireframe.WithLabels())
	}
	if opts.ShowGrid {
		wo = append(wo, wireframe.WithGrid())
	}
	if opts.ShowTitle {
		wo = append(wo, wireframe.WithTitle())
	}
	return wo
}
