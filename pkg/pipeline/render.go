package pipeline

import (
	"github.com/linker268/Swimmer-plot/pkg/errors"
	"github.com/linker268/Swimmer-plot/pkg/plot"
	"github.com/linker268/Swimmer-plot/pkg/render/swim/sink"
	"github.com/linker268/Swimmer-plot/pkg/render/swim/styles"
)

// Render generates output artifacts in the requested formats.
func Render(g plot.Geometry, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	svgOpts, err := buildSVGOptions(opts)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(g, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(g, svgOpts...)
		case FormatPDF:
			data, err = sink.RenderPDF(g, svgOpts...)
		case FormatJSON:
			data, err = sink.RenderJSON(g)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// buildSVGOptions resolves theme and style into sink options.
func buildSVGOptions(opts Options) ([]sink.SVGOption, error) {
	theme := styles.DefaultTheme()
	if opts.Theme != "" {
		loaded, err := styles.LoadTheme(opts.Theme)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidTheme, err, "load theme %s", opts.Theme)
		}
		theme = loaded
	}

	style, err := styles.ForName(opts.Style, theme)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidStyle, err, "resolve style")
	}

	svgOpts := []sink.SVGOption{sink.WithStyle(style)}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}
	if opts.Legend {
		svgOpts = append(svgOpts, sink.WithLegend())
	}
	return svgOpts, nil
}
