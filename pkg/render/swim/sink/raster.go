package sink

import (
	"github.com/linker268/Swimmer-plot/pkg/plot"
	"github.com/linker268/Swimmer-plot/pkg/render"
)

// PNG render scale. 2x keeps marker strokes crisp on retina displays.
const pngScale = 2.0

// RenderPNG renders the geometry to SVG and converts it to PNG.
// Requires rsvg-convert on PATH.
func RenderPNG(g plot.Geometry, opts ...SVGOption) ([]byte, error) {
	return render.ToPNG(RenderSVG(g, opts...), pngScale)
}

// RenderPDF renders the geometry to SVG and converts it to PDF.
// Requires rsvg-convert on PATH.
func RenderPDF(g plot.Geometry, opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(RenderSVG(g, opts...))
}
