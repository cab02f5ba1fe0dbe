package sink

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/linker268/Swimmer-plot/pkg/plot"
	"github.com/linker268/Swimmer-plot/pkg/render/swim/styles"
)

// SVGOption configures RenderSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style  styles.Style
	title  string
	legend bool
}

// WithStyle selects the visual style. Defaults to styles.Simple.
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithTitle draws a centered title above the plot area.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// WithLegend draws a category legend under the axis.
func WithLegend() SVGOption { return func(r *svgRenderer) { r.legend = true } }

// RenderSVG serializes a geometry as a standalone SVG document. The
// output is deterministic: equal geometry and options produce identical
// bytes, which is what makes artifact caching by content hash sound.
func RenderSVG(g plot.Geometry, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	theme := r.style.Theme()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		g.CanvasWidth, g.CanvasHeight, g.CanvasWidth, g.CanvasHeight)

	r.style.RenderDefs(&buf)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
		g.CanvasWidth, g.CanvasHeight, theme.Background)

	if r.title != "" {
		r.style.RenderText(&buf, styles.Label{
			X: g.CanvasWidth / 2, Y: 28,
			Text: r.title, Anchor: "middle", FontSize: theme.FontSize + 6, Bold: true,
		})
	}

	// Back-to-front: grid under bars, markers on top of bars.
	r.style.RenderGrid(&buf, g.Grid)
	for _, br := range g.Brackets {
		r.style.RenderBracket(&buf, br)
	}
	for _, b := range g.Bars {
		r.style.RenderBar(&buf, b)
	}
	for _, b := range g.Bars {
		r.style.RenderText(&buf, styles.Label{
			X: b.X - 8, Y: b.CenterY() + 4,
			Text: b.PatientID, Anchor: "end",
		})
	}
	for _, m := range g.Markers {
		r.style.RenderMarker(&buf, m)
	}
	r.style.RenderAxis(&buf, g.Axis, g.Ticks)
	r.style.RenderText(&buf, styles.Label{
		X: g.Axis.X1 + (g.Axis.X2-g.Axis.X1)/2, Y: g.Axis.Y1 + 38,
		Text: "Months since C1D1", Anchor: "middle",
	})

	if r.legend {
		renderLegend(&buf, r.style, g)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Simple{}}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// renderLegend lists the response categories present in the geometry,
// sorted for stable output, plus the transplant diamond when used.
func renderLegend(buf *bytes.Buffer, style styles.Style, g plot.Geometry) {
	seen := make(map[string]struct{})
	hasASCT := false
	for _, m := range g.Markers {
		switch m.Kind {
		case plot.MarkerASCT:
			hasASCT = true
		default:
			seen[m.CategoryKey] = struct{}{}
		}
	}
	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	x := g.Axis.X1
	y := g.CanvasHeight - 12.0
	for _, c := range categories {
		style.RenderMarker(buf, plot.Marker{Kind: plot.MarkerResponse, CategoryKey: c, X: x, Y: y - 4})
		style.RenderText(buf, styles.Label{X: x + 10, Y: y, Text: c})
		x += 70
	}
	if hasASCT {
		style.RenderMarker(buf, plot.Marker{Kind: plot.MarkerASCT, X: x, Y: y - 4})
		style.RenderText(buf, styles.Label{X: x + 10, Y: y, Text: "ASCT"})
	}
}
