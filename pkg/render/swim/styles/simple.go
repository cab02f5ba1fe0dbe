package styles

import (
	"bytes"
	"fmt"

	"github.com/linker268/Swimmer-plot/pkg/plot"
)

// Simple is the default flat style: solid bar fills, plain circles and
// diamonds, no gradients or filters.
type Simple struct {
	// Palette overrides the default theme when non-zero.
	Palette Theme
}

// Theme returns the active palette, falling back to the defaults when
// the zero value is used.
func (s Simple) Theme() Theme {
	if s.Palette.Background == "" {
		return DefaultTheme()
	}
	return s.Palette
}

// RenderDefs writes nothing; the simple style needs no defs.
func (s Simple) RenderDefs(buf *bytes.Buffer) {}

// RenderBar writes a rounded rectangle for one patient.
func (s Simple) RenderBar(buf *bytes.Buffer, b plot.Bar) {
	t := s.Theme()
	fmt.Fprintf(buf,
		`  <rect class="bar" data-patient="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="3" ry="3" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
		escape(b.PatientID), b.X, b.Y, b.Width, b.Height, t.BarFill, t.BarStroke)
}

// RenderMarker writes a circle for response assessments and a diamond
// for the transplant marker. Unknown response categories fall back to
// the theme's fallback color.
func (s Simple) RenderMarker(buf *bytes.Buffer, m plot.Marker) {
	t := s.Theme()
	switch m.Kind {
	case plot.MarkerASCT:
		r := t.MarkerRadius + 1
		fmt.Fprintf(buf,
			`  <polygon class="marker-asct" data-patient="%s" points="%.2f,%.2f %.2f,%.2f %.2f,%.2f %.2f,%.2f" fill="%s"/>`+"\n",
			escape(m.PatientID),
			m.X, m.Y-r, m.X+r, m.Y, m.X, m.Y+r, m.X-r, m.Y,
			t.ASCTColor)
	default:
		fmt.Fprintf(buf,
			`  <circle class="marker-response" data-patient="%s" data-category="%s" cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="#ffffff" stroke-width="1"/>`+"\n",
			escape(m.PatientID), escape(m.CategoryKey), m.X, m.Y, t.MarkerRadius,
			t.CategoryColor(m.CategoryKey))
	}
}

// RenderBracket writes a square bracket spanning the group plus its
// label rotated to read bottom-up.
func (s Simple) RenderBracket(buf *bytes.Buffer, br plot.Bracket) {
	t := s.Theme()
	const arm = 6.0
	fmt.Fprintf(buf,
		`  <path class="bracket" d="M %.2f %.2f H %.2f V %.2f H %.2f" fill="none" stroke="%s" stroke-width="1.5"/>`+"\n",
		br.X+arm, br.Top, br.X, br.Bottom, br.X+arm, t.AxisColor)
	fmt.Fprintf(buf,
		`  <text class="bracket-label" x="%.2f" y="%.2f" text-anchor="middle" font-family="%s" font-size="%d" fill="%s" transform="rotate(-90 %.2f %.2f)">%s</text>`+"\n",
		br.X-8, br.CenterY(), t.FontFamily, t.FontSize, t.TextColor,
		br.X-8, br.CenterY(), escape(br.Label))
}

// RenderAxis writes the baseline, a mark per tick, and tick labels.
func (s Simple) RenderAxis(buf *bytes.Buffer, axis plot.Line, ticks []plot.Tick) {
	t := s.Theme()
	fmt.Fprintf(buf,
		`  <line class="axis" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1.5"/>`+"\n",
		axis.X1, axis.Y1, axis.X2, axis.Y2, t.AxisColor)
	for _, tick := range ticks {
		fmt.Fprintf(buf,
			`  <line class="tick" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1"/>`+"\n",
			tick.X, tick.Y, tick.X, tick.Y+6, t.AxisColor)
		fmt.Fprintf(buf,
			`  <text class="tick-label" x="%.2f" y="%.2f" text-anchor="middle" font-family="%s" font-size="%d" fill="%s">%s</text>`+"\n",
			tick.X, tick.Y+20, t.FontFamily, t.FontSize, t.TextColor, escape(tick.Label))
	}
}

// RenderGrid writes dashed vertical guides.
func (s Simple) RenderGrid(buf *bytes.Buffer, grid []plot.Line) {
	t := s.Theme()
	for _, g := range grid {
		fmt.Fprintf(buf,
			`  <line class="grid" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1" stroke-dasharray="4,4"/>`+"\n",
			g.X1, g.Y1, g.X2, g.Y2, t.GridColor)
	}
}

// RenderText writes a positioned label.
func (s Simple) RenderText(buf *bytes.Buffer, l Label) {
	t := s.Theme()
	anchor := l.Anchor
	if anchor == "" {
		anchor = "start"
	}
	size := l.FontSize
	if size == 0 {
		size = t.FontSize
	}
	weight := "normal"
	if l.Bold {
		weight = "bold"
	}
	fmt.Fprintf(buf,
		`  <text x="%.2f" y="%.2f" text-anchor="%s" font-family="%s" font-size="%d" font-weight="%s" fill="%s">%s</text>`+"\n",
		l.X, l.Y, anchor, t.FontFamily, size, weight, t.TextColor, escape(l.Text))
}
