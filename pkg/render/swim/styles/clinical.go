package styles

import (
	"bytes"
	"fmt"

	"github.com/linker268/Swimmer-plot/pkg/plot"
)

// Clinical layers publication touches on top of Simple: a vertical bar
// gradient and a soft drop shadow. Everything else is inherited.
type Clinical struct {
	Simple
}

// RenderDefs writes the bar gradient and shadow filter.
func (c Clinical) RenderDefs(buf *bytes.Buffer) {
	t := c.Theme()
	buf.WriteString("  <defs>\n")
	fmt.Fprintf(buf, `    <linearGradient id="bar-fill" x1="0" y1="0" x2="0" y2="1">
      <stop offset="0%%" stop-color="%s" stop-opacity="0.75"/>
      <stop offset="100%%" stop-color="%s"/>
    </linearGradient>
`, t.BarFill, t.BarFill)
	buf.WriteString(`    <filter id="bar-shadow" x="-10%" y="-30%" width="120%" height="160%">
      <feDropShadow dx="0" dy="1" stdDeviation="1" flood-opacity="0.25"/>
    </filter>
`)
	buf.WriteString("  </defs>\n")
}

// RenderBar draws the bar with the gradient fill and shadow.
func (c Clinical) RenderBar(buf *bytes.Buffer, b plot.Bar) {
	t := c.Theme()
	fmt.Fprintf(buf,
		`  <rect class="bar" data-patient="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="3" ry="3" fill="url(#bar-fill)" stroke="%s" stroke-width="1" filter="url(#bar-shadow)"/>`+"\n",
		escape(b.PatientID), b.X, b.Y, b.Width, b.Height, t.BarStroke)
}
