package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"

	"github.com/linker268/Swimmer-plot/pkg/plot"
)

// Style renders geometry primitives as SVG fragments. Implementations
// write complete elements to the buffer and own all visual decisions;
// the sink owns document structure and element ordering.
type Style interface {
	// RenderDefs writes any <defs> content (gradients, filters).
	RenderDefs(buf *bytes.Buffer)

	// RenderBar writes one patient's time-on-treatment rectangle.
	RenderBar(buf *bytes.Buffer, b plot.Bar)

	// RenderMarker writes a response circle or an ASCT diamond.
	RenderMarker(buf *bytes.Buffer, m plot.Marker)

	// RenderBracket writes a cohort bracket with its rotated label.
	RenderBracket(buf *bytes.Buffer, br plot.Bracket)

	// RenderAxis writes the baseline, tick marks, and tick labels.
	RenderAxis(buf *bytes.Buffer, axis plot.Line, ticks []plot.Tick)

	// RenderGrid writes vertical guide lines.
	RenderGrid(buf *bytes.Buffer, grid []plot.Line)

	// RenderText writes a free-standing label (title, patient IDs).
	RenderText(buf *bytes.Buffer, l Label)

	// Theme exposes the palette the style draws with, so the sink can
	// paint the canvas background and build the legend consistently.
	Theme() Theme
}

// Label is a positioned text element.
type Label struct {
	X, Y     float64
	Text     string
	Anchor   string // "start", "middle", or "end"; empty means "start"
	FontSize int    // 0 means the theme default
	Bold     bool
}

// ForName resolves a style by its CLI name.
func ForName(name string, theme Theme) (Style, error) {
	switch name {
	case "", "simple":
		return Simple{Palette: theme}, nil
	case "clinical":
		return Clinical{Simple{Palette: theme}}, nil
	default:
		return nil, fmt.Errorf("unknown style %q (available: %s)", name, namesList())
	}
}

// Names returns the registered style names, sorted.
func Names() []string {
	names := []string{"simple", "clinical"}
	sort.Strings(names)
	return names
}

func namesList() string {
	var b bytes.Buffer
	for i, n := range Names() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(n)
	}
	return b.String()
}

// escape makes a string safe for use in SVG attribute and text content.
func escape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
