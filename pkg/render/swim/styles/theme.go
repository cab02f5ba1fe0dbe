package styles

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Theme holds the visual parameters a style draws with. All fields have
// defaults; a TOML theme file overrides only what it names.
type Theme struct {
	Background string `toml:"background"`
	BarFill    string `toml:"bar_fill"`
	BarStroke  string `toml:"bar_stroke"`
	AxisColor  string `toml:"axis_color"`
	GridColor  string `toml:"grid_color"`
	TextColor  string `toml:"text_color"`
	FontFamily string `toml:"font_family"`
	FontSize   int    `toml:"font_size"`

	// MarkerRadius is the response-marker circle radius in pixels; the
	// ASCT diamond uses the same half-extent.
	MarkerRadius float64 `toml:"marker_radius"`

	// Categories maps response codes to marker colors. Codes absent from
	// the map render with Fallback.
	Categories map[string]string `toml:"categories"`
	Fallback   string            `toml:"fallback"`
	ASCTColor  string            `toml:"asct_color"`
}

// DefaultTheme returns the built-in clinical palette.
func DefaultTheme() Theme {
	return Theme{
		Background:   "#ffffff",
		BarFill:      "#cfd8dc",
		BarStroke:    "#90a4ae",
		AxisColor:    "#333333",
		GridColor:    "#e0e0e0",
		TextColor:    "#333333",
		FontFamily:   "Helvetica, Arial, sans-serif",
		FontSize:     12,
		MarkerRadius: 5,
		Categories: map[string]string{
			"CR": "#2e7d32", // complete response
			"PR": "#66bb6a", // partial response
			"SD": "#ffb300", // stable disease
			"PD": "#d32f2f", // progressive disease
		},
		Fallback:  "#9e9e9e",
		ASCTColor: "#5e35b1",
	}
}

// LoadTheme reads a TOML theme file and overlays it on the defaults.
// Category entries merge into (rather than replace) the default palette.
func LoadTheme(path string) (Theme, error) {
	overlay := Theme{}
	if _, err := toml.DecodeFile(path, &overlay); err != nil {
		return Theme{}, fmt.Errorf("parse theme %s: %w", path, err)
	}

	t := DefaultTheme()
	if overlay.Background != "" {
		t.Background = overlay.Background
	}
	if overlay.BarFill != "" {
		t.BarFill = overlay.BarFill
	}
	if overlay.BarStroke != "" {
		t.BarStroke = overlay.BarStroke
	}
	if overlay.AxisColor != "" {
		t.AxisColor = overlay.AxisColor
	}
	if overlay.GridColor != "" {
		t.GridColor = overlay.GridColor
	}
	if overlay.TextColor != "" {
		t.TextColor = overlay.TextColor
	}
	if overlay.FontFamily != "" {
		t.FontFamily = overlay.FontFamily
	}
	if overlay.FontSize != 0 {
		t.FontSize = overlay.FontSize
	}
	if overlay.MarkerRadius != 0 {
		t.MarkerRadius = overlay.MarkerRadius
	}
	if overlay.Fallback != "" {
		t.Fallback = overlay.Fallback
	}
	if overlay.ASCTColor != "" {
		t.ASCTColor = overlay.ASCTColor
	}
	for code, color := range overlay.Categories {
		t.Categories[code] = color
	}
	return t, nil
}

// CategoryColor resolves a response code to its marker color, falling back
// to the unknown-category color. Unknown codes are never an error.
func (t Theme) CategoryColor(code string) string {
	if c, ok := t.Categories[code]; ok {
		return c
	}
	return t.Fallback
}
