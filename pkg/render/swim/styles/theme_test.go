package styles

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultThemePalette(t *testing.T) {
	theme := DefaultTheme()

	for _, code := range []string{"CR", "PR", "SD", "PD"} {
		if theme.Categories[code] == "" {
			t.Errorf("default palette missing category %s", code)
		}
	}
	if theme.CategoryColor("unheard-of") != theme.Fallback {
		t.Error("unknown category should resolve to fallback color")
	}
}

func TestLoadThemeOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.toml")
	content := `
bar_fill = "#123456"
font_size = 14

[categories]
CR = "#000000"
MR = "#abcdef"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	theme, err := LoadTheme(path)
	if err != nil {
		t.Fatalf("LoadTheme: %v", err)
	}

	if theme.BarFill != "#123456" {
		t.Errorf("BarFill = %q, want overridden value", theme.BarFill)
	}
	if theme.FontSize != 14 {
		t.Errorf("FontSize = %d, want 14", theme.FontSize)
	}
	// Overridden and new categories merge into the defaults.
	if theme.Categories["CR"] != "#000000" {
		t.Errorf("CR = %q, want override", theme.Categories["CR"])
	}
	if theme.Categories["MR"] != "#abcdef" {
		t.Errorf("MR = %q, want new entry", theme.Categories["MR"])
	}
	if theme.Categories["PD"] != DefaultTheme().Categories["PD"] {
		t.Error("untouched default categories should survive the overlay")
	}
	// Fields the file does not name keep their defaults.
	if theme.Background != DefaultTheme().Background {
		t.Error("background should keep its default")
	}
}

func TestLoadThemeBadFile(t *testing.T) {
	if _, err := LoadTheme(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing theme file should error")
	}

	path := filepath.Join(t.TempDir(), "broken.toml")
	_ = os.WriteFile(path, []byte("bar_fill = ["), 0o644)
	if _, err := LoadTheme(path); err == nil {
		t.Error("malformed theme file should error")
	}
}
