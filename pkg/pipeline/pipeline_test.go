package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/linker268/Swimmer-plot/pkg/cache"
	"github.com/linker268/Swimmer-plot/pkg/errors"
	"github.com/linker268/Swimmer-plot/pkg/plot"
)

const fixtureCSV = `Patient_ID,Cohort,C1D1,ASCT_date,Resp_date1,Response1,Resp_date2,Response2
p1,A,2023-01-01,2023-05-15,2023-04-01,PR,2023-07-01,CR
p2,B,2023-02-01,,2023-03-15,SD,,
,A,2023-03-01,,,,,
skipped,C,,,2023-04-01,PR,,
`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trial.csv")
	if err := os.WriteFile(path, []byte(fixtureCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{Input: "trial.csv"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}

	if opts.SortBy != "duration" {
		t.Errorf("SortBy = %q, want duration", opts.SortBy)
	}
	if opts.BarHeight != DefaultBarHeight || opts.BarGap != DefaultBarGap {
		t.Errorf("bar defaults not applied: %d/%d", opts.BarHeight, opts.BarGap)
	}
	if !opts.GridEnabled() {
		t.Error("grid should default to on")
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Style != "simple" {
		t.Errorf("Style = %q, want simple", opts.Style)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"missing input", Options{}, errors.ErrCodeInvalidInput},
		{"bad source", Options{Source: "ftp"}, errors.ErrCodeInvalidSource},
		{"mongo without uri", Options{Source: "mongo"}, errors.ErrCodeInvalidSource},
		{"bad sort", Options{Input: "x.csv", SortBy: "alphabetical"}, errors.ErrCodeInvalidSort},
		{"bad format", Options{Input: "x.csv", Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"bad style", Options{Input: "x.csv", Style: "neon"}, errors.ErrCodeInvalidStyle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("want %s, got %v", tt.code, err)
			}
		})
	}
}

func TestBarHeightClamping(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"too small", 4, plot.MinBarHeight},
		{"too large", 99, plot.MaxBarHeight},
		{"in range", 24, 24},
		{"zero uses default", 0, DefaultBarHeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{BarHeight: tt.in}
			opts.SetLayoutDefaults()
			if opts.BarHeight != tt.want {
				t.Errorf("BarHeight = %d, want %d", opts.BarHeight, tt.want)
			}
		})
	}
}

func TestExecuteFullPipeline(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Input:         writeFixture(t),
		GroupByCohort: true,
		Formats:       []string{FormatSVG, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	// p1, p2, and the blank-ID row survive; "skipped" lacks C1D1.
	if result.Stats.PatientCount != 3 {
		t.Errorf("PatientCount = %d, want 3", result.Stats.PatientCount)
	}
	if result.Stats.DroppedRows != 1 {
		t.Errorf("DroppedRows = %d, want 1", result.Stats.DroppedRows)
	}
	if result.Stats.EventCount != 3 {
		t.Errorf("EventCount = %d, want 3", result.Stats.EventCount)
	}
	if result.PatientsHash == "" {
		t.Error("PatientsHash should be set")
	}

	svg := result.Artifacts[FormatSVG]
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("svg artifact missing <svg element")
	}
	if !bytes.Contains(svg, []byte(`data-patient="p1"`)) {
		t.Error("svg artifact missing p1 bar")
	}

	if _, err := plot.UnmarshalGeometry(result.Artifacts[FormatJSON]); err != nil {
		t.Errorf("json artifact should be a geometry document: %v", err)
	}
}

func TestExecuteCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	opts := Options{Input: writeFixture(t)}
	ctx := context.Background()

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.ParseHit || first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss everywhere")
	}

	second, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.ParseHit || !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit everywhere, got %+v", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached artifact differs from rendered artifact")
	}

	// Refresh bypasses the parse cache.
	refreshOpts := opts
	refreshOpts.Refresh = true
	third, err := runner.Execute(ctx, refreshOpts)
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if third.CacheInfo.ParseHit {
		t.Error("refresh run should reparse")
	}
}

func TestExecuteLayoutOptionsChangeCacheKey(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	ctx := context.Background()
	path := writeFixture(t)

	if _, err := runner.Execute(ctx, Options{Input: path}); err != nil {
		t.Fatal(err)
	}
	grouped, err := runner.Execute(ctx, Options{Input: path, GroupByCohort: true})
	if err != nil {
		t.Fatal(err)
	}
	if grouped.CacheInfo.LayoutHit {
		t.Error("different layout options must not reuse cached geometry")
	}
}

func TestExecuteMissingFile(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{
		Input: filepath.Join(t.TempDir(), "absent.csv"),
	})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("want FILE_NOT_FOUND, got %v", err)
	}
}

func TestRenderBadTheme(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	opts := Options{
		Input: "unused.csv",
		Theme: filepath.Join(t.TempDir(), "absent.toml"),
	}
	opts.SetRenderDefaults()
	_, err := Render(plot.Geometry{CanvasWidth: 900, CanvasHeight: 200, DomainMax: 21}, opts)
	if !errors.Is(err, errors.ErrCodeInvalidTheme) {
		t.Errorf("want INVALID_THEME, got %v", err)
	}
}

func TestComputeGeometrySortAffectsOrder(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	out, err := runner.Parse(context.Background(), Options{Input: writeFixture(t)})
	if err != nil {
		t.Fatal(err)
	}

	byDuration, err := ComputeGeometry(out.Patients, Options{SortBy: "duration"})
	if err != nil {
		t.Fatal(err)
	}
	// p1 runs Jan-Jul (~5.9 months), longest, so it draws first.
	if byDuration.Bars[0].PatientID != "p1" {
		t.Errorf("duration sort: first bar = %s, want p1", byDuration.Bars[0].PatientID)
	}

	byID, err := ComputeGeometry(out.Patients, Options{SortBy: "id"})
	if err != nil {
		t.Fatal(err)
	}
	// "Patient 3" (defaulted ID for the blank row) sorts before p1/p2.
	if !strings.HasPrefix(byID.Bars[0].PatientID, "Patient ") {
		t.Errorf("id sort: first bar = %s, want the defaulted patient", byID.Bars[0].PatientID)
	}
}

func TestComputeGeometryAxisCoversAllPatients(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	out, err := runner.Parse(context.Background(), Options{Input: writeFixture(t)})
	if err != nil {
		t.Fatal(err)
	}

	g, err := ComputeGeometry(out.Patients, Options{SortBy: "duration", GroupByCohort: true})
	if err != nil {
		t.Fatal(err)
	}

	// Domain is planned over the full patient set, independent of how
	// grouping slices it: a 3k+3 multiple strictly above every duration.
	if g.DomainMax <= 0 || int(g.DomainMax)%3 != 0 {
		t.Errorf("DomainMax = %v, want a positive multiple of 3", g.DomainMax)
	}
	for _, p := range out.Patients {
		if p.DurationMonths >= g.DomainMax {
			t.Errorf("duration %v not strictly below DomainMax %v", p.DurationMonths, g.DomainMax)
		}
	}
	if len(g.Bars) != len(out.Patients) {
		t.Errorf("bars = %d, want one per patient (%d)", len(g.Bars), len(out.Patients))
	}
}
