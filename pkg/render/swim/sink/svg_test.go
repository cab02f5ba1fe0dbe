package sink

import (
	"bytes"
	"strings"
	"testing"

	"github.com/linker268/Swimmer-plot/pkg/plot"
	"github.com/linker268/Swimmer-plot/pkg/render/swim/styles"
	"github.com/linker268/Swimmer-plot/pkg/trial"
)

func testGeometry(t *testing.T) plot.Geometry {
	t.Helper()

	patients := []trial.Patient{
		{
			ID: "Patient 1", Cohort: "A", DurationMonths: 7.5,
			Events: []trial.ResponseEvent{
				{MonthOffset: 3, Category: "PR"},
				{MonthOffset: 6, Category: "CR"},
			},
			ASCTMonthOffset: 4.5, HasASCT: true,
		},
		{ID: "Patient 2", Cohort: "B", DurationMonths: 4},
	}

	groups := plot.Organize(patients, plot.SortDuration, true)
	axis := plot.PlanAxis(patients)
	return plot.BuildGeometry(groups, axis, plot.Config{
		BarHeight: 20, BarGap: 10, ShowGrid: true, GroupByCohort: true,
	})
}

func TestRenderSVGStructure(t *testing.T) {
	svg := string(RenderSVG(testGeometry(t)))

	expected := []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		`</svg>`,
		`class="bar"`,
		`data-patient="Patient 1"`,
		`data-patient="Patient 2"`,
		`class="marker-response"`,
		`class="marker-asct"`,
		`class="axis"`,
		`class="grid"`,
		`class="bracket"`,
		`>Patient 1</text>`,
		`Months since C1D1`,
	}
	for _, want := range expected {
		if !strings.Contains(svg, want) {
			t.Errorf("RenderSVG() output missing %q", want)
		}
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	g := testGeometry(t)

	first := RenderSVG(g, WithTitle("Trial 42"), WithLegend())
	second := RenderSVG(g, WithTitle("Trial 42"), WithLegend())

	if !bytes.Equal(first, second) {
		t.Error("RenderSVG() is not byte-for-byte deterministic")
	}
}

func TestRenderSVGTitle(t *testing.T) {
	g := testGeometry(t)

	plain := string(RenderSVG(g))
	if strings.Contains(plain, "Trial 42") {
		t.Error("title should be absent without WithTitle")
	}

	titled := string(RenderSVG(g, WithTitle("A & B trial")))
	if !strings.Contains(titled, "A &amp; B trial") {
		t.Error("title should be XML-escaped in the output")
	}
}

func TestRenderSVGLegend(t *testing.T) {
	g := testGeometry(t)

	svg := string(RenderSVG(g, WithLegend()))
	for _, want := range []string{">CR</text>", ">PR</text>", ">ASCT</text>"} {
		if !strings.Contains(svg, want) {
			t.Errorf("legend output missing %q", want)
		}
	}

	bare := string(RenderSVG(g))
	if strings.Contains(bare, ">ASCT</text>") {
		t.Error("legend should be absent without WithLegend")
	}
}

func TestRenderSVGWithStyle(t *testing.T) {
	g := testGeometry(t)

	svg := string(RenderSVG(g, WithStyle(styles.Clinical{})))
	if !strings.Contains(svg, `url(#bar-fill)`) {
		t.Error("clinical style should render gradient bars")
	}
}

func TestRenderSVGNoGridWhenDisabled(t *testing.T) {
	patients := []trial.Patient{{ID: "p", Cohort: "A", DurationMonths: 3}}
	groups := plot.Organize(patients, plot.SortID, false)
	g := plot.BuildGeometry(groups, plot.PlanAxis(patients), plot.Config{BarHeight: 20, BarGap: 10})

	svg := string(RenderSVG(g))
	if strings.Contains(svg, `class="grid"`) {
		t.Error("grid lines should be absent when ShowGrid is off")
	}
	if !strings.Contains(svg, `class="axis"`) {
		t.Error("axis baseline must always be present")
	}
}

func TestRenderJSONRoundTrip(t *testing.T) {
	g := testGeometry(t)

	data, err := RenderJSON(g)
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	parsed, err := plot.UnmarshalGeometry(data)
	if err != nil {
		t.Fatalf("UnmarshalGeometry: %v", err)
	}
	if parsed.CanvasHeight != g.CanvasHeight || len(parsed.Bars) != len(g.Bars) {
		t.Error("geometry changed across the JSON round trip")
	}
}
