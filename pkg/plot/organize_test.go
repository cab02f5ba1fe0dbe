package plot

import (
	"testing"

	"github.com/linker268/Swimmer-plot/pkg/trial"
)

func TestOrganizeByIDSingleGroup(t *testing.T) {
	patients := []trial.Patient{
		{ID: "P3", DurationMonths: 5},
		{ID: "P1", DurationMonths: 9},
		{ID: "P2", DurationMonths: 1},
	}

	groups := Organize(patients, SortID, false)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if groups[0].Label != AllLabel {
		t.Errorf("label = %q, want %q", groups[0].Label, AllLabel)
	}

	got := ids(groups[0].Patients)
	want := []string{"P1", "P2", "P3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestOrganizeByDurationStableTies(t *testing.T) {
	patients := []trial.Patient{
		{ID: "A", DurationMonths: 4},
		{ID: "B", DurationMonths: 7},
		{ID: "C", DurationMonths: 4}, // tie with A, must stay after A
		{ID: "D", DurationMonths: 12},
	}

	groups := Organize(patients, SortDuration, false)
	got := ids(groups[0].Patients)
	want := []string{"D", "B", "A", "C"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestOrganizeGroupsLexicographic(t *testing.T) {
	patients := []trial.Patient{
		{ID: "P1", Cohort: "B", DurationMonths: 3},
		{ID: "P2", Cohort: "A", DurationMonths: 5},
		{ID: "P3", Cohort: "B", DurationMonths: 8},
		{ID: "P4", Cohort: "A", DurationMonths: 2},
	}

	groups := Organize(patients, SortDuration, true)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Label != "A" || groups[1].Label != "B" {
		t.Fatalf("group order = %q, %q, want A, B", groups[0].Label, groups[1].Label)
	}

	// Intra-group order is from the sort phase: descending duration.
	if got := ids(groups[0].Patients); got[0] != "P2" || got[1] != "P4" {
		t.Errorf("cohort A order = %v, want [P2 P4]", got)
	}
	if got := ids(groups[1].Patients); got[0] != "P3" || got[1] != "P1" {
		t.Errorf("cohort B order = %v, want [P3 P1]", got)
	}
}

func TestOrganizeDoesNotMutateInput(t *testing.T) {
	patients := []trial.Patient{
		{ID: "Z", DurationMonths: 1},
		{ID: "A", DurationMonths: 2},
	}
	Organize(patients, SortID, false)
	if patients[0].ID != "Z" {
		t.Error("Organize mutated its input slice")
	}
}

func TestOrganizeEmpty(t *testing.T) {
	groups := Organize(nil, SortDuration, false)
	if len(groups) != 1 || len(groups[0].Patients) != 0 {
		t.Errorf("empty input: got %+v, want one empty All group", groups)
	}
	if got := Organize(nil, SortDuration, true); len(got) != 0 {
		t.Errorf("empty grouped input: got %d groups, want 0", len(got))
	}
}

func ids(patients []trial.Patient) []string {
	out := make([]string, len(patients))
	for i, p := range patients {
		out[i] = p.ID
	}
	return out
}
