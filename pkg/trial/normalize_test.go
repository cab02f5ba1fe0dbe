package trial

import (
	"math"
	"testing"
)

const offsetTol = 1e-9

func TestNormalizeDiscardsMissingReference(t *testing.T) {
	rows := []RawRow{
		{ColReference: "2023-01-01", ColPatientID: "P1"},
		{ColPatientID: "P2"},                             // no reference at all
		{ColReference: "garbage", ColPatientID: "P3"},    // unresolvable
		{ColReference: "", ColPatientID: "P4"},           // blank
		{ColReference: "2023-02-01", ColPatientID: "P5"}, // valid
	}

	patients := NormalizeAll(rows)
	if len(patients) != 2 {
		t.Fatalf("NormalizeAll kept %d rows, want 2", len(patients))
	}
	if patients[0].ID != "P1" || patients[1].ID != "P5" {
		t.Errorf("kept IDs = %q, %q, want P1, P5", patients[0].ID, patients[1].ID)
	}
}

func TestNormalizeDefaults(t *testing.T) {
	p, ok := Normalize(RawRow{ColReference: "2023-01-01"}, 4)
	if !ok {
		t.Fatal("Normalize failed on valid reference")
	}
	if p.ID != "Patient 5" {
		t.Errorf("default ID = %q, want %q", p.ID, "Patient 5")
	}
	if p.Cohort != "Unknown" {
		t.Errorf("default cohort = %q, want %q", p.Cohort, "Unknown")
	}
}

func TestNormalizeBlankMeansAbsent(t *testing.T) {
	p, ok := Normalize(RawRow{
		ColReference: "2023-01-01",
		ColPatientID: "   ",
		ColCohort:    "",
	}, 0)
	if !ok {
		t.Fatal("Normalize failed")
	}
	if p.ID != "Patient 1" {
		t.Errorf("whitespace ID = %q, want default", p.ID)
	}
	if p.Cohort != "Unknown" {
		t.Errorf("blank cohort = %q, want Unknown", p.Cohort)
	}
}

func TestNormalizeResponseEvents(t *testing.T) {
	row := RawRow{
		ColReference:       "2023-01-01",
		RespDateCol(1):     "2023-04-01",
		RespCategoryCol(1): "PR",
		RespDateCol(2):     "junk", // unresolvable date drops only this slot
		RespCategoryCol(2): "CR",
		RespDateCol(3):     "2023-07-01", // category missing, slot skipped
		RespDateCol(5):     "2022-12-01", // predates reference
		RespCategoryCol(5): "SD",
	}

	p, ok := Normalize(row, 0)
	if !ok {
		t.Fatal("Normalize failed")
	}
	if len(p.Events) != 2 {
		t.Fatalf("got %d events, want 2", len(p.Events))
	}

	// 90 days / 30.44 ≈ 2.9566
	wantOffset := 90.0 / DaysPerMonth
	if math.Abs(p.Events[0].MonthOffset-wantOffset) > offsetTol {
		t.Errorf("event 1 offset = %v, want %v", p.Events[0].MonthOffset, wantOffset)
	}
	if p.Events[0].Category != "PR" {
		t.Errorf("event 1 category = %q, want PR", p.Events[0].Category)
	}

	// Negative offsets are preserved, not clamped.
	if p.Events[1].MonthOffset >= 0 {
		t.Errorf("pre-reference event offset = %v, want negative", p.Events[1].MonthOffset)
	}
}

func TestNormalizeDurationInvariant(t *testing.T) {
	tests := []struct {
		name string
		row  RawRow
		want float64
	}{
		{
			name: "no events floors to one",
			row:  RawRow{ColReference: "2023-01-01"},
			want: 1,
		},
		{
			name: "only negative offsets floors to one",
			row: RawRow{
				ColReference:       "2023-06-01",
				RespDateCol(1):     "2023-01-01",
				RespCategoryCol(1): "PD",
			},
			want: 1,
		},
		{
			name: "max event offset wins",
			row: RawRow{
				ColReference:       "2023-01-01",
				RespDateCol(1):     "2023-04-01",
				RespCategoryCol(1): "PR",
			},
			want: 90.0 / DaysPerMonth,
		},
		{
			name: "asct offset wins when later",
			row: RawRow{
				ColReference:       "2023-01-01",
				RespDateCol(1):     "2023-04-01",
				RespCategoryCol(1): "PR",
				ColASCTDate:        "2024-01-01",
			},
			want: 365.0 / DaysPerMonth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := Normalize(tt.row, 0)
			if !ok {
				t.Fatal("Normalize failed")
			}
			if math.Abs(p.DurationMonths-tt.want) > offsetTol {
				t.Errorf("DurationMonths = %v, want %v", p.DurationMonths, tt.want)
			}
			if p.DurationMonths < MinDurationMonths {
				t.Errorf("DurationMonths = %v below floor", p.DurationMonths)
			}
		})
	}
}

func TestNormalizeShortDurationFloored(t *testing.T) {
	// ~15 days of follow-up: raw duration ≈ 0.49 months, floored to exactly 1.
	p, ok := Normalize(RawRow{
		ColReference:       "2023-01-01",
		RespDateCol(1):     "2023-01-16",
		RespCategoryCol(1): "SD",
	}, 0)
	if !ok {
		t.Fatal("Normalize failed")
	}
	if p.DurationMonths != 1 {
		t.Errorf("DurationMonths = %v, want exactly 1", p.DurationMonths)
	}
}

func TestNormalizeASCT(t *testing.T) {
	p, ok := Normalize(RawRow{
		ColReference: "2023-01-01",
		ColASCTDate:  "2023-03-02",
	}, 0)
	if !ok {
		t.Fatal("Normalize failed")
	}
	if !p.HasASCT {
		t.Fatal("HasASCT = false, want true")
	}
	want := 60.0 / DaysPerMonth
	if math.Abs(p.ASCTMonthOffset-want) > offsetTol {
		t.Errorf("ASCTMonthOffset = %v, want %v", p.ASCTMonthOffset, want)
	}

	p2, _ := Normalize(RawRow{ColReference: "2023-01-01", ColASCTDate: "junk"}, 0)
	if p2.HasASCT {
		t.Error("unresolvable ASCT date should leave HasASCT false")
	}
}

func TestNormalizeSerialDates(t *testing.T) {
	// 44927 = 2023-01-01, 45017 = 2023-04-01 in spreadsheet serials.
	p, ok := Normalize(RawRow{
		ColReference:       44927.0,
		RespDateCol(1):     45017.0,
		RespCategoryCol(1): "CR",
	}, 0)
	if !ok {
		t.Fatal("Normalize failed on serial reference")
	}
	if len(p.Events) != 1 {
		t.Fatalf("got %d events, want 1", len(p.Events))
	}
	want := 90.0 / DaysPerMonth
	if math.Abs(p.Events[0].MonthOffset-want) > offsetTol {
		t.Errorf("offset = %v, want %v", p.Events[0].MonthOffset, want)
	}
}

func TestEventCount(t *testing.T) {
	patients := []Patient{
		{Events: []ResponseEvent{{}, {}}},
		{},
		{Events: []ResponseEvent{{}}},
	}
	if got := EventCount(patients); got != 3 {
		t.Errorf("EventCount = %d, want 3", got)
	}
}
