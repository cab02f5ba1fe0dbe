// Package trial normalizes raw clinical-trial intake rows into patients.
//
// Each row describes one patient: a treatment-start reference date (C1D1),
// up to ten paired response-assessment columns, and an optional stem-cell
// transplant date. Normalization converts every event date into a signed
// offset in months from the reference date and derives the patient's
// time-on-treatment duration. Rows without a resolvable reference date are
// discarded: a patient with no treatment start cannot be placed on a
// timeline, and such rows are expected noise in real intake sheets.
package trial

// DaysPerMonth is the fixed average month length used for all month-offset
// arithmetic project-wide. 30.44 approximates 365.25/12.
const DaysPerMonth = 30.44

// MinDurationMonths is the floor applied to every patient's duration so a
// patient with no events (or only pre-reference events) still draws a
// visible bar.
const MinDurationMonths = 1.0

// ResponseEvent is one response assessment relative to the reference date.
type ResponseEvent struct {
	// MonthOffset is the signed time in months from the reference date to
	// the assessment. Negative offsets (assessment predating the reference)
	// are preserved unclamped.
	MonthOffset float64 `json:"month_offset" bson:"month_offset"`

	// Category is the response code as found in the sheet (observed set:
	// CR, PR, SD, PD). Unknown codes are a rendering fallback, never an
	// error.
	Category string `json:"category" bson:"category"`
}

// Patient is one normalized patient record.
type Patient struct {
	ID     string `json:"id" bson:"id"`
	Cohort string `json:"cohort" bson:"cohort"`

	// DurationMonths is max(1, max event offset, ASCT offset).
	DurationMonths float64 `json:"duration_months" bson:"duration_months"`

	// Events are in slot order (1..10), not sorted by offset.
	Events []ResponseEvent `json:"events,omitempty" bson:"events,omitempty"`

	// ASCTMonthOffset is the transplant offset in months; only meaningful
	// when HasASCT is true.
	ASCTMonthOffset float64 `json:"asct_month_offset,omitempty" bson:"asct_month_offset,omitempty"`
	HasASCT         bool    `json:"has_asct,omitempty" bson:"has_asct,omitempty"`
}

// duration derives DurationMonths from the patient's offsets.
func (p *Patient) duration() float64 {
	d := MinDurationMonths
	for _, e := range p.Events {
		if e.MonthOffset > d {
			d = e.MonthOffset
		}
	}
	if p.HasASCT && p.ASCTMonthOffset > d {
		d = p.ASCTMonthOffset
	}
	return d
}

// EventCount returns the total number of response events across patients.
func EventCount(patients []Patient) int {
	n := 0
	for _, p := range patients {
		n += len(p.Events)
	}
	return n
}
