package trial

import (
	"fmt"
	"time"

	"github.com/linker268/Swimmer-plot/pkg/dates"
)

// Normalize converts one raw row into a Patient.
//
// The second return value is false when the row's reference date (C1D1)
// does not resolve, in which case no patient is produced and the row is
// silently dropped. Individual response slots or the ASCT date failing to
// resolve drop only that slot, never the whole record.
//
// index is the row's zero-based position in the source and is used for the
// default patient ID ("Patient 1", "Patient 2", ...). Normalize is a pure
// function of its inputs.
func Normalize(row RawRow, index int) (Patient, bool) {
	ref, ok := dates.Resolve(row[ColReference])
	if !ok {
		return Patient{}, false
	}

	p := Patient{
		ID:     row.stringAt(ColPatientID),
		Cohort: row.stringAt(ColCohort),
	}
	if p.ID == "" {
		p.ID = fmt.Sprintf("Patient %d", index+1)
	}
	if p.Cohort == "" {
		p.Cohort = "Unknown"
	}

	for i := 1; i <= MaxResponseSlots; i++ {
		dateCol, catCol := RespDateCol(i), RespCategoryCol(i)
		if !row.present(dateCol) || !row.present(catCol) {
			continue
		}
		respDate, ok := dates.Resolve(row[dateCol])
		if !ok {
			continue
		}
		p.Events = append(p.Events, ResponseEvent{
			MonthOffset: monthsBetween(ref, respDate),
			Category:    row.stringAt(catCol),
		})
	}

	if row.present(ColASCTDate) {
		if asct, ok := dates.Resolve(row[ColASCTDate]); ok {
			p.ASCTMonthOffset = monthsBetween(ref, asct)
			p.HasASCT = true
		}
	}

	p.DurationMonths = p.duration()
	return p, true
}

// NormalizeAll normalizes rows in order, silently excluding rows without a
// resolvable reference date.
func NormalizeAll(rows []RawRow) []Patient {
	patients := make([]Patient, 0, len(rows))
	for i, row := range rows {
		if p, ok := Normalize(row, i); ok {
			patients = append(patients, p)
		}
	}
	return patients
}

// monthsBetween returns the signed elapsed time from ref to t in fractional
// months using the fixed 30.44-day month.
func monthsBetween(ref, t time.Time) float64 {
	return t.Sub(ref).Hours() / (24 * DaysPerMonth)
}
