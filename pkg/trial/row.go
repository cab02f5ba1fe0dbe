package trial

import (
	"fmt"
	"strings"
)

// Column names recognized in a raw intake row. Names are case-sensitive and
// match the export convention of the trial data sheets.
const (
	ColPatientID = "Patient_ID"
	ColCohort    = "Cohort"
	ColReference = "C1D1"
	ColASCTDate  = "ASCT_date"
)

// MaxResponseSlots is the number of paired response columns
// (Resp_date1/Response1 .. Resp_date10/Response10) in the sheet format.
const MaxResponseSlots = 10

// RawRow is one decoded intake row: an untyped mapping of column name to
// scalar value (string, number, or date instant). Row sources own the
// decoding; the normalizer only reads.
type RawRow map[string]any

// RespDateCol returns the response-date column name for slot i (1-based).
func RespDateCol(i int) string { return fmt.Sprintf("Resp_date%d", i) }

// RespCategoryCol returns the response-result column name for slot i (1-based).
func RespCategoryCol(i int) string { return fmt.Sprintf("Response%d", i) }

// stringAt returns the row value as a trimmed string, or "" when the key is
// absent, the value is not text-like, or the text is blank.
func (r RawRow) stringAt(col string) string {
	v, ok := r[col]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case fmt.Stringer:
		return strings.TrimSpace(s.String())
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// present reports whether the row carries a non-blank value for col.
func (r RawRow) present(col string) bool {
	v, ok := r[col]
	if !ok || v == nil {
		return false
	}
	if s, isStr := v.(string); isStr {
		return strings.TrimSpace(s) != ""
	}
	return true
}
