// Package dates normalizes heterogeneous date values into timestamps.
//
// Clinical intake sheets mix three representations for the same column:
// native date instants (when the decoder preserved cell types), spreadsheet
// day-serial numbers (days since 1899-12-30), and free calendar text. Resolve
// accepts all three and reports failure as a boolean so callers can filter
// sparse data without error plumbing.
package dates

import (
	"strconv"
	"strings"
	"time"
)

const (
	// serialEpochOffset is the number of days between the spreadsheet epoch
	// (1899-12-30) and the Unix epoch (1970-01-01). Serial 25569 therefore
	// resolves to 1970-01-01T00:00:00Z.
	serialEpochOffset = 25569

	// secondsPerDay is the fixed day length used for serial conversion.
	secondsPerDay = 86400
)

// layouts are tried in order for calendar-text values. ISO forms first,
// then the slash forms seen in exported trial sheets (US before EU, matching
// the source data convention).
var layouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
}

// Resolve converts a raw cell value into a timestamp.
//
// It accepts time.Time instants (returned unchanged), numeric spreadsheet
// day serials (including numeric strings, since CSV decoding strips cell
// types), and calendar text matching one of the supported layouts. The
// second return value is false when the value is absent, empty, or
// unparseable. Resolve never panics and never returns an error.
func Resolve(value any) (time.Time, bool) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return v, true
	case float64:
		return fromSerial(v), true
	case float32:
		return fromSerial(float64(v)), true
	case int:
		return fromSerial(float64(v)), true
	case int32:
		return fromSerial(float64(v)), true
	case int64:
		return fromSerial(float64(v)), true
	case string:
		return resolveText(v)
	default:
		return time.Time{}, false
	}
}

// fromSerial converts a spreadsheet day serial to a UTC instant.
// Fractional days carry through as seconds.
func fromSerial(serial float64) time.Time {
	secs := (serial - serialEpochOffset) * secondsPerDay
	return time.Unix(int64(secs), 0).UTC()
}

func resolveText(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	// A bare number in a date column is a day serial, not a parse failure.
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		return fromSerial(serial), true
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
