// Package csvfile reads trial rows from a CSV export.
//
// The first record is the header; every later record becomes one RawRow
// keyed by header name. Column names are matched case-sensitively, so a
// file must carry the canonical "Patient_ID", "Cohort", "C1D1",
// "Resp_dateN" and "ResponseN" headers for those fields to be seen.
package csvfile

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/linker268/Swimmer-plot/pkg/errors"
	"github.com/linker268/Swimmer-plot/pkg/trial"
)

// Source reads rows from one CSV file.
type Source struct {
	path string
}

// New creates a source for the given CSV file path.
func New(path string) *Source {
	return &Source{path: path}
}

// Name identifies the source for cache keys and logs.
func (s *Source) Name() string {
	return "csv:" + filepath.Base(s.path)
}

// Rows loads and parses the whole file. Cell values stay strings; the
// date resolver decides later whether a string is a serial number or a
// calendar date.
func (s *Source) Rows(ctx context.Context) ([]trial.RawRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "input file not found: %s", s.path)
		}
		return nil, errors.Wrap(errors.ErrCodeSource, err, "open %s", s.path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are tolerated; short rows just lack columns

	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSource, err, "parse %s", s.path)
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeSource, "%s has no header row", s.path)
	}

	header := records[0]
	rows := make([]trial.RawRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(trial.RawRow, len(header))
		for i, col := range header {
			if i >= len(rec) {
				break
			}
			row[col] = rec[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}
