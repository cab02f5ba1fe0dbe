package pipeline

import (
	"context"
	"encoding/json"

	"github.com/linker268/Swimmer-plot/pkg/errors"
	"github.com/linker268/Swimmer-plot/pkg/source"
	"github.com/linker268/Swimmer-plot/pkg/source/csvfile"
	"github.com/linker268/Swimmer-plot/pkg/source/mongo"
	"github.com/linker268/Swimmer-plot/pkg/trial"
)

// ParseOutput is the result of the parse stage.
type ParseOutput struct {
	Patients []trial.Patient `json:"patients"`

	// Dropped counts input rows discarded for lacking a usable reference
	// date. Discarding is silent per row; the count surfaces here so the
	// CLI can report it.
	Dropped int `json:"dropped"`
}

// Parse loads raw rows from the configured source and normalizes them
// into patients, preserving input order.
func Parse(ctx context.Context, opts Options) (ParseOutput, error) {
	if err := opts.ValidateForParse(); err != nil {
		return ParseOutput{}, err
	}

	src, cleanup, err := openSource(ctx, opts)
	if err != nil {
		return ParseOutput{}, err
	}
	defer cleanup()

	rows, err := src.Rows(ctx)
	if err != nil {
		return ParseOutput{}, err
	}

	patients := trial.NormalizeAll(rows)
	out := ParseOutput{
		Patients: patients,
		Dropped:  len(rows) - len(patients),
	}
	opts.Logger.Debug("normalized rows",
		"source", src.Name(),
		"rows", len(rows),
		"patients", len(patients),
		"dropped", out.Dropped)
	return out, nil
}

// openSource builds the row source for the options. The cleanup func is
// always safe to call.
func openSource(ctx context.Context, opts Options) (source.RowSource, func(), error) {
	switch opts.Source {
	case SourceMongo:
		src, err := mongo.New(ctx, opts.Mongo)
		if err != nil {
			return nil, func() {}, err
		}
		return src, func() { _ = src.Close(context.Background()) }, nil
	case SourceCSV:
		return csvfile.New(opts.Input), func() {}, nil
	default:
		return nil, func() {}, errors.New(errors.ErrCodeInvalidSource, "invalid source: %q", opts.Source)
	}
}

// marshalParseOutput serializes a parse result for caching.
func marshalParseOutput(out ParseOutput) ([]byte, error) {
	return json.Marshal(out)
}

// unmarshalParseOutput parses a cached parse result.
func unmarshalParseOutput(data []byte) (ParseOutput, error) {
	var out ParseOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return ParseOutput{}, err
	}
	return out, nil
}
