// Package source abstracts where raw trial rows come from. A RowSource
// yields the column-keyed rows the normalizer consumes; CSV files and
// MongoDB collections are the two shipped backends.
package source

import (
	"context"

	"github.com/linker268/Swimmer-plot/pkg/trial"
)

// RowSource loads raw rows from a backing store. Implementations read
// everything up front; the pipeline has no use for streaming since every
// row participates in the shared axis domain.
type RowSource interface {
	// Rows loads all rows. A malformed or unreachable backing store is a
	// single error for the whole load, never a partial result.
	Rows(ctx context.Context) ([]trial.RawRow, error)

	// Name identifies the source for cache keys and logs.
	Name() string
}
