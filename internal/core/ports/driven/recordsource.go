package driven

import (
	"context"

	"github.com/custodia-labs/patristic/internal/core/domain"
)

// RecordSource reads commentary records from a store.
type RecordSource interface {
	// Fetch returns the records matching every predicate in filter,
	// in a stable order. Errors are fatal for the pipeline.
	Fetch(ctx context.Context, filter domain.RecordFilter) ([]domain.Record, error)

	// Close releases the underlying store handle.
	Close() error
}
