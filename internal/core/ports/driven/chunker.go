package driven

import (
	"context"

	"github.com/custodia-labs/patristic/internal/core/domain"
)

// Chunker splits a document's content into overlapping segments.
type Chunker interface {
	// Name returns the chunker name for logging.
	Name() string

	// Split returns the segments of doc in order. Every segment carries
	// a copy of doc's metadata. Empty content yields no segments.
	Split(ctx context.Context, doc domain.Document) ([]domain.Segment, error)
}
