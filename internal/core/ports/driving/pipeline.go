package driving

import (
	"context"

	"github.com/custodia-labs/patristic/internal/core/domain"
)

// Pipeline runs the extract, chunk, embed and persist stages once.
type Pipeline interface {
	// Run executes the pipeline to completion. A non-nil error means a
	// fatal failure (store unreachable, query failed); lossy stages are
	// reported through the returned RunReport instead.
	Run(ctx context.Context) (*domain.RunReport, error)
}

// CorpusLoader reads a previously written output directory.
type CorpusLoader interface {
	// Load returns the persisted segments and their embeddings.
	Load(ctx context.Context) (*domain.Corpus, error)
}
