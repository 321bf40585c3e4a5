package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/patristic/internal/core/domain"
	"github.com/custodia-labs/patristic/internal/core/ports/driven"
	"github.com/custodia-labs/patristic/internal/core/ports/driving"
)

// Ensure CorpusService implements the interface.
var _ driving.CorpusLoader = (*CorpusService)(nil)

// CorpusService loads a previously written output directory without
// recomputing embeddings.
type CorpusService struct {
	reader driven.SegmentReader
}

// NewCorpusService creates a corpus loader over reader.
func NewCorpusService(reader driven.SegmentReader) *CorpusService {
	return &CorpusService{reader: reader}
}

// Load reads every persisted segment and computes summary statistics.
func (s *CorpusService) Load(ctx context.Context) (*domain.Corpus, error) {
	stored, err := s.reader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load segments: %w", err)
	}

	corpus := &domain.Corpus{
		Segments:   stored,
		Embeddings: make([][]float32, len(stored)),
		Books:      make(map[string]int),
	}

	dims := -1
	for i := range stored {
		emb := stored[i].Embedding
		corpus.Embeddings[i] = emb

		book := stored[i].Metadata.String(domain.MetaBook)
		if book == "" {
			book = "unknown"
		}
		corpus.Books[book]++

		if !domain.IsUnit(emb) {
			corpus.NonUnit++
		}

		switch {
		case dims == -1:
			dims = len(emb)
		case dims != len(emb):
			dims = 0
		}
	}
	if dims > 0 {
		corpus.Dimensions = dims
	}

	return corpus, nil
}
