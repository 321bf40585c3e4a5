package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/patristic/internal/core/domain"
	"github.com/custodia-labs/patristic/internal/core/ports/driven"
)

// SplitDocuments splits every document in order. Segments never span documents.
func SplitDocuments(ctx context.Context, c driven.Chunker, docs []domain.Document) ([]domain.Segment, error) {
	var all []domain.Segment
	for i := range docs {
		segs, err := c.Split(ctx, docs[i])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.Name(), err)
		}
		all = append(all, segs...)
	}
	return all, nil
}
