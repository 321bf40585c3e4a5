package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/patristic/internal/core/domain"
)

func TestSplitDocuments_KeepsDocumentsApart(t *testing.T) {
	docA := domain.NewDocument(domain.Record{ID: 7, Book: "john", Text: "abcdefghij", SourceTitle: "t"})
	docB := domain.NewDocument(domain.Record{ID: 8, Book: "mark", Text: "xyz", SourceTitle: "t"})

	segs, err := SplitDocuments(context.Background(), &mockChunker{size: 4}, []domain.Document{docA, docB})
	require.NoError(t, err)
	require.Len(t, segs, 4)

	assert.Equal(t, []string{"abcd", "efgh", "ij", "xyz"},
		[]string{segs[0].Content, segs[1].Content, segs[2].Content, segs[3].Content})
	for _, seg := range segs[:3] {
		assert.Equal(t, int64(7), seg.DocumentID)
	}
	assert.Equal(t, int64(8), segs[3].DocumentID)
	assert.Equal(t, 0, segs[3].Position)
	assert.Equal(t, "mark", segs[3].Metadata[domain.MetaBook])
}

func TestSplitDocuments_Empty(t *testing.T) {
	segs, err := SplitDocuments(context.Background(), &mockChunker{size: 4}, nil)
	require.NoError(t, err)
	assert.Empty(t, segs)
}

func TestSplitDocuments_NamesFailingChunker(t *testing.T) {
	boom := errors.New("boom")
	doc := domain.NewDocument(domain.Record{ID: 1, Text: "text", SourceTitle: "t"})

	_, err := SplitDocuments(context.Background(), &mockChunker{size: 4, err: boom}, []domain.Document{doc})

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "mock-chunker")
}
