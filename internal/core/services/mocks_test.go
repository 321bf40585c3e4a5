package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/custodia-labs/patristic/internal/core/domain"
	"github.com/custodia-labs/patristic/internal/core/ports/driven"
)

// mockEmbedding implements driven.EmbeddingService for testing.
// Vectors are derived from the text length so results are deterministic.
type mockEmbedding struct {
	mu        sync.Mutex
	dims      int
	reported  int
	failCalls map[int]error
	short     map[int]bool
	calls     [][]string
}

var _ driven.EmbeddingService = (*mockEmbedding)(nil)

func newMockEmbedding(dims int) *mockEmbedding {
	return &mockEmbedding{
		dims:      dims,
		reported:  dims,
		failCalls: make(map[int]error),
		short:     make(map[int]bool),
	}
}

func (m *mockEmbedding) Embed(ctx context.Context, text string) ([]float32, error) {
	vs, err := m.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vs[0], nil
}

func (m *mockEmbedding) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	call := len(m.calls)
	m.calls = append(m.calls, texts)
	if err, ok := m.failCalls[call]; ok {
		return nil, err
	}

	out := make([][]float32, len(texts))
	for i, text := range texts {
		dims := m.dims
		if m.short[call] && i == 0 {
			dims--
		}
		v := make([]float32, dims)
		for j := range v {
			v[j] = float32(len(text) + j + 1)
		}
		out[i] = v
	}
	return out, nil
}

func (m *mockEmbedding) Dimensions() int              { return m.reported }
func (m *mockEmbedding) ModelName() string            { return "mock-embed" }
func (m *mockEmbedding) Ping(_ context.Context) error { return nil }
func (m *mockEmbedding) Close() error                 { return nil }

func (m *mockEmbedding) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// mockProgress records progress notifications.
type mockProgress struct {
	stage    string
	total    int
	steps    []int
	errs     []error
	finished bool
}

var _ driven.ProgressReporter = (*mockProgress)(nil)

func (p *mockProgress) Start(stage string, total int) { p.stage, p.total = stage, total }
func (p *mockProgress) Step(index int, err error) {
	p.steps = append(p.steps, index)
	p.errs = append(p.errs, err)
}
func (p *mockProgress) Finish() { p.finished = true }

// mockRecordSource implements driven.RecordSource for testing.
type mockRecordSource struct {
	records []domain.Record
	err     error
	filter  domain.RecordFilter
	closed  bool
}

var _ driven.RecordSource = (*mockRecordSource)(nil)

func (s *mockRecordSource) Fetch(_ context.Context, filter domain.RecordFilter) ([]domain.Record, error) {
	s.filter = filter
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func (s *mockRecordSource) Close() error {
	s.closed = true
	return nil
}

// mockWriter implements driven.SegmentWriter in memory.
type mockWriter struct {
	written []domain.EmbeddedSegment
	failAt  int
}

var _ driven.SegmentWriter = (*mockWriter)(nil)

func (w *mockWriter) Write(_ context.Context, seg domain.Segment, embedding []float32) (domain.WriteOutcome, error) {
	if w.failAt > 0 && len(w.written)+1 == w.failAt {
		return domain.WriteOutcome{}, errors.New("disk full")
	}
	w.written = append(w.written, domain.EmbeddedSegment{Segment: seg, Vector: embedding})
	return domain.WriteOutcome{
		SegmentID: seg.ID,
		Path:      fmt.Sprintf("mem/%d", len(w.written)),
		Status:    domain.WriteCreated,
	}, nil
}

// mockReader implements driven.SegmentReader.
type mockReader struct {
	segments []domain.StoredSegment
	err      error
}

var _ driven.SegmentReader = (*mockReader)(nil)

func (r *mockReader) Load(_ context.Context) ([]domain.StoredSegment, error) {
	return r.segments, r.err
}

// mockChunker cuts each document into fixed-size rune pieces.
type mockChunker struct {
	size int
	err  error
}

var _ driven.Chunker = (*mockChunker)(nil)

func (c *mockChunker) Name() string { return "mock-chunker" }

func (c *mockChunker) Split(_ context.Context, doc domain.Document) ([]domain.Segment, error) {
	if c.err != nil {
		return nil, c.err
	}
	runes := []rune(doc.Content)
	var segs []domain.Segment
	for start := 0; start < len(runes); start += c.size {
		end := min(start+c.size, len(runes))
		segs = append(segs, domain.Segment{
			ID:         fmt.Sprintf("%d-%d", doc.RecordID(), len(segs)),
			DocumentID: doc.RecordID(),
			Position:   len(segs),
			Content:    string(runes[start:end]),
			Metadata:   doc.Metadata.Clone(),
		})
	}
	return segs, nil
}
