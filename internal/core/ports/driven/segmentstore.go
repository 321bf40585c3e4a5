package driven

import (
	"context"

	"github.com/custodia-labs/patristic/internal/core/domain"
)

// SegmentWriter persists embedded segments.
type SegmentWriter interface {
	// Write stores one segment with its embedding. The outcome reports
	// where it went and whether anything was written.
	Write(ctx context.Context, seg domain.Segment, embedding []float32) (domain.WriteOutcome, error)
}

// SegmentReader loads previously persisted segments.
type SegmentReader interface {
	// Load returns every persisted segment in a stable order.
	Load(ctx context.Context) ([]domain.StoredSegment, error)
}
