package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/patristic/internal/core/domain"
	"github.com/custodia-labs/patristic/internal/core/ports/driven"
	"github.com/custodia-labs/patristic/internal/logger"
)

// BatchEmbedder computes embeddings for segments in fixed-size batches.
// A failed batch is recorded and skipped; there is no retry.
type BatchEmbedder struct {
	svc         driven.EmbeddingService
	batchSize   int
	instruction string
	normalize   bool
	progress    driven.ProgressReporter
}

// BatchEmbedderOption configures a BatchEmbedder.
type BatchEmbedderOption func(*BatchEmbedder)

// WithBatchSize sets the number of segments per embedding call.
func WithBatchSize(n int) BatchEmbedderOption {
	return func(e *BatchEmbedder) {
		if n > 0 {
			e.batchSize = n
		}
	}
}

// WithInstruction sets the prefix prepended to every segment.
func WithInstruction(instruction string) BatchEmbedderOption {
	return func(e *BatchEmbedder) {
		e.instruction = instruction
	}
}

// WithNormalize enables or disables unit-length normalisation.
func WithNormalize(normalize bool) BatchEmbedderOption {
	return func(e *BatchEmbedder) {
		e.normalize = normalize
	}
}

// WithProgress sets the reporter notified after every batch.
func WithProgress(p driven.ProgressReporter) BatchEmbedderOption {
	return func(e *BatchEmbedder) {
		e.progress = p
	}
}

// NewBatchEmbedder creates a batch embedder over svc.
func NewBatchEmbedder(svc driven.EmbeddingService, opts ...BatchEmbedderOption) *BatchEmbedder {
	e := &BatchEmbedder{
		svc:         svc,
		batchSize:   domain.DefaultBatchSize,
		instruction: domain.DefaultInstruction,
		normalize:   true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Embed embeds segments batch by batch. Items keep input order; segments of
// failed batches are absent from Items and listed in Failures.
func (e *BatchEmbedder) Embed(ctx context.Context, segments []domain.Segment) domain.EmbedResult {
	result := domain.EmbedResult{
		Items:      make([]domain.EmbeddedSegment, 0, len(segments)),
		Dimensions: e.svc.Dimensions(),
	}

	batches := (len(segments) + e.batchSize - 1) / e.batchSize
	if e.progress != nil {
		e.progress.Start("Generating embeddings", batches)
		defer e.progress.Finish()
	}

	for index := 0; index < batches; index++ {
		start := index * e.batchSize
		end := min(start+e.batchSize, len(segments))
		batch := segments[start:end]

		if err := ctx.Err(); err != nil {
			// Remaining batches are dropped the same way a failed call is.
			for ; index < batches; index++ {
				start = index * e.batchSize
				end = min(start+e.batchSize, len(segments))
				result.Failures = append(result.Failures, domain.BatchFailure{
					Index: index, Start: start, Size: end - start, Err: err,
				})
			}
			break
		}

		vectors, err := e.embedBatch(ctx, batch, &result.Dimensions)
		if err != nil {
			logger.Error("Error processing batch %d: %v", index, err)
			result.Failures = append(result.Failures, domain.BatchFailure{
				Index: index, Start: start, Size: len(batch), Err: err,
			})
		} else {
			for i := range batch {
				result.Items = append(result.Items, domain.EmbeddedSegment{
					Segment: batch[i],
					Vector:  vectors[i],
				})
			}
		}

		if e.progress != nil {
			e.progress.Step(index, err)
		}
	}

	return result
}

// embedBatch runs one model call and validates its output. dims is the run's
// expected dimension; a zero value is set from the first valid response.
func (e *BatchEmbedder) embedBatch(ctx context.Context, batch []domain.Segment, dims *int) ([][]float32, error) {
	texts := make([]string, len(batch))
	for i := range batch {
		texts[i] = e.prepare(batch[i].Content)
	}

	vectors, err := e.svc.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(batch) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(batch), len(vectors))
	}

	expected := *dims
	for i, v := range vectors {
		if expected == 0 {
			expected = len(v)
		}
		if len(v) != expected {
			return nil, fmt.Errorf("%w: segment %s has %d values, expected %d",
				domain.ErrDimensionMismatch, batch[i].ID, len(v), expected)
		}
		if e.normalize {
			if vectors[i], err = domain.Normalize(v); err != nil {
				return nil, fmt.Errorf("segment %s: %w", batch[i].ID, err)
			}
		}
	}

	*dims = expected
	return vectors, nil
}

// prepare prepends the instruction to a segment's text.
func (e *BatchEmbedder) prepare(text string) string {
	if e.instruction == "" {
		return text
	}
	return e.instruction + " " + text
}
