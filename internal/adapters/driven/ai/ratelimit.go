package ai

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/patristic/internal/core/ports/driven"
)

// Ensure RateLimited implements the interface.
var _ driven.EmbeddingService = (*RateLimited)(nil)

// RateLimited throttles calls to an embedding service with a token bucket.
// Every Embed or EmbedBatch call takes one token; Ping is not throttled.
type RateLimited struct {
	driven.EmbeddingService
	limiter *rate.Limiter
}

// NewRateLimited wraps svc so it is called at most requestsPerSecond times
// per second, with a burst of one.
func NewRateLimited(svc driven.EmbeddingService, requestsPerSecond float64) *RateLimited {
	return &RateLimited{
		EmbeddingService: svc,
		limiter:          rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// Embed waits for a token and embeds text.
func (r *RateLimited) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.EmbeddingService.Embed(ctx, text)
}

// EmbedBatch waits for a token and embeds texts.
func (r *RateLimited) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.EmbeddingService.EmbedBatch(ctx, texts)
}

// Unwrap returns the wrapped service.
func (r *RateLimited) Unwrap() driven.EmbeddingService {
	return r.EmbeddingService
}
