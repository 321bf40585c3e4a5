// Package ai provides factory functions for creating embedding service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamaembed "github.com/custodia-labs/patristic/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/patristic/internal/adapters/driven/embedding/openai"
	teiembed "github.com/custodia-labs/patristic/internal/adapters/driven/embedding/tei"
	"github.com/custodia-labs/patristic/internal/core/domain"
	"github.com/custodia-labs/patristic/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateAndValidateEmbeddingService creates an embedding service and validates connectivity.
// Returns the service if successful, or an error with guidance.
func CreateAndValidateEmbeddingService(ctx context.Context, settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'patristic settings' to check the configuration",
			domain.ErrEmbeddingUnavailable, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := svc.Ping(pingCtx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: %s at %s unreachable (%w)",
			domain.ErrEmbeddingUnavailable, settings.Provider, endpoint(settings), err)
	}

	return svc, nil
}

// ValidateEmbeddingConfig creates a service from settings and pings it.
func ValidateEmbeddingConfig(ctx context.Context, settings *domain.EmbeddingSettings) error {
	svc, err := CreateAndValidateEmbeddingService(ctx, settings)
	if err != nil {
		return err
	}
	return svc.Close()
}

// CreateEmbeddingService creates the embedding service selected by settings.
// A positive RequestsPerSecond wraps it in a RateLimited decorator.
func CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil {
		return nil, fmt.Errorf("%w: no embedding settings", domain.ErrInvalidInput)
	}
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: embedding provider %q is not configured", domain.ErrInvalidInput, settings.Provider)
	}

	var (
		svc driven.EmbeddingService
		err error
	)

	switch settings.Provider {
	case domain.AIProviderTEI:
		svc = teiembed.NewEmbeddingService(teiembed.Config{
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Timeout:    settings.Timeout,
			Dimensions: settings.Dimensions,
		})

	case domain.AIProviderOllama:
		svc = ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Timeout:    settings.Timeout,
			Dimensions: settings.Dimensions,
		})

	case domain.AIProviderOpenAI:
		svc, err = openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:     settings.APIKey,
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Timeout:    settings.Timeout,
			Dimensions: settings.Dimensions,
		})
		if err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("%w: embedding provider %s", domain.ErrUnsupportedType, settings.Provider)
	}

	if settings.RequestsPerSecond > 0 {
		svc = NewRateLimited(svc, settings.RequestsPerSecond)
	}
	return svc, nil
}

// endpoint describes where settings point, for error messages.
func endpoint(settings *domain.EmbeddingSettings) string {
	if settings.BaseURL != "" {
		return settings.BaseURL
	}
	if url, ok := domain.DefaultBaseURLs()[settings.Provider]; ok {
		return url
	}
	return "default endpoint"
}
