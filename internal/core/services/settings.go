package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/patristic/internal/core/domain"
	"github.com/custodia-labs/patristic/internal/core/ports/driven"
	"github.com/custodia-labs/patristic/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyEmbedProvider   = "embedding.provider"
	keyEmbedModel      = "embedding.model"
	keyEmbedBaseURL    = "embedding.base_url"
	keyEmbedAPIKey     = "embedding.api_key"
	keyEmbedDimensions = "embedding.dimensions"
	keyEmbedRPS        = "embedding.requests_per_second"
	keyEmbedTimeout    = "embedding.timeout_seconds"
	keyWritePolicy     = "output.write_policy"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Unset or unrecognised
// values fall back to the defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Embedding: domain.EmbeddingSettings{
			Provider:          s.getProvider(defaults.Embedding.Provider),
			Model:             s.getString(keyEmbedModel, defaults.Embedding.Model),
			BaseURL:           s.configStore.GetString(keyEmbedBaseURL),
			APIKey:            s.configStore.GetString(keyEmbedAPIKey),
			Dimensions:        s.configStore.GetInt(keyEmbedDimensions),
			RequestsPerSecond: s.configStore.GetFloat(keyEmbedRPS),
			Timeout:           s.getTimeout(defaults.Embedding.Timeout),
		},
		Output: domain.OutputSettings{
			WritePolicy: s.getWritePolicy(defaults.Output.WritePolicy),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	emb := settings.Embedding

	if err := s.configStore.Set(keyEmbedProvider, emb.Provider.String()); err != nil {
		return fmt.Errorf("save embedding provider: %w", err)
	}
	if err := s.configStore.Set(keyEmbedModel, emb.Model); err != nil {
		return fmt.Errorf("save embedding model: %w", err)
	}
	if err := s.configStore.Set(keyEmbedBaseURL, emb.BaseURL); err != nil {
		return fmt.Errorf("save embedding base_url: %w", err)
	}
	if emb.APIKey != "" {
		if err := s.configStore.Set(keyEmbedAPIKey, emb.APIKey); err != nil {
			return fmt.Errorf("save embedding api_key: %w", err)
		}
	}
	if err := s.configStore.Set(keyEmbedDimensions, emb.Dimensions); err != nil {
		return fmt.Errorf("save embedding dimensions: %w", err)
	}
	if err := s.configStore.Set(keyEmbedRPS, emb.RequestsPerSecond); err != nil {
		return fmt.Errorf("save embedding requests_per_second: %w", err)
	}
	if err := s.configStore.Set(keyEmbedTimeout, int(emb.Timeout/time.Second)); err != nil {
		return fmt.Errorf("save embedding timeout_seconds: %w", err)
	}

	if err := s.configStore.Set(keyWritePolicy, settings.Output.WritePolicy.String()); err != nil {
		return fmt.Errorf("save output write_policy: %w", err)
	}

	return nil
}

// SetEmbeddingProvider configures the embedding provider.
// An empty model selects the provider's default model.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: embedding provider %q", domain.ErrInvalidInput, provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("%w: API key required for %s", domain.ErrInvalidInput, provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	previous := settings.Embedding.Provider
	settings.Embedding.Provider = provider

	if model != "" {
		settings.Embedding.Model = model
	} else if defaultModel, ok := domain.DefaultEmbeddingModels()[provider]; ok {
		settings.Embedding.Model = defaultModel
	}

	// A base URL set for another provider would point at the wrong server
	if previous != provider {
		settings.Embedding.BaseURL = ""
	}
	if settings.Embedding.BaseURL == "" && provider.IsLocal() {
		settings.Embedding.BaseURL = domain.DefaultBaseURLs()[provider]
	}

	settings.Embedding.APIKey = apiKey

	// Known models carry their dimension; unknown ones are learned at run time
	settings.Embedding.Dimensions = domain.EmbeddingDimensions()[settings.Embedding.Model]

	return s.Save(settings)
}

// SetWritePolicy configures how existing output files are treated.
func (s *SettingsService) SetWritePolicy(policy domain.WritePolicy) error {
	if !policy.IsValid() {
		return fmt.Errorf("%w: write policy %q", domain.ErrInvalidInput, policy)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Output.WritePolicy = policy

	return s.Save(settings)
}

// Validate checks if current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if raw := s.configStore.GetString(keyEmbedProvider); raw != "" && !domain.AIProvider(raw).IsValid() {
		return fmt.Errorf("%w: embedding provider %q", domain.ErrInvalidInput, raw)
	}
	if raw := s.configStore.GetString(keyWritePolicy); raw != "" && !domain.WritePolicy(raw).IsValid() {
		return fmt.Errorf("%w: write policy %q", domain.ErrInvalidInput, raw)
	}
	if !settings.Embedding.IsConfigured() {
		return fmt.Errorf("%w: embedding provider %s is not configured", domain.ErrInvalidInput,
			settings.Embedding.Provider)
	}
	if settings.Embedding.Dimensions < 0 {
		return fmt.Errorf("%w: embedding dimensions must not be negative", domain.ErrInvalidInput)
	}
	if settings.Embedding.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: requests_per_second must not be negative", domain.ErrInvalidInput)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getTimeout(defaultVal time.Duration) time.Duration {
	secs := s.configStore.GetInt(keyEmbedTimeout)
	if secs <= 0 {
		return defaultVal
	}
	return time.Duration(secs) * time.Second
}

func (s *SettingsService) getProvider(defaultVal domain.AIProvider) domain.AIProvider {
	provider := domain.AIProvider(s.configStore.GetString(keyEmbedProvider))
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func (s *SettingsService) getWritePolicy(defaultVal domain.WritePolicy) domain.WritePolicy {
	policy := domain.WritePolicy(s.configStore.GetString(keyWritePolicy))
	if !policy.IsValid() {
		return defaultVal
	}
	return policy
}
