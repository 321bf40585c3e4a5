package domain

import "time"

const unknownDescription = "Unknown"

// AIProvider identifies an embedding service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderTEI is a Hugging Face text-embeddings-inference server.
	AIProviderTEI AIProvider = "tei"

	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API or a compatible server.
	AIProviderOpenAI AIProvider = "openai"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderTEI, AIProviderOllama, AIProviderOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// IsLocal returns true if this provider usually runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama || p == AIProviderTEI
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderTEI:
		return "Text Embeddings Inference (local)"
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	default:
		return unknownDescription
	}
}

// WritePolicy decides what the Persister does when output already exists.
type WritePolicy string

// Available write policies.
const (
	// WritePolicyAppend keeps existing files and adds numbered ones.
	WritePolicyAppend WritePolicy = "always-append"

	// WritePolicyOverwrite restarts numbering and replaces existing files.
	WritePolicyOverwrite WritePolicy = "overwrite"

	// WritePolicySkipExisting restarts numbering and leaves existing files alone.
	WritePolicySkipExisting WritePolicy = "skip-existing"
)

// IsValid returns true if the write policy is recognised.
func (p WritePolicy) IsValid() bool {
	switch p {
	case WritePolicyAppend, WritePolicyOverwrite, WritePolicySkipExisting:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p WritePolicy) String() string {
	return string(p)
}

// Description returns a human-readable description of the policy.
func (p WritePolicy) Description() string {
	switch p {
	case WritePolicyAppend:
		return "Always append (re-runs add numbered files)"
	case WritePolicyOverwrite:
		return "Overwrite (re-runs replace files)"
	case WritePolicySkipExisting:
		return "Skip existing (re-runs keep files)"
	default:
		return unknownDescription
	}
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint. Empty selects the provider default.
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string

	// Dimensions overrides the known dimension for Model. Zero means
	// use the known value or learn it from the first response.
	Dimensions int

	// RequestsPerSecond throttles batch calls. Zero disables throttling.
	RequestsPerSecond float64

	// Timeout bounds a single batch request.
	Timeout time.Duration
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// OutputSettings holds persister configuration.
type OutputSettings struct {
	// WritePolicy decides how existing output files are treated.
	WritePolicy WritePolicy
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Embedding holds embedding provider settings.
	Embedding EmbeddingSettings

	// Output holds persister settings.
	Output OutputSettings
}

// DefaultEmbeddingModel is the model used when none is configured.
const DefaultEmbeddingModel = "BAAI/bge-large-en-v1.5"

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Embedding: EmbeddingSettings{
			Provider: AIProviderTEI,
			Model:    DefaultEmbeddingModel,
			Timeout:  2 * time.Minute,
		},
		Output: OutputSettings{
			WritePolicy: WritePolicyAppend,
		},
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderTEI,
		AIProviderOllama,
		AIProviderOpenAI,
	}
}

// AllWritePolicies returns all available write policies.
func AllWritePolicies() []WritePolicy {
	return []WritePolicy{
		WritePolicyAppend,
		WritePolicyOverwrite,
		WritePolicySkipExisting,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderTEI:    DefaultEmbeddingModel,
		AIProviderOllama: "bge-large",
		AIProviderOpenAI: "text-embedding-3-small",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// BGE family
		"BAAI/bge-large-en-v1.5": 1024,
		"BAAI/bge-base-en-v1.5":  768,
		"BAAI/bge-small-en-v1.5": 384,
		"bge-large":              1024,
		"bge-m3":                 1024,
		// Ollama models
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
	}
}

// DefaultBaseURLs returns the endpoint used when a local provider has no base URL.
// Cloud providers are absent: their client library knows the endpoint.
func DefaultBaseURLs() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderTEI:    "http://localhost:8080",
		AIProviderOllama: "http://localhost:11434",
	}
}
