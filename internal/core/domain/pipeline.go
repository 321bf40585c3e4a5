package domain

import "fmt"

// Pipeline defaults.
const (
	DefaultDBPath        = "./data.sqlite"
	DefaultOutputDir     = "./commentary_embeddings"
	DefaultChunkSize     = 1500
	DefaultChunkOverlap  = 100
	DefaultBatchSize     = 32
	DefaultMinTextLength = 1000
	DefaultExcludeSuffix = "quoted by Aquinas"
	DefaultInstruction   = "Represent the Religious Bible verse commentary text for semantic search:"
)

// DefaultAuthors returns the author allow-list.
func DefaultAuthors() []string {
	return []string{
		"Augustine of Hippo",
		"Athanasius of Alexandria",
		"Basil of Caesarea",
		"Gregory of Nazianzus",
		"Gregory of Nyssa",
		"Cyril of Alexandria",
		"Irenaeus",
		"Cyprian",
		"Origen of Alexandria",
	}
}

// DefaultBooks returns the New Testament book allow-list.
func DefaultBooks() []string {
	return []string{
		"matthew", "mark", "luke", "john", "acts", "romans", "1corinthians", "2corinthians",
		"galatians", "ephesians", "philippians", "colossians", "1thessalonians", "2thessalonians",
		"1timothy", "2timothy", "titus", "philemon", "hebrews", "james", "1peter",
		"2peter", "1john", "2john", "3john", "jude", "revelation",
	}
}

// BuildPolicy holds the Document Builder's inclusion rules.
type BuildPolicy struct {
	// MinTextLength is the minimum commentary length in characters.
	MinTextLength int
}

// PipelineConfig holds everything a pipeline run needs.
type PipelineConfig struct {
	// DBPath is the SQLite database file.
	DBPath string

	// Model is the embedding model identifier.
	Model string

	// OutputDir is the root of the output tree.
	OutputDir string

	// ChunkSize and ChunkOverlap are measured in characters.
	ChunkSize    int
	ChunkOverlap int

	// BatchSize is the number of segments per embedding call.
	BatchSize int

	// MinTextLength drops shorter commentaries.
	MinTextLength int

	// Authors, Books and ExcludeSuffix select records from the store.
	Authors       []string
	Books         []string
	ExcludeSuffix string

	// Instruction is prepended to every segment before embedding.
	Instruction string

	// Normalize scales every embedding to unit length.
	Normalize bool

	// WritePolicy decides how existing output files are treated.
	WritePolicy WritePolicy
}

// DefaultPipelineConfig returns the built-in run configuration.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		DBPath:        DefaultDBPath,
		Model:         DefaultEmbeddingModel,
		OutputDir:     DefaultOutputDir,
		ChunkSize:     DefaultChunkSize,
		ChunkOverlap:  DefaultChunkOverlap,
		BatchSize:     DefaultBatchSize,
		MinTextLength: DefaultMinTextLength,
		Authors:       DefaultAuthors(),
		Books:         DefaultBooks(),
		ExcludeSuffix: DefaultExcludeSuffix,
		Instruction:   DefaultInstruction,
		Normalize:     true,
		WritePolicy:   WritePolicyAppend,
	}
}

// Filter returns the record filter described by the configuration.
func (c PipelineConfig) Filter() RecordFilter {
	return RecordFilter{
		Authors:       c.Authors,
		Books:         c.Books,
		ExcludeSuffix: c.ExcludeSuffix,
	}
}

// BuildPolicy returns the Document Builder rules described by the configuration.
func (c PipelineConfig) BuildPolicy() BuildPolicy {
	return BuildPolicy{MinTextLength: c.MinTextLength}
}

// Validate checks the numeric settings.
func (c PipelineConfig) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidInput, c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("%w: chunk overlap must be in [0, %d), got %d", ErrInvalidInput, c.ChunkSize, c.ChunkOverlap)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: batch size must be positive, got %d", ErrInvalidInput, c.BatchSize)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("%w: output directory is required", ErrInvalidInput)
	}
	if !c.WritePolicy.IsValid() {
		return fmt.Errorf("%w: write policy %q", ErrUnsupportedType, c.WritePolicy)
	}
	return nil
}
