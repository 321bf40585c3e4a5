package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/patristic/internal/core/domain"
	"github.com/custodia-labs/patristic/internal/core/ports/driven"
	"github.com/custodia-labs/patristic/internal/core/ports/driving"
	"github.com/custodia-labs/patristic/internal/logger"
)

// Ensure PipelineService implements the interface.
var _ driving.Pipeline = (*PipelineService)(nil)

// PipelineDeps holds the adapters a pipeline run talks to.
// Progress is optional.
type PipelineDeps struct {
	Source    driven.RecordSource
	Chunker   driven.Chunker
	Embedding driven.EmbeddingService
	Writer    driven.SegmentWriter
	Progress  driven.ProgressReporter
}

// PipelineService runs query, filter, split, embed and persist in sequence.
type PipelineService struct {
	cfg  domain.PipelineConfig
	deps PipelineDeps
	now  func() time.Time
}

// NewPipelineService creates a pipeline over the given configuration and adapters.
func NewPipelineService(cfg domain.PipelineConfig, deps PipelineDeps) *PipelineService {
	return &PipelineService{
		cfg:  cfg,
		deps: deps,
		now:  time.Now,
	}
}

// Run executes the pipeline once.
//
//nolint:gocyclo // Orchestration function with necessary sequential steps
func (p *PipelineService) Run(ctx context.Context) (*domain.RunReport, error) {
	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}
	if p.deps.Source == nil || p.deps.Chunker == nil || p.deps.Writer == nil {
		return nil, fmt.Errorf("%w: pipeline requires a record source, chunker and writer", domain.ErrInvalidInput)
	}
	if p.deps.Embedding == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	started := p.now()
	report := &domain.RunReport{}

	// 1. QUERY
	logger.Section("Query")
	records, err := p.deps.Source.Fetch(ctx, p.cfg.Filter())
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	report.RecordsRead = len(records)
	logger.Info("Fetched %d records", len(records))

	// 2. FILTER
	docs, builds := BuildDocuments(records, p.cfg.BuildPolicy())
	report.Builds = builds
	report.Documents = len(docs)
	logger.Debug("Dropped %d short and %d untitled records",
		report.Filtered(domain.FilterTextTooShort), report.Filtered(domain.FilterMissingSourceTitle))

	// 3. SPLIT
	logger.Section("Split")
	segments, err := SplitDocuments(ctx, p.deps.Chunker, docs)
	if err != nil {
		return report, fmt.Errorf("split documents: %w", err)
	}
	report.Segments = len(segments)
	logger.Print("%d segments created from %d documents", len(segments), len(docs))

	// 4. EMBED
	logger.Section("Embed")
	logger.Print("Generating embeddings with model %s...", p.deps.Embedding.ModelName())
	embedder := NewBatchEmbedder(p.deps.Embedding,
		WithBatchSize(p.cfg.BatchSize),
		WithInstruction(p.cfg.Instruction),
		WithNormalize(p.cfg.Normalize),
		WithProgress(p.deps.Progress),
	)
	report.Embedding = embedder.Embed(ctx, segments)
	if dropped := report.Embedding.Dropped(); dropped > 0 {
		logger.Warn("%d of %d segments were not embedded", dropped, len(segments))
	}

	// 5. PERSIST
	logger.Section("Persist")
	logger.Print("Saving embeddings to JSON files in %s...", p.cfg.OutputDir)
	report.Writes = make([]domain.WriteOutcome, 0, len(report.Embedding.Items))
	for _, item := range report.Embedding.Items {
		if err := ctx.Err(); err != nil {
			report.Elapsed = p.now().Sub(started)
			return report, err
		}
		outcome, err := p.deps.Writer.Write(ctx, item.Segment, item.Vector)
		if err != nil {
			report.Elapsed = p.now().Sub(started)
			return report, fmt.Errorf("write segment %s: %w", item.Segment.ID, err)
		}
		report.Writes = append(report.Writes, outcome)
		logger.Debug("%s %s", outcome.Status, outcome.Path)
	}

	report.Elapsed = p.now().Sub(started)
	logger.Print("Completed in %.2f seconds", report.Elapsed.Seconds())
	return report, nil
}
