// Package chunker provides a recursive character text chunker.
//
// Text is split on the largest boundary that keeps pieces under the chunk
// size (paragraph, line, sentence, word, then single characters) and the
// pieces are merged back into chunks that overlap by up to the configured
// number of characters. Lengths are measured in runes.
package chunker

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/textsplitter"

	"github.com/custodia-labs/patristic/internal/core/domain"
	"github.com/custodia-labs/patristic/internal/core/ports/driven"
)

// Ensure Processor implements the interface.
var _ driven.Chunker = (*Processor)(nil)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = domain.DefaultChunkSize

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = domain.DefaultChunkOverlap

// DefaultSeparators are tried in order, largest semantic boundary first.
var DefaultSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// Processor splits document content into overlapping chunks.
type Processor struct {
	chunkSize  int
	overlap    int
	separators []string
	splitter   textsplitter.RecursiveCharacter
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// WithSeparators replaces the boundary list. The last separator should be ""
// so that any text can be reduced below the chunk size.
func WithSeparators(seps ...string) Option {
	return func(p *Processor) {
		if len(seps) > 0 {
			p.separators = seps
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize:  DefaultChunkSize,
		overlap:    DefaultChunkOverlap,
		separators: DefaultSeparators,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed chunk size
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	p.splitter = textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(p.chunkSize),
		textsplitter.WithChunkOverlap(p.overlap),
		textsplitter.WithSeparators(p.separators),
	)

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "recursive-character"
}

// ChunkSize returns the configured chunk size.
func (p *Processor) ChunkSize() int {
	return p.chunkSize
}

// Overlap returns the configured overlap.
func (p *Processor) Overlap() int {
	return p.overlap
}

// Split splits the document content into segments.
func (p *Processor) Split(ctx context.Context, doc domain.Document) ([]domain.Segment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if doc.Content == "" {
		// Empty content produces no segments
		return nil, nil
	}

	pieces, err := p.splitter.SplitText(doc.Content)
	if err != nil {
		return nil, fmt.Errorf("split document %d: %w", doc.RecordID(), err)
	}

	segments := make([]domain.Segment, 0, len(pieces))
	for _, piece := range pieces {
		if piece == "" {
			continue
		}
		segments = append(segments, domain.Segment{
			ID:         uuid.New().String(),
			DocumentID: doc.RecordID(),
			Position:   len(segments),
			Content:    piece,
			Metadata:   doc.Metadata.Clone(),
		})
	}

	return segments, nil
}
