// Package memory provides in-memory adapters for tests and small fixtures.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/custodia-labs/patristic/internal/core/domain"
	"github.com/custodia-labs/patristic/internal/core/ports/driven"
)

// Ensure RecordSource implements the interface.
var _ driven.RecordSource = (*RecordSource)(nil)

// RecordSource is an in-memory implementation of driven.RecordSource.
// It applies the same predicates as the SQLite query.
type RecordSource struct {
	mu      sync.RWMutex
	records []domain.Record
	closed  bool
}

// NewRecordSource creates a record source holding records in insertion order.
func NewRecordSource(records ...domain.Record) *RecordSource {
	return &RecordSource{
		records: slices.Clone(records),
	}
}

// Add appends records.
func (s *RecordSource) Add(records ...domain.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
}

// Fetch returns the records matching filter, in insertion order.
func (s *RecordSource) Fetch(ctx context.Context, filter domain.RecordFilter) ([]domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, domain.ErrStoreUnavailable
	}

	result := make([]domain.Record, 0, len(s.records))
	for _, r := range s.records {
		if Matches(r, filter) {
			result = append(result, r)
		}
	}
	return result, nil
}

// Close marks the source closed. Later fetches fail.
func (s *RecordSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Matches reports whether r satisfies every predicate in filter.
// The suffix exclusion is case-insensitive, like SQLite's LIKE for ASCII text,
// and drops NULL suffixes the way SQL's NOT LIKE does.
func Matches(r domain.Record, filter domain.RecordFilter) bool {
	if len(filter.Authors) > 0 && !slices.Contains(filter.Authors, r.AuthorName) {
		return false
	}
	if len(filter.Books) > 0 && !slices.Contains(filter.Books, r.Book) {
		return false
	}
	if filter.ExcludeSuffix != "" && (r.SuffixNull ||
		strings.Contains(strings.ToLower(r.AuthorNameSuffix), strings.ToLower(filter.ExcludeSuffix))) {
		return false
	}
	return true
}
