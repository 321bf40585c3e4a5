package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/patristic/internal/core/domain"
	"github.com/custodia-labs/patristic/internal/core/ports/driven"
	"github.com/custodia-labs/patristic/internal/logger"
)

// Ensure RecordSource implements the interface.
var _ driven.RecordSource = (*RecordSource)(nil)

// TableName is the table records are read from.
const TableName = "commentary"

const selectColumns = "id, father_name, file_name, append_to_author_name, CAST(ts AS INTEGER), book, " +
	"location_start, location_end, txt, source_url, source_title"

// RecordSource is a read-only driven.RecordSource over a SQLite file.
type RecordSource struct {
	db   *sql.DB
	path string
}

// Open opens the database at path read-only and checks that it holds the
// commentary table. A missing file, a file that is not a database or a
// database without the table yields domain.ErrStoreUnavailable.
func Open(path string) (*RecordSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStoreUnavailable, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrStoreUnavailable, path)
	}

	// mode=ro refuses writes and never creates the file
	dsn := "file:" + (&url.URL{Path: path}).EscapedPath() + "?mode=ro&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", domain.ErrStoreUnavailable, path, err)
	}

	// Ping alone does not read the file header; the schema lookup does
	var tables int
	err = db.QueryRow("SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?", TableName).Scan(&tables)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: opening %s: %w", domain.ErrStoreUnavailable, path, err)
	}
	if tables == 0 {
		db.Close()
		return nil, fmt.Errorf("%w: %s has no %s table", domain.ErrStoreUnavailable, path, TableName)
	}

	return &RecordSource{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *RecordSource) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *RecordSource) Close() error {
	return s.db.Close()
}

// Fetch runs the filter query and returns matching records ordered by id.
// Any database error yields domain.ErrQueryFailed.
func (s *RecordSource) Fetch(ctx context.Context, filter domain.RecordFilter) ([]domain.Record, error) {
	query, args := buildQuery(filter)
	logger.Print("Running query: %s (%d args)", query, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, queryError(ctx, "querying records", err)
	}
	defer rows.Close()

	var records []domain.Record //nolint:prealloc // size unknown from query
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, queryError(ctx, "scanning record", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, queryError(ctx, "iterating records", err)
	}

	logger.Debug("fetched %d records from %s", len(records), s.path)
	return records, nil
}

// queryError keeps context errors visible to callers and tags the rest.
func queryError(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrQueryFailed, op, err)
}

// buildQuery renders the record query for filter with bound parameters.
// NOT LIKE on a NULL suffix is NULL, so such rows fail the exclusion.
func buildQuery(filter domain.RecordFilter) (string, []any) {
	var (
		where []string
		args  []any
	)

	if len(filter.Authors) > 0 {
		where = append(where, "father_name IN ("+placeholders(len(filter.Authors))+")")
		for _, a := range filter.Authors {
			args = append(args, a)
		}
	}
	if len(filter.Books) > 0 {
		where = append(where, "book IN ("+placeholders(len(filter.Books))+")")
		for _, b := range filter.Books {
			args = append(args, b)
		}
	}
	if filter.ExcludeSuffix != "" {
		where = append(where, "append_to_author_name NOT LIKE '%' || ? || '%'")
		args = append(args, filter.ExcludeSuffix)
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(selectColumns)
	b.WriteString(" FROM ")
	b.WriteString(TableName)
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY id")

	return b.String(), args
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func scanRecord(rows *sql.Rows) (domain.Record, error) {
	var (
		id                             int64
		author, fileName, suffix, book sql.NullString
		text, sourceURL, sourceTitle   sql.NullString
		ts, locationStart, locationEnd sql.NullInt64
	)

	err := rows.Scan(&id, &author, &fileName, &suffix, &ts, &book,
		&locationStart, &locationEnd, &text, &sourceURL, &sourceTitle)
	if err != nil {
		return domain.Record{}, err
	}

	return domain.Record{
		ID:               id,
		AuthorName:       author.String,
		FileName:         fileName.String,
		AuthorNameSuffix: suffix.String,
		SuffixNull:       !suffix.Valid,
		Timestamp:        ts.Int64,
		Book:             book.String,
		LocationStart:    locationStart.Int64,
		LocationEnd:      locationEnd.Int64,
		Text:             text.String,
		SourceURL:        sourceURL.String,
		SourceTitle:      sourceTitle.String,
	}, nil
}
