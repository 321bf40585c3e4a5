package domain

// Record is one row of the commentary table.
// Records are read once and never modified.
type Record struct {
	// ID is the store-assigned identifier.
	ID int64

	// AuthorName is the church father the commentary is attributed to.
	AuthorName string

	// FileName is the source file the row was imported from.
	FileName string

	// AuthorNameSuffix qualifies the attribution (e.g. "quoted by Aquinas").
	AuthorNameSuffix string

	// SuffixNull is set when the stored suffix is NULL rather than empty.
	// The suffix exclusion never matches such rows, so they are dropped.
	SuffixNull bool

	// Timestamp is the import time as stored in the database.
	Timestamp int64

	// Book is the Bible book identifier (e.g. "matthew", "1corinthians").
	Book string

	// LocationStart and LocationEnd encode the verse range covered.
	LocationStart int64
	LocationEnd   int64

	// Text is the commentary body.
	Text string

	// SourceURL and SourceTitle identify the published work.
	SourceURL   string
	SourceTitle string
}

// RecordFilter holds the inclusion predicates applied by a RecordSource.
// All predicates must hold for a record to be returned.
type RecordFilter struct {
	// Authors is the author allow-list. Empty means no author restriction.
	Authors []string

	// Books is the book allow-list. Empty means no book restriction.
	Books []string

	// ExcludeSuffix drops records whose AuthorNameSuffix contains it,
	// and records with a NULL suffix. Empty disables the exclusion.
	ExcludeSuffix string
}
