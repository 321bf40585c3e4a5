package domain

// Metadata keys attached to every Document and Segment.
const (
	MetaID               = "id"
	MetaAuthorName       = "author_name"
	MetaBook             = "book"
	MetaLocationStart    = "location_start"
	MetaLocationEnd      = "location_end"
	MetaSourceURL        = "source_url"
	MetaSourceTitle      = "source_title"
	MetaAuthorNameSuffix = "author_name_suffix"
)

// Metadata maps metadata keys to scalar values.
type Metadata map[string]any

// Clone returns a shallow copy. Values are scalars so a shallow copy is enough.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// String returns the value for key as a string, or "" when absent or not a string.
func (m Metadata) String(key string) string {
	s, _ := m[key].(string)
	return s
}

// Document is a commentary text that passed the inclusion filters.
// It is the complete text before chunking.
type Document struct {
	// Content is the commentary text.
	Content string

	// Metadata describes where the text came from.
	Metadata Metadata
}

// NewDocument builds a Document from a Record.
func NewDocument(r Record) Document {
	return Document{
		Content: r.Text,
		Metadata: Metadata{
			MetaID:               r.ID,
			MetaAuthorName:       r.AuthorName,
			MetaBook:             r.Book,
			MetaLocationStart:    r.LocationStart,
			MetaLocationEnd:      r.LocationEnd,
			MetaSourceURL:        r.SourceURL,
			MetaSourceTitle:      r.SourceTitle,
			MetaAuthorNameSuffix: r.AuthorNameSuffix,
		},
	}
}

// RecordID returns the id of the Record the Document was built from.
func (d Document) RecordID() int64 {
	id, _ := d.Metadata[MetaID].(int64)
	return id
}

// Segment is a contiguous piece of a Document's content.
// Segments inherit the parent Document's metadata unmodified.
type Segment struct {
	// ID is a unique identifier for the segment.
	ID string

	// DocumentID is the record id of the parent Document.
	DocumentID int64

	// Position is the ordinal position within the parent Document.
	Position int

	// Content is the text of this segment.
	Content string

	// Metadata is a copy of the parent Document's metadata.
	Metadata Metadata
}

// Book returns the segment's book metadata, or "unknown" when missing.
func (s Segment) Book() string {
	if b := s.Metadata.String(MetaBook); b != "" {
		return b
	}
	return "unknown"
}

// AuthorName returns the segment's author metadata, or "unknown" when missing.
func (s Segment) AuthorName() string {
	if a := s.Metadata.String(MetaAuthorName); a != "" {
		return a
	}
	return "unknown"
}

// StoredSegment is a persisted segment read back from the output directory.
type StoredSegment struct {
	// Path is the file the segment was loaded from.
	Path string

	Content   string
	Metadata  Metadata
	Embedding []float32
}
