package domain

import "time"

// BuildStatus records whether a Record became a Document.
type BuildStatus string

// Build statuses.
const (
	BuildKept     BuildStatus = "kept"
	BuildFiltered BuildStatus = "filtered"
)

// FilterReason explains why a Record was dropped by the Document Builder.
type FilterReason string

// Filter reasons, in the order the checks are evaluated.
const (
	FilterNone               FilterReason = ""
	FilterTextTooShort       FilterReason = "text_too_short"
	FilterMissingSourceTitle FilterReason = "missing_source_title"
)

// BuildOutcome is the Document Builder's verdict for one Record.
type BuildOutcome struct {
	RecordID int64
	Status   BuildStatus
	Reason   FilterReason
}

// EmbeddedSegment pairs a Segment with its embedding vector.
type EmbeddedSegment struct {
	Segment Segment
	Vector  []float32
}

// BatchFailure records a batch whose Segments were dropped.
type BatchFailure struct {
	// Index is the zero-based batch number.
	Index int

	// Start is the offset of the batch's first Segment in the input.
	Start int

	// Size is the number of Segments dropped.
	Size int

	// Err is the cause.
	Err error
}

// EmbedResult is the output of an embedding pass.
// Items keeps input order; Failures lists dropped batches.
type EmbedResult struct {
	Items      []EmbeddedSegment
	Failures   []BatchFailure
	Dimensions int
}

// Dropped returns the number of Segments lost to failed batches.
func (r EmbedResult) Dropped() int {
	n := 0
	for _, f := range r.Failures {
		n += f.Size
	}
	return n
}

// WriteStatus records what the Persister did with a Segment.
type WriteStatus string

// Write statuses.
const (
	WriteCreated     WriteStatus = "created"
	WriteOverwritten WriteStatus = "overwritten"
	WriteSkipped     WriteStatus = "skipped"
)

// WriteOutcome is the Persister's result for one Segment.
type WriteOutcome struct {
	SegmentID string
	Path      string
	Status    WriteStatus
}

// RunReport summarises a pipeline run.
type RunReport struct {
	RecordsRead int
	Builds      []BuildOutcome
	Documents   int
	Segments    int
	Embedding   EmbedResult
	Writes      []WriteOutcome
	Elapsed     time.Duration
}

// Filtered returns the number of Records dropped for the given reason.
func (r *RunReport) Filtered(reason FilterReason) int {
	n := 0
	for _, b := range r.Builds {
		if b.Status == BuildFiltered && b.Reason == reason {
			n++
		}
	}
	return n
}

// WriteCount returns the number of writes with the given status.
func (r *RunReport) WriteCount(status WriteStatus) int {
	n := 0
	for _, w := range r.Writes {
		if w.Status == status {
			n++
		}
	}
	return n
}

// Corpus is the reverse loader's view of an output directory.
type Corpus struct {
	// Segments and Embeddings are parallel slices.
	Segments   []StoredSegment
	Embeddings [][]float32

	// Books counts files per book metadata value.
	Books map[string]int

	// Dimensions is the embedding length, or 0 when lengths disagree or the corpus is empty.
	Dimensions int

	// NonUnit counts embeddings whose L2 norm is not 1 within tolerance.
	NonUnit int
}
