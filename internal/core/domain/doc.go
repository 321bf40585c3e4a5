// Package domain defines the core entities of the commentary embedding pipeline.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Record: A row read from the commentary store
//   - Document: A filtered, metadata-tagged unit of commentary text
//   - Segment: A length-bounded piece of a Document
//   - StoredSegment: A persisted segment read back from disk
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
