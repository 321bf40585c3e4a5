package domain

import "errors"

// Domain errors represent pipeline failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown provider or policy.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrStoreUnavailable indicates the commentary store could not be opened.
	ErrStoreUnavailable = errors.New("record store unavailable")

	// ErrQueryFailed indicates the commentary query could not be executed.
	ErrQueryFailed = errors.New("record query failed")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured
	// or cannot be reached.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrDimensionMismatch indicates an embedding of unexpected length.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrZeroVector indicates an embedding that cannot be normalised.
	ErrZeroVector = errors.New("zero-magnitude embedding")

	// ErrCorruptSegment indicates a persisted segment file that cannot be parsed.
	ErrCorruptSegment = errors.New("corrupt segment file")
)
