// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - RecordSource: Reads commentary records (SQLite, in-memory)
//   - Chunker: Splits documents into segments
//   - EmbeddingService: Generates vector embeddings (TEI, Ollama, OpenAI)
//   - SegmentWriter: Persists embedded segments (JSON files)
//   - SegmentReader: Reads persisted segments back
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the pipeline runs without them:
//
//   - ProgressReporter: Receives per-batch progress
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or postprocessor package
package driven
