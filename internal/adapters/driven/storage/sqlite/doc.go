// Package sqlite reads commentary records from a SQLite database.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. The database is opened read-only; the pipeline never writes to it.
//
// # Schema
//
// Records come from a single table:
//
//	commentary(id, father_name, file_name, append_to_author_name, ts, book,
//	           location_start, location_end, txt, source_url, source_title)
//
// Every column except id may be NULL. NULL text columns read as "" and NULL
// integers as 0.
package sqlite
