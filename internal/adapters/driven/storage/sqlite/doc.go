// Package sqlite provides a SQLite-backed implementation of the
// driven.IndexCache port.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. It persists index
// snapshots so a restart against an unchanged document skips the chunking and
// embedding phases entirely.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files. A snapshot row holds the document identity, embedding model and
// dimensions; chunk rows hold content plus the embedding vector as a
// little-endian float32 blob.
//
// # Data Location
//
// By default, the database is stored at ~/.ansera/index.db
//
// # Thread Safety
//
// All operations are thread-safe. The cache uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
