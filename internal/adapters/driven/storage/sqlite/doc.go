// Package sqlite provides a SQLite-based cache for the provider's player
// dictionary.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Contents
//
// Only provider data is cached. The database never records which events
// or articles have been published.
package sqlite
