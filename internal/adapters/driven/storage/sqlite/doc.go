// Package sqlite provides SQLite-based persistence for embedding vectors.
// It uses modernc.org/sqlite (pure Go, no cgo) with WAL mode and embedded
// schema migrations.
package sqlite
