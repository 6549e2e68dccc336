// Package sqlite opens embedded SQLite databases through mattn/go-sqlite3
// (cgo) and applies migrations to them.
//
// It is the default SQL backend of the worker and the backend used by store
// tests, which open MemoryPath databases.
package sqlite
