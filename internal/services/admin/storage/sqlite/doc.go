// Package sqlite provides the SQLite-backed catalog store.
//
// Referential integrity between reviews and categories is enforced by the
// schema: a category that still has reviews cannot be deleted.
package sqlite
