// Package storage defines persistence contracts for the beverage catalog:
// categories and the reviews that reference them.
//
// Handlers and services depend on these interfaces so they stay testable
// without a concrete SQLite schema.
package storage
