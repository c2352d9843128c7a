// Package sqlitemigrate applies embedded SQL migration files to SQLite.
package sqlitemigrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

const migrationTable = "schema_migrations"

const (
	upMarker   = "-- +migrate Up"
	downMarker = "-- +migrate Down"
)

// ApplyMigrations executes every *.sql file under migrationRoot at most once,
// in lexical order. Each file runs in its own transaction together with the
// bookkeeping row, so a failed file is retried on the next start.
func ApplyMigrations(ctx context.Context, sqlDB *sql.DB, migrationFS fs.FS, migrationRoot string) error {
	if sqlDB == nil {
		return fmt.Errorf("sql db is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	root := strings.TrimSpace(migrationRoot)
	if root == "" {
		root = "."
	}

	entries, err := fs.ReadDir(migrationFS, root)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var sqlFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			sqlFiles = append(sqlFiles, entry.Name())
		}
	}
	sort.Strings(sqlFiles)

	createSQL := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    name TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
);
`, migrationTable)
	if _, err := sqlDB.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	for _, file := range sqlFiles {
		filePath := path.Join(root, file)
		key := file
		if root != "." {
			key = filePath
		}
		if err := applyFile(ctx, sqlDB, migrationFS, filePath, key); err != nil {
			return fmt.Errorf("migration %s: %w", file, err)
		}
	}
	return nil
}

func applyFile(ctx context.Context, sqlDB *sql.DB, migrationFS fs.FS, filePath string, key string) error {
	applied, err := isApplied(ctx, sqlDB, key)
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}
	if applied {
		return nil
	}

	content, err := fs.ReadFile(migrationFS, filePath)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	upSQL := ExtractUpMigration(string(content))
	if strings.TrimSpace(upSQL) == "" {
		return nil
	}

	tx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if _, err := tx.ExecContext(ctx, upSQL); err != nil && !IsAlreadyExistsError(err) {
		_ = tx.Rollback()
		return fmt.Errorf("exec: %w", err)
	}
	if _, err := tx.ExecContext(
		ctx,
		fmt.Sprintf("INSERT OR IGNORE INTO %s (name, applied_at) VALUES (?, ?)", migrationTable),
		key,
		time.Now().UTC().UnixMilli(),
	); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("record: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ExtractUpMigration returns the SQL in the -- +migrate Up section.
// Files without markers are returned unchanged.
func ExtractUpMigration(content string) string {
	upIdx := strings.Index(content, upMarker)
	if upIdx == -1 {
		return content
	}
	rest := content[upIdx+len(upMarker):]
	if downIdx := strings.Index(rest, downMarker); downIdx != -1 {
		return rest[:downIdx]
	}
	return rest
}

// IsAlreadyExistsError reports whether this error indicates idempotent DDL success.
func IsAlreadyExistsError(err error) bool {
	if err == nil {
		return false
	}
	value := strings.ToLower(err.Error())
	return strings.Contains(value, "already exists") || strings.Contains(value, "duplicate column name")
}

func isApplied(ctx context.Context, sqlDB *sql.DB, name string) (bool, error) {
	var found int
	row := sqlDB.QueryRowContext(ctx, "SELECT 1 FROM "+migrationTable+" WHERE name = ?", name)
	if err := row.Scan(&found); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
