package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/beveragebuddy/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/beveragebuddy/internal/services/admin/storage"
	"github.com/louisbranch/beveragebuddy/internal/services/admin/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// dsnPragmas are applied by the driver to every pooled connection.
const dsnPragmas = "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"

// Store persists catalog state in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite catalog store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	sqlDB, err := sql.Open("sqlite", cleanPath+dsnPragmas)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// ListCategories returns every category ordered by name.
func (s *Store) ListCategories(ctx context.Context) ([]storage.Category, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY name COLLATE NOCASE ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []storage.Category
	for rows.Next() {
		var category storage.Category
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, fmt.Errorf("list categories: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// GetCategory returns one category by id.
func (s *Store) GetCategory(ctx context.Context, id string) (storage.Category, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Category{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.Category{}, fmt.Errorf("category id is required")
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT id, name FROM categories WHERE id = ?`, id)
	return scanCategory(row, "get category")
}

// GetCategoryByName returns one category by case-insensitive name.
func (s *Store) GetCategoryByName(ctx context.Context, name string) (storage.Category, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Category{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return storage.Category{}, fmt.Errorf("category name is required")
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT id, name FROM categories WHERE name = ?`, name)
	return scanCategory(row, "get category by name")
}

func scanCategory(row *sql.Row, op string) (storage.Category, error) {
	var category storage.Category
	if err := row.Scan(&category.ID, &category.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Category{}, storage.ErrNotFound
		}
		return storage.Category{}, fmt.Errorf("%s: %w", op, err)
	}
	return category, nil
}

// PutCategory inserts a category or renames an existing one.
func (s *Store) PutCategory(ctx context.Context, category storage.Category) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	id := strings.TrimSpace(category.ID)
	name := strings.TrimSpace(category.Name)
	if id == "" {
		return fmt.Errorf("category id is required")
	}
	if name == "" {
		return fmt.Errorf("category name is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO categories (id, name) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
		id,
		name,
	)
	if err != nil {
		if isConstraint(err, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("put category: %w", err)
	}
	return nil
}

// DeleteCategory removes a category that no review references.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("category id is required")
	}
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		if isConstraint(err, sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY) {
			return storage.ErrCategoryInUse
		}
		return fmt.Errorf("delete category: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteCategoryReassigning moves the reviews of category id to targetID and
// deletes the category in one transaction.
func (s *Store) DeleteCategoryReassigning(ctx context.Context, id string, targetID string) (moved int, err error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	id = strings.TrimSpace(id)
	targetID = strings.TrimSpace(targetID)
	if id == "" || targetID == "" {
		return 0, fmt.Errorf("category id and target id are required")
	}
	if id == targetID {
		return 0, fmt.Errorf("category %s cannot be reassigned to itself", id)
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin delete category: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	result, err := tx.ExecContext(ctx, `UPDATE reviews SET category_id = ? WHERE category_id = ?`, targetID, id)
	if err != nil {
		if isConstraint(err, sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY) {
			return 0, storage.ErrUnknownCategory
		}
		return 0, fmt.Errorf("reassign reviews: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reassign reviews: %w", err)
	}

	result, err = tx.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		if isConstraint(err, sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY) {
			return 0, storage.ErrCategoryInUse
		}
		return 0, fmt.Errorf("delete category: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete category: %w", err)
	}
	if deleted == 0 {
		return 0, storage.ErrNotFound
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit delete category: %w", err)
	}
	return int(affected), nil
}

const reviewColumns = `r.id, r.name, r.score, r.count, r.category_id, c.name, r.tested_at`

// ListReviewsByCategoryName returns reviews whose category has the given name.
func (s *Store) ListReviewsByCategoryName(ctx context.Context, categoryName string) ([]storage.Review, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	categoryName = strings.TrimSpace(categoryName)
	if categoryName == "" {
		return nil, fmt.Errorf("category name is required")
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT `+reviewColumns+`
		   FROM reviews r
		   JOIN categories c ON c.id = r.category_id
		  WHERE c.name = ?
		  ORDER BY r.name COLLATE NOCASE ASC, r.id ASC`,
		categoryName,
	)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []storage.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("list reviews: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// GetReview returns one review by id.
func (s *Store) GetReview(ctx context.Context, id string) (storage.Review, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Review{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.Review{}, fmt.Errorf("review id is required")
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT `+reviewColumns+`
		   FROM reviews r
		   JOIN categories c ON c.id = r.category_id
		  WHERE r.id = ?`,
		id,
	)
	review, err := scanReview(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Review{}, storage.ErrNotFound
		}
		return storage.Review{}, fmt.Errorf("get review: %w", err)
	}
	return review, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReview(row rowScanner) (storage.Review, error) {
	var review storage.Review
	var testedAt int64
	if err := row.Scan(
		&review.ID,
		&review.Name,
		&review.Score,
		&review.Count,
		&review.CategoryID,
		&review.CategoryName,
		&testedAt,
	); err != nil {
		return storage.Review{}, err
	}
	review.TestedAt = fromMillis(testedAt)
	return review, nil
}

// PutReview inserts or updates a review.
func (s *Store) PutReview(ctx context.Context, review storage.Review) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	id := strings.TrimSpace(review.ID)
	name := strings.TrimSpace(review.Name)
	categoryID := strings.TrimSpace(review.CategoryID)
	if id == "" {
		return fmt.Errorf("review id is required")
	}
	if name == "" {
		return fmt.Errorf("review name is required")
	}
	if categoryID == "" {
		return fmt.Errorf("review category id is required")
	}
	if review.Count < 0 {
		return fmt.Errorf("review count must not be negative")
	}
	testedAt := review.TestedAt
	if testedAt.IsZero() {
		testedAt = time.Now()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO reviews (id, name, score, count, category_id, tested_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   score = excluded.score,
		   count = excluded.count,
		   category_id = excluded.category_id,
		   tested_at = excluded.tested_at`,
		id,
		name,
		review.Score,
		review.Count,
		categoryID,
		toMillis(testedAt),
	)
	if err != nil {
		if isConstraint(err, sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY) {
			return storage.ErrUnknownCategory
		}
		return fmt.Errorf("put review: %w", err)
	}
	return nil
}

// CountReviews returns the number of stored reviews.
func (s *Store) CountReviews(ctx context.Context) (int, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	var count int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM reviews`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count reviews: %w", err)
	}
	return count, nil
}

func isConstraint(err error, code int) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == code
	}
	message := strings.ToLower(err.Error())
	switch code {
	case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
		return strings.Contains(message, "unique constraint failed")
	case sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY:
		return strings.Contains(message, "foreign key constraint failed")
	}
	return false
}

var _ storage.Store = (*Store)(nil)
