package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a uniqueness-constrained record already exists.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrCategoryInUse indicates a category still has reviews referencing it.
	ErrCategoryInUse = errors.New("category is referenced by reviews")
	// ErrUnknownCategory indicates a review references a missing category.
	ErrUnknownCategory = errors.New("review references an unknown category")
)

const (
	// UndefinedCategoryID identifies the sentinel category that receives
	// reviews of deleted categories. The initial migration creates it.
	UndefinedCategoryID = "undefined"
	// UndefinedCategoryName is the display name of the sentinel category.
	UndefinedCategoryName = "(undefined)"
)

// Category groups reviews under a display name.
type Category struct {
	ID   string
	Name string
}

// Review records how many times a beverage was tasted and how it scored.
type Review struct {
	ID    string
	Name  string
	Score int
	Count int
	// CategoryID is the stored reference; CategoryName is resolved on read.
	CategoryID   string
	CategoryName string
	TestedAt     time.Time
}

// CategoryStore persists categories.
type CategoryStore interface {
	// ListCategories returns every category ordered by name.
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, id string) (Category, error)
	GetCategoryByName(ctx context.Context, name string) (Category, error)
	// PutCategory inserts or renames a category.
	PutCategory(ctx context.Context, category Category) error
	DeleteCategory(ctx context.Context, id string) error
	// DeleteCategoryReassigning moves every review of category id to
	// targetID and deletes the category atomically. It returns the number of
	// moved reviews.
	DeleteCategoryReassigning(ctx context.Context, id string, targetID string) (int, error)
}

// ReviewStore persists reviews.
type ReviewStore interface {
	ListReviewsByCategoryName(ctx context.Context, categoryName string) ([]Review, error)
	GetReview(ctx context.Context, id string) (Review, error)
	// PutReview inserts or updates a review.
	PutReview(ctx context.Context, review Review) error
	CountReviews(ctx context.Context) (int, error)
}

// Store is a composite interface for catalog storage concerns.
type Store interface {
	CategoryStore
	ReviewStore
	Close() error
}
