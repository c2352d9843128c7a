package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/beveragebuddy/internal/services/admin/storage"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ReviewService manages reviews.
type ReviewService struct {
	store      storage.ReviewStore
	categories storage.CategoryStore
	counts     *countCache
	newID      func() (string, error)
	tracer     trace.Tracer
}

// FindReviews returns the reviews of the category named categoryName.
func (s *ReviewService) FindReviews(ctx context.Context, categoryName string) (reviews []storage.Review, err error) {
	ctx, end := startSpan(ctx, s.tracer, "FindReviews", attribute.String("category.name", categoryName))
	defer end(&err)

	reviews, err = s.store.ListReviewsByCategoryName(ctx, categoryName)
	if err != nil {
		return nil, fmt.Errorf("find reviews: %w", err)
	}
	return reviews, nil
}

// SaveReview validates and stores review. The category may be given by ID or
// by name; an empty ID inserts a new review.
func (s *ReviewService) SaveReview(ctx context.Context, review storage.Review) (saved storage.Review, err error) {
	ctx, end := startSpan(ctx, s.tracer, "SaveReview", attribute.String("review.id", review.ID))
	defer end(&err)

	saved = review
	saved.Name = strings.TrimSpace(review.Name)
	if saved.Name == "" {
		return storage.Review{}, &ValidationError{Field: "name", Message: MsgNameRequired}
	}
	if saved.Count < 0 {
		return storage.Review{}, &ValidationError{Field: "count", Message: MsgCountNegative}
	}

	var category storage.Category
	if strings.TrimSpace(saved.CategoryID) != "" {
		category, err = s.categories.GetCategory(ctx, saved.CategoryID)
	} else {
		category, err = s.categories.GetCategoryByName(ctx, saved.CategoryName)
	}
	if err != nil {
		return storage.Review{}, fmt.Errorf("save review category: %w", err)
	}
	saved.CategoryID = category.ID
	saved.CategoryName = category.Name

	if strings.TrimSpace(saved.ID) == "" {
		saved.ID, err = s.newID()
		if err != nil {
			return storage.Review{}, fmt.Errorf("save review: %w", err)
		}
	}
	if err := s.store.PutReview(ctx, saved); err != nil {
		return storage.Review{}, fmt.Errorf("save review: %w", err)
	}
	s.counts.purge()
	return saved, nil
}

// ReviewCount returns the summed tasting count of the category's reviews.
func (s *ReviewService) ReviewCount(ctx context.Context, categoryName string) (int, error) {
	key := countKey(categoryName)
	total, generation, ok := s.counts.lookup(key)
	if ok {
		return total, nil
	}
	reviews, err := s.FindReviews(ctx, categoryName)
	if err != nil {
		return 0, err
	}
	total = 0
	for _, review := range reviews {
		total += review.Count
	}
	s.counts.store(generation, key, total)
	return total, nil
}

// ReviewEntries returns how many review records belong to the category. The
// delete confirmation uses it to warn about reassignment.
func (s *ReviewService) ReviewEntries(ctx context.Context, categoryName string) (int, error) {
	reviews, err := s.FindReviews(ctx, categoryName)
	if err != nil {
		return 0, err
	}
	return len(reviews), nil
}
