package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/louisbranch/beveragebuddy/internal/services/admin/storage"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// MinNameLength is the minimum number of characters in a category name.
const MinNameLength = 3

// CategoryService manages categories.
type CategoryService struct {
	store  storage.CategoryStore
	counts *countCache
	newID  func() (string, error)
	tracer trace.Tracer
}

// IsUndefined reports whether category is the sentinel category.
func IsUndefined(category storage.Category) bool {
	return category.ID == storage.UndefinedCategoryID
}

// FindCategories returns the categories whose name contains filter, ignoring
// case. An empty filter returns every category.
func (s *CategoryService) FindCategories(ctx context.Context, filter string) (categories []storage.Category, err error) {
	ctx, end := startSpan(ctx, s.tracer, "FindCategories", attribute.String("filter", filter))
	defer end(&err)

	all, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("find categories: %w", err)
	}
	needle := strings.ToLower(strings.TrimSpace(filter))
	if needle == "" {
		return all, nil
	}
	categories = make([]storage.Category, 0, len(all))
	for _, category := range all {
		if strings.Contains(strings.ToLower(category.Name), needle) {
			categories = append(categories, category)
		}
	}
	return categories, nil
}

// Category returns one category by id.
func (s *CategoryService) Category(ctx context.Context, id string) (category storage.Category, err error) {
	ctx, end := startSpan(ctx, s.tracer, "Category", attribute.String("category.id", id))
	defer end(&err)

	category, err = s.store.GetCategory(ctx, id)
	if err != nil {
		return storage.Category{}, fmt.Errorf("get category %s: %w", id, err)
	}
	return category, nil
}

// UndefinedCategory returns the sentinel category.
func (s *CategoryService) UndefinedCategory(ctx context.Context) (storage.Category, error) {
	category, err := s.store.GetCategory(ctx, storage.UndefinedCategoryID)
	if err != nil {
		return storage.Category{}, fmt.Errorf("get undefined category: %w", err)
	}
	return category, nil
}

// SaveCategory validates and stores category. An empty ID inserts a new
// category; otherwise the existing one is renamed.
func (s *CategoryService) SaveCategory(ctx context.Context, category storage.Category) (saved storage.Category, err error) {
	ctx, end := startSpan(ctx, s.tracer, "SaveCategory", attribute.String("category.id", category.ID))
	defer end(&err)

	if IsUndefined(category) {
		return storage.Category{}, ErrUndefinedCategory
	}
	name := strings.TrimSpace(category.Name)
	if utf8.RuneCountInString(name) < MinNameLength {
		return storage.Category{}, &ValidationError{Field: "name", Message: MsgNameTooShort}
	}

	existing, err := s.store.GetCategoryByName(ctx, name)
	switch {
	case err == nil && existing.ID != category.ID:
		return storage.Category{}, &ValidationError{Field: "name", Message: MsgNameNotUnique}
	case err != nil && !errors.Is(err, storage.ErrNotFound):
		return storage.Category{}, fmt.Errorf("save category: %w", err)
	}

	saved = storage.Category{ID: strings.TrimSpace(category.ID), Name: name}
	if saved.ID == "" {
		saved.ID, err = s.newID()
		if err != nil {
			return storage.Category{}, fmt.Errorf("save category: %w", err)
		}
	} else if _, err := s.store.GetCategory(ctx, saved.ID); err != nil {
		return storage.Category{}, fmt.Errorf("save category %s: %w", saved.ID, err)
	}

	if err := s.store.PutCategory(ctx, saved); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return storage.Category{}, &ValidationError{Field: "name", Message: MsgNameNotUnique}
		}
		return storage.Category{}, fmt.Errorf("save category: %w", err)
	}
	s.counts.purge()
	return saved, nil
}

// DeleteCategory moves every review of category to the undefined category and
// then removes category. Both happen in one storage transaction, so a failure
// leaves the reviews where they were.
func (s *CategoryService) DeleteCategory(ctx context.Context, category storage.Category) (err error) {
	ctx, end := startSpan(ctx, s.tracer, "DeleteCategory", attribute.String("category.id", category.ID))
	defer end(&err)

	if IsUndefined(category) {
		return ErrUndefinedCategory
	}
	current, err := s.store.GetCategory(ctx, category.ID)
	if err != nil {
		return fmt.Errorf("delete category %s: %w", category.ID, err)
	}
	undefined, err := s.UndefinedCategory(ctx)
	if err != nil {
		return fmt.Errorf("delete category %s: %w", category.ID, err)
	}

	moved, err := s.store.DeleteCategoryReassigning(ctx, current.ID, undefined.ID)
	if err != nil {
		return fmt.Errorf("delete category %s: %w", category.ID, err)
	}
	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("reviews.reassigned", moved))
	s.counts.purge()
	return nil
}

// Suggest returns the category name closest to filter when it is within a
// few edits, for "did you mean" hints on empty searches.
func (s *CategoryService) Suggest(ctx context.Context, filter string) (string, bool, error) {
	needle := strings.ToLower(strings.TrimSpace(filter))
	if needle == "" {
		return "", false, nil
	}
	all, err := s.store.ListCategories(ctx)
	if err != nil {
		return "", false, fmt.Errorf("suggest category: %w", err)
	}
	maxDistance := utf8.RuneCountInString(needle) / 3
	if maxDistance < 2 {
		maxDistance = 2
	}

	best := ""
	bestDistance := maxDistance + 1
	for _, category := range all {
		if IsUndefined(category) {
			continue
		}
		distance := levenshtein.ComputeDistance(needle, strings.ToLower(category.Name))
		if distance < bestDistance {
			best = category.Name
			bestDistance = distance
		}
	}
	if best == "" {
		return "", false, nil
	}
	return best, true, nil
}
