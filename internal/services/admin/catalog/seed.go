package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/louisbranch/beveragebuddy/internal/services/admin/storage"
)

type demoReview struct {
	beverage string
	category string
	score    int
	count    int
}

// DemoCategories are the categories created by SeedDemo.
var DemoCategories = []string{
	"Mineral Water", "Soft Drink", "Coffee", "Tea", "Dairy",
	"Cider", "Beer", "Wine", "Other",
}

var demoReviews = []demoReview{
	{beverage: "Evian", category: "Mineral Water", score: 3, count: 4},
	{beverage: "Voss", category: "Mineral Water", score: 4, count: 2},
	{beverage: "Coca-Cola", category: "Soft Drink", score: 3, count: 12},
	{beverage: "Ginger Ale", category: "Soft Drink", score: 4, count: 3},
	{beverage: "Cappuccino", category: "Coffee", score: 5, count: 21},
	{beverage: "Espresso", category: "Coffee", score: 4, count: 15},
	{beverage: "Earl Grey", category: "Tea", score: 4, count: 9},
	{beverage: "Sencha", category: "Tea", score: 5, count: 6},
	{beverage: "Milk", category: "Dairy", score: 2, count: 5},
	{beverage: "Strongbow", category: "Cider", score: 3, count: 2},
	{beverage: "Guinness", category: "Beer", score: 5, count: 8},
	{beverage: "Pilsner Urquell", category: "Beer", score: 4, count: 7},
	{beverage: "Chardonnay", category: "Wine", score: 4, count: 3},
	{beverage: "Kombucha", category: "Other", score: 2, count: 1},
}

// SeedDemo fills an empty catalog with demo categories and reviews. It does
// nothing when any review or non-sentinel category already exists, and
// reports whether data was written.
func (c *Catalog) SeedDemo(ctx context.Context, now time.Time) (bool, error) {
	if c == nil || c.store == nil {
		return false, fmt.Errorf("catalog is not configured")
	}
	categories, err := c.store.ListCategories(ctx)
	if err != nil {
		return false, fmt.Errorf("seed demo: %w", err)
	}
	reviewCount, err := c.store.CountReviews(ctx)
	if err != nil {
		return false, fmt.Errorf("seed demo: %w", err)
	}
	if reviewCount > 0 || len(categories) > 1 {
		return false, nil
	}

	for _, name := range DemoCategories {
		if _, err := c.Categories.SaveCategory(ctx, storage.Category{Name: name}); err != nil {
			return false, fmt.Errorf("seed category %q: %w", name, err)
		}
	}
	for i, review := range demoReviews {
		_, err := c.Reviews.SaveReview(ctx, storage.Review{
			Name:         review.beverage,
			Score:        review.score,
			Count:        review.count,
			CategoryName: review.category,
			TestedAt:     now.AddDate(0, 0, -i),
		})
		if err != nil {
			return false, fmt.Errorf("seed review %q: %w", review.beverage, err)
		}
	}
	return true, nil
}
