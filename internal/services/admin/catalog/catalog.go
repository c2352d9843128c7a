package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/beveragebuddy/internal/platform/id"
	"github.com/louisbranch/beveragebuddy/internal/services/admin/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/beveragebuddy/internal/services/admin/catalog"

// DefaultCountCacheSize bounds the number of cached per-category review sums.
const DefaultCountCacheSize = 256

// Catalog bundles the category and review services over one store.
type Catalog struct {
	Categories *CategoryService
	Reviews    *ReviewService

	store storage.Store
}

type options struct {
	newID     func() (string, error)
	cacheSize int
	tracer    trace.Tracer
}

// Option customizes New.
type Option func(*options)

// WithIDGenerator replaces the identifier source for new records.
func WithIDGenerator(newID func() (string, error)) Option {
	return func(o *options) {
		if newID != nil {
			o.newID = newID
		}
	}
}

// WithCountCacheSize sets the review count cache capacity.
func WithCountCacheSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.cacheSize = size
		}
	}
}

// WithTracer replaces the global tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) {
		if tracer != nil {
			o.tracer = tracer
		}
	}
}

// New builds both services over store.
func New(store storage.Store, opts ...Option) (*Catalog, error) {
	if store == nil {
		return nil, errors.New("catalog store is required")
	}
	o := options{
		newID:     id.NewID,
		cacheSize: DefaultCountCacheSize,
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(&o)
	}
	counts, err := newCountCache(o.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create review count cache: %w", err)
	}

	reviews := &ReviewService{
		store:      store,
		categories: store,
		counts:     counts,
		newID:      o.newID,
		tracer:     o.tracer,
	}
	categories := &CategoryService{
		store:  store,
		counts: counts,
		newID:  o.newID,
		tracer: o.tracer,
	}
	return &Catalog{Categories: categories, Reviews: reviews, store: store}, nil
}

func countKey(categoryName string) string {
	return strings.ToLower(strings.TrimSpace(categoryName))
}

// startSpan opens a span named op and returns a finisher that records err.
func startSpan(ctx context.Context, tracer trace.Tracer, op string, attrs ...attribute.KeyValue) (context.Context, func(*error)) {
	ctx, span := tracer.Start(ctx, "catalog."+op, trace.WithAttributes(attrs...))
	return ctx, func(errp *error) {
		if errp != nil && *errp != nil {
			span.RecordError(*errp)
			span.SetStatus(codes.Error, (*errp).Error())
		}
		span.End()
	}
}
