// Package otel wires OpenTelemetry tracing for service processes.
package otel

import (
	"context"
	"strings"

	"github.com/louisbranch/beveragebuddy/internal/platform/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Env holds the tracing switches read from the process environment.
type Env struct {
	Endpoint string `env:"BEVERAGE_BUDDY_OTEL_ENDPOINT"`
	Enabled  string `env:"BEVERAGE_BUDDY_OTEL_ENABLED"`
}

// Active reports whether spans should be exported.
func (e Env) Active() bool {
	if strings.EqualFold(strings.TrimSpace(e.Enabled), "false") {
		return false
	}
	return strings.TrimSpace(e.Endpoint) != ""
}

// Setup initialises OpenTelemetry tracing for the given service.
//
// Tracing is opt-in: when BEVERAGE_BUDDY_OTEL_ENDPOINT is empty or
// BEVERAGE_BUDDY_OTEL_ENABLED is "false", Setup returns a no-op shutdown
// function and the global provider is left untouched.
//
// The returned shutdown function flushes pending spans and should be deferred
// by the caller.
func Setup(ctx context.Context, serviceName string) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }

	var env Env
	if err := config.ParseEnv(&env); err != nil {
		return noop, err
	}
	if !env.Active() {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(strings.TrimSpace(env.Endpoint)),
	)
	if err != nil {
		return noop, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}
