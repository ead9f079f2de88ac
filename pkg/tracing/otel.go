// Package tracing configures OpenTelemetry trace export over OTLP/HTTP.
package tracing

import (
	"context"
	"fmt"

	"movie-review/pkg/utils"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.uber.org/zap"
)

// Init installs a global tracer provider. With no endpoint configured tracing
// stays disabled and the returned shutdown func does nothing.
func Init(ctx context.Context, config utils.TracingConfig, log *zap.Logger) (func(context.Context) error, error) {
	if config.Endpoint == "" {
		log.Debug("Tracing disabled")
		return func(context.Context) error { return nil }, nil
	}

	exp, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(config.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("otel exporter: %w", err)
	}

	res := resource.NewSchemaless(semconv.ServiceName(config.ServiceName))

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))

	log.Info("Tracing enabled",
		zap.String("endpoint", config.Endpoint),
		zap.String("service", config.ServiceName))

	return tp.Shutdown, nil
}

// Enabled reports whether Init exports spans for config.
func Enabled(config utils.TracingConfig) bool {
	return config.Endpoint != ""
}
