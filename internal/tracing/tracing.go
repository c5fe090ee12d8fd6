// Package tracing configures OpenTelemetry span export.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/osse101/SlotGuard_Go/internal/logger"
)

// Config selects where spans go
type Config struct {
	Endpoint    string
	ServiceName string
	Version     string
	Environment string
	Insecure    bool
}

// ShutdownFunc flushes and stops span export
type ShutdownFunc func(context.Context) error

// Init installs a global tracer provider exporting to cfg.Endpoint over
// OTLP/gRPC. With no endpoint the global no-op provider stays in place and
// the returned shutdown does nothing.
func Init(ctx context.Context, cfg Config) (ShutdownFunc, error) {
	log := logger.FromContext(ctx)

	if cfg.Endpoint == "" {
		log.Info(LogMsgTracingDisabled)
		return func(context.Context) error { return nil }, nil
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgExporterFailed, err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.Version),
			semconv.DeploymentEnvironment(cfg.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgResourceFailed, err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	log.Info(LogMsgTracingEnabled, LogFieldEndpoint, cfg.Endpoint)
	return tp.Shutdown, nil
}
