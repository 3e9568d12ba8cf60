package trace

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

type ShutdownFunc func(ctx context.Context) error

func CreateTracer(ctx context.Context, serviceName string) (trace.Tracer, ShutdownFunc, error) {
	return CreateTracerWithVersion(ctx, serviceName, "0.0.0")
}

func CreateNoOpTracer() trace.Tracer {
	return trace.NewNoopTracerProvider().Tracer("no-op")
}

// CreateTracerWithVersion exports spans over OTLP/gRPC. The endpoint is taken
// from OTEL_EXPORTER_OTLP_ENDPOINT.
func CreateTracerWithVersion(ctx context.Context, serviceName, serviceVersion string) (trace.Tracer, ShutdownFunc, error) {
	client := otlptracegrpc.NewClient()
	exporter, err := otlptrace.New(ctx, client)
	if err != nil {
		return nil, nil, errors.Wrap(err, "create tracer failed")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(newResource(serviceName, serviceVersion)),
	)

	return tp.Tracer(serviceName), tp.Shutdown, nil
}

func newResource(serviceName, serviceVersion string) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(serviceVersion),
	)
}
