// Package observability installs the global OpenTelemetry tracer provider for
// the Politely Failed API.
//
// Once SetupOTel has run, three layers report into the same trace:
//
//	HTTP     otelgin server span per request, named after the matched route
//	service  MessageService spans (RandomMessage, ListMessages, Version,
//	         MessageCount) tagged with message.category and message.tone
//	storage  GORM spans when the catalog is read from a SQLite snapshot
//
// Every span carries the service name and version plus catalog.source, the
// path of the message file or snapshot the instance serves. Sampling is
// parent-based, so a caller's sampled trace context is honored.
package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"google.golang.org/grpc/credentials"

	"github.com/tbourn/politely-failed/internal/config"
)

// Exporter and resource constructors, replaced in tests to force failures.
var (
	newOTLPClient = otlptracegrpc.NewClient

	newOTLPExporterFn = func(ctx context.Context, client otlptrace.Client) (*otlptrace.Exporter, error) {
		return otlptrace.New(ctx, client)
	}

	newServiceResourceFn = func(ctx context.Context, serviceName, version string, extra []attribute.KeyValue) (*resource.Resource, error) {
		attrs := append([]attribute.KeyValue{
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(version),
		}, extra...)
		return resource.New(ctx, resource.WithAttributes(attrs...))
	}
)

// CatalogSource returns the catalog.source resource attribute: the messages
// file or SQLite snapshot path this instance loads its catalog from.
func CatalogSource(location string) attribute.KeyValue {
	return attribute.String("catalog.source", location)
}

// SetupOTel exports spans over OTLP gRPC to cfg.Endpoint and returns the
// provider's shutdown, which flushes pending batches. When tracing is
// disabled the returned shutdown is a no-op and the global provider stays the
// no-op default, so request and service spans cost nothing. Extra attributes
// (usually CatalogSource) are added to the resource.
func SetupOTel(ctx context.Context, cfg config.OTELConfig, version string, extra ...attribute.KeyValue) (func(context.Context) error, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	} else {
		creds := credentials.NewClientTLSFromCert(nil, "")
		opts = append(opts, otlptracegrpc.WithTLSCredentials(creds))
	}

	exp, err := newOTLPExporterFn(ctx, newOTLPClient(opts...))
	if err != nil {
		return nil, err
	}

	res, err := newServiceResourceFn(ctx, cfg.ServiceName, version, extra)
	if err != nil {
		_ = exp.Shutdown(ctx)
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))

	return tp.Shutdown, nil
}
