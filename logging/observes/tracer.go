package observes

import (
	"context"
	"fmt"

	"github.com/ncobase/taskmate/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation name of every taskmate span.
const TracerName = "github.com/ncobase/taskmate"

// NewTracer installs an OTLP/gRPC tracer provider. It is a no-op when no endpoint
// is configured; the returned shutdown flushes pending spans.
func NewTracer(ctx context.Context, opt *config.Tracer) (func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }
	if opt == nil || opt.Endpoint == "" {
		return noop, nil
	}

	exp, err := otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(opt.Endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return noop, fmt.Errorf("failed to create exporter: %w", err)
	}

	res, err := resource.New(
		ctx,
		resource.WithAttributes(
			attribute.String("service.name", opt.ServiceName),
			attribute.String("service.version", opt.ServiceVersion),
			attribute.String("environment", opt.Environment),
		),
	)
	if err != nil {
		return noop, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(opt.SamplingRate))),
		sdktrace.WithBatcher(exp,
			sdktrace.WithMaxExportBatchSize(opt.MaxExportBatchSize),
			sdktrace.WithBatchTimeout(opt.BatchTimeout),
			sdktrace.WithExportTimeout(opt.ExportTimeout),
		),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	return tp.Shutdown, nil
}

type Layer int

const (
	LayerUnknown Layer = iota
	LayerScreen
	LayerClient
)

func (l Layer) String() string {
	return [...]string{"Unknown", "Screen", "Client"}[l]
}

// StartSpan starts a span tagged with its layer.
func StartSpan(ctx context.Context, layer Layer, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("layer", layer.String()))
	return otel.Tracer(TracerName).Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan records err, if any, and ends the span.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// InjectHeaders propagates the span context into outgoing request headers.
func InjectHeaders(ctx context.Context, carrier propagation.TextMapCarrier) {
	otel.GetTextMapPropagator().Inject(ctx, carrier)
}
