package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Config configures the OTLP/HTTP trace exporter.
type Config struct {
	// Endpoint is the host:port of the collector.
	Endpoint string
	// URLPath overrides the default /v1/traces path.
	URLPath string
	// ServiceName shows up on every exported span. Defaults to "jinakit".
	ServiceName string
	// Insecure disables TLS, for local collectors.
	Insecure bool
}

// Tracer owns a tracer provider wired to an OTLP/HTTP exporter.
type Tracer struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

// NewTracer sets up the exporter and tracer provider and registers the
// provider globally.
func NewTracer(ctx context.Context, cfg Config) (*Tracer, error) {
	if cfg.ServiceName == "" {
		cfg.ServiceName = "jinakit"
	}

	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.URLPath != "" {
		opts = append(opts, otlptracehttp.WithURLPath(cfg.URLPath))
	}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	res, err := sdkresource.Merge(
		sdkresource.Default(),
		sdkresource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
		),
	)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)

	return &Tracer{
		provider: provider,
		tracer:   provider.Tracer("jinakit"),
	}, nil
}

// Tracer returns the underlying OTEL tracer.
func (t *Tracer) Tracer() trace.Tracer { return t.tracer }

// Flush exports buffered spans and shuts the provider down.
func (t *Tracer) Flush(ctx context.Context) error {
	return t.provider.Shutdown(ctx)
}
