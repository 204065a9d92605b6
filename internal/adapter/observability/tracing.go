// Package observability provides logging, metrics, and tracing.
package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/fairyhunter13/shortlist-engine/internal/config"
	"github.com/fairyhunter13/shortlist-engine/internal/domain"
)

const tracerName = "shortlist-engine"

// SetupTracing installs an OTLP gRPC tracer provider when OTEL_EXPORTER_OTLP_ENDPOINT
// is set. The returned shutdown func is nil when tracing stays off.
func SetupTracing(cfg config.Config) (func(context.Context) error, error) {
	if cfg.OTLPEndpoint == "" {
		slog.Info("tracing disabled: no OTLP endpoint")
		return nil, nil
	}
	ctx := context.Background()
	exporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint), otlptracegrpc.WithInsecure())
	if err != nil {
		return nil, err
	}
	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceNameKey.String(cfg.OTELServiceName),
		semconv.DeploymentEnvironmentKey.String(cfg.AppEnv),
	))
	if err != nil {
		return nil, err
	}

	ratio := sampleRatio(cfg)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	slog.Info("tracing enabled", slog.String("endpoint", cfg.OTLPEndpoint), slog.Float64("sample_ratio", ratio))
	return tp.Shutdown, nil
}

// sampleRatio keeps one root trace in ten in prod and all of them elsewhere.
func sampleRatio(cfg config.Config) float64 {
	if cfg.IsProd() {
		return 0.1
	}
	return 1
}

// StartGenerateSpan opens the span covering one shortlist generation.
func StartGenerateSpan(ctx context.Context, jobID string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "shortlist.generate",
		trace.WithAttributes(attribute.String("shortlist.job_id", jobID)))
}

// EndGenerateSpan records the ranking size (or the error) and ends span.
func EndGenerateSpan(span trace.Span, applications int, r domain.Ranking, err error) {
	span.SetAttributes(attribute.Int("shortlist.applications", applications))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(
			attribute.Int("shortlist.entries", len(r.Entries)),
			attribute.Int("shortlist.failures", len(r.Failures)),
		)
	}
	span.End()
}
