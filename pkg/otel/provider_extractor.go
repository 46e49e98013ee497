package otel

import (
	"context"
	"time"

	"github.com/adrianliechti/mineru/pkg/extractor"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

type Extractor interface {
	Observable
	extractor.Provider
}

type observableExtractor struct {
	name     string
	provider string

	extractor extractor.Provider

	requests metric.Int64Counter
	duration metric.Float64Histogram
}

func NewExtractor(provider, name string, p extractor.Provider) Extractor {
	e := &observableExtractor{
		extractor: p,

		name:     name,
		provider: provider,
	}

	e.otelSetup()

	return e
}

func (p *observableExtractor) otelSetup() {
	meter := otel.Meter(instrumentationName)

	p.requests, _ = meter.Int64Counter("extractor.requests",
		metric.WithDescription("Number of extraction requests"),
	)

	p.duration, _ = meter.Float64Histogram("extractor.duration",
		metric.WithDescription("Duration of extraction requests"),
		metric.WithUnit("s"),
	)
}

func (p *observableExtractor) Extract(ctx context.Context, file extractor.File, options *extractor.ExtractOptions) (*extractor.Document, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "extract "+p.name)
	defer span.End()

	attrs := []attribute.KeyValue{
		attribute.String("extractor.provider", p.provider),
		attribute.String("extractor.name", p.name),
	}

	span.SetAttributes(attrs...)
	span.SetAttributes(
		attribute.String("file.name", file.Name),
		attribute.String("file.content_type", file.ContentType),
		attribute.Int("file.size", len(file.Content)),
	)

	start := time.Now()

	result, err := p.extractor.Extract(ctx, file, options)

	status := "ok"

	if err != nil {
		status = "error"

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	attrs = append(attrs, attribute.String("status", status))

	if p.requests != nil {
		p.requests.Add(ctx, 1, metric.WithAttributes(attrs...))
	}

	if p.duration != nil {
		p.duration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(attrs...))
	}

	return result, err
}
