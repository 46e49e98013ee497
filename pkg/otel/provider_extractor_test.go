package otel_test

import (
	"context"
	"errors"
	"testing"

	"github.com/adrianliechti/mineru/pkg/extractor"
	"github.com/adrianliechti/mineru/pkg/otel"

	"github.com/stretchr/testify/require"

	otelapi "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type stubExtractor struct {
	err error
}

func (s *stubExtractor) Extract(ctx context.Context, file extractor.File, options *extractor.ExtractOptions) (*extractor.Document, error) {
	if s.err != nil {
		return nil, s.err
	}

	return &extractor.Document{Name: file.Name, Text: "done"}, nil
}

func TestExtractor(t *testing.T) {
	spans := tracetest.NewSpanRecorder()
	otelapi.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans)))

	reader := sdkmetric.NewManualReader()
	otelapi.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))

	file := extractor.File{Name: "a.pdf", Content: []byte("data")}

	healthy := otel.NewExtractor("mineru", "default", &stubExtractor{})

	result, err := healthy.Extract(t.Context(), file, nil)
	require.NoError(t, err)
	require.Equal(t, "done", result.Text)

	failing := otel.NewExtractor("mineru", "default", &stubExtractor{err: errors.New("boom")})

	_, err = failing.Extract(t.Context(), file, nil)
	require.EqualError(t, err, "boom")

	ended := spans.Ended()
	require.Len(t, ended, 2)

	require.Equal(t, "extract default", ended[0].Name())
	require.Equal(t, codes.Unset, ended[0].Status().Code)
	require.Equal(t, codes.Error, ended[1].Status().Code)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(t.Context(), &rm))

	var total int64

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "extractor.requests" {
				continue
			}

			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)

			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}

	require.EqualValues(t, 2, total)
}

func TestSetupDisabled(t *testing.T) {
	otel.EnableTelemetry = false

	shutdown, err := otel.Setup(t.Context(), "mineru")
	require.NoError(t, err)
	require.NoError(t, shutdown(t.Context()))
}
