package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestStartToolSpan(t *testing.T) {
	exporter, tp := setupExporter(t)

	_, span := StartToolSpan(context.Background(), "get_weekly_jp_updates", attribute.Int("days", 7))
	EndSpan(span, nil)
	require.NoError(t, tp.ForceFlush(context.Background()))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "tool.get_weekly_jp_updates", spans[0].Name)
	attrs := attrMap(spans[0].Attributes)
	assert.Equal(t, "get_weekly_jp_updates", attrs["mcp.tool"].AsString())
	assert.Equal(t, int64(7), attrs["days"].AsInt64())
	assert.Equal(t, codes.Unset, spans[0].Status.Code)
}

func TestEndSpan_RecordsError(t *testing.T) {
	exporter, tp := setupExporter(t)

	_, span := StartToolSpan(context.Background(), "fetch_url_content")
	EndSpan(span, errors.New("boom"))
	require.NoError(t, tp.ForceFlush(context.Background()))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "boom", spans[0].Status.Description)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "exception", spans[0].Events[0].Name)
}

func TestNewProvider_RegistersGlobally(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := NewProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(sdktrace.NewTracerProvider())
	})

	_, span := GetTracer().Start(context.Background(), "probe")
	span.End()

	assert.Len(t, exporter.GetSpans(), 1)
}
