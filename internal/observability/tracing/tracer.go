package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// ServiceName identifies this server in spans.
const ServiceName = "weekly-aws-mcp"

// GetTracer returns the tracer of the currently registered provider.
// It is looked up per call because a tracer obtained before
// otel.SetTracerProvider stays bound to the first provider only.
func GetTracer() trace.Tracer {
	return otel.Tracer(ServiceName)
}

// NewProvider creates an SDK tracer provider, registers it globally and returns it.
// Extra options (exporters, samplers) are passed through to the SDK.
// Callers must Shutdown the provider on exit.
func NewProvider(opts ...sdktrace.TracerProviderOption) *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	return tp
}

// StartToolSpan starts the span for one MCP tool call.
func StartToolSpan(ctx context.Context, tool string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append([]attribute.KeyValue{attribute.String("mcp.tool", tool)}, attrs...)
	return GetTracer().Start(ctx, "tool."+tool,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// EndSpan records err on span (if any) and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
