// Package tracing provides OpenTelemetry tracing integration.
//
// Each MCP tool call runs inside a span named "tool.<name>". In SSE mode the
// HTTP message endpoint is wrapped by Middleware, so tool spans become children
// of the request span.
//
// Example usage:
//
//	tp := tracing.NewProvider()
//	defer func() { _ = tp.Shutdown(context.Background()) }()
//
//	ctx, span := tracing.StartToolSpan(ctx, "get_weekly_jp_updates")
//	defer tracing.EndSpan(span, err)
package tracing
