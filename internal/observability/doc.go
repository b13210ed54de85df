// Package observability groups the logging, metrics, tracing and SLO
// subpackages. All process logs go to stderr so stdout stays reserved for
// the stdio MCP transport.
//
// Subpackages:
//   - logging: slog construction and context propagation
//   - metrics: Prometheus collectors and recorders
//   - tracing: OpenTelemetry tracer and HTTP middleware
//   - slo: tool-call availability gauges derived from metrics
package observability
