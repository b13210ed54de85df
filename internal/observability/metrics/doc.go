// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - MCP tool call metrics (count by outcome, duration)
//   - Feed pipeline metrics (retrievals, rejected content, failed selections)
//   - Article page fetch metrics (attempts, duration, size)
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint when the HTTP transport is enabled.
//
// Example usage:
//
//	import "weekly-aws-mcp/internal/observability/metrics"
//
//	func handle(tool string) {
//	    start := time.Now()
//	    // ... run the tool ...
//	    metrics.RecordToolCall(tool, "ok", time.Since(start))
//	}
package metrics
