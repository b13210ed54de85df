// Package logging provides structured logging utilities with context propagation.
//
// This package wraps the standard library's log/slog package with helper functions
// for common logging patterns used throughout the server.
//
// Key features:
//   - JSON and text output formats
//   - Tool call ID propagation
//   - Context-aware logging
//   - Configurable log levels
//
// All output goes to stderr. In stdio mode stdout carries the MCP protocol
// stream and must not receive log lines.
//
// Example usage:
//
//	import "weekly-aws-mcp/internal/observability/logging"
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("server started", slog.String("transport", "stdio"))
//	}
//
//	func handleTool(ctx context.Context, callID string) {
//	    logger := logging.WithCallID(logging.FromContext(ctx), callID)
//	    logger.Info("tool called")
//	}
package logging
