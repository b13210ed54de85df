package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"weekly-aws-mcp/internal/observability/logging"
)

// info logs message on the call logger and forwards it to the host.
func (h *Handler) info(ctx context.Context, message string) {
	logging.FromContext(ctx).Info(message)
	h.notify(ctx, string(mcp.LoggingLevelInfo), message)
}

// warning logs message on the call logger and forwards it to the host.
func (h *Handler) warning(ctx context.Context, message string) {
	logging.FromContext(ctx).Warn(message)
	h.notify(ctx, string(mcp.LoggingLevelWarning), message)
}

// notifyHost sends a notifications/message log entry to the client of the
// current session. Calls outside a session are dropped.
func notifyHost(ctx context.Context, level, message string) {
	srv := server.ServerFromContext(ctx)
	if srv == nil {
		return
	}
	err := srv.SendNotificationToClient(ctx, "notifications/message", map[string]any{
		"level":  level,
		"logger": ServerName,
		"data":   message,
	})
	if err != nil {
		logging.FromContext(ctx).Debug("host log notification dropped", slog.Any("error", err))
	}
}
