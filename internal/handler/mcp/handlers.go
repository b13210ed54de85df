package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/otel/attribute"

	"weekly-aws-mcp/internal/domain/entity"
	"weekly-aws-mcp/internal/observability/logging"
	"weekly-aws-mcp/internal/observability/metrics"
	"weekly-aws-mcp/internal/observability/tracing"
	"weekly-aws-mcp/internal/usecase/page"
	"weekly-aws-mcp/internal/usecase/update"
)

// Tool call outcomes recorded in metrics.
const (
	outcomeOK        = "ok"
	outcomeToolError = "tool_error"
	outcomeError     = "error"
)

type toolFunc func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)

// instrument wraps fn with a call ID, a span, metrics and a call-scoped logger.
func (h *Handler) instrument(name string, fn toolFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		callID := h.newCallID()
		logger := logging.WithCallID(h.logger, callID).With(slog.String("tool", name))
		ctx = logging.WithLogger(ctx, logger)

		ctx, span := tracing.StartToolSpan(ctx, name, attribute.String("mcp.call_id", callID))
		start := time.Now()

		res, err := fn(ctx, req)

		outcome := outcomeOK
		switch {
		case err != nil:
			outcome = outcomeError
			logger.Error("tool call failed", slog.Any("error", err))
		case res != nil && res.IsError:
			outcome = outcomeToolError
		}
		duration := time.Since(start)
		metrics.RecordToolCall(name, outcome, duration)
		tracing.EndSpan(span, err)
		logger.Debug("tool call finished",
			slog.String("outcome", outcome),
			slog.Duration("duration", duration))

		return res, err
	}
}

func (h *Handler) handleWeeklyUpdates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := req.GetInt("days", 7)
	limit := req.GetInt("limit", 10)
	if days < 0 || limit < 0 {
		return mcp.NewToolResultError(fmt.Sprintf("days と limit は 0 以上で指定してください (days=%d, limit=%d)", days, limit)), nil
	}

	h.info(ctx, fmt.Sprintf("過去 %d 日分の週刊AWS記事を取得します (最大 %d 件)", days, limit))
	updates, err := h.updates.ListRecent(ctx, days, limit)
	if err != nil {
		if errors.Is(err, update.ErrInvalidArgument) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return nil, err
	}
	if updates == nil {
		updates = []entity.Update{}
	}
	h.info(ctx, fmt.Sprintf("%d 件の記事が見つかりました。", len(updates)))

	return jsonResult(updates)
}

func (h *Handler) handleLatestWeeklyAWS(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.latest(ctx, "週刊AWS", h.updates.LatestWeeklyAWS)
}

func (h *Handler) handleLatestGenerativeAI(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.latest(ctx, "週刊生成AI with AWS", h.updates.LatestGenerativeAI)
}

func (h *Handler) latest(ctx context.Context, label string, get func(context.Context) (*entity.DetailedUpdate, error)) (*mcp.CallToolResult, error) {
	h.info(ctx, fmt.Sprintf("最新の「%s」記事の詳細を取得します", label))
	detail, err := get(ctx)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		h.warning(ctx, fmt.Sprintf("最新の「%s」記事が見つかりませんでした", label))
		return mcp.NewToolResultText("null"), nil
	}
	h.info(ctx, "最新記事の詳細が見つかりました: "+detail.Title)

	return jsonResult(detail)
}

func (h *Handler) handleFetchURLContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rawURL, err := req.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	maxLength := req.GetInt("max_length", page.DefaultMaxLength)

	h.info(ctx, "ページを取得します: "+rawURL)
	content, err := h.pages.FetchURLContent(ctx, rawURL, maxLength)
	if err != nil {
		if errors.Is(err, page.ErrInvalidArgument) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return nil, err
	}
	if page.IsErrorMarker(content) {
		h.warning(ctx, "ページの取得または変換に失敗しました: "+rawURL)
	}

	return mcp.NewToolResultText(content), nil
}

func (h *Handler) handleArticleDetails(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rawURL, err := req.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	h.info(ctx, "記事の詳細を取得します: "+rawURL)
	details := h.pages.GetArticleDetails(ctx, rawURL)

	return jsonResult(details)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode tool result: %w", err)
	}
	return mcp.NewToolResultText(string(b)), nil
}
