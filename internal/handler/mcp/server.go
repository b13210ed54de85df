// Package mcp exposes the update and page use cases as MCP tools.
package mcp

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"weekly-aws-mcp/internal/domain/entity"
)

// ServerName is announced to MCP clients during initialization.
const ServerName = "custom.weekly-aws-jp-mcp-server"

// Tool names.
const (
	ToolWeeklyUpdates      = "get_weekly_jp_updates"
	ToolLatestWeeklyAWS    = "get_latest_jp_update_details"
	ToolLatestGenerativeAI = "get_latest_generative_ai_jp_update_details"
	ToolFetchURLContent    = "fetch_url_content"
	ToolArticleDetails     = "get_article_details"
)

const instructions = `# 週刊AWS 日本語版取得サーバー

日本語サイトの「週刊AWS」タグページから、過去 n 日間の記事一覧・最新記事を取得して返します。
また、記事ページの本文やメタデータ (著者・タグ・公開日) を取得する機能も提供しています。`

// UpdateService is the feed-backed use case consumed by the update tools.
type UpdateService interface {
	ListRecent(ctx context.Context, days, limit int) ([]entity.Update, error)
	LatestWeeklyAWS(ctx context.Context) (*entity.DetailedUpdate, error)
	LatestGenerativeAI(ctx context.Context) (*entity.DetailedUpdate, error)
}

// PageService is the page use case consumed by the page tools.
type PageService interface {
	FetchURLContent(ctx context.Context, url string, maxLength int) (string, error)
	GetArticleDetails(ctx context.Context, url string) entity.ArticleDetails
}

// Handler implements the tool handlers.
type Handler struct {
	updates UpdateService
	pages   PageService
	logger  *slog.Logger

	// newCallID and notify are replaced in tests.
	newCallID func() string
	notify    func(ctx context.Context, level, message string)
}

// NewHandler creates a Handler.
func NewHandler(updates UpdateService, pages PageService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		updates:   updates,
		pages:     pages,
		logger:    logger,
		newCallID: uuid.NewString,
		notify:    notifyHost,
	}
}

// NewServer builds the MCP server and registers every tool on it.
func NewServer(h *Handler, version string) *server.MCPServer {
	s := server.NewMCPServer(ServerName, version,
		server.WithToolCapabilities(false),
		server.WithLogging(),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	for _, t := range h.Tools() {
		s.AddTool(t.Tool, t.Handler)
	}
	return s
}

// Tools returns the tool definitions bound to h.
func (h *Handler) Tools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool(ToolWeeklyUpdates,
				mcp.WithDescription(`指定された日数内の「週刊AWS」日本語版ブログ記事のリストを取得します。

AWS Japan Blog の RSS フィードから、指定された日数 (days) 以内に公開された記事を
フィード順に最大 limit 件まで返します。各要素は title, url, published (UTC), summary を持ちます。`),
				mcp.WithNumber("days",
					mcp.Description("何日前までの記事を取得するか"),
					mcp.DefaultNumber(7),
					mcp.Min(0),
				),
				mcp.WithNumber("limit",
					mcp.Description("最大取得件数"),
					mcp.DefaultNumber(10),
					mcp.Min(0),
				),
			),
			Handler: h.instrument(ToolWeeklyUpdates, h.handleWeeklyUpdates),
		},
		{
			Tool: mcp.NewTool(ToolLatestWeeklyAWS,
				mcp.WithDescription(`「週刊AWS」日本語版ブログの最新記事の詳細(本文コンテンツ含む)を1件取得します。
「週刊生成AI with AWS」の記事は除外されます。記事が見つからない場合は null を返します。`),
			),
			Handler: h.instrument(ToolLatestWeeklyAWS, h.handleLatestWeeklyAWS),
		},
		{
			Tool: mcp.NewTool(ToolLatestGenerativeAI,
				mcp.WithDescription(`「週刊生成AI with AWS」日本語版ブログの最新記事の詳細(本文コンテンツ含む)を1件取得します。
記事が見つからない場合は null を返します。`),
			),
			Handler: h.instrument(ToolLatestGenerativeAI, h.handleLatestGenerativeAI),
		},
		{
			Tool: mcp.NewTool(ToolFetchURLContent,
				mcp.WithDescription(`指定した URL のページを取得し、記事本文を Markdown に変換して返します。
max_length 文字を超える部分は切り捨てられます。取得に失敗した場合は <error>...</error> を返します。`),
				mcp.WithString("url",
					mcp.Required(),
					mcp.Description("取得するページの URL (http/https)"),
				),
				mcp.WithNumber("max_length",
					mcp.Description("返す最大文字数"),
					mcp.DefaultNumber(5000),
					mcp.Min(1),
				),
			),
			Handler: h.instrument(ToolFetchURLContent, h.handleFetchURLContent),
		},
		{
			Tool: mcp.NewTool(ToolArticleDetails,
				mcp.WithDescription(`記事ページから本文・著者・タグ・公開日を抽出して返します。
取得できなかった項目は null になります。`),
				mcp.WithString("url",
					mcp.Required(),
					mcp.Description("記事ページの URL (http/https)"),
				),
			),
			Handler: h.instrument(ToolArticleDetails, h.handleArticleDetails),
		},
	}
}
