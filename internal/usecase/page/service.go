package page

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"weekly-aws-mcp/internal/domain/entity"
	"weekly-aws-mcp/internal/observability/logging"
	"weekly-aws-mcp/internal/utils/text"
)

// DefaultMaxLength is the default character cap for rendered page content.
const DefaultMaxLength = 5000

// Service provides the page-level tools.
type Service struct {
	Fetcher   Fetcher
	Renderer  Renderer
	Extractor DetailExtractor
	Logger    *slog.Logger
}

// NewService creates a page Service.
func NewService(fetcher Fetcher, renderer Renderer, extractor DetailExtractor, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		Fetcher:   fetcher,
		Renderer:  renderer,
		Extractor: extractor,
		Logger:    logger,
	}
}

// logger prefers the call-scoped logger in ctx so records carry the call ID.
func (s *Service) logger(ctx context.Context) *slog.Logger {
	fallback := s.Logger
	if fallback == nil {
		fallback = slog.Default()
	}
	return logging.FromContextOr(ctx, fallback)
}

// ErrorMarker wraps msg in the in-band error marker understood by the agent.
func ErrorMarker(msg string) string {
	return "<error>" + msg + "</error>"
}

// IsErrorMarker reports whether s is an in-band error marker.
func IsErrorMarker(s string) bool {
	return strings.HasPrefix(s, "<error>") && strings.HasSuffix(s, "</error>")
}

// FetchURLContent fetches rawURL, renders its article as markdown and
// truncates the result to maxLength characters.
//
// A fetch failure is returned as an error marker string, not as an error;
// the only error return is ErrInvalidArgument for a non-positive maxLength.
func (s *Service) FetchURLContent(ctx context.Context, rawURL string, maxLength int) (string, error) {
	if maxLength <= 0 {
		return "", fmt.Errorf("%w: max_length must be positive, got %d", ErrInvalidArgument, maxLength)
	}

	p, err := s.Fetcher.FetchPage(ctx, rawURL)
	if err != nil {
		s.logger(ctx).Error("page fetch failed",
			slog.String("url", rawURL),
			slog.Any("error", err))
		return ErrorMarker(fmt.Sprintf("Failed to fetch %s: %v", rawURL, err)), nil
	}

	content := s.Renderer.Render(p.HTML, p.URL)
	if IsErrorMarker(content) {
		s.logger(ctx).Warn("page could not be rendered", slog.String("url", rawURL))
		return content, nil
	}

	return text.Truncate(content, maxLength), nil
}

// GetArticleDetails scrapes body, author, tags and publish date from rawURL.
// A fetch failure degrades to a record with every field absent.
func (s *Service) GetArticleDetails(ctx context.Context, rawURL string) entity.ArticleDetails {
	details := entity.EmptyArticleDetails(rawURL)

	p, err := s.Fetcher.FetchPage(ctx, rawURL)
	if err != nil {
		s.logger(ctx).Error("article page fetch failed",
			slog.String("url", rawURL),
			slog.Any("error", err))
		return details
	}

	raw := s.Extractor.Extract(p)
	if raw.ContentHTML != nil {
		content := s.Renderer.RenderFragment(*raw.ContentHTML)
		details.Content = &content
	}
	details.Author = raw.Author
	if len(raw.Tags) > 0 {
		details.Tags = raw.Tags
	}
	if raw.PublishedDate != nil {
		published := raw.PublishedDate.UTC()
		details.PublishedDate = &published
	}

	return details
}
