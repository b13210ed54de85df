package fetcher

import (
	"log/slog"
	"net/url"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/go-shiori/go-readability"

	"weekly-aws-mcp/internal/usecase/page"
)

// SimplifyFailedMarker is returned when no readable article could be extracted.
var SimplifyFailedMarker = page.ErrorMarker("Page failed to be simplified from HTML")

// ReadabilityRenderer implements page.Renderer.
// It extracts the main article with the Mozilla Readability algorithm
// (go-shiori/go-readability) and converts the result to markdown.
type ReadabilityRenderer struct {
	logger *slog.Logger
}

var _ page.Renderer = (*ReadabilityRenderer)(nil)

// NewReadabilityRenderer creates a ReadabilityRenderer.
func NewReadabilityRenderer(logger *slog.Logger) *ReadabilityRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReadabilityRenderer{logger: logger}
}

// Render extracts the article from a full HTML page and returns it as markdown.
// pageURL resolves relative links and may be nil.
func (r *ReadabilityRenderer) Render(html string, pageURL *url.URL) string {
	article, err := readability.FromReader(strings.NewReader(html), pageURL)
	if err != nil {
		r.logger.Debug("readability extraction failed", slog.Any("error", err))
		return SimplifyFailedMarker
	}
	if strings.TrimSpace(article.Content) == "" {
		return SimplifyFailedMarker
	}

	md, err := r.toMarkdown(article.Content, pageURL)
	if err != nil || md == "" {
		return SimplifyFailedMarker
	}
	return md
}

// RenderFragment converts an already-selected HTML element to markdown.
func (r *ReadabilityRenderer) RenderFragment(html string) string {
	md, err := r.toMarkdown(html, nil)
	if err != nil || md == "" {
		return SimplifyFailedMarker
	}
	return md
}

func (r *ReadabilityRenderer) toMarkdown(html string, base *url.URL) (string, error) {
	var opts []converter.ConvertOptionFunc
	if base != nil {
		opts = append(opts, converter.WithDomain(base.Scheme+"://"+base.Host))
	}
	md, err := htmltomarkdown.ConvertString(html, opts...)
	if err != nil {
		r.logger.Debug("markdown conversion failed", slog.Any("error", err))
		return "", err
	}
	return strings.TrimSpace(md), nil
}
