package page

import (
	"context"
	"net/url"
	"time"
)

// Page is a fetched HTML document.
type Page struct {
	// URL is the final address after redirects.
	URL  *url.URL
	HTML string
}

// Fetcher retrieves article pages.
//
// Implementations must prevent SSRF, enforce size limits and timeouts, and
// validate redirect targets. They perform a single attempt; no retry.
type Fetcher interface {
	FetchPage(ctx context.Context, url string) (*Page, error)
}

// Renderer turns HTML into readable markdown.
//
// Failures are reported in-band as an "<error>...</error>" string. That marker
// is a valid result and must be passed through to the agent unchanged.
type Renderer interface {
	// Render extracts the main article of a full page and converts it.
	Render(html string, pageURL *url.URL) string
	// RenderFragment converts an already-selected HTML element.
	RenderFragment(html string) string
}

// Details is the raw result of selector-based extraction from a page.
// A nil field means no selector matched.
type Details struct {
	ContentHTML   *string
	Author        *string
	Tags          []string
	PublishedDate *time.Time
}

// DetailExtractor pulls structured fields out of a fetched page.
type DetailExtractor interface {
	Extract(p *Page) Details
}
