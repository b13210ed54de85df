// Package scraper provides the feed and article page readers backing the agent tools.
// It uses the gofeed library to parse the blog feed and goquery to scrape article pages.
package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"weekly-aws-mcp/internal/usecase/update"

	"github.com/mmcdole/gofeed"
)

const (
	userAgent       = "WeeklyAWSMCPBot/1.0"
	maxFeedBodySize = 10 * 1024 * 1024 // 10MB
)

// RSSFetcher implements update.FeedSource using the gofeed library.
// Each Fetch issues exactly one GET against the configured feed URL;
// there is no caching and no retry.
type RSSFetcher struct {
	client  *http.Client
	feedURL string
	timeout time.Duration
}

// NewRSSFetcher creates a new RSSFetcher reading feedURL with the given HTTP client.
// timeout bounds each retrieval including body download.
func NewRSSFetcher(client *http.Client, feedURL string, timeout time.Duration) *RSSFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &RSSFetcher{
		client:  client,
		feedURL: feedURL,
		timeout: timeout,
	}
}

// Fetch retrieves and parses the feed.
//
// Transport failures (DNS, timeout, non-200 status) are returned as errors
// wrapping update.ErrFeedFetchFailed. A body that gofeed cannot parse is not
// an error: it is reported through Feed.Malformed so the caller can log it
// and carry on.
func (f *RSSFetcher) Fetch(ctx context.Context) (*update.Feed, error) {
	body, err := f.download(ctx)
	if err != nil {
		return nil, err
	}

	fp := gofeed.NewParser()
	parsed, err := fp.Parse(bytes.NewReader(body))
	if err != nil {
		return &update.Feed{Malformed: true, ParseError: err}, nil
	}

	entries := make([]update.Entry, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		if it == nil {
			continue
		}
		entries = append(entries, toEntry(it))
	}

	return &update.Feed{Entries: entries}, nil
}

func (f *RSSFetcher) download(ctx context.Context) ([]byte, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", update.ErrFeedFetchFailed, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: request exceeded %v", update.ErrFeedFetchFailed, f.timeout)
		}
		return nil, fmt.Errorf("%w: %v", update.ErrFeedFetchFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP %d: %s", update.ErrFeedFetchFailed, resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", update.ErrFeedFetchFailed, err)
	}
	return body, nil
}

// toEntry maps a gofeed item onto the pipeline's raw entry.
// content:encoded becomes a single text/html content variant, the same shape
// a multi-variant Atom entry would produce.
func toEntry(it *gofeed.Item) update.Entry {
	e := update.Entry{
		Title: it.Title,
		Link:  it.Link,
	}

	switch {
	case it.PublishedParsed != nil:
		published := it.PublishedParsed.UTC()
		e.Published = &published
	case it.UpdatedParsed != nil:
		updated := it.UpdatedParsed.UTC()
		e.Published = &updated
	}

	if it.Description != "" {
		summary := it.Description
		e.Summary = &summary
	}

	if it.Content != "" {
		e.Content = update.ClassifyContent([]update.ContentValue{
			{Type: "text/html", Value: it.Content},
		})
	}

	return e
}
