package scraper

import (
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"weekly-aws-mcp/internal/usecase/page"
)

// selector is a CSS query plus the attribute to read.
// An empty attr reads the element itself (HTML for content, text otherwise).
type selector struct {
	css  string
	attr string
}

// Ordered fallbacks per field. The first selector that yields a non-empty value wins.
var (
	contentSelectors = []selector{
		{css: "div.blog-post-content"},
		{css: "article .entry-content"},
		{css: "article"},
		{css: "main"},
	}
	authorSelectors = []selector{
		{css: ".blog-post-meta [property='author']"},
		{css: ".lb-author a"},
		{css: "[rel='author']"},
		{css: "meta[name='author']", attr: "content"},
	}
	tagSelectors = []selector{
		{css: ".blog-post-categories a"},
		{css: "a[rel='tag']"},
		{css: ".lb-tags a"},
	}
	publishedSelectors = []selector{
		{css: "meta[property='article:published_time']", attr: "content"},
		{css: "time[datetime]", attr: "datetime"},
		{css: "time[property='datePublished']", attr: "datetime"},
	}
)

// publishedLayouts are tried in order when parsing a publish date.
var publishedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// DetailScraper implements page.DetailExtractor with goquery selectors
// tuned for the AWS blog layout, falling back to generic article markup.
type DetailScraper struct {
	logger *slog.Logger
}

var _ page.DetailExtractor = (*DetailScraper)(nil)

// NewDetailScraper creates a DetailScraper.
func NewDetailScraper(logger *slog.Logger) *DetailScraper {
	if logger == nil {
		logger = slog.Default()
	}
	return &DetailScraper{logger: logger}
}

// Extract parses p and reads each field through its selector fallbacks.
// Unparseable HTML yields empty Details.
func (d *DetailScraper) Extract(p *page.Page) page.Details {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(p.HTML))
	if err != nil {
		d.logger.Warn("failed to parse article HTML", slog.Any("error", err))
		return page.Details{}
	}

	var details page.Details
	if html, ok := firstHTML(doc, contentSelectors); ok {
		details.ContentHTML = &html
	}
	if author, ok := firstText(doc, authorSelectors); ok {
		details.Author = &author
	}
	details.Tags = firstList(doc, tagSelectors)
	if raw, ok := firstText(doc, publishedSelectors); ok {
		if t, ok := parsePublished(raw); ok {
			details.PublishedDate = &t
		} else {
			d.logger.Debug("unparseable publish date", slog.String("value", raw))
		}
	}

	return details
}

func firstHTML(doc *goquery.Document, sels []selector) (string, bool) {
	for _, s := range sels {
		sel := doc.Find(s.css).First()
		if sel.Length() == 0 {
			continue
		}
		html, err := goquery.OuterHtml(sel)
		if err != nil || strings.TrimSpace(sel.Text()) == "" {
			continue
		}
		return html, true
	}
	return "", false
}

func firstText(doc *goquery.Document, sels []selector) (string, bool) {
	for _, s := range sels {
		if v := readValue(doc.Find(s.css).First(), s.attr); v != "" {
			return v, true
		}
	}
	return "", false
}

func firstList(doc *goquery.Document, sels []selector) []string {
	for _, s := range sels {
		var values []string
		seen := make(map[string]bool)
		doc.Find(s.css).Each(func(_ int, el *goquery.Selection) {
			v := readValue(el, s.attr)
			if v == "" || seen[v] {
				return
			}
			seen[v] = true
			values = append(values, v)
		})
		if len(values) > 0 {
			return values
		}
	}
	return nil
}

func readValue(sel *goquery.Selection, attr string) string {
	if sel.Length() == 0 {
		return ""
	}
	if attr != "" {
		v, _ := sel.Attr(attr)
		return strings.TrimSpace(v)
	}
	return strings.Join(strings.Fields(sel.Text()), " ")
}

// parsePublished parses raw with publishedLayouts and normalizes to UTC.
func parsePublished(raw string) (time.Time, bool) {
	for _, layout := range publishedLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
