package scraper_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"weekly-aws-mcp/internal/infra/scraper"
)

func buildFeed(items int) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
  <channel>
    <title>Amazon Web Services ブログ</title>
    <link>https://aws.amazon.com/jp/blogs/news/</link>`)
	base := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < items; i++ {
		title := fmt.Sprintf("週刊AWS – %d週", i)
		if i%3 == 0 {
			title = fmt.Sprintf("週刊生成AI with AWS – %d週", i)
		}
		fmt.Fprintf(&sb, `
    <item>
      <title>%s</title>
      <link>https://aws.amazon.com/jp/blogs/news/weekly-%d/</link>
      <description>summary %d</description>
      <content:encoded><![CDATA[<p>本文 %d</p>]]></content:encoded>
      <pubDate>%s</pubDate>
    </item>`, title, i, i, i, base.AddDate(0, 0, -7*i).Format(time.RFC1123Z))
	}
	sb.WriteString(`
  </channel>
</rss>`)
	return sb.String()
}

func benchmarkFetch(b *testing.B, items int) {
	body := buildFeed(items)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	fetcher := scraper.NewRSSFetcher(server.Client(), server.URL, 10*time.Second)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		feed, err := fetcher.Fetch(ctx)
		if err != nil {
			b.Fatal(err)
		}
		if len(feed.Entries) != items {
			b.Fatalf("got %d entries, want %d", len(feed.Entries), items)
		}
	}
}

func BenchmarkRSSFetcher_SmallFeed(b *testing.B) { benchmarkFetch(b, 10) }

func BenchmarkRSSFetcher_LargeFeed(b *testing.B) { benchmarkFetch(b, 200) }
