// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Tool metrics track agent-facing tool invocations
var (
	// ToolCallsTotal counts tool calls by tool name and outcome
	ToolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcp_tool_calls_total",
			Help: "Total number of MCP tool calls",
		},
		[]string{"tool", "outcome"}, // outcome: ok, tool_error, error
	)

	// ToolCallDuration measures tool call duration in seconds
	ToolCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mcp_tool_call_duration_seconds",
			Help:    "MCP tool call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"tool"},
	)
)

// Feed pipeline metrics track feed retrieval and entry selection
var (
	// FeedFetchTotal counts feed retrievals by result
	FeedFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_fetch_total",
			Help: "Total number of feed retrievals",
		},
		[]string{"result"}, // result: success, malformed, failure
	)

	// FeedFetchDuration measures time to retrieve and parse the feed
	FeedFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feed_fetch_duration_seconds",
			Help:    "Time taken to retrieve and parse the feed",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
	)

	// ContentRejectedTotal counts entry content payloads that could not be normalised
	ContentRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_content_rejected_total",
			Help: "Total number of entry content payloads normalised to absence",
		},
		[]string{"observed_type"},
	)

	// SelectionFailuresTotal counts latest-post selections aborted by bad entry data
	SelectionFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_selection_failures_total",
			Help: "Total number of latest-post selections that failed on entry data",
		},
		[]string{"category"},
	)
)

// Page fetch metrics track article page retrieval for rendering and scraping
var (
	// PageFetchAttemptsTotal counts page fetch attempts by result
	PageFetchAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_fetch_attempts_total",
			Help: "Total number of article page fetch attempts",
		},
		[]string{"result"}, // result: success, failure
	)

	// PageFetchDuration measures time to fetch an article page
	PageFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "page_fetch_duration_seconds",
			Help:    "Time taken to fetch an article page",
			Buckets: []float64{0.1, 0.2, 0.4, 0.8, 1.6, 3.2, 6.4, 12.8},
		},
	)

	// PageFetchSize measures fetched page size in bytes
	PageFetchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "page_fetch_size_bytes",
			Help: "Fetched article page size in bytes",
			Buckets: []float64{
				1024, 4096, 16384, 65536, 262144, 1048576,
				4194304, 10485760, // up to 10MB
			},
		},
	)
)
