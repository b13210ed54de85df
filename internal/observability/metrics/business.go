package metrics

import (
	"time"
)

// RecordToolCall records the outcome and duration of one tool call.
// Outcome is one of "ok", "tool_error" or "error".
func RecordToolCall(tool, outcome string, duration time.Duration) {
	ToolCallsTotal.WithLabelValues(tool, outcome).Inc()
	ToolCallDuration.WithLabelValues(tool).Observe(duration.Seconds())
}

// RecordFeedFetch records a feed retrieval.
// Result should be "success", "malformed" or "failure".
func RecordFeedFetch(result string, duration time.Duration) {
	FeedFetchTotal.WithLabelValues(result).Inc()
	FeedFetchDuration.Observe(duration.Seconds())
}

// RecordContentRejected records a content payload that normalised to absence.
func RecordContentRejected(observedType string) {
	ContentRejectedTotal.WithLabelValues(observedType).Inc()
}

// RecordSelectionFailure records a latest-post selection that failed on entry data.
func RecordSelectionFailure(category string) {
	SelectionFailuresTotal.WithLabelValues(category).Inc()
}

// RecordPageFetchSuccess records a successful page fetch operation.
// This tracks both the duration and size of the fetched page.
//
// Example:
//
//	start := time.Now()
//	html, err := fetcher.Fetch(ctx, url)
//	if err == nil {
//	    RecordPageFetchSuccess(time.Since(start), len(html))
//	}
func RecordPageFetchSuccess(duration time.Duration, size int) {
	PageFetchAttemptsTotal.WithLabelValues("success").Inc()
	PageFetchDuration.Observe(duration.Seconds())
	PageFetchSize.Observe(float64(size))
}

// RecordPageFetchFailure records a failed page fetch operation.
func RecordPageFetchFailure(duration time.Duration) {
	PageFetchAttemptsTotal.WithLabelValues("failure").Inc()
	PageFetchDuration.Observe(duration.Seconds())
}
