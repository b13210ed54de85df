package update

import (
	"context"
	"time"
)

// FeedSource retrieves and parses the blog feed.
//
// Implementations issue exactly one retrieval per call and never cache.
// A document that cannot be parsed is reported through Feed.Malformed,
// not through the error return; the error is reserved for transport failures.
type FeedSource interface {
	Fetch(ctx context.Context) (*Feed, error)
}

// Feed is one parsed snapshot of the feed.
type Feed struct {
	// Entries in the order the feed presents them (newest first for AWS blogs).
	Entries []Entry

	// Malformed is set when the document was not well-formed.
	// Entries may still hold whatever could be recovered.
	Malformed bool

	// ParseError is the underlying parse failure when Malformed is set.
	ParseError error
}

// Entry is one raw item of the feed. Optional attributes are pointers or nil unions;
// a missing title is the empty string.
type Entry struct {
	Title     string
	Link      string
	Published *time.Time
	Summary   *string
	Content   Content
}
