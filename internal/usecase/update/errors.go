// Package update implements the feed-entry selection pipeline behind the agent tools:
// listing recent blog posts and picking the latest post of a title category.
// Every call fetches the feed afresh; nothing is cached between calls.
package update

import (
	"errors"
	"fmt"
)

// Sentinel errors for update use case operations.
var (
	// ErrFeedFetchFailed indicates that retrieving the feed document failed.
	// This covers DNS errors, timeouts and non-2xx responses.
	ErrFeedFetchFailed = errors.New("failed to fetch feed")

	// ErrEntryMissingPublished indicates a feed entry carries no parseable publish time.
	ErrEntryMissingPublished = errors.New("feed entry has no parsed publish time")

	// ErrInvalidArgument indicates a caller supplied an out-of-range argument.
	ErrInvalidArgument = errors.New("invalid argument")
)

// PanicError wraps a value recovered while reading entry fields.
// Stack holds the goroutine stack at the point of recovery.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic while reading feed entry: %v", e.Value)
}
