// Package page provides the article page use cases: rendering a page as readable
// markdown for the agent, and scraping structured details from a page.
package page

import (
	"errors"
	"fmt"
)

// Sentinel errors for page fetching operations.
// These errors allow callers to distinguish between different failure modes.
var (
	// ErrInvalidURL indicates the URL format is invalid or uses an unsupported scheme.
	// Only http:// and https:// schemes are supported.
	ErrInvalidURL = errors.New("invalid URL or unsupported scheme")

	// ErrPrivateIP indicates the URL resolves to a private IP address.
	// This error prevents Server-Side Request Forgery (SSRF) attacks.
	ErrPrivateIP = errors.New("private IP access denied (SSRF prevention)")

	// ErrTooManyRedirects indicates the redirect chain exceeded the configured maximum.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrBodyTooLarge indicates the response body exceeded the size limit.
	ErrBodyTooLarge = errors.New("response body too large")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("request timeout")

	// ErrHTTPStatus indicates the server answered with a non-2xx status.
	ErrHTTPStatus = errors.New("unexpected HTTP status")

	// ErrInvalidArgument indicates a caller supplied an out-of-range argument.
	ErrInvalidArgument = errors.New("invalid argument")
)

// StatusError carries the status of a non-2xx response. It matches
// ErrHTTPStatus with errors.Is.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v: %s", ErrHTTPStatus, e.Status)
}

func (e *StatusError) Unwrap() error {
	return ErrHTTPStatus
}

// IsClientError reports whether the page itself was refused (4xx) as opposed
// to the server failing. 408 and 429 signal an overloaded upstream and are
// not counted as client errors.
func (e *StatusError) IsClientError() bool {
	if e.Code == 408 || e.Code == 429 {
		return false
	}
	return e.Code >= 400 && e.Code < 500
}
