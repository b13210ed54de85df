// Package resilience groups the fault tolerance primitives used around
// outbound calls. The circuitbreaker subpackage guards article page
// fetches; the feed request is a single attempt with no breaker.
package resilience
