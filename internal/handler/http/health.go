// Package http provides the operational HTTP endpoints served next to the
// MCP transport: health, metrics and request instrumentation.
package http

import (
	"net/http"
	"time"

	"weekly-aws-mcp/internal/handler/http/respond"
)

// HealthResponse represents the JSON response for the health endpoint.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "degraded"
	Timestamp string                 `json:"timestamp"` // RFC 3339
	Transport string                 `json:"transport"` // "stdio" or "sse"
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Breaker is the view of a circuit breaker needed for health reporting.
type Breaker interface {
	Name() string
	IsOpen() bool
}

// HealthHandler reports liveness plus the state of outbound circuit breakers.
//
// An open breaker marks the server "degraded" but still answers 200: the
// update tools keep working, only page fetches are refused.
type HealthHandler struct {
	Version   string
	Transport string
	Breakers  []Breaker
	Now       func() time.Time
}

// ServeHTTP writes the health report.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}

	status := "healthy"
	checks := make(map[string]CheckStatus, len(h.Breakers))
	for _, b := range h.Breakers {
		if b.IsOpen() {
			status = "degraded"
			checks[b.Name()] = CheckStatus{Status: "degraded", Message: "circuit breaker open"}
			continue
		}
		checks[b.Name()] = CheckStatus{Status: "healthy"}
	}

	respond.JSON(w, http.StatusOK, HealthResponse{
		Status:    status,
		Timestamp: now().UTC().Format(time.RFC3339),
		Transport: h.Transport,
		Checks:    checks,
		Version:   h.Version,
	})
}
