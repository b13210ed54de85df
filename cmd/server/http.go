package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"

	hhttp "weekly-aws-mcp/internal/handler/http"
	"weekly-aws-mcp/internal/handler/http/respond"
	"weekly-aws-mcp/internal/observability/slo"
	"weekly-aws-mcp/internal/observability/tracing"
	"weekly-aws-mcp/pkg/security/csp"
)

func newHTTPServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		// No WriteTimeout: SSE streams are long-lived.
		IdleTimeout: 120 * time.Second,
	}
}

func healthHandler(a *app, transport string) *hhttp.HealthHandler {
	return &hhttp.HealthHandler{
		Version:   version,
		Transport: transport,
		Breakers:  []hhttp.Breaker{a.pageFetcher.Breakers()},
	}
}

// routeErrors answers unknown routes and methods with a JSON error body.
func routeErrors(r chi.Router) {
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respond.Error(w, http.StatusNotFound, fmt.Errorf("no route for %s", req.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		respond.Error(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed on %s", req.Method, req.URL.Path))
	})
}

func metricsHandler(logger *slog.Logger) http.Handler {
	return slo.RefreshOnScrape(hhttp.MetricsHandler(), prometheus.DefaultGatherer, logger)
}

// newOpsRouter serves /health and /metrics only. Used beside the stdio transport.
func newOpsRouter(a *app, transport string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(hhttp.SecurityHeaders(csp.StrictPolicy()))
	r.Use(hhttp.MetricsMiddleware)
	routeErrors(r)
	r.Method(http.MethodGet, "/health", healthHandler(a, transport))
	r.Method(http.MethodGet, "/metrics", metricsHandler(logger))
	return r
}

// newSSERouter serves the MCP SSE transport plus /health and /metrics.
func newSSERouter(a *app, sse *server.SSEServer, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(hhttp.SecurityHeaders(csp.StrictPolicy()))
	r.Use(hhttp.MetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Mcp-Session-Id"},
		MaxAge:         300,
	}))

	routeErrors(r)
	r.Method(http.MethodGet, "/health", healthHandler(a, "sse"))
	r.Method(http.MethodGet, "/metrics", metricsHandler(logger))
	r.Method(http.MethodGet, "/sse", sse.SSEHandler())
	r.With(tracing.Middleware, hhttp.Logging(logger)).
		Method(http.MethodPost, "/message", sse.MessageHandler())

	return r
}
