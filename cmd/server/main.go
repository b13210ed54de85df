// Command server runs the 週刊AWS MCP server over stdio (default) or SSE.
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/sync/errgroup"

	"weekly-aws-mcp/internal/config"
	mcphandler "weekly-aws-mcp/internal/handler/mcp"
	"weekly-aws-mcp/internal/infra/fetcher"
	"weekly-aws-mcp/internal/infra/scraper"
	"weekly-aws-mcp/internal/observability/logging"
	"weekly-aws-mcp/internal/observability/tracing"
	"weekly-aws-mcp/internal/usecase/page"
	"weekly-aws-mcp/internal/usecase/update"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 5 * time.Second

// options holds the command line flags.
type options struct {
	sse  bool
	port int
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("weekly-aws-mcp", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.BoolVar(&opts.sse, "sse", false, "Use SSE transport")
	fs.IntVar(&opts.port, "port", 8888, "Port to run the server on (SSE transport)")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.port <= 0 || opts.port > 65535 {
		return opts, fmt.Errorf("port must be between 1 and 65535, got %d", opts.port)
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.LoadServerConfig()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := initLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, cfg, logger); err != nil {
		logger.Error("server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// initLogger builds the stderr logger and installs it as the slog default.
func initLogger(cfg *config.ServerConfig) *slog.Logger {
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	return logger
}

// app holds the wired components.
type app struct {
	mcp            *server.MCPServer
	pageFetcher    *fetcher.PageFetcher
	allowedOrigins []string
}

func wire(cfg *config.ServerConfig, logger *slog.Logger) (*app, error) {
	feedClient := &http.Client{
		Transport: &http.Transport{
			Proxy:           http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
			IdleConnTimeout: 90 * time.Second,
		},
	}
	feed := scraper.NewRSSFetcher(feedClient, cfg.FeedURL, cfg.FeedFetchTimeout)
	updates := update.NewService(feed, logger)

	fetchCfg := fetcher.DefaultConfig()
	fetchCfg.Timeout = cfg.PageFetch.Timeout
	fetchCfg.MaxBodySize = cfg.PageFetch.MaxBodySize
	fetchCfg.MaxRedirects = cfg.PageFetch.MaxRedirects
	fetchCfg.DenyPrivateIPs = cfg.PageFetch.DenyPrivateIPs
	fetchCfg.RatePerSecond = cfg.PageFetch.RatePerSecond
	if err := fetchCfg.Validate(); err != nil {
		return nil, fmt.Errorf("page fetch configuration: %w", err)
	}
	pageFetcher := fetcher.NewPageFetcher(fetchCfg, logger)
	pages := page.NewService(pageFetcher,
		fetcher.NewReadabilityRenderer(logger),
		scraper.NewDetailScraper(logger),
		logger)

	handler := mcphandler.NewHandler(updates, pages, logger)
	return &app{
		mcp:            mcphandler.NewServer(handler, version),
		pageFetcher:    pageFetcher,
		allowedOrigins: cfg.AllowedOrigins,
	}, nil
}

func run(ctx context.Context, opts options, cfg *config.ServerConfig, logger *slog.Logger) error {
	tp := tracing.NewProvider(sdktrace.WithResource(resource.NewSchemaless(
		attribute.String("service.name", tracing.ServiceName),
		attribute.String("service.version", version),
	)))
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Error("tracer provider shutdown failed", slog.Any("error", err))
		}
	}()

	a, err := wire(cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("starting Weekly AWS JP MCP Server",
		slog.String("version", version),
		slog.Bool("sse", opts.sse),
		slog.String("feed_url", cfg.FeedURL))

	if opts.sse {
		return serveSSE(ctx, a, opts.port, logger)
	}
	return serveStdio(ctx, a, cfg.MetricsPort, logger)
}

// serveStdio speaks MCP over stdin/stdout until ctx is canceled or stdin closes.
// A side HTTP listener for /metrics and /health is started when metricsPort > 0.
func serveStdio(ctx context.Context, a *app, metricsPort int, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if metricsPort > 0 {
		srv := newHTTPServer(fmt.Sprintf(":%d", metricsPort), newOpsRouter(a, "stdio", logger))
		g.Go(func() error { return listen(srv, logger, "metrics") })
		g.Go(func() error { return shutdownOnDone(gctx, srv, logger, "metrics") })
	}

	g.Go(func() error {
		// stdin EOF ends the session; cancel so the side listener stops too.
		defer cancel()
		stdio := server.NewStdioServer(a.mcp)
		stdio.SetErrorLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError))
		err := stdio.Listen(gctx, os.Stdin, os.Stdout)
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
			return fmt.Errorf("stdio transport: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// serveSSE serves MCP over HTTP server-sent events together with the ops endpoints.
func serveSSE(ctx context.Context, a *app, port int, logger *slog.Logger) error {
	sse := server.NewSSEServer(a.mcp,
		server.WithSSEEndpoint("/sse"),
		server.WithMessageEndpoint("/message"),
		server.WithKeepAlive(true),
	)
	srv := newHTTPServer(fmt.Sprintf(":%d", port), newSSERouter(a, sse, logger))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return listen(srv, logger, "sse") })
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := sse.Shutdown(shutdownCtx); err != nil {
			logger.Error("sse sessions shutdown error", slog.Any("error", err))
		}
		return shutdownOnDone(gctx, srv, logger, "sse")
	})
	return g.Wait()
}

func listen(srv *http.Server, logger *slog.Logger, name string) error {
	logger.Info("http server starting", slog.String("server", name), slog.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server: %w", name, err)
	}
	return nil
}

// shutdownOnDone waits for ctx and then gracefully stops srv.
func shutdownOnDone(ctx context.Context, srv *http.Server, logger *slog.Logger, name string) error {
	<-ctx.Done()
	logger.Info("http server shutdown initiated", slog.String("server", name))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", slog.String("server", name), slog.Any("error", err))
		return nil
	}
	logger.Info("http server stopped", slog.String("server", name))
	return nil
}
