package fetcher

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"weekly-aws-mcp/internal/observability/logging"
	"weekly-aws-mcp/internal/observability/metrics"
	"weekly-aws-mcp/internal/resilience/circuitbreaker"
	"weekly-aws-mcp/internal/usecase/page"
)

const userAgent = "WeeklyAWSMCPBot/1.0"

// PageFetcher implements page.Fetcher.
//
// Features:
//   - SSRF prevention via URL validation, including every redirect target
//   - Circuit breaker per host; refused pages (4xx, policy violations)
//     do not count as host failures
//   - Rate limiting of outbound requests
//   - Size limiting to prevent memory exhaustion
//   - Timeout protection against slow servers
//
// Each call makes a single attempt. PageFetcher is safe for concurrent use.
type PageFetcher struct {
	client   *http.Client
	breakers *circuitbreaker.Group
	limiter  *rate.Limiter
	config   Config
	logger   *slog.Logger
}

var _ page.Fetcher = (*PageFetcher)(nil)

// NewPageFetcher creates a PageFetcher with the given configuration.
func NewPageFetcher(config Config, logger *slog.Logger) *PageFetcher {
	if logger == nil {
		logger = slog.Default()
	}

	cbConfig := circuitbreaker.PageFetchConfig()
	cbConfig.IsSuccessful = isHostHealthy

	f := &PageFetcher{
		breakers: circuitbreaker.NewGroup(cbConfig, logger),
		limiter:  rate.NewLimiter(rate.Limit(config.RatePerSecond), config.Burst),
		config:   config,
		logger:   logger,
	}

	f.client = &http.Client{
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 4,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) > f.config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", page.ErrTooManyRedirects, len(via))
			}
			if _, err := validateURL(req.URL.String(), f.config.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target validation failed: %w", err)
			}
			return nil
		},
	}

	return f
}

// Breakers exposes the per-host circuit breakers for health reporting.
func (f *PageFetcher) Breakers() *circuitbreaker.Group {
	return f.breakers
}

// FetchPage retrieves the HTML document at rawURL.
//
// The fetch process:
//  1. Validates URL for security (SSRF prevention)
//  2. Waits for the rate limiter
//  3. Executes HTTP request through the target host's circuit breaker
//  4. Enforces size limit while reading response
func (f *PageFetcher) FetchPage(ctx context.Context, rawURL string) (*page.Page, error) {
	u, err := validateURL(rawURL, f.config.DenyPrivateIPs)
	if err != nil {
		return nil, err
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	breaker := f.breakers.For(u.Host)
	start := time.Now()
	result, err := breaker.Execute(func() (interface{}, error) {
		return f.doFetch(ctx, rawURL)
	})
	if err != nil {
		metrics.RecordPageFetchFailure(time.Since(start))
		if circuitbreaker.IsRejection(err) {
			logging.FromContextOr(ctx, f.logger).Warn("page fetch rejected by circuit breaker",
				slog.String("url", rawURL),
				slog.String("circuit", breaker.Name()))
		}
		return nil, err
	}

	p := result.(*page.Page)
	metrics.RecordPageFetchSuccess(time.Since(start), len(p.HTML))
	return p, nil
}

// doFetch performs the actual HTTP request. Called through the circuit breaker.
func (f *PageFetcher) doFetch(ctx context.Context, rawURL string) (*page.Page, error) {
	reqCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", page.ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: request exceeded %v", page.ErrTimeout, f.config.Timeout)
		}
		// Redirect policy errors arrive wrapped in *url.Error.
		var urlErr *url.Error
		if errors.As(err, &urlErr) && isPolicyError(urlErr.Err) {
			return nil, urlErr.Err
		}
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &page.StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	limitedReader := io.LimitReader(resp.Body, f.config.MaxBodySize+1)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: reading body exceeded %v", page.ErrTimeout, f.config.Timeout)
		}
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > f.config.MaxBodySize {
		return nil, fmt.Errorf("%w: response size exceeds limit %d bytes",
			page.ErrBodyTooLarge, f.config.MaxBodySize)
	}

	finalURL := req.URL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL
	}

	return &page.Page{URL: finalURL, HTML: string(body)}, nil
}

// isHostHealthy decides whether a fetch outcome counts as a success for the
// host's breaker. Refusals caused by the requested URL say nothing about
// the host's health.
func isHostHealthy(err error) bool {
	if err == nil || isPolicyError(err) ||
		errors.Is(err, page.ErrBodyTooLarge) ||
		errors.Is(err, context.Canceled) {
		return true
	}
	var statusErr *page.StatusError
	return errors.As(err, &statusErr) && statusErr.IsClientError()
}

func isPolicyError(err error) bool {
	return errors.Is(err, page.ErrTooManyRedirects) ||
		errors.Is(err, page.ErrPrivateIP) ||
		errors.Is(err, page.ErrInvalidURL)
}
