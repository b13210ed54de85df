// Package config collects the server's runtime configuration from environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	envconfig "weekly-aws-mcp/pkg/config"
)

// DefaultFeedURL is the Japanese AWS blog feed filtered to the 週刊AWS tag.
const DefaultFeedURL = "https://aws.amazon.com/jp/blogs/news/tag/%E9%80%B1%E5%88%8Aaws/feed/"

// ServerConfig holds configuration for the MCP server.
// It is loaded once at startup and not modified afterwards.
type ServerConfig struct {
	// FeedURL is the RSS/Atom feed read by the update tools.
	// Default: DefaultFeedURL
	FeedURL string

	// FeedFetchTimeout bounds one feed retrieval.
	// Default: 10s
	FeedFetchTimeout time.Duration

	// PageFetch configures article page retrieval for the page tools.
	PageFetch PageFetchConfig

	// MetricsPort exposes /metrics on a side listener in stdio mode.
	// 0 disables it. In SSE mode metrics share the main listener.
	// Default: 0
	MetricsPort int

	// AllowedOrigins lists the CORS origins accepted by the SSE endpoints.
	// Default: ["*"]
	AllowedOrigins []string

	// LogLevel is one of debug, info, warn, error. Default: info
	LogLevel string

	// LogFormat is json or text. Default: json
	LogFormat string
}

// PageFetchConfig holds the article page fetch settings.
type PageFetchConfig struct {
	// Timeout per request. Default: 10s
	Timeout time.Duration
	// MaxBodySize in bytes. Default: 10MiB
	MaxBodySize int64
	// MaxRedirects to follow. Default: 5
	MaxRedirects int
	// DenyPrivateIPs blocks SSRF targets. Default: true
	DenyPrivateIPs bool
	// RatePerSecond paces outbound requests. Default: 2
	RatePerSecond float64
}

// LoadServerConfig loads ServerConfig from environment variables and validates it.
//
// Environment variables:
//   - WEEKLY_FEED_URL (default: DefaultFeedURL)
//   - FEED_FETCH_TIMEOUT (default: 10s)
//   - PAGE_FETCH_TIMEOUT (default: 10s)
//   - PAGE_FETCH_MAX_BODY_SIZE (default: 10485760)
//   - PAGE_FETCH_MAX_REDIRECTS (default: 5)
//   - PAGE_FETCH_DENY_PRIVATE_IPS (default: true)
//   - PAGE_FETCH_RATE_PER_SECOND (default: 2)
//   - METRICS_PORT (default: 0)
//   - CORS_ALLOWED_ORIGINS comma separated (default: *)
//   - LOG_LEVEL (default: info)
//   - LOG_FORMAT (default: json)
func LoadServerConfig() (*ServerConfig, error) {
	cfg := &ServerConfig{
		FeedURL:          envconfig.GetEnvString("WEEKLY_FEED_URL", DefaultFeedURL),
		FeedFetchTimeout: envconfig.GetEnvDuration("FEED_FETCH_TIMEOUT", 10*time.Second),
		PageFetch: PageFetchConfig{
			Timeout:        envconfig.GetEnvDuration("PAGE_FETCH_TIMEOUT", 10*time.Second),
			MaxBodySize:    envconfig.GetEnvInt64("PAGE_FETCH_MAX_BODY_SIZE", 10*1024*1024),
			MaxRedirects:   envconfig.GetEnvInt("PAGE_FETCH_MAX_REDIRECTS", 5),
			DenyPrivateIPs: envconfig.GetEnvBool("PAGE_FETCH_DENY_PRIVATE_IPS", true),
			RatePerSecond:  envconfig.GetEnvFloat("PAGE_FETCH_RATE_PER_SECOND", 2),
		},
		MetricsPort:    envconfig.GetEnvInt("METRICS_PORT", 0),
		AllowedOrigins: splitList(envconfig.GetEnvString("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:       envconfig.GetEnvString("LOG_LEVEL", "info"),
		LogFormat:      envconfig.GetEnvString("LOG_FORMAT", "json"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks that every field is usable.
func (c *ServerConfig) Validate() error {
	u, err := url.Parse(c.FeedURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("WEEKLY_FEED_URL must be an absolute http(s) URL, got %q", c.FeedURL)
	}

	if err := envconfig.ValidateDurationRange(c.FeedFetchTimeout, time.Second, 2*time.Minute); err != nil {
		return fmt.Errorf("invalid FEED_FETCH_TIMEOUT: %w", err)
	}
	if err := envconfig.ValidatePositiveDuration(c.PageFetch.Timeout); err != nil {
		return fmt.Errorf("invalid PAGE_FETCH_TIMEOUT: %w", err)
	}
	if c.PageFetch.MaxBodySize <= 0 {
		return fmt.Errorf("PAGE_FETCH_MAX_BODY_SIZE must be positive, got %d", c.PageFetch.MaxBodySize)
	}
	if c.PageFetch.MaxRedirects < 0 {
		return fmt.Errorf("PAGE_FETCH_MAX_REDIRECTS must be non-negative, got %d", c.PageFetch.MaxRedirects)
	}
	if c.PageFetch.RatePerSecond <= 0 {
		return fmt.Errorf("PAGE_FETCH_RATE_PER_SECOND must be positive, got %v", c.PageFetch.RatePerSecond)
	}
	if c.MetricsPort < 0 || c.MetricsPort > 65535 {
		return fmt.Errorf("METRICS_PORT must be between 0 and 65535, got %d", c.MetricsPort)
	}
	if len(c.AllowedOrigins) == 0 {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS must name at least one origin")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}

	return nil
}

// splitList splits a comma separated value, dropping blank items.
func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
