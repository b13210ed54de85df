package fetcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxBodySize)
	assert.Equal(t, 5, cfg.MaxRedirects)
	assert.True(t, cfg.DenyPrivateIPs)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, "timeout must be positive"},
		{"body too small", func(c *Config) { c.MaxBodySize = 10 }, "max body size"},
		{"body too large", func(c *Config) { c.MaxBodySize = 200 * 1024 * 1024 }, "max body size"},
		{"negative redirects", func(c *Config) { c.MaxRedirects = -1 }, "max redirects"},
		{"too many redirects", func(c *Config) { c.MaxRedirects = 11 }, "max redirects"},
		{"zero rate", func(c *Config) { c.RatePerSecond = 0 }, "rate per second"},
		{"zero burst", func(c *Config) { c.Burst = 0 }, "burst"},
		{"zero redirects allowed", func(c *Config) { c.MaxRedirects = 0 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
