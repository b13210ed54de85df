package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		expected slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"invalid", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.name))
		})
	}
}

func TestNew_JSONDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "", "")

	logger.Info("server started", slog.String("transport", "stdio"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "server started", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "stdio", entry["transport"])
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", "text")

	logger.Warn("feed slow")

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "time="), "text handler output expected, got %q", out)
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, `msg="feed slow"`)
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn", "json")

	logger.Info("dropped")
	logger.Debug("dropped too")
	assert.Empty(t, buf.String())

	logger.Error("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestNewLogger_ReadsEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")

	logger := NewLogger()

	require.NotNil(t, logger)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
}

func TestWithCallID(t *testing.T) {
	var buf bytes.Buffer
	base := New(&buf, "info", "json")

	WithCallID(base, "0f8fad5b-d9cb-469f-a165-70867728950e").Info("tool called")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "0f8fad5b-d9cb-469f-a165-70867728950e", entry["call_id"])
}

func TestWithCallID_Empty(t *testing.T) {
	base := New(&bytes.Buffer{}, "info", "json")

	assert.Same(t, base, WithCallID(base, ""))
}

func TestContextPropagation(t *testing.T) {
	logger := New(&bytes.Buffer{}, "info", "json")

	ctx := WithLogger(context.Background(), logger)

	assert.Same(t, logger, FromContext(ctx))
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}

func TestFromContextOr(t *testing.T) {
	fallback := New(&bytes.Buffer{}, "info", "json")
	callLogger := WithCallID(fallback, "abc")

	assert.Same(t, fallback, FromContextOr(context.Background(), fallback))
	assert.Same(t, callLogger, FromContextOr(WithLogger(context.Background(), callLogger), fallback))
	assert.Same(t, fallback, FromContextOr(WithLogger(context.Background(), nil), fallback))
}
