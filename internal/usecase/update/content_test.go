package update

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newCaptureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), &buf
}

func TestNormalizeContent(t *testing.T) {
	tests := []struct {
		name     string
		content  Content
		want     string
		wantOK   bool
		wantWarn string
	}{
		{
			name:    "absent",
			content: nil,
		},
		{
			name:    "empty text",
			content: TextContent(""),
		},
		{
			name:    "empty value list",
			content: ValueListContent{},
		},
		{
			name:    "plain text is returned unchanged",
			content: TextContent("x"),
			want:    "x",
			wantOK:  true,
		},
		{
			name:    "first value wins",
			content: ValueListContent{{Value: "a"}, {Value: "b"}},
			want:    "a",
			wantOK:  true,
		},
		{
			name:    "empty string value is still text",
			content: ValueListContent{{Type: "text/html", Value: ""}},
			want:    "",
			wantOK:  true,
		},
		{
			name:     "non-string value",
			content:  ValueListContent{{Value: 123}},
			wantWarn: `"observed_type":"int"`,
		},
		{
			name:     "missing value reports nil type",
			content:  ValueListContent{{}},
			wantWarn: `"observed_type":"<nil>"`,
		},
		{
			name:     "later elements are never consulted",
			content:  ValueListContent{{Value: 1.5}, {Value: "b"}},
			wantWarn: `"observed_type":"float64"`,
		},
		{
			name:     "number",
			content:  OpaqueContent{Raw: 42},
			wantWarn: `"observed_type":"int"`,
		},
		{
			name:     "mapping",
			content:  OpaqueContent{Raw: map[string]any{"value": "x"}},
			wantWarn: `"observed_type":"map[string]interface {}"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newCaptureLogger()

			var got string
			var ok bool
			assert.NotPanics(t, func() {
				got, ok = NormalizeContent(logger, tt.content)
			})

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			if tt.wantWarn == "" {
				assert.Empty(t, buf.String(), "no diagnostic expected")
				return
			}
			assert.Contains(t, buf.String(), `"level":"WARN"`)
			assert.Contains(t, buf.String(), tt.wantWarn)
		})
	}
}

func TestNormalizeContent_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		_, ok := NormalizeContent(nil, OpaqueContent{Raw: 42})
		assert.False(t, ok)
	})
}

func TestClassifyContent(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want Content
	}{
		{
			name: "nil is absent",
			raw:  nil,
			want: nil,
		},
		{
			name: "string",
			raw:  "body",
			want: TextContent("body"),
		},
		{
			name: "already classified",
			raw:  TextContent("body"),
			want: TextContent("body"),
		},
		{
			name: "content values",
			raw:  []ContentValue{{Type: "text/html", Value: "<p>a</p>"}},
			want: ValueListContent{{Type: "text/html", Value: "<p>a</p>"}},
		},
		{
			name: "list of mappings",
			raw:  []map[string]any{{"type": "text/html", "value": "a"}, {"value": "b"}},
			want: ValueListContent{{Type: "text/html", Value: "a"}, {Value: "b"}},
		},
		{
			name: "heterogeneous list",
			raw:  []any{map[string]any{"value": 123}, "stray", ContentValue{Value: "c"}},
			want: ValueListContent{{Value: 123}, {}, {Value: "c"}},
		},
		{
			name: "number",
			raw:  42,
			want: OpaqueContent{Raw: 42},
		},
		{
			name: "mapping",
			raw:  map[string]any{"value": "x"},
			want: OpaqueContent{Raw: map[string]any{"value": "x"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyContent(tt.raw))
		})
	}
}

func TestClassifyThenNormalize(t *testing.T) {
	logger, _ := newCaptureLogger()

	got, ok := NormalizeContent(logger, ClassifyContent([]map[string]any{{"value": "GenAI Content"}}))
	assert.True(t, ok)
	assert.Equal(t, "GenAI Content", got)

	_, ok = NormalizeContent(logger, ClassifyContent([]any{}))
	assert.False(t, ok)
}
