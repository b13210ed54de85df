package entity

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewUpdate(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	published := time.Date(2024, 4, 1, 19, 0, 0, 0, jst)

	u, err := NewUpdate("週刊AWS – 2024/04/01", "http://example.com/weekly1", published, strPtr("Test Summary"))
	require.NoError(t, err)

	assert.Equal(t, "週刊AWS – 2024/04/01", u.Title)
	assert.Equal(t, "http://example.com/weekly1", u.URL)
	assert.Equal(t, time.UTC, u.Published.Location())
	assert.True(t, u.Published.Equal(published))
	require.NotNil(t, u.Summary)
	assert.Equal(t, "Test Summary", *u.Summary)
}

func TestNewUpdate_WithoutSummary(t *testing.T) {
	u, err := NewUpdate("Test Title", "http://example.com/test", time.Now(), nil)
	require.NoError(t, err)
	assert.Nil(t, u.Summary)
}

func TestNewUpdate_InvalidURL(t *testing.T) {
	_, err := NewUpdate("Test Title", "not-a-url", time.Now(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidationFailed))
}

func TestNewDetailedUpdate(t *testing.T) {
	published := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)

	d, err := NewDetailedUpdate("Test Title", "http://example.com/test", published, strPtr("Test Summary"), strPtr("Test Content"))
	require.NoError(t, err)

	assert.Equal(t, "Test Title", d.Title)
	require.NotNil(t, d.Content)
	assert.Equal(t, "Test Content", *d.Content)
	assert.Nil(t, d.Author)
	assert.Nil(t, d.PublishedDate)
	assert.NotNil(t, d.Tags)
	assert.Empty(t, d.Tags)
}

func TestNewDetailedUpdate_InvalidURL(t *testing.T) {
	d, err := NewDetailedUpdate("Test Title", "ftp://example.com/test", time.Now(), nil, nil)
	require.Error(t, err)
	assert.Nil(t, d)
}

func TestDetailedUpdate_JSON(t *testing.T) {
	published := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
	d, err := NewDetailedUpdate("Test Title", "http://example.com/test", published, nil, nil)
	require.NoError(t, err)

	raw, err := json.Marshal(d)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))

	assert.Equal(t, "Test Title", got["title"])
	assert.Equal(t, "http://example.com/test", got["url"])
	assert.Equal(t, "2024-04-01T10:00:00Z", got["published"])
	assert.Nil(t, got["summary"])
	assert.Nil(t, got["content"])
	assert.Nil(t, got["author"])
	assert.Equal(t, []any{}, got["tags"])
}

func TestEmptyArticleDetails(t *testing.T) {
	d := EmptyArticleDetails("https://example.com/a")

	assert.Equal(t, "https://example.com/a", d.URL)
	assert.Nil(t, d.Content)
	assert.Nil(t, d.Author)
	assert.Nil(t, d.PublishedDate)
	assert.Empty(t, d.Tags)
}
