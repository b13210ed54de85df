package fetcher_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weekly-aws-mcp/internal/infra/fetcher"
)

const longArticle = `<!DOCTYPE html>
<html>
<head><title>週刊AWS – 2024/4/1週</title></head>
<body>
	<nav><a href="/">Home</a> | <a href="/blogs">Blogs</a></nav>
	<article>
		<h1>週刊AWS – 2024/4/1週</h1>
		<p>This is the first paragraph of the article content. It describes several service updates
		released during the week, including improvements to compute, storage and databases.</p>
		<p>This is the second paragraph with more important information about
		<a href="/jp/blogs/news/amazon-bedrock/">Amazon Bedrock</a> and related generative AI features.</p>
		<p>This is the third paragraph to ensure we have enough content for the extraction algorithm
		to consider this block the main article of the page rather than boilerplate.</p>
	</article>
	<footer>Copyright</footer>
</body>
</html>`

func TestRender_Article(t *testing.T) {
	r := fetcher.NewReadabilityRenderer(nil)
	base, err := url.Parse("https://aws.amazon.com/jp/blogs/news/weekly-aws-20240401/")
	require.NoError(t, err)

	md := r.Render(longArticle, base)

	assert.NotEqual(t, fetcher.SimplifyFailedMarker, md)
	assert.Contains(t, md, "first paragraph")
	assert.Contains(t, md, "Amazon Bedrock")
	assert.NotContains(t, md, "<p>")
}

func TestRender_EmptyDocument(t *testing.T) {
	r := fetcher.NewReadabilityRenderer(nil)

	md := r.Render("", nil)

	assert.Equal(t, "<error>Page failed to be simplified from HTML</error>", md)
}

func TestRenderFragment(t *testing.T) {
	r := fetcher.NewReadabilityRenderer(nil)

	md := r.RenderFragment(`<div><h2>Amazon S3</h2><p>New <strong>feature</strong> released.</p><ul><li>one</li><li>two</li></ul></div>`)

	assert.Contains(t, md, "## Amazon S3")
	assert.Contains(t, md, "**feature**")
	assert.True(t, strings.Contains(md, "- one") || strings.Contains(md, "* one"))
}

func TestRenderFragment_Empty(t *testing.T) {
	r := fetcher.NewReadabilityRenderer(nil)

	assert.Equal(t, fetcher.SimplifyFailedMarker, r.RenderFragment("   "))
}
