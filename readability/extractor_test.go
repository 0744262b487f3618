package readability_test

import (
	"testing"

	"github.com/destiner/carpe"
	"github.com/destiner/carpe/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head>
<title>The Long Read</title>
<meta name="author" content="Ada Lovelace">
<meta name="description" content="A story about engines.">
</head>
<body>
<nav><a href="/home">Home Nav Link</a><a href="/about">About Nav Link</a></nav>
<aside class="sidebar"><p>Sidebar navigation content</p></aside>
<article>
<h1>The Long Read</h1>
<p>This is the important article paragraph text that must be kept in the reader view.</p>
<p>A second paragraph continues the story about the analytical engine and its programs.</p>
<p>See the <a href="/notes">notes</a> for details.</p>
<ul><li>First item</li><li>Second item</li></ul>
</article>
<footer><p>Footer copyright text 2024</p></footer>
</body>
</html>`

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	_, err := ext.Extract("  ", "https://example.com")

	require.Error(t, err)
	assert.Equal(t, carpe.EINVALID, carpe.ErrorCode(err))
}

func TestExtractor_ExtractsMetadata(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	result, err := ext.Extract(articleHTML, "https://example.com/long-read")

	require.NoError(t, err)
	assert.Equal(t, "The Long Read", result.Title)
	assert.Equal(t, "Ada Lovelace", result.Author)
	assert.Equal(t, "A story about engines.", result.Excerpt)
}

func TestExtractor_ContentIsPlainText(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	result, err := ext.Extract(articleHTML, "https://example.com/long-read")

	require.NoError(t, err)
	assert.Contains(t, result.Content, "important article paragraph text")
	assert.NotContains(t, result.Content, "<p")
}

func TestExtractor_RemovesBoilerplate(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	result, err := ext.Extract(articleHTML, "")

	require.NoError(t, err)
	assert.NotContains(t, result.HTML, "Home Nav Link")
	assert.NotContains(t, result.HTML, "Sidebar navigation content")
	assert.NotContains(t, result.HTML, "Footer copyright text")
	assert.NotContains(t, result.Content, "Footer copyright text")
}

func TestExtractor_KeepsStructure(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	result, err := ext.Extract(articleHTML, "")

	require.NoError(t, err)
	assert.Contains(t, result.HTML, "<p")
	assert.Contains(t, result.HTML, "<ul")
	assert.Contains(t, result.HTML, "<li")
}

func TestExtractor_ResolvesRelativeLinks(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	result, err := ext.Extract(articleHTML, "https://example.com/long-read")

	require.NoError(t, err)
	assert.Contains(t, result.HTML, "https://example.com/notes")
}
