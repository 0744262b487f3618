package carpe

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ContentHash returns a short, stable hash of content using xxhash.
// An empty content hashes to "".
func ContentHash(content string) string {
	if content == "" {
		return ""
	}
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}

// FormatArticle formats an article header and body for display.
// Uses the reader title if available, falls back to the article title and
// then the URL. The body is the given text, separated by a blank line.
func FormatArticle(a *Article, body string) string {
	title := a.Title
	if a.ReaderMode != nil && a.ReaderMode.Title != "" {
		title = a.ReaderMode.Title
	}
	if title == "" {
		title = a.URL
	}

	var sb strings.Builder
	sb.WriteString("# " + title + "\n")
	if a.ReaderMode != nil && a.ReaderMode.Author != "" {
		sb.WriteString("By " + a.ReaderMode.Author + "\n")
	}
	sb.WriteString(a.URL + "\n")
	if body != "" {
		sb.WriteString("\n" + body)
	}
	return sb.String()
}

// FormatTokens formats token count in human-readable form.
func FormatTokens(tokens int) string {
	if tokens < 1000 {
		return fmt.Sprintf("~%d tokens", tokens)
	}
	return fmt.Sprintf("~%dk tokens", (tokens+500)/1000)
}
