// Package readability extracts reader-mode content using go-readability.
package readability

import (
	"net/url"
	"strings"

	"github.com/destiner/carpe"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements carpe.Extractor at compile time.
var _ carpe.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to produce the reader view of an article.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses rawHTML and returns the reader view. pageURL, when
// valid, is used to resolve relative links in the content.
func (e *Extractor) Extract(rawHTML, pageURL string) (*carpe.ReaderMode, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, carpe.Errorf(carpe.EINVALID, "empty HTML input")
	}

	var u *url.URL
	if parsed, err := url.Parse(pageURL); err == nil && parsed.Host != "" {
		u = parsed
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), u)
	if err != nil {
		return nil, err
	}

	return &carpe.ReaderMode{
		Title:   strings.TrimSpace(article.Title),
		Author:  strings.TrimSpace(article.Byline),
		Excerpt: strings.TrimSpace(article.Excerpt),
		Content: strings.TrimSpace(article.TextContent),
		HTML:    article.Content,
	}, nil
}
