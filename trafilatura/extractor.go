// Package trafilatura extracts reader-mode content using go-trafilatura.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/destiner/carpe"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements carpe.Extractor at compile time.
var _ carpe.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to produce the reader view of an article.
// It falls back to readability-style heuristics when its own scoring finds
// too little text.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses rawHTML and returns the reader view.
func (e *Extractor) Extract(rawHTML, pageURL string) (*carpe.ReaderMode, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, carpe.Errorf(carpe.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &carpe.ReaderMode{
		Title:   strings.TrimSpace(result.Metadata.Title),
		Author:  strings.TrimSpace(result.Metadata.Author),
		Excerpt: strings.TrimSpace(result.Metadata.Description),
		Content: strings.TrimSpace(result.ContentText),
		HTML:    contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
