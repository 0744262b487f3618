// Package goquery reads page metadata using goquery selectors.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/destiner/carpe"
)

// Ensure MetadataExtractor implements carpe.MetadataExtractor at compile time.
var _ carpe.MetadataExtractor = (*MetadataExtractor)(nil)

// coverImageSelectors are tried in order; the first non-empty content wins.
var coverImageSelectors = []string{
	`meta[property="og:image"]`,
	`meta[name="twitter:image"]`,
	`meta[name="twitter:image:src"]`,
}

// MetadataExtractor reads the page title and cover image from meta tags.
type MetadataExtractor struct{}

// NewMetadataExtractor creates a new MetadataExtractor.
func NewMetadataExtractor() *MetadataExtractor {
	return &MetadataExtractor{}
}

// ExtractMetadata returns the page title and cover image URL.
// The title prefers og:title over the document title.
func (e *MetadataExtractor) ExtractMetadata(html string) (*carpe.PageMetadata, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, carpe.Errorf(carpe.EINVALID, "failed to parse HTML: %v", err)
	}

	meta := &carpe.PageMetadata{
		Title: metaContent(doc, `meta[property="og:title"]`),
	}
	if meta.Title == "" {
		meta.Title = strings.TrimSpace(doc.Find("head title").First().Text())
	}

	for _, sel := range coverImageSelectors {
		if src := metaContent(doc, sel); src != "" {
			meta.CoverImageURL = src
			break
		}
	}

	return meta, nil
}

// metaContent returns the trimmed content attribute of the first match.
func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}
