package carpe

// ReaderMode holds the readable form of an article.
type ReaderMode struct {
	Title   string `json:"title,omitempty"`
	Author  string `json:"author,omitempty"`
	Excerpt string `json:"excerpt,omitempty"`

	// Content is the plain text handed to the inference pipeline.
	Content string `json:"content,omitempty"`

	// HTML is the cleaned article markup, boilerplate removed.
	HTML string `json:"html,omitempty"`
}

// Extractor extracts the readable article from HTML pages.
type Extractor interface {
	// Extract processes raw HTML and returns the reader form of the page.
	// The pageURL resolves relative links; it may be empty.
	Extract(html string, pageURL string) (*ReaderMode, error)
}

// PageMetadata is page-level information outside the article body.
type PageMetadata struct {
	Title         string
	CoverImageURL string
}

// MetadataExtractor reads page metadata from HTML.
type MetadataExtractor interface {
	// ExtractMetadata returns the page title and cover image.
	// Missing values are left empty.
	ExtractMetadata(html string) (*PageMetadata, error)
}
