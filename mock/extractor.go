package mock

import "github.com/destiner/carpe"

var (
	_ carpe.Extractor         = (*Extractor)(nil)
	_ carpe.MetadataExtractor = (*MetadataExtractor)(nil)
)

// Extractor is a mock implementation of carpe.Extractor.
type Extractor struct {
	ExtractFn func(html, pageURL string) (*carpe.ReaderMode, error)
}

func (e *Extractor) Extract(html, pageURL string) (*carpe.ReaderMode, error) {
	return e.ExtractFn(html, pageURL)
}

// MetadataExtractor is a mock implementation of carpe.MetadataExtractor.
type MetadataExtractor struct {
	ExtractMetadataFn func(html string) (*carpe.PageMetadata, error)
}

func (e *MetadataExtractor) ExtractMetadata(html string) (*carpe.PageMetadata, error) {
	return e.ExtractMetadataFn(html)
}
