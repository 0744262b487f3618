package mock

import "github.com/destiner/carpe"

var _ carpe.Converter = (*Converter)(nil)

// Converter is a mock implementation of carpe.Converter.
type Converter struct {
	ConvertFn func(html, pageURL string) (string, error)
}

func (c *Converter) Convert(html, pageURL string) (string, error) {
	return c.ConvertFn(html, pageURL)
}
