package carpe

// Converter transforms reader-mode HTML to Markdown for display in a
// terminal. Relative links and images are resolved against pageURL when
// it is non-empty.
type Converter interface {
	Convert(html, pageURL string) (string, error)
}
