package readerize

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be clean article HTML.
	Convert(html string) (string, error)
}
