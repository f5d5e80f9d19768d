package readerize

// AttributeCleaner removes presentational attributes (class, id, style,
// event handlers) from article markup while keeping its structure, links
// and images.
type AttributeCleaner interface {
	StripAttributes(markup string) (string, error)
}
