package mock

import "github.com/fwojciec/readerize"

var (
	_ readerize.Converter        = (*Converter)(nil)
	_ readerize.AttributeCleaner = (*AttributeCleaner)(nil)
)

// Converter is a mock implementation of readerize.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

// AttributeCleaner is a mock implementation of readerize.AttributeCleaner.
type AttributeCleaner struct {
	StripAttributesFn func(markup string) (string, error)
}

func (c *AttributeCleaner) StripAttributes(markup string) (string, error) {
	return c.StripAttributesFn(markup)
}
