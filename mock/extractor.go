package mock

import "github.com/fwojciec/readerize"

var _ readerize.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of readerize.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*readerize.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*readerize.ExtractResult, error) {
	return e.ExtractFn(html)
}
