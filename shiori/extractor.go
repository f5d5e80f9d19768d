// Package shiori adapts go-shiori/go-readability, a port of Mozilla's
// Readability.js, to readerize.Extractor so its output can be compared with
// the readability engine's.
package shiori

import (
	"strings"

	"github.com/fwojciec/readerize"
	readability "github.com/go-shiori/go-readability"
)

// Ensure Extractor implements readerize.Extractor at compile time.
var _ readerize.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*readerize.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, readerize.Errorf(readerize.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, readerize.Errorf(readerize.EUNPARSEABLE, "go-readability: %v", err)
	}

	return &readerize.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
