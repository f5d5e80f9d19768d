// Package trafilatura adapts go-trafilatura to readerize.Extractor so its
// output can be compared with the readability engine's.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/readerize"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements readerize.Extractor at compile time.
var _ readerize.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor that skips reader comments and
// uses trafilatura's fallback extractors.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback:  true,
			ExcludeComments: true,
		},
	}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*readerize.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, readerize.Errorf(readerize.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, readerize.Errorf(readerize.EUNPARSEABLE, "trafilatura: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, err
		}
		contentHTML = buf.String()
	}

	return &readerize.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}
