package crawl

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/readerize"
	"golang.org/x/sync/errgroup"
)

// Engine is a named extractor taking part in a comparison.
type Engine struct {
	Name      string
	Extractor readerize.Extractor
}

// Comparison is one engine's outcome on a page.
type Comparison struct {
	Engine     string
	Title      string
	TextLength int
	Err        error
}

// CompareEngines runs every engine on html concurrently and returns their
// outcomes in engine order. An engine's failure is recorded in its
// Comparison and does not affect the others.
func CompareEngines(html string, engines []Engine) []Comparison {
	results := make([]Comparison, len(engines))

	var g errgroup.Group
	for i, engine := range engines {
		g.Go(func() error {
			results[i] = compareOne(html, engine)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func compareOne(html string, engine Engine) Comparison {
	c := Comparison{Engine: engine.Name}
	result, err := engine.Extractor.Extract(html)
	if err != nil {
		c.Err = err
		return c
	}
	c.Title = result.Title
	c.TextLength, c.Err = TextLength(result.ContentHTML)
	return c
}

// TextLength returns the number of characters of visible text in an HTML
// fragment, with whitespace runs counted as a single space.
func TextLength(fragment string) (int, error) {
	if fragment == "" {
		return 0, nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return 0, err
	}
	return utf8.RuneCountInString(strings.Join(strings.Fields(doc.Text()), " ")), nil
}

// ContentDiffers compares content extracted from HTTP-fetched HTML vs Rod-fetched HTML.
// Returns true if the Rod content is significantly longer (>50%), suggesting JavaScript
// rendering adds meaningful content. Also returns true on extraction errors.
func ContentDiffers(httpHTML, rodHTML string, extractor readerize.Extractor) bool {
	httpResult, err := extractor.Extract(httpHTML)
	if err != nil {
		return true
	}

	rodResult, err := extractor.Extract(rodHTML)
	if err != nil {
		return true
	}

	httpLen := len(httpResult.ContentHTML)
	rodLen := len(rodResult.ContentHTML)

	if httpLen == 0 && rodLen > 0 {
		return true
	}

	return float64(rodLen) > float64(httpLen)*1.5
}
