package readability

import (
	"errors"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// RemoveBoilerplate drops the div, header and section elements of a merged
// multi-page article that occur exactly once per page: elements are grouped
// by identical text, and only groups whose size equals pageCount are
// removed. It returns the number of elements removed and does nothing for
// single page articles.
func (r *Rules) RemoveBoilerplate(article *html.Node, pageCount int) int {
	if pageCount <= 1 {
		return 0
	}

	type key struct {
		length int
		text   string
	}
	groups := make(map[key][]*html.Node)
	var order []key
	for _, el := range tags(article, "div", "header", "section") {
		text := textContent(el)
		k := key{length: utf8.RuneCountInString(text), text: text}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], el)
	}

	var remove []*html.Node
	for _, k := range order {
		if len(groups[k]) == pageCount {
			remove = append(remove, groups[k]...)
		}
	}

	r.logger.Info("removing boilerplate", "elements", len(remove), "pages", pageCount)

	removed := 0
	for _, el := range remove {
		if err := dropTree(el); err != nil {
			if errors.Is(err, errDetached) {
				r.logger.Debug("boilerplate element already removed", "node", describe(el))
				continue
			}
			r.logger.Warn("could not remove boilerplate element", "node", describe(el), "err", err)
			continue
		}
		removed++
	}
	return removed
}
