package readability

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

const (
	// rescueWindow is how many non-empty siblings on each side are inspected
	// before dropping an element for its embeds.
	rescueWindow = 1

	// rescueLength is the combined sibling text length that cancels the drop.
	rescueLength = 1000
)

// Sanitize prunes low-value subtrees from an assembled article: chrome-like
// headers, forms and frames, and any table, ul or div that scores poorly or
// looks like navigation, a gallery, a widget or a form.
//
// Elements are visited in reverse document order so every element is judged
// after its descendants have been pruned. The tree must not be accessed
// concurrently while Sanitize runs.
func (r *Rules) Sanitize(article *html.Node, candidates *Candidates) {
	for _, header := range tags(article, "h1", "h2", "h3", "h4", "h5", "h6") {
		if r.ClassWeight(header) < 0 || LinkDensity(header) > 0.33 {
			r.logger.Debug("dropping header", "node", describe(header))
			_ = dropTree(header)
		}
	}

	for _, n := range tags(article, "form", "iframe", "textarea") {
		_ = dropTree(n)
	}

	allowed := make(map[*html.Node]struct{})
	for _, el := range reverseTags(article, "table", "ul", "div") {
		if _, ok := allowed[el]; ok {
			continue
		}

		weight := r.ClassWeight(el)
		score := 0.0
		if cand, ok := candidates.Get(el); ok {
			score = cand.Score
		}

		if float64(weight)+score < 0 {
			r.logger.Debug("dropping low score element",
				"node", describe(el),
				"score", score,
				"weight", weight,
			)
			_ = dropTree(el)
			continue
		}

		if strings.Count(textContent(el), ",") >= 10 {
			continue
		}

		reason := r.pruneReason(el, weight, allowed)
		if reason == "" {
			continue
		}
		r.logger.Debug("dropping element",
			"node", describe(el),
			"score", score,
			"weight", weight,
			"reason", reason,
		)
		_ = dropTree(el)
	}
}

// pruneReason returns why el should be dropped, or "" to keep it. When el
// is kept only because its neighbours carry a lot of text, its table, ul and
// div descendants are added to allowed.
func (r *Rules) pruneReason(el *html.Node, weight int, allowed map[*html.Node]struct{}) string {
	paragraphs := len(tags(el, "p"))
	images := len(tags(el, "img"))
	items := len(tags(el, "li")) - 100
	inputs := len(tags(el, "input"))
	embeds := len(tags(el, "embed"))

	contentLength := TextLength(el)
	ld := LinkDensity(el)

	switch {
	case paragraphs > 0 && images > paragraphs:
		return fmt.Sprintf("too many images (%d)", images)
	case items > paragraphs && el.Data != "ul" && el.Data != "ol":
		return "more <li>s than <p>s"
	case inputs > paragraphs/3:
		return "less than 3x <p>s than <input>s"
	case contentLength < minParagraphLength && (images == 0 || images > 2):
		return fmt.Sprintf("too short content length %d without a single image", contentLength)
	case weight < 25 && ld > 0.2:
		return fmt.Sprintf("too many links %.3f for its weight %d", ld, weight)
	case weight >= 25 && ld > 0.5:
		return fmt.Sprintf("too many links %.3f for its weight %d", ld, weight)
	case (embeds == 1 && contentLength < 75) || embeds > 1:
		if siblingLength(el) > rescueLength {
			r.logger.Debug("allowing element for its siblings", "node", describe(el))
			for _, n := range tags(el, "table", "ul", "div") {
				allowed[n] = struct{}{}
			}
			return ""
		}
		return "<embed>s with too short content length, or too many <embed>s"
	}
	return ""
}

// siblingLength sums the text length of the nearest non-empty element
// siblings of el on each side, up to rescueWindow per side.
func siblingLength(el *html.Node) int {
	total := 0
	found := 0
	for s := el.NextSibling; s != nil && found < rescueWindow; s = s.NextSibling {
		if s.Type != html.ElementNode {
			continue
		}
		if n := TextLength(s); n > 0 {
			total += n
			found++
		}
	}
	found = 0
	for s := el.PrevSibling; s != nil && found < rescueWindow; s = s.PrevSibling {
		if s.Type != html.ElementNode {
			continue
		}
		if n := TextLength(s); n > 0 {
			total += n
			found++
		}
	}
	return total
}
