package readability

import (
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// minParagraphLength is the shortest paragraph, in characters, that
// contributes to its ancestors' scores.
const minParagraphLength = 25

// Candidate is an element under consideration as article content.
type Candidate struct {
	Node  *html.Node
	Score float64
}

// Candidates maps nodes to their candidates by node identity and remembers
// the order in which candidates were created.
type Candidates struct {
	byNode  map[*html.Node]*Candidate
	ordered []*Candidate
}

func newCandidates() *Candidates {
	return &Candidates{byNode: make(map[*html.Node]*Candidate)}
}

// Get returns the candidate for n, if n has been scored.
func (c *Candidates) Get(n *html.Node) (*Candidate, bool) {
	cand, ok := c.byNode[n]
	return cand, ok
}

// Len returns the number of candidates.
func (c *Candidates) Len() int {
	return len(c.ordered)
}

// Ordered returns the candidates in creation order.
func (c *Candidates) Ordered() []*Candidate {
	return append([]*Candidate(nil), c.ordered...)
}

// Top returns up to n candidates by descending score. Equal scores keep
// creation order.
func (c *Candidates) Top(n int) []*Candidate {
	sorted := c.Ordered()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

func (c *Candidates) add(cand *Candidate) {
	c.byNode[cand.Node] = cand
	c.ordered = append(c.ordered, cand)
}

// ClassWeight scores n by its class and id attributes: -25 for each that
// looks like chrome and +25 for each that looks like content.
func (r *Rules) ClassWeight(n *html.Node) int {
	weight := 0
	for _, key := range []string{"class", "id"} {
		feature := getAttr(n, key)
		if feature == "" {
			continue
		}
		if r.negative.MatchString(feature) {
			weight -= 25
		}
		if r.positive.MatchString(feature) {
			weight += 25
		}
	}
	return weight
}

// ScoreNode creates a candidate for n scored by its class, id and tag.
// With scoreTextLength set, nodes with fewer than 200 characters of text
// score 0; longer nodes earn a point per comma and per 100 characters (up
// to 3).
func (r *Rules) ScoreNode(n *html.Node, scoreTextLength bool) *Candidate {
	score := float64(r.ClassWeight(n))
	switch n.Data {
	case "article":
		score += 25
	case "div":
		score += 5
	case "pre", "td", "blockquote":
		score += 3
	case "address", "ol", "ul", "dl", "dd", "dt", "li", "form":
		score -= 3
	case "h1", "h2", "h3", "h4", "h5", "h6", "th":
		score -= 5
	}

	if scoreTextLength {
		text := clean(textContent(n))
		length := utf8.RuneCountInString(text)
		if length < 200 {
			score = 0
		} else {
			score += float64(strings.Count(text, ",") + min(length/100, 3))
		}
	}

	return &Candidate{Node: n, Score: score}
}

// ScoreParagraphs scores every p, pre and td with at least minLen
// characters of text and credits its parent and grandparent. Once all
// paragraphs are counted, each candidate is scaled by 1 - link density.
func (r *Rules) ScoreParagraphs(root *html.Node, minLen int) *Candidates {
	candidates := newCandidates()
	for _, elem := range tags(root, "p", "pre", "td") {
		parent := elem.Parent
		if parent == nil || parent.Type != html.ElementNode {
			continue
		}
		grandparent := parent.Parent
		if grandparent != nil && grandparent.Type != html.ElementNode {
			grandparent = nil
		}

		text := clean(textContent(elem))
		length := utf8.RuneCountInString(text)
		if length < minLen {
			continue
		}

		if _, ok := candidates.Get(parent); !ok {
			candidates.add(r.ScoreNode(parent, false))
		}
		if grandparent != nil {
			if _, ok := candidates.Get(grandparent); !ok {
				candidates.add(r.ScoreNode(grandparent, false))
			}
		}

		inc := float64(1 + strings.Count(text, ",") + min(length/100, 3))
		candidates.byNode[parent].Score += inc
		if grandparent != nil {
			candidates.byNode[grandparent].Score += inc / 2
		}
	}

	for _, cand := range candidates.ordered {
		ld := LinkDensity(cand.Node)
		r.logger.Debug("candidate",
			"node", describe(cand.Node),
			"score", cand.Score,
			"link_density", ld,
			"scaled", cand.Score*(1-ld),
		)
		cand.Score *= 1 - ld
	}

	return candidates
}

// LinkDensity returns the share of the text of n that sits inside links.
func LinkDensity(n *html.Node) float64 {
	linkLength := 0
	for _, a := range tags(n, "a") {
		linkLength += TextLength(a)
	}
	return float64(linkLength) / float64(max(TextLength(n), 1))
}

// ArticleElement returns the page's article element when exactly one
// article element has a positive text score. Such a page has declared its
// content explicitly and scoring is bypassed.
func (r *Rules) ArticleElement(root *html.Node) *Candidate {
	var found []*Candidate
	for _, n := range tags(root, "article") {
		if cand := r.ScoreNode(n, true); cand.Score > 0 {
			found = append(found, cand)
		}
	}
	if len(found) != 1 {
		return nil
	}
	return found[0]
}
