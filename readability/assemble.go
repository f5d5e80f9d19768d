package readability

import (
	"math"
	"regexp"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// sentenceEndRe finds a period that ends a sentence.
var sentenceEndRe = regexp.MustCompile(`\.( |$)`)

// SelectBest returns the highest scoring candidate, or nil if there are
// none. Ties go to the candidate created first.
func SelectBest(candidates *Candidates) *Candidate {
	var best *Candidate
	for _, cand := range candidates.ordered {
		if best == nil || cand.Score > best.Score {
			best = cand
		}
	}
	return best
}

// Assemble moves the best candidate and its related siblings into a new
// detached div, in document order. A sibling is related if it is a scored
// candidate within reach of the best score, or a paragraph that reads like
// prose rather than a list of links.
func Assemble(candidates *Candidates, best *Candidate) *html.Node {
	out := newElement("div")
	parent := best.Node.Parent
	if parent == nil {
		out.AppendChild(best.Node)
		return out
	}

	threshold := math.Max(10, best.Score*0.2)
	for _, sibling := range elementChildren(parent) {
		include := sibling == best.Node
		if cand, ok := candidates.Get(sibling); ok && cand.Score >= threshold {
			include = true
		}
		if sibling.Data == "p" {
			ld := LinkDensity(sibling)
			content := leadingText(sibling)
			length := utf8.RuneCountInString(content)
			if length > 80 && ld < 0.25 {
				include = true
			} else if length <= 80 && ld == 0 && sentenceEndRe.MatchString(content) {
				include = true
			}
		}
		if include {
			parent.RemoveChild(sibling)
			out.AppendChild(sibling)
		}
	}
	return out
}
