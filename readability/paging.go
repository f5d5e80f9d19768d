package readability

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Next page link signals.
const (
	nextTextScore    = 100
	pageTextScore    = 75
	nextPatternScore = 50
	pageHrefScore    = 25
	prevPatternScore = -200
)

// pageParams are query parameters that commonly carry a page number.
var pageParams = []string{"page", "p", "pg", "paged"}

// pageSegmentRe captures a trailing page number in a path segment such as
// "2", "page2", "story-2" or "story_2.html".
var pageSegmentRe = regexp.MustCompile(`(?i)(?:^|[-_]|page)(\d+)(?:\.[a-z]+)?$`)

// IsPossiblePagingURL reports whether candidate could be a next page of
// base. Both must be absolute URLs with the same scheme and host.
func IsPossiblePagingURL(base, candidate string) bool {
	if candidate == "" {
		return false
	}
	b, err := url.Parse(base)
	if err != nil {
		return false
	}
	c, err := url.Parse(candidate)
	if err != nil {
		return false
	}
	if c.Host == "" {
		return false
	}
	return strings.EqualFold(b.Scheme, c.Scheme) && strings.EqualFold(b.Host, c.Host)
}

// nextPageURL finds the link on the page that most plausibly leads to page
// number page+1 of the same article. Links inside comment threads are not
// considered. It returns "" when no link qualifies.
func (r *Rules) nextPageURL(root *html.Node, pageURL string, page int) string {
	if pageURL == "" {
		return ""
	}
	want := strconv.Itoa(page + 1)
	self := stripFragment(pageURL)

	best := ""
	bestScore := 0
	for _, a := range pagingCandidates(root) {
		href := stripFragment(strings.TrimSpace(getAttr(a, "href")))
		if !isHTTP(href) || href == self || !IsPossiblePagingURL(pageURL, href) {
			continue
		}

		text := strings.ToLower(strings.Join(strings.Fields(textContent(a)), " "))
		score := 0
		if text == "next" {
			score += nextTextScore
		}
		if text == want {
			score += pageTextScore
		}
		if r.nextLink.MatchString(text) {
			score += nextPatternScore
		}
		// The href only ranks links whose text already reads as a next link.
		if score == 0 {
			continue
		}
		if hrefHasPage(href, want) {
			score += pageHrefScore
		}
		if r.prevLink.MatchString(text) {
			score += prevPatternScore
		}

		if score > bestScore {
			best, bestScore = href, score
		}
	}
	if best != "" {
		r.logger.Debug("next page link", "url", best, "score", bestScore, "page", page+1)
	}
	return best
}

// pagingCandidates returns the a elements whose parent is not a comment
// thread, in document order.
func pagingCandidates(root *html.Node) []*html.Node {
	var out []*html.Node
	for _, a := range tags(root, "a") {
		parent := a.Parent
		if parent == nil || parent.Type != html.ElementNode {
			continue
		}
		switch getAttr(parent, "id") {
		case "disqus_thread", "comments":
			continue
		}
		if getAttr(parent, "class") == "userComments" {
			continue
		}
		out = append(out, a)
	}
	return out
}

// hrefHasPage reports whether href carries page number want in a page query
// parameter or in its last path segment.
func hrefHasPage(href, want string) bool {
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	q := u.Query()
	for _, key := range pageParams {
		if q.Get(key) == want {
			return true
		}
	}
	segments := strings.Split(strings.TrimSuffix(u.Path, "/"), "/")
	m := pageSegmentRe.FindStringSubmatch(segments[len(segments)-1])
	return m != nil && m[1] == want
}

func isHTTP(href string) bool {
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

func stripFragment(raw string) string {
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		return raw[:i]
	}
	return raw
}
