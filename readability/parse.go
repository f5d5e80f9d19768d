package readability

import (
	"github.com/fwojciec/readerize"
	"golang.org/x/net/html"
)

// outcome is the result kind of a single parse attempt.
type outcome int

const (
	outcomeArticle outcome = iota
	outcomeNoCandidate
	outcomeFailed
)

// attempt is the result of one pass of the extraction pipeline.
type attempt struct {
	outcome outcome
	article *html.Node
	err     error
}

// Parse extracts the article from a page. The page itself is never
// modified: each attempt runs on its own deep copy.
//
// The first attempt is ruthless and removes elements that are unlikely to
// be content before scoring. If it fails or finds nothing, a conservative
// attempt runs and its result is final. Parse returns a nil node when no
// article could be identified, and an EUNPARSEABLE error when the
// conservative attempt fails.
func (r *Rules) Parse(root *html.Node) (*html.Node, error) {
	first := r.attempt(root, true)
	switch first.outcome {
	case outcomeArticle:
		return first.article, nil
	case outcomeFailed:
		r.logger.Info("ruthless parsing failed", "err", first.err)
	case outcomeNoCandidate:
		r.logger.Info("ruthless parsing found no article")
	}

	second := r.attempt(root, false)
	switch second.outcome {
	case outcomeArticle:
		return second.article, nil
	case outcomeFailed:
		return nil, second.err
	}
	return nil, nil
}

// attempt runs preprocessing, scoring, selection, assembly and
// sanitization on a copy of root. Candidate state lives only for the
// duration of the call.
func (r *Rules) attempt(root *html.Node, ruthless bool) (res attempt) {
	defer func() {
		if v := recover(); v != nil {
			res = attempt{
				outcome: outcomeFailed,
				err:     readerize.Errorf(readerize.EUNPARSEABLE, "parsing article (ruthless=%t): %v", ruthless, v),
			}
		}
	}()

	doc := cloneTree(root)
	if err := r.Preprocess(doc, ruthless); err != nil {
		return attempt{
			outcome: outcomeFailed,
			err:     readerize.Errorf(readerize.EUNPARSEABLE, "preprocessing (ruthless=%t): %v", ruthless, err),
		}
	}

	candidates := r.ScoreParagraphs(doc, minParagraphLength)
	for _, cand := range candidates.Top(5) {
		r.logger.Debug("top candidate", "score", cand.Score, "node", describe(cand.Node))
	}

	best := r.ArticleElement(doc)
	if best == nil {
		best = SelectBest(candidates)
	}
	if best == nil {
		return attempt{outcome: outcomeNoCandidate}
	}

	article := Assemble(candidates, best)
	r.Sanitize(article, candidates)
	if article.FirstChild == nil {
		return attempt{outcome: outcomeNoCandidate}
	}
	return attempt{outcome: outcomeArticle, article: article}
}
