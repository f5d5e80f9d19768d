// Package readability implements the article extraction engine: DOM
// preprocessing, content scoring, candidate selection and assembly,
// sanitization, and the multi-page pagination controller.
//
// The engine works on golang.org/x/net/html trees. Node identity is pointer
// identity, so all per-node scoring state is keyed by *html.Node.
package readability

import (
	"log/slog"
	"regexp"
	"strings"
)

const (
	unlikelyPattern = `combx|comment|community|disqus|extra|foot|header|menu|remark|rss|shoutbox|sidebar|sponsor|ad-break|agegate|pagination|pager|popup|tweet|twitter`
	maybePattern    = `and|article|body|column|main|shadow`
	positivePattern = `article|body|content|entry|hentry|main|page|pagination|post|text|blog|story`
	negativePattern = `combx|comment|com-|contact|foot|footer|footnote|masthead|media|meta|outbrain|promo|related|scroll|shoutbox|sidebar|sponsor|shopping|tags|tool|widget`
	divToPPattern   = `<(a|blockquote|dl|div|img|ol|p|pre|table|ul)`
	nextLinkPattern = `^(?:next(?: page)?|weiter|continue|(?:next ?)?[>»]{1,2})$`
	prevLinkPattern = `prev|earl|old|new|<|«`
)

// RulesConfig customizes the pattern tables used by the engine.
type RulesConfig struct {
	// PositiveKeywords are added to the class/id pattern that earns +25.
	PositiveKeywords []string

	// NegativeKeywords are added to the class/id pattern that costs -25.
	NegativeKeywords []string

	// Logger receives debug output about removed and scored elements.
	// Defaults to a logger that discards everything.
	Logger *slog.Logger
}

// Rules holds the compiled pattern tables of the engine. Rules are
// immutable once built and safe for concurrent use.
type Rules struct {
	unlikely *regexp.Regexp
	maybe    *regexp.Regexp
	positive *regexp.Regexp
	negative *regexp.Regexp
	divToP   *regexp.Regexp
	nextLink *regexp.Regexp
	prevLink *regexp.Regexp

	logger *slog.Logger
}

// DefaultRules returns Rules with the stock pattern tables.
func DefaultRules() *Rules {
	return NewRules(RulesConfig{})
}

// NewRules compiles the pattern tables, extended with any extra keywords.
// Keywords are matched literally and case-insensitively.
func NewRules(cfg RulesConfig) *Rules {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Rules{
		unlikely: compile(unlikelyPattern, nil),
		maybe:    compile(maybePattern, nil),
		positive: compile(positivePattern, cfg.PositiveKeywords),
		negative: compile(negativePattern, cfg.NegativeKeywords),
		divToP:   compile(divToPPattern, nil),
		nextLink: compile(nextLinkPattern, nil),
		prevLink: compile(prevLinkPattern, nil),
		logger:   logger,
	}
}

func compile(base string, keywords []string) *regexp.Regexp {
	alternatives := []string{base}
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		alternatives = append(alternatives, regexp.QuoteMeta(strings.ToLower(kw)))
	}
	return regexp.MustCompile(`(?i)` + strings.Join(alternatives, "|"))
}
