// Package categorizer assigns bookmarks to topical categories using ordered keyword
// rules. The first rule with a keyword contained in the bookmark URL or title wins;
// bookmarks matching nothing go to models.FallbackCategory.
package categorizer

import (
	ahocorasick "github.com/cloudflare/ahocorasick"
	"github.com/dastanaron/bookmarks-organizer/internal/logger"
	"github.com/dastanaron/bookmarks-organizer/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Match describes which rule selected a bookmark
type Match struct {
	Category string
	Keyword  string // keyword as written in the rule set, empty for the fallback
}

// keywordRef points at one keyword inside the rule set
type keywordRef struct {
	rule    int
	keyword int
}

func (r keywordRef) before(o keywordRef) bool {
	if r.rule != o.rule {
		return r.rule < o.rule
	}
	return r.keyword < o.keyword
}

// Categorizer classifies bookmarks against a rule set.
//
// All keywords are compiled into one Aho-Corasick automaton so each text is scanned
// once; the winning keyword is the hit with the lowest (rule, keyword) position,
// which is the same answer a rule-by-rule, keyword-by-keyword scan gives.
// A Categorizer is not safe for concurrent use.
type Categorizer struct {
	rules    RuleSet
	lower    cases.Caser
	matcher  *ahocorasick.Matcher
	patterns []string       // distinct lower-cased keywords, the matcher dictionary
	refs     [][]keywordRef // per pattern, every place it occurs in rule order
	always   *keywordRef    // first empty keyword; an empty string is in every text
	logger   logger.Logger
}

// New compiles the rule set. A nil or empty rule set is valid and sends every
// bookmark to the fallback category.
func New(rules RuleSet, log logger.Logger) *Categorizer {
	if log == nil {
		log = logger.NewNop()
	}
	c := &Categorizer{
		rules:  rules,
		lower:  cases.Lower(language.Und),
		logger: log,
	}
	c.compile()

	c.logger.Debug("categorizer initialized",
		logger.Int("rules", len(rules)),
		logger.Int("keywords", rules.KeywordCount()),
		logger.Int("patterns", len(c.patterns)))

	return c
}

func (c *Categorizer) compile() {
	index := make(map[string]int)
	for ri, rule := range c.rules {
		for ki, kw := range rule.Keywords {
			ref := keywordRef{rule: ri, keyword: ki}
			normalized := c.lower.String(kw)
			if normalized == "" {
				if c.always == nil {
					c.always = &ref
				}
				continue
			}
			idx, ok := index[normalized]
			if !ok {
				idx = len(c.patterns)
				index[normalized] = idx
				c.patterns = append(c.patterns, normalized)
				c.refs = append(c.refs, nil)
			}
			c.refs[idx] = append(c.refs[idx], ref)
		}
	}

	if len(c.patterns) > 0 {
		c.matcher = ahocorasick.NewStringMatcher(c.patterns)
	}
}

// Classify returns the category for a single bookmark
func (c *Categorizer) Classify(b models.Bookmark) Match {
	var best keywordRef
	found := false
	if c.always != nil {
		best, found = *c.always, true
	}

	if c.matcher != nil {
		for _, text := range [...]string{c.lower.String(b.URL), c.lower.String(b.Title)} {
			if text == "" {
				continue
			}
			for _, hit := range c.matcher.Match([]byte(text)) {
				// refs are appended in rule order, the first one is the earliest
				ref := c.refs[hit][0]
				if !found || ref.before(best) {
					best, found = ref, true
				}
			}
		}
	}

	if !found {
		return Match{Category: models.FallbackCategory}
	}
	rule := c.rules[best.rule]
	return Match{Category: rule.Category, Keyword: rule.Keywords[best.keyword]}
}

// Categorize groups bookmarks by category. Every input bookmark lands in exactly
// one category, in input order within that category.
func (c *Categorizer) Categorize(bookmarks []models.Bookmark) models.Collection {
	out := make(models.Collection)
	for _, b := range bookmarks {
		m := c.Classify(b)
		out[m.Category] = append(out[m.Category], b)
	}

	c.logger.Debug("bookmarks categorized",
		logger.Int("bookmarks", len(bookmarks)),
		logger.Int("categories", len(out)))

	return out
}
