package categorizer

import (
	"fmt"
	"strings"

	"github.com/dastanaron/bookmarks-organizer/internal/models"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Rule maps one category to the keywords that select it
type Rule struct {
	Category string
	Keywords []string
}

// RuleSet is an ordered list of rules. Earlier rules win.
type RuleSet []Rule

// DefaultRules returns the built-in rule set used when no rules file exists
func DefaultRules() RuleSet {
	return RuleSet{
		{Category: "Development/Programming", Keywords: []string{"github.com", "gitstar-ranking.com", "leetcode", "代码", "编程", "开发", "dev", "mcp", "pake"}},
		{Category: "DevOps/Operations", Keywords: []string{"sre-platform", "opsnote", "docker", "vps", "服务器", "监控", "网络", "拨测", "海底光缆"}},
		{Category: "Design/Creative", Keywords: []string{"模板码", "图片制作", "postimages", "create.wan.video", "nanobanana", "图片"}},
		{Category: "AI/Machine Learning", Keywords: []string{"dify", "llmcodearena", "nano-banana"}},
		{Category: "Community/News", Keywords: []string{"v2ex.com", "52pojie", "博客", "知乎", "微信公众号", "linux.do"}},
		{Category: "Tools/Navigation", Keywords: []string{"ishell", "yourls", "pingvin-share", "hubproxy", "kspeeder"}},
	}
}

// Categories returns category names in rule order
func (rs RuleSet) Categories() []string {
	names := make([]string, len(rs))
	for i, r := range rs {
		names[i] = r.Category
	}
	return names
}

// KeywordCount returns the total number of keywords across all rules
func (rs RuleSet) KeywordCount() int {
	n := 0
	for _, r := range rs {
		n += len(r.Keywords)
	}
	return n
}

// Validate checks that category names are present, unique and don't collide with
// the fallback category.
func (rs RuleSet) Validate() error {
	errs := validation.Errors{}
	seen := make(map[string]int, len(rs))
	for i, r := range rs {
		key := fmt.Sprintf("rules[%d].category", i)
		name := strings.TrimSpace(r.Category)
		switch {
		case name == "":
			errs[key] = validation.NewError("rules.category_required", "category name must not be blank")
		case r.Category == models.FallbackCategory:
			errs[key] = validation.NewError("rules.category_reserved",
				fmt.Sprintf("category %q is reserved for unmatched bookmarks", models.FallbackCategory))
		default:
			if first, ok := seen[r.Category]; ok {
				errs[key] = validation.NewError("rules.category_duplicate",
					fmt.Sprintf("category %q already defined at rules[%d]", r.Category, first))
				continue
			}
			seen[r.Category] = i
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
