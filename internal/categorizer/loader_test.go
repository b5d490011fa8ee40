package categorizer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dastanaron/bookmarks-organizer/internal/models"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "categories.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRulesLoaderLoad(t *testing.T) {
	path := writeRules(t, `
Zeta:
  - zzz
  - Z-Two
Alpha: [aaa]
Middle: single
Nothing:
`)

	rules, loaded, err := NewRulesLoader(path).Load()
	require.NoError(t, err)
	assert.True(t, loaded)

	// file order is kept, not sorted
	assert.Equal(t, RuleSet{
		{Category: "Zeta", Keywords: []string{"zzz", "Z-Two"}},
		{Category: "Alpha", Keywords: []string{"aaa"}},
		{Category: "Middle", Keywords: []string{"single"}},
		{Category: "Nothing"},
	}, rules)
}

func TestRulesLoaderMissingFileUsesDefaults(t *testing.T) {
	rules, loaded, err := NewRulesLoader(filepath.Join(t.TempDir(), "missing.yaml")).Load()
	require.NoError(t, err)
	assert.False(t, loaded)
	assert.Equal(t, DefaultRules(), rules)
}

func TestRulesLoaderEmptyFile(t *testing.T) {
	for name, content := range map[string]string{"empty": "", "comment only": "# nothing yet\n", "null": "~\n"} {
		t.Run(name, func(t *testing.T) {
			rules, loaded, err := NewRulesLoader(writeRules(t, content)).Load()
			require.NoError(t, err)
			assert.True(t, loaded)
			assert.Empty(t, rules)
		})
	}
}

func TestParseRulesNumbersAndAliases(t *testing.T) {
	rules, err := ParseRules([]byte(`
Shared: &kw [52pojie, 404]
Copy: *kw
`))
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, []string{"52pojie", "404"}, rules[0].Keywords)
	assert.Equal(t, rules[0].Keywords, rules[1].Keywords)
}

func TestParseRulesErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "invalid yaml", content: "a: [b\n"},
		{name: "top level list", content: "- a\n- b\n"},
		{name: "nested mapping keyword", content: "A:\n  - {x: y}\n"},
		{name: "mapping value", content: "A:\n  x: y\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRules([]byte(tt.content))
			assert.Error(t, err)
		})
	}
}

func TestRuleSetValidate(t *testing.T) {
	assert.NoError(t, DefaultRules().Validate())
	assert.NoError(t, RuleSet{}.Validate())

	tests := []struct {
		name  string
		rules RuleSet
		key   string
	}{
		{name: "blank name", rules: RuleSet{{Category: "  "}}, key: "rules[0].category"},
		{name: "reserved name", rules: RuleSet{{Category: "A"}, {Category: models.FallbackCategory}}, key: "rules[1].category"},
		{name: "duplicate", rules: RuleSet{{Category: "A"}, {Category: "B"}, {Category: "A"}}, key: "rules[2].category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rules.Validate()
			require.Error(t, err)

			var errs validation.Errors
			require.True(t, errors.As(err, &errs))
			assert.Contains(t, errs, tt.key)
		})
	}
}

func TestRuleSetHelpers(t *testing.T) {
	rules := RuleSet{{Category: "A", Keywords: []string{"x", "y"}}, {Category: "B", Keywords: []string{"z"}}}
	assert.Equal(t, []string{"A", "B"}, rules.Categories())
	assert.Equal(t, 3, rules.KeywordCount())
}
