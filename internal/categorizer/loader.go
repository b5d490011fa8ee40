package categorizer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// RulesLoader handles loading of the category rules YAML file
type RulesLoader struct {
	filePath string
}

// NewRulesLoader creates a new rules loader
func NewRulesLoader(filePath string) *RulesLoader {
	return &RulesLoader{
		filePath: filePath,
	}
}

// Load reads the rules file. When the file does not exist the built-in rules are
// returned and loaded is false. An empty file yields an empty rule set.
func (l *RulesLoader) Load() (rules RuleSet, loaded bool, err error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultRules(), false, nil
		}
		return nil, false, fmt.Errorf("failed to read rules file: %w", err)
	}

	rules, err = ParseRules(data)
	if err != nil {
		return nil, false, err
	}
	return rules, true, nil
}

// ParseRules decodes a YAML mapping of category name to keyword list, keeping the
// order categories and keywords appear in.
//
//	Development:
//	  - github.com
//	  - leetcode
//	News: [v2ex.com, linux.do]
func ParseRules(data []byte) (RuleSet, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse rules yaml: %w", err)
	}

	rules := RuleSet{}
	if len(doc.Content) == 0 {
		return rules, nil
	}

	root := resolve(doc.Content[0])
	if isNull(root) {
		return rules, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("rules yaml line %d: expected a mapping of category to keywords", root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key := resolve(root.Content[i])
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("rules yaml line %d: category name must be a scalar", key.Line)
		}
		keywords, err := decodeKeywords(resolve(root.Content[i+1]))
		if err != nil {
			return nil, fmt.Errorf("rules yaml category %q: %w", key.Value, err)
		}
		rules = append(rules, Rule{Category: key.Value, Keywords: keywords})
	}

	return rules, nil
}

// decodeKeywords accepts a sequence of scalars, a single scalar, or null.
func decodeKeywords(n *yaml.Node) ([]string, error) {
	switch {
	case isNull(n):
		return nil, nil
	case n.Kind == yaml.ScalarNode:
		return []string{n.Value}, nil
	case n.Kind == yaml.SequenceNode:
		keywords := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			item = resolve(item)
			if item.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: keyword must be a scalar", item.Line)
			}
			keywords = append(keywords, item.Value)
		}
		return keywords, nil
	default:
		return nil, fmt.Errorf("line %d: expected a list of keywords", n.Line)
	}
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}
