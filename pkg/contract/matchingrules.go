package contract

import (
	"maps"
	"slices"
	"strings"

	"github.com/getmockd/pactcore/pkg/pathexp"
)

// MatchingRules is the full set of rules of an interaction, by category.
type MatchingRules struct {
	Categories map[Category]*RuleCategory
}

// NewMatchingRules returns an empty rule set.
func NewMatchingRules() *MatchingRules {
	return &MatchingRules{Categories: make(map[Category]*RuleCategory)}
}

// IsEmpty reports whether no category holds any rule.
func (m *MatchingRules) IsEmpty() bool {
	for _, c := range m.Categories {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

// AddCategory returns the named category, creating it if needed.
func (m *MatchingRules) AddCategory(name Category) *RuleCategory {
	if m.Categories == nil {
		m.Categories = make(map[Category]*RuleCategory)
	}
	c, ok := m.Categories[name]
	if !ok {
		c = NewRuleCategory(name)
		m.Categories[name] = c
	}
	return c
}

// RulesForCategory returns a copy of the named category.
func (m *MatchingRules) RulesForCategory(name Category) (*RuleCategory, bool) {
	c, ok := m.Categories[name]
	if !ok {
		return nil, false
	}
	return c.Clone(), true
}

// AddRules merges rules into the named category.
func (m *MatchingRules) AddRules(name Category, rules *RuleCategory) {
	m.AddCategory(name).Merge(rules)
}

// Clone returns a deep copy.
func (m *MatchingRules) Clone() *MatchingRules {
	out := NewMatchingRules()
	for name, c := range m.Categories {
		out.Categories[name] = c.Clone()
	}
	return out
}

// Equal compares categories, ignoring empty ones.
func (m *MatchingRules) Equal(other *MatchingRules) bool {
	return maps.EqualFunc(nonEmpty(m.Categories), nonEmpty(other.Categories), (*RuleCategory).Equal)
}

func nonEmpty(in map[Category]*RuleCategory) map[Category]*RuleCategory {
	out := make(map[Category]*RuleCategory, len(in))
	for k, v := range in {
		if !v.IsEmpty() {
			out[k] = v
		}
	}
	return out
}

// LoadMatchingRules parses the matchingRules section of an interaction. An
// object whose first key (in sorted order) starts with "$" is read as the
// legacy flat form; any other object is read as the categorized form. A value
// that is not an object yields an empty rule set.
func LoadMatchingRules(v any) (*MatchingRules, error) {
	rules := NewMatchingRules()
	obj, ok := asObject(v)
	if !ok || len(obj) == 0 {
		return rules, nil
	}
	keys := slices.Sorted(maps.Keys(obj))
	if strings.HasPrefix(keys[0], "$") {
		rules.loadV2(obj, keys)
		return rules, nil
	}
	if err := rules.loadV3(obj, keys); err != nil {
		return nil, err
	}
	return rules, nil
}

func (m *MatchingRules) loadV2(obj map[string]any, keys []string) {
	for _, key := range keys {
		category, path, err := legacyKeyToPath(key)
		if err != nil {
			logger().Warn("ignoring legacy matching rule with invalid key", "key", key, "error", err)
			continue
		}
		if err := m.AddCategory(category).RuleFromJSON(path, obj[key], LogicAnd); err != nil {
			logger().Warn("ignoring invalid legacy matching rule", "key", key, "error", err)
		}
	}
}

// legacyKeyToPath splits a flat key such as "$.body.a[0]" or
// "$.headers.Accept" into a category and a path expression.
func legacyKeyToPath(key string) (Category, pathexp.Expression, error) {
	parts := strings.Split(key, ".")
	switch {
	case key == "$.body":
		return CategoryBody, pathexp.RootExpression(), nil
	case strings.HasPrefix(key, "$.body"):
		e, err := pathexp.Parse("$" + key[len("$.body"):])
		return CategoryBody, e, err
	case strings.HasPrefix(key, "$.headers") && len(parts) > 2:
		e, err := pathexp.Parse(parts[2])
		return CategoryHeader, e, err
	}
	if len(parts) < 2 {
		return "", pathexp.Expression{}, ErrUnknownCategory
	}
	category, err := ParseCategory(parts[1])
	if err != nil {
		return "", pathexp.Expression{}, err
	}
	if len(parts) > 2 {
		e, err := pathexp.Parse(parts[2])
		return category, e, err
	}
	return category, pathexp.New(), nil
}

func (m *MatchingRules) loadV3(obj map[string]any, keys []string) error {
	for _, key := range keys {
		category, err := ParseCategory(key)
		if err != nil {
			logger().Warn("ignoring matching rules with invalid category", "category", key, "error", err)
			continue
		}
		if err := m.AddCategory(category).AddRulesFromJSON(obj[key]); err != nil {
			return err
		}
	}
	return nil
}

// ToV3JSON returns the categorized document form.
func (m *MatchingRules) ToV3JSON() map[string]any {
	out := map[string]any{}
	for name, c := range m.Categories {
		if name == CategoryPath {
			if l, ok := c.Get(pathexp.New()); ok {
				out[string(name)] = l.ToV3JSON()
			}
			continue
		}
		out[string(name)] = c.ToV3JSON()
	}
	return out
}

// ToV2JSON returns the legacy flat document form.
func (m *MatchingRules) ToV2JSON() map[string]any {
	out := map[string]any{}
	for _, c := range m.Categories {
		maps.Copy(out, c.ToV2JSON())
	}
	return out
}
