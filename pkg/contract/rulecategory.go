package contract

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/getmockd/pactcore/pkg/metrics"
	"github.com/getmockd/pactcore/pkg/pathexp"
)

// RuleCategory holds the rule lists of one category keyed by path expression.
// Keys are canonical expression strings, so there is at most one list per
// distinct expression.
type RuleCategory struct {
	Name  Category
	rules map[string]RuleList
	paths map[string]pathexp.Expression
}

// NewRuleCategory returns an empty category.
func NewRuleCategory(name Category) *RuleCategory {
	return &RuleCategory{
		Name:  name,
		rules: make(map[string]RuleList),
		paths: make(map[string]pathexp.Expression),
	}
}

func (c *RuleCategory) ensure() {
	if c.rules == nil {
		c.rules = make(map[string]RuleList)
		c.paths = make(map[string]pathexp.Expression)
	}
}

// Len returns the number of rule lists.
func (c *RuleCategory) Len() int { return len(c.rules) }

// IsEmpty reports whether the category has no rule lists.
func (c *RuleCategory) IsEmpty() bool { return len(c.rules) == 0 }

// Paths returns the expressions that carry rules, in key order.
func (c *RuleCategory) Paths() []pathexp.Expression {
	keys := slices.Sorted(maps.Keys(c.rules))
	out := make([]pathexp.Expression, len(keys))
	for i, k := range keys {
		out[i] = c.paths[k]
	}
	return out
}

// Get returns the rule list bound to path.
func (c *RuleCategory) Get(path pathexp.Expression) (RuleList, bool) {
	l, ok := c.rules[path.Key()]
	return l, ok
}

// AddRule appends rule to the list at path, creating it with logic if needed.
func (c *RuleCategory) AddRule(path pathexp.Expression, rule MatchingRule, logic RuleLogic) {
	c.ensure()
	key := path.Key()
	l, ok := c.rules[key]
	if !ok {
		l = RuleList{Logic: logic}
		c.paths[key] = path
	}
	l.Add(rule)
	c.rules[key] = l
}

// Merge appends every list of other to the lists of this category.
func (c *RuleCategory) Merge(other *RuleCategory) {
	c.ensure()
	for key, l := range other.rules {
		existing, ok := c.rules[key]
		if !ok {
			c.rules[key] = l.clone()
			c.paths[key] = other.paths[key]
			continue
		}
		existing.AddAll(l)
		c.rules[key] = existing
	}
}

// Filter returns a new category with the entries accepted by keep.
func (c *RuleCategory) Filter(keep func(path pathexp.Expression, rules RuleList) bool) *RuleCategory {
	out := NewRuleCategory(c.Name)
	for key, l := range c.rules {
		if keep(c.paths[key], l) {
			out.rules[key] = l.clone()
			out.paths[key] = c.paths[key]
		}
	}
	return out
}

// Clone returns a deep copy of the category.
func (c *RuleCategory) Clone() *RuleCategory {
	return c.Filter(func(pathexp.Expression, RuleList) bool { return true })
}

// ResolveMatchersForPath returns the entries whose expression addresses
// exactly the given path. Categories that are not keyed by collection paths
// (method, path, status) are returned unfiltered.
func (c *RuleCategory) ResolveMatchersForPath(path []string) *RuleCategory {
	if !c.Name.isCollection() {
		return c.Clone()
	}
	return c.Filter(func(e pathexp.Expression, _ RuleList) bool {
		return e.MatchesPath(path)
	})
}

// ResolveCascadedMatchersForPath is like ResolveMatchersForPath but also keeps
// rules declared on ancestors of path.
func (c *RuleCategory) ResolveCascadedMatchersForPath(path []string) *RuleCategory {
	if !c.Name.isCollection() {
		return c.Clone()
	}
	return c.Filter(func(e pathexp.Expression, _ RuleList) bool {
		return e.MatchesPathPrefix(path)
	})
}

// SelectBestMatcher returns the rule list that applies to path. For body and
// metadata categories the most specific expression wins; the result is
// flagged cascaded when that expression addresses an ancestor of path. Other
// categories return the first exact match. An empty list means no rules
// apply.
func (c *RuleCategory) SelectBestMatcher(path []string) RuleList {
	var best RuleList
	if c.Name.weighted() {
		best = c.maxByPath(path)
	} else {
		best = c.ResolveMatchersForPath(path).AsRuleList()
	}
	switch {
	case best.IsEmpty():
		metrics.ObserveSelection(string(c.Name), metrics.SelectionNone)
	case best.Cascaded:
		metrics.ObserveSelection(string(c.Name), metrics.SelectionCascaded)
	default:
		metrics.ObserveSelection(string(c.Name), metrics.SelectionExact)
	}
	return best
}

func (c *RuleCategory) maxByPath(path []string) RuleList {
	var (
		bestKey   string
		bestScore = -1
		bestLen   int
		found     bool
	)
	for key, e := range c.paths {
		w, l := e.Weight(path)
		if w <= 0 {
			continue
		}
		score := w * l
		if !found || score > bestScore || (score == bestScore && key < bestKey) {
			bestKey, bestScore, bestLen, found = key, score, l, true
		}
	}
	if !found {
		return RuleList{}
	}
	return c.rules[bestKey].AsCascaded(bestLen != len(path))
}

// AsRuleList returns the first rule list in key order, or an empty list.
func (c *RuleCategory) AsRuleList() RuleList {
	if len(c.rules) == 0 {
		return RuleList{}
	}
	keys := slices.Sorted(maps.Keys(c.rules))
	return c.rules[keys[0]].clone()
}

// MatcherIsDefined reports whether any rule addresses path exactly.
func (c *RuleCategory) MatcherIsDefined(path []string) bool {
	return !c.ResolveMatchersForPath(path).IsEmpty()
}

// WildcardMatcherIsDefined reports whether a rule on a wildcard expression
// addresses path.
func (c *RuleCategory) WildcardMatcherIsDefined(path []string) bool {
	return !c.Filter(func(e pathexp.Expression, _ RuleList) bool {
		return e.IsWildcard() && e.MatchesPath(path)
	}).IsEmpty()
}

// TypeMatcherDefined reports whether any list holds a type rule.
func (c *RuleCategory) TypeMatcherDefined() bool {
	for _, l := range c.rules {
		if l.TypeMatcherDefined() {
			return true
		}
	}
	return false
}

// ValuesMatcherDefined reports whether any list holds a values rule.
func (c *RuleCategory) ValuesMatcherDefined() bool {
	for _, l := range c.rules {
		if l.ValuesMatcherDefined() {
			return true
		}
	}
	return false
}

// Equal compares names and rule lists.
func (c *RuleCategory) Equal(other *RuleCategory) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.Name == other.Name && maps.EqualFunc(c.rules, other.rules, RuleList.Equal)
}

// AddRulesFromJSON loads either a single {"combine","matchers"} object bound
// to the empty path or an object keyed by path expression.
func (c *RuleCategory) AddRulesFromJSON(v any) error {
	m, ok := asObject(v)
	if !ok {
		return nil
	}
	if _, ok := m["matchers"]; ok {
		return c.addRuleList(pathexp.New(), m)
	}
	for k, raw := range m {
		path, err := pathexp.Parse(k)
		if err != nil {
			logger().Warn("ignoring matching rules with invalid path", "category", c.Name, "path", k, "error", err)
			metrics.ObserveDocumentError("rules")
			continue
		}
		obj, ok := asObject(raw)
		if !ok {
			logger().Warn("ignoring invalid matching rule list", "category", c.Name, "path", k)
			metrics.ObserveDocumentError("rules")
			continue
		}
		if err := c.addRuleList(path, obj); err != nil {
			return err
		}
	}
	return nil
}

func (c *RuleCategory) addRuleList(path pathexp.Expression, obj map[string]any) error {
	logic := ParseRuleLogic(obj["combine"])
	matchers, ok := obj["matchers"].([]any)
	if !ok {
		return nil
	}
	for _, mj := range matchers {
		if err := c.RuleFromJSON(path, mj, logic); err != nil {
			logger().Warn("ignoring invalid matching rule", "category", c.Name, "path", path.String(), "error", err)
			metrics.ObserveDocumentError("rules")
		}
	}
	return nil
}

// RuleFromJSON parses one rule object and adds it at path.
func (c *RuleCategory) RuleFromJSON(path pathexp.Expression, v any, logic RuleLogic) error {
	rule, err := RuleFromJSON(v)
	if err != nil {
		return fmt.Errorf("could not parse matcher JSON %v: %w", v, err)
	}
	c.AddRule(path, rule, logic)
	return nil
}

// ToV3JSON returns an object mapping each expression to its rule list.
// Header and query parameters are written by name.
func (c *RuleCategory) ToV3JSON() map[string]any {
	out := make(map[string]any, len(c.rules))
	for key, l := range c.rules {
		out[c.jsonKey(key)] = l.ToV3JSON()
	}
	return out
}

// jsonKey returns the bare parameter name for single-field header and query
// keys.
func (c *RuleCategory) jsonKey(key string) string {
	if c.Name != CategoryHeader && c.Name != CategoryQuery {
		return key
	}
	return parameterName(c.paths[key], key)
}

// parameterName returns the field name of a single-field expression when
// that name parses back to the same expression, and key otherwise.
func parameterName(e pathexp.Expression, key string) string {
	name, ok := e.FirstField()
	if !ok {
		return key
	}
	if again, err := pathexp.Parse(name); err != nil || again.Key() != key {
		return key
	}
	return name
}

// ToV2JSON returns the legacy flat entries for this category.
func (c *RuleCategory) ToV2JSON() map[string]any {
	out := map[string]any{}
	for key, l := range c.rules {
		switch c.Name {
		case CategoryPath:
			out["$.path"] = l.ToV2JSON()
		case CategoryBody:
			out[strings.Replace(orRoot(key), "$", "$.body", 1)] = l.ToV2JSON()
		case CategoryHeader:
			out["$.headers."+legacyKey(c.paths[key])] = l.ToV2JSON()
		default:
			out[fmt.Sprintf("$.%s.%s", c.Name, legacyKey(c.paths[key]))] = l.ToV2JSON()
		}
	}
	return out
}

func orRoot(key string) string {
	if key == "" {
		return "$"
	}
	return key
}

func legacyKey(e pathexp.Expression) string {
	if name, ok := e.FirstField(); ok {
		return name
	}
	return strings.TrimPrefix(e.String(), "$.")
}
