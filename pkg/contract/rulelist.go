package contract

import (
	"fmt"
	"slices"
	"strings"
)

// RuleLogic is how the rules of a RuleList combine.
type RuleLogic int

// Rule combination modes.
const (
	// LogicAnd requires every rule to pass.
	LogicAnd RuleLogic = iota
	// LogicOr requires at least one rule to pass.
	LogicOr
)

// String returns the document form, "AND" or "OR".
func (l RuleLogic) String() string {
	if l == LogicOr {
		return "OR"
	}
	return "AND"
}

// ParseRuleLogic parses a "combine" value. Anything other than OR is AND.
func ParseRuleLogic(v any) RuleLogic {
	if strings.EqualFold(toString(v), "OR") {
		return LogicOr
	}
	return LogicAnd
}

// RuleList is an ordered list of rules bound to one path expression.
type RuleList struct {
	Rules []MatchingRule
	Logic RuleLogic
	// Cascaded is set when the list was selected through an ancestor path
	// rather than the exact path that was queried.
	Cascaded bool
}

// NewRuleList returns a list holding the given rules combined with AND.
func NewRuleList(rules ...MatchingRule) RuleList {
	return RuleList{Rules: rules, Logic: LogicAnd}
}

// IsEmpty reports whether the list has no rules.
func (l RuleList) IsEmpty() bool { return len(l.Rules) == 0 }

// Add appends a rule.
func (l *RuleList) Add(rule MatchingRule) { l.Rules = append(l.Rules, rule) }

// AddAll appends every rule of other.
func (l *RuleList) AddAll(other RuleList) { l.Rules = append(l.Rules, other.Rules...) }

// AsCascaded returns a copy with the Cascaded flag set to cascaded.
func (l RuleList) AsCascaded(cascaded bool) RuleList {
	out := l.clone()
	out.Cascaded = cascaded
	return out
}

// TypeMatcherDefined reports whether any rule is a type rule.
func (l RuleList) TypeMatcherDefined() bool {
	return slices.ContainsFunc(l.Rules, MatchingRule.IsTypeMatcher)
}

// ValuesMatcherDefined reports whether any rule is a values rule.
func (l RuleList) ValuesMatcherDefined() bool {
	return slices.ContainsFunc(l.Rules, func(r MatchingRule) bool { return r.Kind == RuleValues })
}

// Equal compares logic and rules. Cascaded is not part of equality.
func (l RuleList) Equal(other RuleList) bool {
	return l.Logic == other.Logic && slices.EqualFunc(l.Rules, other.Rules, MatchingRule.Equal)
}

func (l RuleList) clone() RuleList {
	return RuleList{Rules: slices.Clone(l.Rules), Logic: l.Logic, Cascaded: l.Cascaded}
}

// ToV3JSON returns the {"combine", "matchers"} form.
func (l RuleList) ToV3JSON() map[string]any {
	matchers := make([]any, 0, len(l.Rules))
	for _, r := range l.Rules {
		matchers = append(matchers, r.ToJSON())
	}
	return map[string]any{"combine": l.Logic.String(), "matchers": matchers}
}

// ToV2JSON returns the first rule, the only one legacy documents can hold.
func (l RuleList) ToV2JSON() map[string]any {
	if len(l.Rules) == 0 {
		return map[string]any{}
	}
	return l.Rules[0].ToJSON()
}

func (l RuleList) String() string {
	parts := make([]string, len(l.Rules))
	for i, r := range l.Rules {
		parts[i] = r.String()
	}
	return fmt.Sprintf("%s[%s] cascaded=%t", l.Logic, strings.Join(parts, ", "), l.Cascaded)
}
