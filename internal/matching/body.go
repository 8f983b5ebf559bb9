package matching

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/getmockd/pactcore/pkg/contract"
)

// CompareBody compares an actual JSON document with the expected one using
// the rules of a body category, and returns every mismatch found. A nil
// category compares by equality. Keys present in actual but not in expected
// are allowed.
func CompareBody(rules *contract.RuleCategory, expected, actual any) []Mismatch {
	if rules == nil {
		rules = contract.NewRuleCategory(contract.CategoryBody)
	}
	c := comparer{rules: rules}
	return c.compare([]string{"$"}, expected, actual)
}

type comparer struct {
	rules *contract.RuleCategory
}

func childPath(path []string, segment string) []string {
	out := make([]string, len(path)+1)
	copy(out, path)
	out[len(path)] = segment
	return out
}

func (c comparer) compare(path []string, expected, actual any) []Mismatch {
	switch e := expected.(type) {
	case map[string]any:
		a, ok := actual.(map[string]any)
		if !ok {
			return []Mismatch{typeMismatch(path, expected, actual)}
		}
		return c.compareMaps(path, e, a)
	case []any:
		a, ok := actual.([]any)
		if !ok {
			return []Mismatch{typeMismatch(path, expected, actual)}
		}
		return c.compareLists(path, e, a)
	}
	return mismatches(path, expected, actual, MatchRules(c.rules.SelectBestMatcher(path), expected, actual))
}

func typeMismatch(path []string, expected, actual any) Mismatch {
	return Mismatch{
		Path:     joinPath(path),
		Expected: expected,
		Actual:   actual,
		Reason: fmt.Sprintf("Type mismatch: Expected %s %s but received %s %s",
			typeName(expected), jsonText(expected), typeName(actual), jsonText(actual)),
	}
}

func (c comparer) compareMaps(path []string, expected, actual map[string]any) []Mismatch {
	list := c.rules.SelectBestMatcher(path)
	if list.IsEmpty() && len(expected) == 0 && len(actual) > 0 {
		return []Mismatch{{
			Path:     joinPath(path),
			Expected: expected,
			Actual:   actual,
			Reason:   fmt.Sprintf("Expected an empty Map but received %s", jsonText(actual)),
		}}
	}

	var out []Mismatch
	if !list.IsEmpty() && !list.Cascaded {
		out = append(out, mismatches(path, expected, actual, MatchRules(list, expected, actual))...)
	}

	if !list.Cascaded && list.ValuesMatcherDefined() {
		if len(expected) == 0 {
			return out
		}
		first := expected[slices.Min(slices.Collect(maps.Keys(expected)))]
		for _, key := range slices.Sorted(maps.Keys(actual)) {
			template, ok := expected[key]
			if !ok {
				template = first
			}
			out = append(out, c.compare(childPath(path, key), template, actual[key])...)
		}
		return out
	}

	for _, key := range slices.Sorted(maps.Keys(expected)) {
		p := childPath(path, key)
		if value, ok := actual[key]; ok {
			out = append(out, c.compare(p, expected[key], value)...)
			continue
		}
		if c.rules.WildcardMatcherIsDefined(p) {
			continue
		}
		out = append(out, Mismatch{
			Path:     joinPath(path),
			Expected: expected,
			Actual:   actual,
			Reason:   fmt.Sprintf("Expected entry %s=%s but was missing", key, jsonText(expected[key])),
		})
	}
	return out
}

func (c comparer) compareLists(path []string, expected, actual []any) []Mismatch {
	list := c.rules.SelectBestMatcher(path)
	if list.IsEmpty() {
		if len(expected) == 0 && len(actual) > 0 {
			return []Mismatch{{
				Path:     joinPath(path),
				Expected: expected,
				Actual:   actual,
				Reason:   fmt.Sprintf("Expected an empty List but received %s", jsonText(actual)),
			}}
		}
		return c.compareListContent(path, expected, actual)
	}

	var (
		out   []Mismatch
		other = contract.RuleList{Logic: list.Logic, Cascaded: list.Cascaded}
	)
	for _, rule := range list.Rules {
		if rule.Kind != contract.RuleArrayContains {
			other.Add(rule)
			continue
		}
		if !list.Cascaded {
			out = append(out, mismatches(path, expected, actual, MatchValue(rule, expected, actual))...)
		}
	}
	if other.IsEmpty() {
		return out
	}

	ruleErrs := mismatches(path, expected, actual, MatchRules(other, expected, actual))
	out = append(out, ruleErrs...)
	switch {
	case other.TypeMatcherDefined():
		if len(expected) == 0 {
			return out
		}
		for i, value := range actual {
			template := expected[0]
			if i < len(expected) {
				template = expected[i]
			}
			out = append(out, c.compare(childPath(path, strconv.Itoa(i)), template, value)...)
		}
	case len(ruleErrs) == 0:
		out = append(out, c.compareListContent(path, expected, actual)...)
	}
	return out
}

// compareListContent compares elements position by position and requires
// equal lengths.
func (c comparer) compareListContent(path []string, expected, actual []any) []Mismatch {
	var out []Mismatch
	for i, value := range expected {
		p := childPath(path, strconv.Itoa(i))
		if i < len(actual) {
			out = append(out, c.compare(p, value, actual[i])...)
			continue
		}
		if c.rules.MatcherIsDefined(p) {
			continue
		}
		out = append(out, Mismatch{
			Path:     joinPath(path),
			Expected: expected,
			Actual:   actual,
			Reason:   fmt.Sprintf("Expected %s but was missing", jsonText(value)),
		})
	}
	if len(expected) != len(actual) {
		out = append(out, Mismatch{
			Path:     joinPath(path),
			Expected: expected,
			Actual:   actual,
			Reason:   fmt.Sprintf("Expected a List with %d elements but received %d elements", len(expected), len(actual)),
		})
	}
	return out
}
