package matching

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/getmockd/pactcore/pkg/contract"
)

// unsplitHeaders hold values that contain commas of their own.
var unsplitHeaders = map[string]bool{
	"date":                true,
	"expires":             true,
	"if-modified-since":   true,
	"if-unmodified-since": true,
	"last-modified":       true,
	"set-cookie":          true,
	"user-agent":          true,
}

// headerValues flattens the values of a header, splitting comma separated
// lists.
func headerValues(name string, values []string) []string {
	if unsplitHeaders[strings.ToLower(name)] {
		return values
	}
	var out []string
	for _, v := range values {
		for part := range strings.SplitSeq(v, ",") {
			out = append(out, strings.TrimSpace(part))
		}
	}
	return out
}

// lookupFold finds name in values ignoring case.
func lookupFold(values map[string][]string, name string) (string, bool) {
	if _, ok := values[name]; ok {
		return name, true
	}
	for k := range values {
		if strings.EqualFold(k, name) {
			return k, true
		}
	}
	return "", false
}

// headerRules returns the rule list declared for a header, ignoring the case
// of the header name.
func headerRules(rules *contract.RuleCategory, name string) contract.RuleList {
	if rules == nil {
		return contract.RuleList{}
	}
	for _, e := range rules.Paths() {
		if field, ok := e.FirstField(); ok && e.Len() == 2 && strings.EqualFold(field, name) {
			list, _ := rules.Get(e)
			return list
		}
	}
	return contract.RuleList{}
}

// MatchHeaders checks every expected header against actual. Header names are
// case-insensitive and extra actual headers are allowed. Without rules the
// values, split on commas, must be equal; with rules each actual value is
// matched against the expected value at the same position, or the last
// expected value.
func MatchHeaders(rules *contract.RuleCategory, expected, actual map[string][]string) []Mismatch {
	var out []Mismatch
	for _, name := range slices.Sorted(maps.Keys(expected)) {
		key, ok := lookupFold(actual, name)
		if !ok {
			out = append(out, Mismatch{
				Path:     name,
				Expected: strings.Join(expected[name], ", "),
				Reason:   fmt.Sprintf("Expected a header '%s' but was missing", name),
			})
			continue
		}
		want := headerValues(name, expected[name])
		got := headerValues(name, actual[key])

		list := headerRules(rules, name)
		if list.IsEmpty() {
			if !slices.Equal(want, got) {
				out = append(out, Mismatch{
					Path:     name,
					Expected: strings.Join(want, ", "),
					Actual:   strings.Join(got, ", "),
					Reason: fmt.Sprintf("Mismatch with header '%s': Expected '%s' but received '%s'",
						name, strings.Join(want, ", "), strings.Join(got, ", ")),
				})
			}
			continue
		}
		for i, value := range got {
			template := ""
			if len(want) > 0 {
				template = want[min(i, len(want)-1)]
			}
			if err := matchStringRules(list, template, value); err != nil {
				out = append(out, mismatches([]string{name}, template, value, err)...)
			}
		}
	}
	return out
}
