package matching

import (
	"fmt"
	"maps"
	"slices"

	"github.com/getmockd/pactcore/pkg/contract"
)

// MatchQuery checks query parameters. Names are case-sensitive, every
// expected parameter must be present and unexpected parameters are
// reported.
func MatchQuery(rules *contract.RuleCategory, expected, actual map[string][]string) []Mismatch {
	var out []Mismatch
	for _, name := range slices.Sorted(maps.Keys(expected)) {
		want := expected[name]
		got, ok := actual[name]
		if !ok {
			out = append(out, Mismatch{
				Path:     name,
				Expected: want,
				Reason:   fmt.Sprintf("Expected query parameter '%s' but was missing", name),
			})
			continue
		}

		list := selectBest(rules, []string{"$", name})
		if list.IsEmpty() {
			if len(want) != len(got) {
				out = append(out, Mismatch{
					Path:     name,
					Expected: want,
					Actual:   got,
					Reason: fmt.Sprintf("Expected query parameter '%s' with %d value(s) but received %d value(s)",
						name, len(want), len(got)),
				})
			}
			for i := range min(len(want), len(got)) {
				if want[i] != got[i] {
					out = append(out, Mismatch{
						Path:     name,
						Expected: want[i],
						Actual:   got[i],
						Reason:   fmt.Sprintf("Expected '%s' but received '%s' for query parameter '%s'", want[i], got[i], name),
					})
				}
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

	for _, name := range slices.Sorted(maps.Keys(actual)) {
		if _, ok := expected[name]; !ok {
			out = append(out, Mismatch{
				Path:   name,
				Actual: actual[name],
				Reason: fmt.Sprintf("Unexpected query parameter '%s' received", name),
			})
		}
	}
	return out
}
