package matching

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/getmockd/pactcore/pkg/contract"
)

var rootPath = []string{"$"}

// MatchPath checks a request path against the rules of a path category, or
// by equality when there are none.
func MatchPath(rules *contract.RuleCategory, expected, actual string) []Mismatch {
	list := selectBest(rules, rootPath)
	if err := matchStringRules(list, expected, actual); err != nil {
		if list.IsEmpty() {
			return []Mismatch{{
				Path:     "path",
				Expected: expected,
				Actual:   actual,
				Reason:   fmt.Sprintf("Expected '%s' but received '%s'", expected, actual),
			}}
		}
		return mismatches([]string{"path"}, expected, actual, err)
	}
	return nil
}

// MatchMethod compares request methods ignoring case.
func MatchMethod(expected, actual string) []Mismatch {
	if strings.EqualFold(expected, actual) {
		return nil
	}
	return []Mismatch{{
		Path:     "method",
		Expected: strings.ToUpper(expected),
		Actual:   strings.ToUpper(actual),
		Reason:   fmt.Sprintf("Expected %s but received %s", strings.ToUpper(expected), strings.ToUpper(actual)),
	}}
}

// MatchStatus checks a response status against the rules of a status
// category, or by equality when there are none.
func MatchStatus(rules *contract.RuleCategory, expected, actual int) []Mismatch {
	list := selectBest(rules, rootPath)
	if list.IsEmpty() {
		if expected == actual {
			return nil
		}
		return []Mismatch{{
			Path:     "status",
			Expected: expected,
			Actual:   actual,
			Reason:   fmt.Sprintf("expected %d but was %d", expected, actual),
		}}
	}
	return mismatches([]string{"status"}, expected, actual,
		matchStringRules(list, strconv.Itoa(expected), strconv.Itoa(actual)))
}
