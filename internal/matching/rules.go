package matching

import (
	"errors"

	"github.com/getmockd/pactcore/pkg/contract"
)

// MatchRules applies every rule of list to actual. With AND logic every
// rule must pass and all failures are reported; with OR logic one passing
// rule is enough. An empty list falls back to equality.
func MatchRules(list contract.RuleList, expected, actual any) error {
	if list.IsEmpty() {
		return matchValue(contract.EqualityRule(), expected, actual, false)
	}
	var errs []error
	for _, rule := range list.Rules {
		err := matchValue(rule, expected, actual, list.Cascaded)
		if err == nil && list.Logic == contract.LogicOr {
			return nil
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return joinErrors(errs)
}

// selectBest is RuleCategory.SelectBestMatcher for a possibly nil category.
func selectBest(rules *contract.RuleCategory, path []string) contract.RuleList {
	if rules == nil {
		return contract.RuleList{}
	}
	return rules.SelectBestMatcher(path)
}

// joinErrors is errors.Join that keeps a single error unwrapped.
func joinErrors(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	}
	return errors.Join(errs...)
}
