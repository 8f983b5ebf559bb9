package matching

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/getmockd/pactcore/pkg/contract"
)

// MatchString applies rule to a text value such as a header, query
// parameter or path. Number rules parse the text, so "12" satisfies an
// integer rule here while the JSON string "12" does not satisfy MatchValue.
func MatchString(rule contract.MatchingRule, expected, actual string) error {
	switch rule.Kind {
	case contract.RuleEquality:
		if expected == actual {
			return nil
		}
		return mismatchf("Expected '%s' to be equal to '%s'", expected, actual)
	case contract.RuleRegex:
		re, err := regexp.Compile(rule.Regex)
		if err != nil {
			return mismatchf("'%s' is not a valid regular expression - %v", rule.Regex, err)
		}
		if re.MatchString(actual) {
			return nil
		}
		return mismatchf("Expected '%s' to match '%s'", actual, rule.Regex)
	case contract.RuleType, contract.RuleMinType, contract.RuleMaxType, contract.RuleMinMaxType, contract.RuleValues:
		return nil
	case contract.RuleInclude:
		if strings.Contains(actual, rule.Value) {
			return nil
		}
		return mismatchf("Expected '%s' to include '%s'", actual, rule.Value)
	case contract.RuleNumber, contract.RuleDecimal:
		if _, err := strconv.ParseFloat(actual, 64); err == nil {
			return nil
		}
		return mismatchf("Expected '%s' to match a number", actual)
	case contract.RuleInteger:
		if _, err := strconv.ParseUint(actual, 10, 64); err == nil {
			return nil
		}
		return mismatchf("Expected '%s' to match an integer number", actual)
	case contract.RuleBoolean:
		if actual == "true" || actual == "false" {
			return nil
		}
		return mismatchf("Expected '%s' to match a boolean", actual)
	case contract.RuleDate, contract.RuleTime, contract.RuleTimestamp:
		return matchDateTime(rule, actual)
	case contract.RuleContentType:
		return matchContentType(rule.Value, []byte(actual))
	case contract.RuleStatusCode:
		code, err := strconv.Atoi(actual)
		if err != nil {
			return mismatchf("Unable to match '%s' using %s - %v", actual, rule, err)
		}
		return matchStatus(rule.Status, code)
	}
	return mismatchf("Unable to match '%s' using %s", expected, rule)
}

// matchStringRules is MatchRules for text values.
func matchStringRules(list contract.RuleList, expected, actual string) error {
	if list.IsEmpty() {
		return MatchString(contract.EqualityRule(), expected, actual)
	}
	var errs []error
	for _, rule := range list.Rules {
		err := MatchString(rule, expected, actual)
		if err == nil && list.Logic == contract.LogicOr {
			return nil
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return joinErrors(errs)
}
