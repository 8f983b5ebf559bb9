package matching

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/getmockd/pactcore/pkg/contract"
	"github.com/getmockd/pactcore/pkg/pathexp"
)

// MatchValue applies rule to an actual JSON value. Values are the decoded
// forms produced by encoding/json or ojg: maps, slices, strings, booleans,
// nil and numbers. Integer Go types and json.Number literals without a
// fraction count as integers; float64 counts as a decimal, and as an integer
// too when it has no fractional part.
func MatchValue(rule contract.MatchingRule, expected, actual any) error {
	return matchValue(rule, expected, actual, false)
}

// matchValue is MatchValue for a rule that may have been inherited from an
// ancestor. Cascaded rules skip collection length bounds and rules that only
// make sense on the location they were declared on.
func matchValue(rule contract.MatchingRule, expected, actual any, cascaded bool) error {
	switch rule.Kind {
	case contract.RuleEquality:
		if equalValues(expected, actual) {
			return nil
		}
		return mismatchf("Expected '%s' to be equal to '%s'", textOf(expected), textOf(actual))
	case contract.RuleRegex:
		re, err := regexp.Compile(rule.Regex)
		if err != nil {
			return mismatchf("'%s' is not a valid regular expression - %v", rule.Regex, err)
		}
		if re.MatchString(textOf(actual)) {
			return nil
		}
		return mismatchf("Expected '%s' to match '%s'", textOf(actual), rule.Regex)
	case contract.RuleInclude:
		if strings.Contains(textOf(actual), rule.Value) {
			return nil
		}
		return mismatchf("Expected '%s' to include '%s'", textOf(actual), rule.Value)
	case contract.RuleType, contract.RuleMinType, contract.RuleMaxType, contract.RuleMinMaxType:
		return matchType(rule, expected, actual, cascaded)
	case contract.RuleNull:
		if actual == nil {
			return nil
		}
		return mismatchf("Expected '%s' to be a null value", textOf(actual))
	case contract.RuleInteger:
		if isInteger(actual) {
			return nil
		}
		return mismatchf("Expected '%s' to be an integer value", textOf(actual))
	case contract.RuleDecimal:
		if isDecimal(actual) {
			return nil
		}
		return mismatchf("Expected '%s' to be a decimal value", textOf(actual))
	case contract.RuleNumber:
		if isNumeric(actual) {
			return nil
		}
		return mismatchf("Expected '%s' to be a number", textOf(actual))
	case contract.RuleBoolean:
		switch v := actual.(type) {
		case bool:
			return nil
		case string:
			if v == "true" || v == "false" {
				return nil
			}
		}
		return mismatchf("Expected '%s' to match a boolean", textOf(actual))
	case contract.RuleDate, contract.RuleTime, contract.RuleTimestamp:
		return matchDateTime(rule, textOf(actual))
	case contract.RuleContentType:
		if cascaded {
			return nil
		}
		return matchContentType(rule.Value, []byte(textOf(actual)))
	case contract.RuleStatusCode:
		code, ok := toFloat(actual)
		if !ok {
			return mismatchf("Unable to match '%s' using %s", textOf(actual), rule)
		}
		return matchStatus(rule.Status, int(code))
	case contract.RuleValues:
		if _, ok := actual.(map[string]any); ok || cascaded {
			return nil
		}
		return mismatchf("Expected '%s' to be a Map", textOf(actual))
	case contract.RuleArrayContains:
		if cascaded {
			return nil
		}
		return matchArrayContains(rule, expected, actual)
	}
	return mismatchf("Unable to match '%s' using %s", textOf(expected), rule)
}

func matchType(rule contract.MatchingRule, expected, actual any, cascaded bool) error {
	if typeName(expected) != typeName(actual) {
		return mismatchf("Expected '%s' to be the same type as '%s'", textOf(expected), textOf(actual))
	}
	list, ok := actual.([]any)
	if !ok || cascaded {
		return nil
	}
	if (rule.Kind == contract.RuleMinType || rule.Kind == contract.RuleMinMaxType) && len(list) < rule.Min {
		return mismatchf("Expected '%s' to have at least %d item(s)", textOf(actual), rule.Min)
	}
	if (rule.Kind == contract.RuleMaxType || rule.Kind == contract.RuleMinMaxType) && len(list) > rule.Max {
		return mismatchf("Expected '%s' to have at most %d item(s)", textOf(actual), rule.Max)
	}
	return nil
}

func matchStatus(status contract.HTTPStatus, code int) error {
	if status.Matches(code) {
		return nil
	}
	if status.Class == contract.StatusCodes {
		return mismatchf("Expected status code %d to be one of %v", code, status.Codes)
	}
	return mismatchf("Expected status code %d to be a %s status", code, status.Class)
}

// matchArrayContains requires, for every variant, some actual element that
// satisfies the variant's rules against the expected element at the
// variant's index. Without variants every expected element must be present.
func matchArrayContains(rule contract.MatchingRule, expected, actual any) error {
	actualList, ok := actual.([]any)
	if !ok {
		return mismatchf("Expected '%s' to be a List", textOf(actual))
	}
	expectedList, _ := expected.([]any)

	variants := rule.Variants
	if len(variants) == 0 {
		for i := range expectedList {
			rules := contract.NewRuleCategory(contract.CategoryBody)
			rules.AddRule(pathexp.RootExpression(), contract.EqualityRule(), contract.LogicAnd)
			variants = append(variants, contract.ArrayContainsVariant{Index: i, Rules: rules})
		}
	}

	var errs []error
	for _, v := range variants {
		if v.Index < 0 || v.Index >= len(expectedList) {
			errs = append(errs, mismatchf("ArrayContains: variant %d is missing from the expected list, which has %d items", v.Index, len(expectedList)))
			continue
		}
		want := expectedList[v.Index]
		found := false
		for _, elem := range actualList {
			if len(CompareBody(v.Rules, want, elem)) == 0 {
				found = true
				break
			}
		}
		if !found {
			errs = append(errs, mismatchf("Variant at index %d (%s) was not found in the actual list", v.Index, textOf(want)))
		}
	}
	return joinErrors(errs)
}

// typeName is the JSON type family of v.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "Null"
	case map[string]any:
		return "Map"
	case []any:
		return "List"
	case bool:
		return "Boolean"
	case string:
		return "String"
	}
	if isNumeric(v) {
		return "Number"
	}
	return reflect.TypeOf(v).String()
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func isNumeric(v any) bool {
	_, ok := toFloat(v)
	return ok
}

func isInteger(v any) bool {
	switch n := v.(type) {
	case float32:
		return float64(n) == math.Trunc(float64(n))
	case float64:
		return n == math.Trunc(n) && !math.IsInf(n, 0)
	case json.Number:
		_, err := strconv.ParseInt(string(n), 10, 64)
		return err == nil
	}
	return isNumeric(v)
}

func isDecimal(v any) bool {
	switch n := v.(type) {
	case float32, float64:
		return true
	case json.Number:
		return strings.ContainsAny(string(n), ".eE")
	}
	return false
}

// equalValues compares decoded JSON values, treating numbers by value.
func equalValues(a, b any) bool {
	if af, ok := toFloat(a); ok {
		bf, ok := toFloat(b)
		return ok && af == bf
	}
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			w, ok := bv[k]
			if !ok || !equalValues(v, w) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !equalValues(av[i], bv[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

// textOf is the string a regex or include rule is applied to: strings as
// they are, anything else as JSON text.
func textOf(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return jsonText(v)
}

func jsonText(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
