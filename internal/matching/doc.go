// Package matching evaluates matching rules against actual values.
//
// MatchValue applies one rule to a decoded JSON value and MatchString applies
// one rule to a text value such as a header or query parameter. MatchRules
// combines a rule list with its AND/OR logic.
//
// CompareBody walks an expected and an actual JSON document together and
// reports every Mismatch, selecting the rules for each location with
// RuleCategory.SelectBestMatcher. Rules declared on a collection cascade to
// its children; a type rule on a list compares every actual element against
// the first expected element.
//
// MatchPath, MatchMethod, MatchStatus, MatchHeaders and MatchQuery cover the
// other parts of a request or response.
//
// RuleVariantMatcher implements contract.VariantMatcher: an element belongs
// to the first variant whose rules, comparing the element against itself,
// report no mismatch.
package matching
