// Package contract defines the matching rule and generator models of a
// consumer-driven contract.
//
// Matching rules describe how an actual value is compared with the expected
// value recorded in a contract. Generators describe how an example value in a
// contract is replaced with a freshly produced one at test time. Both are
// attached to locations in an interaction through path expressions (see
// package pathexp) and grouped by category: method, path, header, query,
// body, status, contents and metadata.
//
// # Rule selection
//
// A body may carry rules on several expressions that all apply to the same
// field, for example "$.a.b", "$.a.*" and "$.*". SelectBestMatcher picks the
// most specific one by ranking each candidate with weight*length (see
// pathexp.Expression.Weight). When the winning expression addresses an
// ancestor of the queried path, the returned RuleList is flagged as cascaded.
// Ties are broken by the lexicographically smallest expression so that the
// result does not depend on map iteration order.
//
// # Documents
//
// Rules and generators are loaded from the JSON structures stored in a
// contract file. Both the legacy flat form ("$.body.a": {...}) and the
// categorized form ("body": {"$.a": {"combine": "AND", "matchers": [...]}})
// are understood. Malformed entries are logged and skipped; the rest of the
// document still loads.
//
// # Array contains
//
// The arrayContains rule and generator carry a list of variants, each with
// its own rule category and generator map. Deciding which variant an array
// element conforms to is delegated to a VariantMatcher supplied by the
// caller. NoopVariantMatcher never matches.
package contract
