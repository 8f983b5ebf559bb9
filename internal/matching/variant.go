package matching

import (
	"github.com/getmockd/pactcore/pkg/contract"
)

// RuleVariantMatcher finds the array contains variant an element belongs to
// by comparing the element against itself under each variant's rules. The
// zero value is ready to use and safe for concurrent use.
type RuleVariantMatcher struct{}

var _ contract.VariantMatcher = RuleVariantMatcher{}

// FindMatchingVariant returns the first variant whose rules report no
// mismatch for value.
func (RuleVariantMatcher) FindMatchingVariant(value any, variants []contract.ArrayContainsVariant) (contract.ArrayContainsVariant, bool) {
	for _, v := range variants {
		found := CompareBody(v.Rules, value, value)
		logger().Debug("compared array contains variant", "variant", v.Index, "mismatches", len(found))
		if len(found) == 0 {
			return v, true
		}
	}
	return contract.ArrayContainsVariant{}, false
}
