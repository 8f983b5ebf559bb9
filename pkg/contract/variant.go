package contract

import (
	"maps"
	"slices"

	"github.com/getmockd/pactcore/pkg/pathexp"
)

// ArrayContainsVariant is one alternative shape of an array element: the
// rules an element must satisfy to be this variant and the generators to
// apply to such an element. Generator keys are canonical path expressions
// relative to the element.
type ArrayContainsVariant struct {
	Index      int
	Rules      *RuleCategory
	Generators map[string]Generator
}

// GeneratorPaths returns the generator expressions of the variant in key order.
func (v ArrayContainsVariant) GeneratorPaths() []pathexp.Expression {
	keys := slices.Sorted(maps.Keys(v.Generators))
	out := make([]pathexp.Expression, 0, len(keys))
	for _, k := range keys {
		if e, err := pathexp.Parse(k); err == nil {
			out = append(out, e)
		}
	}
	return out
}

// Equal compares index, rules and generators.
func (v ArrayContainsVariant) Equal(other ArrayContainsVariant) bool {
	return v.Index == other.Index && v.Rules.Equal(other.Rules) && generatorMapsEqual(v.Generators, other.Generators)
}

func (v ArrayContainsVariant) toJSON() map[string]any {
	rules := map[string]any{}
	if v.Rules != nil {
		rules = v.Rules.ToV3JSON()
	}
	out := map[string]any{"index": v.Index, "rules": rules}
	if len(v.Generators) > 0 {
		gens := make(map[string]any, len(v.Generators))
		for k, g := range v.Generators {
			gens[k] = g.ToJSON()
		}
		out["generators"] = gens
	}
	return out
}

// VariantMatcher decides which arrayContains variant an array element
// conforms to. Implementations must be safe for concurrent use.
type VariantMatcher interface {
	// FindMatchingVariant returns the first variant whose rules value
	// satisfies, and false when none does.
	FindMatchingVariant(value any, variants []ArrayContainsVariant) (ArrayContainsVariant, bool)
}

// NoopVariantMatcher never finds a matching variant.
type NoopVariantMatcher struct{}

// FindMatchingVariant implements VariantMatcher.
func (NoopVariantMatcher) FindMatchingVariant(any, []ArrayContainsVariant) (ArrayContainsVariant, bool) {
	return ArrayContainsVariant{}, false
}
