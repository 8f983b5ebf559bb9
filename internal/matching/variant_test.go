package matching

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/getmockd/pactcore/pkg/contract"
	"github.com/getmockd/pactcore/pkg/generate"
	"github.com/getmockd/pactcore/pkg/pathexp"
)

func typedVariants() []contract.ArrayContainsVariant {
	order := bodyRules(map[string]contract.MatchingRule{"$.type": contract.RegexRule(`^order$`)})
	refund := bodyRules(map[string]contract.MatchingRule{"$.type": contract.RegexRule(`^refund$`)})
	return []contract.ArrayContainsVariant{
		{Index: 0, Rules: order, Generators: map[string]contract.Generator{
			"$.id": contract.RandomIntGenerator(1000, 1000),
		}},
		{Index: 1, Rules: refund, Generators: map[string]contract.Generator{
			"$.reference": contract.RegexGenerator("R-1"),
		}},
	}
}

func TestRuleVariantMatcher(t *testing.T) {
	variants := typedVariants()
	tests := []struct {
		name  string
		value any
		index int
		found bool
	}{
		{"first variant", map[string]any{"type": "order", "id": 1}, 0, true},
		{"second variant", map[string]any{"type": "refund"}, 1, true},
		{"no variant", map[string]any{"type": "other"}, 0, false},
		{"scalars compare by equality", "order", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := RuleVariantMatcher{}.FindMatchingVariant(tt.value, variants)
			assert.Equal(t, tt.found, ok)
			if ok {
				assert.Equal(t, tt.index, v.Index)
			}
		})
	}
}

func TestRuleVariantMatcher_EmptyRulesMatchAnything(t *testing.T) {
	variants := []contract.ArrayContainsVariant{{Index: 4, Rules: contract.NewRuleCategory(contract.CategoryBody)}}
	v, ok := RuleVariantMatcher{}.FindMatchingVariant(map[string]any{"a": 1}, variants)
	assert.True(t, ok)
	assert.Equal(t, 4, v.Index)
}

func TestRuleVariantMatcher_DrivesArrayContainsGeneration(t *testing.T) {
	doc := map[string]any{"events": []any{
		map[string]any{"type": "order", "id": int64(1)},
		map[string]any{"type": "refund", "reference": "old"},
		map[string]any{"type": "note"},
	}}
	h := generate.NewJSONHandler(nil, doc)
	h.ApplyKey(pathexp.MustParse("$.events"), contract.ArrayContainsGenerator(typedVariants()...), nil, RuleVariantMatcher{})

	assert.Equal(t, map[string]any{"events": []any{
		map[string]any{"type": "order", "id": 1000},
		map[string]any{"type": "refund", "reference": "R-1"},
		map[string]any{"type": "note"},
	}}, h.Value)
}

func TestRuleVariantMatcher_Concurrent(t *testing.T) {
	variants := typedVariants()
	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			for range 50 {
				v, ok := RuleVariantMatcher{}.FindMatchingVariant(map[string]any{"type": "refund"}, variants)
				assert.True(t, ok)
				assert.Equal(t, 1, v.Index)
			}
		})
	}
	wg.Wait()
}
