package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/pactcore/pkg/contract"
	"github.com/getmockd/pactcore/pkg/pathexp"
)

func TestJSONHandler_ApplyKey(t *testing.T) {
	h := NewJSONHandler(seeded(1), map[string]any{"d": 5})
	h.ApplyKey(pathexp.MustParse("$.d"), contract.RandomIntGenerator(5, 6), nil, nil)

	d := h.Value.(map[string]any)["d"]
	assert.Contains(t, []any{5, 6}, d)
}

func TestJSONHandler_Resolve(t *testing.T) {
	doc := map[string]any{
		"items": []any{
			map[string]any{"id": 1, "tags": []any{"a", "b"}},
			map[string]any{"id": 2},
			"scalar",
		},
		"meta": map[string]any{"x": 1, "y": 2},
	}
	tests := []struct {
		path string
		want []string
	}{
		{"$.items[*].id", []string{"$.items[0].id", "$.items[1].id"}},
		{"$.items[0].tags[1]", []string{"$.items[0].tags[1]"}},
		{"$.items[5]", nil},
		{"$.meta.*", []string{"$.meta.x", "$.meta.y"}},
		{"$.*.x", []string{"$.meta.x"}},
		{"$.missing.id", nil},
		{"$.meta.x.deeper", nil},
		{"$", nil},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			h := NewJSONHandler(nil, doc)
			var got []string
			for _, x := range h.Resolve(pathexp.MustParse(tt.path)) {
				got = append(got, x.String())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJSONHandler_Wildcards(t *testing.T) {
	h := NewJSONHandler(nil, map[string]any{
		"items": []any{map[string]any{"id": 1}, map[string]any{"id": 2}},
	})
	h.ApplyKey(pathexp.MustParse("$.items[*].id"), contract.RandomIntGenerator(10, 10), nil, nil)

	assert.Equal(t, map[string]any{
		"items": []any{map[string]any{"id": 10}, map[string]any{"id": 10}},
	}, h.Value)
}

func TestJSONHandler_NoMatch(t *testing.T) {
	doc := map[string]any{"a": "b"}
	h := NewJSONHandler(nil, doc)
	h.ApplyKey(pathexp.MustParse("$.x.y"), contract.RandomIntGenerator(1, 1), nil, nil)
	assert.Equal(t, map[string]any{"a": "b"}, h.Value)

	h.ApplyKey(pathexp.MustParse("$.x"), contract.RandomIntGenerator(1, 1), nil, nil)
	assert.Equal(t, map[string]any{"a": "b"}, h.Value)
}

func TestJSONHandler_RootFallback(t *testing.T) {
	h := NewJSONHandler(nil, "text")
	h.ApplyKey(pathexp.MustParse("$"), contract.RandomIntGenerator(3, 3), nil, nil)
	assert.Equal(t, "3", h.Value)

	h = NewJSONHandler(nil, float64(1))
	h.ApplyKey(pathexp.New(), contract.RandomIntGenerator(3, 3), nil, nil)
	assert.Equal(t, 3, h.Value)
}

func TestJSONHandler_ErrorKeepsValue(t *testing.T) {
	h := NewJSONHandler(nil, map[string]any{"n": 1, "s": "x"})
	h.ApplyKey(pathexp.MustParse("$.n"), contract.RandomIntGenerator(9, 1), nil, nil)
	h.ApplyKey(pathexp.MustParse("$.s"), contract.ProviderStateGenerator("missing", contract.DataTypeRaw), Context{}, nil)
	assert.Equal(t, map[string]any{"n": 1, "s": "x"}, h.Value)
}

func TestJSONHandler_ProcessBody(t *testing.T) {
	gens := contract.NewGenerators()
	gens.AddGeneratorWithSubcategory(contract.GenCategoryBody, pathexp.MustParse("$.a"), contract.RandomIntGenerator(1, 1))
	gens.AddGeneratorWithSubcategory(contract.GenCategoryBody, pathexp.MustParse("$.b"), contract.ProviderStateGenerator("b", contract.DataTypeRaw))

	consumer := NewJSONHandler(nil, map[string]any{"a": 0, "b": "old"})
	consumer.ProcessBody(gens.ApplicableTo(contract.GenCategoryBody, contract.ModeConsumer), Context{"b": "new"}, nil)
	assert.Equal(t, map[string]any{"a": 1, "b": "old"}, consumer.Value)

	provider := NewJSONHandler(nil, map[string]any{"a": 0, "b": "old"})
	provider.ProcessBody(gens.ApplicableTo(contract.GenCategoryBody, contract.ModeProvider), Context{"b": "new"}, nil)
	assert.Equal(t, map[string]any{"a": 1, "b": "new"}, provider.Value)
}

// typeMatcher picks the variant whose position is stored in an element's
// "variant" field.
type typeMatcher struct{}

func (typeMatcher) FindMatchingVariant(value any, variants []contract.ArrayContainsVariant) (contract.ArrayContainsVariant, bool) {
	obj, ok := value.(map[string]any)
	if !ok {
		return contract.ArrayContainsVariant{}, false
	}
	i, ok := obj["variant"].(int64)
	if !ok || i < 0 || i >= int64(len(variants)) {
		return contract.ArrayContainsVariant{}, false
	}
	return variants[int(i)], true
}

func arrayContainsFixture() contract.Generator {
	return contract.ArrayContainsGenerator(
		contract.ArrayContainsVariant{
			Index: 0,
			Rules: contract.NewRuleCategory(contract.CategoryBody),
			Generators: map[string]contract.Generator{
				"$.id": contract.RandomIntGenerator(100, 100),
			},
		},
		contract.ArrayContainsVariant{
			Index: 1,
			Rules: contract.NewRuleCategory(contract.CategoryBody),
			Generators: map[string]contract.Generator{
				"$.name": contract.RegexGenerator("fixed"),
			},
		},
	)
}

func TestArrayContains(t *testing.T) {
	doc := func() map[string]any {
		return map[string]any{"list": []any{
			map[string]any{"variant": int64(0), "id": int64(1), "name": "a"},
			map[string]any{"variant": int64(1), "id": int64(2), "name": "b"},
			map[string]any{"variant": int64(7), "id": int64(3)},
			"plain",
		}}
	}

	t.Run("noop matcher leaves the list", func(t *testing.T) {
		original := doc()
		h := NewJSONHandler(nil, original)
		h.ApplyKey(pathexp.MustParse("$.list"), arrayContainsFixture(), nil, contract.NoopVariantMatcher{})
		assert.Equal(t, doc(), h.Value)
	})

	t.Run("nil matcher leaves the list", func(t *testing.T) {
		h := NewJSONHandler(nil, doc())
		h.ApplyKey(pathexp.MustParse("$.list"), arrayContainsFixture(), nil, nil)
		assert.Equal(t, doc(), h.Value)
	})

	t.Run("matched elements use their variant generators", func(t *testing.T) {
		original := doc()
		h := NewJSONHandler(nil, original)
		h.ApplyKey(pathexp.MustParse("$.list"), arrayContainsFixture(), nil, typeMatcher{})

		assert.Equal(t, map[string]any{"list": []any{
			map[string]any{"variant": int64(0), "id": 100, "name": "a"},
			map[string]any{"variant": int64(1), "id": int64(2), "name": "fixed"},
			map[string]any{"variant": int64(7), "id": int64(3)},
			"plain",
		}}, h.Value)
	})

	t.Run("not a list", func(t *testing.T) {
		h := NewJSONHandler(nil, map[string]any{"list": "x"})
		h.ApplyKey(pathexp.MustParse("$.list"), arrayContainsFixture(), nil, typeMatcher{})
		assert.Equal(t, map[string]any{"list": "x"}, h.Value)
	})
}

func TestArrayContains_DoesNotAliasInput(t *testing.T) {
	elem := map[string]any{"variant": int64(0), "id": int64(1)}
	list := []any{elem}

	out, err := New().JSON(arrayContainsFixture(), list, nil, typeMatcher{})
	require.NoError(t, err)

	assert.Equal(t, int64(1), elem["id"])
	assert.Equal(t, []any{map[string]any{"variant": int64(0), "id": 100}}, out)
}
