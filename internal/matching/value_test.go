package matching

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/pactcore/pkg/contract"
	"github.com/getmockd/pactcore/pkg/pathexp"
)

func TestMatchValue(t *testing.T) {
	tests := []struct {
		name     string
		rule     contract.MatchingRule
		expected any
		actual   any
		ok       bool
	}{
		{"equality numbers by value", contract.EqualityRule(), 1, float64(1), true},
		{"equality strings", contract.EqualityRule(), "a", "b", false},
		{"equality maps", contract.EqualityRule(), map[string]any{"a": []any{int64(1)}}, map[string]any{"a": []any{1.0}}, true},
		{"regex substring", contract.RegexRule(`\d+`), "", "abc123", true},
		{"regex no match", contract.RegexRule(`^\d+$`), "", "abc", false},
		{"regex number", contract.RegexRule(`^42$`), 0, float64(42), true},
		{"regex invalid", contract.RegexRule(`(`), "", "x", false},
		{"include", contract.IncludeRule("10"), "", "1100", true},
		{"include number", contract.IncludeRule("10"), 0, float64(100), true},
		{"include missing", contract.IncludeRule("zz"), "", "abc", false},
		{"type strings", contract.TypeRule(), "a", "b", true},
		{"type string number", contract.TypeRule(), "a", 1, false},
		{"type maps", contract.TypeRule(), map[string]any{}, map[string]any{"x": 1}, true},
		{"type nulls", contract.TypeRule(), nil, nil, true},
		{"min type short", contract.MinTypeRule(2), []any{1}, []any{1}, false},
		{"min type scalar", contract.MinTypeRule(2), "a", "b", true},
		{"max type long", contract.MaxTypeRule(1), []any{1}, []any{1, 2}, false},
		{"min max type", contract.MinMaxTypeRule(1, 3), []any{1}, []any{1, 2}, true},
		{"integer int64", contract.IntegerRule(), 0, int64(3), true},
		{"integer whole float", contract.IntegerRule(), 0, float64(3), true},
		{"integer fraction", contract.IntegerRule(), 0, 3.5, false},
		{"integer json number", contract.IntegerRule(), 0, json.Number("3"), true},
		{"integer json decimal", contract.IntegerRule(), 0, json.Number("3.0"), false},
		{"integer string", contract.IntegerRule(), 0, "3", false},
		{"decimal float", contract.DecimalRule(), 0, 1.5, true},
		{"decimal int", contract.DecimalRule(), 0, int64(1), false},
		{"decimal json number", contract.DecimalRule(), 0, json.Number("1.5"), true},
		{"number", contract.NumberRule(), 0, 7, true},
		{"number string", contract.NumberRule(), 0, "7", false},
		{"null", contract.NullRule(), nil, nil, true},
		{"null empty string", contract.NullRule(), nil, "", false},
		{"boolean", contract.BooleanRule(), false, true, true},
		{"boolean string", contract.BooleanRule(), false, "false", true},
		{"boolean other string", contract.BooleanRule(), false, "yes", false},
		{"date", contract.DateRule("yyyy-MM-dd"), "", "2024-02-29", true},
		{"date invalid", contract.DateRule("yyyy-MM-dd"), "", "2024-13-01", false},
		{"date default format", contract.DateRule(""), "", "2024-01-01", true},
		{"time", contract.TimeRule("HH:mm"), "", "23:59", true},
		{"timestamp default format", contract.TimestampRule(""), "", "2024-01-01T10:00:00Z", true},
		{"timestamp not a time", contract.TimestampRule(""), "", "yesterday", false},
		{"timestamp pattern", contract.TimestampRule("yyyy-MM-dd HH:mm:ss"), "", "2024-01-01 10:00:00", true},
		{"content type json", contract.ContentTypeRule("application/json"), "", `{"a":1}`, true},
		{"content type json mismatch", contract.ContentTypeRule("application/json"), "", "plain words", false},
		{"content type text", contract.ContentTypeRule("text/plain"), "", "hello", true},
		{"content type xml", contract.ContentTypeRule("application/xml"), "", "<a><b/></a>", true},
		{"status class", contract.StatusCodeRule(contract.HTTPStatus{Class: contract.StatusSuccess}), 200, 204, true},
		{"status class mismatch", contract.StatusCodeRule(contract.HTTPStatus{Class: contract.StatusSuccess}), 200, float64(404), false},
		{"status codes", contract.StatusCodeRule(contract.HTTPStatus{Class: contract.StatusCodes, Codes: []int{200, 201}}), 200, 201, true},
		{"status not a number", contract.StatusCodeRule(contract.HTTPStatus{Class: contract.StatusSuccess}), 200, "ok", false},
		{"values on map", contract.ValuesRule(), map[string]any{}, map[string]any{"a": 1}, true},
		{"values on string", contract.ValuesRule(), "", "x", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MatchValue(tt.rule, tt.expected, tt.actual)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrMismatch)
		})
	}
}

func TestMatchValue_Messages(t *testing.T) {
	tests := []struct {
		name     string
		rule     contract.MatchingRule
		expected any
		actual   any
		want     string
	}{
		{"equality", contract.EqualityRule(), "a", "b", "Expected 'a' to be equal to 'b'"},
		{"regex", contract.RegexRule(`^\d+$`), "", "abc", `Expected 'abc' to match '^\d+$'`},
		{"type", contract.TypeRule(), "a", float64(1), "Expected 'a' to be the same type as '1'"},
		{"min type", contract.MinTypeRule(2), []any{}, []any{"x"}, `Expected '["x"]' to have at least 2 item(s)`},
		{"max type", contract.MaxTypeRule(1), []any{}, []any{1, 2}, "Expected '[1,2]' to have at most 1 item(s)"},
		{"null", contract.NullRule(), nil, "x", "Expected 'x' to be a null value"},
		{"integer", contract.IntegerRule(), 0, 1.5, "Expected '1.5' to be an integer value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MatchValue(tt.rule, tt.expected, tt.actual)
			require.Error(t, err)
			assert.Equal(t, tt.want, reason(err))
		})
	}
}

func TestMatchValue_ArrayContains(t *testing.T) {
	expected := []any{map[string]any{"id": 1}, map[string]any{"id": 2}}

	t.Run("without variants every expected element is required", func(t *testing.T) {
		rule := contract.ArrayContainsRule()
		assert.NoError(t, MatchValue(rule, expected, []any{
			map[string]any{"id": 2}, map[string]any{"id": 3}, map[string]any{"id": 1},
		}))

		err := MatchValue(rule, expected, []any{map[string]any{"id": 3}})
		require.Error(t, err)
		assert.Len(t, mismatches([]string{"$"}, expected, nil, err), 2)
	})

	t.Run("variant rules", func(t *testing.T) {
		rules := contract.NewRuleCategory(contract.CategoryBody)
		rules.AddRule(pathexp.MustParse("$.id"), contract.IntegerRule(), contract.LogicAnd)
		rule := contract.ArrayContainsRule(contract.ArrayContainsVariant{Index: 0, Rules: rules})

		assert.NoError(t, MatchValue(rule, expected, []any{
			map[string]any{"id": "x"}, map[string]any{"id": 99},
		}))
		err := MatchValue(rule, expected, []any{map[string]any{"id": "x"}})
		require.Error(t, err)
		assert.Equal(t, `Variant at index 0 ({"id":1}) was not found in the actual list`, reason(err))
	})

	t.Run("variant index out of range", func(t *testing.T) {
		rule := contract.ArrayContainsRule(contract.ArrayContainsVariant{Index: 3, Rules: contract.NewRuleCategory(contract.CategoryBody)})
		err := MatchValue(rule, expected, []any{})
		require.Error(t, err)
		assert.Equal(t, "ArrayContains: variant 3 is missing from the expected list, which has 2 items", reason(err))
	})

	t.Run("not a list", func(t *testing.T) {
		assert.ErrorIs(t, MatchValue(contract.ArrayContainsRule(), expected, "x"), ErrMismatch)
	})
}

func TestMatchRules(t *testing.T) {
	and := contract.NewRuleList(contract.RegexRule(`^a`), contract.IncludeRule("z"))
	or := contract.RuleList{Rules: and.Rules, Logic: contract.LogicOr}

	assert.NoError(t, MatchRules(and, "", "abz"))
	assert.NoError(t, MatchRules(or, "", "abc"))
	assert.NoError(t, MatchRules(or, "", "xyz"))

	err := MatchRules(and, "", "xyy")
	require.Error(t, err)
	assert.Len(t, mismatches(nil, nil, nil, err), 2)

	assert.Error(t, MatchRules(or, "", "xyy"))

	assert.NoError(t, MatchRules(contract.RuleList{}, float64(1), 1))
	assert.Error(t, MatchRules(contract.RuleList{}, "a", "b"))
}

func TestMatchRules_CascadedSkipsLengthBounds(t *testing.T) {
	list := contract.NewRuleList(contract.MinTypeRule(5)).AsCascaded(true)
	assert.NoError(t, MatchRules(list, []any{}, []any{1}))
	assert.Error(t, MatchRules(list, []any{}, "x"))
}
