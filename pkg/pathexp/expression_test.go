package pathexp

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpression_String(t *testing.T) {
	tests := []struct {
		name string
		expr Expression
		want string
	}{
		{name: "empty", expr: New(), want: ""},
		{name: "root", expr: RootExpression(), want: "$"},
		{name: "plain fields", expr: New(RootToken(), FieldToken("a"), FieldToken("_b1")), want: "$.a._b1"},
		{name: "field needing quotes", expr: New(RootToken(), FieldToken("Content-Type")), want: "$['Content-Type']"},
		{name: "leading digit", expr: New(RootToken(), FieldToken("1a")), want: "$['1a']"},
		{name: "quote escaped", expr: New(RootToken(), FieldToken(`it's\`)), want: `$['it\'s\\']`},
		{name: "index", expr: New(RootToken(), FieldToken("a"), IndexToken(2)), want: "$.a[2]"},
		{name: "wildcards", expr: New(RootToken(), StarToken(), StarIndexToken()), want: "$.*[*]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.expr.String())
		})
	}
}

func TestExpression_StringRoundTrip(t *testing.T) {
	for _, text := range []string{"$", "$.a.b", "$['a b'].c[0]", `$['it\'s']`, "$.*[*].x", "$['@id']"} {
		t.Run(text, func(t *testing.T) {
			e := MustParse(text)
			again, err := Parse(e.String())
			require.NoError(t, err)
			assert.True(t, e.Equal(again), "%s != %s", e, again)
		})
	}
}

func TestExpression_Weight(t *testing.T) {
	tests := []struct {
		name       string
		expr       string
		path       []string
		wantWeight int
		wantLength int
	}{
		{name: "root matches root", expr: "$", path: []string{"$"}, wantWeight: 2, wantLength: 1},
		{name: "root is ancestor", expr: "$", path: []string{"$", "a"}, wantWeight: 2, wantLength: 1},
		{name: "exact fields", expr: "$.a.b", path: []string{"$", "a", "b"}, wantWeight: 8, wantLength: 3},
		{name: "star field", expr: "$.a.*", path: []string{"$", "a", "b"}, wantWeight: 4, wantLength: 3},
		{name: "star index on number", expr: "$.a[*]", path: []string{"$", "a", "1"}, wantWeight: 4, wantLength: 3},
		{name: "star index on name", expr: "$.a[*]", path: []string{"$", "a", "b"}, wantWeight: 0, wantLength: 3},
		{name: "index", expr: "$.a[1]", path: []string{"$", "a", "1"}, wantWeight: 8, wantLength: 3},
		{name: "wrong index", expr: "$.a[2]", path: []string{"$", "a", "1"}, wantWeight: 0, wantLength: 3},
		{name: "field mismatch", expr: "$.a.c", path: []string{"$", "a", "b"}, wantWeight: 0, wantLength: 3},
		{name: "path too short", expr: "$.a.b", path: []string{"$", "a"}, wantWeight: 0, wantLength: 3},
		{name: "star matches index segment", expr: "$.*", path: []string{"$", "0"}, wantWeight: 2, wantLength: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, l := MustParse(tt.expr).Weight(tt.path)
			assert.Equal(t, tt.wantWeight, w)
			assert.Equal(t, tt.wantLength, l)
		})
	}
}

func TestExpression_MatchesPath(t *testing.T) {
	path := []string{"$", "a", "b"}

	assert.True(t, MustParse("$.a.b").MatchesPath(path))
	assert.True(t, MustParse("$.*.b").MatchesPath(path))
	assert.False(t, MustParse("$.a").MatchesPath(path))
	assert.True(t, MustParse("$.a").MatchesPathPrefix(path))
	assert.False(t, MustParse("$.a.b.c").MatchesPath(path))
	assert.False(t, MustParse("$.a.b.c").MatchesPathPrefix(path))
}

func TestExpression_FirstField(t *testing.T) {
	tests := []struct {
		expr string
		want string
		ok   bool
	}{
		{"$.accept", "accept", true},
		{"$['X-Id']", "X-Id", true},
		{"Content-Type", "Content-Type", true},
		{"$.a.b", "", false},
		{"$[0]", "", false},
		{"$.*", "", false},
		{"$", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			name, ok := MustParse(tt.expr).FirstField()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, name)
		})
	}
}

func TestExpression_Queries(t *testing.T) {
	e := MustParse("$.headers['X-Id'].*")

	_, ok := e.FirstField()
	assert.False(t, ok, "more than one field")
	assert.True(t, e.IsWildcard())
	assert.False(t, e.IsRoot())
	assert.True(t, RootExpression().IsRoot())

	_, ok = RootExpression().FirstField()
	assert.False(t, ok)

	parent, ok := e.Parent()
	require.True(t, ok)
	assert.Equal(t, "$.headers['X-Id']", parent.String())
	assert.Equal(t, "$.headers['X-Id'][3]", parent.JoinIndex(3).String())
	assert.Equal(t, "$.a", New().Join("a").String())
}

func TestExpression_JSONMarshal(t *testing.T) {
	in := map[string]Expression{"e": MustParse("$.a[*]")}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"e":"$.a[*]"}`, string(data))

	var out map[string]Expression
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, out["e"].Equal(in["e"]))
}

func TestExpression_JSONPath(t *testing.T) {
	var doc any
	require.NoError(t, json.Unmarshal([]byte(`{"a":[{"id":1},{"id":2}],"b":{"c":"x"}}`), &doc))

	got := MustParse("$.a[*].id").JSONPath().Get(doc)
	assert.ElementsMatch(t, []any{float64(1), float64(2)}, got)

	got = MustParse("$.b.c").JSONPath().Get(doc)
	assert.Equal(t, []any{"x"}, got)
}

// tokensFor maps small integers onto a token alphabet so that gopter can
// drive expression generation.
func tokensFor(codes []int) []Token {
	tokens := []Token{RootToken()}
	for _, c := range codes {
		switch c {
		case 0:
			tokens = append(tokens, FieldToken("a"))
		case 1:
			tokens = append(tokens, FieldToken("b"))
		case 2:
			tokens = append(tokens, IndexToken(0))
		case 3:
			tokens = append(tokens, StarToken())
		default:
			tokens = append(tokens, StarIndexToken())
		}
	}
	return tokens
}

func segmentsFor(codes []int) []string {
	path := []string{"$"}
	for _, c := range codes {
		switch c {
		case 0:
			path = append(path, "a")
		case 1:
			path = append(path, "b")
		default:
			path = append(path, fmt.Sprint(c-2))
		}
	}
	return path
}

func TestExpression_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("matches path iff weight is positive and lengths agree", prop.ForAll(
		func(exprCodes, pathCodes []int) bool {
			e := New(tokensFor(exprCodes)...)
			path := segmentsFor(pathCodes)
			w, l := e.Weight(path)
			return e.MatchesPath(path) == (w > 0 && l == len(path))
		},
		gen.SliceOfN(4, gen.IntRange(0, 4)),
		gen.SliceOfN(4, gen.IntRange(0, 3)),
	))

	properties.Property("literal expression outweighs wildcard expression", prop.ForAll(
		func(pathCodes []int) bool {
			path := segmentsFor(pathCodes)
			literal := []Token{RootToken()}
			wild := []Token{RootToken()}
			for _, seg := range path[1:] {
				literal = append(literal, FieldToken(seg))
				wild = append(wild, StarToken())
			}
			lw, _ := New(literal...).Weight(path)
			ww, _ := New(wild...).Weight(path)
			if len(path) == 1 {
				return lw == ww
			}
			return lw > ww
		},
		gen.SliceOf(gen.IntRange(0, 3)),
	))

	properties.Property("string form parses back to the same expression", prop.ForAll(
		func(codes []int) bool {
			e := New(tokensFor(codes)...)
			again, err := Parse(e.String())
			return err == nil && again.Equal(e)
		},
		gen.SliceOf(gen.IntRange(0, 4)),
	))

	properties.TestingRun(t)
}
