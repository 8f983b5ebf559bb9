package validation

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/pactcore/pkg/contract"
	"github.com/getmockd/pactcore/pkg/pathexp"
)

const validDocumentYAML = `
description: order lookup
matchingRules:
  body:
    $.id:
      matchers:
        - match: integer
    $.items[*].sku:
      combine: OR
      matchers:
        - match: regex
          regex: "^[A-Z]{3}-\\d+$"
        - match: type
  header:
    Content-Type:
      matchers:
        - match: contentType
          value: application/json
  path:
    matchers:
      - match: regex
        regex: /orders/\d+
generators:
  body:
    $.id:
      type: RandomInt
      min: 1
      max: 100
    $.createdAt:
      type: DateTime
      format: "yyyy-MM-dd'T'HH:mm:ss"
  path:
    type: ProviderState
    expression: /orders/${id}
`

func decode(t *testing.T, src string) any {
	t.Helper()
	doc, err := DecodeDocument([]byte(src), FormatYAML)
	require.NoError(t, err)
	return doc
}

func codes(r *Result) []string {
	out := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		out = append(out, e.Code)
	}
	return out
}

func TestValidate_ValidDocument(t *testing.T) {
	result := NewValidator().Validate(decode(t, validDocumentYAML), KindAuto)
	assert.True(t, result.Valid, "errors: %v", result.Errors)
	assert.NoError(t, result.Err())
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		kind     Kind
		code     string
		location string
	}{
		{
			name:     "regex rule without regex",
			doc:      "matchingRules:\n  body:\n    $.id:\n      matchers:\n        - match: regex\n",
			code:     ErrCodeSchema,
			location: LocationMatchingRules,
		},
		{
			name:     "unknown rule kind",
			doc:      "matchingRules:\n  body:\n    $.id:\n      matchers:\n        - match: fuzzy\n",
			code:     ErrCodeSchema,
			location: LocationMatchingRules,
		},
		{
			name:     "unknown category",
			doc:      "matchingRules:\n  cookies:\n    matchers: []\n",
			code:     ErrCodeSchema,
			location: LocationMatchingRules,
		},
		{
			name:     "unknown generator type",
			doc:      "generators:\n  body:\n    $.id:\n      type: Sequence\n",
			code:     ErrCodeSchema,
			location: LocationGenerators,
		},
		{
			name:     "provider state without expression",
			doc:      "generators:\n  path:\n    type: ProviderState\n",
			code:     ErrCodeSchema,
			location: LocationGenerators,
		},
		{
			name:     "bad path expression",
			doc:      "matchingRules:\n  body:\n    \"$.a[\":\n      matchers:\n        - match: type\n",
			code:     ErrCodePath,
			location: LocationMatchingRules,
		},
		{
			name:     "bad generator path",
			doc:      "generators:\n  body:\n    \"$.a[x\":\n      type: RandomBoolean\n",
			code:     ErrCodePath,
			location: LocationGenerators,
		},
		{
			name:     "bad rule regex",
			doc:      "matchingRules:\n  body:\n    $.a:\n      matchers:\n        - match: regex\n          regex: \"(\"\n",
			code:     ErrCodePattern,
			location: LocationMatchingRules,
		},
		{
			name:     "bad generator regex",
			doc:      "generators:\n  body:\n    $.a:\n      type: Regex\n      regex: \"[a-\"\n",
			code:     ErrCodePattern,
			location: LocationGenerators,
		},
		{
			name:     "unsupported date pattern",
			doc:      "generators:\n  body:\n    $.a:\n      type: Date\n      format: yyyy-QQ\n",
			code:     ErrCodeFormat,
			location: LocationGenerators,
		},
		{
			name:     "bad rule date pattern",
			doc:      "matchingRules:\n  body:\n    $.a:\n      matchers:\n        - match: date\n          date: \"'yyyy\"\n",
			code:     ErrCodeFormat,
			location: LocationMatchingRules,
		},
		{
			name:     "empty document",
			doc:      "description: nothing here\n",
			kind:     KindDocument,
			code:     ErrCodeSchema,
			location: LocationDocument,
		},
		{
			name:     "bare rules with invalid min",
			doc:      "body:\n  $.a:\n    matchers:\n      - match: min\n        min: -1\n",
			kind:     KindRules,
			code:     ErrCodeSchema,
			location: LocationMatchingRules,
		},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Validate(decode(t, tt.doc), tt.kind)
			require.False(t, result.Valid)
			require.NotEmpty(t, result.Errors)
			assert.Contains(t, codes(result), tt.code)

			var locations []string
			for _, e := range result.Errors {
				locations = append(locations, e.Location)
			}
			assert.Contains(t, locations, tt.location)
			assert.Error(t, result.Err())
		})
	}
}

func TestValidate_ArrayContainsVariants(t *testing.T) {
	doc := decode(t, `
matchingRules:
  body:
    $.items:
      matchers:
        - match: arrayContains
          variants:
            - index: 0
              rules:
                $.id:
                  matchers:
                    - match: regex
                      regex: "("
              generators:
                $.id:
                  type: RandomInt
`)
	result := NewValidator().Validate(doc, KindAuto)
	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, ErrCodePattern, result.Errors[0].Code)
	assert.Equal(t, "body.$.items.matchers.0.variants.0.rules.$.id.matchers.0.regex", result.Errors[0].Field)
}

func TestValidate_LegacyRules(t *testing.T) {
	doc := decode(t, `
$.body.id:
  match: type
$.headers.Accept:
  regex: json
`)
	assert.Equal(t, KindRules, DetectKind(doc))
	result := NewValidator().Validate(doc, KindAuto)
	assert.True(t, result.Valid, "errors: %v", result.Errors)
}

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name string
		doc  any
		want Kind
	}{
		{"document with rules", map[string]any{"matchingRules": map[string]any{}}, KindDocument},
		{"document with generators", map[string]any{"generators": map[string]any{}}, KindDocument},
		{"legacy rules", map[string]any{"$.body.a": map[string]any{"match": "type"}}, KindRules},
		{"rule list", map[string]any{"path": map[string]any{"matchers": []any{}}}, KindRules},
		{"categorized rules", map[string]any{"body": map[string]any{"$.a": map[string]any{"matchers": []any{}}}}, KindRules},
		{"generators", map[string]any{"body": map[string]any{"$.a": map[string]any{"type": "Uuid"}}}, KindGenerators},
		{"not an object", []any{1}, KindDocument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectKind(tt.doc))
		})
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"", KindAuto, false},
		{"auto", KindAuto, false},
		{"Document", KindDocument, false},
		{"rules", KindRules, false},
		{"matchingRules", KindRules, false},
		{"generators", KindGenerators, false},
		{"pact", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownKind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeDocument(t *testing.T) {
	yamlDoc, err := DecodeDocument([]byte("a:\n  n: 3\n  f: 1.5\n  s: x\n"), FormatYAML)
	require.NoError(t, err)
	jsonDoc, err := DecodeDocument([]byte(`{"a":{"n":3,"f":1.5,"s":"x"}}`), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, jsonDoc, yamlDoc)
	inner := yamlDoc.(map[string]any)["a"].(map[string]any)
	assert.Equal(t, json.Number("3"), inner["n"])

	_, err = DecodeDocument([]byte(`{"a":1} {"b":2}`), FormatJSON)
	assert.Error(t, err)

	_, err = DecodeDocument([]byte("a: [1"), FormatYAML)
	assert.Error(t, err)

	_, err = DecodeDocument([]byte("a"), Format("toml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"rules.json", FormatJSON, false},
		{"dir/rules.YAML", FormatYAML, false},
		{"rules.yml", FormatYAML, false},
		{"rules.toml", "", true},
		{"rules", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "orders.yaml")
	require.NoError(t, os.WriteFile(good, []byte(validDocumentYAML), 0o600))
	bad := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"generators": `), 0o600))
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o600))

	v := NewValidator()

	result := v.ValidateFile(good, KindAuto)
	assert.True(t, result.Valid, "errors: %v", result.Errors)
	assert.Equal(t, good, result.Source)

	for _, path := range []string{bad, other, filepath.Join(dir, "missing.json")} {
		result := v.ValidateFile(path, KindAuto)
		assert.False(t, result.Valid, path)
		assert.Equal(t, []string{ErrCodeInvalidDocument}, codes(result), path)
	}
}

func TestLoadDocument(t *testing.T) {
	rules, gens, err := NewValidator().LoadDocument(decode(t, validDocumentYAML), KindAuto)
	require.NoError(t, err)

	body, ok := rules.RulesForCategory(contract.CategoryBody)
	require.True(t, ok)
	list, ok := body.Get(pathexp.MustParse("$.id"))
	require.True(t, ok)
	assert.Equal(t, contract.NewRuleList(contract.IntegerRule()), list)

	gen, ok := gens.Get(contract.GenCategoryBody, pathexp.MustParse("$.id"))
	require.True(t, ok)
	assert.Equal(t, contract.RandomIntGenerator(1, 100), gen)

	_, ok = gens.Get(contract.GenCategoryPath, pathexp.New())
	assert.True(t, ok)
}

func TestLoadDocument_Invalid(t *testing.T) {
	_, _, err := NewValidator().LoadDocument(decode(t, "generators:\n  body:\n    $.a:\n      type: Nope\n"), KindAuto)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generators")
}

func TestValidator_Concurrent(t *testing.T) {
	v := NewValidator()
	doc := decode(t, validDocumentYAML)
	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			assert.True(t, v.Validate(doc, KindDocument).Valid)
		})
	}
	wg.Wait()
}
