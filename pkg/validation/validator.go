package validation

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/getmockd/pactcore/pkg/contract"
)

//go:embed schemas/pactcore.schema.json
var schemaJSON []byte

const schemaURL = "pactcore.schema.json"

// Kind is the shape of a document.
type Kind string

// Document kinds.
const (
	// KindAuto picks the kind from the document content.
	KindAuto Kind = ""
	// KindDocument is an object holding matchingRules and/or generators.
	KindDocument Kind = "document"
	// KindRules is a bare matchingRules object.
	KindRules Kind = "matchingRules"
	// KindGenerators is a bare generators object.
	KindGenerators Kind = "generators"
)

// ParseKind parses a kind name. "auto" and the empty string select KindAuto.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return KindAuto, nil
	case "document":
		return KindDocument, nil
	case "rules", "matchingrules":
		return KindRules, nil
	case "generators":
		return KindGenerators, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// DetectKind guesses the kind of a decoded document. Objects with a
// matchingRules or generators key are documents; objects whose keys use the
// legacy "$." form or whose sections carry "matchers" are rule sets;
// anything else is read as generators.
func DetectKind(doc any) Kind {
	obj, ok := doc.(map[string]any)
	if !ok {
		return KindDocument
	}
	if _, ok := obj["matchingRules"]; ok {
		return KindDocument
	}
	if _, ok := obj["generators"]; ok {
		return KindDocument
	}
	for key, section := range obj {
		if strings.HasPrefix(key, "$") {
			return KindRules
		}
		if m, ok := section.(map[string]any); ok && containsMatchers(m) {
			return KindRules
		}
	}
	return KindGenerators
}

func containsMatchers(section map[string]any) bool {
	if _, ok := section["matchers"]; ok {
		return true
	}
	for _, v := range section {
		if m, ok := v.(map[string]any); ok {
			if _, ok := m["matchers"]; ok {
				return true
			}
		}
	}
	return false
}

// Validator checks documents against the embedded schema. It is safe for
// concurrent use.
type Validator struct {
	once      sync.Once
	schemas   map[Kind]*jsonschema.Schema
	schemaErr error
}

// NewValidator creates a Validator. The schema is compiled on first use.
func NewValidator() *Validator {
	return &Validator{}
}

// compileSchemas compiles one schema per kind from the shared definitions.
func compileSchemas() (map[Kind]*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	schemas := make(map[Kind]*jsonschema.Schema, 3)
	for _, kind := range []Kind{KindDocument, KindRules, KindGenerators} {
		s, err := compiler.Compile(schemaURL + "#/$defs/" + string(kind))
		if err != nil {
			return nil, fmt.Errorf("failed to compile %s schema: %w", kind, err)
		}
		schemas[kind] = s
	}
	return schemas, nil
}

// Validate checks a decoded document. doc must hold plain JSON values, as
// returned by DecodeDocument.
func (v *Validator) Validate(doc any, kind Kind) *Result {
	result := &Result{Valid: true}

	v.once.Do(func() {
		v.schemas, v.schemaErr = compileSchemas()
	})
	if v.schemaErr != nil {
		result.AddError(NewSchemaError("", LocationDocument, fmt.Sprintf("schema compilation error: %v", v.schemaErr)))
		return result
	}

	if kind == KindAuto {
		kind = DetectKind(doc)
	}
	schema, ok := v.schemas[kind]
	if !ok {
		result.AddError(NewSchemaError("", LocationDocument, fmt.Sprintf("%v: %q", ErrUnknownKind, kind)))
		return result
	}

	if err := schema.Validate(doc); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			parseSchemaErrors(validationErr, kind, result)
		} else {
			result.AddError(NewSchemaError("", LocationDocument, err.Error()))
		}
		// Later passes assume the shape is right.
		return result
	}

	c := checker{result: result}
	obj, _ := doc.(map[string]any)
	switch kind {
	case KindDocument:
		if rules, ok := obj["matchingRules"].(map[string]any); ok {
			c.checkRules(rules)
		}
		if gens, ok := obj["generators"].(map[string]any); ok {
			c.checkGenerators(gens)
		}
	case KindRules:
		c.checkRules(obj)
	case KindGenerators:
		c.checkGenerators(obj)
	}
	return result
}

// ValidateBytes decodes data in the given format and validates it.
func (v *Validator) ValidateBytes(data []byte, format Format, kind Kind) *Result {
	doc, err := DecodeDocument(data, format)
	if err != nil {
		result := &Result{Valid: true}
		result.AddError(NewInvalidDocumentError(err.Error()))
		return result
	}
	return v.Validate(doc, kind)
}

// ValidateFile reads, decodes and validates one file. The format is taken
// from the extension.
func (v *Validator) ValidateFile(path string, kind Kind) *Result {
	result := &Result{Source: path, Valid: true}

	format, err := FormatFromPath(path)
	if err != nil {
		result.AddError(NewInvalidDocumentError(err.Error()))
		return result
	}
	data, err := os.ReadFile(path)
	if err != nil {
		result.AddError(NewInvalidDocumentError(fmt.Sprintf("failed to read file: %v", err)))
		return result
	}
	result.Merge(v.ValidateBytes(data, format, kind))
	return result
}

// parseSchemaErrors records the leaf causes of a schema failure.
func parseSchemaErrors(err *jsonschema.ValidationError, kind Kind, result *Result) {
	if len(err.Causes) == 0 {
		location, field := splitInstanceLocation(err.InstanceLocation, kind)
		result.AddError(NewSchemaError(field, location, err.Message))
		return
	}
	for _, cause := range err.Causes {
		parseSchemaErrors(cause, kind, result)
	}
}

// splitInstanceLocation turns a JSON Pointer into a section and a dotted
// field. Keys of bare rule or generator documents belong to that section.
func splitInstanceLocation(pointer string, kind Kind) (location, field string) {
	pointer = strings.TrimPrefix(pointer, "/")
	var parts []string
	if pointer != "" {
		for _, p := range strings.Split(pointer, "/") {
			p = strings.ReplaceAll(p, "~1", "/")
			parts = append(parts, strings.ReplaceAll(p, "~0", "~"))
		}
	}
	switch kind {
	case KindRules:
		return LocationMatchingRules, strings.Join(parts, ".")
	case KindGenerators:
		return LocationGenerators, strings.Join(parts, ".")
	}
	if len(parts) > 0 && (parts[0] == LocationMatchingRules || parts[0] == LocationGenerators) {
		return parts[0], strings.Join(parts[1:], ".")
	}
	return LocationDocument, strings.Join(parts, ".")
}

// LoadDocument validates doc and builds the rule and generator sets it
// holds. Either may be empty. The returned error joins every validation
// failure.
func (v *Validator) LoadDocument(doc any, kind Kind) (*contract.MatchingRules, *contract.Generators, error) {
	if kind == KindAuto {
		kind = DetectKind(doc)
	}
	if err := v.Validate(doc, kind).Err(); err != nil {
		return nil, nil, err
	}

	obj, _ := doc.(map[string]any)
	var rulesJSON, gensJSON any
	switch kind {
	case KindDocument:
		rulesJSON, gensJSON = obj["matchingRules"], obj["generators"]
	case KindRules:
		rulesJSON = obj
	case KindGenerators:
		gensJSON = obj
	}

	rules, err := contract.LoadMatchingRules(rulesJSON)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load matching rules: %w", err)
	}
	gens, err := contract.LoadGenerators(gensJSON)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load generators: %w", err)
	}
	return rules, gens, nil
}
