package generate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"strings"

	"github.com/beevik/etree"
	"github.com/ohler55/ojg/oj"

	"github.com/getmockd/pactcore/pkg/contract"
)

// BodyKind is the handler family chosen for a body.
type BodyKind int

// Body kinds.
const (
	BodyText BodyKind = iota
	BodyJSON
	BodyXML
)

// DetectBodyKind picks the handler for a content type, falling back to the
// first non-space byte of body when the content type is empty or unknown.
func DetectBodyKind(contentType string, body []byte) BodyKind {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		switch {
		case mt == "application/json" || strings.HasSuffix(mt, "+json"):
			return BodyJSON
		case mt == "application/xml" || mt == "text/xml" || strings.HasSuffix(mt, "+xml"):
			return BodyXML
		case strings.HasPrefix(mt, "text/"):
			return BodyText
		}
	}
	trimmed := bytes.TrimSpace(body)
	switch {
	case len(trimmed) == 0:
		return BodyText
	case trimmed[0] == '{' || trimmed[0] == '[':
		return BodyJSON
	case trimmed[0] == '<':
		return BodyXML
	}
	return BodyText
}

// ApplyBodyGenerators runs the body generators of gens that apply in mode
// over body and returns the regenerated body. Bodies that are neither JSON
// nor XML are only affected by a generator at the root expression.
func (e *Engine) ApplyBodyGenerators(contentType string, body []byte, gens *contract.Generators, mode contract.TestMode, ctx Context, matcher contract.VariantMatcher) ([]byte, error) {
	applicable := gens.ApplicableTo(contract.GenCategoryBody, mode)
	if len(applicable) == 0 || len(body) == 0 {
		return body, nil
	}
	switch DetectBodyKind(contentType, body) {
	case BodyJSON:
		v, err := oj.Parse(body)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidBody, err)
		}
		h := NewJSONHandler(e, v)
		h.ProcessBody(applicable, ctx, matcher)
		return json.Marshal(h.Value)
	case BodyXML:
		doc := etree.NewDocument()
		if err := doc.ReadFromBytes(body); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidBody, err)
		}
		h := NewXMLHandler(e, doc)
		h.ProcessBody(applicable, ctx)
		return doc.WriteToBytes()
	default:
		out := string(body)
		for _, pg := range applicable {
			if pg.Path.Len() > 1 {
				continue
			}
			if v, err := e.String(pg.Generator, out, ctx); err == nil {
				out = v
			}
		}
		return []byte(out), nil
	}
}

// ApplyValue regenerates a single-valued category such as the path or the
// method. The current value is kept when no generator applies or
// generation fails.
func (e *Engine) ApplyValue(category contract.GeneratorCategory, value string, gens *contract.Generators, mode contract.TestMode, ctx Context) string {
	for _, pg := range gens.ApplicableTo(category, mode) {
		if v, err := e.String(pg.Generator, value, ctx); err == nil {
			value = v
		}
	}
	return value
}

// ApplyStatus regenerates a status code.
func (e *Engine) ApplyStatus(status int, gens *contract.Generators, mode contract.TestMode, ctx Context) int {
	for _, pg := range gens.ApplicableTo(contract.GenCategoryStatus, mode) {
		if v, err := e.Int(pg.Generator, status, ctx); err == nil {
			status = v
		}
	}
	return status
}

// ApplyMultiValues regenerates header or query values. Generators are keyed
// by the parameter name; every value of a matching parameter is
// regenerated. values is modified in place and returned.
func (e *Engine) ApplyMultiValues(category contract.GeneratorCategory, values map[string][]string, gens *contract.Generators, mode contract.TestMode, ctx Context) map[string][]string {
	for _, pg := range gens.ApplicableTo(category, mode) {
		name, ok := pg.Path.FirstField()
		if !ok {
			continue
		}
		key, found := findKey(values, name, category == contract.GenCategoryHeader)
		if !found {
			continue
		}
		for i, current := range values[key] {
			if v, err := e.String(pg.Generator, current, ctx); err == nil {
				values[key][i] = v
			}
		}
	}
	return values
}

// findKey finds name in values, ignoring case for headers.
func findKey(values map[string][]string, name string, foldCase bool) (string, bool) {
	if _, ok := values[name]; ok {
		return name, true
	}
	if !foldCase {
		return "", false
	}
	for k := range values {
		if strings.EqualFold(k, name) {
			return k, true
		}
	}
	return "", false
}
