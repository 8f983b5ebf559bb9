package contract

import (
	"fmt"
)

// CreateGenerator builds a generator from its "type" name and attributes.
// Missing numeric attributes take their defaults: RandomInt is 0..10 and
// digit and size counts are 10.
func CreateGenerator(kind string, attrs map[string]any) (Generator, error) {
	if attrs == nil {
		attrs = map[string]any{}
	}
	switch kind {
	case "RandomInt":
		return RandomIntGenerator(intAttr(attrs, "min", 0), intAttr(attrs, "max", 10)), nil
	case "Uuid":
		s, ok := stringAttr(attrs, "format")
		if !ok {
			return UUIDGenerator(UUIDDefault), nil
		}
		f, err := ParseUUIDFormat(s)
		if err != nil {
			logger().Warn("ignoring invalid UUID format", "format", s)
		}
		return UUIDGenerator(f), nil
	case "RandomDecimal":
		return RandomDecimalGenerator(intAttr(attrs, "digits", 10)), nil
	case "RandomHexadecimal":
		return RandomHexadecimalGenerator(intAttr(attrs, "digits", 10)), nil
	case "RandomString":
		return RandomStringGenerator(intAttr(attrs, "size", 10)), nil
	case "Regex":
		s, ok := stringAttr(attrs, "regex")
		if !ok {
			return Generator{}, fmt.Errorf("Regex generator: %w 'regex'", ErrMissingField)
		}
		return RegexGenerator(s), nil
	case "Date", "Time", "DateTime":
		format, _ := stringAttr(attrs, "format")
		expression, _ := stringAttr(attrs, "expression")
		switch kind {
		case "Date":
			return DateGenerator(format, expression), nil
		case "Time":
			return TimeGenerator(format, expression), nil
		default:
			return DateTimeGenerator(format, expression), nil
		}
	case "RandomBoolean":
		return RandomBooleanGenerator(), nil
	case "ProviderState":
		expression, ok := stringAttr(attrs, "expression")
		if !ok {
			return Generator{}, fmt.Errorf("ProviderState generator: %w 'expression'", ErrMissingField)
		}
		var dt DataType
		if s, ok := stringAttr(attrs, "dataType"); ok {
			dt = ParseDataType(s)
		}
		return ProviderStateGenerator(expression, dt), nil
	case "MockServerURL":
		example, _ := stringAttr(attrs, "example")
		regex, _ := stringAttr(attrs, "regex")
		return MockServerURLGenerator(example, regex), nil
	case "ArrayContains":
		raw, ok := attrs["variants"]
		if !ok {
			return Generator{}, fmt.Errorf("ArrayContains generator: %w 'variants'", ErrMissingField)
		}
		variants, err := variantsFromJSON(raw)
		if err != nil {
			return Generator{}, fmt.Errorf("ArrayContains generator: %w", err)
		}
		return ArrayContainsGenerator(variants...), nil
	default:
		return Generator{}, fmt.Errorf("'%s' is %w", kind, ErrUnknownGeneratorType)
	}
}

// GeneratorFromJSON builds a generator from a decoded generator object.
func GeneratorFromJSON(v any) (Generator, error) {
	m, ok := asObject(v)
	if !ok {
		return Generator{}, fmt.Errorf("%w: generator is not an object", ErrInvalidJSON)
	}
	kind, ok := m["type"].(string)
	if !ok {
		return Generator{}, fmt.Errorf("%w: generator has no string 'type' attribute", ErrInvalidJSON)
	}
	return CreateGenerator(kind, m)
}

// ToJSON returns the generator in the document form consumed by
// GeneratorFromJSON.
func (g Generator) ToJSON() map[string]any {
	out := map[string]any{"type": g.Kind.String()}
	switch g.Kind {
	case GenRandomInt:
		out["min"] = g.Min
		out["max"] = g.Max
	case GenUUID:
		if g.UUIDFormat != UUIDDefault {
			out["format"] = string(g.UUIDFormat)
		}
	case GenRandomDecimal, GenRandomHexadecimal:
		out["digits"] = g.Digits
	case GenRandomString:
		out["size"] = g.Size
	case GenRegex:
		out["regex"] = g.Regex
	case GenDate, GenTime, GenDateTime:
		if g.Format != "" {
			out["format"] = g.Format
		}
		if g.Expression != "" {
			out["expression"] = g.Expression
		}
	case GenProviderState:
		out["expression"] = g.Expression
		if g.DataType != "" {
			out["dataType"] = string(g.DataType)
		}
	case GenMockServerURL:
		out["example"] = g.Example
		out["regex"] = g.Regex
	case GenArrayContains:
		variants := make([]any, 0, len(g.Variants))
		for _, v := range g.Variants {
			variants = append(variants, v.toJSON())
		}
		out["variants"] = variants
	}
	return out
}
