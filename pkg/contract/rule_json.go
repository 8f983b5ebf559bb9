package contract

import (
	"fmt"

	"github.com/getmockd/pactcore/pkg/metrics"
	"github.com/getmockd/pactcore/pkg/pathexp"
)

// CreateRule builds a rule from its "match" kind name and attribute map.
// Unknown kinds and missing mandatory attributes are reported as errors.
func CreateRule(kind string, attrs map[string]any) (MatchingRule, error) {
	if attrs == nil {
		attrs = map[string]any{}
	}
	switch kind {
	case "regex":
		s, ok := stringAttr(attrs, "regex")
		if !ok {
			return MatchingRule{}, fmt.Errorf("regex matcher: %w 'regex'", ErrMissingField)
		}
		return RegexRule(s), nil
	case "equality":
		return EqualityRule(), nil
	case "include":
		s, ok := stringAttr(attrs, "value")
		if !ok {
			return MatchingRule{}, fmt.Errorf("include matcher: %w 'value'", ErrMissingField)
		}
		return IncludeRule(s), nil
	case "type":
		lo, hasMin := attrs["min"]
		hi, hasMax := attrs["max"]
		minN, minOK := toInt(lo)
		maxN, maxOK := toInt(hi)
		switch {
		case hasMin && minOK && hasMax && maxOK:
			return MinMaxTypeRule(minN, maxN), nil
		case hasMin && minOK:
			return MinTypeRule(minN), nil
		case hasMax && maxOK:
			return MaxTypeRule(maxN), nil
		default:
			return TypeRule(), nil
		}
	case "number":
		return NumberRule(), nil
	case "integer":
		return IntegerRule(), nil
	case "decimal", "real":
		return DecimalRule(), nil
	case "boolean":
		return BooleanRule(), nil
	case "min":
		n, ok := toInt(attrs["min"])
		if !ok {
			return MatchingRule{}, fmt.Errorf("min matcher: %w 'min'", ErrMissingField)
		}
		return MinTypeRule(n), nil
	case "max":
		n, ok := toInt(attrs["max"])
		if !ok {
			return MatchingRule{}, fmt.Errorf("max matcher: %w 'max'", ErrMissingField)
		}
		return MaxTypeRule(n), nil
	case "timestamp", "datetime":
		f, ok := formatAttr(attrs, kind)
		if !ok {
			return MatchingRule{}, fmt.Errorf("timestamp matcher: %w 'timestamp' or 'format'", ErrMissingField)
		}
		return TimestampRule(f), nil
	case "date":
		f, ok := formatAttr(attrs, kind)
		if !ok {
			return MatchingRule{}, fmt.Errorf("date matcher: %w 'date' or 'format'", ErrMissingField)
		}
		return DateRule(f), nil
	case "time":
		f, ok := formatAttr(attrs, kind)
		if !ok {
			return MatchingRule{}, fmt.Errorf("time matcher: %w 'time' or 'format'", ErrMissingField)
		}
		return TimeRule(f), nil
	case "null":
		return NullRule(), nil
	case "contentType":
		s, ok := stringAttr(attrs, "value")
		if !ok {
			return MatchingRule{}, fmt.Errorf("contentType matcher: %w 'value'", ErrMissingField)
		}
		return ContentTypeRule(s), nil
	case "arrayContains":
		raw, ok := attrs["variants"]
		if !ok {
			return MatchingRule{}, fmt.Errorf("arrayContains matcher: %w 'variants'", ErrMissingField)
		}
		variants, err := variantsFromJSON(raw)
		if err != nil {
			return MatchingRule{}, fmt.Errorf("arrayContains matcher: %w", err)
		}
		return ArrayContainsRule(variants...), nil
	case "values":
		return ValuesRule(), nil
	case "statusCode":
		raw, ok := attrs["status"]
		if !ok {
			return StatusCodeRule(HTTPStatus{Class: StatusSuccess}), nil
		}
		status, err := statusFromJSON(raw)
		if err != nil {
			return MatchingRule{}, fmt.Errorf("statusCode matcher: %w", err)
		}
		return StatusCodeRule(status), nil
	default:
		return MatchingRule{}, fmt.Errorf("%s is %w", kind, ErrUnknownRuleType)
	}
}

func formatAttr(attrs map[string]any, kind string) (string, bool) {
	if f, ok := stringAttr(attrs, "format"); ok {
		return f, true
	}
	return stringAttr(attrs, kind)
}

// RuleFromJSON builds a rule from a decoded rule object. When the "match"
// attribute is absent the kind is inferred from the other attributes.
func RuleFromJSON(v any) (MatchingRule, error) {
	m, ok := asObject(v)
	if !ok {
		return MatchingRule{}, fmt.Errorf("%w: matching rule is not an object", ErrInvalidJSON)
	}
	if kind, ok := m["match"]; ok {
		return CreateRule(toString(kind), m)
	}
	if s, ok := stringAttr(m, "regex"); ok {
		return RegexRule(s), nil
	}
	if n, ok := toInt(m["min"]); ok {
		return MinTypeRule(n), nil
	}
	if n, ok := toInt(m["max"]); ok {
		return MaxTypeRule(n), nil
	}
	if s, ok := stringAttr(m, "timestamp"); ok {
		return TimestampRule(s), nil
	}
	if s, ok := stringAttr(m, "time"); ok {
		return TimeRule(s), nil
	}
	if s, ok := stringAttr(m, "date"); ok {
		return DateRule(s), nil
	}
	return MatchingRule{}, fmt.Errorf("%w: matching rule missing 'match' field and unable to guess its type", ErrInvalidJSON)
}

// ToJSON returns the rule in the document form consumed by RuleFromJSON.
func (r MatchingRule) ToJSON() map[string]any {
	out := map[string]any{"match": r.Kind.String()}
	switch r.Kind {
	case RuleRegex:
		out["regex"] = r.Regex
	case RuleMinType:
		out["min"] = r.Min
	case RuleMaxType:
		out["max"] = r.Max
	case RuleMinMaxType:
		out["min"] = r.Min
		out["max"] = r.Max
	case RuleTimestamp:
		out["timestamp"] = r.Format
	case RuleTime:
		out["time"] = r.Format
	case RuleDate:
		out["date"] = r.Format
	case RuleInclude, RuleContentType:
		out["value"] = r.Value
	case RuleArrayContains:
		variants := make([]any, 0, len(r.Variants))
		for _, v := range r.Variants {
			variants = append(variants, v.toJSON())
		}
		out["variants"] = variants
	case RuleStatusCode:
		out["status"] = r.Status.toJSON()
	}
	return out
}

func variantsFromJSON(raw any) ([]ArrayContainsVariant, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: 'variants' field is not an array", ErrInvalidJSON)
	}
	variants := make([]ArrayContainsVariant, 0, len(list))
	for _, item := range list {
		obj, ok := asObject(item)
		if !ok {
			return nil, fmt.Errorf("%w: variant %v is not an object", ErrInvalidJSON, item)
		}
		index, _ := toInt(obj["index"])
		rules := NewRuleCategory(CategoryBody)
		if rj, ok := obj["rules"]; ok {
			if err := rules.AddRulesFromJSON(rj); err != nil {
				return nil, fmt.Errorf("unable to parse matching rules %v: %w", rj, err)
			}
		} else {
			rules.AddRule(pathexp.New(), EqualityRule(), LogicAnd)
		}
		gens := map[string]Generator{}
		if gj, ok := asObject(obj["generators"]); ok {
			for k, v := range gj {
				gm, ok := asObject(v)
				if !ok {
					continue
				}
				path, err := pathexp.Parse(k)
				if err != nil {
					logger().Warn("ignoring variant generator with invalid path", "path", k, "error", err)
					metrics.ObserveDocumentError("generators")
					continue
				}
				g, err := GeneratorFromJSON(gm)
				if err != nil {
					logger().Warn("ignoring invalid variant generator", "path", k, "error", err)
					continue
				}
				gens[path.Key()] = g
			}
		}
		variants = append(variants, ArrayContainsVariant{Index: index, Rules: rules, Generators: gens})
	}
	return variants, nil
}
