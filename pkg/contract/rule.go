package contract

import (
	"fmt"
	"slices"
)

// RuleKind identifies the variant of a MatchingRule.
type RuleKind int

// Matching rule kinds.
const (
	RuleEquality RuleKind = iota
	RuleRegex
	RuleType
	RuleMinType
	RuleMaxType
	RuleMinMaxType
	RuleTimestamp
	RuleTime
	RuleDate
	RuleInclude
	RuleNumber
	RuleInteger
	RuleDecimal
	RuleNull
	RuleContentType
	RuleArrayContains
	RuleValues
	RuleBoolean
	RuleStatusCode
)

var ruleKindNames = map[RuleKind]string{
	RuleEquality:      "equality",
	RuleRegex:         "regex",
	RuleType:          "type",
	RuleMinType:       "type",
	RuleMaxType:       "type",
	RuleMinMaxType:    "type",
	RuleTimestamp:     "timestamp",
	RuleTime:          "time",
	RuleDate:          "date",
	RuleInclude:       "include",
	RuleNumber:        "number",
	RuleInteger:       "integer",
	RuleDecimal:       "decimal",
	RuleNull:          "null",
	RuleContentType:   "contentType",
	RuleArrayContains: "arrayContains",
	RuleValues:        "values",
	RuleBoolean:       "boolean",
	RuleStatusCode:    "statusCode",
}

// String returns the "match" name used for the kind in JSON documents.
func (k RuleKind) String() string {
	if name, ok := ruleKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("RuleKind(%d)", int(k))
}

// MatchingRule is a single matching rule. Only the fields relevant to Kind
// are meaningful; the rest are left at their zero values.
type MatchingRule struct {
	Kind RuleKind

	// Regex is the pattern of a regex rule.
	Regex string
	// Min and Max bound the length of collections for the type rules.
	Min int
	Max int
	// Format is the date/time pattern of timestamp, time and date rules.
	Format string
	// Value is the substring of an include rule or the content type of a
	// contentType rule.
	Value string
	// Variants are the alternatives of an arrayContains rule.
	Variants []ArrayContainsVariant
	// Status is the expected status of a statusCode rule.
	Status HTTPStatus
}

// EqualityRule matches values that are equal to the expected value.
func EqualityRule() MatchingRule { return MatchingRule{Kind: RuleEquality} }

// RegexRule matches string forms of values against a pattern.
func RegexRule(pattern string) MatchingRule { return MatchingRule{Kind: RuleRegex, Regex: pattern} }

// TypeRule matches values of the same type as the expected value.
func TypeRule() MatchingRule { return MatchingRule{Kind: RuleType} }

// MinTypeRule is a type rule with a minimum collection length.
func MinTypeRule(n int) MatchingRule { return MatchingRule{Kind: RuleMinType, Min: n} }

// MaxTypeRule is a type rule with a maximum collection length.
func MaxTypeRule(n int) MatchingRule { return MatchingRule{Kind: RuleMaxType, Max: n} }

// MinMaxTypeRule is a type rule with both length bounds.
func MinMaxTypeRule(lo, hi int) MatchingRule {
	return MatchingRule{Kind: RuleMinMaxType, Min: lo, Max: hi}
}

// TimestampRule matches date-time strings in the given pattern.
func TimestampRule(format string) MatchingRule {
	return MatchingRule{Kind: RuleTimestamp, Format: format}
}

// TimeRule matches time strings in the given pattern.
func TimeRule(format string) MatchingRule { return MatchingRule{Kind: RuleTime, Format: format} }

// DateRule matches date strings in the given pattern.
func DateRule(format string) MatchingRule { return MatchingRule{Kind: RuleDate, Format: format} }

// IncludeRule matches strings containing value.
func IncludeRule(value string) MatchingRule { return MatchingRule{Kind: RuleInclude, Value: value} }

// NumberRule matches any number.
func NumberRule() MatchingRule { return MatchingRule{Kind: RuleNumber} }

// IntegerRule matches integers.
func IntegerRule() MatchingRule { return MatchingRule{Kind: RuleInteger} }

// DecimalRule matches numbers with a fractional part.
func DecimalRule() MatchingRule { return MatchingRule{Kind: RuleDecimal} }

// NullRule matches null.
func NullRule() MatchingRule { return MatchingRule{Kind: RuleNull} }

// BooleanRule matches booleans and the strings "true" and "false".
func BooleanRule() MatchingRule { return MatchingRule{Kind: RuleBoolean} }

// ValuesRule matches map values while ignoring the keys.
func ValuesRule() MatchingRule { return MatchingRule{Kind: RuleValues} }

// ContentTypeRule matches binary content of the given content type.
func ContentTypeRule(contentType string) MatchingRule {
	return MatchingRule{Kind: RuleContentType, Value: contentType}
}

// ArrayContainsRule matches arrays that contain an element for every variant.
func ArrayContainsRule(variants ...ArrayContainsVariant) MatchingRule {
	return MatchingRule{Kind: RuleArrayContains, Variants: variants}
}

// StatusCodeRule matches response status codes.
func StatusCodeRule(status HTTPStatus) MatchingRule {
	return MatchingRule{Kind: RuleStatusCode, Status: status}
}

// IsTypeMatcher reports whether the rule is one of the type family.
func (r MatchingRule) IsTypeMatcher() bool {
	switch r.Kind {
	case RuleType, RuleMinType, RuleMaxType, RuleMinMaxType:
		return true
	default:
		return false
	}
}

// HasGenerators reports whether any arrayContains variant carries generators.
func (r MatchingRule) HasGenerators() bool {
	if r.Kind != RuleArrayContains {
		return false
	}
	for _, v := range r.Variants {
		if len(v.Generators) > 0 {
			return true
		}
	}
	return false
}

// Generators returns the generator embedded in an arrayContains rule.
func (r MatchingRule) Generators() []Generator {
	if !r.HasGenerators() {
		return nil
	}
	return []Generator{ArrayContainsGenerator(r.Variants...)}
}

// Equal compares the kind and the parameters carried by that kind.
func (r MatchingRule) Equal(other MatchingRule) bool {
	if r.Kind != other.Kind {
		return false
	}
	switch r.Kind {
	case RuleRegex:
		return r.Regex == other.Regex
	case RuleMinType:
		return r.Min == other.Min
	case RuleMaxType:
		return r.Max == other.Max
	case RuleMinMaxType:
		return r.Min == other.Min && r.Max == other.Max
	case RuleTimestamp, RuleTime, RuleDate:
		return r.Format == other.Format
	case RuleInclude, RuleContentType:
		return r.Value == other.Value
	case RuleArrayContains:
		return slices.EqualFunc(r.Variants, other.Variants, ArrayContainsVariant.Equal)
	case RuleStatusCode:
		return r.Status.Equal(other.Status)
	default:
		return true
	}
}

// String returns a short human readable description.
func (r MatchingRule) String() string {
	switch r.Kind {
	case RuleRegex:
		return fmt.Sprintf("regex(%s)", r.Regex)
	case RuleMinType:
		return fmt.Sprintf("type(min=%d)", r.Min)
	case RuleMaxType:
		return fmt.Sprintf("type(max=%d)", r.Max)
	case RuleMinMaxType:
		return fmt.Sprintf("type(min=%d, max=%d)", r.Min, r.Max)
	case RuleTimestamp, RuleTime, RuleDate:
		return fmt.Sprintf("%s(%s)", r.Kind, r.Format)
	case RuleInclude, RuleContentType:
		return fmt.Sprintf("%s(%s)", r.Kind, r.Value)
	case RuleArrayContains:
		return fmt.Sprintf("arrayContains(%d variants)", len(r.Variants))
	case RuleStatusCode:
		return fmt.Sprintf("statusCode(%s)", r.Status)
	default:
		return r.Kind.String()
	}
}

// StatusClass is a named range of HTTP status codes.
type StatusClass string

// Status classes.
const (
	StatusInformation StatusClass = "info"
	StatusSuccess     StatusClass = "success"
	StatusRedirect    StatusClass = "redirect"
	StatusClientError StatusClass = "clientError"
	StatusServerError StatusClass = "serverError"
	StatusNonError    StatusClass = "nonError"
	StatusError       StatusClass = "error"
	// StatusCodes means the explicit Codes list applies.
	StatusCodes StatusClass = "statusCodes"
)

// HTTPStatus is either a status class or an explicit list of codes.
type HTTPStatus struct {
	Class StatusClass
	Codes []int
}

// Matches reports whether code falls in the status class or code list.
func (s HTTPStatus) Matches(code int) bool {
	switch s.Class {
	case StatusInformation:
		return code >= 100 && code < 200
	case StatusSuccess:
		return code >= 200 && code < 300
	case StatusRedirect:
		return code >= 300 && code < 400
	case StatusClientError:
		return code >= 400 && code < 500
	case StatusServerError:
		return code >= 500 && code < 600
	case StatusNonError:
		return code < 400
	case StatusError:
		return code >= 400
	case StatusCodes:
		return slices.Contains(s.Codes, code)
	default:
		return false
	}
}

// Equal compares class and codes.
func (s HTTPStatus) Equal(other HTTPStatus) bool {
	return s.Class == other.Class && slices.Equal(s.Codes, other.Codes)
}

func (s HTTPStatus) String() string {
	if s.Class == StatusCodes {
		return fmt.Sprint(s.Codes)
	}
	return string(s.Class)
}

func (s HTTPStatus) toJSON() any {
	if s.Class == StatusCodes {
		codes := make([]any, len(s.Codes))
		for i, c := range s.Codes {
			codes[i] = c
		}
		return codes
	}
	return string(s.Class)
}

func statusFromJSON(v any) (HTTPStatus, error) {
	switch val := v.(type) {
	case string:
		switch StatusClass(val) {
		case StatusInformation, StatusSuccess, StatusRedirect, StatusClientError,
			StatusServerError, StatusNonError, StatusError:
			return HTTPStatus{Class: StatusClass(val)}, nil
		}
		return HTTPStatus{}, fmt.Errorf("%w: %q is not a valid HTTP status class", ErrInvalidJSON, val)
	case []any:
		codes := make([]int, 0, len(val))
		for _, c := range val {
			n, ok := toInt(c)
			if !ok {
				return HTTPStatus{}, fmt.Errorf("%w: status code %v is not a number", ErrInvalidJSON, c)
			}
			codes = append(codes, n)
		}
		return HTTPStatus{Class: StatusCodes, Codes: codes}, nil
	default:
		return HTTPStatus{}, fmt.Errorf("%w: status %v must be a string or an array", ErrInvalidJSON, v)
	}
}
