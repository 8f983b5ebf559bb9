package contract

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// GeneratorKind identifies the variant of a Generator.
type GeneratorKind int

// Generator kinds.
const (
	GenRandomInt GeneratorKind = iota
	GenUUID
	GenRandomDecimal
	GenRandomHexadecimal
	GenRandomString
	GenRegex
	GenDate
	GenTime
	GenDateTime
	GenRandomBoolean
	GenProviderState
	GenMockServerURL
	GenArrayContains
)

var generatorKindNames = map[GeneratorKind]string{
	GenRandomInt:         "RandomInt",
	GenUUID:              "Uuid",
	GenRandomDecimal:     "RandomDecimal",
	GenRandomHexadecimal: "RandomHexadecimal",
	GenRandomString:      "RandomString",
	GenRegex:             "Regex",
	GenDate:              "Date",
	GenTime:              "Time",
	GenDateTime:          "DateTime",
	GenRandomBoolean:     "RandomBoolean",
	GenProviderState:     "ProviderState",
	GenMockServerURL:     "MockServerURL",
	GenArrayContains:     "ArrayContains",
}

// String returns the "type" name used for the kind in JSON documents.
func (k GeneratorKind) String() string {
	if name, ok := generatorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("GeneratorKind(%d)", int(k))
}

// UUIDFormat is the text form of generated UUIDs.
type UUIDFormat string

// UUID formats. The empty format generates the default, lower-case hyphenated.
const (
	UUIDDefault             UUIDFormat = ""
	UUIDSimple              UUIDFormat = "simple"
	UUIDLowerCaseHyphenated UUIDFormat = "lower-case-hyphenated"
	UUIDUpperCaseHyphenated UUIDFormat = "upper-case-hyphenated"
	UUIDURN                 UUIDFormat = "URN"
)

// ParseUUIDFormat parses a UUID format name.
func ParseUUIDFormat(s string) (UUIDFormat, error) {
	switch f := UUIDFormat(s); f {
	case UUIDSimple, UUIDLowerCaseHyphenated, UUIDUpperCaseHyphenated, UUIDURN:
		return f, nil
	default:
		return UUIDDefault, fmt.Errorf("'%s' is not a valid UUID format", s)
	}
}

// DataType is the type a provider state value is converted to.
type DataType string

// Data types. The empty data type behaves as DataTypeRaw.
const (
	DataTypeString  DataType = "STRING"
	DataTypeInteger DataType = "INTEGER"
	DataTypeDecimal DataType = "DECIMAL"
	DataTypeFloat   DataType = "FLOAT"
	DataTypeRaw     DataType = "RAW"
	DataTypeBoolean DataType = "BOOLEAN"
)

// ParseDataType parses a data type name. Unknown names map to RAW.
func ParseDataType(s string) DataType {
	switch dt := DataType(strings.ToUpper(s)); dt {
	case DataTypeString, DataTypeInteger, DataTypeDecimal, DataTypeFloat, DataTypeBoolean:
		return dt
	default:
		return DataTypeRaw
	}
}

// TestMode is the side of a contract test that runs the generators.
type TestMode int

// Test modes.
const (
	ModeConsumer TestMode = iota
	ModeProvider
)

func (m TestMode) String() string {
	if m == ModeProvider {
		return "provider"
	}
	return "consumer"
}

// ParseTestMode parses "consumer" or "provider".
func ParseTestMode(s string) (TestMode, error) {
	switch strings.ToLower(s) {
	case "consumer", "":
		return ModeConsumer, nil
	case "provider":
		return ModeProvider, nil
	default:
		return ModeConsumer, fmt.Errorf("%q is not a valid test mode", s)
	}
}

// Generator describes how to produce a value. Only the fields relevant to
// Kind are meaningful.
type Generator struct {
	Kind GeneratorKind

	// Min and Max bound RandomInt.
	Min int
	Max int
	// Digits is the length of RandomDecimal and RandomHexadecimal values.
	Digits int
	// Size is the length of RandomString values.
	Size int
	// Regex is the pattern of Regex generators and the URL pattern of
	// MockServerURL generators.
	Regex string
	// Format is the optional Java-style pattern of date and time generators.
	Format string
	// Expression is the optional relative expression of date and time
	// generators, or the lookup expression of ProviderState generators.
	Expression string
	// UUIDFormat selects the text form of Uuid values.
	UUIDFormat UUIDFormat
	// DataType is the conversion applied to ProviderState values.
	DataType DataType
	// Example is the recorded URL of MockServerURL generators.
	Example string
	// Variants are the alternatives of ArrayContains generators.
	Variants []ArrayContainsVariant
}

// RandomIntGenerator produces integers in [lo, hi].
func RandomIntGenerator(lo, hi int) Generator { return Generator{Kind: GenRandomInt, Min: lo, Max: hi} }

// UUIDGenerator produces random UUIDs.
func UUIDGenerator(format UUIDFormat) Generator { return Generator{Kind: GenUUID, UUIDFormat: format} }

// RandomDecimalGenerator produces decimal strings with the given digit count.
func RandomDecimalGenerator(digits int) Generator {
	return Generator{Kind: GenRandomDecimal, Digits: digits}
}

// RandomHexadecimalGenerator produces hexadecimal strings.
func RandomHexadecimalGenerator(digits int) Generator {
	return Generator{Kind: GenRandomHexadecimal, Digits: digits}
}

// RandomStringGenerator produces alphanumeric strings.
func RandomStringGenerator(size int) Generator { return Generator{Kind: GenRandomString, Size: size} }

// RegexGenerator produces strings that match pattern.
func RegexGenerator(pattern string) Generator { return Generator{Kind: GenRegex, Regex: pattern} }

// DateGenerator produces dates.
func DateGenerator(format, expression string) Generator {
	return Generator{Kind: GenDate, Format: format, Expression: expression}
}

// TimeGenerator produces times.
func TimeGenerator(format, expression string) Generator {
	return Generator{Kind: GenTime, Format: format, Expression: expression}
}

// DateTimeGenerator produces timestamps.
func DateTimeGenerator(format, expression string) Generator {
	return Generator{Kind: GenDateTime, Format: format, Expression: expression}
}

// RandomBooleanGenerator produces booleans.
func RandomBooleanGenerator() Generator { return Generator{Kind: GenRandomBoolean} }

// ProviderStateGenerator looks values up in the provider state context.
func ProviderStateGenerator(expression string, dataType DataType) Generator {
	return Generator{Kind: GenProviderState, Expression: expression, DataType: dataType}
}

// MockServerURLGenerator rewrites example so it points at the running mock
// server. regex must capture the part of the URL that is kept.
func MockServerURLGenerator(example, regex string) Generator {
	return Generator{Kind: GenMockServerURL, Example: example, Regex: regex}
}

// ArrayContainsGenerator applies per-variant generators to array elements.
func ArrayContainsGenerator(variants ...ArrayContainsVariant) Generator {
	return Generator{Kind: GenArrayContains, Variants: variants}
}

// CorrespondsToMode reports whether the generator runs in mode. Provider
// state lookups only run for providers and mock server URLs only run for
// consumers.
func (g Generator) CorrespondsToMode(mode TestMode) bool {
	switch g.Kind {
	case GenProviderState:
		return mode == ModeProvider
	case GenMockServerURL:
		return mode == ModeConsumer
	default:
		return true
	}
}

// Equal compares the kind and the parameters carried by that kind.
func (g Generator) Equal(other Generator) bool {
	if g.Kind != other.Kind {
		return false
	}
	switch g.Kind {
	case GenRandomInt:
		return g.Min == other.Min && g.Max == other.Max
	case GenUUID:
		return g.UUIDFormat == other.UUIDFormat
	case GenRandomDecimal, GenRandomHexadecimal:
		return g.Digits == other.Digits
	case GenRandomString:
		return g.Size == other.Size
	case GenRegex:
		return g.Regex == other.Regex
	case GenDate, GenTime, GenDateTime:
		return g.Format == other.Format && g.Expression == other.Expression
	case GenProviderState:
		return g.Expression == other.Expression && g.DataType == other.DataType
	case GenMockServerURL:
		return g.Example == other.Example && g.Regex == other.Regex
	case GenArrayContains:
		return slices.EqualFunc(g.Variants, other.Variants, ArrayContainsVariant.Equal)
	default:
		return true
	}
}

func (g Generator) String() string {
	switch g.Kind {
	case GenRandomInt:
		return fmt.Sprintf("RandomInt(%d, %d)", g.Min, g.Max)
	case GenRandomDecimal, GenRandomHexadecimal:
		return fmt.Sprintf("%s(%d)", g.Kind, g.Digits)
	case GenRandomString:
		return fmt.Sprintf("RandomString(%d)", g.Size)
	case GenRegex:
		return fmt.Sprintf("Regex(%s)", g.Regex)
	case GenProviderState:
		return fmt.Sprintf("ProviderState(%s)", g.Expression)
	case GenMockServerURL:
		return fmt.Sprintf("MockServerURL(%s, %s)", g.Example, g.Regex)
	default:
		return g.Kind.String()
	}
}

func generatorMapsEqual(a, b map[string]Generator) bool {
	return maps.EqualFunc(a, b, Generator.Equal)
}
