package generate

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange is returned when a RandomInt minimum exceeds its maximum.
	ErrInvalidRange = errors.New("invalid range")
	// ErrUnsupported is returned when a generator can not produce the
	// requested representation.
	ErrUnsupported = errors.New("generator does not support this value")
	// ErrInvalidRegex wraps regular expressions that can not be sampled.
	ErrInvalidRegex = errors.New("invalid regular expression")
	// ErrInvalidExpression wraps malformed date and time expressions.
	ErrInvalidExpression = errors.New("invalid date-time expression")
	// ErrNotAList is returned by ArrayContains for non-array values.
	ErrNotAList = errors.New("can only use ArrayContains with lists")
	// ErrMissingClosingBrace is returned for "${" without a matching "}".
	ErrMissingClosingBrace = errors.New("Missing closing brace")
	// ErrConversion is returned when a provider state value can not be
	// converted to the requested data type.
	ErrConversion = errors.New("conversion failed")
	// ErrInvalidBody wraps bodies that can not be parsed for their content type.
	ErrInvalidBody = errors.New("invalid body")
)

// Mock server URL errors.
var (
	ErrNoMockServer        = errors.New("MockServerURL: can not generate a value as there is no mock server details in the test context")
	ErrMockServerNotObject = errors.New("MockServerURL: can not generate a value as the mock server details in the test context is not an Object")
	ErrNoMockServerURL     = errors.New("MockServerURL: can not generate a value as there is no mock server URL in the test context")
	ErrExampleMismatch     = errors.New("MockServerURL: example URL does not match the regex")
)

// MissingValueError reports a provider state lookup that found nothing.
type MissingValueError struct {
	Key string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("Value '%s' was not found in the provided context", e.Key)
}
