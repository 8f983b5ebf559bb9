package validation

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrUnknownKind is returned when a document kind name is not recognized.
	ErrUnknownKind = errors.New("unknown document kind")

	// ErrUnsupportedFormat is returned for file extensions other than
	// .json, .yaml and .yml.
	ErrUnsupportedFormat = errors.New("unsupported document format")
)

// Error codes for machine-readable error identification.
const (
	ErrCodeSchema          = "schema"
	ErrCodeInvalidDocument = "invalid_document"
	ErrCodePath            = "path"
	ErrCodePattern         = "pattern"
	ErrCodeFormat          = "format"
	ErrCodeCategory        = "category"
)

// Locations name the document section an error was found in.
const (
	LocationDocument      = "document"
	LocationMatchingRules = "matchingRules"
	LocationGenerators    = "generators"
)

// FieldError is a single validation failure.
type FieldError struct {
	// Field is the dotted location inside the section, empty for the section itself.
	Field string `json:"field,omitempty"`

	// Location is the document section: document, matchingRules or generators.
	Location string `json:"location"`

	// Code is a machine-readable error code.
	Code string `json:"code"`

	// Message is a human-readable error description.
	Message string `json:"message"`

	// Received is the offending value, when there is one.
	Received any `json:"received,omitempty"`

	// Hint suggests a fix.
	Hint string `json:"hint,omitempty"`
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s.%s: %s", e.Location, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Location, e.Message)
}

// Result contains the outcome of validation.
type Result struct {
	// Source names the validated file, if any.
	Source string `json:"source,omitempty"`

	// Valid is true if validation passed.
	Valid bool `json:"valid"`

	// Errors contains validation errors (when Valid is false).
	Errors []*FieldError `json:"errors,omitempty"`

	// Warnings contains non-fatal validation warnings.
	Warnings []*FieldError `json:"warnings,omitempty"`
}

// AddError adds a validation error to the result.
func (r *Result) AddError(err *FieldError) {
	r.Valid = false
	r.Errors = append(r.Errors, err)
}

// AddWarning adds a validation warning to the result.
func (r *Result) AddWarning(warn *FieldError) {
	r.Warnings = append(r.Warnings, warn)
}

// HasErrors returns true if there are any validation errors.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// Merge combines another result into this one.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	if !other.Valid {
		r.Valid = false
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Err returns the errors joined into one error, or nil when the result is
// valid.
func (r *Result) Err() error {
	if r.Valid {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// NewSchemaError creates an error for a JSON Schema failure.
func NewSchemaError(field, location, message string) *FieldError {
	return &FieldError{
		Field:    field,
		Location: location,
		Code:     ErrCodeSchema,
		Message:  message,
		Hint:     "Check the document against the pactcore schema",
	}
}

// NewInvalidDocumentError creates an error for a document that could not be decoded.
func NewInvalidDocumentError(message string) *FieldError {
	return &FieldError{
		Location: LocationDocument,
		Code:     ErrCodeInvalidDocument,
		Message:  fmt.Sprintf("invalid document: %s", message),
		Hint:     "Ensure the file is valid JSON or YAML",
	}
}

// NewPathError creates an error for a path expression that does not parse.
func NewPathError(field, location, path string, err error) *FieldError {
	return &FieldError{
		Field:    field,
		Location: location,
		Code:     ErrCodePath,
		Message:  err.Error(),
		Received: path,
		Hint:     "Path expressions look like $.items[*].id or $['a b']",
	}
}

// NewPatternError creates an error for a regular expression that does not compile.
func NewPatternError(field, location, pattern string, err error) *FieldError {
	return &FieldError{
		Field:    field,
		Location: location,
		Code:     ErrCodePattern,
		Message:  fmt.Sprintf("invalid regular expression: %v", err),
		Received: pattern,
	}
}

// NewFormatError creates an error for a date or time pattern that cannot be used.
func NewFormatError(field, location, format string, err error) *FieldError {
	return &FieldError{
		Field:    field,
		Location: location,
		Code:     ErrCodeFormat,
		Message:  fmt.Sprintf("invalid date/time pattern: %v", err),
		Received: format,
		Hint:     "Use Java DateTimeFormatter letters, for example yyyy-MM-dd'T'HH:mm:ss",
	}
}
