package contract

import "errors"

// Sentinel errors for rule and generator construction.
var (
	// ErrUnknownRuleType is returned when a matching rule kind is not recognized.
	ErrUnknownRuleType = errors.New("not a valid matching rule type")

	// ErrUnknownGeneratorType is returned when a generator kind is not recognized.
	ErrUnknownGeneratorType = errors.New("not a valid generator type")

	// ErrMissingField is returned when a kind-specific mandatory attribute is absent.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidJSON is returned when a rule or generator node has the wrong shape.
	ErrInvalidJSON = errors.New("invalid JSON")

	// ErrUnknownCategory is returned when a category name is not recognized.
	ErrUnknownCategory = errors.New("not a valid category")
)
