package cli

import "errors"

// Common CLI errors
var (
	ErrInvalidDocuments = errors.New("one or more documents are invalid")
	ErrBodyMismatch     = errors.New("actual body does not match the expected body")
	ErrNoGenerators     = errors.New("no generators given: use --generators or list documents in the configuration")
	ErrInvalidContext   = errors.New("context values must be given as key=value")
)
