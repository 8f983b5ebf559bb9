package contract

import (
	"fmt"
	"strings"
)

// Category is the part of an interaction a matching rule applies to.
type Category string

// Matching rule categories.
const (
	CategoryMethod   Category = "method"
	CategoryPath     Category = "path"
	CategoryHeader   Category = "header"
	CategoryQuery    Category = "query"
	CategoryBody     Category = "body"
	CategoryStatus   Category = "status"
	CategoryContents Category = "contents"
	CategoryMetadata Category = "metadata"
)

// ParseCategory parses a rule category name. Matching is case-insensitive and
// accepts the plural "headers" used by legacy documents.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(s) {
	case "method":
		return CategoryMethod, nil
	case "path":
		return CategoryPath, nil
	case "header", "headers":
		return CategoryHeader, nil
	case "query":
		return CategoryQuery, nil
	case "body":
		return CategoryBody, nil
	case "status":
		return CategoryStatus, nil
	case "contents":
		return CategoryContents, nil
	case "metadata":
		return CategoryMetadata, nil
	default:
		return "", fmt.Errorf("%q is %w", s, ErrUnknownCategory)
	}
}

// isCollection reports whether rules in the category are keyed by a path
// into a collection (headers, query parameters, bodies).
func (c Category) isCollection() bool {
	switch c {
	case CategoryHeader, CategoryQuery, CategoryBody, CategoryContents, CategoryMetadata:
		return true
	default:
		return false
	}
}

// weighted reports whether best-rule selection ranks entries by path weight.
func (c Category) weighted() bool {
	return c == CategoryBody || c == CategoryMetadata
}

// GeneratorCategory is the part of an interaction a generator applies to.
type GeneratorCategory string

// Generator categories.
const (
	GenCategoryMethod   GeneratorCategory = "method"
	GenCategoryPath     GeneratorCategory = "path"
	GenCategoryHeader   GeneratorCategory = "header"
	GenCategoryQuery    GeneratorCategory = "query"
	GenCategoryBody     GeneratorCategory = "body"
	GenCategoryStatus   GeneratorCategory = "status"
	GenCategoryMetadata GeneratorCategory = "metadata"
)

// ParseGeneratorCategory parses a generator category name.
func ParseGeneratorCategory(s string) (GeneratorCategory, error) {
	switch strings.ToLower(s) {
	case "method":
		return GenCategoryMethod, nil
	case "path":
		return GenCategoryPath, nil
	case "header", "headers":
		return GenCategoryHeader, nil
	case "query":
		return GenCategoryQuery, nil
	case "body":
		return GenCategoryBody, nil
	case "status":
		return GenCategoryStatus, nil
	case "metadata":
		return GenCategoryMetadata, nil
	default:
		return "", fmt.Errorf("%q is %w", s, ErrUnknownCategory)
	}
}

// singleValued reports whether the category holds a single generator at the
// empty path rather than a map of sub-paths.
func (c GeneratorCategory) singleValued() bool {
	return c == GenCategoryPath || c == GenCategoryMethod || c == GenCategoryStatus
}
