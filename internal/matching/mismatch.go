package matching

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMismatch is wrapped by every error returned from MatchValue, MatchString
// and MatchRules.
var ErrMismatch = errors.New("mismatch")

func mismatchf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMismatch, fmt.Sprintf(format, args...))
}

// reason strips the sentinel prefix from a mismatch error.
func reason(err error) string {
	return strings.TrimPrefix(err.Error(), ErrMismatch.Error()+": ")
}

// Mismatch describes one location where the actual value does not satisfy
// the expected value or its rules.
type Mismatch struct {
	Path     string `json:"path"`
	Expected any    `json:"expected,omitempty"`
	Actual   any    `json:"actual,omitempty"`
	Reason   string `json:"reason"`
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: %s", m.Path, m.Reason)
}

// joinPath renders a concrete path the way mismatches report it.
func joinPath(path []string) string {
	return strings.Join(path, ".")
}

// mismatches turns the reasons of a (possibly joined) error into Mismatch
// entries at path.
func mismatches(path []string, expected, actual any, err error) []Mismatch {
	if err == nil {
		return nil
	}
	var errs []error
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	} else {
		errs = []error{err}
	}
	out := make([]Mismatch, 0, len(errs))
	p := joinPath(path)
	for _, e := range errs {
		out = append(out, Mismatch{Path: p, Expected: expected, Actual: actual, Reason: reason(e)})
	}
	return out
}
