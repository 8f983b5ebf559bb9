// Package javatime translates Java style date and time patterns, such as
// "yyyy-MM-dd'T'HH:mm:ss.SSSZ", into Go reference layouts.
//
// Only letters with a Go layout equivalent are supported. Week based fields,
// quarters, zone ids and nanosecond fields are rejected with
// ErrUnsupportedPattern rather than approximated.
package javatime

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidPattern is returned for malformed patterns.
	ErrInvalidPattern = errors.New("invalid date-time pattern")
	// ErrUnsupportedPattern is returned for pattern letters without a Go layout equivalent.
	ErrUnsupportedPattern = errors.New("unsupported date-time pattern")
)

// Layout returns the Go layout for a Java pattern.
func Layout(pattern string) (string, error) {
	var out strings.Builder
	runes := []rune(pattern)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case r == '\'':
			lit, next, err := quoted(runes, i, pattern)
			if err != nil {
				return "", err
			}
			if err := literal(&out, lit, pattern); err != nil {
				return "", err
			}
			i = next
		case isLetter(r):
			n := 1
			for i+n < len(runes) && runes[i+n] == r {
				n++
			}
			tok, err := field(r, n, out.String(), pattern)
			if err != nil {
				return "", err
			}
			out.WriteString(tok)
			i += n
		default:
			if err := literal(&out, string(r), pattern); err != nil {
				return "", err
			}
			i++
		}
	}
	return out.String(), nil
}

// Format formats t with a Java pattern.
func Format(t time.Time, pattern string) (string, error) {
	layout, err := Layout(pattern)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}

// Parse parses value with a Java pattern. Values without zone information
// are interpreted as UTC.
func Parse(value, pattern string) (time.Time, error) {
	layout, err := Layout(pattern)
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(layout, value)
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// quoted reads a quoted literal starting at runes[i]. Two single quotes are
// an escaped quote, both inside and outside of a quoted section.
func quoted(runes []rune, i int, pattern string) (string, int, error) {
	if i+1 < len(runes) && runes[i+1] == '\'' {
		return "'", i + 2, nil
	}
	var sb strings.Builder
	for j := i + 1; j < len(runes); j++ {
		if runes[j] != '\'' {
			sb.WriteRune(runes[j])
			continue
		}
		if j+1 < len(runes) && runes[j+1] == '\'' {
			sb.WriteRune('\'')
			j++
			continue
		}
		return sb.String(), j + 1, nil
	}
	return "", 0, fmt.Errorf("%w: unterminated quote in %q", ErrInvalidPattern, pattern)
}

var layoutWords = []string{"Jan", "Mon", "MST", "PM", "pm"}

// literal writes text that must pass through a Go layout unchanged.
func literal(out *strings.Builder, text, pattern string) error {
	if strings.ContainsAny(text, "0123456789_") {
		return fmt.Errorf("%w: literal %q in %q", ErrUnsupportedPattern, text, pattern)
	}
	for _, w := range layoutWords {
		if strings.Contains(text, w) {
			return fmt.Errorf("%w: literal %q in %q", ErrUnsupportedPattern, text, pattern)
		}
	}
	out.WriteString(text)
	return nil
}

func field(r rune, n int, prefix, pattern string) (string, error) {
	switch r {
	case 'G':
		return "AD", nil
	case 'y', 'u', 'Y':
		if n == 2 {
			return "06", nil
		}
		return "2006", nil
	case 'M', 'L':
		switch n {
		case 1:
			return "1", nil
		case 2:
			return "01", nil
		case 3:
			return "Jan", nil
		default:
			return "January", nil
		}
	case 'd':
		switch n {
		case 1:
			return "2", nil
		case 2:
			return "02", nil
		}
	case 'D':
		if n <= 3 {
			return "002", nil
		}
	case 'E':
		if n >= 4 {
			return "Monday", nil
		}
		return "Mon", nil
	case 'a':
		return "PM", nil
	case 'H', 'k':
		if n <= 2 {
			return "15", nil
		}
	case 'h', 'K':
		switch n {
		case 1:
			return "3", nil
		case 2:
			return "03", nil
		}
	case 'm':
		switch n {
		case 1:
			return "4", nil
		case 2:
			return "04", nil
		}
	case 's':
		switch n {
		case 1:
			return "5", nil
		case 2:
			return "05", nil
		}
	case 'S':
		// Go only recognises fractional seconds directly after a separator.
		if strings.HasSuffix(prefix, ".") || strings.HasSuffix(prefix, ",") {
			return strings.Repeat("0", min(n, 9)), nil
		}
		return "", fmt.Errorf("%w: fraction of second without a preceding '.' in %q", ErrUnsupportedPattern, pattern)
	case 'z':
		return "MST", nil
	case 'Z':
		if n <= 3 {
			return "-0700", nil
		}
		return "-07:00", nil
	case 'X':
		switch n {
		case 1:
			return "Z07", nil
		case 2:
			return "Z0700", nil
		default:
			return "Z07:00", nil
		}
	case 'x':
		switch n {
		case 1:
			return "-07", nil
		case 2:
			return "-0700", nil
		default:
			return "-07:00", nil
		}
	case 'w', 'W', 'F', 'e', 'c', 'Q', 'q', 'n', 'N', 'A', 'V', 'O', 'B':
		return "", fmt.Errorf("%w: pattern letter '%c' in %q", ErrUnsupportedPattern, r, pattern)
	default:
		return "", fmt.Errorf("%w: illegal pattern character '%c' in %q", ErrInvalidPattern, r, pattern)
	}
	return "", fmt.Errorf("%w: too many pattern letters '%c' in %q", ErrInvalidPattern, r, pattern)
}
