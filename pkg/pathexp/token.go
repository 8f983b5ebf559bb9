package pathexp

import (
	"strconv"
)

// TokenKind identifies the kind of a path token.
type TokenKind int

// Token kinds.
const (
	// Root is the "$" marker at the start of every expression.
	Root TokenKind = iota
	// Field is a literal object key.
	Field
	// Index is a literal array index.
	Index
	// Star matches any single object key.
	Star
	// StarIndex matches any single array index.
	StarIndex
)

// String returns the name of the token kind.
func (k TokenKind) String() string {
	switch k {
	case Root:
		return "root"
	case Field:
		return "field"
	case Index:
		return "index"
	case Star:
		return "star"
	case StarIndex:
		return "star-index"
	default:
		return "unknown"
	}
}

// Token is one element of a path expression.
type Token struct {
	Kind  TokenKind `json:"kind"`
	Name  string    `json:"name,omitempty"`
	Index int       `json:"index,omitempty"`
}

// RootToken returns the root marker token.
func RootToken() Token { return Token{Kind: Root} }

// FieldToken returns a literal key token.
func FieldToken(name string) Token { return Token{Kind: Field, Name: name} }

// IndexToken returns a literal index token.
func IndexToken(i int) Token { return Token{Kind: Index, Index: i} }

// StarToken returns the key wildcard token.
func StarToken() Token { return Token{Kind: Star} }

// StarIndexToken returns the index wildcard token.
func StarIndexToken() Token { return Token{Kind: StarIndex} }

// weight scores this token against one concrete path segment. Zero means the
// token does not match the segment.
func (t Token) weight(segment string) int {
	switch t.Kind {
	case Root:
		if segment == "$" {
			return 2
		}
	case Field:
		if segment == t.Name {
			return 2
		}
	case Index:
		if n, ok := parseIndex(segment); ok && n == t.Index {
			return 2
		}
	case StarIndex:
		if _, ok := parseIndex(segment); ok {
			return 1
		}
	case Star:
		return 1
	}
	return 0
}

// String returns the token in expression syntax.
func (t Token) String() string {
	switch t.Kind {
	case Root:
		return "$"
	case Field:
		if isPlainIdentifier(t.Name) {
			return "." + t.Name
		}
		return "['" + escapeKey(t.Name) + "']"
	case Index:
		return "[" + strconv.Itoa(t.Index) + "]"
	case Star:
		return ".*"
	case StarIndex:
		return "[*]"
	default:
		return ""
	}
}

func parseIndex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// isPlainIdentifier reports whether name can be written in dot notation.
func isPlainIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

func escapeKey(name string) string {
	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		if name[i] == '\\' || name[i] == '\'' {
			out = append(out, '\\')
		}
		out = append(out, name[i])
	}
	return string(out)
}
