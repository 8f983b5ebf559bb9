package pathexp

import (
	"strconv"
	"strings"

	"github.com/ohler55/ojg/jp"
)

// Expression is an immutable, parsed path expression.
//
// The zero value is the empty expression. Two expressions are equal when their
// token sequences are equal; String returns a canonical form that can be used
// as a map key with the same semantics.
type Expression struct {
	tokens []Token
}

// New builds an expression from tokens.
func New(tokens ...Token) Expression {
	return Expression{tokens: append([]Token(nil), tokens...)}
}

// RootExpression returns the expression "$".
func RootExpression() Expression {
	return Expression{tokens: []Token{RootToken()}}
}

// Tokens returns a copy of the token sequence.
func (e Expression) Tokens() []Token {
	return append([]Token(nil), e.tokens...)
}

// Len returns the number of tokens, including the root marker.
func (e Expression) Len() int { return len(e.tokens) }

// IsEmpty reports whether the expression has no tokens.
func (e Expression) IsEmpty() bool { return len(e.tokens) == 0 }

// IsRoot reports whether the expression is just the root marker.
func (e Expression) IsRoot() bool {
	return len(e.tokens) == 1 && e.tokens[0].Kind == Root
}

// IsWildcard reports whether the last token is the key wildcard.
func (e Expression) IsWildcard() bool {
	return len(e.tokens) > 0 && e.tokens[len(e.tokens)-1].Kind == Star
}

// Equal reports whether both expressions have the same tokens.
func (e Expression) Equal(other Expression) bool {
	if len(e.tokens) != len(other.tokens) {
		return false
	}
	for i := range e.tokens {
		if e.tokens[i] != other.tokens[i] {
			return false
		}
	}
	return true
}

// Weight scores the expression against a concrete path such as
// []string{"$", "animals", "0", "name"}. The weight is the product of the
// per-token weights and is zero when any aligned token fails to match or the
// path is shorter than the expression. The returned length is always the
// expression length.
func (e Expression) Weight(path []string) (weight, length int) {
	length = len(e.tokens)
	if len(path) < length {
		return 0, length
	}
	weight = 1
	for i, tok := range e.tokens {
		weight *= tok.weight(path[i])
		if weight == 0 {
			return 0, length
		}
	}
	return weight, length
}

// MatchesPath reports whether the expression addresses exactly the given
// concrete path: the lengths are equal and every token matches.
func (e Expression) MatchesPath(path []string) bool {
	w, l := e.Weight(path)
	return w > 0 && l == len(path)
}

// MatchesPathPrefix reports whether the expression addresses the given path
// or one of its ancestors.
func (e Expression) MatchesPathPrefix(path []string) bool {
	w, _ := e.Weight(path)
	return w > 0
}

// FirstField returns the field name of an expression made of the root and a
// single field, such as "$.accept" or "$['X-Id']". Header and query
// parameter rules and generators are keyed this way.
func (e Expression) FirstField() (string, bool) {
	if len(e.tokens) != 2 || e.tokens[0].Kind != Root || e.tokens[1].Kind != Field {
		return "", false
	}
	return e.tokens[1].Name, true
}

// Join returns a new expression with a field token appended. A "*" name
// appends the key wildcard.
func (e Expression) Join(name string) Expression {
	if name == "*" {
		return e.push(StarToken())
	}
	return e.push(FieldToken(name))
}

// JoinIndex returns a new expression with an index token appended.
func (e Expression) JoinIndex(i int) Expression {
	return e.push(IndexToken(i))
}

// Parent returns the expression without its last token.
func (e Expression) Parent() (Expression, bool) {
	if len(e.tokens) <= 1 {
		return Expression{}, false
	}
	return Expression{tokens: append([]Token(nil), e.tokens[:len(e.tokens)-1]...)}, true
}

func (e Expression) push(tok Token) Expression {
	tokens := make([]Token, 0, len(e.tokens)+1)
	if len(e.tokens) == 0 {
		tokens = append(tokens, RootToken())
	} else {
		tokens = append(tokens, e.tokens...)
	}
	return Expression{tokens: append(tokens, tok)}
}

// String returns the canonical expression text.
func (e Expression) String() string {
	var sb strings.Builder
	for _, tok := range e.tokens {
		sb.WriteString(tok.String())
	}
	return sb.String()
}

// Key returns the canonical text used to index maps of expressions.
func (e Expression) Key() string { return e.String() }

// MarshalText implements encoding.TextMarshaler.
func (e Expression) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Expression) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// JSONPath converts the expression to an ojg JSONPath. Both wildcard kinds
// become the JSONPath wildcard.
func (e Expression) JSONPath() jp.Expr {
	x := jp.R()
	for _, tok := range e.tokens {
		switch tok.Kind {
		case Field:
			x = x.C(tok.Name)
		case Index:
			x = x.N(tok.Index)
		case Star, StarIndex:
			x = x.W()
		}
	}
	return x
}

// Segments converts a concrete path of keys and indices to the string form
// accepted by Weight and MatchesPath. Integers become index segments.
func Segments(parts ...any) []string {
	out := make([]string, 0, len(parts)+1)
	out = append(out, "$")
	for _, p := range parts {
		switch v := p.(type) {
		case string:
			out = append(out, v)
		case int:
			out = append(out, strconv.Itoa(v))
		}
	}
	return out
}
