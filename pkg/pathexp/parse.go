package pathexp

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
)

// ErrInvalidExpression is wrapped by every parse failure.
var ErrInvalidExpression = errors.New("invalid path expression")

// parser is a single pass scanner over the runes of an expression.
type parser struct {
	text   string
	runes  []rune
	pos    int
	tokens []Token
}

// Parse tokenizes a path expression. The empty string parses to an empty
// expression. Text that starts with an identifier is treated as if it were
// prefixed with "$.".
func Parse(text string) (Expression, error) {
	p := &parser{text: text, runes: []rune(text)}
	if err := p.parse(); err != nil {
		return Expression{}, err
	}
	return Expression{tokens: p.tokens}, nil
}

// MustParse is like Parse but panics on error. It is intended for
// expressions that are fixed at compile time.
func MustParse(text string) Expression {
	e, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return e
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidExpression, fmt.Sprintf(format, args...))
}

func (p *parser) peek() (rune, bool) {
	if p.pos >= len(p.runes) {
		return 0, false
	}
	return p.runes[p.pos], true
}

func (p *parser) next() (rune, int, bool) {
	if p.pos >= len(p.runes) {
		return 0, p.pos, false
	}
	r := p.runes[p.pos]
	p.pos++
	return r, p.pos - 1, true
}

func isIdentifierRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == ':' || r == '#' || r == '@'
}

func (p *parser) parse() error {
	r, _, ok := p.next()
	if !ok {
		return nil
	}
	switch {
	case r == '$':
		p.tokens = append(p.tokens, RootToken())
	case unicode.IsLetter(r) || unicode.IsDigit(r):
		p.tokens = append(p.tokens, RootToken())
		if err := p.identifier(r); err != nil {
			return err
		}
	default:
		return p.errorf("Path expression %q does not start with a root marker \"$\"", p.text)
	}

	for {
		r, at, ok := p.next()
		if !ok {
			return nil
		}
		var err error
		switch r {
		case '.':
			err = p.dotPath(at)
		case '[':
			err = p.bracketPath(at)
		default:
			err = p.errorf("Expected a \".\" or \"[\" instead of %q in path expression %q at index %d", string(r), p.text, at)
		}
		if err != nil {
			return err
		}
	}
}

// dotPath -> identifier | "*"
func (p *parser) dotPath(dot int) error {
	r, at, ok := p.next()
	if !ok {
		return p.errorf("Expected a path after \".\" in path expression %q at index %d", p.text, dot)
	}
	switch {
	case r == '*':
		p.tokens = append(p.tokens, StarToken())
		return nil
	case isIdentifierRune(r):
		return p.identifier(r)
	default:
		return p.errorf("Expected either a \"*\" or path identifier in path expression %q at index %d", p.text, at)
	}
}

func (p *parser) identifier(first rune) error {
	id := []rune{first}
	for {
		r, ok := p.peek()
		if !ok || r == '.' || r == '\'' || r == '[' {
			break
		}
		if !isIdentifierRune(r) {
			return p.errorf("%q is not allowed in an identifier in path expression %q at index %d", string(r), p.text, p.pos)
		}
		id = append(id, r)
		p.pos++
	}
	p.tokens = append(p.tokens, FieldToken(string(id)))
	return nil
}

// bracketPath -> ( "'" string "'" | digits | "*" ) "]"
func (p *parser) bracketPath(open int) error {
	r, ok := p.peek()
	if !ok {
		return p.errorf("Expected a \"'\" (single quote) or a digit in path expression %q after index %d", p.text, open)
	}
	switch {
	case r == '\'':
		p.pos++
		if err := p.stringPath(p.pos - 1); err != nil {
			return err
		}
	case r >= '0' && r <= '9':
		if err := p.indexPath(); err != nil {
			return err
		}
	case r == '*':
		p.pos++
		p.tokens = append(p.tokens, StarIndexToken())
	case r == ']':
		return p.errorf("Empty bracket expressions are not allowed in path expression %q at index %d", p.text, p.pos)
	default:
		return p.errorf("Indexes can only consist of numbers or a \"*\", found %q instead in path expression %q at index %d", string(r), p.text, p.pos)
	}

	r, at, ok := p.next()
	if !ok {
		return p.errorf("Unterminated brackets in path expression %q at index %d", p.text, len(p.runes)-1)
	}
	if r != ']' {
		return p.errorf("Unterminated brackets, found %q instead of \"]\" in path expression %q at index %d", string(r), p.text, at)
	}
	return nil
}

func (p *parser) stringPath(quote int) error {
	var id []rune
	for {
		r, at, ok := p.next()
		if !ok {
			return p.errorf("Unterminated string in path expression %q at index %d", p.text, max(quote, len(p.runes)-1))
		}
		switch r {
		case '\\':
			escaped, _, ok := p.next()
			if !ok {
				return p.errorf("Unterminated string in path expression %q at index %d", p.text, at)
			}
			id = append(id, escaped)
		case '\'':
			if len(id) == 0 {
				return p.errorf("Empty strings are not allowed in path expression %q at index %d", p.text, at)
			}
			p.tokens = append(p.tokens, FieldToken(string(id)))
			return nil
		default:
			id = append(id, r)
		}
	}
}

func (p *parser) indexPath() error {
	start := p.pos
	for {
		r, ok := p.peek()
		if !ok || r < '0' || r > '9' {
			break
		}
		p.pos++
	}
	if r, ok := p.peek(); ok && r != ']' {
		return p.errorf("Indexes can only consist of numbers or a \"*\", found %q instead in path expression %q at index %d", string(r), p.text, p.pos)
	}
	n, err := strconv.Atoi(string(p.runes[start:p.pos]))
	if err != nil {
		return p.errorf("index %q in path expression %q is out of range", string(p.runes[start:p.pos]), p.text)
	}
	p.tokens = append(p.tokens, IndexToken(n))
	return nil
}
