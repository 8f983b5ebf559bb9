package generate

import (
	"fmt"
	"regexp/syntax"
	"strings"
	"unicode/utf8"
)

// stripAnchors removes one leading "^" and one unescaped trailing "$".
func stripAnchors(pattern string) string {
	pattern = strings.TrimPrefix(pattern, "^")
	if strings.HasSuffix(pattern, "$") && !strings.HasSuffix(pattern, `\$`) {
		pattern = pattern[:len(pattern)-1]
	}
	return pattern
}

// Regex returns a random string matched by pattern. Unbounded repetitions
// are unrolled at most 20 times beyond their minimum.
func (e *Engine) Regex(pattern string) (string, error) {
	re, err := syntax.Parse(stripAnchors(pattern), syntax.Perl)
	if err != nil {
		e.log.Warn("not a valid regular expression", "regex", pattern, "error", err)
		return "", fmt.Errorf("%w: could not generate a random string from %s: %w", ErrInvalidRegex, pattern, err)
	}
	var sb strings.Builder
	if err := e.sampleRegexp(&sb, re); err != nil {
		return "", fmt.Errorf("%w: could not generate a random string from %s: %w", ErrInvalidRegex, pattern, err)
	}
	return sb.String(), nil
}

func (e *Engine) sampleRegexp(sb *strings.Builder, re *syntax.Regexp) error {
	switch re.Op {
	case syntax.OpNoMatch:
		return fmt.Errorf("expression %q matches nothing", re.String())
	case syntax.OpEmptyMatch, syntax.OpBeginLine, syntax.OpEndLine, syntax.OpBeginText,
		syntax.OpEndText, syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return nil
	case syntax.OpLiteral:
		for _, r := range re.Rune {
			sb.WriteRune(r)
		}
		return nil
	case syntax.OpCharClass:
		r, ok := e.classRune(re.Rune)
		if !ok {
			return fmt.Errorf("character class %q is empty", re.String())
		}
		sb.WriteRune(r)
		return nil
	case syntax.OpAnyCharNotNL, syntax.OpAnyChar:
		sb.WriteRune(rune(printableLow + e.intN(printableHigh-printableLow+1)))
		return nil
	case syntax.OpCapture:
		return e.sampleRegexp(sb, re.Sub[0])
	case syntax.OpStar:
		return e.repeat(sb, re.Sub[0], 0, maxRegexRepeats)
	case syntax.OpPlus:
		return e.repeat(sb, re.Sub[0], 1, 1+maxRegexRepeats)
	case syntax.OpQuest:
		return e.repeat(sb, re.Sub[0], 0, 1)
	case syntax.OpRepeat:
		hi := re.Max
		if hi < 0 {
			hi = re.Min + maxRegexRepeats
		}
		return e.repeat(sb, re.Sub[0], re.Min, hi)
	case syntax.OpConcat:
		for _, sub := range re.Sub {
			if err := e.sampleRegexp(sb, sub); err != nil {
				return err
			}
		}
		return nil
	case syntax.OpAlternate:
		return e.sampleRegexp(sb, re.Sub[e.intN(len(re.Sub))])
	default:
		return fmt.Errorf("unsupported regular expression operator %v", re.Op)
	}
}

func (e *Engine) repeat(sb *strings.Builder, sub *syntax.Regexp, lo, hi int) error {
	n := lo + e.intN(hi-lo+1)
	for range n {
		if err := e.sampleRegexp(sb, sub); err != nil {
			return err
		}
	}
	return nil
}

// classRune picks a rune from a class given as sorted lo-hi pairs. Printable
// ASCII members are preferred so negated classes stay readable.
func (e *Engine) classRune(ranges []rune) (rune, bool) {
	if r, ok := e.pickFromRanges(ranges, printableLow, printableHigh); ok {
		return r, true
	}
	return e.pickFromRanges(ranges, 0, utf8.MaxRune)
}

func (e *Engine) pickFromRanges(ranges []rune, lo, hi rune) (rune, bool) {
	type span struct{ lo, hi rune }
	var (
		spans []span
		total int
	)
	for i := 0; i+1 < len(ranges); i += 2 {
		a, b := max(ranges[i], lo), min(ranges[i+1], hi)
		if a > b {
			continue
		}
		spans = append(spans, span{a, b})
		total += int(b-a) + 1
	}
	if total == 0 {
		return 0, false
	}
	n := e.intN(total)
	for _, s := range spans {
		size := int(s.hi-s.lo) + 1
		if n < size {
			return s.lo + rune(n), true
		}
		n -= size
	}
	return 0, false
}
