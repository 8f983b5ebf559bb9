package generate

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Date and time expressions adjust a base instant. A date expression is an
// optional base (now, today, yesterday, tomorrow) followed by adjustments
// such as "+ 2 weeks" or "next monday". A time expression is an optional
// base (now, midnight, noon, "3 o'clock pm") followed by adjustments such
// as "- 4 minutes" or "last hour". A date-time expression joins both with
// "@", for example "tomorrow @ noon + 1 hour".

type exprToken struct {
	text string
	num  int
	isNo bool
}

func tokenizeExpression(s string) ([]exprToken, error) {
	var out []exprToken
	runes := []rune(strings.ToLower(s))
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '+' || r == '-' || r == '@':
			out = append(out, exprToken{text: string(r)})
			i++
		case unicode.IsDigit(r):
			j := i
			for j < len(runes) && unicode.IsDigit(runes[j]) {
				j++
			}
			n, err := strconv.Atoi(string(runes[i:j]))
			if err != nil {
				return nil, err
			}
			out = append(out, exprToken{text: string(runes[i:j]), num: n, isNo: true})
			i = j
		case unicode.IsLetter(r):
			j := i
			for j < len(runes) && (unicode.IsLetter(runes[j]) || runes[j] == '\'' || runes[j] == '’') {
				j++
			}
			out = append(out, exprToken{text: strings.ReplaceAll(string(runes[i:j]), "’", "'")})
			i = j
		default:
			return nil, fmt.Errorf("unexpected character %q", r)
		}
	}
	return out, nil
}

type exprParser struct {
	text   string
	tokens []exprToken
	pos    int
}

func (p *exprParser) peek() (exprToken, bool) {
	if p.pos >= len(p.tokens) {
		return exprToken{}, false
	}
	return p.tokens[p.pos], true
}

func (p *exprParser) next() (exprToken, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}

func (p *exprParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w %q: %s", ErrInvalidExpression, p.text, fmt.Sprintf(format, args...))
}

var weekdays = map[string]time.Weekday{
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
	"sunday": time.Sunday, "sun": time.Sunday,
}

var months = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may": time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

func dateUnit(word string) (string, bool) {
	switch strings.TrimSuffix(word, "s") {
	case "day":
		return "day", true
	case "week":
		return "week", true
	case "fortnight":
		return "fortnight", true
	case "month":
		return "month", true
	case "year":
		return "year", true
	}
	return "", false
}

func timeUnit(word string) (time.Duration, bool) {
	switch strings.TrimSuffix(word, "s") {
	case "hour":
		return time.Hour, true
	case "minute":
		return time.Minute, true
	case "second":
		return time.Second, true
	case "millisecond":
		return time.Millisecond, true
	}
	return 0, false
}

// ExecuteDateExpression applies a date expression to base.
func ExecuteDateExpression(base time.Time, expression string) (time.Time, error) {
	p, err := newExprParser(expression)
	if err != nil {
		return base, err
	}
	t, err := p.parseDate(base)
	if err != nil {
		return base, err
	}
	if tok, ok := p.peek(); ok {
		return base, p.errorf("unexpected %q", tok.text)
	}
	return t, nil
}

// ExecuteTimeExpression applies a time expression to base. A leading "@" is
// accepted.
func ExecuteTimeExpression(base time.Time, expression string) (time.Time, error) {
	p, err := newExprParser(expression)
	if err != nil {
		return base, err
	}
	if tok, ok := p.peek(); ok && tok.text == "@" {
		p.pos++
	}
	t, err := p.parseTime(base)
	if err != nil {
		return base, err
	}
	if tok, ok := p.peek(); ok {
		return base, p.errorf("unexpected %q", tok.text)
	}
	return t, nil
}

// ExecuteDateTimeExpression applies "date @ time" to base. Either part may
// be omitted.
func ExecuteDateTimeExpression(base time.Time, expression string) (time.Time, error) {
	p, err := newExprParser(expression)
	if err != nil {
		return base, err
	}
	t, err := p.parseDate(base)
	if err != nil {
		return base, err
	}
	if tok, ok := p.peek(); ok && tok.text == "@" {
		p.pos++
		if t, err = p.parseTime(t); err != nil {
			return base, err
		}
	}
	if tok, ok := p.peek(); ok {
		return base, p.errorf("unexpected %q", tok.text)
	}
	return t, nil
}

func newExprParser(expression string) (*exprParser, error) {
	tokens, err := tokenizeExpression(expression)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidExpression, expression, err)
	}
	return &exprParser{text: expression, tokens: tokens}, nil
}

func (p *exprParser) parseDate(t time.Time) (time.Time, error) {
	if tok, ok := p.peek(); ok {
		switch tok.text {
		case "now", "today":
			p.pos++
		case "yesterday":
			p.pos++
			t = t.AddDate(0, 0, -1)
		case "tomorrow":
			p.pos++
			t = t.AddDate(0, 0, 1)
		}
	}
	for {
		tok, ok := p.peek()
		if !ok || tok.text == "@" {
			return t, nil
		}
		p.pos++
		switch tok.text {
		case "+", "-":
			n, unit, err := p.amount(func(w string) bool { _, ok := dateUnit(w); return ok })
			if err != nil {
				return t, err
			}
			if tok.text == "-" {
				n = -n
			}
			u, _ := dateUnit(unit)
			t = shiftDate(t, u, n)
		case "next", "last":
			word, ok := p.next()
			if !ok {
				return t, p.errorf("expected a unit, weekday or month after %q", tok.text)
			}
			dir := 1
			if tok.text == "last" {
				dir = -1
			}
			switch {
			case isDateUnit(word.text):
				u, _ := dateUnit(word.text)
				t = shiftDate(t, u, dir)
			case isWeekday(word.text):
				wd := weekdays[word.text]
				t = rollUntil(t, dir, func(d time.Time) bool { return d.Weekday() == wd })
			case isMonth(word.text):
				m := months[word.text]
				t = rollUntil(t, dir, func(d time.Time) bool { return d.Month() == m })
				if dir < 0 {
					t = t.AddDate(0, 0, 1-t.Day())
				}
			default:
				return t, p.errorf("unknown offset %q", word.text)
			}
		default:
			return t, p.errorf("unexpected %q", tok.text)
		}
	}
}

func isDateUnit(w string) bool { _, ok := dateUnit(w); return ok }
func isWeekday(w string) bool  { _, ok := weekdays[w]; return ok }
func isMonth(w string) bool    { _, ok := months[w]; return ok }

// amount reads "N unit" after an operator.
func (p *exprParser) amount(valid func(string) bool) (int, string, error) {
	num, ok := p.next()
	if !ok || !num.isNo {
		return 0, "", p.errorf("expected a number")
	}
	unit, ok := p.next()
	if !ok || !valid(unit.text) {
		return 0, "", p.errorf("expected a unit after %d", num.num)
	}
	return num.num, unit.text, nil
}

func shiftDate(t time.Time, unit string, n int) time.Time {
	switch unit {
	case "day":
		return t.AddDate(0, 0, n)
	case "week":
		return t.AddDate(0, 0, 7*n)
	case "fortnight":
		return t.AddDate(0, 0, 14*n)
	case "month":
		return rollMonth(t, n)
	case "year":
		y := t.Year() + n
		if t.Month() == time.February && t.Day() == 29 && !isLeap(y) {
			return t
		}
		return time.Date(y, t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	}
	return t
}

// rollMonth moves t by n calendar months, keeping the day of month
// when the target month has it. Otherwise forward moves land on the first
// and backward moves on the last day of the target month.
func rollMonth(t time.Time, n int) time.Time {
	if n == 0 {
		return t
	}
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	days := daysIn(first)
	switch {
	case t.Day() <= days:
		return first.AddDate(0, 0, t.Day()-1)
	case n > 0:
		return first
	default:
		return first.AddDate(0, 0, days-1)
	}
}

func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func isLeap(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

// rollUntil moves t by whole days in dir until pred no longer holds and
// then until it holds again, so "next monday" on a Monday is a week later.
func rollUntil(t time.Time, dir int, pred func(time.Time) bool) time.Time {
	for pred(t) {
		t = t.AddDate(0, 0, dir)
	}
	for !pred(t) {
		t = t.AddDate(0, 0, dir)
	}
	return t
}

func (p *exprParser) parseTime(t time.Time) (time.Time, error) {
	t, err := p.timeBase(t)
	if err != nil {
		return t, err
	}
	for {
		tok, ok := p.next()
		if !ok {
			return t, nil
		}
		switch tok.text {
		case "+", "-":
			n, unit, err := p.amount(func(w string) bool { _, ok := timeUnit(w); return ok })
			if err != nil {
				return t, err
			}
			d, _ := timeUnit(unit)
			if tok.text == "-" {
				n = -n
			}
			t = t.Add(time.Duration(n) * d)
		case "next", "last":
			word, ok := p.next()
			d, valid := timeUnit(word.text)
			if !ok || !valid {
				return t, p.errorf("expected a time unit after %q", tok.text)
			}
			if tok.text == "last" {
				d = -d
			}
			t = t.Add(d)
		default:
			return t, p.errorf("unexpected %q", tok.text)
		}
	}
}

func (p *exprParser) timeBase(t time.Time) (time.Time, error) {
	tok, ok := p.peek()
	if !ok {
		return t, nil
	}
	at := func(hour int) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
	}
	switch {
	case tok.text == "now":
		p.pos++
		return t, nil
	case tok.text == "midnight":
		p.pos++
		return at(0), nil
	case tok.text == "noon":
		p.pos++
		return at(12), nil
	case tok.isNo:
		p.pos++
		clock, ok := p.next()
		if !ok || (clock.text != "o'clock" && clock.text != "oclock") {
			return t, p.errorf("expected o'clock after %d", tok.num)
		}
		if tok.num < 1 || tok.num > 12 {
			return t, p.errorf("%d is an invalid hour of the day", tok.num)
		}
		if ampm, ok := p.peek(); ok && (ampm.text == "am" || ampm.text == "pm") {
			p.pos++
			if ampm.text == "pm" && tok.num < 12 {
				return at(tok.num + 12), nil
			}
			return at(tok.num), nil
		}
		// Without am or pm the next occurrence of the hour is used.
		switch {
		case t.Hour() < tok.num:
			return at(tok.num), nil
		case t.Hour() < tok.num+12:
			return at(tok.num + 12), nil
		default:
			return at(tok.num + 24), nil
		}
	}
	return t, nil
}
