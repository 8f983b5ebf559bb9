package generate

import (
	"fmt"
	"time"

	"github.com/getmockd/pactcore/pkg/contract"
	"github.com/getmockd/pactcore/pkg/javatime"
)

// Default layouts of the date and time generators.
const (
	DefaultDateLayout     = "2006-01-02"
	DefaultTimeLayout     = "15:04:05"
	DefaultDateTimeLayout = "2006-01-02T15:04:05.000-0700"
)

var baseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	DefaultDateTimeLayout,
	DefaultDateLayout,
}

// baseInstant returns the instant stored under key, or now.
func (e *Engine) baseInstant(ctx Context, key string) (time.Time, error) {
	now := e.now()
	v, ok := ctx[key]
	if !ok || v == nil {
		return now, nil
	}
	switch b := v.(type) {
	case time.Time:
		return b, nil
	case string:
		for _, layout := range baseLayouts {
			if t, err := time.ParseInLocation(layout, b, now.Location()); err == nil {
				return t, nil
			}
		}
		if t, err := time.ParseInLocation(DefaultTimeLayout, b, now.Location()); err == nil {
			return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), t.Second(), 0, now.Location()), nil
		}
	}
	return now, fmt.Errorf("%w: %s value %v is not a date-time", ErrInvalidExpression, key, v)
}

// dateTime generates Date, Time and DateTime values.
func (e *Engine) dateTime(g contract.Generator, ctx Context) (string, error) {
	var (
		key    string
		layout string
		exec   func(time.Time, string) (time.Time, error)
		what   string
	)
	switch g.Kind {
	case contract.GenDate:
		key, layout, exec, what = "baseDate", DefaultDateLayout, ExecuteDateExpression, "date"
	case contract.GenTime:
		key, layout, exec, what = "baseTime", DefaultTimeLayout, ExecuteTimeExpression, "time"
	default:
		key, layout, exec, what = "baseDateTime", DefaultDateTimeLayout, ExecuteDateTimeExpression, "date-time"
	}

	base, err := e.baseInstant(ctx, key)
	if err != nil {
		return "", err
	}
	t, err := exec(base, g.Expression)
	if err != nil {
		return "", err
	}
	if g.Format == "" {
		return t.Format(layout), nil
	}
	s, err := javatime.Format(t, g.Format)
	if err != nil {
		e.log.Warn("date-time format is not valid", "format", g.Format, "error", err)
		return "", fmt.Errorf("could not generate a random %s from %s: %w", what, g.Format, err)
	}
	return s, nil
}
