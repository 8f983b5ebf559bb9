package generate

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/getmockd/pactcore/pkg/contract"
	"github.com/getmockd/pactcore/pkg/metrics"
)

// text produces the string form of every generator kind except
// ArrayContains.
func (e *Engine) text(g contract.Generator, ctx Context) (string, error) {
	switch g.Kind {
	case contract.GenRandomInt:
		n, err := e.intRange(g.Min, g.Max)
		if err != nil {
			return "", err
		}
		return strconv.Itoa(n), nil
	case contract.GenUUID:
		return e.UUID(g.UUIDFormat)
	case contract.GenRandomDecimal:
		return e.Decimal(g.Digits), nil
	case contract.GenRandomHexadecimal:
		return e.Hexadecimal(g.Digits), nil
	case contract.GenRandomString:
		return e.ASCIIString(g.Size), nil
	case contract.GenRegex:
		return e.Regex(g.Regex)
	case contract.GenDate, contract.GenTime, contract.GenDateTime:
		return e.dateTime(g, ctx)
	case contract.GenRandomBoolean:
		return strconv.FormatBool(e.boolean()), nil
	case contract.GenProviderState:
		v, err := ProviderStateValue(g.Expression, ctx, g.DataType)
		if err != nil {
			return "", err
		}
		return textOf(v), nil
	case contract.GenMockServerURL:
		return mockServerURL(g, ctx)
	case contract.GenArrayContains:
		return "", ErrNotAList
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupported, g.Kind)
}

// String generates a value for a string target such as a header, query
// parameter or path.
func (e *Engine) String(g contract.Generator, current string, ctx Context) (string, error) {
	s, err := e.text(g, ctx)
	e.observe(g, current, err)
	return s, err
}

// Int generates a value for an integer target such as a status code. Only
// RandomInt and ProviderState generators can produce integers.
func (e *Engine) Int(g contract.Generator, current int, ctx Context) (int, error) {
	var (
		n   int
		err error
	)
	switch g.Kind {
	case contract.GenRandomInt:
		n, err = e.intRange(g.Min, g.Max)
	case contract.GenProviderState:
		var v any
		if v, err = ProviderStateValue(g.Expression, ctx, g.DataType); err == nil {
			var i int64
			i, err = toInteger(v)
			n = int(i)
		}
	default:
		err = fmt.Errorf("%w: could not generate an integer value from %d using %s", ErrUnsupported, current, g)
	}
	e.observe(g, current, err)
	if err != nil {
		return current, err
	}
	return n, nil
}

// JSON generates a value for a decoded JSON target. RandomInt and
// RandomDecimal keep the JSON type of current: a string stays a string and
// anything else becomes a number. RandomBoolean produces a boolean and
// ProviderState the converted context value. A nil matcher never matches
// ArrayContains variants.
func (e *Engine) JSON(g contract.Generator, current any, ctx Context, matcher contract.VariantMatcher) (any, error) {
	v, err := e.jsonValue(g, current, ctx, matcher)
	e.observe(g, current, err)
	return v, err
}

func (e *Engine) jsonValue(g contract.Generator, current any, ctx Context, matcher contract.VariantMatcher) (any, error) {
	switch g.Kind {
	case contract.GenRandomInt:
		n, err := e.intRange(g.Min, g.Max)
		if err != nil {
			return nil, err
		}
		if _, ok := current.(string); ok {
			return strconv.Itoa(n), nil
		}
		return n, nil
	case contract.GenRandomDecimal:
		s := e.Decimal(g.Digits)
		if !isNumber(current) || s == "" {
			return s, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("could not generate a random decimal from %v: %w", current, err)
		}
		return f, nil
	case contract.GenRandomBoolean:
		return e.boolean(), nil
	case contract.GenProviderState:
		return ProviderStateValue(g.Expression, ctx, g.DataType)
	case contract.GenArrayContains:
		return e.arrayContains(g, current, ctx, matcher)
	}
	return e.text(g, ctx)
}

func isNumber(v any) bool {
	switch v.(type) {
	case float64, float32, int, int64, int32, uint64, json.Number:
		return true
	}
	return false
}

func (e *Engine) observe(g contract.Generator, current any, err error) {
	metrics.ObserveGeneration(g.Kind.String(), err)
	if err != nil {
		e.log.Debug("generation failed", "generator", g.String(), "current", current, "error", err)
		return
	}
	e.log.Debug("generated value", "generator", g.String())
}
