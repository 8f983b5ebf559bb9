package generate

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/getmockd/pactcore/pkg/contract"
)

// lookup finds key in ctx. Keys that are not present verbatim but look like
// member or index access ("user.id", "items[0]") are evaluated as
// expressions over the context.
func lookup(ctx Context, key string) (any, bool) {
	if v, ok := ctx[key]; ok {
		return v, true
	}
	if !strings.ContainsAny(key, ".[") {
		return nil, false
	}
	v, err := expr.Eval(key, map[string]any(ctx))
	if err != nil || v == nil {
		return nil, false
	}
	return v, true
}

// textOf renders a context value for interpolation. Strings are used as is,
// anything else as JSON text.
func textOf(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// Interpolate replaces every ${name} in s with the context value of name.
// Unknown names are replaced with nothing.
func Interpolate(s string, ctx Context) (string, error) {
	var sb strings.Builder
	rest := s
	for {
		start := strings.Index(rest, "${")
		if start < 0 {
			break
		}
		sb.WriteString(rest[:start])
		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			return "", fmt.Errorf("%w in expression string '%s'", ErrMissingClosingBrace, s)
		}
		end += start
		if name := rest[start+2 : end]; name != "" {
			if v, ok := lookup(ctx, name); ok {
				sb.WriteString(textOf(v))
			}
		}
		rest = rest[end+1:]
	}
	sb.WriteString(rest)
	return sb.String(), nil
}

// singleReference reports whether s is exactly one "${name}".
func singleReference(s string) (string, bool) {
	if !strings.HasPrefix(s, "${") || !strings.HasSuffix(s, "}") {
		return "", false
	}
	name := s[2 : len(s)-1]
	if name == "" || strings.Contains(name, "${") || strings.Contains(name, "}") {
		return "", false
	}
	return name, true
}

// ProviderStateValue resolves expression against ctx and converts the result
// to dataType. An expression containing "${" is interpolated, except that a
// single whole reference yields the referenced value unchanged. Any other
// expression is a lookup key that must be present.
func ProviderStateValue(expression string, ctx Context, dataType contract.DataType) (any, error) {
	var value any
	switch name, single := singleReference(expression); {
	case single:
		if v, ok := lookup(ctx, name); ok {
			value = v
		} else {
			value = ""
		}
	case strings.Contains(expression, "${"):
		s, err := Interpolate(expression, ctx)
		if err != nil {
			return nil, err
		}
		value = s
	default:
		v, ok := lookup(ctx, expression)
		if !ok {
			return nil, &MissingValueError{Key: expression}
		}
		value = v
	}
	return convert(value, dataType)
}

func convert(v any, dataType contract.DataType) (any, error) {
	switch dataType {
	case contract.DataTypeString:
		return textOf(v), nil
	case contract.DataTypeInteger:
		return toInteger(v)
	case contract.DataTypeDecimal, contract.DataTypeFloat:
		return toFloat(v)
	case contract.DataTypeBoolean:
		return toBool(v)
	default:
		return v, nil
	}
}

func toInteger(v any) (int64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		return int64(n), nil
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: number can not be generated from '%s'", ErrConversion, n)
		}
		return int64(f), nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: number can not be generated from '%s': %w", ErrConversion, n, err)
		}
		return i, nil
	}
	return 0, fmt.Errorf("%w: number can not be generated from '%s'", ErrConversion, textOf(v))
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: floating point number can not be generated from '%s'", ErrConversion, n)
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) {
			return 0, fmt.Errorf("%w: floating point number can not be generated from '%s'", ErrConversion, n)
		}
		return f, nil
	}
	return 0, fmt.Errorf("%w: number can not be generated from '%s'", ErrConversion, textOf(v))
}

func toBool(v any) (bool, error) {
	switch b := v.(type) {
	case nil:
		return false, nil
	case bool:
		return b, nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return false, fmt.Errorf("%w: boolean can not be generated from '%s'", ErrConversion, b)
		}
		return parsed, nil
	case []any, map[string]any:
		return false, fmt.Errorf("%w: boolean can not be generated from '%s'", ErrConversion, textOf(v))
	}
	f, err := toFloat(v)
	if err != nil {
		return false, err
	}
	return f > 0, nil
}
