package contract

import (
	"encoding/json"
	"math"
	"strconv"
)

// toInt converts a decoded JSON or YAML scalar to an int.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		if f, err := n.Float64(); err == nil {
			return int(f), true
		}
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i, true
		}
	}
	return 0, false
}

// intAttr returns the integer attribute or def when it is absent or invalid.
func intAttr(attrs map[string]any, key string, def int) int {
	if v, ok := attrs[key]; ok {
		if n, ok := toInt(v); ok {
			return n
		}
	}
	return def
}

// toString renders a scalar the way contract documents expect: strings as
// themselves and everything else in JSON form.
func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		data, err := json.Marshal(s)
		if err != nil {
			return ""
		}
		return string(data)
	}
}

// stringAttr returns a string attribute and whether it was present.
func stringAttr(attrs map[string]any, key string) (string, bool) {
	v, ok := attrs[key]
	if !ok || v == nil {
		return "", false
	}
	return toString(v), true
}

// asObject normalizes decoded objects. YAML documents decode nested maps as
// map[string]any already, so only the JSON shape needs a check.
func asObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}
