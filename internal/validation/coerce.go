package validation

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// coerce converts v toward t where the conversion is lossless. Values that
// cannot be converted are returned unchanged and fail the type check later.
func coerce(v any, t Type) any {
	switch t {
	case Int:
		return toInt(v)
	case Number:
		return toNumber(v)
	case Bool:
		return toBool(v)
	default:
		return v
	}
}

func toInt(v any) any {
	switch x := v.(type) {
	case int64:
		return x
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case float64:
		if isIntegral(x) {
			return int64(x)
		}
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n
		}
		if f, err := x.Float64(); err == nil && isIntegral(f) {
			return int64(f)
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64); err == nil {
			return n
		}
	}
	return v
}

func toNumber(v any) any {
	switch x := v.(type) {
	case float64:
		return x
	case int64:
		return float64(x)
	case int:
		return float64(x)
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return f
		}
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return v
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return f
		}
	}
	return v
}

func toBool(v any) any {
	if s, ok := v.(string); ok {
		switch strings.TrimSpace(s) {
		case "true":
			return true
		case "false":
			return false
		}
	}
	return v
}

// isIntegral reports whether f converts to int64 without loss. float64(MaxInt64)
// rounds up to 2^63, so the upper bound must be exclusive.
func isIntegral(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f) &&
		f >= math.MinInt64 && f < -math.MinInt64
}

// hasType reports whether the coerced value matches t.
func hasType(v any, t Type) bool {
	switch t {
	case String:
		_, ok := v.(string)
		return ok
	case Int:
		_, ok := v.(int64)
		return ok
	case Number:
		_, ok := v.(float64)
		return ok
	case Bool:
		_, ok := v.(bool)
		return ok
	default:
		return false
	}
}
