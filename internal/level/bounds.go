package level

import (
	"encoding/json"
	"math"
	"strings"
)

// ClampFloat clamps raw into [min, max]. Absent, non-numeric and NaN
// values yield fallback. Infinities clamp to the nearest bound.
func ClampFloat(raw any, fallback, min, max float64) float64 {
	v, ok := Number(raw)
	if !ok {
		return fallback
	}
	return math.Max(min, math.Min(max, v))
}

// ClampInt rounds raw to the nearest integer and clamps it into [min, max].
// Absent, non-numeric and NaN values yield fallback.
func ClampInt(raw any, fallback, min, max int) int {
	v, ok := Number(raw)
	if !ok {
		return fallback
	}
	if v <= float64(min) {
		return min
	}
	if v >= float64(max) {
		return max
	}
	return int(math.Round(v))
}

// Flag returns raw when it is a real boolean, fallback otherwise.
// An explicit false is honoured; absence is not.
func Flag(raw any, fallback bool) bool {
	if b, ok := raw.(bool); ok {
		return b
	}
	return fallback
}

// Text returns raw when it is a non-blank string, fallback otherwise.
func Text(raw any, fallback string) string {
	s, ok := raw.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// Number extracts a float from the value kinds produced by the JSON and
// YAML decoders. NaN is rejected; infinities are returned as-is.
func Number(raw any) (float64, bool) {
	var v float64
	switch n := raw.(type) {
	case float64:
		v = n
	case float32:
		v = float64(n)
	case int:
		v = float64(n)
	case int32:
		v = float64(n)
	case int64:
		v = float64(n)
	case uint:
		v = float64(n)
	case uint32:
		v = float64(n)
	case uint64:
		v = float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		v = f
	default:
		return 0, false
	}
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
