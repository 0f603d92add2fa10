// Package parser extracts candidate level records from free-form text
// returned by a generation service.
package parser

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/vovakirdan/courier-levels/internal/level"
)

// ExtractCandidate finds the first balanced {...} span in raw and decodes
// it as a JSON object. Leading and trailing prose (including markdown code
// fences) is ignored. It reports false when no span exists or the span does
// not decode; it never panics.
func ExtractCandidate(raw string) (level.Candidate, bool) {
	span := ObjectSpan(raw)
	if span == "" {
		return nil, false
	}

	dec := json.NewDecoder(strings.NewReader(span))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, false
	}
	if obj == nil {
		return nil, false
	}
	return level.Candidate(normalizeNumbers(obj).(map[string]any)), true
}

// ObjectSpan returns the substring from the first '{' to its matching '}'.
// Braces inside string literals are ignored. Returns "" when the text has
// no opening brace or the object is never closed.
func ObjectSpan(raw string) string {
	start := strings.IndexByte(raw, '{')
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1]
			}
		}
	}

	return ""
}

// normalizeNumbers converts json.Number values into float64 so downstream
// code sees one numeric kind. Numbers beyond float64 range become ±Inf and
// are clamped later like any other out-of-range value.
func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeNumbers(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = normalizeNumbers(val)
		}
		return t
	case json.Number:
		f, err := strconv.ParseFloat(t.String(), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return t
		}
		return f
	}
	return v
}
