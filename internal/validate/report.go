package validate

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/courier-levels/internal/level"
)

// AdjustKind classifies a change made during normalization.
type AdjustKind string

const (
	// AdjustDefaulted means the field was absent or had the wrong type.
	AdjustDefaulted AdjustKind = "defaulted"
	// AdjustClamped means a numeric field was pulled into range.
	AdjustClamped AdjustKind = "clamped"
	// AdjustTruncated means a list was cut to its maximum length.
	AdjustTruncated AdjustKind = "truncated"
	// AdjustRegenerated means a structure was replaced procedurally.
	AdjustRegenerated AdjustKind = "regenerated"
)

// Adjustment describes one change made to a candidate.
type Adjustment struct {
	Field  string     `json:"field"`
	Kind   AdjustKind `json:"kind"`
	Detail string     `json:"detail"`
}

func (a Adjustment) String() string {
	return fmt.Sprintf("%s %s: %s", a.Field, a.Kind, a.Detail)
}

// report collects adjustments. A nil report discards them.
type report struct {
	items []Adjustment
}

func (r *report) add(field string, kind AdjustKind, detail string) {
	if r == nil {
		return
	}
	r.items = append(r.items, Adjustment{Field: field, Kind: kind, Detail: detail})
}

func (r *report) float(rec level.Candidate, key string, fallback, min, max float64, prefix ...string) float64 {
	raw, present := rec[key]
	out := level.ClampFloat(raw, fallback, min, max)
	r.note(fieldName(prefix, key), raw, present, out)
	return out
}

func (r *report) integer(rec level.Candidate, key string, fallback, min, max int, prefix ...string) int {
	raw, present := rec[key]
	out := level.ClampInt(raw, fallback, min, max)
	r.note(fieldName(prefix, key), raw, present, float64(out))
	return out
}

func (r *report) note(field string, raw any, present bool, out float64) {
	if r == nil {
		return
	}
	v, ok := level.Number(raw)
	switch {
	case !present:
		r.add(field, AdjustDefaulted, fmt.Sprintf("missing, using %g", out))
	case !ok:
		r.add(field, AdjustDefaulted, fmt.Sprintf("not a number (%T), using %g", raw, out))
	case v != out:
		r.add(field, AdjustClamped, fmt.Sprintf("%g -> %g", v, out))
	}
}

func (r *report) flag(rec level.Candidate, key string, fallback bool) bool {
	raw, present := rec[key]
	out := level.Flag(raw, fallback)
	if _, ok := raw.(bool); !ok {
		if present {
			r.add(key, AdjustDefaulted, fmt.Sprintf("not a boolean (%T), using %t", raw, out))
		} else {
			r.add(key, AdjustDefaulted, fmt.Sprintf("missing, using %t", out))
		}
	}
	return out
}

func (r *report) text(rec level.Candidate, key, fallback string, prefix ...string) string {
	raw, present := rec[key]
	out := level.Text(raw, fallback)
	if s, ok := raw.(string); !ok || strings.TrimSpace(s) == "" {
		field := fieldName(prefix, key)
		if present {
			r.add(field, AdjustDefaulted, fmt.Sprintf("blank or not a string, using %q", out))
		} else {
			r.add(field, AdjustDefaulted, fmt.Sprintf("missing, using %q", out))
		}
	}
	return out
}

func fieldName(prefix []string, key string) string {
	return strings.Join(prefix, "") + key
}
