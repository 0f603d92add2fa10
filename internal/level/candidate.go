package level

// Candidate is an untrusted, partially structured level record as decoded
// from a generation response or a level file. Every key is optional and
// every value may have the wrong type; only the validate package turns a
// Candidate into a Config.
type Candidate map[string]any

// Get returns the raw value stored under key.
func (c Candidate) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c[key]
	return v, ok
}

// List returns the value under key as a slice, if it is one.
func (c Candidate) List(key string) ([]any, bool) {
	v, ok := c.Get(key)
	if !ok {
		return nil, false
	}
	return AsList(v)
}

// AsList converts a decoded value into a slice of values.
func AsList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []map[string]any:
		out := make([]any, len(l))
		for i, m := range l {
			out[i] = m
		}
		return out, true
	}
	return nil, false
}

// AsRecord converts a decoded value into a Candidate. Values that are not
// objects yield an empty record so every field falls back to its default.
func AsRecord(v any) Candidate {
	switch r := v.(type) {
	case Candidate:
		return r
	case map[string]any:
		return Candidate(r)
	case map[any]any:
		out := make(Candidate, len(r))
		for k, val := range r {
			if ks, ok := k.(string); ok {
				out[ks] = val
			}
		}
		return out
	}
	return Candidate{}
}

// OriginKind names how a level was produced.
type OriginKind string

const (
	OriginPrompt   OriginKind = "prompt"
	OriginFallback OriginKind = "fallback"
	OriginQuick    OriginKind = "quick"
	OriginFile     OriginKind = "file"
	OriginHistory  OriginKind = "history"
)

// Origin records the request a level was produced for.
type Origin struct {
	Kind   OriginKind
	Prompt string
	Tier   string
}
