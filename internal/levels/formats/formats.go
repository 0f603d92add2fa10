// Package formats provides pluggable level file format parsers. Parsers
// return untrusted candidates; nothing here checks ranges.
package formats

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/courier-levels/internal/level"
)

// ErrNotObject is returned when a file's top level is not a mapping.
var ErrNotObject = errors.New("level file must contain a single object")

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (level.Candidate, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return toCandidate(doc)
}

// ParseJSON parses a JSON level file.
func ParseJSON(data []byte) (level.Candidate, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil, ErrNotObject
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return level.Candidate(doc), nil
}

func toCandidate(doc any) (level.Candidate, error) {
	switch doc.(type) {
	case map[string]any, map[any]any:
		return level.AsRecord(doc), nil
	}
	return nil, ErrNotObject
}

// Parse routes data to the parser for ext.
func Parse(data []byte, ext string) (level.Candidate, error) {
	switch ext {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".json":
		return ParseJSON(data)
	default:
		return nil, fmt.Errorf("unsupported extension: %s", ext)
	}
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".json"}
}
