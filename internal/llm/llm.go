// Package llm provides the language model backends used to design levels.
//
// Backends register themselves in init() and are created by name from the
// llm section of the configuration. Every backend implements Completer.
package llm

import (
	"context"
	"errors"
	"time"

	"github.com/vovakirdan/courier-levels/internal/config"
)

// ErrNoAPIKey is returned when a backend that needs a key has none.
var ErrNoAPIKey = errors.New("llm: API key not configured")

// Completer sends one system+user exchange to a model and returns the
// model's reply text.
type Completer interface {
	CompleteWithSystem(ctx context.Context, system, user string) (string, error)
}

// Settings are the backend-independent model parameters.
type Settings struct {
	BaseURL     string
	Model       string
	APIKey      string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// SettingsFrom converts the llm configuration section.
func SettingsFrom(c config.LLMConfig) Settings {
	return Settings{
		BaseURL:     c.BaseURL,
		Model:       c.Model,
		APIKey:      c.APIKey,
		Temperature: c.Temperature,
		MaxTokens:   c.MaxTokens,
		Timeout:     c.Timeout,
	}
}

// FromConfig creates the backend named in c.
func FromConfig(c config.LLMConfig) (Completer, error) {
	return New(c.Backend, SettingsFrom(c))
}
