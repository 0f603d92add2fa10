package llm

import (
	"context"
	"errors"
	"strings"
)

// ErrEmptyPrompt is returned for blank prompts.
var ErrEmptyPrompt = errors.New("llm: prompt is empty")

// Generator asks a Completer to design a level. It satisfies
// synth.GenerationService, so levels can be generated in-process without
// running the level server.
type Generator struct {
	completer Completer
	system    string
}

// NewGenerator wraps c with the level designer system prompt.
func NewGenerator(c Completer) *Generator {
	return &Generator{completer: c, system: SystemPrompt}
}

// Generate returns the model's raw reply for prompt.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}
	return g.completer.CompleteWithSystem(ctx, g.system, prompt)
}
