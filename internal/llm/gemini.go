package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// GeminiModel is used when no model is configured for the gemini backend.
const GeminiModel = "gemini-2.5-flash"

func init() {
	Register("gemini", "Google Gemini via the genai SDK", func(s Settings) (Completer, error) {
		return NewGeminiClient(context.Background(), s)
	})
}

// GeminiClient sends completions through the Gemini API.
type GeminiClient struct {
	client   *genai.Client
	settings Settings
}

// NewGeminiClient creates a client. The API key is required.
func NewGeminiClient(ctx context.Context, s Settings) (*GeminiClient, error) {
	if s.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	s = withDefaults(s, "", GeminiModel)

	cc := &genai.ClientConfig{
		APIKey:  s.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if s.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: s.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("llm: failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, settings: s}, nil
}

// CompleteWithSystem sends user with system as the system instruction.
func (g *GeminiClient) CompleteWithSystem(ctx context.Context, system, user string) (string, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.settings.Timeout)
		defer cancel()
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.settings.Model, genai.Text(user), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr(float32(g.settings.Temperature)),
		MaxOutputTokens:   int32(g.settings.MaxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("llm: Gemini request failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("llm: Gemini returned no text")
	}
	return text, nil
}
