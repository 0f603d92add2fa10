package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Defaults for OpenAI-compatible backends.
const (
	GroqBaseURL   = "https://api.groq.com/openai/v1"
	GroqModel     = "llama-3.1-8b-instant"
	OpenAIBaseURL = "https://api.openai.com/v1"
	OpenAIModel   = "gpt-4o-mini"

	defaultTemperature = 0.8
	defaultMaxTokens   = 1024
	defaultTimeout     = 60 * time.Second
	maxRetries         = 2
)

func init() {
	Register("groq", "Groq chat completions (OpenAI-compatible)", func(s Settings) (Completer, error) {
		return NewOpenAIClient(withDefaults(s, GroqBaseURL, GroqModel))
	})
	Register("openai", "OpenAI chat completions", func(s Settings) (Completer, error) {
		return NewOpenAIClient(withDefaults(s, OpenAIBaseURL, OpenAIModel))
	})
}

func withDefaults(s Settings, baseURL, model string) Settings {
	if s.BaseURL == "" {
		s.BaseURL = baseURL
	}
	if s.Model == "" {
		s.Model = model
	}
	if s.Temperature <= 0 {
		s.Temperature = defaultTemperature
	}
	if s.MaxTokens <= 0 {
		s.MaxTokens = defaultMaxTokens
	}
	if s.Timeout <= 0 {
		s.Timeout = defaultTimeout
	}
	return s
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// OpenAIClient talks to any OpenAI-compatible chat completions API,
// including Groq.
type OpenAIClient struct {
	settings   Settings
	httpClient *http.Client
}

// NewOpenAIClient creates a client. The API key is required.
func NewOpenAIClient(s Settings) (*OpenAIClient, error) {
	if s.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	return &OpenAIClient{
		settings:   s,
		httpClient: &http.Client{Timeout: s.Timeout},
	}, nil
}

// Model returns the model name requests are sent to.
func (c *OpenAIClient) Model() string { return c.settings.Model }

// CompleteWithSystem sends a system and a user message and returns the
// first choice. Rate-limited and 5xx responses are retried with backoff.
func (c *OpenAIClient) CompleteWithSystem(ctx context.Context, system, user string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.settings.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.settings.Temperature,
		MaxTokens:   c.settings.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("llm: failed to marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(1<<uint(attempt-1)) * 250 * time.Millisecond):
			}
		}

		text, retry, err := c.do(ctx, payload)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !retry {
			return "", err
		}
	}
	return "", fmt.Errorf("llm: max retries exceeded: %w", lastErr)
}

func (c *OpenAIClient) do(ctx context.Context, payload []byte) (text string, retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.settings.BaseURL, "/")+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", false, fmt.Errorf("llm: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.settings.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", ctx.Err() == nil, fmt.Errorf("llm: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, fmt.Errorf("llm: failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", true, fmt.Errorf("llm: API request failed with status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("llm: API request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out chatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", false, fmt.Errorf("llm: failed to parse response: %w", err)
	}
	if out.Error != nil {
		return "", false, fmt.Errorf("llm: API error: %s", out.Error.Message)
	}
	if len(out.Choices) == 0 {
		return "", false, errors.New("llm: no completion returned")
	}
	return out.Choices[0].Message.Content, false, nil
}
