package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Backend is the generative text service drafts come from. It is chosen once at
// startup: a live client when credentials exist, NullBackend otherwise.
type Backend interface {
	Name() string
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings is the configuration shared by the live backends.
type LLMSettings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// ErrBackendDisabled is returned by NullBackend. Callers treat it like any other
// backend failure and fall back to templates.
var ErrBackendDisabled = errors.New("generative backend not configured")

// ErrEmptyCompletion is returned when a backend answers with no text.
var ErrEmptyCompletion = errors.New("backend returned empty text")

// NewBackend picks the implementation for the settings. A missing API key yields
// NullBackend rather than an error.
func NewBackend(ctx context.Context, s LLMSettings) (Backend, error) {
	if strings.TrimSpace(s.APIKey) == "" {
		return NullBackend{}, nil
	}
	switch strings.ToLower(strings.TrimSpace(s.Provider)) {
	case "", "gemini":
		return NewGeminiLLM(ctx, &s)
	case "openai", "deepseek":
		// DeepSeek and other gateways expose the OpenAI-compatible API; they need base_url.
		return NewOpenAILLMFromConfig(&s)
	default:
		return nil, fmt.Errorf("llm provider %s not supported", s.Provider)
	}
}
