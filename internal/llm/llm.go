// Package llm selects and calls one of two interchangeable completion
// backends: OpenAI chat completions (preferred when its key is configured,
// since it supports a JSON response mode) or the Anthropic messages API.
package llm

import (
	"context"
	"errors"

	"github.com/mohammad-safakhou/breakdown/config"
)

// Provider sends a prompt to a completion backend and returns the raw
// response text. One synchronous call; no streaming, no retries.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured is returned when neither backend has a credential.
var ErrNotConfigured = errors.New("no completion provider configured: set an OpenAI or Anthropic API key")

// NewProvider resolves the backend once from configuration.
func NewProvider(cfg config.LLMConfig) (Provider, error) {
	if cfg.OpenAI.APIKey != "" {
		return NewOpenAIProvider(cfg.OpenAI), nil
	}
	if cfg.Anthropic.APIKey != "" {
		return NewAnthropicProvider(cfg.Anthropic), nil
	}
	return nil, ErrNotConfigured
}
