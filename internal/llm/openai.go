package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mohammad-safakhou/breakdown/config"
)

const openAISystemPrompt = "You are a planning assistant. Respond with a single valid JSON object and nothing else: no prose, no markdown, no code fences."

// OpenAIProvider implements Provider against the chat completions API with
// the JSON-object response mode enabled.
type OpenAIProvider struct {
	cfg    config.LLMProvider
	client *http.Client
}

func NewOpenAIProvider(cfg config.LLMProvider) *OpenAIProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	return &OpenAIProvider{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}
}

func (p *OpenAIProvider) Complete(ctx context.Context, prompt string) (string, error) {
	type chatMsg struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	type chatReq struct {
		Model          string         `json:"model"`
		Messages       []chatMsg      `json:"messages"`
		Temperature    float64        `json:"temperature"`
		MaxTokens      int            `json:"max_tokens,omitempty"`
		ResponseFormat map[string]any `json:"response_format,omitempty"`
	}

	body, err := json.Marshal(chatReq{
		Model: p.cfg.Model,
		Messages: []chatMsg{
			{Role: "system", Content: openAISystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature:    p.cfg.Temperature,
		MaxTokens:      p.cfg.MaxTokens,
		ResponseFormat: map[string]any{"type": "json_object"},
	})
	if err != nil {
		return "", fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OpenAI status %d", resp.StatusCode)
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return out.Choices[0].Message.Content, nil
}
