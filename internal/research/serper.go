package research

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultSerperBaseURL = "https://google.serper.dev"

// SerperClient queries the Serper search API.
type SerperClient struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

func NewSerperClient(apiKey, baseURL string, timeout time.Duration) *SerperClient {
	if baseURL == "" {
		baseURL = defaultSerperBaseURL
	}
	return &SerperClient{APIKey: apiKey, BaseURL: baseURL, Client: &http.Client{Timeout: timeout}}
}

func (s *SerperClient) Search(ctx context.Context, q string, k int) ([]Result, error) {
	// https://serper.dev/ docs
	body, err := json.Marshal(map[string]any{"q": q, "num": k})
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	req.Header.Set("X-API-KEY", s.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serper status %d", resp.StatusCode)
	}

	var raw struct {
		Organic []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"organic"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	var out []Result
	for i, r := range raw.Organic {
		if i >= k {
			break
		}
		out = append(out, Result{Title: r.Title, Link: r.Link, Snippet: r.Snippet})
	}
	return out, nil
}
