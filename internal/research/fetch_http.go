package research

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"

	"github.com/mohammad-safakhou/breakdown/internal/helpers"
)

const (
	fetchUserAgent = "breakdown/1.0 (+https://github.com/mohammad-safakhou/breakdown)"
	maxFetchBody   = 2 << 20 // cap body reads at 2 MiB
)

// HTTPFetcher retrieves pages with a plain GET, following redirects, and
// extracts the readable article text. Pages readability cannot handle fall
// back to stripped raw markup.
type HTTPFetcher struct {
	Client   *http.Client
	MaxChars int
}

func NewHTTPFetcher(timeout time.Duration, maxChars int) *HTTPFetcher {
	return &HTTPFetcher{
		Client:   &http.Client{Timeout: timeout},
		MaxChars: maxChars,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, r Result) (Page, error) {
	if strings.TrimSpace(r.Link) == "" {
		return Page{}, errors.New("invalid url")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.Link, nil)
	if err != nil {
		return Page{}, fmt.Errorf("request: %w", err)
	}
	req.Header.Set("User-Agent", fetchUserAgent)

	resp, err := f.Client.Do(req)
	if err != nil {
		return Page{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Page{}, fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBody))
	if err != nil {
		return Page{}, fmt.Errorf("read body: %w", err)
	}

	title := r.Title
	var text string
	if article, err := readability.FromReader(bytes.NewReader(body), parseURL(r.Link)); err == nil {
		text = helpers.CollapseWhitespace(article.TextContent)
		if t := strings.TrimSpace(article.Title); t != "" {
			title = t
		}
	}
	if text == "" {
		text = helpers.StripMarkup(string(body))
	}

	return Page{
		Title: title,
		URL:   r.Link,
		Text:  truncate(text, f.MaxChars),
	}, nil
}

func parseURL(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		return &url.URL{}
	}
	return u
}
