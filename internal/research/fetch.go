package research

import (
	"context"
	"fmt"
	"log"
	"time"
)

const (
	DefaultFetchTimeout = 15 * time.Second
	MaxPageCharsDefault = 10000
)

// Fetcher retrieves the readable text of a single reference result.
type Fetcher interface {
	Fetch(ctx context.Context, r Result) (Page, error)
}

type FetcherType string

const (
	HTTPFetcherType     FetcherType = "http"
	ChromedpFetcherType FetcherType = "chromedp"
)

// NewFetcher builds a page fetcher of the requested type.
func NewFetcher(fetcherType FetcherType, timeout time.Duration, maxChars int) (Fetcher, error) {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	if maxChars <= 0 {
		maxChars = MaxPageCharsDefault
	}
	switch fetcherType {
	case HTTPFetcherType:
		return NewHTTPFetcher(timeout, maxChars), nil
	case ChromedpFetcherType:
		return &ChromedpFetcher{Timeout: timeout, MaxChars: maxChars}, nil
	default:
		return nil, fmt.Errorf("unsupported fetcher type: %s", fetcherType)
	}
}

// FetchAll fetches every result in order, dropping entries that fail. One
// broken page never aborts the rest.
func FetchAll(ctx context.Context, f Fetcher, results []Result, logger *log.Logger) []Page {
	var pages []Page
	for _, r := range results {
		page, err := f.Fetch(ctx, r)
		if err != nil {
			if logger != nil {
				logger.Printf("fetch %s failed: %v", r.Link, err)
			}
			continue
		}
		pages = append(pages, page)
	}
	return pages
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
