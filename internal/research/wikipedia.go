package research

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mohammad-safakhou/breakdown/internal/helpers"
)

const defaultWikipediaBaseURL = "https://en.wikipedia.org"

// WikipediaClient runs full-text searches against the MediaWiki API. It needs
// no credential, which makes it the always-available fallback searcher.
type WikipediaClient struct {
	BaseURL string
	Client  *http.Client
}

func NewWikipediaClient(baseURL string, timeout time.Duration) *WikipediaClient {
	if baseURL == "" {
		baseURL = defaultWikipediaBaseURL
	}
	return &WikipediaClient{BaseURL: baseURL, Client: &http.Client{Timeout: timeout}}
}

func (w *WikipediaClient) Search(ctx context.Context, q string, k int) ([]Result, error) {
	// https://www.mediawiki.org/wiki/API:Search
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", q)
	params.Set("srlimit", fmt.Sprintf("%d", k))
	params.Set("format", "json")
	params.Set("utf8", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.BaseURL+"/w/api.php?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := w.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wikipedia status %d", resp.StatusCode)
	}

	var raw struct {
		Query struct {
			Search []struct {
				Title   string `json:"title"`
				Snippet string `json:"snippet"`
			} `json:"search"`
		} `json:"query"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	var out []Result
	for i, hit := range raw.Query.Search {
		if i >= k {
			break
		}
		out = append(out, Result{
			Title:   hit.Title,
			Link:    w.articleURL(hit.Title),
			Snippet: helpers.StripMarkup(hit.Snippet),
		})
	}
	return out, nil
}

func (w *WikipediaClient) articleURL(title string) string {
	return w.BaseURL + "/wiki/" + url.PathEscape(strings.ReplaceAll(title, " ", "_"))
}
