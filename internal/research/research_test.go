package research

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type stubSearcher struct {
	results []Result
	err     error
	calls   int
}

func (s *stubSearcher) Search(ctx context.Context, q string, k int) ([]Result, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

func TestDeduplicateByLink_FirstOccurrenceWins(t *testing.T) {
	in := []Result{
		{Title: "first", Link: "https://a"},
		{Title: "second", Link: "https://b"},
		{Title: "duplicate of first", Link: "https://a"},
	}
	out := DeduplicateByLink(in)
	if len(out) != 2 {
		t.Fatalf("expected 2 results, got %d", len(out))
	}
	if out[0].Title != "first" {
		t.Fatalf("expected first occurrence to survive, got %q", out[0].Title)
	}
}

func TestProviderDiscover_FansOutAndCaps(t *testing.T) {
	var results []Result
	for i := 0; i < 4; i++ {
		results = append(results, Result{Title: fmt.Sprintf("r%d", i), Link: fmt.Sprintf("https://site/%d", i)})
	}
	primary := &stubSearcher{results: results}
	p := &Provider{Primary: primary, Fallback: &stubSearcher{err: errors.New("unused")}, PerQuery: 3, MaxResults: 8}

	got := p.Discover(context.Background(), "build a shed")
	if primary.calls != len(queryVariants) {
		t.Fatalf("expected %d queries, got %d", len(queryVariants), primary.calls)
	}
	// 5 queries x 4 results collapse to 4 unique links, under the cap.
	if len(got) != 4 {
		t.Fatalf("expected 4 deduplicated results, got %d", len(got))
	}

	var many []Result
	for i := 0; i < 12; i++ {
		many = append(many, Result{Link: fmt.Sprintf("https://many/%d", i)})
	}
	p.Primary = &stubSearcher{results: many}
	got = p.Discover(context.Background(), "build a shed")
	if len(got) != 8 {
		t.Fatalf("expected cap at 8, got %d", len(got))
	}
}

func TestProviderDiscover_FallsBackWhenPrimaryUnconfigured(t *testing.T) {
	fallback := &stubSearcher{results: []Result{{Title: "wiki", Link: "https://en.wikipedia.org/wiki/Shed"}}}
	p := &Provider{Fallback: fallback, PerQuery: 3, MaxResults: 8}

	got := p.Discover(context.Background(), "build a shed")
	if len(got) != 1 || got[0].Title != "wiki" {
		t.Fatalf("expected fallback result, got %+v", got)
	}
}

func TestProviderDiscover_FallsBackWhenEveryQueryFails(t *testing.T) {
	primary := &stubSearcher{err: errors.New("network down")}
	fallback := &stubSearcher{results: []Result{{Title: "wiki", Link: "https://w"}}}
	p := &Provider{Primary: primary, Fallback: fallback, PerQuery: 3, MaxResults: 8}

	got := p.Discover(context.Background(), "anything")
	if len(got) != 1 || got[0].Title != "wiki" {
		t.Fatalf("expected fallback result, got %+v", got)
	}
}

func TestProviderDiscover_EmptyWhenEverythingFails(t *testing.T) {
	p := &Provider{
		Primary:    &stubSearcher{err: errors.New("down")},
		Fallback:   &stubSearcher{err: errors.New("also down")},
		PerQuery:   3,
		MaxResults: 8,
	}
	if got := p.Discover(context.Background(), "anything"); len(got) != 0 {
		t.Fatalf("expected no results, got %+v", got)
	}
}

func TestSerperClient_Search(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if r.Header.Get("X-API-KEY") != "secret" {
			t.Fatalf("missing api key header")
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if payload["q"] != "birthday party step by step guide" {
			t.Fatalf("unexpected query %v", payload["q"])
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"organic": []map[string]string{
				{"title": "Guide", "link": "https://guide", "snippet": "how to"},
				{"title": "Extra", "link": "https://extra", "snippet": "more"},
			},
		})
	}))
	defer ts.Close()

	c := NewSerperClient("secret", ts.URL, 5*time.Second)
	got, err := c.Search(context.Background(), "birthday party step by step guide", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 2 || got[0].Link != "https://guide" {
		t.Fatalf("unexpected results: %+v", got)
	}
}

func TestSerperClient_NonSuccessStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	c := NewSerperClient("bad", ts.URL, 5*time.Second)
	if _, err := c.Search(context.Background(), "q", 3); err == nil {
		t.Fatal("expected error on 403")
	}
}

func TestWikipediaClient_Search(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("action") != "query" || q.Get("list") != "search" {
			t.Fatalf("unexpected query params: %v", q)
		}
		if q.Get("srlimit") != "3" {
			t.Fatalf("expected srlimit=3, got %s", q.Get("srlimit"))
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"query": map[string]any{
				"search": []map[string]string{
					{"title": "Party planning", "snippet": `<span class="searchmatch">Party</span> planning basics`},
				},
			},
		})
	}))
	defer ts.Close()

	c := NewWikipediaClient(ts.URL, 5*time.Second)
	got, err := c.Search(context.Background(), "party", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}
	if got[0].Link != ts.URL+"/wiki/Party_planning" {
		t.Fatalf("unexpected article link: %s", got[0].Link)
	}
	if got[0].Snippet != "Party planning basics" {
		t.Fatalf("snippet not sanitized: %q", got[0].Snippet)
	}
}
