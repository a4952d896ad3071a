package research

import (
	"context"
	"log"
)

// Result is a single candidate reference produced by a searcher.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Page is the fetched and sanitised body of a Result.
type Page struct {
	Title string
	URL   string
	Text  string
}

// Searcher resolves a query into at most k results.
type Searcher interface {
	Search(ctx context.Context, q string, k int) ([]Result, error)
}

// Query phrasings fanned out against the primary searcher. Distinct angles on
// the same task surface different reference material.
var queryVariants = []string{
	"step by step guide",
	"best practices tutorial",
	"implementation checklist",
	"requirements breakdown",
	"development roadmap",
}

// Provider gathers reference results for a task description. A configured
// primary searcher is fanned out over query variants; the fallback searcher
// covers the unconfigured and all-queries-failed cases. Discover never fails:
// research is best-effort and an empty slice is a valid outcome.
type Provider struct {
	Primary    Searcher // nil when no search credential is configured
	Fallback   Searcher
	PerQuery   int
	MaxResults int
	Logger     *log.Logger
}

func (p *Provider) Discover(ctx context.Context, task string) []Result {
	if p.Primary != nil {
		var (
			all    []Result
			failed int
		)
		for _, variant := range queryVariants {
			res, err := p.Primary.Search(ctx, task+" "+variant, p.PerQuery)
			if err != nil {
				failed++
				if p.Logger != nil {
					p.Logger.Printf("search %q failed: %v", variant, err)
				}
				continue
			}
			all = append(all, res...)
		}
		if failed < len(queryVariants) {
			all = DeduplicateByLink(all)
			if len(all) > p.MaxResults {
				all = all[:p.MaxResults]
			}
			return all
		}
	}

	if p.Fallback != nil {
		fallbackTotal.Inc()
		res, err := p.Fallback.Search(ctx, task, 3)
		if err == nil {
			return res
		}
		if p.Logger != nil {
			p.Logger.Printf("fallback search failed: %v", err)
		}
	}
	return nil
}

// DeduplicateByLink drops results whose link was already seen, keeping the
// first occurrence.
func DeduplicateByLink(results []Result) []Result {
	seen := make(map[string]struct{}, len(results))
	out := results[:0]
	for _, r := range results {
		if _, ok := seen[r.Link]; ok {
			continue
		}
		seen[r.Link] = struct{}{}
		out = append(out, r)
	}
	return out
}
