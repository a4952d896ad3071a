// Package breakdown turns a free-text task description into a normalized
// micro-task checklist, optionally grounded in web research.
package breakdown

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/mohammad-safakhou/breakdown/internal/llm"
	"github.com/mohammad-safakhou/breakdown/internal/research"
)

// Source is a reference shown to the caller, drawn from the research results
// whether or not the page fetch for it succeeded.
type Source struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type Meta struct {
	UsedWebResearch bool `json:"usedWebResearch"`
}

// Result is the success envelope for one breakdown request.
type Result struct {
	Breakdown []MicroTask `json:"breakdown"`
	Sources   []Source    `json:"sources"`
	Meta      Meta        `json:"meta"`
}

// Service runs the pipeline: research, fetch, compose, complete, normalize.
// Research and fetch degrade gracefully to fewer or no sources; only a
// completion failure aborts the request.
type Service struct {
	Research *research.Provider
	Fetcher  research.Fetcher
	LLM      llm.Provider
	Logger   *log.Logger
}

func (s *Service) Breakdown(ctx context.Context, task string) (Result, error) {
	if s.LLM == nil {
		return Result{}, llm.ErrNotConfigured
	}
	reqID := uuid.NewString()[:8]

	results := s.Research.Discover(ctx, task)
	pages := research.FetchAll(ctx, s.Fetcher, results, s.Logger)
	if s.Logger != nil {
		s.Logger.Printf("[%s] research: %d results, %d pages fetched", reqID, len(results), len(pages))
	}

	raw, err := s.LLM.Complete(ctx, ComposePrompt(task, pages))
	if err != nil {
		return Result{}, err
	}

	tasks := NormalizeTasks(raw)
	if s.Logger != nil {
		s.Logger.Printf("[%s] normalized %d micro-tasks", reqID, len(tasks))
	}

	sources := make([]Source, 0, len(results))
	for _, r := range results {
		sources = append(sources, Source{Title: r.Title, URL: r.Link})
	}

	return Result{
		Breakdown: tasks,
		Sources:   sources,
		Meta:      Meta{UsedWebResearch: len(pages) > 0},
	}, nil
}
