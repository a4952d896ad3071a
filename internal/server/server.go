package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mohammad-safakhou/breakdown/config"
	"github.com/mohammad-safakhou/breakdown/internal/breakdown"
	"github.com/mohammad-safakhou/breakdown/internal/llm"
	"github.com/mohammad-safakhou/breakdown/internal/research"
)

// New assembles the echo instance and routes around an already-built service.
func New(svc *breakdown.Service) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	// Unified HTTP error handler with structured JSON and logging
	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		if code == http.StatusMethodNotAllowed {
			msg = "Method not allowed"
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]any{"error": msg})
		}
	}

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	h := &BreakdownHandler{Service: svc}
	h.Register(e.Group("/api"))

	return e
}

// Run wires the pipeline from configuration and serves until the listener
// stops. A missing completion credential is not fatal here; the handler
// reports it per request so the rest of the service stays inspectable.
func Run(cfg *config.Config, addr string) error {
	researchLogger := log.New(log.Writer(), "[RESEARCH] ", log.LstdFlags)

	provider := &research.Provider{
		Fallback:   research.NewWikipediaClient(cfg.Research.WikipediaBaseURL, cfg.Research.SearchTimeout),
		PerQuery:   cfg.Research.ResultsPerQuery,
		MaxResults: cfg.Research.MaxSources,
		Logger:     researchLogger,
	}
	if cfg.Research.SerperAPIKey != "" {
		provider.Primary = research.NewSerperClient(cfg.Research.SerperAPIKey, cfg.Research.SerperBaseURL, cfg.Research.SearchTimeout)
	}

	fetcher, err := research.NewFetcher(research.FetcherType(cfg.Research.Fetcher), cfg.Research.FetchTimeout, cfg.Research.MaxPageChars)
	if err != nil {
		return err
	}

	completion, err := llm.NewProvider(cfg.LLM)
	if err != nil {
		log.Printf("[LLM] %v", err)
	}

	svc := &breakdown.Service{
		Research: provider,
		Fetcher:  fetcher,
		LLM:      completion,
		Logger:   log.New(log.Writer(), "[BREAKDOWN] ", log.LstdFlags),
	}

	e := New(svc)
	if addr == "" {
		addr = cfg.Server.Listen
	}
	log.Printf("listening on %s", addr)
	return e.Start(addr)
}
