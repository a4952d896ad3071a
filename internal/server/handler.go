package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mohammad-safakhou/breakdown/internal/breakdown"
)

const missingTaskMessage = "Missing 'task' in request body"

// BreakdownHandler exposes the task breakdown pipeline over HTTP.
type BreakdownHandler struct {
	Service *breakdown.Service
}

func (h *BreakdownHandler) Register(g *echo.Group) {
	g.POST("/breakdown", h.create)
}

func (h *BreakdownHandler) create(c echo.Context) error {
	var body struct {
		Task any `json:"task"`
	}
	// A malformed or empty body is the same caller mistake as a missing
	// field, so bind errors fall through to the task check.
	_ = c.Bind(&body)

	task, ok := body.Task.(string)
	if !ok || strings.TrimSpace(task) == "" {
		requestsTotal.WithLabelValues("bad_request").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, missingTaskMessage)
	}

	result, err := h.Service.Breakdown(c.Request().Context(), task)
	if err != nil {
		requestsTotal.WithLabelValues("completion_error").Inc()
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	requestsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, result)
}
