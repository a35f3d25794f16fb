package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/Okyu59/astro-seek/internal/app"
	"github.com/Okyu59/astro-seek/internal/domain"
)

type Handler struct {
	charts      *app.ChartService
	asker       *app.AskService
	caps        app.Capabilities
	frontendDir string
	logger      *slog.Logger
}

func NewHandler(charts *app.ChartService, asker *app.AskService, caps app.Capabilities, frontendDir string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		charts:      charts,
		asker:       asker,
		caps:        caps,
		frontendDir: frontendDir,
		logger:      logger,
	}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)

	api := e.Group("/api")
	api.POST("/chart", h.Chart)
	api.POST("/ask", h.Ask)
	api.GET("/health", h.Health)
	api.Any("/*", h.APINotFound)

	e.GET("/*", h.Frontend)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:       "ok",
		Capabilities: toCapabilitiesResp(h.caps),
	})
}

// Chart always answers 200 with a well-formed chart. A body that cannot be
// decoded is treated as invalid birth data.
func (h *Handler) Chart(c echo.Context) error {
	var req ChartRequest
	if err := c.Bind(&req); err != nil {
		h.logger.InfoContext(c.Request().Context(), "chart request not decodable", "request_id", requestID(c), "error", err)
		req = ChartRequest{}
	}

	res := h.resolve(c.Request().Context(), domain.ChartRequest{Date: req.Date, Time: req.Time, City: req.City})
	return c.JSON(http.StatusOK, toChartResponse(res))
}

func (h *Handler) resolve(ctx context.Context, req domain.ChartRequest) (res domain.ChartResult) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.ErrorContext(ctx, "chart resolution panicked", "panic", r)
			res = h.charts.Degraded(req.Date, fmt.Sprintf("unexpected error: %v", r))
		}
	}()
	return h.charts.Resolve(ctx, req)
}

func (h *Handler) Ask(c echo.Context) error {
	var req AskRequest
	if err := c.Bind(&req); err != nil {
		h.logger.InfoContext(c.Request().Context(), "ask request not decodable", "request_id", requestID(c), "error", err)
		req = AskRequest{}
	}

	resp := h.asker.Ask(c.Request().Context(), toInterpretationRequest(req))
	return c.JSON(http.StatusOK, AskResponse{
		Answer:     resp.Answer,
		AnswerHTML: resp.AnswerHTML,
		Degraded:   resp.Degraded,
	})
}

func (h *Handler) APINotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, ErrorResponse{
		Error:  "not found",
		Detail: c.Request().Method + " " + c.Request().URL.Path,
	})
}

// Frontend serves files from the built SPA and falls back to index.html for
// client-side routes.
func (h *Handler) Frontend(c echo.Context) error {
	index := filepath.Join(h.frontendDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error:  "frontend build not found",
			Detail: fmt.Sprintf("expected %s; build the frontend or set FRONTEND_DIR", index),
		})
	}

	if rel := path.Clean("/" + c.Param("*")); rel != "/" {
		file := filepath.Join(h.frontendDir, filepath.FromSlash(rel))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			return c.File(file)
		}
	}
	return c.File(index)
}

func requestID(c echo.Context) string {
	id, _ := c.Get("request_id").(string)
	return id
}
