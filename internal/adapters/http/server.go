package http

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// NewServer builds the echo instance with the standard middleware chain
// and the handler's routes.
func NewServer(h *Handler, logger *slog.Logger, corsOrigins []string) *echo.Echo {
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(RequestIDMiddleware())
	e.Use(LoggingMiddleware(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: corsOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", headerRequestID},
	}))

	h.Register(e)
	return e
}
