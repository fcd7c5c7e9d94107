package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/levelup/levelup-backend/internal/core/domain"
)

// ctxPrincipal extracts the authenticated RUN injected by the Auth
// middleware. An empty RUN means no valid principal reached the handler —
// surfaced as the unauthenticated domain kind, not a panic, so the central
// error handler renders it uniformly.
func ctxPrincipal(c echo.Context) (string, error) {
	run, _ := c.Get("run").(string)
	if run == "" {
		return "", domain.ErrUnauthenticated
	}
	return run, nil
}
