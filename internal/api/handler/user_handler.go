package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/levelup/levelup-backend/internal/core/ports"
)

// UserHandler handles profile retrieval.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me handles GET /api/users/me — the authenticated user's own profile.
//
// @Summary      Get the current user's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Profile
// @Failure      401  {object}  errorResponse
// @Router       /api/users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	run, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	profile, err := h.userService.GetCurrentProfile(c.Request().Context(), run)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Get handles GET /api/admin/users/:run — any user's profile, admin only.
//
// @Summary      Get a user's profile by RUN
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        run  path      string  true  "RUN (any formatting, normalized server-side)"
// @Success      200  {object}  ports.Profile
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/users/{run} [get]
func (h *UserHandler) Get(c echo.Context) error {
	profile, err := h.userService.GetProfile(c.Request().Context(), c.Param("run"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}
