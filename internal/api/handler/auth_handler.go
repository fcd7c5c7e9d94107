package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/levelup/levelup-backend/internal/core/domain"
	"github.com/levelup/levelup-backend/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new account and returns its first token.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	result, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		RUN:          req.RUN,
		Name:         req.Name,
		Surname:      req.Surname,
		Email:        req.Email,
		Password:     req.Password,
		BirthDate:    req.BirthDate,
		Region:       req.Region,
		Commune:      req.Commune,
		Address:      req.Address,
		ReferralCode: req.ReferralCode,
	})
	if err != nil {
		if isRegistrationError(err) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return err
	}

	return c.JSON(http.StatusCreated, toAuthResponse(result))
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: domain.ErrInvalidCredentials.Error()})
		}
		return err
	}

	return c.JSON(http.StatusOK, toAuthResponse(result))
}

// isRegistrationError reports whether err is one of the user-input failures
// of the registration flow, all rendered as 400.
func isRegistrationError(err error) bool {
	return errors.Is(err, domain.ErrMissingIdentity) ||
		errors.Is(err, domain.ErrEmailTaken) ||
		errors.Is(err, domain.ErrRUNTaken) ||
		errors.Is(err, domain.ErrInvalidBirthDate)
}
