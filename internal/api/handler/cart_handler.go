package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/levelup/levelup-backend/internal/core/domain"
	"github.com/levelup/levelup-backend/internal/core/ports"
)

// CartHandler handles shopping cart reads and updates.
type CartHandler struct {
	cartService ports.CartService
}

func NewCartHandler(cartService ports.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Get handles GET /api/cart — the authenticated user's cart.
//
// @Summary      Get the current user's cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cartResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	run, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	view, err := h.cartService.GetCart(c.Request().Context(), run)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(view))
}

// Update handles PUT /api/cart — wholesale replacement of the cart contents.
//
// @Summary      Replace the current user's cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateCartRequest  true  "Full desired cart contents"
// @Success      200   {object}  cartResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/cart [put]
func (h *CartHandler) Update(c echo.Context) error {
	run, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	view, err := h.cartService.UpdateCart(c.Request().Context(), toUpdateCartInput(req, run))
	if err != nil {
		if errors.Is(err, domain.ErrCartTooLarge) || errors.Is(err, domain.ErrInvalidQuantity) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(view))
}
