package ports

import (
	"context"
	"time"

	"github.com/levelup/levelup-backend/internal/core/domain"
)

// CartItemInput is one desired cart line as sent by the client.
type CartItemInput struct {
	ProductCode string
	Name        string
	UnitPrice   int64
	Quantity    int
}

// UpdateCartInput replaces the full cart of one user.
type UpdateCartInput struct {
	RUN   string
	Items []CartItemInput
}

// CartView is the cart as returned to the client.
type CartView struct {
	RUN       string
	Items     []domain.CartItem
	Total     int64
	UpdatedAt time.Time
}

// CartService defines cart use cases. A user who never touched their cart
// gets an empty cart back, not a not-found failure.
type CartService interface {
	GetCart(ctx context.Context, run string) (*CartView, error)
	UpdateCart(ctx context.Context, input UpdateCartInput) (*CartView, error)
}
