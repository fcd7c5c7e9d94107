package ports

import (
	"context"

	"github.com/levelup/levelup-backend/internal/core/domain"
)

// CartRepository defines persistence operations for shopping carts. Carts are
// keyed by the owner's RUN; Upsert replaces the stored item list wholesale.
type CartRepository interface {
	FindByRUN(ctx context.Context, run string) (*domain.Cart, error)
	Upsert(ctx context.Context, cart *domain.Cart) error
}

// CartCache is a read-through cache in front of CartRepository. A Get miss
// returns (nil, nil); errors are advisory — callers fall back to the store.
type CartCache interface {
	Get(ctx context.Context, run string) (*domain.Cart, error)
	Set(ctx context.Context, cart *domain.Cart) error
	Invalidate(ctx context.Context, run string) error
}
