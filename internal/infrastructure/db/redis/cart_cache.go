package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/levelup/levelup-backend/internal/core/domain"
)

const cartTTL = 15 * time.Minute

// CartCache is a read-through cache for carts, keyed by owner RUN. Entries
// are JSON-encoded domain carts with a short TTL; the Mongo store stays the
// authority and updates invalidate the entry.
type CartCache struct {
	client *redis.Client
}

// NewCartCache creates a CartCache wrapping the given Redis client.
func NewCartCache(client *redis.Client) *CartCache {
	return &CartCache{client: client}
}

// Get returns the cached cart, or (nil, nil) on a miss.
func (c *CartCache) Get(ctx context.Context, run string) (*domain.Cart, error) {
	raw, err := c.client.Get(ctx, c.key(run)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("cart cache get: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		// A corrupt entry behaves like a miss; the next Set overwrites it.
		return nil, nil
	}
	return &cart, nil
}

// Set stores the cart with the cache TTL.
func (c *CartCache) Set(ctx context.Context, cart *domain.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("cart cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(cart.RUN), raw, cartTTL).Err()
}

// Invalidate drops the cached cart after a write to the store.
func (c *CartCache) Invalidate(ctx context.Context, run string) error {
	return c.client.Del(ctx, c.key(run)).Err()
}

func (c *CartCache) key(run string) string {
	return "cart:" + run
}
