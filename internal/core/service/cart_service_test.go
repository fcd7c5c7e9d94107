package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/levelup/levelup-backend/internal/core/domain"
	"github.com/levelup/levelup-backend/internal/core/ports"
)

type stubCartRepo struct {
	carts     map[string]*domain.Cart
	upsertErr error
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{carts: make(map[string]*domain.Cart)}
}

func cloneCart(c *domain.Cart) *domain.Cart {
	clone := *c
	clone.Items = append([]domain.CartItem(nil), c.Items...)
	return &clone
}

func (r *stubCartRepo) FindByRUN(_ context.Context, run string) (*domain.Cart, error) {
	if c, ok := r.carts[run]; ok {
		return cloneCart(c), nil
	}
	return nil, domain.ErrCartNotFound
}

func (r *stubCartRepo) Upsert(_ context.Context, cart *domain.Cart) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.carts[cart.RUN] = cloneCart(cart)
	return nil
}

type stubCartCache struct {
	entries     map[string]*domain.Cart
	getErr      error
	sets        int
	invalidated []string
}

func newStubCartCache() *stubCartCache {
	return &stubCartCache{entries: make(map[string]*domain.Cart)}
}

func (c *stubCartCache) Get(_ context.Context, run string) (*domain.Cart, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	if cart, ok := c.entries[run]; ok {
		return cloneCart(cart), nil
	}
	return nil, nil
}

func (c *stubCartCache) Set(_ context.Context, cart *domain.Cart) error {
	c.sets++
	c.entries[cart.RUN] = cloneCart(cart)
	return nil
}

func (c *stubCartCache) Invalidate(_ context.Context, run string) error {
	c.invalidated = append(c.invalidated, run)
	delete(c.entries, run)
	return nil
}

func cartItems(n int) []ports.CartItemInput {
	items := make([]ports.CartItemInput, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, ports.CartItemInput{
			ProductCode: "JM001",
			Name:        "Catan",
			UnitPrice:   29990,
			Quantity:    1,
		})
	}
	return items
}

func TestCartService_GetCart_EmptyForNewUser(t *testing.T) {
	svc := NewCartService(newStubCartRepo(), newStubCartCache(), zerolog.Nop())

	view, err := svc.GetCart(context.Background(), "12345678K")
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if view.RUN != "12345678K" {
		t.Fatalf("unexpected run: %s", view.RUN)
	}
	if len(view.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(view.Items))
	}
	if view.Total != 0 {
		t.Fatalf("expected zero total, got %d", view.Total)
	}
}

func TestCartService_UpdateThenGet(t *testing.T) {
	repo := newStubCartRepo()
	cache := newStubCartCache()
	svc := NewCartService(repo, cache, zerolog.Nop())

	updated, err := svc.UpdateCart(context.Background(), ports.UpdateCartInput{
		RUN: "12345678K",
		Items: []ports.CartItemInput{
			{ProductCode: "JM001", Name: "Catan", UnitPrice: 29990, Quantity: 2},
			{ProductCode: "AC002", Name: "Auriculares", UnitPrice: 15000, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("UpdateCart: %v", err)
	}
	if updated.Total != 2*29990+15000 {
		t.Fatalf("unexpected total: %d", updated.Total)
	}

	got, err := svc.GetCart(context.Background(), "12345678K")
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(got.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got.Items))
	}
	if got.Items[0].ProductCode != "JM001" || got.Items[1].Quantity != 1 {
		t.Fatalf("items do not round-trip: %+v", got.Items)
	}
}

func TestCartService_UpdateCart_ReplacesWholesale(t *testing.T) {
	svc := NewCartService(newStubCartRepo(), newStubCartCache(), zerolog.Nop())

	if _, err := svc.UpdateCart(context.Background(), ports.UpdateCartInput{
		RUN:   "12345678K",
		Items: cartItems(3),
	}); err != nil {
		t.Fatalf("first update: %v", err)
	}

	view, err := svc.UpdateCart(context.Background(), ports.UpdateCartInput{
		RUN:   "12345678K",
		Items: cartItems(1),
	})
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("update did not replace: got %d items", len(view.Items))
	}
}

func TestCartService_UpdateCart_TooManyItems(t *testing.T) {
	svc := NewCartService(newStubCartRepo(), newStubCartCache(), zerolog.Nop())

	_, err := svc.UpdateCart(context.Background(), ports.UpdateCartInput{
		RUN:   "12345678K",
		Items: cartItems(domain.MaxCartItems + 1),
	})
	if !errors.Is(err, domain.ErrCartTooLarge) {
		t.Fatalf("expected ErrCartTooLarge, got %v", err)
	}

	if _, err := svc.UpdateCart(context.Background(), ports.UpdateCartInput{
		RUN:   "12345678K",
		Items: cartItems(domain.MaxCartItems),
	}); err != nil {
		t.Fatalf("cart at the limit should be accepted: %v", err)
	}
}

func TestCartService_UpdateCart_QuantityBounds(t *testing.T) {
	repo := newStubCartRepo()
	svc := NewCartService(repo, newStubCartCache(), zerolog.Nop())

	for _, quantity := range []int{0, -1, domain.MaxItemQuantity + 1, 500} {
		_, err := svc.UpdateCart(context.Background(), ports.UpdateCartInput{
			RUN: "12345678K",
			Items: []ports.CartItemInput{
				{ProductCode: "JM001", Name: "Catan", UnitPrice: 29990, Quantity: quantity},
			},
		})
		if !errors.Is(err, domain.ErrInvalidQuantity) {
			t.Fatalf("quantity %d: expected ErrInvalidQuantity, got %v", quantity, err)
		}
	}
	if len(repo.carts) != 0 {
		t.Fatalf("out-of-range quantity persisted: %+v", repo.carts)
	}

	if _, err := svc.UpdateCart(context.Background(), ports.UpdateCartInput{
		RUN: "12345678K",
		Items: []ports.CartItemInput{
			{ProductCode: "JM001", Name: "Catan", UnitPrice: 29990, Quantity: domain.MaxItemQuantity},
		},
	}); err != nil {
		t.Fatalf("quantity at the limit should be accepted: %v", err)
	}
}

func TestCartService_GetCart_CacheHitSkipsStore(t *testing.T) {
	repo := newStubCartRepo()
	cache := newStubCartCache()
	cache.entries["12345678K"] = &domain.Cart{
		RUN:       "12345678K",
		Items:     []domain.CartItem{{ProductCode: "JM001", Name: "Catan", UnitPrice: 29990, Quantity: 1}},
		UpdatedAt: time.Now().UTC(),
	}
	// The store disagrees on purpose so a hit is observable.
	repo.carts["12345678K"] = &domain.Cart{RUN: "12345678K", Items: []domain.CartItem{}}

	svc := NewCartService(repo, cache, zerolog.Nop())
	view, err := svc.GetCart(context.Background(), "12345678K")
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("expected cached cart, got %d items", len(view.Items))
	}
}

func TestCartService_GetCart_MissFillsCache(t *testing.T) {
	repo := newStubCartRepo()
	cache := newStubCartCache()
	repo.carts["12345678K"] = &domain.Cart{
		RUN:   "12345678K",
		Items: []domain.CartItem{{ProductCode: "JM001", Name: "Catan", UnitPrice: 29990, Quantity: 1}},
	}

	svc := NewCartService(repo, cache, zerolog.Nop())
	if _, err := svc.GetCart(context.Background(), "12345678K"); err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("expected 1 cache fill, got %d", cache.sets)
	}
	if _, ok := cache.entries["12345678K"]; !ok {
		t.Fatalf("cache not populated after miss")
	}
}

func TestCartService_UpdateCart_InvalidatesCache(t *testing.T) {
	repo := newStubCartRepo()
	cache := newStubCartCache()
	cache.entries["12345678K"] = &domain.Cart{RUN: "12345678K"}

	svc := NewCartService(repo, cache, zerolog.Nop())
	if _, err := svc.UpdateCart(context.Background(), ports.UpdateCartInput{
		RUN:   "12345678K",
		Items: cartItems(1),
	}); err != nil {
		t.Fatalf("UpdateCart: %v", err)
	}

	if len(cache.invalidated) != 1 || cache.invalidated[0] != "12345678K" {
		t.Fatalf("cache not invalidated: %v", cache.invalidated)
	}
}

func TestCartService_GetCart_CacheFailureFallsThrough(t *testing.T) {
	repo := newStubCartRepo()
	repo.carts["12345678K"] = &domain.Cart{
		RUN:   "12345678K",
		Items: []domain.CartItem{{ProductCode: "JM001", Name: "Catan", UnitPrice: 29990, Quantity: 1}},
	}
	cache := newStubCartCache()
	cache.getErr = errors.New("redis down")

	svc := NewCartService(repo, cache, zerolog.Nop())
	view, err := svc.GetCart(context.Background(), "12345678K")
	if err != nil {
		t.Fatalf("GetCart should survive cache failure: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("expected store cart, got %d items", len(view.Items))
	}
}
