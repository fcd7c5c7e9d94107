package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/levelup/levelup-backend/internal/api/metrics"
	"github.com/levelup/levelup-backend/internal/core/domain"
	"github.com/levelup/levelup-backend/internal/core/ports"
)

// CartService implements cart reads and wholesale updates with a
// read-through cache in front of the store.
type CartService struct {
	repo  ports.CartRepository
	cache ports.CartCache
	log   zerolog.Logger
}

func NewCartService(repo ports.CartRepository, cache ports.CartCache, log zerolog.Logger) *CartService {
	return &CartService{repo: repo, cache: cache, log: log}
}

// GetCart returns the user's cart. A user with no stored cart gets an empty
// one back. Cache failures are advisory: the store remains the authority.
func (s *CartService) GetCart(ctx context.Context, run string) (*ports.CartView, error) {
	if cached, err := s.cache.Get(ctx, run); err != nil {
		s.log.Warn().Err(err).Str("run", run).Msg("cart cache read failed")
	} else if cached != nil {
		metrics.CartCacheTotal.WithLabelValues("hit").Inc()
		return toCartView(cached), nil
	}
	metrics.CartCacheTotal.WithLabelValues("miss").Inc()

	cart, err := s.repo.FindByRUN(ctx, run)
	if err != nil {
		if err == domain.ErrCartNotFound {
			return toCartView(&domain.Cart{RUN: run, Items: []domain.CartItem{}}), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	if err := s.cache.Set(ctx, cart); err != nil {
		s.log.Warn().Err(err).Str("run", run).Msg("cart cache write failed")
	}
	return toCartView(cart), nil
}

// UpdateCart replaces the cart contents wholesale. The item list is the full
// desired state; lines beyond the cart limits are rejected up front.
func (s *CartService) UpdateCart(ctx context.Context, in ports.UpdateCartInput) (*ports.CartView, error) {
	if len(in.Items) > domain.MaxCartItems {
		return nil, domain.ErrCartTooLarge
	}

	items := make([]domain.CartItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity < 1 || it.Quantity > domain.MaxItemQuantity {
			return nil, domain.ErrInvalidQuantity
		}
		items = append(items, domain.CartItem{
			ProductCode: it.ProductCode,
			Name:        it.Name,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
		})
	}

	cart := &domain.Cart{
		RUN:       in.RUN,
		Items:     items,
		UpdatedAt: time.Now().UTC(),
	}

	if err := s.repo.Upsert(ctx, cart); err != nil {
		return nil, fmt.Errorf("update cart: %w", err)
	}
	if err := s.cache.Invalidate(ctx, in.RUN); err != nil {
		s.log.Warn().Err(err).Str("run", in.RUN).Msg("cart cache invalidation failed")
	}

	metrics.CartUpdatesTotal.Inc()
	s.log.Info().Str("run", in.RUN).Int("items", len(items)).Msg("cart updated")

	return toCartView(cart), nil
}

func toCartView(c *domain.Cart) *ports.CartView {
	return &ports.CartView{
		RUN:       c.RUN,
		Items:     c.Items,
		Total:     c.Total(),
		UpdatedAt: c.UpdatedAt,
	}
}
