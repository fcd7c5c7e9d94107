package ports

import (
	"context"

	"github.com/levelup/levelup-backend/internal/core/domain"
)

// StatsRepository defines persistence operations for player stats. The store
// enforces referral-code uniqueness: Create surfaces a duplicate code as
// domain.ErrReferralCodeTaken so the service can regenerate and retry.
type StatsRepository interface {
	FindByRUN(ctx context.Context, run string) (*domain.PlayerStats, error)
	FindByReferralCode(ctx context.Context, code string) (*domain.PlayerStats, error)
	Create(ctx context.Context, stats *domain.PlayerStats) error
	// AddPoints atomically increments the points of the given RUN and
	// updates the stored level.
	AddPoints(ctx context.Context, run string, points int64, level int) error
}
