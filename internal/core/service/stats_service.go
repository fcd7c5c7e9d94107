package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/levelup/levelup-backend/internal/api/metrics"
	"github.com/levelup/levelup-backend/internal/core/domain"
	"github.com/levelup/levelup-backend/internal/core/ports"
)

// referralCodeAttempts bounds the retry loop on referral-code collisions.
const referralCodeAttempts = 5

// ReferralDedup abstracts the idempotency store (Redis) for referral awards.
// Keys are the referred registration's RUN: one registration, one award.
type ReferralDedup interface {
	IsDuplicate(ctx context.Context, newUserRUN string) (bool, error)
	Mark(ctx context.Context, newUserRUN string) error
}

// StatsService implements player stats and referral awards.
type StatsService struct {
	repo  ports.StatsRepository
	dedup ReferralDedup
	log   zerolog.Logger
}

func NewStatsService(repo ports.StatsRepository, dedup ReferralDedup, log zerolog.Logger) *StatsService {
	return &StatsService{repo: repo, dedup: dedup, log: log}
}

// EnsureStats returns the stats record for run, creating a zero-point record
// with a fresh referral code when none exists. Code generation retries on
// collision against the unique index.
func (s *StatsService) EnsureStats(ctx context.Context, run string) (*domain.PlayerStats, error) {
	stats, err := s.repo.FindByRUN(ctx, run)
	if err == nil {
		return stats, nil
	}
	if !errors.Is(err, domain.ErrStatsNotFound) {
		return nil, fmt.Errorf("ensure stats: %w", err)
	}

	for attempt := 0; attempt < referralCodeAttempts; attempt++ {
		fresh := &domain.PlayerStats{
			RUN:          run,
			ReferralCode: generateReferralCode(),
			Points:       0,
			Level:        domain.LevelForPoints(0),
			UpdatedAt:    time.Now().UTC(),
		}
		err = s.repo.Create(ctx, fresh)
		if err == nil {
			s.log.Info().Str("run", run).Str("referral_code", fresh.ReferralCode).Msg("player stats created")
			return fresh, nil
		}
		if !errors.Is(err, domain.ErrReferralCodeTaken) {
			return nil, fmt.Errorf("ensure stats: %w", err)
		}
	}
	return nil, fmt.Errorf("ensure stats: %w", domain.ErrReferralCodeTaken)
}

// ProcessReferral awards points to the owner of the event's code. Runs on the
// dispatcher workers; idempotent per referred registration.
func (s *StatsService) ProcessReferral(ctx context.Context, event ports.ReferralEvent) error {
	isDup, err := s.dedup.IsDuplicate(ctx, event.NewUserRUN)
	if err != nil {
		s.log.Warn().Err(err).Str("run", event.NewUserRUN).Msg("referral dedup check failed, processing anyway")
	} else if isDup {
		metrics.ReferralsTotal.WithLabelValues("duplicate").Inc()
		s.log.Debug().Str("run", event.NewUserRUN).Msg("duplicate referral skipped")
		return nil
	}

	referrer, err := s.repo.FindByReferralCode(ctx, event.Code)
	if err != nil {
		if errors.Is(err, domain.ErrStatsNotFound) {
			metrics.ReferralsTotal.WithLabelValues("unknown_code").Inc()
			return fmt.Errorf("process referral: %w", domain.ErrReferralCodeUnknown)
		}
		return fmt.Errorf("process referral: %w", err)
	}

	// Self-referral would let a user farm points with their own code.
	if referrer.RUN == event.NewUserRUN {
		metrics.ReferralsTotal.WithLabelValues("self_referral").Inc()
		return nil
	}

	// Mark before writing so a retry after a partial failure cannot award twice.
	if markErr := s.dedup.Mark(ctx, event.NewUserRUN); markErr != nil {
		s.log.Warn().Err(markErr).Str("run", event.NewUserRUN).Msg("failed to set referral dedup key")
	}

	points := referrer.Points + domain.ReferralPoints
	if err := s.repo.AddPoints(ctx, referrer.RUN, domain.ReferralPoints, domain.LevelForPoints(points)); err != nil {
		return fmt.Errorf("process referral: add points: %w", err)
	}

	metrics.ReferralsTotal.WithLabelValues("awarded").Inc()
	s.log.Info().
		Str("referrer", referrer.RUN).
		Str("referred", event.NewUserRUN).
		Int64("points", points).
		Msg("referral awarded")

	return nil
}

// generateReferralCode returns a code in the format LVL-XXXXXXXX.
func generateReferralCode() string {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("LVL-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	for i := range b {
		b[i] = alphabet[int(b[i])%len(alphabet)]
	}
	return "LVL-" + string(b)
}
