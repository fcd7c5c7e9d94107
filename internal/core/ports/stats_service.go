package ports

import (
	"context"

	"github.com/levelup/levelup-backend/internal/core/domain"
)

// ReferralEvent is one referred registration, queued for async processing.
// NewUserRUN identifies the registration; Code is the referrer's code the new
// user typed in.
type ReferralEvent struct {
	Code       string
	NewUserRUN string
}

// StatsService defines gamification use cases.
type StatsService interface {
	// EnsureStats returns the stats for run, creating a zero-point record
	// with a fresh referral code when none exists yet.
	EnsureStats(ctx context.Context, run string) (*domain.PlayerStats, error)
	// ProcessReferral awards points to the owner of the event's code. It is
	// idempotent per NewUserRUN: replaying the same registration's event
	// awards at most once.
	ProcessReferral(ctx context.Context, event ReferralEvent) error
}
