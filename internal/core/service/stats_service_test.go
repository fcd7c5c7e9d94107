package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/levelup/levelup-backend/internal/core/domain"
	"github.com/levelup/levelup-backend/internal/core/ports"
)

type stubStatsRepo struct {
	byRUN        map[string]*domain.PlayerStats
	takenCodes   map[string]bool
	createCalls  int
	addPointsErr error
}

func newStubStatsRepo() *stubStatsRepo {
	return &stubStatsRepo{
		byRUN:      make(map[string]*domain.PlayerStats),
		takenCodes: make(map[string]bool),
	}
}

func cloneStats(s *domain.PlayerStats) *domain.PlayerStats {
	clone := *s
	return &clone
}

func (r *stubStatsRepo) FindByRUN(_ context.Context, run string) (*domain.PlayerStats, error) {
	if s, ok := r.byRUN[run]; ok {
		return cloneStats(s), nil
	}
	return nil, domain.ErrStatsNotFound
}

func (r *stubStatsRepo) FindByReferralCode(_ context.Context, code string) (*domain.PlayerStats, error) {
	for _, s := range r.byRUN {
		if s.ReferralCode == code {
			return cloneStats(s), nil
		}
	}
	return nil, domain.ErrStatsNotFound
}

func (r *stubStatsRepo) Create(_ context.Context, stats *domain.PlayerStats) error {
	r.createCalls++
	if r.takenCodes[stats.ReferralCode] {
		return domain.ErrReferralCodeTaken
	}
	r.takenCodes[stats.ReferralCode] = true
	r.byRUN[stats.RUN] = cloneStats(stats)
	return nil
}

func (r *stubStatsRepo) AddPoints(_ context.Context, run string, points int64, level int) error {
	if r.addPointsErr != nil {
		return r.addPointsErr
	}
	s, ok := r.byRUN[run]
	if !ok {
		return domain.ErrStatsNotFound
	}
	s.Points += points
	s.Level = level
	return nil
}

type stubDedup struct {
	marked  map[string]bool
	isErr   error
	markErr error
}

func newStubDedup() *stubDedup {
	return &stubDedup{marked: make(map[string]bool)}
}

func (d *stubDedup) IsDuplicate(_ context.Context, run string) (bool, error) {
	if d.isErr != nil {
		return false, d.isErr
	}
	return d.marked[run], nil
}

func (d *stubDedup) Mark(_ context.Context, run string) error {
	if d.markErr != nil {
		return d.markErr
	}
	d.marked[run] = true
	return nil
}

func TestStatsService_EnsureStats_CreatesFresh(t *testing.T) {
	repo := newStubStatsRepo()
	svc := NewStatsService(repo, newStubDedup(), zerolog.Nop())

	stats, err := svc.EnsureStats(context.Background(), "12345678K")
	if err != nil {
		t.Fatalf("EnsureStats: %v", err)
	}
	if stats.RUN != "12345678K" {
		t.Fatalf("unexpected run: %s", stats.RUN)
	}
	if stats.Points != 0 || stats.Level != 1 {
		t.Fatalf("fresh stats should start at zero points, level 1: %+v", stats)
	}
	if !strings.HasPrefix(stats.ReferralCode, "LVL-") || len(stats.ReferralCode) != 12 {
		t.Fatalf("unexpected referral code: %q", stats.ReferralCode)
	}
}

func TestStatsService_EnsureStats_Idempotent(t *testing.T) {
	repo := newStubStatsRepo()
	svc := NewStatsService(repo, newStubDedup(), zerolog.Nop())

	first, err := svc.EnsureStats(context.Background(), "12345678K")
	if err != nil {
		t.Fatalf("first EnsureStats: %v", err)
	}
	second, err := svc.EnsureStats(context.Background(), "12345678K")
	if err != nil {
		t.Fatalf("second EnsureStats: %v", err)
	}
	if first.ReferralCode != second.ReferralCode {
		t.Fatalf("referral code changed across calls: %q vs %q", first.ReferralCode, second.ReferralCode)
	}
	if repo.createCalls != 1 {
		t.Fatalf("expected a single create, got %d", repo.createCalls)
	}
}

func TestStatsService_ProcessReferral_Awards(t *testing.T) {
	repo := newStubStatsRepo()
	repo.byRUN["11111111K"] = &domain.PlayerStats{RUN: "11111111K", ReferralCode: "LVL-REFERRER", Points: 450, Level: 1}
	repo.takenCodes["LVL-REFERRER"] = true

	svc := NewStatsService(repo, newStubDedup(), zerolog.Nop())
	err := svc.ProcessReferral(context.Background(), ports.ReferralEvent{
		Code:       "LVL-REFERRER",
		NewUserRUN: "22222222K",
	})
	if err != nil {
		t.Fatalf("ProcessReferral: %v", err)
	}

	got := repo.byRUN["11111111K"]
	if got.Points != 550 {
		t.Fatalf("expected 550 points, got %d", got.Points)
	}
	if got.Level != 2 {
		t.Fatalf("expected level 2 after crossing 500, got %d", got.Level)
	}
}

func TestStatsService_ProcessReferral_DuplicateSkipped(t *testing.T) {
	repo := newStubStatsRepo()
	repo.byRUN["11111111K"] = &domain.PlayerStats{RUN: "11111111K", ReferralCode: "LVL-REFERRER"}
	repo.takenCodes["LVL-REFERRER"] = true

	svc := NewStatsService(repo, newStubDedup(), zerolog.Nop())
	event := ports.ReferralEvent{Code: "LVL-REFERRER", NewUserRUN: "22222222K"}

	if err := svc.ProcessReferral(context.Background(), event); err != nil {
		t.Fatalf("first ProcessReferral: %v", err)
	}
	if err := svc.ProcessReferral(context.Background(), event); err != nil {
		t.Fatalf("second ProcessReferral: %v", err)
	}

	if got := repo.byRUN["11111111K"].Points; got != domain.ReferralPoints {
		t.Fatalf("replayed event awarded twice: %d points", got)
	}
}

func TestStatsService_ProcessReferral_UnknownCode(t *testing.T) {
	svc := NewStatsService(newStubStatsRepo(), newStubDedup(), zerolog.Nop())

	err := svc.ProcessReferral(context.Background(), ports.ReferralEvent{
		Code:       "LVL-NOSUCHCODE",
		NewUserRUN: "22222222K",
	})
	if !errors.Is(err, domain.ErrReferralCodeUnknown) {
		t.Fatalf("expected ErrReferralCodeUnknown, got %v", err)
	}
}

func TestStatsService_ProcessReferral_SelfReferral(t *testing.T) {
	repo := newStubStatsRepo()
	repo.byRUN["11111111K"] = &domain.PlayerStats{RUN: "11111111K", ReferralCode: "LVL-REFERRER"}
	repo.takenCodes["LVL-REFERRER"] = true

	svc := NewStatsService(repo, newStubDedup(), zerolog.Nop())
	err := svc.ProcessReferral(context.Background(), ports.ReferralEvent{
		Code:       "LVL-REFERRER",
		NewUserRUN: "11111111K",
	})
	if err != nil {
		t.Fatalf("self referral should be silently dropped: %v", err)
	}
	if got := repo.byRUN["11111111K"].Points; got != 0 {
		t.Fatalf("self referral awarded points: %d", got)
	}
}

func TestStatsService_ProcessReferral_DedupFailureStillAwards(t *testing.T) {
	repo := newStubStatsRepo()
	repo.byRUN["11111111K"] = &domain.PlayerStats{RUN: "11111111K", ReferralCode: "LVL-REFERRER"}
	repo.takenCodes["LVL-REFERRER"] = true

	dedup := newStubDedup()
	dedup.isErr = errors.New("redis down")

	svc := NewStatsService(repo, dedup, zerolog.Nop())
	err := svc.ProcessReferral(context.Background(), ports.ReferralEvent{
		Code:       "LVL-REFERRER",
		NewUserRUN: "22222222K",
	})
	if err != nil {
		t.Fatalf("ProcessReferral: %v", err)
	}
	if got := repo.byRUN["11111111K"].Points; got != domain.ReferralPoints {
		t.Fatalf("expected award despite dedup outage, got %d points", got)
	}
}
