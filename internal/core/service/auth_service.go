package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/levelup/levelup-backend/internal/api/metrics"
	"github.com/levelup/levelup-backend/internal/core/domain"
	"github.com/levelup/levelup-backend/internal/core/ports"
	"github.com/levelup/levelup-backend/internal/pkg/password"
	"github.com/levelup/levelup-backend/internal/pkg/token"
)

// ReferralQueue enqueues referral events for async processing.
type ReferralQueue interface {
	Enqueue(event ports.ReferralEvent)
}

// AuthService implements login and registration.
type AuthService struct {
	repo      ports.UserRepository
	hasher    *password.Hasher
	issuer    *token.Issuer
	stats     ports.StatsService
	referrals ReferralQueue
	log       zerolog.Logger
}

func NewAuthService(
	repo ports.UserRepository,
	hasher *password.Hasher,
	issuer *token.Issuer,
	stats ports.StatsService,
	referrals ReferralQueue,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		repo:      repo,
		hasher:    hasher,
		issuer:    issuer,
		stats:     stats,
		referrals: referrals,
		log:       log,
	}
}

// Login verifies credentials and mints a token. Unknown email, missing
// credential material, and hash mismatch are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*ports.AuthResult, error) {
	normalized := domain.NormalizeEmail(email)

	user, err := s.repo.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	if !user.HasCredentials() {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}
	if !s.hasher.Verify(user.PasswordSalt, user.PasswordHash, rawPassword) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	signed, err := s.issuer.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("login: sign token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("run", user.RUN).Msg("user logged in")

	return &ports.AuthResult{
		Token:     signed,
		TokenType: token.TokenType,
		User:      ports.NewProfile(user),
	}, nil
}

// Register validates, persists, and then mints a token for a new account.
// Validation is fail-fast; the first violation wins. A token is never issued
// for an account that failed to persist.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	email := domain.NormalizeEmail(in.Email)
	run := domain.NormalizeRUN(in.RUN)

	if email == "" || run == "" {
		return nil, domain.ErrMissingIdentity
	}

	if taken, err := s.repo.ExistsByEmail(ctx, email); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	} else if taken {
		metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
		return nil, domain.ErrEmailTaken
	}
	if taken, err := s.repo.ExistsByRUN(ctx, run); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	} else if taken {
		metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
		return nil, domain.ErrRUNTaken
	}

	birthDate, err := parseBirthDate(in.BirthDate)
	if err != nil {
		return nil, err
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	hash, err := s.hasher.Hash(salt, in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		RUN:              run,
		Name:             strings.TrimSpace(in.Name),
		Surname:          strings.TrimSpace(in.Surname),
		Email:            email,
		Role:             domain.RoleCustomer,
		BirthDate:        birthDate,
		Region:           strings.TrimSpace(in.Region),
		Commune:          strings.TrimSpace(in.Commune),
		Address:          strings.TrimSpace(in.Address),
		LifetimeDiscount: strings.HasSuffix(email, domain.DiscountDomain),
		SystemAccount:    false,
		PasswordHash:     hash,
		PasswordSalt:     salt,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	// The unique indexes are the authority: a concurrent duplicate that
	// slipped past the pre-checks still comes back as ErrEmailTaken or
	// ErrRUNTaken from the repository.
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) || errors.Is(err, domain.ErrRUNTaken) {
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	if _, err := s.stats.EnsureStats(ctx, user.RUN); err != nil {
		// Stats are not part of the registration contract; log and move on.
		s.log.Warn().Err(err).Str("run", user.RUN).Msg("failed to create player stats")
	}
	if code := strings.TrimSpace(in.ReferralCode); code != "" {
		s.referrals.Enqueue(ports.ReferralEvent{Code: code, NewUserRUN: user.RUN})
	}

	signed, err := s.issuer.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("register: sign token: %w", err)
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("run", user.RUN).Bool("lifetime_discount", user.LifetimeDiscount).Msg("user registered")

	return &ports.AuthResult{
		Token:     signed,
		TokenType: token.TokenType,
		User:      ports.NewProfile(user),
	}, nil
}

// parseBirthDate parses an optional ISO calendar date. Blank means unset.
func parseBirthDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, domain.ErrInvalidBirthDate
	}
	return &t, nil
}
