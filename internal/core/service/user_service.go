package service

import (
	"context"
	"fmt"

	"github.com/levelup/levelup-backend/internal/core/domain"
	"github.com/levelup/levelup-backend/internal/core/ports"
)

// UserService implements profile retrieval.
type UserService struct {
	repo ports.UserRepository
}

func NewUserService(repo ports.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// GetCurrentProfile returns the profile behind the authenticated principal.
// The profile is re-read from the store so it reflects current state, not the
// snapshot embedded in the token.
func (s *UserService) GetCurrentProfile(ctx context.Context, run string) (*ports.Profile, error) {
	if run == "" {
		return nil, domain.ErrUnauthenticated
	}
	user, err := s.repo.FindByRUN(ctx, run)
	if err != nil {
		// The token named an account that no longer exists; the principal
		// is not valid anymore.
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("get current profile: %w", err)
	}
	return ports.NewProfile(user), nil
}

// GetProfile returns any account's profile by RUN. Callers gate this behind
// the admin role.
func (s *UserService) GetProfile(ctx context.Context, run string) (*ports.Profile, error) {
	user, err := s.repo.FindByRUN(ctx, domain.NormalizeRUN(run))
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return ports.NewProfile(user), nil
}
