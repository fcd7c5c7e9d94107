package ports

import (
	"context"

	"github.com/levelup/levelup-backend/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts. The
// backing store owns the uniqueness guarantees on email and RUN: Create must
// surface a concurrent duplicate as domain.ErrEmailTaken / domain.ErrRUNTaken
// even when the service-level pre-check raced.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByRUN(ctx context.Context, run string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByRUN(ctx context.Context, run string) (bool, error)
	Create(ctx context.Context, user *domain.User) error
}
