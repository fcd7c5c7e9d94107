package ports

import "context"

// UserService exposes profile retrieval for the authenticated principal and,
// for admins, arbitrary accounts.
type UserService interface {
	// GetCurrentProfile returns the profile for the RUN carried by the
	// verified token. An empty RUN means no principal — the request was not
	// authenticated.
	GetCurrentProfile(ctx context.Context, run string) (*Profile, error)
	// GetProfile returns any user's profile by RUN (admin surface).
	GetProfile(ctx context.Context, run string) (*Profile, error)
}
