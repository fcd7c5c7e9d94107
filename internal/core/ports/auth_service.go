package ports

import (
	"context"
	"time"

	"github.com/levelup/levelup-backend/internal/core/domain"
)

// Profile is the external-safe projection of a user: everything the account
// carries except credential material. Wire names keep the upstream Spanish
// JSON contract.
type Profile struct {
	RUN              string      `json:"run"`
	Name             string      `json:"nombre"`
	Surname          string      `json:"apellidos"`
	Email            string      `json:"correo"`
	Role             domain.Role `json:"perfil"`
	BirthDate        *time.Time  `json:"fechaNacimiento,omitempty"`
	Region           string      `json:"region"`
	Commune          string      `json:"comuna"`
	Address          string      `json:"direccion"`
	LifetimeDiscount bool        `json:"descuentoVitalicio"`
	SystemAccount    bool        `json:"systemAccount"`
}

// NewProfile projects a user onto its external representation. Total over a
// well-formed user; hash and salt are excluded by construction.
func NewProfile(u *domain.User) *Profile {
	return &Profile{
		RUN:              u.RUN,
		Name:             u.Name,
		Surname:          u.Surname,
		Email:            u.Email,
		Role:             u.Role,
		BirthDate:        u.BirthDate,
		Region:           u.Region,
		Commune:          u.Commune,
		Address:          u.Address,
		LifetimeDiscount: u.LifetimeDiscount,
		SystemAccount:    u.SystemAccount,
	}
}

// RegisterInput carries the raw registration fields. Email and RUN are
// normalized by the service; the rest is stored trimmed.
type RegisterInput struct {
	RUN          string
	Name         string
	Surname      string
	Email        string
	Password     string
	BirthDate    string // ISO date or blank
	Region       string
	Commune      string
	Address      string
	ReferralCode string // optional code of the referring user
}

// AuthResult is returned on successful login or registration.
type AuthResult struct {
	Token     string
	TokenType string
	User      *Profile
}

// AuthService defines the credential and token-issuance use cases.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
}
