package domain

import "time"

// Role is the closed set of account profiles.
type Role string

const (
	RoleCustomer Role = "Cliente"
	RoleAdmin    Role = "Admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleAdmin:
		return true
	}
	return false
}

// User models a registered account. RUN is the Chilean national identifier,
// stored canonical (digits plus an optional trailing uppercase K); Email is
// stored canonical lowercase. PasswordHash and PasswordSalt are hex strings
// that are either both present or both absent — an account missing either
// can never log in.
type User struct {
	RUN              string     `json:"run"`
	Name             string     `json:"nombre"`
	Surname          string     `json:"apellidos"`
	Email            string     `json:"correo"`
	Role             Role       `json:"perfil"`
	BirthDate        *time.Time `json:"fechaNacimiento,omitempty"`
	Region           string     `json:"region"`
	Commune          string     `json:"comuna"`
	Address          string     `json:"direccion"`
	LifetimeDiscount bool       `json:"descuentoVitalicio"`
	SystemAccount    bool       `json:"systemAccount"`
	PasswordHash     string     `json:"-"`
	PasswordSalt     string     `json:"-"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// HasCredentials reports whether the account carries a full hash/salt pair.
func (u *User) HasCredentials() bool {
	return u.PasswordHash != "" && u.PasswordSalt != ""
}

// DiscountDomain is the institutional email suffix that grants the lifetime
// discount at registration time. The flag is derived once and stored.
const DiscountDomain = "@duoc.cl"
