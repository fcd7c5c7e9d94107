// Package token mints and verifies the signed bearer tokens issued on login
// and registration. Tokens are stateless: expiry is the only invalidation
// mechanism, there is no revocation list.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/levelup/levelup-backend/internal/core/domain"
)

// TokenType is the literal sent alongside every issued token.
const TokenType = "Bearer"

var ErrInvalidToken = errors.New("invalid token")

// Claims is the verified content of a token.
type Claims struct {
	RUN   string
	Email string
	Role  domain.Role
}

// Issuer signs and verifies HS256 tokens. The secret and TTL are injected at
// construction so the component stays testable in isolation.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue mints a signed token for the given user.
func (i *Issuer) Issue(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":    user.RUN,
		"correo": user.Email,
		"perfil": string(user.Role),
		"iat":    now.Unix(),
		"exp":    now.Add(i.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Verify parses and validates raw, returning its claims. Any signature,
// algorithm, or expiry problem yields ErrInvalidToken.
func (i *Issuer) Verify(raw string) (*Claims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}

	run, _ := claims["sub"].(string)
	email, _ := claims["correo"].(string)
	role, _ := claims["perfil"].(string)
	if run == "" {
		return nil, ErrInvalidToken
	}

	return &Claims{RUN: run, Email: email, Role: domain.Role(role)}, nil
}
