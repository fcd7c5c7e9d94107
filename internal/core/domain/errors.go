package domain

import "errors"

// Sentinel errors, stable for errors.Is and for mapping to HTTP status codes
// in the API error handler.
var (
	// ErrInvalidCredentials is returned for every login failure — unknown
	// email, account without credential material, or hash mismatch. The
	// caller must never learn which, to prevent account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrMissingIdentity  = errors.New("run and email are required")
	ErrEmailTaken       = errors.New("email already registered")
	ErrRUNTaken         = errors.New("run already registered")
	ErrInvalidBirthDate = errors.New("invalid birth date")

	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("access forbidden")
	ErrUserNotFound    = errors.New("user not found")

	ErrCartNotFound    = errors.New("cart not found")
	ErrCartTooLarge    = errors.New("cart exceeds item limit")
	ErrInvalidQuantity = errors.New("item quantity out of range")

	ErrStatsNotFound       = errors.New("stats not found")
	ErrReferralCodeTaken   = errors.New("referral code already exists")
	ErrReferralCodeUnknown = errors.New("referral code not found")
)
