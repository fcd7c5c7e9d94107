// Package password implements salted password hashing with PBKDF2-SHA256.
// Salt and derived key are stored as separate hex fields, which keeps the
// persisted credential shape independent of the KDF encoding.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltBytes  = 16
	keyBytes   = 32
	iterations = 210_000
)

// Hasher derives and compares salted password hashes.
type Hasher struct{}

func NewHasher() *Hasher {
	return &Hasher{}
}

// GenerateSalt returns a fresh random salt, hex-encoded.
func (h *Hasher) GenerateSalt() (string, error) {
	b := make([]byte, saltBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Hash derives the hex-encoded key for the given hex salt and password.
// The derivation is deterministic: same salt + password, same output.
func (h *Hasher) Hash(saltHex, password string) (string, error) {
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return "", fmt.Errorf("decode salt: %w", err)
	}
	key := pbkdf2.Key([]byte(password), salt, iterations, keyBytes, sha256.New)
	return hex.EncodeToString(key), nil
}

// Verify reports whether password derives to hashHex under saltHex.
// The comparison is constant-time.
func (h *Hasher) Verify(saltHex, hashHex, password string) bool {
	computed, err := h.Hash(saltHex, password)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hashHex)) == 1
}
