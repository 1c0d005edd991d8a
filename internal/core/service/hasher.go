package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher implements ports.PasswordHasher using bcrypt. The cost is
// fixed at construction; bcrypt embeds salt and parameters in the output, so
// verification needs no extra state.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a BcryptHasher. A cost outside bcrypt's valid range
// falls back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

var errEmptyPassword = errors.New("password cannot be empty")

// Hash derives a salted bcrypt hash. The salt is random per call, so hashing
// the same password twice yields two different strings that both verify.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", errEmptyPassword
	}
	out, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Verify reports whether password matches hash. bcrypt's comparison is
// constant-time over the derived key. A malformed stored hash returns false
// rather than an error: the orchestrator treats corrupt records and wrong
// passwords as the same authentication failure.
func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
