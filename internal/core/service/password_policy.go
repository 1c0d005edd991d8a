package service

import (
	"crypto/rand"
	"math/big"
	"strings"
	"unicode"
)

// passwordSymbols is the punctuation set a password must draw at least one
// character from.
const passwordSymbols = "!@#$%^&*()_+-=[]{}|;:,.<>?"

// generateAlphabet is the character set for generated passwords.
const generateAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"

// PasswordPolicy is the stateless strength validator applied on account
// creation. Login never runs it, so historical passwords that predate the
// policy keep working.
type PasswordPolicy struct {
	minLength int
}

// NewPasswordPolicy creates the policy with the given minimum length.
// Non-positive values fall back to 8.
func NewPasswordPolicy(minLength int) *PasswordPolicy {
	if minLength <= 0 {
		minLength = 8
	}
	return &PasswordPolicy{minLength: minLength}
}

// Validate reports whether the password meets all rules simultaneously:
// minimum length, at least one uppercase letter, one lowercase letter, one
// digit, and one symbol from passwordSymbols. There is no upper length bound.
func (p *PasswordPolicy) Validate(password string) bool {
	if len(password) < p.minLength {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

// Generate returns a random password of the given length drawn from
// generateAlphabet. Lengths below the policy minimum are raised to it.
func (p *PasswordPolicy) Generate(length int) (string, error) {
	if length < p.minLength {
		length = p.minLength
	}
	max := big.NewInt(int64(len(generateAlphabet)))
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(generateAlphabet[n.Int64()])
	}
	return b.String(), nil
}
