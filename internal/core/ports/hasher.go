package ports

// PasswordHasher provides one-way credential hashing and verification.
type PasswordHasher interface {
	// Hash derives a salted one-way hash from the plaintext. Two calls with
	// the same input produce different outputs (random salt).
	Hash(password string) (string, error)

	// Verify reports whether plaintext matches the stored hash. A malformed
	// hash verifies as false rather than erroring, so callers treat corrupt
	// records and wrong passwords identically.
	Verify(password, hash string) bool
}
