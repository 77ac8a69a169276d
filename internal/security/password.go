package security

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost defines the bcrypt work factor.
const bcryptCost = 12

// hashMarker is the prefix every bcrypt variant shares ($2a$, $2b$, $2y$).
// Stored secrets without it are legacy plaintext rows awaiting upgrade.
const hashMarker = "$2"

// IsHashed reports whether a stored secret is already in bcrypt form.
func IsHashed(secret string) bool {
	return strings.HasPrefix(secret, hashMarker)
}

// HashPassword hashes a plaintext password using bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a bcrypt hash with a plaintext password.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
