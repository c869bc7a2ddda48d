package identity

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the fixed cost factor used for all stored hashes.
const bcryptCost = 10

// HashPassword transforms a plaintext password into a storable bcrypt hash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the candidate password matches the stored
// hash. Used by the sign-in flow.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
