package auth

import (
	"golang.org/x/crypto/bcrypt"

	"watchlist/internal/errors"
)

// CheckPassword compares password with a bcrypt hash. An empty hash disables
// the check, which is how the two-user demo runs by default.
func CheckPassword(hash, password string) error {
	if hash == "" {
		return nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return errors.Unauthenticated("invalid credentials")
	}
	return nil
}

// HashPassword produces a hash suitable for auth.passwordHash.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
