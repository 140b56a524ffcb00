package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/sjounng/team-draft-lol/internal/domain"
)

// HashPassword produces a bcrypt hash at the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a candidate password against a stored hash.
// A mismatch is reported as ErrInvalidCredential so callers never leak
// whether the username or the password was wrong.
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return domain.ErrInvalidCredential
	}
	return nil
}
