package auth

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the bcrypt hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateSessionToken returns a random opaque session token.
func GenerateSessionToken() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Password is the single demo password shared by every user, kept only as
// a bcrypt hash.
type Password struct {
	hash string
}

// NewPassword hashes a plain-text password.
func NewPassword(plain string) (Password, error) {
	hash, err := HashPassword(plain)
	if err != nil {
		return Password{}, err
	}
	return Password{hash: hash}, nil
}

// PasswordFromHash wraps an existing bcrypt hash.
func PasswordFromHash(hash string) (Password, error) {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return Password{}, err
	}
	return Password{hash: hash}, nil
}

// Matches reports whether candidate is the demo password.
func (p Password) Matches(candidate string) bool {
	return p.hash != "" && CheckPassword(candidate, p.hash)
}
