// Package password hashes and checks the credentials held by the in-memory
// development backend.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// hashCost stays at the bcrypt default; the stub backend seeds only a
// handful of accounts at startup.
const hashCost = bcrypt.DefaultCost

var ErrInvalidPassword = errors.New("invalid password")

// Hash generates a bcrypt hash of the plaintext password.
func Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashed), nil
}

// Verify reports whether the plaintext password matches the stored hash. A
// mismatch comes back as ErrInvalidPassword so callers can fold it into
// their own credential error.
func Verify(password, hash string) error {
	if password == "" || hash == "" {
		return ErrInvalidPassword
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidPassword
		}

		return fmt.Errorf("failed to verify password: %w", err)
	}

	return nil
}
