package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrHashingFailed = errors.New("password hashing failed")
	ErrMismatch      = errors.New("password does not match")
	ErrEmptyPassword = errors.New("empty password")
	ErrTooLong       = errors.New("password longer than 72 bytes")
)

const (
	DefaultCost = bcrypt.DefaultCost
	// MaxBytes is the bcrypt input limit; longer passwords would be silently truncated by older libraries.
	MaxBytes = 72
)

func HashPassword(password string) (string, error) {
	return HashWithCost(password, DefaultCost)
}

// HashWithCost exists for the seeder and tests, where DefaultCost makes bulk inserts slow.
func HashWithCost(password string, cost int) (string, error) {
	switch {
	case password == "":
		return "", ErrEmptyPassword
	case len(password) > MaxBytes:
		return "", ErrTooLong
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", ErrHashingFailed
	}
	return string(hashed), nil
}

// ComparePassword reports ErrMismatch for a wrong password; any other error means the stored
// hash itself is unusable.
func ComparePassword(hashedPassword, password string) error {
	if hashedPassword == "" || password == "" {
		return ErrEmptyPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrMismatch
	default:
		return err
	}
}
