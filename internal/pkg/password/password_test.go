//go:build unit

package password_test

import (
	"strings"
	"testing"

	"hostel-backoffice/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := password.HashWithCost("password123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.NoError(t, password.ComparePassword(hash, "password123"))
	assert.ErrorIs(t, password.ComparePassword(hash, "password124"), password.ErrMismatch)
	assert.ErrorIs(t, password.ComparePassword("", "password123"), password.ErrEmptyPassword)

	_, err = password.HashPassword("")
	assert.ErrorIs(t, err, password.ErrEmptyPassword)
}

func TestHashRejectsInputBcryptWouldTruncate(t *testing.T) {
	_, err := password.HashWithCost(strings.Repeat("a", password.MaxBytes), bcrypt.MinCost)
	assert.NoError(t, err)

	_, err = password.HashWithCost(strings.Repeat("a", password.MaxBytes+1), bcrypt.MinCost)
	assert.ErrorIs(t, err, password.ErrTooLong)
}

func TestCompareWithCorruptHash(t *testing.T) {
	err := password.ComparePassword("not-a-bcrypt-hash", "password123")
	require.Error(t, err)
	assert.NotErrorIs(t, err, password.ErrMismatch)
}
