//go:build unit

package queries_test

import (
	"encoding/base64"
	"testing"
	"time"

	"hostel-backoffice/internal/usecase/queries"
	"hostel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAfterCursor(t *testing.T) {
	t.Run("round trip keeps microseconds and id", func(t *testing.T) {
		at := time.Date(2024, 6, 1, 9, 30, 15, 123456789, time.UTC)
		id := uuid.New()

		gotAt, gotID, err := queries.DecodeAfterCursor(queries.EncodeAfterCursor(at, id))

		require.NoError(t, err)
		assert.Equal(t, at.Truncate(time.Microsecond), gotAt)
		assert.Equal(t, id, gotID)
	})

	invalid := map[string]string{
		"empty":         "",
		"not base64":    "%%%",
		"wrong version": base64.URLEncoding.EncodeToString([]byte("v0:1-" + uuid.NewString())),
		"no separator":  base64.URLEncoding.EncodeToString([]byte("v1:12345")),
		"bad micros":    base64.URLEncoding.EncodeToString([]byte("v1:abc-" + uuid.NewString())),
		"bad id":        base64.URLEncoding.EncodeToString([]byte("v1:12345-nope")),
	}
	for name, cursor := range invalid {
		t.Run(name, func(t *testing.T) {
			_, _, err := queries.DecodeAfterCursor(cursor)
			assert.ErrorIs(t, err, queries.ErrInvalidCursor)
		})
	}
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, shared.DefaultListLimit, queries.ValidateLimit(0))
	assert.Equal(t, shared.DefaultListLimit, queries.ValidateLimit(-3))
	assert.Equal(t, 7, queries.ValidateLimit(7))
	assert.Equal(t, shared.MaxListLimit, queries.ValidateLimit(shared.MaxListLimit+1))
}
