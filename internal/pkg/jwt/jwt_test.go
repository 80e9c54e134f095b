//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"hostel-backoffice/internal/domain/user"
	"hostel-backoffice/internal/pkg/clock"
	"hostel-backoffice/internal/pkg/jwt"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("round trip keeps user and role", func(t *testing.T) {
		svc := jwt.NewService("secret", time.Hour, clock.NewMockClock(start))
		id := uuid.New()

		token, err := svc.GenerateToken(id, user.RoleAdministrator)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, id, claims.UserID)
		assert.Equal(t, string(user.RoleAdministrator), claims.Role)
		assert.Equal(t, id.String(), claims.Subject)
	})

	t.Run("expired token", func(t *testing.T) {
		clk := clock.NewMockClock(start)
		svc := jwt.NewService("secret", time.Hour, clk)
		token, err := svc.GenerateToken(uuid.New(), user.RoleClient)
		require.NoError(t, err)

		clk.Add(2 * time.Hour)
		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := jwt.NewService("one", time.Hour, clock.NewMockClock(start)).GenerateToken(uuid.New(), user.RoleClient)
		require.NoError(t, err)

		_, err = jwt.NewService("two", time.Hour, clock.NewMockClock(start)).ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := jwt.NewService("secret", time.Hour, clock.NewMockClock(start)).ValidateToken("not-a-token")
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}

func TestServiceRejectsForgedClaims(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := jwt.NewService("secret", time.Hour, clock.NewMockClock(now))

	sign := func(claims jwt.Claims) string {
		token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)
		return token
	}
	base := func(id uuid.UUID, role string) jwt.Claims {
		return jwt.Claims{
			UserID: id,
			Role:   role,
			RegisteredClaims: gojwt.RegisteredClaims{
				Issuer:    jwt.Issuer,
				Subject:   id.String(),
				IssuedAt:  gojwt.NewNumericDate(now),
				ExpiresAt: gojwt.NewNumericDate(now.Add(time.Hour)),
			},
		}
	}

	t.Run("well formed claims pass", func(t *testing.T) {
		_, err := svc.ValidateToken(sign(base(uuid.New(), "client")))
		assert.NoError(t, err)
	})

	t.Run("subject differs from user_id", func(t *testing.T) {
		c := base(uuid.New(), "client")
		c.Subject = uuid.NewString()
		_, err := svc.ValidateToken(sign(c))
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("nil user", func(t *testing.T) {
		_, err := svc.ValidateToken(sign(base(uuid.Nil, "client")))
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := svc.ValidateToken(sign(base(uuid.New(), "superuser")))
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("foreign issuer", func(t *testing.T) {
		c := base(uuid.New(), "client")
		c.Issuer = "someone-else"
		_, err := svc.ValidateToken(sign(c))
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}
