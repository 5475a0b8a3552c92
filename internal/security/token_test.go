package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-0123456789abcdef-0123456789"

func issueToken(t *testing.T, secret string, claims UserClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestValidateToken(t *testing.T) {
	manager := NewTokenManager(testSecret)

	t.Run("ValidToken", func(t *testing.T) {
		signed := issueToken(t, testSecret, UserClaims{
			UserID: "user-1",
			Email:  "u@example.com",
			Roles:  []string{"admin"},
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})

		claims, err := manager.ValidateToken(signed)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.True(t, claims.IsAdmin())
	})

	t.Run("SubjectFallback", func(t *testing.T) {
		signed := issueToken(t, testSecret, UserClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user-2",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})

		claims, err := manager.ValidateToken(signed)
		require.NoError(t, err)
		assert.Equal(t, "user-2", claims.UserID)
		assert.False(t, claims.IsAdmin())
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		signed := issueToken(t, testSecret, UserClaims{
			UserID: "user-1",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		})

		_, err := manager.ValidateToken(signed)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		signed := issueToken(t, "another-secret-0123456789abcdef-012345", UserClaims{
			UserID: "user-1",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})

		_, err := manager.ValidateToken(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := manager.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
