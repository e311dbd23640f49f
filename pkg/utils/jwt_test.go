package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const testSecret = "unit-test-secret"

func signTestToken(t *testing.T, userID uuid.UUID, secret string, expiresAt time.Time) string {
	t.Helper()
	claims := JWTClaims{
		UserID:   userID.String(),
		Username: "somchai",
		Email:    "somchai@example.com",
		Role:     "user",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Subject:   userID.String(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	assert.NoError(t, err)
	return token
}

func TestValidateTokenStringToUUID(t *testing.T) {
	userID := uuid.New()

	t.Run("valid token", func(t *testing.T) {
		token := signTestToken(t, userID, testSecret, time.Now().Add(time.Hour))

		userCtx, err := ValidateTokenStringToUUID(token, testSecret)

		assert.NoError(t, err)
		assert.Equal(t, userID, userCtx.ID)
		assert.Equal(t, "somchai", userCtx.Username)
		assert.Equal(t, "user", userCtx.Role)
	})

	t.Run("bearer prefix accepted", func(t *testing.T) {
		token := signTestToken(t, userID, testSecret, time.Now().Add(time.Hour))

		userCtx, err := ValidateTokenStringToUUID("Bearer "+token, testSecret)

		assert.NoError(t, err)
		assert.Equal(t, userID, userCtx.ID)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signTestToken(t, userID, testSecret, time.Now().Add(-time.Hour))

		_, err := ValidateTokenStringToUUID(token, testSecret)

		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signTestToken(t, userID, "another-secret", time.Now().Add(time.Hour))

		_, err := ValidateTokenStringToUUID(token, testSecret)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing token", func(t *testing.T) {
		_, err := ValidateTokenStringToUUID("", testSecret)

		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := ValidateTokenStringToUUID("not-a-jwt", testSecret)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc123", ExtractTokenFromHeader("Bearer abc123"))
	assert.Equal(t, "", ExtractTokenFromHeader(""))
	assert.Equal(t, "", ExtractTokenFromHeader("abc123"))
	assert.Equal(t, "", ExtractTokenFromHeader("Basic abc123"))
}
