package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) JWTService {
	t.Setenv("JWT_SECRET", "test-secret")
	return NewJWTService()
}

func TestTokenRoundTrip(t *testing.T) {
	service := newTestService(t)

	token := service.GenerateToken("42")
	require.NotEmpty(t, token)

	userID, err := service.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "42", userID)
}

func TestGetUserIDByTokenRejectsGarbage(t *testing.T) {
	service := newTestService(t)

	_, err := service.GetUserIDByToken("not-a-token")
	assert.Error(t, err)
}

func TestGetUserIDByTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-one")
	first := NewJWTService()
	token := first.GenerateToken("7")

	t.Setenv("JWT_SECRET", "secret-two")
	second := NewJWTService()

	_, err := second.GetUserIDByToken(token)
	assert.Error(t, err)
}

func TestResetTokenRoundTrip(t *testing.T) {
	service := newTestService(t)

	token, err := service.GenerateResetToken("user@example.com", 15*time.Minute)
	require.NoError(t, err)

	email, err := service.ValidateResetToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", email)
}

func TestResetTokenExpires(t *testing.T) {
	service := newTestService(t)

	token, err := service.GenerateResetToken("user@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = service.ValidateResetToken(token)
	assert.Error(t, err)
}
