package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	assert.NotEqual(t, "hunter2", hash)
	assert.True(t, CheckPasswordHash("hunter2", hash))
	assert.False(t, CheckPasswordHash("hunter3", hash))
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)
	id := uuid.New()

	token, err := svc.GenerateToken(id, "a@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.ClientID)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, id.String(), claims.Subject)
}

func TestJWTService_RejectsExpiredAndForeignTokens(t *testing.T) {
	expired := NewJWTService("secret", -time.Minute)
	token, err := expired.GenerateToken(uuid.New(), "a@example.com")
	require.NoError(t, err)

	_, err = expired.ValidateToken(token)
	assert.Error(t, err)

	other := NewJWTService("another-secret", time.Hour)
	token, err = other.GenerateToken(uuid.New(), "a@example.com")
	require.NoError(t, err)

	svc := NewJWTService("secret", time.Hour)
	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}
