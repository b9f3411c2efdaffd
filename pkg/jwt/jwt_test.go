package jwt

import (
	"testing"
	"time"

	"hospital-management-api/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(secret string) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        secret,
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
	})
}

func TestGenerateAndValidate(t *testing.T) {
	s := newTestService("secret")
	doctorID := uint(12)
	sub := Identity{UserID: 3, Username: "drhouse", Role: "doctor", DoctorID: &doctorID}

	access, accessID, err := s.GenerateAccessToken(sub)
	require.NoError(t, err)
	require.NotEmpty(t, accessID)

	claims, err := s.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, sub, claims.Identity)
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, accessID, claims.TokenID)

	refresh, refreshID, err := s.GenerateRefreshToken(sub)
	require.NoError(t, err)
	assert.NotEqual(t, accessID, refreshID)

	claims, err = s.ValidateToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, RefreshToken, claims.TokenType)
}

func TestValidateRejectsForeignSignature(t *testing.T) {
	token, _, err := newTestService("one").GenerateAccessToken(Identity{UserID: 1})
	require.NoError(t, err)

	_, err = newTestService("two").ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	s := newTestService("secret")
	issued := time.Now().Add(-time.Hour)
	s.now = func() time.Time { return issued }

	token, _, err := s.GenerateAccessToken(Identity{UserID: 1})
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := newTestService("secret").ValidateToken("not.a.token")
	assert.Error(t, err)
}
