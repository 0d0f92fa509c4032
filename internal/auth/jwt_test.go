package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draperly/atelier-api/internal/config"
	"github.com/draperly/atelier-api/internal/domain"
)

func testIssuer(ttl time.Duration) *TokenIssuer {
	return NewTokenIssuer(&config.AuthConfig{
		JWTSecret: "test-secret-at-least-32-characters!!",
		TokenTTL:  ttl,
		Issuer:    "atelier-api-test",
	})
}

func testProfile() *domain.Profile {
	p := &domain.Profile{
		Email:       "sales@example.com",
		DisplayName: "Sales User",
		Role:        domain.RoleSales,
	}
	p.ID = uuid.New()
	return p
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := testIssuer(time.Hour)
	profile := testProfile()

	token, expiresAt, err := issuer.Issue(profile)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	userCtx, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, userCtx.UserID)
	assert.Equal(t, profile.Email, userCtx.Email)
	assert.Equal(t, profile.DisplayName, userCtx.DisplayName)
	assert.Equal(t, domain.RoleSales, userCtx.Role)
}

func TestValidate_ExpiredToken(t *testing.T) {
	issuer := testIssuer(-time.Minute)
	token, _, err := issuer.Issue(testProfile())
	require.NoError(t, err)

	_, err = issuer.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidate_WrongSecret(t *testing.T) {
	token, _, err := testIssuer(time.Hour).Issue(testProfile())
	require.NoError(t, err)

	other := NewTokenIssuer(&config.AuthConfig{
		JWTSecret: "a-completely-different-secret-value",
		TokenTTL:  time.Hour,
		Issuer:    "atelier-api-test",
	})
	_, err = other.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_WrongIssuer(t *testing.T) {
	token, _, err := testIssuer(time.Hour).Issue(testProfile())
	require.NoError(t, err)

	other := NewTokenIssuer(&config.AuthConfig{
		JWTSecret: "test-secret-at-least-32-characters!!",
		TokenTTL:  time.Hour,
		Issuer:    "someone-else",
	})
	_, err = other.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_Garbage(t *testing.T) {
	_, err := testIssuer(time.Hour).Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPassword(hash, "correct horse battery staple"))
	assert.False(t, CheckPassword(hash, "wrong password"))
}
