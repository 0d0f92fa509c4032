package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/draperly/atelier-api/internal/auth"
	"github.com/draperly/atelier-api/internal/config"
	"github.com/draperly/atelier-api/internal/domain"
	"github.com/draperly/atelier-api/internal/repository"
)

func newAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db := openServiceDB(t)
	issuer := auth.NewTokenIssuer(&config.AuthConfig{
		JWTSecret: "test-secret-key-for-auth-tests",
		TokenTTL:  time.Hour,
		Issuer:    "atelier-test",
	})
	return NewAuthService(repository.NewProfileRepository(db), issuer, zap.NewNop()), db
}

func seedProfile(t *testing.T, db *gorm.DB, email, password string, active bool) *domain.Profile {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	profile := &domain.Profile{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  "Test User",
		Role:         domain.RoleSales,
		IsActive:     active,
	}
	require.NoError(t, db.Create(profile).Error)
	return profile
}

func TestLogin(t *testing.T) {
	svc, db := newAuthService(t)
	seedProfile(t, db, "sales@draperly.app", "s3cret-pass", true)

	resp, err := svc.Login(context.Background(), &domain.LoginRequest{
		Email:    "sales@draperly.app",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "sales@draperly.app", resp.User.Email)
	assert.NotNil(t, resp.User.LastLoginAt)
}

func TestLogin_WrongPasswordAndUnknownEmailLookTheSame(t *testing.T) {
	svc, db := newAuthService(t)
	seedProfile(t, db, "sales@draperly.app", "s3cret-pass", true)

	_, errWrongPassword := svc.Login(context.Background(), &domain.LoginRequest{
		Email:    "sales@draperly.app",
		Password: "not-the-password",
	})
	_, errUnknownEmail := svc.Login(context.Background(), &domain.LoginRequest{
		Email:    "nobody@draperly.app",
		Password: "s3cret-pass",
	})

	assert.ErrorIs(t, errWrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknownEmail, ErrInvalidCredentials)
}

func TestLogin_DisabledProfile(t *testing.T) {
	svc, db := newAuthService(t)
	seedProfile(t, db, "gone@draperly.app", "s3cret-pass", false)

	_, err := svc.Login(context.Background(), &domain.LoginRequest{
		Email:    "gone@draperly.app",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, ErrProfileDisabled)
}

func TestMe(t *testing.T) {
	svc, db := newAuthService(t)
	profile := seedProfile(t, db, "me@draperly.app", "s3cret-pass", true)

	ctx := auth.WithUserContext(context.Background(), &auth.UserContext{
		UserID:      profile.ID,
		DisplayName: profile.DisplayName,
		Role:        profile.Role,
	})

	dto, err := svc.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "me@draperly.app", dto.Email)

	_, err = svc.Me(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}
