package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/draperly/atelier-api/internal/auth"
	"github.com/draperly/atelier-api/internal/domain"
	"github.com/draperly/atelier-api/internal/repository"
)

// AuthService handles email/password login and token issuance
type AuthService struct {
	profileRepo *repository.ProfileRepository
	issuer      *auth.TokenIssuer
	logger      *zap.Logger
}

func NewAuthService(
	profileRepo *repository.ProfileRepository,
	issuer *auth.TokenIssuer,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		profileRepo: profileRepo,
		issuer:      issuer,
		logger:      logger,
	}
}

// Login verifies credentials and returns a signed token with the profile.
// Unknown email and wrong password collapse into the same error so the
// response does not reveal which one failed.
func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	profile, err := s.profileRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up profile: %w", err)
	}

	if !profile.IsActive {
		return nil, ErrProfileDisabled
	}

	if !auth.CheckPassword(profile.PasswordHash, req.Password) {
		s.logger.Warn("login failed",
			zap.String("email", req.Email))
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.profileRepo.TouchLastLogin(ctx, profile.ID, now); err != nil {
		s.logger.Warn("failed to record last login",
			zap.String("profileID", profile.ID.String()),
			zap.Error(err))
	}
	profile.LastLoginAt = &now

	token, expiresAt, err := s.issuer.Issue(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("login succeeded",
		zap.String("profileID", profile.ID.String()),
		zap.String("role", string(profile.Role)))

	return &domain.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
		User:      toProfileDTO(profile),
	}, nil
}

// Me returns the profile behind an authenticated request
func (s *AuthService) Me(ctx context.Context) (*domain.ProfileDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	profile, err := s.profileRepo.GetByID(ctx, userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return toProfileDTO(profile), nil
}

func toProfileDTO(p *domain.Profile) *domain.ProfileDTO {
	dto := &domain.ProfileDTO{
		ID:          p.ID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		Role:        p.Role,
		IsActive:    p.IsActive,
	}
	if p.LastLoginAt != nil {
		formatted := p.LastLoginAt.UTC().Format(time.RFC3339)
		dto.LastLoginAt = &formatted
	}
	return dto
}
