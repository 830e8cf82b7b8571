package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/vpetrenko/catalog_api/internal/apperr"
	"github.com/vpetrenko/catalog_api/internal/events"
	"github.com/vpetrenko/catalog_api/internal/hash"
	"github.com/vpetrenko/catalog_api/internal/logging"
	"github.com/vpetrenko/catalog_api/internal/models"
	"github.com/vpetrenko/catalog_api/internal/repo"
	"github.com/vpetrenko/catalog_api/internal/tokens"
)

// AuthService is the session issuer: it mints the access/refresh token pair,
// rotates refresh tokens on use and revokes them on logout.
type AuthService struct {
	Repo   *repo.GormRepo
	Events *events.Producer

	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	RefreshExp   time.Time
	Admin        *models.Admin
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	admin, err := s.Repo.FindAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login failed", "reason", "unknown email")
			return nil, apperr.Auth("invalid email or password")
		}
		return nil, apperr.Internal("login failed", err)
	}

	if !hash.CheckPassword(admin.PasswordHash, password) {
		l.Warn("login failed", "reason", "password mismatch")
		return nil, apperr.Auth("invalid email or password")
	}

	result, record, err := s.issueTokens(admin)
	if err != nil {
		return nil, apperr.Internal("login failed", err)
	}
	if err := s.Repo.AddRefreshToken(ctx, record); err != nil {
		return nil, apperr.Internal("login failed", err)
	}

	l.Info("login successful", "admin_id", admin.ID)
	s.Events.Publish(ctx, "auth.login", admin.ID, nil)
	return result, nil
}

// Refresh validates the presented refresh token against both its signature
// and the stored record, then rotates it: the old record is revoked and a
// fresh pair is issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	if refreshToken == "" {
		return nil, apperr.Auth("refresh token missing")
	}

	claims, err := tokens.ParseRefresh(refreshToken, s.RefreshSecret)
	if err != nil {
		return nil, apperr.Auth("invalid refresh token")
	}

	admin, err := s.Repo.GetAdmin(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Auth("invalid refresh token")
		}
		return nil, apperr.Internal("refresh failed", err)
	}

	result, record, err := s.issueTokens(admin)
	if err != nil {
		return nil, apperr.Internal("refresh failed", err)
	}

	if err := s.Repo.RotateRefreshToken(ctx, claims.ID, record); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, repo.ErrTokenNotUsable) {
			return nil, apperr.Auth("refresh token revoked")
		}
		return nil, apperr.Internal("refresh failed", err)
	}

	return result, nil
}

// Logout revokes the presented refresh token. Unknown or absent tokens are
// not errors: logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.Repo.RevokeRefreshByHash(ctx, tokens.HashToken(refreshToken)); err != nil {
		return apperr.Internal("logout failed", err)
	}
	s.Events.Publish(ctx, "auth.logout", "", nil)
	return nil
}

func (s *AuthService) issueTokens(admin *models.Admin) (*LoginResult, *models.RefreshToken, error) {
	accessExp := time.Now().Add(s.AccessTTL)
	accessToken, err := tokens.SignAccess(s.AccessSecret, admin.ID, string(admin.Role), accessExp)
	if err != nil {
		return nil, nil, err
	}

	jti := tokens.NewJTI()
	refreshExp := time.Now().Add(s.RefreshTTL)
	refreshToken, err := tokens.SignRefresh(s.RefreshSecret, admin.ID, jti, refreshExp)
	if err != nil {
		return nil, nil, err
	}

	record := &models.RefreshToken{
		AdminID:   admin.ID,
		TokenHash: tokens.HashToken(refreshToken),
		JTI:       jti,
		ExpiresAt: refreshExp.Unix(),
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		RefreshExp:   refreshExp,
		Admin:        admin,
	}, record, nil
}
