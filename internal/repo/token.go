package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/vpetrenko/catalog_api/internal/models"
)

var ErrTokenNotUsable = errors.New("refresh token expired or revoked")

func (r *GormRepo) AddRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Create(token).Error
}

func (r *GormRepo) FindRefreshByJTI(ctx context.Context, jti string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	if err := r.DB.WithContext(ctx).Where("jti = ?", jti).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// RevokeRefreshByHash is the logout path: best-effort, a token that is not
// in the store is not an error.
func (r *GormRepo) RevokeRefreshByHash(ctx context.Context, tokenHash string) error {
	return r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

func refreshUsable(db *gorm.DB, jti string) error {
	var token models.RefreshToken
	if err := db.Where("jti = ?", jti).First(&token).Error; err != nil {
		return err
	}
	if token.Revoked || token.ExpiresAt < time.Now().Unix() {
		return ErrTokenNotUsable
	}
	return nil
}

func (r *GormRepo) RefreshUsable(ctx context.Context, jti string) error {
	return refreshUsable(r.DB.WithContext(ctx), jti)
}

// RotateRefreshToken revokes the old record and inserts the replacement in
// one transaction, so a racing reuse of the old token loses.
func (r *GormRepo) RotateRefreshToken(ctx context.Context, oldJTI string, newToken *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := refreshUsable(tx, oldJTI); err != nil {
			return err
		}
		if err := tx.Model(&models.RefreshToken{}).
			Where("jti = ?", oldJTI).
			Update("revoked", true).Error; err != nil {
			return err
		}
		return tx.Create(newToken).Error
	})
}
