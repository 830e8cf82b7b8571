// Package seed creates the bootstrap admin account.
package seed

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/vpetrenko/catalog_api/internal/hash"
	"github.com/vpetrenko/catalog_api/internal/logging"
	"github.com/vpetrenko/catalog_api/internal/models"
	"github.com/vpetrenko/catalog_api/internal/repo"
)

// Admin creates the admin account with the given credentials unless an admin
// with that email already exists. Safe to run repeatedly.
func Admin(ctx context.Context, r *repo.GormRepo, name, email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("seed admin: email and password are required")
	}

	l := logging.FromContext(ctx)

	_, err := r.FindAdminByEmail(ctx, email)
	switch {
	case err == nil:
		l.Info("admin already exists", "email", email)
		return nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("seed admin: %w", err)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	admin := &models.Admin{
		Name:         name,
		Email:        email,
		PasswordHash: pwHash,
		Role:         models.RoleAdmin,
	}
	if err := r.CreateAdmin(ctx, admin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	l.Info("admin created", "email", email)
	return nil
}
