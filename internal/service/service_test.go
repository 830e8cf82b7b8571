package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vpetrenko/catalog_api/internal/apperr"
	"github.com/vpetrenko/catalog_api/internal/hash"
	"github.com/vpetrenko/catalog_api/internal/models"
	"github.com/vpetrenko/catalog_api/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	// one connection, or every pool member gets its own memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	return &AuthService{
		Repo:          &repo.GormRepo{DB: newTestDB(t)},
		AccessSecret:  []byte("test-access-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    24 * time.Hour,
	}
}

func newCatalogService(t *testing.T) *CatalogService {
	t.Helper()
	return &CatalogService{Repo: &repo.GormRepo{DB: newTestDB(t)}}
}

func seedAdmin(t *testing.T, r *repo.GormRepo, email, password string, role models.Role) *models.Admin {
	t.Helper()

	pwHash, err := hash.HashPassword(password)
	require.NoError(t, err)

	admin := &models.Admin{
		Name:         "Test Admin",
		Email:        email,
		PasswordHash: pwHash,
		Role:         role,
	}
	require.NoError(t, r.CreateAdmin(context.Background(), admin))
	return admin
}

func timeIn(d time.Duration) time.Time { return time.Now().Add(d) }

func requireKind(t *testing.T, err error, kind apperr.Kind) *apperr.Error {
	t.Helper()

	require.Error(t, err)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, kind, appErr.Kind)
	return appErr
}
