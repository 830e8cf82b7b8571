// Package middleware holds the access guard: bearer-token authentication
// followed by role authorization, as explicit composable echo stages.
package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/vpetrenko/catalog_api/internal/apperr"
	"github.com/vpetrenko/catalog_api/internal/models"
	"github.com/vpetrenko/catalog_api/internal/tokens"
)

const adminContextKey = "auth.admin"

// AdminLoader resolves the admin record behind a verified token.
type AdminLoader interface {
	GetAdmin(ctx context.Context, id string) (*models.Admin, error)
}

type Guard struct {
	AccessSecret []byte
	Admins       AdminLoader
}

func NewGuard(accessSecret []byte, admins AdminLoader) *Guard {
	return &Guard{AccessSecret: accessSecret, Admins: admins}
}

// Authenticate requires a valid bearer access token and attaches the resolved
// admin to the request context. An admin deleted after token issuance is
// treated the same as an invalid token.
func (g *Guard) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		const prefix = "Bearer "
		if header == "" || !strings.HasPrefix(header, prefix) {
			return apperr.Auth("missing access token")
		}

		claims, err := tokens.ParseAccess(strings.TrimPrefix(header, prefix), g.AccessSecret)
		if err != nil {
			return apperr.Auth("invalid or expired access token")
		}

		admin, err := g.Admins.GetAdmin(c.Request().Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Auth("invalid or expired access token")
			}
			return apperr.Internal("authentication failed", err)
		}

		c.Set(adminContextKey, admin)
		return next(c)
	}
}

// RequireRole authorizes the authenticated admin against a closed role set.
// It must run after Authenticate.
func (g *Guard) RequireRole(roles ...models.Role) echo.MiddlewareFunc {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			admin := AdminFromContext(c)
			if admin == nil {
				return apperr.Auth("missing access token")
			}
			if !admin.Role.Known() {
				return apperr.Forbidden("insufficient permissions")
			}
			if _, ok := allowed[admin.Role]; !ok {
				return apperr.Forbidden("insufficient permissions")
			}
			return next(c)
		}
	}
}

func AdminFromContext(c echo.Context) *models.Admin {
	if admin, ok := c.Get(adminContextKey).(*models.Admin); ok {
		return admin
	}
	return nil
}
