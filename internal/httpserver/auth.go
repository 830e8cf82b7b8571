package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/vpetrenko/catalog_api/internal/apperr"
	"github.com/vpetrenko/catalog_api/internal/logging"
	"github.com/vpetrenko/catalog_api/internal/middleware"
	"github.com/vpetrenko/catalog_api/internal/service"
	"github.com/vpetrenko/catalog_api/internal/tokens"
	"github.com/vpetrenko/catalog_api/internal/transport"
	"github.com/vpetrenko/catalog_api/internal/validation"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

// Login returns the access token in the body; the refresh token travels only
// in the scoped HttpOnly cookie.
func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login failed", "reason", "invalid body")
		return apperr.BadRequest("invalid body")
	}
	if err := validation.Struct(req); err != nil {
		return err
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}

	c.SetCookie(tokens.NewRefreshCookie(res.RefreshToken, res.RefreshExp))
	return respondOK(c, "Login successful", echo.Map{"accessToken": res.AccessToken})
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()

	var refreshToken string
	if cookie, err := c.Cookie(tokens.RefreshCookieName); err == nil {
		refreshToken = cookie.Value
	}

	res, err := h.Svc.Refresh(ctx, refreshToken)
	if err != nil {
		c.SetCookie(tokens.ClearRefreshCookie())
		return err
	}

	c.SetCookie(tokens.NewRefreshCookie(res.RefreshToken, res.RefreshExp))
	return respondOK(c, "Token refreshed", echo.Map{"accessToken": res.AccessToken})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	var refreshToken string
	if cookie, err := c.Cookie(tokens.RefreshCookieName); err == nil {
		refreshToken = cookie.Value
	}

	if err := h.Svc.Logout(ctx, refreshToken); err != nil {
		return err
	}

	c.SetCookie(tokens.ClearRefreshCookie())
	return respondOK(c, "Logged out successfully", nil)
}

// Me returns the profile the guard already resolved.
func (h *AuthHTTP) Me(c echo.Context) error {
	admin := middleware.AdminFromContext(c)
	if admin == nil {
		return apperr.Auth("missing access token")
	}
	return respondOK(c, "Current admin profile", admin)
}
