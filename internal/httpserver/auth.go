package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/maastudio/storefront/internal/logging"
	mwauth "github.com/maastudio/storefront/internal/middleware/auth"
	"github.com/maastudio/storefront/internal/service"
	"github.com/maastudio/storefront/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		l.Warn("register_error", "error", err)
		return httpError(err)
	}

	l.Info("user_registered", "user_id", user.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	access, refresh, user, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		l.Warn("login_error", "error", err)
		return httpError(err)
	}

	c.SetCookie(mwauth.CreateCookie("accessToken", access, "/", time.Now().Add(service.AccessTokenTTL)))
	c.SetCookie(mwauth.CreateCookie("refreshToken", refresh, "/api/v1/auth", time.Now().Add(service.RefreshTokenTTL)))

	l.Info("user_logged_in", "user_id", user.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
	})
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.refresh")

	cookie, err := c.Cookie("refreshToken")
	if err != nil {
		return c.JSON(http.StatusUnauthorized, "missing refresh token")
	}

	access, refresh, err := h.Svc.Rotate(ctx, cookie.Value)
	if err != nil {
		l.Warn("refresh_error", "error", err)
		return c.JSON(http.StatusUnauthorized, "invalid refresh token")
	}

	c.SetCookie(mwauth.CreateCookie("accessToken", access, "/", time.Now().Add(service.AccessTokenTTL)))
	c.SetCookie(mwauth.CreateCookie("refreshToken", refresh, "/api/v1/auth", time.Now().Add(service.RefreshTokenTTL)))
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	if cookie, err := c.Cookie("refreshToken"); err == nil {
		if err := h.Svc.Logout(ctx, cookie.Value); err != nil {
			l.Warn("logout_revoke_error", "error", err)
		}
	}

	c.SetCookie(mwauth.CreateCookie("accessToken", "", "/", time.Unix(0, 0)))
	c.SetCookie(mwauth.CreateCookie("refreshToken", "", "/api/v1/auth", time.Unix(0, 0)))
	return c.NoContent(http.StatusNoContent)
}
