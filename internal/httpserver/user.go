package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maastudio/storefront/internal/logging"
	"github.com/maastudio/storefront/internal/service"
	"github.com/maastudio/storefront/internal/transport"
)

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.list")

	actor, err := GetActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	page, limit := pageParams(c)
	out, err := h.Svc.ListUsers(ctx, actor, page, limit)
	if err != nil {
		l.Error("list_users_error", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *UserHTTP) GetUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.get")

	actor, err := GetActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	u, err := h.Svc.GetUser(ctx, actor, id)
	if err != nil {
		l.Error("get_user_error", "error", err, "user_id", id)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UserHTTP) UpdateUserRole(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update_role")

	actor, err := GetActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req transport.UpdateUserRoleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	u, err := h.Svc.UpdateRole(ctx, actor, id, req.Role)
	if err != nil {
		l.Error("update_role_error", "error", err, "user_id", id)
		return httpError(err)
	}
	l.Info("role_updated", "user_id", id, "role", u.Role)
	return c.JSON(http.StatusOK, u)
}
