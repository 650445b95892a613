package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maastudio/storefront/internal/logging"
	"github.com/maastudio/storefront/internal/service"
	"github.com/maastudio/storefront/internal/transport"
)

type AddressHTTP struct {
	Svc *service.AddressService
}

func (h *AddressHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address.create")

	actor, err := GetActor(c)
	if err != nil {
		return err
	}

	var req transport.CreateAddressRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_address_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	addr, err := h.Svc.Create(ctx, actor.ID, req)
	if err != nil {
		l.Warn("create_address_error", "error", err)
		return httpError(err)
	}

	l.Info("address_created", "address_id", addr.ID)
	return c.JSON(http.StatusCreated, addr)
}

func (h *AddressHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address.list")

	actor, err := GetActor(c)
	if err != nil {
		return err
	}

	out, err := h.Svc.List(ctx, actor.ID)
	if err != nil {
		l.Error("list_addresses_error", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AddressHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()

	actor, err := GetActor(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	addr, err := h.Svc.FindOwned(ctx, actor.ID, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, addr)
}

func (h *AddressHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address.update")

	actor, err := GetActor(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req transport.CreateAddressRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_address_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	addr, err := h.Svc.Update(ctx, actor.ID, id, req)
	if err != nil {
		l.Warn("update_address_error", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, addr)
}

func (h *AddressHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address.delete")

	actor, err := GetActor(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.Delete(ctx, actor.ID, id); err != nil {
		l.Warn("delete_address_error", "error", err)
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
