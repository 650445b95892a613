package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maastudio/storefront/internal/logging"
	"github.com/maastudio/storefront/internal/service"
	"github.com/maastudio/storefront/internal/transport"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	actor, err := GetActor(c)
	if err != nil {
		l.Warn("get_cart_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	page, limit := pageParams(c)
	view, err := h.Svc.View(ctx, actor.ID, page, limit)
	if err != nil {
		l.Error("get_cart_error", "status", 500, "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, view)
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	actor, err := GetActor(c)
	if err != nil {
		l.Warn("add_to_cart_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.AddItem(ctx, actor.ID, req.ProductID, req.Quantity)
	if err != nil {
		l.Warn("add_to_cart_error", "error", err)
		return httpError(err)
	}

	l.Info("cart_item_added", "product_id", req.ProductID, "quantity", item.Quantity)
	return c.JSON(http.StatusCreated, item)
}

func (h *CartHTTP) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	actor, err := GetActor(c)
	if err != nil {
		l.Warn("update_cart_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	productID, err := uuidParam(c, "productId")
	if err != nil {
		return err
	}

	var req transport.UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.UpdateItem(ctx, actor.ID, productID, req.Quantity); err != nil {
		l.Warn("update_cart_error", "error", err)
		return httpError(err)
	}

	l.Info("cart_item_updated", "product_id", productID, "quantity", req.Quantity)
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	actor, err := GetActor(c)
	if err != nil {
		l.Warn("remove_cart_item_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	productID, err := uuidParam(c, "productId")
	if err != nil {
		return err
	}

	if err := h.Svc.RemoveItem(ctx, actor.ID, productID); err != nil {
		l.Warn("remove_cart_item_error", "error", err)
		return httpError(err)
	}

	l.Info("cart_item_removed", "product_id", productID)
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) Clear(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	actor, err := GetActor(c)
	if err != nil {
		l.Warn("clear_cart_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	if err := h.Svc.Clear(ctx, actor.ID); err != nil {
		l.Error("clear_cart_error", "status", 500, "error", err)
		return httpError(err)
	}

	l.Info("cart_cleared")
	return c.JSON(http.StatusOK, map[string]string{"message": "Carrito vaciado."})
}
