package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maastudio/storefront/internal/logging"
	"github.com/maastudio/storefront/internal/service"
)

type WishlistHTTP struct {
	Svc *service.WishlistService
}

func (h *WishlistHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()

	actor, err := GetActor(c)
	if err != nil {
		return err
	}

	out, err := h.Svc.List(ctx, actor.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *WishlistHTTP) Add(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.add")

	actor, err := GetActor(c)
	if err != nil {
		return err
	}
	productID, err := uuidParam(c, "productId")
	if err != nil {
		return err
	}

	item, err := h.Svc.Add(ctx, actor.ID, productID)
	if err != nil {
		l.Warn("wishlist_add_error", "error", err)
		return httpError(err)
	}

	l.Info("wishlist_item_added", "product_id", productID)
	return c.JSON(http.StatusCreated, item)
}

func (h *WishlistHTTP) Remove(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.remove")

	actor, err := GetActor(c)
	if err != nil {
		return err
	}
	productID, err := uuidParam(c, "productId")
	if err != nil {
		return err
	}

	if err := h.Svc.Remove(ctx, actor.ID, productID); err != nil {
		l.Warn("wishlist_remove_error", "error", err)
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *WishlistHTTP) Toggle(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.toggle")

	actor, err := GetActor(c)
	if err != nil {
		return err
	}
	productID, err := uuidParam(c, "productId")
	if err != nil {
		return err
	}

	wished, err := h.Svc.Toggle(ctx, actor.ID, productID)
	if err != nil {
		l.Warn("wishlist_toggle_error", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"in_wishlist": wished})
}

func (h *WishlistHTTP) Contains(c echo.Context) error {
	ctx := c.Request().Context()

	actor, err := GetActor(c)
	if err != nil {
		return err
	}
	productID, err := uuidParam(c, "productId")
	if err != nil {
		return err
	}

	found, err := h.Svc.Contains(ctx, actor.ID, productID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"in_wishlist": found})
}

func (h *WishlistHTTP) MoveToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.move_to_cart")

	actor, err := GetActor(c)
	if err != nil {
		return err
	}
	productID, err := uuidParam(c, "productId")
	if err != nil {
		return err
	}

	item, err := h.Svc.MoveToCart(ctx, actor.ID, productID)
	if err != nil {
		l.Warn("wishlist_move_error", "error", err)
		return httpError(err)
	}

	l.Info("wishlist_item_moved", "product_id", productID)
	return c.JSON(http.StatusOK, item)
}
