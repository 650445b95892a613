package httpserver

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/maastudio/storefront/internal/logging"
	"github.com/maastudio/storefront/internal/models"
	"github.com/maastudio/storefront/internal/repo"
	"github.com/maastudio/storefront/internal/service"
	"github.com/maastudio/storefront/internal/transport"
)

type OrderHTTP struct {
	Checkout *service.CheckoutService
	Svc      *service.OrderService
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	actor, err := GetActor(c)
	if err != nil {
		l.Warn("create_order_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Checkout.Checkout(ctx, actor.ID, req)
	if err != nil {
		l.Warn("create_order_error", "error", err)
		return httpError(err)
	}

	l.Info("order_created", "order_number", order.OrderNumber, "total", order.Total)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) ListMine(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_mine")

	actor, err := GetActor(c)
	if err != nil {
		l.Warn("list_orders_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	page, limit := pageParams(c)
	out, err := h.Svc.ListMine(ctx, actor.ID, page, limit)
	if err != nil {
		l.Error("list_orders_error", "status", 500, "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get")

	actor, err := GetActor(c)
	if err != nil {
		l.Warn("get_order_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	orderID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	order, err := h.Svc.FindOne(ctx, actor, orderID)
	if err != nil {
		l.Warn("get_order_error", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) ConfirmOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.confirm")

	actor, err := GetActor(c)
	if err != nil {
		l.Warn("confirm_order_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	orderID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	order, err := h.Svc.Confirm(ctx, actor, orderID)
	if err != nil {
		l.Warn("confirm_order_error", "error", err)
		return httpError(err)
	}

	l.Info("order_confirmed", "order_number", order.OrderNumber)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) CancelOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.cancel")

	actor, err := GetActor(c)
	if err != nil {
		l.Warn("cancel_order_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	orderID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	order, warnings, err := h.Svc.Cancel(ctx, actor, orderID)
	if err != nil {
		l.Warn("cancel_order_error", "error", err)
		return httpError(err)
	}
	if len(warnings) > 0 {
		l.Warn("cancel_order_partial_release", "order_number", order.OrderNumber, "warnings", warnings)
	}

	l.Info("order_cancelled", "order_number", order.OrderNumber)
	return c.JSON(http.StatusOK, transport.CancelOrderResponse{Order: order, Warnings: warnings})
}

func (h *OrderHTTP) SetShippingCost(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.set_shipping_cost")

	actor, err := GetActor(c)
	if err != nil {
		l.Warn("set_shipping_cost_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	orderID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req transport.SetShippingCostRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("set_shipping_cost_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.SetShippingCost(ctx, actor, orderID, req.ShippingCost)
	if err != nil {
		l.Warn("set_shipping_cost_error", "error", err)
		return httpError(err)
	}

	l.Info("shipping_cost_set", "order_number", order.OrderNumber, "shipping_cost", order.ShippingCost)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) AwaitingShippingCost(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.awaiting_shipping_cost")

	actor, err := GetActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	orders, err := h.Svc.AwaitingShippingCost(ctx, actor)
	if err != nil {
		l.Error("awaiting_shipping_cost_error", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	actor, err := GetActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	orderID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_status_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.UpdateStatus(ctx, actor, orderID, req)
	if err != nil {
		l.Warn("update_status_error", "error", err)
		return httpError(err)
	}

	l.Info("order_status_updated", "order_number", order.OrderNumber, "status", order.Status)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) ListAll(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_all")

	actor, err := GetActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	f := repo.OrderFilter{
		Status:        models.OrderStatus(c.QueryParam("status")),
		PaymentStatus: models.PaymentStatus(c.QueryParam("paymentStatus")),
	}
	if v := c.QueryParam("userId"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.UserID = id
		}
	}
	if v := c.QueryParam("startDate"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			f.StartDate = &t
		}
	}
	if v := c.QueryParam("endDate"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			end := t.Add(24 * time.Hour)
			f.EndDate = &end
		}
	}

	page, limit := pageParams(c)
	out, err := h.Svc.ListAll(ctx, actor, f, page, limit)
	if err != nil {
		l.Error("list_all_orders_error", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHTTP) Statistics(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.statistics")

	actor, err := GetActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	stats, err := h.Svc.Statistics(ctx, actor)
	if err != nil {
		l.Error("order_statistics_error", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *OrderHTTP) SearchByNumber(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.search_by_number")

	actor, err := GetActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	order, err := h.Svc.FindByNumber(ctx, actor, c.Param("orderNumber"))
	if err != nil {
		l.Warn("search_by_number_error", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) History(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.history")

	actor, err := GetActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	orderID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	rows, err := h.Svc.History(ctx, actor, orderID)
	if err != nil {
		l.Warn("order_history_error", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rows)
}
