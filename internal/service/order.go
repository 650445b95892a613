package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maastudio/storefront/internal/authz"
	"github.com/maastudio/storefront/internal/events"
	"github.com/maastudio/storefront/internal/models"
	"github.com/maastudio/storefront/internal/pricing"
	"github.com/maastudio/storefront/internal/repo"
	"github.com/maastudio/storefront/internal/transport"
)

// OrderService owns the order lifecycle. Invalid transitions are rejected
// synchronously; explicit transitions (admin status update, customer cancel)
// append an audit row, checkout's implicit initial status does not.
type OrderService struct {
	Repo      *repo.GormRepo
	Inventory *InventoryService
	Notifier  *events.Notifier
}

func (s *OrderService) getOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) FindOne(ctx context.Context, actor authz.Actor, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.ActionView, authz.Resource{Kind: "order", OwnerID: order.UserID}); err != nil {
		return nil, ErrForbidden
	}
	return order, nil
}

func (s *OrderService) FindByNumber(ctx context.Context, actor authz.Actor, orderNumber string) (*models.Order, error) {
	if err := authz.Authorize(actor, authz.ActionListAll, authz.Resource{Kind: "order"}); err != nil {
		return nil, ErrForbidden
	}
	order, err := s.Repo.GetOrderByNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) ListMine(ctx context.Context, userID uuid.UUID, page, limit int) (*transport.PaginatedOrders, error) {
	page, limit, offset := paginate(page, limit)
	orders, total, err := s.Repo.ListUserOrders(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return &transport.PaginatedOrders{
		Data:       orders,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *OrderService) ListAll(ctx context.Context, actor authz.Actor, f repo.OrderFilter, page, limit int) (*transport.PaginatedOrders, error) {
	if err := authz.Authorize(actor, authz.ActionListAll, authz.Resource{Kind: "order"}); err != nil {
		return nil, ErrForbidden
	}
	page, limit, offset := paginate(page, limit)
	orders, total, err := s.Repo.ListOrders(ctx, f, limit, offset)
	if err != nil {
		return nil, err
	}
	return &transport.PaginatedOrders{
		Data:       orders,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *OrderService) AwaitingShippingCost(ctx context.Context, actor authz.Actor) ([]models.Order, error) {
	if err := authz.Authorize(actor, authz.ActionListAll, authz.Resource{Kind: "order"}); err != nil {
		return nil, ErrForbidden
	}
	return s.Repo.ListOrdersByStatus(ctx, models.OrderStatusAwaitingShippingCost)
}

func (s *OrderService) Statistics(ctx context.Context, actor authz.Actor) (*repo.OrderStatistics, error) {
	if err := authz.Authorize(actor, authz.ActionListAll, authz.Resource{Kind: "order"}); err != nil {
		return nil, ErrForbidden
	}
	return s.Repo.OrderStats(ctx)
}

func (s *OrderService) History(ctx context.Context, actor authz.Actor, orderID uuid.UUID) ([]models.OrderHistory, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.ActionView, authz.Resource{Kind: "order", OwnerID: order.UserID}); err != nil {
		return nil, ErrForbidden
	}
	return s.Repo.OrderHistories(ctx, orderID)
}

// SetShippingCost prices a delivery order. Only valid while the order awaits
// its shipping cost; the total is recomputed in the one place that owns that
// arithmetic.
func (s *OrderService) SetShippingCost(ctx context.Context, actor authz.Actor, orderID uuid.UUID, cost float64) (*models.Order, error) {
	if err := authz.Authorize(actor, authz.ActionSetShippingCost, authz.Resource{Kind: "order"}); err != nil {
		return nil, ErrForbidden
	}
	if cost < 0 {
		return nil, fmt.Errorf("%w: shipping cost must be >= 0", ErrValidation)
	}

	var order *models.Order
	err := s.Repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := s.Repo.WithTx(tx)

		var err error
		order, err = r.GetOrder(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if order.Status != models.OrderStatusAwaitingShippingCost {
			return ErrInvalidStateForOperation
		}

		now := time.Now().UTC()
		order.ShippingCost = cost
		order.Total = pricing.RecomputeTotal(order.Subtotal, order.ShippingCost, order.Tax)
		order.Status = models.OrderStatusShippingCostSet
		order.ShippingCostSetAt = &now
		return r.SaveOrder(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.Notifier.Notify("shipping_cost_set", order.OrderNumber, map[string]any{
		"order_id":      order.ID,
		"order_number":  order.OrderNumber,
		"user_id":       order.UserID,
		"shipping_cost": order.ShippingCost,
		"total":         order.Total,
	})
	return order, nil
}

// Confirm is the customer accepting the priced order. Only valid once the
// shipping cost has been set; re-confirming is rejected.
func (s *OrderService) Confirm(ctx context.Context, actor authz.Actor, orderID uuid.UUID) (*models.Order, error) {
	var order *models.Order
	err := s.Repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := s.Repo.WithTx(tx)

		var err error
		order, err = r.GetOrder(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if err := authz.Authorize(actor, authz.ActionConfirm, authz.Resource{Kind: "order", OwnerID: order.UserID}); err != nil {
			return ErrForbidden
		}
		if order.Status != models.OrderStatusShippingCostSet {
			return ErrInvalidStateForOperation
		}

		now := time.Now().UTC()
		order.Status = models.OrderStatusConfirmed
		order.CustomerConfirmedAt = &now
		return r.SaveOrder(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.Notifier.Notify("order_confirmed", order.OrderNumber, map[string]any{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"user_id":      order.UserID,
	})
	return order, nil
}

// UpdateStatus is the privileged transition path. It is unrestricted except
// that a paid order cannot be cancelled here; refunds are their own flow.
// Every call appends an audit row.
func (s *OrderService) UpdateStatus(ctx context.Context, actor authz.Actor, orderID uuid.UUID, req transport.UpdateOrderStatusRequest) (*models.Order, error) {
	if err := authz.Authorize(actor, authz.ActionUpdateStatus, authz.Resource{Kind: "order"}); err != nil {
		return nil, ErrForbidden
	}
	if req.Status == "" && req.PaymentStatus == "" {
		return nil, fmt.Errorf("%w: status or payment_status required", ErrValidation)
	}
	if req.Status != "" && !req.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, req.Status)
	}
	if req.PaymentStatus != "" && !req.PaymentStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrValidation, req.PaymentStatus)
	}

	var order *models.Order
	var oldStatus models.OrderStatus
	err := s.Repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := s.Repo.WithTx(tx)

		var err error
		order, err = r.GetOrder(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if req.Status == models.OrderStatusCancelled && order.PaymentStatus == models.PaymentStatusApproved {
			return ErrCannotCancelPaidOrder
		}

		oldStatus = order.Status
		if req.Status != "" {
			order.Status = req.Status
		}
		if req.PaymentStatus != "" {
			order.PaymentStatus = req.PaymentStatus
		}
		if err := r.SaveOrder(ctx, order); err != nil {
			return err
		}

		if req.Status != "" && req.Status != oldStatus {
			return r.AppendOrderHistory(ctx, &models.OrderHistory{
				OrderID:     order.ID,
				OldStatus:   oldStatus,
				NewStatus:   order.Status,
				ChangedByID: actor.ID,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Notifier.Notify("order_status_changed", order.OrderNumber, map[string]any{
		"order_id":       order.ID,
		"order_number":   order.OrderNumber,
		"user_id":        order.UserID,
		"old_status":     oldStatus,
		"new_status":     order.Status,
		"payment_status": order.PaymentStatus,
	})
	return order, nil
}

// Cancel is customer self-cancellation, allowed only while the order is still
// pending. Stock release is best-effort per item: a failed release is
// reported, not fatal, because the status flip has to land regardless.
func (s *OrderService) Cancel(ctx context.Context, actor authz.Actor, orderID uuid.UUID) (*models.Order, []string, error) {
	var order *models.Order
	var warnings []string

	err := s.Repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := s.Repo.WithTx(tx)
		inv := s.Inventory.WithTx(tx)

		var err error
		order, err = r.GetOrder(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if err := authz.Authorize(actor, authz.ActionCancel, authz.Resource{Kind: "order", OwnerID: order.UserID}); err != nil {
			return ErrForbidden
		}
		if order.Status != models.OrderStatusPending {
			return ErrOnlyPendingOrdersCancellable
		}

		oldStatus := order.Status
		order.Status = models.OrderStatusCancelled
		if err := r.SaveOrder(ctx, order); err != nil {
			return err
		}

		for _, item := range order.Items {
			if err := inv.Release(ctx, item.ProductID, item.Quantity); err != nil {
				warnings = append(warnings,
					fmt.Sprintf("no se pudo devolver el stock del producto %s: %v", item.ProductName, err))
			}
		}

		return r.AppendOrderHistory(ctx, &models.OrderHistory{
			OrderID:     order.ID,
			OldStatus:   oldStatus,
			NewStatus:   models.OrderStatusCancelled,
			ChangedByID: actor.ID,
		})
	})
	if err != nil {
		return nil, nil, err
	}

	s.Notifier.Notify("order_cancelled", order.OrderNumber, map[string]any{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"user_id":      order.UserID,
	})
	return order, warnings, nil
}

func paginate(page, limit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return page, limit, (page - 1) * limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
