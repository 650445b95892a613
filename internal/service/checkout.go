package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maastudio/storefront/internal/events"
	"github.com/maastudio/storefront/internal/models"
	"github.com/maastudio/storefront/internal/pricing"
	"github.com/maastudio/storefront/internal/repo"
	"github.com/maastudio/storefront/internal/transport"
)

// CheckoutService turns a mutable cart into an immutable, priced,
// stock-decremented order. Everything between loading the cart and clearing it
// happens in one transaction; the notification fires after commit.
type CheckoutService struct {
	Repo      *repo.GormRepo
	Inventory *InventoryService
	Notifier  *events.Notifier
	TaxRate   float64
}

func (s *CheckoutService) Checkout(ctx context.Context, userID uuid.UUID, req transport.CheckoutRequest) (*models.Order, error) {
	if req.DeliveryType != models.DeliveryTypePickup && req.DeliveryType != models.DeliveryTypeDelivery {
		return nil, fmt.Errorf("%w: delivery_type", ErrValidation)
	}
	if req.DeliveryType == models.DeliveryTypeDelivery && req.ShippingAddressID == nil {
		return nil, ErrShippingAddressRequired
	}

	// Idempotency: a repeated checkout attempt with the same key returns the
	// order the first attempt created.
	if req.IdempotencyKey != "" {
		existing, err := s.Repo.GetOrderByIdempotencyKey(ctx, userID, req.IdempotencyKey)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	var order *models.Order
	txErr := s.Repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := s.Repo.WithTx(tx)
		inv := s.Inventory.WithTx(tx)

		cart, err := r.GetOrCreateCart(ctx, userID)
		if err != nil {
			return err
		}
		items, err := r.CartItems(ctx, cart.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		// Re-verify every line at checkout time; add-time checks are stale by
		// now. The authoritative race-safe check is still the guarded
		// decrement below.
		products := make(map[uuid.UUID]*models.Product, len(items))
		for _, it := range items {
			p, err := r.GetProduct(ctx, it.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductNotFound
				}
				return err
			}
			if !p.IsActive {
				return fmt.Errorf("%w: %s", ErrProductUnavailable, p.Name)
			}
			if p.TrackInventory && p.Stock < it.Quantity {
				return fmt.Errorf("%w: %s (disponible: %d)", ErrInsufficientStock, p.Name, p.Stock)
			}
			products[it.ProductID] = p
		}

		var snapshot []byte
		var addressID *uuid.UUID
		if req.DeliveryType == models.DeliveryTypeDelivery {
			addr, err := r.FindOwnedAddress(ctx, userID, *req.ShippingAddressID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrInvalidShippingAddress
				}
				return err
			}
			snap := models.ShippingSnapshotFields{
				FullName:   addr.FullName,
				Phone:      addr.Phone,
				Country:    addr.Country,
				State:      addr.State,
				City:       addr.City,
				PostalCode: addr.PostalCode,
				Line1:      addr.Line1,
				Line2:      addr.Line2,
				Reference:  addr.Reference,
			}
			snapshot, err = json.Marshal(snap)
			if err != nil {
				return err
			}
			addressID = &addr.ID
		}

		lines := make([]pricing.LineItem, 0, len(items))
		orderItems := make([]models.OrderItem, 0, len(items))
		for _, it := range items {
			p := products[it.ProductID]
			lines = append(lines, pricing.LineItem{UnitPrice: p.Price, Quantity: it.Quantity})
			orderItems = append(orderItems, models.OrderItem{
				ProductID:    p.ID,
				ProductName:  p.Name,
				ProductBrand: p.Brand,
				ProductImage: p.Image,
				Quantity:     it.Quantity,
				UnitPrice:    p.Price,
				TotalPrice:   p.Price * float64(it.Quantity),
			})
		}

		// Shipping is 0 for pickup and for not-yet-priced delivery orders.
		amounts := pricing.Price(lines, 0, s.TaxRate)

		number, err := generateOrderNumber(ctx, r, time.Now().UTC())
		if err != nil {
			return err
		}

		status := models.OrderStatusPending
		if req.DeliveryType == models.DeliveryTypeDelivery {
			status = models.OrderStatusAwaitingShippingCost
		}

		order = &models.Order{
			OrderNumber:       number,
			UserID:            userID,
			DeliveryType:      req.DeliveryType,
			Subtotal:          amounts.Subtotal,
			ShippingCost:      0,
			Tax:               amounts.Tax,
			Total:             amounts.Total,
			Status:            status,
			PaymentStatus:     models.PaymentStatusPending,
			ShippingAddressID: addressID,
			ShippingSnapshot:  snapshot,
			Notes:             req.Notes,
			Items:             orderItems,
		}
		if req.IdempotencyKey != "" {
			key := req.IdempotencyKey
			order.IdempotencyKey = &key
		}
		if err := r.CreateOrder(ctx, order); err != nil {
			return err
		}

		for _, it := range items {
			if err := inv.Reserve(ctx, it.ProductID, it.Quantity); err != nil {
				return err
			}
		}

		return r.ClearCart(ctx, cart.ID)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.Notifier.Notify("order_created", order.OrderNumber, map[string]any{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"user_id":      order.UserID,
		"total":        order.Total,
		"status":       order.Status,
	})

	return order, nil
}

// generateOrderNumber allocates a human-readable MAA-YYMMDD-NNNN number where
// NNNN is the day's running sequence. On collision it falls back to a
// timestamp-based suffix.
func generateOrderNumber(ctx context.Context, r *repo.GormRepo, now time.Time) (string, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	n, err := r.CountOrdersCreatedBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return "", err
	}

	candidate := fmt.Sprintf("MAA-%s-%04d", now.Format("060102"), n+1)
	exists, err := r.OrderNumberExists(ctx, candidate)
	if err != nil {
		return "", err
	}
	if !exists {
		return candidate, nil
	}

	return fmt.Sprintf("MAA-%s-%d", now.Format("060102"), now.UnixNano()%1000000000), nil
}
