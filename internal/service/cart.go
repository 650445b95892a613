package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maastudio/storefront/internal/models"
	"github.com/maastudio/storefront/internal/repo"
	"github.com/maastudio/storefront/internal/transport"
)

type CartService struct {
	Repo          *repo.GormRepo
	MaxPerProduct int
}

func (s *CartService) maxPerProduct() int {
	if s.MaxPerProduct > 0 {
		return s.MaxPerProduct
	}
	return 10
}

func (s *CartService) GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	return s.Repo.GetOrCreateCart(ctx, userID)
}

// AddItem merges qty into an existing line for the product or creates a new
// one. Stock is checked against the quantity already in the cart, and the
// resulting line may not exceed the per-product cap.
func (s *CartService) AddItem(ctx context.Context, userID, productID uuid.UUID, qty int) (*models.CartItem, error) {
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}

	var out *models.CartItem
	err := s.Repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := s.Repo.WithTx(tx)

		cart, err := r.GetOrCreateCart(ctx, userID)
		if err != nil {
			return err
		}

		product, err := r.GetProduct(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}
		if !product.IsActive {
			return fmt.Errorf("%w: %s", ErrProductUnavailable, product.Name)
		}

		existing := 0
		item, err := r.GetCartItem(ctx, cart.ID, productID)
		switch {
		case err == nil:
			existing = item.Quantity
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = nil
		default:
			return err
		}

		// The cap does not depend on stock, so it is judged first: a line
		// that violates both reports the cap.
		if qty+existing > s.maxPerProduct() {
			return fmt.Errorf("%w: máximo %d unidades por producto", ErrQuantityCapExceeded, s.maxPerProduct())
		}
		if product.TrackInventory && product.Stock < qty+existing {
			return fmt.Errorf("%w: %s (disponible: %d)", ErrInsufficientStock, product.Name, product.Stock)
		}

		if item != nil {
			item.Quantity += qty
			if err := r.SaveCartItem(ctx, item); err != nil {
				return err
			}
			out = item
			return nil
		}

		item = &models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: qty}
		if err := r.CreateCartItem(ctx, item); err != nil {
			return err
		}
		out = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateItem replaces the line quantity (not additive). Quantity zero removes
// the line.
func (s *CartService) UpdateItem(ctx context.Context, userID, productID uuid.UUID, qty int) error {
	if qty < 0 {
		return ErrInvalidQuantity
	}

	return s.Repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := s.Repo.WithTx(tx)

		cart, err := r.GetOrCreateCart(ctx, userID)
		if err != nil {
			return err
		}

		item, err := r.GetCartItem(ctx, cart.ID, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}

		if qty == 0 {
			return r.DeleteCartItem(ctx, cart.ID, productID)
		}

		product, err := r.GetProduct(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}
		if !product.IsActive {
			return fmt.Errorf("%w: %s", ErrProductUnavailable, product.Name)
		}
		if qty > s.maxPerProduct() {
			return fmt.Errorf("%w: máximo %d unidades por producto", ErrQuantityCapExceeded, s.maxPerProduct())
		}
		if product.TrackInventory && product.Stock < qty {
			return fmt.Errorf("%w: %s (disponible: %d)", ErrInsufficientStock, product.Name, product.Stock)
		}

		item.Quantity = qty
		return r.SaveCartItem(ctx, item)
	})
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	cart, err := s.Repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteCartItem(ctx, cart.ID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}
	return nil
}

func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	cart, err := s.Repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return err
	}
	return s.Repo.ClearCart(ctx, cart.ID)
}

// View returns one page of the cart, hiding lines whose product went inactive.
// Amount, weight and dimension totals cover the visible page only.
func (s *CartService) View(ctx context.Context, userID uuid.UUID, page, limit int) (*transport.CartView, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	cart, err := s.Repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.Repo.CartItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	type line struct {
		item    models.CartItem
		product models.Product
	}
	var valid []line
	for _, it := range items {
		p, err := s.Repo.GetProduct(ctx, it.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		if !p.IsActive {
			continue
		}
		valid = append(valid, line{item: it, product: *p})
	}

	total := len(valid)
	totalPages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	pageLines := valid[start:end]

	view := &transport.CartView{
		Data:       make([]transport.CartLine, 0, len(pageLines)),
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
	for _, l := range pageLines {
		sub := l.product.Price * float64(l.item.Quantity)
		view.Data = append(view.Data, transport.CartLine{
			ID: l.item.ID,
			Product: transport.CartLineProduct{
				ID:       l.product.ID,
				Name:     l.product.Name,
				Image:    l.product.Image,
				Price:    l.product.Price,
				Brand:    l.product.Brand,
				Weight:   l.product.Weight,
				Length:   l.product.Length,
				Width:    l.product.Width,
				Height:   l.product.Height,
				IsActive: l.product.IsActive,
			},
			Quantity: l.item.Quantity,
			Subtotal: sub,
		})
		q := float64(l.item.Quantity)
		view.TotalAmount += sub
		view.TotalWeight += l.product.Weight * q
		view.TotalLength += l.product.Length * q
		view.TotalWidth += l.product.Width * q
		view.TotalHeight += l.product.Height * q
	}

	return view, nil
}
