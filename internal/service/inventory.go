package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maastudio/storefront/internal/repo"
)

// InventoryService is the stock ledger. Reserve and Release must run inside
// the same transaction as the order or cart mutation that triggered them;
// callers bind the service to their transaction with WithTx.
type InventoryService struct {
	Repo *repo.GormRepo
}

func (s *InventoryService) WithTx(tx *gorm.DB) *InventoryService {
	return &InventoryService{Repo: s.Repo.WithTx(tx)}
}

// Reserve decrements stock by qty. The decrement is a single guarded UPDATE,
// so concurrent reserves on the same product cannot both pass the stock check.
// Products with inventory tracking disabled always succeed and are left
// untouched.
func (s *InventoryService) Reserve(ctx context.Context, productID uuid.UUID, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}

	p, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	if !p.IsActive {
		return fmt.Errorf("%w: %s", ErrProductUnavailable, p.Name)
	}
	if !p.TrackInventory {
		return nil
	}

	if err := s.Repo.ReserveStock(ctx, productID, qty); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Guard did not match: report how much really is available.
			current, rerr := s.Repo.GetProduct(ctx, productID)
			if rerr != nil {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, p.Name)
			}
			return fmt.Errorf("%w: %s (disponible: %d)", ErrInsufficientStock, p.Name, current.Stock)
		}
		return err
	}
	return nil
}

// Release returns qty units to stock. There is no upper bound: double
// releases may overshoot original levels, which is accepted drift.
func (s *InventoryService) Release(ctx context.Context, productID uuid.UUID, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}

	p, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	if !p.TrackInventory {
		return nil
	}

	return s.Repo.ReleaseStock(ctx, productID, qty)
}
