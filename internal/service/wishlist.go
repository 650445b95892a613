package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maastudio/storefront/internal/models"
	"github.com/maastudio/storefront/internal/repo"
)

type WishlistService struct {
	Repo *repo.GormRepo
	Cart *CartService
}

func (s *WishlistService) Add(ctx context.Context, userID, productID uuid.UUID) (*models.WishlistItem, error) {
	product, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if !product.IsActive {
		return nil, fmt.Errorf("%w: %s", ErrProductUnavailable, product.Name)
	}

	if _, err := s.Repo.GetWishlistItem(ctx, userID, productID); err == nil {
		return nil, fmt.Errorf("%w: product already in wishlist", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	item := &models.WishlistItem{UserID: userID, ProductID: productID}
	if err := s.Repo.CreateWishlistItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *WishlistService) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	if err := s.Repo.DeleteWishlistItem(ctx, userID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}
	return nil
}

func (s *WishlistService) List(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error) {
	return s.Repo.ListWishlist(ctx, userID)
}

// Toggle adds the product if it is not wished yet, removes it if it is, and
// reports whether the product is wished afterwards.
func (s *WishlistService) Toggle(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	_, err := s.Repo.GetWishlistItem(ctx, userID, productID)
	switch {
	case err == nil:
		if err := s.Remove(ctx, userID, productID); err != nil {
			return false, err
		}
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		if _, err := s.Add(ctx, userID, productID); err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, err
	}
}

func (s *WishlistService) Contains(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	_, err := s.Repo.GetWishlistItem(ctx, userID, productID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

// MoveToCart adds the wished product to the cart through the cart aggregate's
// own validation, then drops it from the wishlist.
func (s *WishlistService) MoveToCart(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error) {
	if _, err := s.Repo.GetWishlistItem(ctx, userID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	item, err := s.Cart.AddItem(ctx, userID, productID, 1)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.DeleteWishlistItem(ctx, userID, productID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return item, nil
}
