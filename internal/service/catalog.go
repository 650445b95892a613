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

type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.Repo.GetActiveProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, includeInactive bool, page, limit int) (*transport.PaginatedProducts, error) {
	page, limit, offset := paginate(page, limit)
	products, total, err := s.Repo.ListProducts(ctx, !includeInactive, limit, offset)
	if err != nil {
		return nil, err
	}
	return &transport.PaginatedProducts{
		Data:       products,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must be >= 0", ErrValidation)
	}

	track := true
	if req.TrackInventory != nil {
		track = *req.TrackInventory
	}
	p := &models.Product{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		Stock:          req.Stock,
		IsActive:       true,
		TrackInventory: track,
		Brand:          req.Brand,
		Image:          req.Image,
		Weight:         req.Weight,
		Length:         req.Length,
		Width:          req.Width,
		Height:         req.Height,
		SubcategoryID:  req.SubcategoryID,
	}
	if err := s.Repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Product, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: nothing to update", ErrValidation)
	}
	if v, ok := fields["price"]; ok {
		if price, ok := v.(float64); ok && price < 0 {
			return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
		}
	}
	if err := s.Repo.UpdateProduct(ctx, id, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	p, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// DeactivateProduct is the soft delete: the product disappears from carts and
// the public catalog but stays referenced by historical orders.
func (s *CatalogService) DeactivateProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.UpdateProduct(ctx, id, map[string]any{"is_active": false}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, name, description string) (*models.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	c := &models.Category{Name: name, Description: description}
	if err := s.Repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: category", ErrNotFound)
		}
		return err
	}
	return nil
}

func (s *CatalogService) CreateSubcategory(ctx context.Context, categoryID uuid.UUID, name string) (*models.Subcategory, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	sub := &models.Subcategory{CategoryID: categoryID, Name: name}
	if err := s.Repo.CreateSubcategory(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *CatalogService) ListSubcategories(ctx context.Context, categoryID uuid.UUID) ([]models.Subcategory, error) {
	return s.Repo.ListSubcategories(ctx, categoryID)
}

func (s *CatalogService) DeleteSubcategory(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteSubcategory(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: subcategory", ErrNotFound)
		}
		return err
	}
	return nil
}
