package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maastudio/storefront/internal/models"
)

func (r *GormRepo) CreateCategory(ctx context.Context, c *models.Category) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *GormRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Category{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) CreateSubcategory(ctx context.Context, s *models.Subcategory) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

func (r *GormRepo) ListSubcategories(ctx context.Context, categoryID uuid.UUID) ([]models.Subcategory, error) {
	q := r.DB.WithContext(ctx).Model(&models.Subcategory{})
	if categoryID != uuid.Nil {
		q = q.Where("category_id = ?", categoryID)
	}
	var out []models.Subcategory
	if err := q.Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepo) DeleteSubcategory(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Subcategory{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
