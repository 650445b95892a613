package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maastudio/storefront/internal/models"
)

func (r *GormRepo) CreateAddress(ctx context.Context, a *models.Address) error {
	return r.DB.WithContext(ctx).Create(a).Error
}

// FindOwnedAddress only matches addresses belonging to the given user, so an
// address id leaked from another account resolves to not-found.
func (r *GormRepo) FindOwnedAddress(ctx context.Context, userID, addressID uuid.UUID) (*models.Address, error) {
	var a models.Address
	if err := r.DB.WithContext(ctx).
		First(&a, "id = ? AND user_id = ?", addressID, userID).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *GormRepo) ListAddresses(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	var out []models.Address
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_principal DESC, created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepo) SaveAddress(ctx context.Context, a *models.Address) error {
	return r.DB.WithContext(ctx).Save(a).Error
}

func (r *GormRepo) DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", addressID, userID).
		Delete(&models.Address{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ClearPrincipal drops the principal flag from every other address of the user
// before a new one takes it.
func (r *GormRepo) ClearPrincipal(ctx context.Context, userID uuid.UUID) error {
	return r.DB.WithContext(ctx).Model(&models.Address{}).
		Where("user_id = ?", userID).
		Update("is_principal", false).Error
}
