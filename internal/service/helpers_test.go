package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/maastudio/storefront/internal/models"
	"github.com/maastudio/storefront/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	return &repo.GormRepo{DB: newTestDB(t)}
}

func seedUser(t *testing.T, r *repo.GormRepo, role string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     "user-" + uuid.NewString()[:8],
		Email:        uuid.NewString()[:8] + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, r.DB.Create(user).Error)
	return user
}

func seedProduct(t *testing.T, r *repo.GormRepo, name string, price float64, stock int) *models.Product {
	t.Helper()

	p := &models.Product{
		Name:           name,
		Price:          price,
		Stock:          stock,
		IsActive:       true,
		TrackInventory: true,
	}
	require.NoError(t, r.DB.Create(p).Error)
	return p
}

func seedAddress(t *testing.T, r *repo.GormRepo, userID uuid.UUID) *models.Address {
	t.Helper()

	addr := &models.Address{
		UserID:     userID,
		FullName:   "Juan Pérez",
		Phone:      "099123456",
		Country:    "Uruguay",
		State:      "Montevideo",
		City:       "Montevideo",
		PostalCode: "11200",
		Line1:      "Av. 18 de Julio 1234",
	}
	require.NoError(t, r.DB.Create(addr).Error)
	return addr
}
