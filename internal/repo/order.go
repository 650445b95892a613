package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/maastudio/storefront/internal/models"
)

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *GormRepo) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) GetOrderByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").
		First(&order, "order_number = ?", orderNumber).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) GetOrderByIdempotencyKey(ctx context.Context, userID uuid.UUID, key string) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").
		First(&order, "user_id = ? AND idempotency_key = ?", userID, key).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) SaveOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Save(order).Error
}

func (r *GormRepo) CountOrdersCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&n).Error
	return n, err
}

func (r *GormRepo) OrderNumberExists(ctx context.Context, orderNumber string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("order_number = ?", orderNumber).
		Count(&n).Error
	return n > 0, err
}

func (r *GormRepo) ListUserOrders(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Order, int64, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	if err := q.Preload("Items").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// OrderFilter narrows the admin listing. Zero values mean "no filter".
type OrderFilter struct {
	Status        models.OrderStatus
	PaymentStatus models.PaymentStatus
	UserID        uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
}

func (r *GormRepo) ListOrders(ctx context.Context, f OrderFilter, limit, offset int) ([]models.Order, int64, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.PaymentStatus != "" {
		q = q.Where("payment_status = ?", f.PaymentStatus)
	}
	if f.UserID != uuid.Nil {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.StartDate != nil {
		q = q.Where("created_at >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("created_at < ?", *f.EndDate)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	if err := q.Preload("Items").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *GormRepo) ListOrdersByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) AppendOrderHistory(ctx context.Context, h *models.OrderHistory) error {
	return r.DB.WithContext(ctx).Create(h).Error
}

func (r *GormRepo) OrderHistories(ctx context.Context, orderID uuid.UUID) ([]models.OrderHistory, error) {
	var rows []models.OrderHistory
	if err := r.DB.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("changed_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

type OrderStatistics struct {
	TotalOrders   int64                        `json:"total_orders"`
	CountByStatus map[models.OrderStatus]int64 `json:"count_by_status"`
	Revenue       float64                      `json:"revenue"`
}

// OrderStats aggregates counts per status plus revenue over orders whose
// payment was approved.
func (r *GormRepo) OrderStats(ctx context.Context) (*OrderStatistics, error) {
	stats := &OrderStatistics{CountByStatus: map[models.OrderStatus]int64{}}

	if err := r.DB.WithContext(ctx).Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}

	type row struct {
		Status models.OrderStatus
		N      int64
	}
	var rows []row
	if err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Select("status, count(*) as n").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, rw := range rows {
		stats.CountByStatus[rw.Status] = rw.N
	}

	var revenue *float64
	if err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Select("sum(total)").
		Where("payment_status = ?", models.PaymentStatusApproved).
		Scan(&revenue).Error; err != nil {
		return nil, err
	}
	if revenue != nil {
		stats.Revenue = *revenue
	}
	return stats, nil
}
