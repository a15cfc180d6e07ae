package persistence

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/kobo/backend/internal/domain/order"
	"github.com/kobo/backend/internal/infrastructure/persistence/models"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its marketplace order ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id order.ID) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).First(&model, "order_id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByStatus finds orders in the given status, oldest first
func (r *GormOrderRepository) FindByStatus(ctx context.Context, status order.Status) ([]order.Order, error) {
	var orderModels []models.OrderModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", status.String()).
		Order("ordered_at ASC").
		Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return toDomainOrders(orderModels)
}

// FindByBuyerName finds orders whose buyer name contains the given fragment
func (r *GormOrderRepository) FindByBuyerName(ctx context.Context, name string) ([]order.Order, error) {
	var orderModels []models.OrderModel
	pattern := "%" + escapeLikePattern(name) + "%"
	if err := r.db.WithContext(ctx).
		Where("buyer_name LIKE ? ESCAPE '\\'", pattern).
		Order("ordered_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return toDomainOrders(orderModels)
}

// FindAll returns all orders, newest first
func (r *GormOrderRepository) FindAll(ctx context.Context) ([]order.Order, error) {
	var orderModels []models.OrderModel
	if err := r.db.WithContext(ctx).
		Order("ordered_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return toDomainOrders(orderModels)
}

// Save creates or updates an order
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	var model models.OrderModel
	model.FromDomain(o)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Exists checks whether an order with the given ID is already registered
func (r *GormOrderRepository) Exists(ctx context.Context, id order.ID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("order_id = ?", id.String()).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func toDomainOrders(orderModels []models.OrderModel) ([]order.Order, error) {
	orders := make([]order.Order, len(orderModels))
	for i := range orderModels {
		o, err := orderModels[i].ToDomain()
		if err != nil {
			return nil, err
		}
		orders[i] = *o
	}
	return orders, nil
}

// escapeLikePattern escapes special characters in LIKE patterns
func escapeLikePattern(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}

// Ensure GormOrderRepository implements order.Repository
var _ order.Repository = (*GormOrderRepository)(nil)
