package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kobo/backend/internal/domain/order"
	"github.com/kobo/backend/internal/domain/shipping"
	"github.com/kobo/backend/internal/infrastructure/persistence/models"
)

// GormLabelRepository implements shipping.Repository using GORM
type GormLabelRepository struct {
	db *gorm.DB
}

// NewGormLabelRepository creates a new GormLabelRepository
func NewGormLabelRepository(db *gorm.DB) *GormLabelRepository {
	return &GormLabelRepository{db: db}
}

// FindByID finds a label by its ID
func (r *GormLabelRepository) FindByID(ctx context.Context, id shipping.LabelID) (*shipping.Label, error) {
	var model models.LabelModel
	if err := r.db.WithContext(ctx).First(&model, "label_id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shipping.ErrLabelNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByOrderID finds all labels issued for an order, newest first
func (r *GormLabelRepository) FindByOrderID(ctx context.Context, orderID order.ID) ([]shipping.Label, error) {
	var labelModels []models.LabelModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.String()).
		Order("issued_at DESC").
		Find(&labelModels).Error; err != nil {
		return nil, err
	}

	labels := make([]shipping.Label, len(labelModels))
	for i := range labelModels {
		l, err := labelModels[i].ToDomain()
		if err != nil {
			return nil, err
		}
		labels[i] = *l
	}
	return labels, nil
}

// Save persists an issued label
func (r *GormLabelRepository) Save(ctx context.Context, label *shipping.Label) error {
	var model models.LabelModel
	model.FromDomain(label)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Ensure GormLabelRepository implements shipping.Repository
var _ shipping.Repository = (*GormLabelRepository)(nil)
