package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/kobo/backend/internal/domain/integration"
	"github.com/kobo/backend/internal/infrastructure/persistence/models"
)

// GormMappingRepository implements integration.MappingRepository using GORM
type GormMappingRepository struct {
	db *gorm.DB
}

// NewGormMappingRepository creates a new GormMappingRepository
func NewGormMappingRepository(db *gorm.DB) *GormMappingRepository {
	return &GormMappingRepository{db: db}
}

// FindAll returns every mapping row
func (r *GormMappingRepository) FindAll(ctx context.Context) ([]integration.ProductNameMapping, error) {
	var mappingModels []models.ProductNameMappingModel
	if err := r.db.WithContext(ctx).
		Order("raw_key ASC").
		Find(&mappingModels).Error; err != nil {
		return nil, err
	}

	rows := make([]integration.ProductNameMapping, len(mappingModels))
	for i := range mappingModels {
		row, err := mappingModels[i].ToDomain()
		if err != nil {
			return nil, err
		}
		rows[i] = row
	}
	return rows, nil
}

// ReplaceAll swaps the stored rows for the given set in one transaction
func (r *GormMappingRepository) ReplaceAll(ctx context.Context, rows []integration.ProductNameMapping) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.ProductNameMappingModel{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		mappingModels := make([]models.ProductNameMappingModel, len(rows))
		for i, row := range rows {
			mappingModels[i].FromDomain(row)
		}
		return tx.Create(&mappingModels).Error
	})
}

// Ensure GormMappingRepository implements integration.MappingRepository
var _ integration.MappingRepository = (*GormMappingRepository)(nil)
