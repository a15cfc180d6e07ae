package models

import (
	"time"

	"github.com/kobo/backend/internal/domain/integration"
)

// ProductNameMappingModel is the persistence model for product-name mapping rows
type ProductNameMappingModel struct {
	RawKey     string    `gorm:"type:varchar(300);primaryKey"`
	MappedName string    `gorm:"type:varchar(300);not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductNameMappingModel) TableName() string {
	return "product_name_mappings"
}

// ToDomain converts the persistence model to a domain mapping row
func (m *ProductNameMappingModel) ToDomain() (integration.ProductNameMapping, error) {
	return integration.NewProductNameMapping(m.RawKey, m.MappedName)
}

// FromDomain populates the persistence model from a domain mapping row
func (m *ProductNameMappingModel) FromDomain(row integration.ProductNameMapping) {
	m.RawKey = row.RawKey
	m.MappedName = row.MappedName
}
