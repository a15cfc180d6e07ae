package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kobo/backend/internal/domain/messaging"
	"github.com/kobo/backend/internal/infrastructure/persistence/models"
)

// GormTemplateRepository implements messaging.TemplateRepository using GORM.
// The built-in templates are seeded by migration, so every type normally has
// a row.
type GormTemplateRepository struct {
	db *gorm.DB
}

// NewGormTemplateRepository creates a new GormTemplateRepository
func NewGormTemplateRepository(db *gorm.DB) *GormTemplateRepository {
	return &GormTemplateRepository{db: db}
}

// FindByType finds the template saved for the given type
func (r *GormTemplateRepository) FindByType(ctx context.Context, templateType messaging.TemplateType) (*messaging.Template, error) {
	if !templateType.IsValid() {
		return nil, messaging.ErrInvalidTemplateType
	}
	var model models.TemplateModel
	if err := r.db.WithContext(ctx).First(&model, "type = ?", templateType.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, messaging.ErrTemplateNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// Save creates or replaces the template for its type
func (r *GormTemplateRepository) Save(ctx context.Context, template *messaging.Template) error {
	var model models.TemplateModel
	model.FromDomain(template)
	return r.db.WithContext(ctx).Save(&model).Error
}

// ResetToDefault restores the built-in template for the given type and returns it
func (r *GormTemplateRepository) ResetToDefault(ctx context.Context, templateType messaging.TemplateType) (*messaging.Template, error) {
	tpl, err := messaging.DefaultTemplate(templateType)
	if err != nil {
		return nil, err
	}
	if err := r.Save(ctx, tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

// Ensure GormTemplateRepository implements messaging.TemplateRepository
var _ messaging.TemplateRepository = (*GormTemplateRepository)(nil)
