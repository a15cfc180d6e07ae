package models

import (
	"time"

	"github.com/kobo/backend/internal/domain/messaging"
)

// TemplateModel is the persistence model for message templates.
// One row per template type; variables are re-derived from content on load.
type TemplateModel struct {
	Type      string    `gorm:"type:varchar(30);primaryKey"`
	ID        string    `gorm:"type:varchar(64);not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TemplateModel) TableName() string {
	return "message_templates"
}

// ToDomain converts the persistence model to a domain Template
func (m *TemplateModel) ToDomain() (*messaging.Template, error) {
	return messaging.NewTemplate(m.ID, messaging.TemplateType(m.Type), m.Content)
}

// FromDomain populates the persistence model from a domain Template
func (m *TemplateModel) FromDomain(t *messaging.Template) {
	m.Type = t.Type.String()
	m.ID = t.ID
	m.Content = t.Content
}
