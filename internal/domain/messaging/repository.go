package messaging

import (
	"context"
)

// TemplateRepository defines the interface for message template persistence
type TemplateRepository interface {
	// FindByType finds the template saved for the given type
	FindByType(ctx context.Context, templateType TemplateType) (*Template, error)

	// Save creates or replaces the template for its type
	Save(ctx context.Context, template *Template) error

	// ResetToDefault restores the built-in template for the given type and
	// returns it
	ResetToDefault(ctx context.Context, templateType TemplateType) (*Template, error)
}
