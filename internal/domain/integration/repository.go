package integration

import (
	"context"
)

// MappingRepository defines the interface for product-name mapping persistence.
// The table is replaced wholesale whenever the spreadsheet source is reloaded.
type MappingRepository interface {
	// FindAll returns every mapping row
	FindAll(ctx context.Context) ([]ProductNameMapping, error)

	// ReplaceAll swaps the stored rows for the given set
	ReplaceAll(ctx context.Context, rows []ProductNameMapping) error
}

// MappingSource loads mapping rows from an external sheet
type MappingSource interface {
	Load(ctx context.Context) ([]ProductNameMapping, error)
}
