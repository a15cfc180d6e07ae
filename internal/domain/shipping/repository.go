package shipping

import (
	"context"

	"github.com/kobo/backend/internal/domain/order"
)

// Repository defines the interface for shipping label persistence.
// Labels are keyed by label ID and queryable by the order they document.
type Repository interface {
	// FindByID finds a label by its ID
	FindByID(ctx context.Context, id LabelID) (*Label, error)

	// FindByOrderID finds all labels issued for an order, newest first
	FindByOrderID(ctx context.Context, orderID order.ID) ([]Label, error)

	// Save persists an issued label
	Save(ctx context.Context, label *Label) error
}
