package order

import (
	"context"
)

// Repository defines the interface for order persistence.
// Orders are append-only: there is no delete.
type Repository interface {
	// FindByID finds an order by its marketplace order ID
	FindByID(ctx context.Context, id ID) (*Order, error)

	// FindByStatus finds orders in the given status, oldest first
	FindByStatus(ctx context.Context, status Status) ([]Order, error)

	// FindByBuyerName finds orders whose buyer name contains the given fragment
	FindByBuyerName(ctx context.Context, name string) ([]Order, error)

	// FindAll returns all orders, newest first
	FindAll(ctx context.Context) ([]Order, error)

	// Save creates or updates an order
	Save(ctx context.Context, o *Order) error

	// Exists checks whether an order with the given ID is already registered
	Exists(ctx context.Context, id ID) (bool, error)
}
