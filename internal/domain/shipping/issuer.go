package shipping

import (
	"context"

	"github.com/kobo/backend/internal/domain/order"
	"github.com/kobo/backend/internal/domain/shared/valueobject"
)

// Issuer produces a carrier label for an order. Issuing a label never
// mutates the order; the label is recorded in its own repository.
type Issuer interface {
	Issue(ctx context.Context, o *order.Order, method valueobject.ShippingMethod) (*Label, error)
}
