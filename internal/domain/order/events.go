package order

import (
	"time"

	"github.com/kobo/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderRegistered = "OrderRegistered"
	EventTypeOrderShipped    = "OrderShipped"
)

// RegisteredEvent is raised when a new order is registered from a platform notification
type RegisteredEvent struct {
	shared.BaseDomainEvent
	OrderID     string `json:"order_id"`
	Platform    string `json:"platform"`
	BuyerName   string `json:"buyer_name"`
	ProductName string `json:"product_name"`
	PriceYen    int64  `json:"price_yen"`
}

// NewRegisteredEvent creates a new RegisteredEvent
func NewRegisteredEvent(o *Order) *RegisteredEvent {
	return &RegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderRegistered, AggregateTypeOrder, o.ID.String()),
		OrderID:         o.ID.String(),
		Platform:        o.Platform.String(),
		BuyerName:       o.Buyer.Name,
		ProductName:     o.Product.Name,
		PriceYen:        o.Product.Price.Yen(),
	}
}

// ShippedEvent is raised when an order transitions to shipped
type ShippedEvent struct {
	shared.BaseDomainEvent
	OrderID        string    `json:"order_id"`
	BuyerName      string    `json:"buyer_name"`
	ShippingMethod string    `json:"shipping_method"`
	TrackingNumber string    `json:"tracking_number,omitempty"`
	ShippedAt      time.Time `json:"shipped_at"`
}

// NewShippedEvent creates a new ShippedEvent
func NewShippedEvent(o *Order) *ShippedEvent {
	e := &ShippedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderShipped, AggregateTypeOrder, o.ID.String()),
		OrderID:         o.ID.String(),
		BuyerName:       o.Buyer.Name,
	}
	if o.ShippingMethod != nil {
		e.ShippingMethod = o.ShippingMethod.String()
	}
	if o.TrackingNumber != nil {
		e.TrackingNumber = o.TrackingNumber.String()
	}
	if o.ShippedAt != nil {
		e.ShippedAt = *o.ShippedAt
	}
	return e
}
