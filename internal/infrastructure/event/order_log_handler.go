package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/kobo/backend/internal/domain/order"
	"github.com/kobo/backend/internal/domain/shared"
)

// OrderLogHandler writes an audit log line for order lifecycle events
type OrderLogHandler struct {
	logger *zap.Logger
}

// NewOrderLogHandler creates a new OrderLogHandler
func NewOrderLogHandler(logger *zap.Logger) *OrderLogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderLogHandler{logger: logger}
}

// EventTypes returns the event types this handler listens for
func (h *OrderLogHandler) EventTypes() []string {
	return []string{order.EventTypeOrderRegistered, order.EventTypeOrderShipped}
}

// Handle logs the event
func (h *OrderLogHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *order.RegisteredEvent:
		h.logger.Info("Order registered",
			zap.String("order_id", e.OrderID),
			zap.String("platform", e.Platform),
			zap.String("buyer_name", e.BuyerName),
			zap.Int64("price_yen", e.PriceYen),
		)
	case *order.ShippedEvent:
		h.logger.Info("Order shipped",
			zap.String("order_id", e.OrderID),
			zap.String("shipping_method", e.ShippingMethod),
			zap.String("tracking_number", e.TrackingNumber),
		)
	default:
		h.logger.Info("Order event",
			zap.String("event_type", event.EventType()),
			zap.String("aggregate_id", event.AggregateID()),
		)
	}
	return nil
}

var _ shared.EventHandler = (*OrderLogHandler)(nil)
