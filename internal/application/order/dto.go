package order

import (
	"time"

	"github.com/kobo/backend/internal/domain/order"
)

// MarkShippedRequest is the request to mark an order as shipped. A nil
// TrackingNumber means none was issued; a supplied blank one is rejected.
type MarkShippedRequest struct {
	OrderID        string  `json:"order_id" binding:"required"`
	ShippingMethod string  `json:"shipping_method" binding:"required"`
	TrackingNumber *string `json:"tracking_number"`
}

// OrderResponse is the full order representation returned to clients
type OrderResponse struct {
	OrderID        string     `json:"order_id"`
	Platform       string     `json:"platform"`
	BuyerName      string     `json:"buyer_name"`
	PostalCode     string     `json:"postal_code"`
	Prefecture     string     `json:"prefecture"`
	City           string     `json:"city"`
	Street         string     `json:"street"`
	Building       string     `json:"building,omitempty"`
	FullAddress    string     `json:"full_address"`
	PhoneNumber    string     `json:"phone_number,omitempty"`
	ProductName    string     `json:"product_name"`
	PriceYen       int64      `json:"price_yen"`
	PriceDisplay   string     `json:"price_display"`
	Status         string     `json:"status"`
	OrderedAt      time.Time  `json:"ordered_at"`
	ShippedAt      *time.Time `json:"shipped_at,omitempty"`
	ShippingMethod string     `json:"shipping_method,omitempty"`
	TrackingNumber string     `json:"tracking_number,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// PendingOrderResponse is a pending order with its waiting-time derived fields
type PendingOrderResponse struct {
	OrderResponse
	DaysSinceOrder int  `json:"days_since_order"`
	Overdue        bool `json:"overdue"`
}

// FetchResultResponse summarizes one ingestion run
type FetchResultResponse struct {
	Fetched int                  `json:"fetched"`
	Skipped int                  `json:"skipped"`
	Errors  []FetchErrorResponse `json:"errors"`
}

// FetchErrorResponse describes a single order that failed to ingest
type FetchErrorResponse struct {
	OrderID  string `json:"order_id"`
	Platform string `json:"platform"`
	Message  string `json:"message"`
}

// ToOrderResponse converts an order aggregate to its response DTO
func ToOrderResponse(o *order.Order) OrderResponse {
	addr := o.Buyer.Address
	resp := OrderResponse{
		OrderID:      o.ID.String(),
		Platform:     o.Platform.String(),
		BuyerName:    o.Buyer.Name,
		PostalCode:   addr.PostalCode(),
		Prefecture:   addr.Prefecture().String(),
		City:         addr.City(),
		Street:       addr.Street(),
		Building:     addr.Building(),
		FullAddress:  addr.FullAddress(),
		PhoneNumber:  o.Buyer.PhoneNumber,
		ProductName:  o.Product.Name,
		PriceYen:     o.Product.Price.Yen(),
		PriceDisplay: o.Product.Price.Format(),
		Status:       o.Status.String(),
		OrderedAt:    o.OrderedAt,
		ShippedAt:    o.ShippedAt,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
	if o.ShippingMethod != nil {
		resp.ShippingMethod = o.ShippingMethod.String()
	}
	if o.TrackingNumber != nil {
		resp.TrackingNumber = o.TrackingNumber.String()
	}
	return resp
}

// ToPendingOrderResponse converts a pending order, deriving waiting-time fields at ref
func ToPendingOrderResponse(o *order.Order, ref time.Time, overdueThresholdDays int) PendingOrderResponse {
	return PendingOrderResponse{
		OrderResponse:  ToOrderResponse(o),
		DaysSinceOrder: o.DaysSinceOrder(ref),
		Overdue:        o.IsOverdue(ref, overdueThresholdDays),
	}
}
