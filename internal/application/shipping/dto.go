package shipping

import (
	"time"

	"github.com/kobo/backend/internal/domain/shipping"
)

// IssueLabelRequest is the request to issue a shipping label for an order
type IssueLabelRequest struct {
	OrderID        string `json:"order_id" binding:"required"`
	ShippingMethod string `json:"shipping_method" binding:"required"`
}

// LabelResponse is an issued label. Fields beyond the common header are
// populated per kind: pdf_data and tracking_number for click_post, qr_code
// and waybill_number for yamato_compact.
type LabelResponse struct {
	LabelID   string     `json:"label_id"`
	OrderID   string     `json:"order_id"`
	Kind      string     `json:"kind"`
	Status    string     `json:"status"`
	IssuedAt  time.Time  `json:"issued_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Expired   bool       `json:"expired"`

	PDFData        string `json:"pdf_data,omitempty"`
	TrackingNumber string `json:"tracking_number,omitempty"`
	QRCode         string `json:"qr_code,omitempty"`
	WaybillNumber  string `json:"waybill_number,omitempty"`
}

// ToLabelResponse converts a label to its response DTO, deriving Expired at ref
func ToLabelResponse(l *shipping.Label, ref time.Time) LabelResponse {
	return LabelResponse{
		LabelID:        l.ID.String(),
		OrderID:        l.OrderID.String(),
		Kind:           l.Kind.String(),
		Status:         string(l.Status),
		IssuedAt:       l.IssuedAt,
		ExpiresAt:      l.ExpiresAt,
		Expired:        l.IsExpired(ref),
		PDFData:        l.PDFData,
		TrackingNumber: l.TrackingNumber.String(),
		QRCode:         l.QRCode,
		WaybillNumber:  l.WaybillNumber,
	}
}
