package shipping

import (
	"strings"
	"time"

	"github.com/kobo/backend/internal/domain/order"
	"github.com/kobo/backend/internal/domain/shared"
	"github.com/kobo/backend/internal/domain/shared/valueobject"
)

// Label domain errors
var (
	ErrLabelNotFound      = shared.NewDomainError("LABEL_NOT_FOUND", "Shipping label not found")
	ErrEmptyLabelID       = shared.NewDomainError("INVALID_LABEL_ID", "Label ID cannot be empty")
	ErrEmptyPDFData       = shared.NewDomainError("INVALID_LABEL_PDF", "Click Post label PDF data cannot be empty")
	ErrEmptyQRCode        = shared.NewDomainError("INVALID_LABEL_QR", "Yamato compact label QR code cannot be empty")
	ErrEmptyWaybillNumber = shared.NewDomainError("INVALID_WAYBILL_NUMBER", "Yamato compact waybill number cannot be empty")
)

// YamatoCompactValidityDays is how long a Yamato compact QR code stays usable after issuance
const YamatoCompactValidityDays = 14

// LabelID identifies an issued shipping label
type LabelID struct {
	value string
}

// NewLabelID creates a label ID from a raw string
func NewLabelID(value string) (LabelID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return LabelID{}, ErrEmptyLabelID
	}
	return LabelID{value: value}, nil
}

// String returns the label ID
func (id LabelID) String() string { return id.value }

// Equals checks value equality
func (id LabelID) Equals(other LabelID) bool { return id.value == other.value }

// LabelStatus is the lifecycle state of a label. Issued is terminal;
// no further transitions are modeled.
type LabelStatus string

// LabelStatusIssued is the only label status
const LabelStatusIssued LabelStatus = "issued"

// Label is an issued shipping label. It is a tagged union over the carrier
// variants: the Kind field selects which variant fields are populated.
// Labels are immutable once issued; an order may accumulate several
// (reissue after loss is permitted).
type Label struct {
	ID        LabelID
	OrderID   order.ID
	Kind      valueobject.ShippingMethod
	Status    LabelStatus
	IssuedAt  time.Time
	ExpiresAt *time.Time

	// click_post variant
	PDFData        string
	TrackingNumber valueobject.TrackingNumber

	// yamato_compact variant
	QRCode        string
	WaybillNumber string
}

// NewClickPostLabel issues a Click Post label. Click Post labels never expire.
func NewClickPostLabel(id LabelID, orderID order.ID, pdfData string, tracking valueobject.TrackingNumber, issuedAt time.Time) (*Label, error) {
	if strings.TrimSpace(id.String()) == "" {
		return nil, ErrEmptyLabelID
	}
	if orderID.IsZero() {
		return nil, order.ErrEmptyOrderID
	}
	if strings.TrimSpace(pdfData) == "" {
		return nil, ErrEmptyPDFData
	}

	return &Label{
		ID:             id,
		OrderID:        orderID,
		Kind:           valueobject.ShippingMethodClickPost,
		Status:         LabelStatusIssued,
		IssuedAt:       issuedAt,
		PDFData:        pdfData,
		TrackingNumber: tracking,
	}, nil
}

// NewYamatoCompactLabel issues a Yamato compact label.
// Its QR code expires exactly YamatoCompactValidityDays after issuance.
func NewYamatoCompactLabel(id LabelID, orderID order.ID, qrCode, waybillNumber string, issuedAt time.Time) (*Label, error) {
	if strings.TrimSpace(id.String()) == "" {
		return nil, ErrEmptyLabelID
	}
	if orderID.IsZero() {
		return nil, order.ErrEmptyOrderID
	}
	if strings.TrimSpace(qrCode) == "" {
		return nil, ErrEmptyQRCode
	}
	if strings.TrimSpace(waybillNumber) == "" {
		return nil, ErrEmptyWaybillNumber
	}

	expiresAt := issuedAt.AddDate(0, 0, YamatoCompactValidityDays)

	return &Label{
		ID:            id,
		OrderID:       orderID,
		Kind:          valueobject.ShippingMethodYamatoCompact,
		Status:        LabelStatusIssued,
		IssuedAt:      issuedAt,
		ExpiresAt:     &expiresAt,
		QRCode:        qrCode,
		WaybillNumber: waybillNumber,
	}, nil
}

// IsExpired reports whether the label's validity window has passed at ref.
// Strict less-than: a reference time equal to the expiry instant is NOT expired.
func (l *Label) IsExpired(ref time.Time) bool {
	return l.ExpiresAt != nil && l.ExpiresAt.Before(ref)
}

// Validate re-checks the variant invariants; the switch is exhaustive over Kind.
func (l *Label) Validate() error {
	switch l.Kind {
	case valueobject.ShippingMethodClickPost:
		if strings.TrimSpace(l.PDFData) == "" {
			return ErrEmptyPDFData
		}
		return nil
	case valueobject.ShippingMethodYamatoCompact:
		if strings.TrimSpace(l.QRCode) == "" {
			return ErrEmptyQRCode
		}
		if strings.TrimSpace(l.WaybillNumber) == "" {
			return ErrEmptyWaybillNumber
		}
		return nil
	default:
		return valueobject.ErrInvalidShippingMethod
	}
}
