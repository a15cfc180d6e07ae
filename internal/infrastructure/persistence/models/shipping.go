package models

import (
	"time"

	"github.com/kobo/backend/internal/domain/order"
	"github.com/kobo/backend/internal/domain/shared/valueobject"
	"github.com/kobo/backend/internal/domain/shipping"
)

// LabelModel is the persistence model for issued shipping labels.
// Variant fields are nullable; which set is populated follows the kind.
type LabelModel struct {
	LabelID        string    `gorm:"type:varchar(64);primaryKey"`
	OrderID        string    `gorm:"type:varchar(64);not null;index"`
	Kind           string    `gorm:"type:varchar(30);not null"`
	Status         string    `gorm:"type:varchar(20);not null"`
	IssuedAt       time.Time `gorm:"not null;index"`
	ExpiresAt      *time.Time
	PDFData        string `gorm:"type:text"`
	TrackingNumber string `gorm:"type:varchar(50)"`
	QRCode         string `gorm:"type:text"`
	WaybillNumber  string `gorm:"type:varchar(50)"`
	CreatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (LabelModel) TableName() string {
	return "shipping_labels"
}

// ToDomain converts the persistence model to a domain Label
func (m *LabelModel) ToDomain() (*shipping.Label, error) {
	id, err := shipping.NewLabelID(m.LabelID)
	if err != nil {
		return nil, err
	}
	orderID, err := order.NewID(m.OrderID)
	if err != nil {
		return nil, err
	}

	label := &shipping.Label{
		ID:            id,
		OrderID:       orderID,
		Kind:          valueobject.ShippingMethod(m.Kind),
		Status:        shipping.LabelStatus(m.Status),
		IssuedAt:      m.IssuedAt,
		ExpiresAt:     m.ExpiresAt,
		PDFData:       m.PDFData,
		QRCode:        m.QRCode,
		WaybillNumber: m.WaybillNumber,
	}
	if m.TrackingNumber != "" {
		tracking, err := valueobject.NewTrackingNumber(m.TrackingNumber)
		if err != nil {
			return nil, err
		}
		label.TrackingNumber = tracking
	}
	if err := label.Validate(); err != nil {
		return nil, err
	}
	return label, nil
}

// FromDomain populates the persistence model from a domain Label
func (m *LabelModel) FromDomain(l *shipping.Label) {
	m.LabelID = l.ID.String()
	m.OrderID = l.OrderID.String()
	m.Kind = l.Kind.String()
	m.Status = string(l.Status)
	m.IssuedAt = l.IssuedAt
	m.ExpiresAt = l.ExpiresAt
	m.PDFData = l.PDFData
	m.TrackingNumber = l.TrackingNumber.String()
	m.QRCode = l.QRCode
	m.WaybillNumber = l.WaybillNumber
}
