package models

import (
	"time"

	"github.com/kobo/backend/internal/domain/order"
	"github.com/kobo/backend/internal/domain/shared/valueobject"
)

// OrderModel is the persistence model for the Order aggregate root.
// The marketplace order ID is the primary key; orders are never deleted.
type OrderModel struct {
	OrderID        string `gorm:"type:varchar(64);primaryKey"`
	Platform       string `gorm:"type:varchar(20);not null;index"`
	BuyerName      string `gorm:"type:varchar(200);not null;index"`
	PostalCode     string `gorm:"type:varchar(8);not null"`
	Prefecture     string `gorm:"type:varchar(10);not null"`
	City           string `gorm:"type:varchar(100);not null"`
	Street         string `gorm:"type:varchar(200);not null"`
	Building       string `gorm:"type:varchar(200)"`
	PhoneNumber    string `gorm:"type:varchar(20)"`
	ProductName    string `gorm:"type:varchar(300);not null"`
	PriceYen       int64  `gorm:"not null"`
	Status         string `gorm:"type:varchar(20);not null;index"`
	OrderedAt      time.Time `gorm:"not null;index"`
	ShippedAt      *time.Time
	ShippingMethod *string `gorm:"type:varchar(30)"`
	TrackingNumber *string `gorm:"type:varchar(50)"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order aggregate.
// Stored rows passed domain validation on the way in, so a conversion
// failure means the row was corrupted outside the application.
func (m *OrderModel) ToDomain() (*order.Order, error) {
	id, err := order.NewID(m.OrderID)
	if err != nil {
		return nil, err
	}
	platform, err := order.ParsePlatform(m.Platform)
	if err != nil {
		return nil, err
	}
	prefecture, err := valueobject.NewPrefecture(m.Prefecture)
	if err != nil {
		return nil, err
	}
	address, err := valueobject.NewAddress(m.PostalCode, prefecture, m.City, m.Street, m.Building)
	if err != nil {
		return nil, err
	}
	buyer, err := order.NewBuyer(m.BuyerName, address, m.PhoneNumber)
	if err != nil {
		return nil, err
	}
	price, err := valueobject.NewMoneyJPYFromInt(m.PriceYen)
	if err != nil {
		return nil, err
	}
	product, err := order.NewProduct(m.ProductName, price)
	if err != nil {
		return nil, err
	}

	o := &order.Order{
		ID:        id,
		Platform:  platform,
		Buyer:     buyer,
		Product:   product,
		Status:    order.Status(m.Status),
		OrderedAt: m.OrderedAt,
		ShippedAt: m.ShippedAt,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.ShippingMethod != nil {
		method := valueobject.ShippingMethod(*m.ShippingMethod)
		o.ShippingMethod = &method
	}
	if m.TrackingNumber != nil {
		tracking, err := valueobject.NewTrackingNumber(*m.TrackingNumber)
		if err != nil {
			return nil, err
		}
		o.TrackingNumber = &tracking
	}
	return o, nil
}

// FromDomain populates the persistence model from a domain Order aggregate
func (m *OrderModel) FromDomain(o *order.Order) {
	m.OrderID = o.ID.String()
	m.Platform = o.Platform.String()
	m.BuyerName = o.Buyer.Name
	m.PostalCode = o.Buyer.Address.PostalCode()
	m.Prefecture = o.Buyer.Address.Prefecture().String()
	m.City = o.Buyer.Address.City()
	m.Street = o.Buyer.Address.Street()
	m.Building = o.Buyer.Address.Building()
	m.PhoneNumber = o.Buyer.PhoneNumber
	m.ProductName = o.Product.Name
	m.PriceYen = o.Product.Price.Yen()
	m.Status = o.Status.String()
	m.OrderedAt = o.OrderedAt
	m.ShippedAt = o.ShippedAt
	m.CreatedAt = o.CreatedAt
	m.UpdatedAt = o.UpdatedAt

	m.ShippingMethod = nil
	if o.ShippingMethod != nil {
		method := o.ShippingMethod.String()
		m.ShippingMethod = &method
	}
	m.TrackingNumber = nil
	if o.TrackingNumber != nil {
		tracking := o.TrackingNumber.String()
		m.TrackingNumber = &tracking
	}
}
