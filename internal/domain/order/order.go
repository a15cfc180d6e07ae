package order

import (
	"strings"
	"time"

	"github.com/kobo/backend/internal/domain/shared"
	"github.com/kobo/backend/internal/domain/shared/valueobject"
)

// Order domain errors
var (
	ErrOrderNotFound       = shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")
	ErrOrderAlreadyShipped = shared.NewDomainError("ORDER_ALREADY_SHIPPED", "Order has already been shipped")
	ErrOrderNotShipped     = shared.NewDomainError("ORDER_NOT_SHIPPED", "Order has not been shipped yet")
	ErrEmptyOrderID        = shared.NewDomainError("INVALID_ORDER_ID", "Order ID cannot be empty")
	ErrEmptyBuyerName      = shared.NewDomainError("INVALID_BUYER_NAME", "Buyer name cannot be empty")
	ErrEmptyProductName    = shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
)

// ID is the marketplace-assigned order identifier (e.g. "ORD-001")
type ID struct {
	value string
}

// NewID creates an order ID from a raw string
func NewID(value string) (ID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return ID{}, ErrEmptyOrderID
	}
	return ID{value: value}, nil
}

// String returns the order ID
func (id ID) String() string { return id.value }

// Equals checks value equality
func (id ID) Equals(other ID) bool { return id.value == other.value }

// IsZero reports whether the ID is unset
func (id ID) IsZero() bool { return id.value == "" }

// Buyer holds the purchaser's contact details
type Buyer struct {
	Name        string
	Address     valueobject.Address
	PhoneNumber string // optional
}

// NewBuyer creates a Buyer
func NewBuyer(name string, address valueobject.Address, phoneNumber string) (Buyer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Buyer{}, ErrEmptyBuyerName
	}
	return Buyer{
		Name:        name,
		Address:     address,
		PhoneNumber: strings.TrimSpace(phoneNumber),
	}, nil
}

// Product holds the purchased item details
type Product struct {
	Name  string
	Price valueobject.Money
}

// NewProduct creates a Product
func NewProduct(name string, price valueobject.Money) (Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Product{}, ErrEmptyProductName
	}
	return Product{Name: name, Price: price}, nil
}

// Order is the aggregate root for a single customer purchase.
// It is created pending and moves to shipped exactly once; orders are never deleted.
type Order struct {
	ID             ID
	Platform       Platform
	Buyer          Buyer
	Product        Product
	Status         Status
	OrderedAt      time.Time
	ShippedAt      *time.Time
	ShippingMethod *valueobject.ShippingMethod
	TrackingNumber *valueobject.TrackingNumber
	CreatedAt      time.Time
	UpdatedAt      time.Time

	domainEvents []shared.DomainEvent
}

// New creates a pending order. A zero orderedAt defaults to now.
func New(id ID, platform Platform, buyer Buyer, product Product, orderedAt time.Time) (*Order, error) {
	if id.IsZero() {
		return nil, ErrEmptyOrderID
	}
	if !platform.IsValid() {
		return nil, ErrInvalidPlatform
	}
	if buyer.Name == "" {
		return nil, ErrEmptyBuyerName
	}
	if product.Name == "" {
		return nil, ErrEmptyProductName
	}

	now := time.Now()
	if orderedAt.IsZero() {
		orderedAt = now
	}

	o := &Order{
		ID:        id,
		Platform:  platform,
		Buyer:     buyer,
		Product:   product,
		Status:    StatusPending,
		OrderedAt: orderedAt,
		CreatedAt: now,
		UpdatedAt: now,
	}

	o.AddDomainEvent(NewRegisteredEvent(o))

	return o, nil
}

// MarkShipped transitions the order from pending to shipped.
// This is the only path that may set ShippedAt; a second call always fails.
func (o *Order) MarkShipped(method valueobject.ShippingMethod, tracking *valueobject.TrackingNumber, now time.Time) error {
	if o.Status == StatusShipped {
		return ErrOrderAlreadyShipped
	}
	if !o.Status.CanTransitionTo(StatusShipped) {
		return shared.ErrInvalidState
	}
	if !method.IsValid() {
		return valueobject.ErrInvalidShippingMethod
	}

	o.Status = StatusShipped
	o.ShippedAt = &now
	o.ShippingMethod = &method
	o.TrackingNumber = tracking
	o.UpdatedAt = now

	o.AddDomainEvent(NewShippedEvent(o))

	return nil
}

// IsPending returns true if the order has not been shipped
func (o *Order) IsPending() bool {
	return o.Status == StatusPending
}

// IsShipped returns true if the order has been shipped
func (o *Order) IsShipped() bool {
	return o.Status == StatusShipped
}

// DaysSinceOrder returns whole days elapsed since the order was placed
func (o *Order) DaysSinceOrder(ref time.Time) int {
	if ref.Before(o.OrderedAt) {
		return 0
	}
	return int(ref.Sub(o.OrderedAt).Hours() / 24)
}

// IsOverdue reports whether a pending order has waited longer than threshold days
func (o *Order) IsOverdue(ref time.Time, thresholdDays int) bool {
	return o.IsPending() && o.DaysSinceOrder(ref) > thresholdDays
}

// AddDomainEvent adds a domain event to be published
func (o *Order) AddDomainEvent(event shared.DomainEvent) {
	o.domainEvents = append(o.domainEvents, event)
}

// DomainEvents returns all pending domain events
func (o *Order) DomainEvents() []shared.DomainEvent {
	return o.domainEvents
}

// ClearDomainEvents clears the pending domain events
func (o *Order) ClearDomainEvents() {
	o.domainEvents = nil
}
