package order

import (
	"context"
	"time"
)

// OrderRef is a pointer to an order found in a marketplace notification email
type OrderRef struct {
	MessageID string
	OrderID   string
	Platform  Platform
}

// FetchOptions narrows what an EmailSource should return
type FetchOptions struct {
	// MaxResults caps the number of refs returned; 0 means source default
	MaxResults int
}

// EmailSource lists unread purchase-notification emails and marks them processed
type EmailSource interface {
	FetchUnreadOrderRefs(ctx context.Context, opts FetchOptions) ([]OrderRef, error)
	MarkAsRead(ctx context.Context, messageID string) error
}

// RawOrder is the raw order data scraped from a marketplace order page.
// The order factory normalizes and validates it into an aggregate.
type RawOrder struct {
	OrderID     string
	Platform    string
	BuyerName   string
	PostalCode  string
	Prefecture  string
	City        string
	Street      string
	Building    string
	PhoneNumber string
	ProductName string
	PriceYen    int64
	OrderedAt   time.Time
}

// Fetcher retrieves raw order data from a marketplace
type Fetcher interface {
	Fetch(ctx context.Context, orderID string, platform Platform) (*RawOrder, error)
}

// NotificationSender delivers an operational notification to the shop owner
type NotificationSender interface {
	Notify(ctx context.Context, message string) error
}
