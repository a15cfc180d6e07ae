package order

import (
	"github.com/kobo/backend/internal/domain/shared/valueobject"
)

// FromRaw builds a pending Order aggregate from raw platform-scraped data.
// It normalizes the buyer address and validates the prefecture, platform and price.
func FromRaw(raw RawOrder) (*Order, error) {
	id, err := NewID(raw.OrderID)
	if err != nil {
		return nil, err
	}

	platform, err := ParsePlatform(raw.Platform)
	if err != nil {
		return nil, err
	}

	prefecture, err := valueobject.NewPrefecture(raw.Prefecture)
	if err != nil {
		return nil, err
	}

	address, err := valueobject.NewAddress(raw.PostalCode, prefecture, raw.City, raw.Street, raw.Building)
	if err != nil {
		return nil, err
	}

	buyer, err := NewBuyer(raw.BuyerName, address, raw.PhoneNumber)
	if err != nil {
		return nil, err
	}

	price, err := valueobject.NewMoneyJPYFromInt(raw.PriceYen)
	if err != nil {
		return nil, err
	}

	product, err := NewProduct(raw.ProductName, price)
	if err != nil {
		return nil, err
	}

	return New(id, platform, buyer, product, raw.OrderedAt)
}
