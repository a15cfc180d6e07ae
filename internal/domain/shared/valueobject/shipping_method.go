package valueobject

import (
	"strings"

	"github.com/kobo/backend/internal/domain/shared"
)

// ErrInvalidShippingMethod is returned when a shipping method code is not recognized
var ErrInvalidShippingMethod = shared.NewDomainError("INVALID_SHIPPING_METHOD", "Unrecognized shipping method")

// ShippingMethod identifies the carrier service used to ship an order
type ShippingMethod string

const (
	ShippingMethodClickPost     ShippingMethod = "click_post"
	ShippingMethodYamatoCompact ShippingMethod = "yamato_compact"
)

// ParseShippingMethod parses a wire code into a ShippingMethod
func ParseShippingMethod(code string) (ShippingMethod, error) {
	m := ShippingMethod(strings.TrimSpace(code))
	if !m.IsValid() {
		return "", ErrInvalidShippingMethod
	}
	return m, nil
}

// IsValid checks if the method is a recognized value
func (m ShippingMethod) IsValid() bool {
	switch m {
	case ShippingMethodClickPost, ShippingMethodYamatoCompact:
		return true
	}
	return false
}

// String returns the wire code
func (m ShippingMethod) String() string {
	return string(m)
}
