package valueobject

import (
	"regexp"
	"strings"

	"github.com/kobo/backend/internal/domain/shared"
)

// Address validation errors
var (
	ErrInvalidPostalCode = shared.NewDomainError("INVALID_POSTAL_CODE", "Postal code must be 7 digits (NNN-NNNN)")
	ErrEmptyCity         = shared.NewDomainError("INVALID_ADDRESS", "City cannot be empty")
	ErrEmptyStreet       = shared.NewDomainError("INVALID_ADDRESS", "Street cannot be empty")
)

var postalCodePattern = regexp.MustCompile(`^\d{3}-?\d{4}$`)

// Address is a value object representing a Japanese shipping address.
// It is immutable - construct a new Address to change it.
type Address struct {
	postalCode string
	prefecture Prefecture
	city       string
	street     string
	building   string
}

// NewAddress creates a new Address. Building is optional.
// The postal code is normalized to NNN-NNNN form.
func NewAddress(postalCode string, prefecture Prefecture, city, street, building string) (Address, error) {
	postalCode = strings.TrimSpace(postalCode)
	city = strings.TrimSpace(city)
	street = strings.TrimSpace(street)
	building = strings.TrimSpace(building)

	if !postalCodePattern.MatchString(postalCode) {
		return Address{}, ErrInvalidPostalCode
	}
	if prefecture.IsZero() {
		return Address{}, ErrInvalidPrefecture
	}
	if city == "" {
		return Address{}, ErrEmptyCity
	}
	if street == "" {
		return Address{}, ErrEmptyStreet
	}

	digits := strings.ReplaceAll(postalCode, "-", "")
	normalized := digits[:3] + "-" + digits[3:]

	return Address{
		postalCode: normalized,
		prefecture: prefecture,
		city:       city,
		street:     street,
		building:   building,
	}, nil
}

// PostalCode returns the normalized postal code (NNN-NNNN)
func (a Address) PostalCode() string { return a.postalCode }

// Prefecture returns the prefecture
func (a Address) Prefecture() Prefecture { return a.prefecture }

// City returns the city
func (a Address) City() string { return a.city }

// Street returns the street
func (a Address) Street() string { return a.street }

// Building returns the building name, empty if not set
func (a Address) Building() string { return a.building }

// FullAddress returns the address as a single display line
func (a Address) FullAddress() string {
	var b strings.Builder
	b.WriteString("〒")
	b.WriteString(a.postalCode)
	b.WriteString(" ")
	b.WriteString(a.prefecture.String())
	b.WriteString(a.city)
	b.WriteString(a.street)
	if a.building != "" {
		b.WriteString(" ")
		b.WriteString(a.building)
	}
	return b.String()
}

// Equals checks value equality
func (a Address) Equals(other Address) bool {
	return a == other
}
