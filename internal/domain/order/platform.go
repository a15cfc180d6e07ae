package order

import (
	"strings"

	"github.com/kobo/backend/internal/domain/shared"
)

// ErrInvalidPlatform is returned when a platform code is not recognized
var ErrInvalidPlatform = shared.NewDomainError("INVALID_PLATFORM", "Unrecognized marketplace platform")

// Platform identifies the marketplace channel a purchase was made through
type Platform string

const (
	PlatformMinne  Platform = "minne"
	PlatformCreema Platform = "creema"
)

// ParsePlatform parses a raw code into a Platform
func ParsePlatform(code string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(code)))
	if !p.IsValid() {
		return "", ErrInvalidPlatform
	}
	return p, nil
}

// IsValid checks if the platform is a recognized value
func (p Platform) IsValid() bool {
	switch p {
	case PlatformMinne, PlatformCreema:
		return true
	}
	return false
}

// String returns the platform code
func (p Platform) String() string {
	return string(p)
}
