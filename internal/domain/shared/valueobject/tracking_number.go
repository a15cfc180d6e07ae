package valueobject

import (
	"strings"

	"github.com/kobo/backend/internal/domain/shared"
)

// ErrEmptyTrackingNumber is returned when a tracking number is blank
var ErrEmptyTrackingNumber = shared.NewDomainError("INVALID_TRACKING_NUMBER", "Tracking number cannot be empty")

// TrackingNumber is a carrier-issued parcel tracking number
type TrackingNumber struct {
	value string
}

// NewTrackingNumber creates a TrackingNumber from a raw string
func NewTrackingNumber(value string) (TrackingNumber, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return TrackingNumber{}, ErrEmptyTrackingNumber
	}
	return TrackingNumber{value: value}, nil
}

// String returns the tracking number
func (t TrackingNumber) String() string {
	return t.value
}

// Equals checks value equality
func (t TrackingNumber) Equals(other TrackingNumber) bool {
	return t.value == other.value
}
