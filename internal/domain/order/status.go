package order

// Status represents the shipping lifecycle state of an order
type Status string

const (
	StatusPending Status = "pending"
	StatusShipped Status = "shipped"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusShipped:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// The lifecycle is one-way: pending -> shipped, never reversed.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusShipped
	case StatusShipped:
		return false // Terminal state
	}
	return false
}
