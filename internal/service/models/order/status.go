package order

import "errors"

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPlaced     Status = "placed"
	StatusConfirmed  Status = "confirmed"
	StatusPacked     Status = "packed"
	StatusDispatched Status = "dispatched"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

var ErrInvalidStatus = errors.New("invalid order status")

func (s Status) String() string {
	return string(s)
}

// Terminal reports whether no further transitions are allowed from s.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether the move from s to next is allowed.
// Any non-terminal status may be cancelled.
func (s Status) CanTransitionTo(next Status) bool {
	if s.Terminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}

	order := map[Status]int{
		StatusPlaced:     0,
		StatusConfirmed:  1,
		StatusPacked:     2,
		StatusDispatched: 3,
		StatusDelivered:  4,
	}

	from, ok := order[s]
	if !ok {
		return false
	}
	to, ok := order[next]
	if !ok {
		return false
	}

	return to == from+1
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPlaced, StatusConfirmed, StatusPacked, StatusDispatched, StatusDelivered, StatusCancelled:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
