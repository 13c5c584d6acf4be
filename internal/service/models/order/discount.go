package order

import (
	"errors"
	"math"
)

// DiscountMode selects how an edit's discount input is interpreted. The two
// modes are mutually exclusive: whichever is chosen, the other field on the
// stored order is cleared.
type DiscountMode string

const (
	DiscountModeAmount  DiscountMode = "amount"
	DiscountModePercent DiscountMode = "percent"
)

var ErrInvalidDiscountMode = errors.New("invalid discount mode")

// DiscountSpec is the discount input attached to an order edit.
type DiscountSpec struct {
	Mode    DiscountMode `json:"mode"`
	Amount  int64        `json:"amount,omitempty"`  // paise, used in amount mode
	Percent float64      `json:"percent,omitempty"` // literal percent value, used in percent mode
}

// Apply resolves the discount against a gross subtotal. It returns the absolute
// discount in paise and the percent value to store, nil in amount mode.
func (d DiscountSpec) Apply(subtotal int64) (int64, *float64, error) {
	switch d.Mode {
	case DiscountModeAmount:
		return d.Amount, nil, nil
	case DiscountModePercent:
		pct := d.Percent
		amt := int64(math.Round(float64(subtotal) * pct / 100))

		return amt, &pct, nil
	default:
		return 0, nil, ErrInvalidDiscountMode
	}
}
