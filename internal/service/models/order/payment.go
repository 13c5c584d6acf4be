package order

import "errors"

// PaymentMethod is how the customer intends to settle. Online capture is not
// supported, so every method is an offline arrangement.
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cod"
	PaymentUPI            PaymentMethod = "upi"
	PaymentBankTransfer   PaymentMethod = "bank_transfer"
)

var ErrInvalidPaymentMethod = errors.New("invalid payment method")

func (m PaymentMethod) String() string {
	return string(m)
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentCashOnDelivery, PaymentUPI, PaymentBankTransfer:
		return PaymentMethod(s), nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}
