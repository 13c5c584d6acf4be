package order

import (
	"time"

	"github.com/crackersmart/storefront/internal/service/models/orderitem"
)

// Order represents one customer enquiry/purchase. There is no online payment
// capture; an order starts life as an enquiry and is settled offline.
type Order struct {
	ID            int64                 `json:"id"`
	Code          string                `json:"code"`
	UserID        string                `json:"userId"`
	CustomerName  string                `json:"customerName"`
	Email         string                `json:"email"`
	Phone         string                `json:"phone"`
	AltPhone      string                `json:"altPhone,omitempty"`
	Address       string                `json:"address"`
	City          string                `json:"city"`
	State         string                `json:"state"`
	Pincode       string                `json:"pincode"`
	Status        Status                `json:"status"`
	PaymentMethod PaymentMethod         `json:"paymentMethod"`
	ReferredBy    string                `json:"referredBy,omitempty"`
	TotalAmount   int64                 `json:"totalAmount"` // gross subtotal in paise, before discount
	DiscountAmt   int64                 `json:"discountAmt"`
	DiscountPct   *float64              `json:"discountPct,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
	Items         []orderitem.OrderItem `json:"items"`
}

// GrandTotal is the amount payable. It is derived on read; only the gross
// subtotal and the discount are stored.
func (o *Order) GrandTotal() int64 {
	return o.TotalAmount - o.DiscountAmt
}

// Subtotal recomputes the gross total from the line items rather than
// trusting whatever total the caller carried along.
func Subtotal(items []orderitem.OrderItem) int64 {
	var sum int64
	for _, item := range items {
		sum += int64(item.Quantity) * item.Price
	}

	return sum
}
