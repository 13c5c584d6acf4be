package orderitem

import (
	"time"
)

// OrderItem is one product-quantity-price line belonging to an order. Price
// is a snapshot of the unit price at the time the line was written, not a
// live reference to the product's current offer price.
type OrderItem struct {
	ID          int64     `json:"id"`
	OrderID     int64     `json:"orderId"`
	ProductID   int64     `json:"productId"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	Price       int64     `json:"price"`      // unit price snapshot, paise
	TotalPrice  int64     `json:"totalPrice"` // quantity × price, maintained by the writer
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// QuantityByProduct folds a line-item set into product id → total quantity,
// summing when a product appears on more than one line. A product absent
// from the set simply has no key, which diffing treats as quantity zero.
func QuantityByProduct(items []OrderItem) map[int64]int {
	quantities := make(map[int64]int, len(items))
	for _, item := range items {
		quantities[item.ProductID] += item.Quantity
	}

	return quantities
}
