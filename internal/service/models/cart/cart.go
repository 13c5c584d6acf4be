package cart

import (
	"github.com/crackersmart/storefront/internal/service/models/orderitem"
	"github.com/crackersmart/storefront/internal/service/models/product"
)

// Item is one product line in a cart or quotation.
type Item struct {
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	OfferPrice  int64  `json:"offerPrice"` // paise
	Quantity    int    `json:"quantity"`
}

// Cart is the in-memory cart/quotation aggregate. Totals are derived, never
// stored independently of the items.
type Cart struct {
	Items         []Item `json:"items"`
	TotalQuantity int    `json:"totalQuantity"`
	TotalAmount   int64  `json:"totalAmount"` // paise
}

// Add merges a quantity delta for a product into the cart. A resulting
// quantity of zero or less removes the line entirely; the cart never holds a
// non-positive quantity.
func (c *Cart) Add(p product.Product, delta int) {
	for i := range c.Items {
		if c.Items[i].ProductID != p.ID {
			continue
		}

		c.Items[i].Quantity += delta
		if c.Items[i].Quantity <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		}
		c.recompute()

		return
	}

	if delta <= 0 {
		return
	}

	c.Items = append(c.Items, Item{
		ProductID:   p.ID,
		ProductName: p.Name,
		OfferPrice:  p.OfferPrice,
		Quantity:    delta,
	})
	c.recompute()
}

// SetQuantity pins a product's quantity, removing the line when qty <= 0.
func (c *Cart) SetQuantity(productID int64, qty int) {
	for i := range c.Items {
		if c.Items[i].ProductID != productID {
			continue
		}

		if qty <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		} else {
			c.Items[i].Quantity = qty
		}
		c.recompute()

		return
	}
}

// Remove drops a product from the cart.
func (c *Cart) Remove(productID int64) {
	c.SetQuantity(productID, 0)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
	c.recompute()
}

// LineItems converts the cart into order line items, snapshotting the offer
// price as the unit price.
func (c *Cart) LineItems() []orderitem.OrderItem {
	items := make([]orderitem.OrderItem, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, orderitem.OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.OfferPrice,
			TotalPrice:  int64(it.Quantity) * it.OfferPrice,
		})
	}

	return items
}

func (c *Cart) recompute() {
	c.TotalQuantity = 0
	c.TotalAmount = 0
	for _, it := range c.Items {
		c.TotalQuantity += it.Quantity
		c.TotalAmount += int64(it.Quantity) * it.OfferPrice
	}
}
