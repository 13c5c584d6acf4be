package product

import "time"

// Product is a catalog entity. Stock is a mutable inventory counter and is
// never stored negative; adjustments clamp at zero.
type Product struct {
	ID          int64     `json:"id"`
	CategoryID  int64     `json:"categoryId"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Price       int64     `json:"price"`      // MRP, paise
	OfferPrice  int64     `json:"offerPrice"` // current sale price, paise
	Stock       int       `json:"stock"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
