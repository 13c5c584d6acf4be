package audit

import "time"

// FieldChange records one scalar field that differed between the pre-edit
// and post-edit order.
type FieldChange struct {
	From any `json:"from"`
	To   any `json:"to"`
}

// ItemChange records a per-product quantity change across the whole edit.
// A product missing from one side is reported with quantity zero.
type ItemChange struct {
	ProductID int64 `json:"productId"`
	From      int   `json:"from"`
	To        int   `json:"to"`
}

// Changes is the structured diff stored with an audit record. Items is
// omitted entirely when no per-product quantity changed.
type Changes struct {
	Fields map[string]FieldChange `json:"fields,omitempty"`
	Items  []ItemChange           `json:"items,omitempty"`
}

// Empty reports whether the diff carries nothing at all.
func (c Changes) Empty() bool {
	return len(c.Fields) == 0 && len(c.Items) == 0
}

// Audit is one append-only entry in an order's edit history. Rows are never
// updated or deleted.
type Audit struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"orderId"`
	ChangedBy string    `json:"changedBy"`
	Changes   Changes   `json:"changes"`
	CreatedAt time.Time `json:"createdAt"`
}
