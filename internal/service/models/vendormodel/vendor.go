package vendor

import (
	"errors"
	"time"
)

// Vendor is a supplier we purchase stock from.
type Vendor struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	GSTIN     string    `json:"gstin,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TransactionKind distinguishes ledger movements. Purchases increase what we
// owe the vendor, payments decrease it.
type TransactionKind string

const (
	KindPurchase TransactionKind = "purchase"
	KindPayment  TransactionKind = "payment"
)

var ErrInvalidTransactionKind = errors.New("invalid vendor transaction kind")

func (k TransactionKind) String() string {
	return string(k)
}

func ParseTransactionKind(s string) (TransactionKind, error) {
	switch TransactionKind(s) {
	case KindPurchase, KindPayment:
		return TransactionKind(s), nil
	default:
		return "", ErrInvalidTransactionKind
	}
}

// Transaction is one dated movement on a vendor's ledger.
type Transaction struct {
	ID         int64           `json:"id"`
	VendorID   int64           `json:"vendorId"`
	Kind       TransactionKind `json:"kind"`
	Amount     int64           `json:"amount"` // paise, always positive
	OccurredAt time.Time       `json:"occurredAt"`
	Note       string          `json:"note,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// LedgerEntry is a transaction annotated with the running balance after it
// was applied.
type LedgerEntry struct {
	Transaction
	Balance int64 `json:"balance"` // paise owed to the vendor after this entry
}

// Summary aggregates a vendor's ledger.
type Summary struct {
	VendorID       int64 `json:"vendorId"`
	TotalPurchases int64 `json:"totalPurchases"`
	TotalPayments  int64 `json:"totalPayments"`
	Outstanding    int64 `json:"outstanding"`
}
