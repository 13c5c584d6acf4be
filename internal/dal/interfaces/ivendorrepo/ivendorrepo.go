package ivendorrepo

import (
	"context"

	"github.com/crackersmart/storefront/internal/service/models/vendormodel"
)

type IVendorRepository interface {
	Insert(ctx context.Context, v vendor.Vendor) (*vendor.Vendor, error)
	GetByID(ctx context.Context, id int64) (*vendor.Vendor, error)
	List(ctx context.Context) ([]vendor.Vendor, error)

	InsertTransaction(ctx context.Context, t vendor.Transaction) (*vendor.Transaction, error)

	// QueryTransactions returns a vendor's transactions ordered by
	// occurrence date, oldest first, which is the order the ledger reducer
	// folds them in.
	QueryTransactions(ctx context.Context, vendorID int64) ([]vendor.Transaction, error)
}
