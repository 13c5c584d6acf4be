package iauditrepo

import (
	"context"

	"github.com/crackersmart/storefront/internal/service/models/audit"
)

type IAuditRepository interface {
	// Insert appends one audit record. Audit history is append-only; there
	// are no update or delete operations.
	Insert(ctx context.Context, a audit.Audit) (*audit.Audit, error)
	QueryByOrderID(ctx context.Context, orderID int64) ([]audit.Audit, error)
}
