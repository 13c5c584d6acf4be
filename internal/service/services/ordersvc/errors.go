package ordersvc

import "fmt"

// StockShortfallError is returned by the pre-flight check when an order
// needs more of a product than is in stock. It is raised before any write.
type StockShortfallError struct {
	ProductID int64
	Available int
	Required  int
}

func (e *StockShortfallError) Error() string {
	return fmt.Sprintf(
		"insufficient stock for product %d: available %d, required %d",
		e.ProductID, e.Available, e.Required,
	)
}

// OrderUpdateFailedError means the order row update failed; nothing after it
// was attempted.
type OrderUpdateFailedError struct {
	Err error
}

func (e *OrderUpdateFailedError) Error() string {
	return fmt.Sprintf("failed to update order: %v", e.Err)
}

func (e *OrderUpdateFailedError) Unwrap() error {
	return e.Err
}

// RollbackFailedError means the compensating reinsert of the original line
// items also failed. The order's line items are gone until someone restores
// them by hand.
type RollbackFailedError struct {
	Err error
}

func (e *RollbackFailedError) Error() string {
	return fmt.Sprintf("rollback reinsert of original line items failed: %v", e.Err)
}

func (e *RollbackFailedError) Unwrap() error {
	return e.Err
}

// LineItemWriteFailedError means writing the edited line items failed after
// the old ones were already deleted. Rollback is non-nil when the one-shot
// compensating reinsert failed too; that case needs manual intervention and
// must never be presented as retryable.
type LineItemWriteFailedError struct {
	Err      error
	Rollback *RollbackFailedError
}

func (e *LineItemWriteFailedError) Error() string {
	if e.Rollback != nil {
		return fmt.Sprintf(
			"failed to write order line items and %v: contact support, manual intervention required (cause: %v)",
			e.Rollback, e.Err,
		)
	}

	return fmt.Sprintf("failed to write order line items, original items were restored: %v", e.Err)
}

func (e *LineItemWriteFailedError) Unwrap() error {
	return e.Err
}
