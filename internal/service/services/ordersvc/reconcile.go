package ordersvc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/crackersmart/storefront/internal/service/models/order"
	"github.com/crackersmart/storefront/internal/service/models/orderitem"
)

// SaveOrderEdits converges the stored order, its line items and the touched
// products' stock to the admin-edited target state.
//
// The store offers no multi-statement transaction for this path, so the
// engine issues a fixed sequence of independent writes: validate stock,
// update the order row, delete-then-reinsert the line items, adjust stock,
// append the audit record. The order update and the line-item reinsert are
// the only hard-failure points; a reinsert failure triggers a one-shot
// compensating reinsert of the original items. Stock and audit writes are
// best-effort and only logged on failure.
func (s *OrderService) SaveOrderEdits(
	ctx context.Context,
	original order.Order,
	target order.Order,
	discount order.DiscountSpec,
	changedBy string,
) (*order.Order, error) {
	// Recompute money from the target items; caller-carried totals may be
	// stale.
	items := make([]orderitem.OrderItem, len(target.Items))
	for i, item := range target.Items {
		item.TotalPrice = int64(item.Quantity) * item.Price
		items[i] = item
	}
	subtotal := order.Subtotal(items)

	discountAmt, discountPct, err := discount.Apply(subtotal)
	if err != nil {
		return nil, err
	}

	updated := target
	updated.ID = original.ID
	updated.Code = original.Code
	updated.UserID = original.UserID
	updated.CreatedAt = original.CreatedAt
	updated.TotalAmount = subtotal
	updated.DiscountAmt = discountAmt
	updated.DiscountPct = discountPct
	updated.Items = items

	changes := diffOrders(original, updated)
	deltas := stockDeltas(original.Items, items)

	// Pre-flight: a delta that consumes more stock must be covered before
	// anything is written. Returning stock is never blocked.
	for _, productID := range sortedProductIDs(deltas) {
		delta := deltas[productID]
		if delta <= 0 {
			continue
		}

		p, err := s.productRepo.GetByID(ctx, productID)
		if err != nil {
			return nil, fmt.Errorf("failed to check stock for product %d: %w", productID, err)
		}
		if p.Stock < delta {
			return nil, &StockShortfallError{
				ProductID: productID,
				Available: p.Stock,
				Required:  delta,
			}
		}
	}

	if err := s.orderRepo.Update(ctx, updated); err != nil {
		return nil, &OrderUpdateFailedError{Err: err}
	}

	if err := s.orderItemRepo.DeleteByOrderID(ctx, updated.ID); err != nil {
		// Nothing was deleted, so there is nothing to roll back.
		return nil, &LineItemWriteFailedError{Err: err}
	}

	insertedItems, err := s.orderItemRepo.BulkInsert(ctx, withOrderID(items, updated.ID))
	if err != nil {
		// The old rows are gone; reinsert the original items verbatim.
		// One attempt only.
		if _, rbErr := s.orderItemRepo.BulkInsert(ctx, withOrderID(original.Items, updated.ID)); rbErr != nil {
			return nil, &LineItemWriteFailedError{
				Err:      err,
				Rollback: &RollbackFailedError{Err: rbErr},
			}
		}

		return nil, &LineItemWriteFailedError{Err: err}
	}

	s.adjustStock(ctx, deltas)
	s.recordAudit(ctx, updated.ID, changedBy, changes)

	if s.events != nil {
		if err := s.events.OrderEdited(ctx, updated, changes); err != nil {
			slog.Warn("Failed to publish order edited event", "order_id", updated.ID, "error", err)
		}
	}

	updated.Items = insertedItems
	updated.UpdatedAt = time.Now()

	return &updated, nil
}

// adjustStock applies the signed deltas product by product. Each write is
// independent; a failure leaves that product's stock drifted and is handled
// out of band, it never aborts the edit.
func (s *OrderService) adjustStock(ctx context.Context, deltas map[int64]int) {
	for _, productID := range sortedProductIDs(deltas) {
		delta := deltas[productID]

		p, err := s.productRepo.GetByID(ctx, productID)
		if err != nil {
			slog.Warn("Failed to read product for stock adjustment",
				"product_id", productID,
				"delta", delta,
				"error", err,
			)

			continue
		}

		newStock := p.Stock - delta
		if newStock < 0 {
			newStock = 0
		}

		if err := s.productRepo.UpdateStock(ctx, productID, newStock); err != nil {
			slog.Warn("Failed to adjust product stock",
				"product_id", productID,
				"delta", delta,
				"error", err,
			)
		}
	}
}

// withOrderID returns copies of items as fresh rows for the given order:
// ids cleared, order id set, totals recomputed.
func withOrderID(items []orderitem.OrderItem, orderID int64) []orderitem.OrderItem {
	result := make([]orderitem.OrderItem, len(items))
	for i, item := range items {
		item.ID = 0
		item.OrderID = orderID
		item.TotalPrice = int64(item.Quantity) * item.Price
		result[i] = item
	}

	return result
}
