package ordersvc

import (
	"sort"

	"github.com/crackersmart/storefront/internal/service/models/audit"
	"github.com/crackersmart/storefront/internal/service/models/order"
	"github.com/crackersmart/storefront/internal/service/models/orderitem"
)

// diffOrders builds the audit diff between the pre-edit and about-to-be-
// written order. Scalar fields are compared over a fixed allow-list; only
// fields that actually differ are recorded. Line items are folded to
// per-product quantities first, so a product absent from one side diffs the
// same as quantity zero.
func diffOrders(original, updated order.Order) audit.Changes {
	fields := make(map[string]audit.FieldChange)

	record := func(name string, from, to any) {
		if from != to {
			fields[name] = audit.FieldChange{From: from, To: to}
		}
	}

	record("customer_name", original.CustomerName, updated.CustomerName)
	record("email", original.Email, updated.Email)
	record("phone", original.Phone, updated.Phone)
	record("alt_phone", original.AltPhone, updated.AltPhone)
	record("address", original.Address, updated.Address)
	record("city", original.City, updated.City)
	record("state", original.State, updated.State)
	record("pincode", original.Pincode, updated.Pincode)
	record("status", original.Status.String(), updated.Status.String())
	record("payment_method", original.PaymentMethod.String(), updated.PaymentMethod.String())
	record("referred_by", original.ReferredBy, updated.ReferredBy)
	record("discount_amt", original.DiscountAmt, updated.DiscountAmt)
	record("discount_pct", pctValue(original.DiscountPct), pctValue(updated.DiscountPct))

	changes := audit.Changes{Items: diffItems(original.Items, updated.Items)}
	if len(fields) > 0 {
		changes.Fields = fields
	}

	return changes
}

func pctValue(p *float64) any {
	if p == nil {
		return nil
	}

	return *p
}

// diffItems reports per-product quantity changes across the whole edit,
// ordered by product id. Returns nil when nothing changed so the items key
// is omitted from the serialized diff.
func diffItems(original, target []orderitem.OrderItem) []audit.ItemChange {
	before := orderitem.QuantityByProduct(original)
	after := orderitem.QuantityByProduct(target)

	var result []audit.ItemChange
	for _, productID := range unionProductIDs(before, after) {
		if before[productID] == after[productID] {
			continue
		}
		result = append(result, audit.ItemChange{
			ProductID: productID,
			From:      before[productID],
			To:        after[productID],
		})
	}

	return result
}

// stockDeltas computes product id → (target quantity − original quantity)
// over the union of products touched by an edit. A positive delta means the
// order now consumes more stock; a negative delta returns stock.
func stockDeltas(original, target []orderitem.OrderItem) map[int64]int {
	before := orderitem.QuantityByProduct(original)
	after := orderitem.QuantityByProduct(target)

	deltas := make(map[int64]int)
	for _, productID := range unionProductIDs(before, after) {
		if delta := after[productID] - before[productID]; delta != 0 {
			deltas[productID] = delta
		}
	}

	return deltas
}

func unionProductIDs(before, after map[int64]int) []int64 {
	seen := make(map[int64]struct{}, len(before)+len(after))
	for id := range before {
		seen[id] = struct{}{}
	}
	for id := range after {
		seen[id] = struct{}{}
	}

	ids := make([]int64, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

// sortedProductIDs returns map keys in ascending order so multi-product
// operations touch products deterministically.
func sortedProductIDs(m map[int64]int) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}
