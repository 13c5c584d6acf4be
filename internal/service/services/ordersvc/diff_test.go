package ordersvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crackersmart/storefront/internal/service/models/audit"
	"github.com/crackersmart/storefront/internal/service/models/order"
	"github.com/crackersmart/storefront/internal/service/models/orderitem"
)

func TestDiffOrdersRecordsOnlyChangedFields(t *testing.T) {
	pct := 5.0
	original := order.Order{
		CustomerName:  "Asha",
		Email:         "asha@example.com",
		Phone:         "9999999999",
		City:          "Sivakasi",
		Status:        order.StatusPlaced,
		PaymentMethod: order.PaymentCashOnDelivery,
		DiscountAmt:   0,
		DiscountPct:   nil,
	}

	updated := original
	updated.CustomerName = "Asha R"
	updated.Status = order.StatusConfirmed
	updated.DiscountAmt = 500
	updated.DiscountPct = &pct

	changes := diffOrders(original, updated)

	require.Len(t, changes.Fields, 4)
	assert.Equal(t, audit.FieldChange{From: "Asha", To: "Asha R"}, changes.Fields["customer_name"])
	assert.Equal(t, audit.FieldChange{From: "placed", To: "confirmed"}, changes.Fields["status"])
	assert.Equal(t, audit.FieldChange{From: int64(0), To: int64(500)}, changes.Fields["discount_amt"])
	assert.Equal(t, audit.FieldChange{From: nil, To: 5.0}, changes.Fields["discount_pct"])

	_, touched := changes.Fields["email"]
	assert.False(t, touched)
}

func TestDiffOrdersIdenticalIsEmpty(t *testing.T) {
	o := order.Order{
		CustomerName: "Asha",
		Status:       order.StatusPlaced,
		Items: []orderitem.OrderItem{
			{ProductID: 1, Quantity: 2},
		},
	}

	changes := diffOrders(o, o)
	assert.True(t, changes.Empty())
}

func TestDiffItemsAbsentMeansZero(t *testing.T) {
	original := []orderitem.OrderItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}
	target := []orderitem.OrderItem{
		{ProductID: 2, Quantity: 1},
		{ProductID: 3, Quantity: 4},
	}

	items := diffItems(original, target)

	require.Len(t, items, 2)
	assert.Equal(t, audit.ItemChange{ProductID: 1, From: 2, To: 0}, items[0])
	assert.Equal(t, audit.ItemChange{ProductID: 3, From: 0, To: 4}, items[1])
}

func TestDiffItemsDuplicateLinesAreFolded(t *testing.T) {
	original := []orderitem.OrderItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 1, Quantity: 3},
	}
	target := []orderitem.OrderItem{
		{ProductID: 1, Quantity: 5},
	}

	assert.Nil(t, diffItems(original, target))
}

func TestStockDeltas(t *testing.T) {
	original := []orderitem.OrderItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}
	target := []orderitem.OrderItem{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 1},
		{ProductID: 3, Quantity: 3},
	}

	deltas := stockDeltas(original, target)

	assert.Equal(t, map[int64]int{1: -1, 3: 3}, deltas)
}
