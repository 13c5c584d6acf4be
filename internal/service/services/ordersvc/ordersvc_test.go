package ordersvc

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crackersmart/storefront/internal/service/models/order"
	"github.com/crackersmart/storefront/internal/service/models/orderitem"
	"github.com/crackersmart/storefront/internal/service/models/product"
)

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	svc := newTestService(newFakeOrderRepo(), newFakeOrderItemRepo(), newFakeProductRepo(), &fakeAuditRepo{})

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{UserID: "u1"})
	assert.Error(t, err)
}

func TestPlaceOrderStockShortfall(t *testing.T) {
	productRepo := newFakeProductRepo(product.Product{ID: 1, Stock: 1})
	svc := newTestService(newFakeOrderRepo(), newFakeOrderItemRepo(), productRepo, &fakeAuditRepo{})

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID: "u1",
		Items: []orderitem.OrderItem{
			{ProductID: 1, Quantity: 2, Price: 100},
		},
	})

	var shortfall *StockShortfallError
	require.ErrorAs(t, err, &shortfall)
	assert.Empty(t, productRepo.stockWrites)
}

func TestPlaceOrderDecrementsStockAndComputesTotals(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	itemRepo := newFakeOrderItemRepo()
	productRepo := newFakeProductRepo(
		product.Product{ID: 1, Stock: 5},
		product.Product{ID: 2, Stock: 5},
	)
	auditRepo := &fakeAuditRepo{}
	svc := newTestService(orderRepo, itemRepo, productRepo, auditRepo)

	placed, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:        "u1",
		CustomerName:  "Asha",
		Email:         "asha@example.com",
		Phone:         "9999999999",
		Address:       "12 Main Rd",
		City:          "Sivakasi",
		State:         "TN",
		Pincode:       "626123",
		PaymentMethod: order.PaymentUPI,
		Items: []orderitem.OrderItem{
			{ProductID: 1, ProductName: "Sparkler", Quantity: 2, Price: 100},
			{ProductID: 2, ProductName: "Rocket", Quantity: 1, Price: 300},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, order.StatusPlaced, placed.Status)
	assert.EqualValues(t, 500, placed.TotalAmount)
	assert.Zero(t, placed.DiscountAmt)
	assert.True(t, strings.HasPrefix(placed.Code, "CS-"))
	require.Len(t, placed.Items, 2)

	assert.Equal(t, []stockWrite{{productID: 1, stock: 3}, {productID: 2, stock: 4}}, productRepo.stockWrites)

	// The creation itself is audited.
	require.Len(t, auditRepo.records, 1)
}

func TestUpdateStatusFollowsLifecycle(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	itemRepo := newFakeOrderItemRepo()
	svc := newTestService(orderRepo, itemRepo, newFakeProductRepo(), &fakeAuditRepo{})

	original := seedOrder(t, orderRepo, itemRepo, []orderitem.OrderItem{
		{ProductID: 1, Quantity: 1, Price: 100},
	})

	updated, err := svc.UpdateStatus(context.Background(), original.ID, order.StatusConfirmed, "ops")
	require.NoError(t, err)
	assert.Equal(t, order.StatusConfirmed, updated.Status)

	// Skipping straight to delivered is not allowed.
	_, err = svc.UpdateStatus(context.Background(), original.ID, order.StatusDelivered, "ops")
	assert.Error(t, err)

	// Cancelling from any non-terminal status is.
	cancelled, err := svc.UpdateStatus(context.Background(), original.ID, order.StatusCancelled, "ops")
	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, cancelled.Status)

	_, err = svc.UpdateStatus(context.Background(), original.ID, order.StatusConfirmed, "ops")
	assert.Error(t, err)
}

func TestNewOrderCodeFormat(t *testing.T) {
	code := newOrderCode()

	assert.True(t, strings.HasPrefix(code, "CS-"))
	assert.Len(t, code, 11)
	assert.Equal(t, strings.ToUpper(code), code)
	assert.NotEqual(t, code, newOrderCode())
}
