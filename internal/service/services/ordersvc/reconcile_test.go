package ordersvc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crackersmart/storefront/internal/service/models/order"
	"github.com/crackersmart/storefront/internal/service/models/orderitem"
	"github.com/crackersmart/storefront/internal/service/models/product"
)

func seedOrder(t *testing.T, orderRepo *fakeOrderRepo, itemRepo *fakeOrderItemRepo, items []orderitem.OrderItem) order.Order {
	t.Helper()

	o := order.Order{
		Code:          "CS-TEST0001",
		UserID:        "u1",
		CustomerName:  "Asha",
		Email:         "asha@example.com",
		Phone:         "9999999999",
		Address:       "12 Main Rd",
		City:          "Sivakasi",
		State:         "TN",
		Pincode:       "626123",
		Status:        order.StatusPlaced,
		PaymentMethod: order.PaymentCashOnDelivery,
		TotalAmount:   order.Subtotal(items),
	}

	inserted, err := orderRepo.Insert(context.Background(), o)
	require.NoError(t, err)

	for i := range items {
		items[i].OrderID = inserted.ID
	}
	saved, err := itemRepo.BulkInsert(context.Background(), items)
	require.NoError(t, err)
	inserted.Items = saved

	return *inserted
}

func TestSaveOrderEditsRecomputesTotals(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	itemRepo := newFakeOrderItemRepo()
	productRepo := newFakeProductRepo(
		product.Product{ID: 1, Name: "Sparkler", Stock: 10},
		product.Product{ID: 2, Name: "Flower Pot", Stock: 10},
	)
	auditRepo := &fakeAuditRepo{}
	svc := newTestService(orderRepo, itemRepo, productRepo, auditRepo)

	original := seedOrder(t, orderRepo, itemRepo, []orderitem.OrderItem{
		{ProductID: 1, ProductName: "Sparkler", Quantity: 2, Price: 100, TotalPrice: 200},
	})

	target := original
	target.Items = []orderitem.OrderItem{
		{ProductID: 1, ProductName: "Sparkler", Quantity: 1, Price: 100},
		{ProductID: 2, ProductName: "Flower Pot", Quantity: 3, Price: 50},
	}

	updated, err := svc.SaveOrderEdits(context.Background(), original, target,
		order.DiscountSpec{Mode: order.DiscountModeAmount, Amount: 20}, "ops")
	require.NoError(t, err)

	assert.EqualValues(t, 250, updated.TotalAmount)
	assert.EqualValues(t, 20, updated.DiscountAmt)
	assert.Nil(t, updated.DiscountPct)
	assert.EqualValues(t, 230, updated.GrandTotal())

	require.Len(t, updated.Items, 2)
	assert.EqualValues(t, 100, updated.Items[0].TotalPrice)
	assert.EqualValues(t, 150, updated.Items[1].TotalPrice)

	// Product 1 released one unit, product 2 consumed three.
	assert.Equal(t, []stockWrite{{productID: 1, stock: 11}, {productID: 2, stock: 7}}, productRepo.stockWrites)
}

func TestSaveOrderEditsPercentDiscount(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	itemRepo := newFakeOrderItemRepo()
	productRepo := newFakeProductRepo(product.Product{ID: 1, Stock: 10})
	svc := newTestService(orderRepo, itemRepo, productRepo, &fakeAuditRepo{})

	original := seedOrder(t, orderRepo, itemRepo, []orderitem.OrderItem{
		{ProductID: 1, Quantity: 2, Price: 5000, TotalPrice: 10000},
	})

	updated, err := svc.SaveOrderEdits(context.Background(), original, original,
		order.DiscountSpec{Mode: order.DiscountModePercent, Percent: 10}, "ops")
	require.NoError(t, err)

	assert.EqualValues(t, 10000, updated.TotalAmount)
	assert.EqualValues(t, 1000, updated.DiscountAmt)
	require.NotNil(t, updated.DiscountPct)
	assert.EqualValues(t, 10, *updated.DiscountPct)
}

func TestSaveOrderEditsInvalidDiscountMode(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	itemRepo := newFakeOrderItemRepo()
	svc := newTestService(orderRepo, itemRepo, newFakeProductRepo(), &fakeAuditRepo{})

	original := seedOrder(t, orderRepo, itemRepo, []orderitem.OrderItem{
		{ProductID: 1, Quantity: 1, Price: 100},
	})

	_, err := svc.SaveOrderEdits(context.Background(), original, original,
		order.DiscountSpec{Mode: "half-off"}, "ops")
	assert.ErrorIs(t, err, order.ErrInvalidDiscountMode)
}

func TestSaveOrderEditsStockShortfall(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	itemRepo := newFakeOrderItemRepo()
	productRepo := newFakeProductRepo(product.Product{ID: 2, Stock: 2})
	auditRepo := &fakeAuditRepo{}
	svc := newTestService(orderRepo, itemRepo, productRepo, auditRepo)

	original := seedOrder(t, orderRepo, itemRepo, []orderitem.OrderItem{
		{ProductID: 2, Quantity: 1, Price: 100, TotalPrice: 100},
	})

	target := original
	target.Items = []orderitem.OrderItem{
		{ProductID: 2, Quantity: 6, Price: 100},
	}

	_, err := svc.SaveOrderEdits(context.Background(), original, target,
		order.DiscountSpec{Mode: order.DiscountModeAmount}, "ops")

	var shortfall *StockShortfallError
	require.ErrorAs(t, err, &shortfall)
	assert.EqualValues(t, 2, shortfall.ProductID)
	assert.Equal(t, 2, shortfall.Available)
	assert.Equal(t, 5, shortfall.Required)

	// Rejected before anything was written.
	assert.Zero(t, orderRepo.updates)
	assert.Len(t, itemRepo.byOrder[original.ID], 1)
	assert.Empty(t, productRepo.stockWrites)
	assert.Empty(t, auditRepo.records)
}

func TestSaveOrderEditsReturningStockIsNeverBlocked(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	itemRepo := newFakeOrderItemRepo()
	// Stock already zero; the edit only lowers the ordered quantity.
	productRepo := newFakeProductRepo(product.Product{ID: 1, Stock: 0})
	svc := newTestService(orderRepo, itemRepo, productRepo, &fakeAuditRepo{})

	original := seedOrder(t, orderRepo, itemRepo, []orderitem.OrderItem{
		{ProductID: 1, Quantity: 5, Price: 100, TotalPrice: 500},
	})

	target := original
	target.Items = []orderitem.OrderItem{
		{ProductID: 1, Quantity: 2, Price: 100},
	}

	_, err := svc.SaveOrderEdits(context.Background(), original, target,
		order.DiscountSpec{Mode: order.DiscountModeAmount}, "ops")
	require.NoError(t, err)

	assert.Equal(t, []stockWrite{{productID: 1, stock: 3}}, productRepo.stockWrites)
}

func TestSaveOrderEditsRemovedProductReturnsAllStock(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	itemRepo := newFakeOrderItemRepo()
	productRepo := newFakeProductRepo(
		product.Product{ID: 1, Stock: 4},
		product.Product{ID: 2, Stock: 9},
	)
	svc := newTestService(orderRepo, itemRepo, productRepo, &fakeAuditRepo{})

	original := seedOrder(t, orderRepo, itemRepo, []orderitem.OrderItem{
		{ProductID: 1, Quantity: 3, Price: 100, TotalPrice: 300},
		{ProductID: 2, Quantity: 1, Price: 50, TotalPrice: 50},
	})

	// Product 1 dropped entirely: same as editing its quantity to zero.
	target := original
	target.Items = []orderitem.OrderItem{
		{ProductID: 2, Quantity: 1, Price: 50},
	}

	_, err := svc.SaveOrderEdits(context.Background(), original, target,
		order.DiscountSpec{Mode: order.DiscountModeAmount}, "ops")
	require.NoError(t, err)

	assert.Equal(t, []stockWrite{{productID: 1, stock: 7}}, productRepo.stockWrites)
}

func TestSaveOrderEditsClampsStockAtZero(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	itemRepo := newFakeOrderItemRepo()
	productRepo := newFakeProductRepo(product.Product{ID: 1, Stock: 3})
	svc := newTestService(orderRepo, itemRepo, productRepo, &fakeAuditRepo{})

	original := seedOrder(t, orderRepo, itemRepo, []orderitem.OrderItem{
		{ProductID: 1, Quantity: 1, Price: 100, TotalPrice: 100},
	})

	target := original
	target.Items = []orderitem.OrderItem{
		{ProductID: 1, Quantity: 3, Price: 100},
	}

	// Another order consumes the stock after the pre-flight check read it.
	productRepo.afterGet = func(id int64) {
		productRepo.products[1] = product.Product{ID: 1, Stock: 1}
		productRepo.afterGet = nil
	}

	_, err := svc.SaveOrderEdits(context.Background(), original, target,
		order.DiscountSpec{Mode: order.DiscountModeAmount}, "ops")
	require.NoError(t, err)

	assert.Equal(t, []stockWrite{{productID: 1, stock: 0}}, productRepo.stockWrites)
}

func TestSaveOrderEditsOrderUpdateFailure(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	itemRepo := newFakeOrderItemRepo()
	productRepo := newFakeProductRepo(product.Product{ID: 1, Stock: 10})
	svc := newTestService(orderRepo, itemRepo, productRepo, &fakeAuditRepo{})

	original := seedOrder(t, orderRepo, itemRepo, []orderitem.OrderItem{
		{ProductID: 1, Quantity: 1, Price: 100, TotalPrice: 100},
	})
	orderRepo.updateErr = errors.New("connection reset")

	_, err := svc.SaveOrderEdits(context.Background(), original, original,
		order.DiscountSpec{Mode: order.DiscountModeAmount}, "ops")

	var updateErr *OrderUpdateFailedError
	require.ErrorAs(t, err, &updateErr)

	// Line items were never touched.
	assert.Len(t, itemRepo.byOrder[original.ID], 1)
	assert.Empty(t, productRepo.stockWrites)
}

func TestSaveOrderEditsReinsertFailureRestoresOriginals(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	itemRepo := newFakeOrderItemRepo()
	productRepo := newFakeProductRepo(product.Product{ID: 1, Stock: 10})
	svc := newTestService(orderRepo, itemRepo, productRepo, &fakeAuditRepo{})

	original := seedOrder(t, orderRepo, itemRepo, []orderitem.OrderItem{
		{ProductID: 1, Quantity: 2, Price: 100, TotalPrice: 200},
	})

	// First BulkInsert (the edited items) fails, the compensating reinsert
	// succeeds.
	itemRepo.insertErrs = []error{errors.New("disk full"), nil}

	target := original
	target.Items = []orderitem.OrderItem{
		{ProductID: 1, Quantity: 1, Price: 100},
	}

	_, err := svc.SaveOrderEdits(context.Background(), original, target,
		order.DiscountSpec{Mode: order.DiscountModeAmount}, "ops")

	var itemErr *LineItemWriteFailedError
	require.ErrorAs(t, err, &itemErr)
	assert.Nil(t, itemErr.Rollback)

	restored := itemRepo.byOrder[original.ID]
	require.Len(t, restored, 1)
	assert.Equal(t, 2, restored[0].Quantity)
	assert.Empty(t, productRepo.stockWrites)
}

func TestSaveOrderEditsDualFailureRequiresManualIntervention(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	itemRepo := newFakeOrderItemRepo()
	productRepo := newFakeProductRepo(product.Product{ID: 1, Stock: 10})
	svc := newTestService(orderRepo, itemRepo, productRepo, &fakeAuditRepo{})

	original := seedOrder(t, orderRepo, itemRepo, []orderitem.OrderItem{
		{ProductID: 1, Quantity: 2, Price: 100, TotalPrice: 200},
	})

	itemRepo.insertErrs = []error{errors.New("disk full"), errors.New("still full")}

	target := original
	target.Items = []orderitem.OrderItem{
		{ProductID: 1, Quantity: 1, Price: 100},
	}

	_, err := svc.SaveOrderEdits(context.Background(), original, target,
		order.DiscountSpec{Mode: order.DiscountModeAmount}, "ops")

	var itemErr *LineItemWriteFailedError
	require.ErrorAs(t, err, &itemErr)
	require.NotNil(t, itemErr.Rollback)
	assert.Contains(t, err.Error(), "manual intervention required")
}

func TestSaveOrderEditsStockWriteFailureDoesNotAbort(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	itemRepo := newFakeOrderItemRepo()
	productRepo := newFakeProductRepo(product.Product{ID: 1, Stock: 10})
	auditRepo := &fakeAuditRepo{}
	svc := newTestService(orderRepo, itemRepo, productRepo, auditRepo)

	original := seedOrder(t, orderRepo, itemRepo, []orderitem.OrderItem{
		{ProductID: 1, Quantity: 1, Price: 100, TotalPrice: 100},
	})
	productRepo.stockErr = errors.New("timeout")

	target := original
	target.Items = []orderitem.OrderItem{
		{ProductID: 1, Quantity: 2, Price: 100},
	}

	updated, err := svc.SaveOrderEdits(context.Background(), original, target,
		order.DiscountSpec{Mode: order.DiscountModeAmount}, "ops")
	require.NoError(t, err)
	assert.EqualValues(t, 200, updated.TotalAmount)

	// The edit still succeeded and the audit row was written.
	require.Len(t, auditRepo.records, 1)
}

func TestSaveOrderEditsWritesAudit(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	itemRepo := newFakeOrderItemRepo()
	productRepo := newFakeProductRepo(product.Product{ID: 1, Stock: 10})
	auditRepo := &fakeAuditRepo{}
	svc := newTestService(orderRepo, itemRepo, productRepo, auditRepo)

	original := seedOrder(t, orderRepo, itemRepo, []orderitem.OrderItem{
		{ProductID: 1, Quantity: 1, Price: 100, TotalPrice: 100},
	})

	target := original
	target.CustomerName = "Asha R"
	target.Items = []orderitem.OrderItem{
		{ProductID: 1, Quantity: 2, Price: 100},
	}

	_, err := svc.SaveOrderEdits(context.Background(), original, target,
		order.DiscountSpec{Mode: order.DiscountModeAmount}, "priya")
	require.NoError(t, err)

	require.Len(t, auditRepo.records, 1)
	rec := auditRepo.records[0]
	assert.Equal(t, "priya", rec.ChangedBy)
	assert.Equal(t, original.ID, rec.OrderID)

	change, ok := rec.Changes.Fields["customer_name"]
	require.True(t, ok)
	assert.Equal(t, "Asha", change.From)
	assert.Equal(t, "Asha R", change.To)

	require.Len(t, rec.Changes.Items, 1)
	assert.Equal(t, 1, rec.Changes.Items[0].From)
	assert.Equal(t, 2, rec.Changes.Items[0].To)
}

func TestSaveOrderEditsNoChangesNoAudit(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	itemRepo := newFakeOrderItemRepo()
	productRepo := newFakeProductRepo(product.Product{ID: 1, Stock: 10})
	auditRepo := &fakeAuditRepo{}
	svc := newTestService(orderRepo, itemRepo, productRepo, auditRepo)

	original := seedOrder(t, orderRepo, itemRepo, []orderitem.OrderItem{
		{ProductID: 1, Quantity: 1, Price: 100, TotalPrice: 100},
	})

	_, err := svc.SaveOrderEdits(context.Background(), original, original,
		order.DiscountSpec{Mode: order.DiscountModeAmount}, "ops")
	require.NoError(t, err)

	assert.Empty(t, auditRepo.records)
	assert.Empty(t, productRepo.stockWrites)
}
