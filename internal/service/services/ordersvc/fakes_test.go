package ordersvc

import (
	"context"
	"errors"
	"sort"

	"github.com/crackersmart/storefront/internal/dal/interfaces/iorderitemrepo"
	"github.com/crackersmart/storefront/internal/dal/interfaces/iorderrepo"
	"github.com/crackersmart/storefront/internal/dal/interfaces/iproductrepo"
	"github.com/crackersmart/storefront/internal/service/models/audit"
	"github.com/crackersmart/storefront/internal/service/models/order"
	"github.com/crackersmart/storefront/internal/service/models/orderitem"
	"github.com/crackersmart/storefront/internal/service/models/product"
)

var errNotFound = errors.New("not found")

type fakeOrderRepo struct {
	orders    map[int64]order.Order
	updateErr error
	updates   int
	nextID    int64
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[int64]order.Order{}, nextID: 1}
}

func (r *fakeOrderRepo) Insert(_ context.Context, o order.Order) (*order.Order, error) {
	o.ID = r.nextID
	r.nextID++
	r.orders[o.ID] = o

	return &o, nil
}

func (r *fakeOrderRepo) Update(_ context.Context, o order.Order) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.orders[o.ID]; !ok {
		return errNotFound
	}
	r.orders[o.ID] = o
	r.updates++

	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id int64) (*order.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, errNotFound
	}

	return &o, nil
}

func (r *fakeOrderRepo) Query(_ context.Context, _ *order.QueryOrdersModel) ([]order.Order, error) {
	result := make([]order.Order, 0, len(r.orders))
	for _, o := range r.orders {
		result = append(result, o)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	return result, nil
}

type fakeOrderItemRepo struct {
	byOrder    map[int64][]orderitem.OrderItem
	deleteErr  error
	insertErrs []error // consumed one per BulkInsert call
	nextID     int64
}

func newFakeOrderItemRepo() *fakeOrderItemRepo {
	return &fakeOrderItemRepo{byOrder: map[int64][]orderitem.OrderItem{}, nextID: 1}
}

func (r *fakeOrderItemRepo) BulkInsert(_ context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error) {
	if len(r.insertErrs) > 0 {
		err := r.insertErrs[0]
		r.insertErrs = r.insertErrs[1:]
		if err != nil {
			return nil, err
		}
	}

	inserted := make([]orderitem.OrderItem, len(items))
	for i, item := range items {
		item.ID = r.nextID
		r.nextID++
		inserted[i] = item
		r.byOrder[item.OrderID] = append(r.byOrder[item.OrderID], item)
	}

	return inserted, nil
}

func (r *fakeOrderItemRepo) DeleteByOrderID(_ context.Context, orderID int64) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.byOrder, orderID)

	return nil
}

func (r *fakeOrderItemRepo) Query(_ context.Context, filter *orderitem.QueryOrderItemsModel) ([]orderitem.OrderItem, error) {
	var result []orderitem.OrderItem
	for _, orderID := range filter.OrderIds {
		result = append(result, r.byOrder[orderID]...)
	}

	return result, nil
}

type stockWrite struct {
	productID int64
	stock     int
}

type fakeProductRepo struct {
	products    map[int64]product.Product
	getErr      error
	stockErr    error
	stockWrites []stockWrite

	// afterGet runs after each GetByID, letting tests race concurrent stock
	// consumption against an in-flight edit.
	afterGet func(id int64)
}

func newFakeProductRepo(products ...product.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[int64]product.Product{}}
	for _, p := range products {
		r.products[p.ID] = p
	}

	return r
}

func (r *fakeProductRepo) Insert(_ context.Context, p product.Product) (*product.Product, error) {
	r.products[p.ID] = p

	return &p, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p product.Product) error {
	r.products[p.ID] = p

	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id int64) (*product.Product, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	p, ok := r.products[id]
	if !ok {
		return nil, errNotFound
	}
	if r.afterGet != nil {
		r.afterGet(id)
	}

	return &p, nil
}

func (r *fakeProductRepo) Query(_ context.Context, _ *product.QueryProductsModel) ([]product.Product, error) {
	result := make([]product.Product, 0, len(r.products))
	for _, p := range r.products {
		result = append(result, p)
	}

	return result, nil
}

func (r *fakeProductRepo) UpdateStock(_ context.Context, id int64, stock int) error {
	if r.stockErr != nil {
		return r.stockErr
	}
	p, ok := r.products[id]
	if !ok {
		return errNotFound
	}
	p.Stock = stock
	r.products[id] = p
	r.stockWrites = append(r.stockWrites, stockWrite{productID: id, stock: stock})

	return nil
}

type fakeAuditRepo struct {
	records   []audit.Audit
	insertErr error
}

func (r *fakeAuditRepo) Insert(_ context.Context, a audit.Audit) (*audit.Audit, error) {
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	a.ID = int64(len(r.records) + 1)
	r.records = append(r.records, a)

	return &a, nil
}

func (r *fakeAuditRepo) QueryByOrderID(_ context.Context, orderID int64) ([]audit.Audit, error) {
	var result []audit.Audit
	for _, a := range r.records {
		if a.OrderID == orderID {
			result = append(result, a)
		}
	}

	return result, nil
}

// fakeUOW runs the transactional creation path directly against the fakes.
type fakeUOW struct {
	orderRepo     *fakeOrderRepo
	orderItemRepo *fakeOrderItemRepo
	productRepo   *fakeProductRepo
	beginErr      error
	commits       int
}

func (u *fakeUOW) Begin(_ context.Context) error    { return u.beginErr }
func (u *fakeUOW) Commit(_ context.Context) error   { u.commits++; return nil }
func (u *fakeUOW) Rollback(_ context.Context) error { return nil }

func (u *fakeUOW) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *fakeUOW) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return u.orderItemRepo
}

func (u *fakeUOW) ProductRepository() iproductrepo.IProductRepository {
	return u.productRepo
}

func newTestService(
	orderRepo *fakeOrderRepo,
	orderItemRepo *fakeOrderItemRepo,
	productRepo *fakeProductRepo,
	auditRepo *fakeAuditRepo,
) *OrderService {
	return MustNewOrderService(
		WithRepositories(orderRepo, orderItemRepo, productRepo, auditRepo),
		WithUnitOfWorkFactory(func() unitOfWork {
			return &fakeUOW{
				orderRepo:     orderRepo,
				orderItemRepo: orderItemRepo,
				productRepo:   productRepo,
			}
		}),
	)
}
