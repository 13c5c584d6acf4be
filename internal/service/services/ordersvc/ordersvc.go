package ordersvc

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/crackersmart/storefront/internal/dal/interfaces/iauditrepo"
	"github.com/crackersmart/storefront/internal/dal/interfaces/iorderitemrepo"
	"github.com/crackersmart/storefront/internal/dal/interfaces/iorderrepo"
	"github.com/crackersmart/storefront/internal/dal/interfaces/iproductrepo"
	"github.com/crackersmart/storefront/internal/dal/postgres"
	auditrepo "github.com/crackersmart/storefront/internal/dal/repositories/audit/postgres"
	orderrepo "github.com/crackersmart/storefront/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/crackersmart/storefront/internal/dal/repositories/orderitem/postgres"
	productrepo "github.com/crackersmart/storefront/internal/dal/repositories/product/postgres"
	"github.com/crackersmart/storefront/internal/dal/uow"
	"github.com/crackersmart/storefront/internal/service/models/audit"
	"github.com/crackersmart/storefront/internal/service/models/order"
	"github.com/crackersmart/storefront/internal/service/models/orderitem"
	"github.com/google/uuid"
)

// eventPublisher pushes order notifications to downstream consumers.
// Publishing is best-effort everywhere in this service.
type eventPublisher interface {
	OrderPlaced(ctx context.Context, o order.Order) error
	OrderEdited(ctx context.Context, o order.Order, changes audit.Changes) error
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.IOrderRepository
	OrderItemRepository() iorderitemrepo.IOrderItemRepository
	ProductRepository() iproductrepo.IProductRepository
}

// OrderService is the service for placing, querying and editing orders.
type OrderService struct {
	pgClient      *postgres.Client
	orderRepo     iorderrepo.IOrderRepository
	orderItemRepo iorderitemrepo.IOrderItemRepository
	productRepo   iproductrepo.IProductRepository
	auditRepo     iauditrepo.IAuditRepository
	events        eventPublisher
	newUOW        func() unitOfWork
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.orderRepo == nil || s.orderItemRepo == nil || s.productRepo == nil || s.auditRepo == nil {
		panic("ordersvc: repositories not configured")
	}
	if s.newUOW == nil {
		panic("ordersvc: unit of work not configured")
	}

	return s
}

// WithPostgresClient wires the service to Postgres-backed repositories and
// unit of work.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
		s.orderRepo = orderrepo.NewPostgresOrderRepository(pgClient.Pool())
		s.orderItemRepo = orderitemrepo.NewPostgresOrderItemRepository(pgClient.Pool())
		s.productRepo = productrepo.NewPostgresProductRepository(pgClient.Pool())
		s.auditRepo = auditrepo.NewPostgresAuditRepository(pgClient.Pool())
		s.newUOW = func() unitOfWork { return uow.NewUnitOfWork(pgClient) }
	}
}

// WithEventPublisher sets the notification publisher for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithEventPublisher(events eventPublisher) option {
	return func(s *OrderService) {
		s.events = events
	}
}

// WithRepositories injects repositories directly. Used by tests.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithRepositories(
	orderRepo iorderrepo.IOrderRepository,
	orderItemRepo iorderitemrepo.IOrderItemRepository,
	productRepo iproductrepo.IProductRepository,
	auditRepo iauditrepo.IAuditRepository,
) option {
	return func(s *OrderService) {
		s.orderRepo = orderRepo
		s.orderItemRepo = orderItemRepo
		s.productRepo = productRepo
		s.auditRepo = auditRepo
	}
}

// WithUnitOfWorkFactory injects the transaction factory. Used by tests.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkFactory(factory func() unitOfWork) option {
	return func(s *OrderService) {
		s.newUOW = factory
	}
}

// PlaceOrderInput carries everything needed to turn a cart into an order.
type PlaceOrderInput struct {
	UserID        string
	CustomerName  string
	Email         string
	Phone         string
	AltPhone      string
	Address       string
	City          string
	State         string
	Pincode       string
	PaymentMethod order.PaymentMethod
	ReferredBy    string
	Items         []orderitem.OrderItem
}

// PlaceOrder creates a new order from a cart's line items. The order and its
// items are inserted and stock is decremented inside a single transaction;
// notification and audit writes afterwards are best-effort.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*order.Order, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("cannot place an order without line items")
	}

	required := orderitem.QuantityByProduct(in.Items)
	for _, productID := range sortedProductIDs(required) {
		p, err := s.productRepo.GetByID(ctx, productID)
		if err != nil {
			return nil, fmt.Errorf("failed to check stock for product %d: %w", productID, err)
		}
		if p.Stock < required[productID] {
			return nil, &StockShortfallError{
				ProductID: productID,
				Available: p.Stock,
				Required:  required[productID],
			}
		}
	}

	now := time.Now()
	items := make([]orderitem.OrderItem, len(in.Items))
	for i, item := range in.Items {
		item.TotalPrice = int64(item.Quantity) * item.Price
		items[i] = item
	}

	o := order.Order{
		Code:          newOrderCode(),
		UserID:        in.UserID,
		CustomerName:  in.CustomerName,
		Email:         in.Email,
		Phone:         in.Phone,
		AltPhone:      in.AltPhone,
		Address:       in.Address,
		City:          in.City,
		State:         in.State,
		Pincode:       in.Pincode,
		Status:        order.StatusPlaced,
		PaymentMethod: in.PaymentMethod,
		ReferredBy:    in.ReferredBy,
		TotalAmount:   order.Subtotal(items),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = work.Rollback(ctx)
	}()

	inserted, err := work.OrderRepository().Insert(ctx, o)
	if err != nil {
		return nil, err
	}

	for i := range items {
		items[i].OrderID = inserted.ID
	}
	insertedItems, err := work.OrderItemRepository().BulkInsert(ctx, items)
	if err != nil {
		return nil, err
	}

	for _, productID := range sortedProductIDs(required) {
		p, err := work.ProductRepository().GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		newStock := p.Stock - required[productID]
		if newStock < 0 {
			newStock = 0
		}
		if err := work.ProductRepository().UpdateStock(ctx, productID, newStock); err != nil {
			return nil, err
		}
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}

	inserted.Items = insertedItems

	s.recordAudit(ctx, inserted.ID, "system", diffOrders(order.Order{}, *inserted))

	if s.events != nil {
		if err := s.events.OrderPlaced(ctx, *inserted); err != nil {
			slog.Warn("Failed to publish order placed event", "order_id", inserted.ID, "error", err)
		}
	}

	return inserted, nil
}

// GetOrders retrieves orders with their line items attached.
func (s *OrderService) GetOrders(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	orders, err := s.orderRepo.Query(ctx, filter)
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	itemFilter := &orderitem.QueryOrderItemsModel{}
	for _, o := range orders {
		itemFilter.OrderIds = append(itemFilter.OrderIds, o.ID)
	}
	items, err := s.orderItemRepo.Query(ctx, itemFilter)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		for _, item := range items {
			if item.OrderID == orders[i].ID {
				orders[i].Items = append(orders[i].Items, item)
			}
		}
	}

	return orders, nil
}

// GetOrder fetches one order by id with its line items.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*order.Order, error) {
	o, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.orderItemRepo.Query(ctx, &orderitem.QueryOrderItemsModel{OrderIds: []int64{id}})
	if err != nil {
		return nil, err
	}
	o.Items = items

	return o, nil
}

// UpdateStatus moves an order through its lifecycle, recording the change in
// the audit history.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, next order.Status, changedBy string) (*order.Order, error) {
	o, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if !o.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("cannot move order %d from %s to %s", id, o.Status, next)
	}

	original := *o
	o.Status = next
	if err := s.orderRepo.Update(ctx, *o); err != nil {
		return nil, &OrderUpdateFailedError{Err: err}
	}

	s.recordAudit(ctx, o.ID, changedBy, diffOrders(original, *o))

	return o, nil
}

// GetOrderAudits returns an order's edit history.
func (s *OrderService) GetOrderAudits(ctx context.Context, orderID int64) ([]audit.Audit, error) {
	return s.auditRepo.QueryByOrderID(ctx, orderID)
}

// recordAudit appends an audit row. Audit writes are best-effort: failures
// are logged, never propagated.
func (s *OrderService) recordAudit(ctx context.Context, orderID int64, changedBy string, changes audit.Changes) {
	if changes.Empty() {
		return
	}

	_, err := s.auditRepo.Insert(ctx, audit.Audit{
		OrderID:   orderID,
		ChangedBy: changedBy,
		Changes:   changes,
	})
	if err != nil {
		slog.Warn("Failed to write order audit record", "order_id", orderID, "error", err)
	}
}

// newOrderCode generates the human-readable short code printed on invoices
// and quoted on the phone.
func newOrderCode() string {
	return "CS-" + strings.ToUpper(uuid.NewString()[:8])
}
