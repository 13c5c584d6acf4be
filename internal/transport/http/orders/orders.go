package orders

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	orderrepo "github.com/crackersmart/storefront/internal/dal/repositories/order/postgres"
	"github.com/crackersmart/storefront/internal/service/models/audit"
	cartmodel "github.com/crackersmart/storefront/internal/service/models/cart"
	"github.com/crackersmart/storefront/internal/service/models/order"
	"github.com/crackersmart/storefront/internal/service/models/orderitem"
	"github.com/crackersmart/storefront/internal/service/services/ordersvc"
)

// service is an interface for the service layer.
type service interface {
	PlaceOrder(ctx context.Context, in ordersvc.PlaceOrderInput) (*order.Order, error)
	GetOrders(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
	GetOrder(ctx context.Context, id int64) (*order.Order, error)
	SaveOrderEdits(ctx context.Context, original, target order.Order, discount order.DiscountSpec, changedBy string) (*order.Order, error)
	UpdateStatus(ctx context.Context, id int64, next order.Status, changedBy string) (*order.Order, error)
	GetOrderAudits(ctx context.Context, orderID int64) ([]audit.Audit, error)
}

// cartService reads and clears the caller's cart when an order is placed.
type cartService interface {
	Get(ctx context.Context, userID string) (*cartmodel.Cart, error)
	Clear(ctx context.Context, userID string) error
}

// ChangedBy identifies the admin performing a back-office change. The
// surrounding platform authenticates; this service only records the name.
func ChangedBy(r *http.Request) string {
	if who := r.Header.Get("X-Admin-User"); who != "" {
		return who
	}

	return "admin"
}

// writeError maps service errors to HTTP statuses. Stock shortfalls are
// conflicts the customer can resolve; partial line-item failures are server
// errors whose message tells the admin what state the order was left in.
func writeError(w http.ResponseWriter, err error) {
	var shortfall *ordersvc.StockShortfallError
	var lineItems *ordersvc.LineItemWriteFailedError

	switch {
	case errors.As(err, &shortfall):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.As(err, &lineItems):
		http.Error(w, err.Error(), http.StatusInternalServerError)
	case errors.Is(err, orderrepo.ErrOrderNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrInvalidPaymentMethod),
		errors.Is(err, order.ErrInvalidDiscountMode):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// placeOrderRequest represents a place order request. Line items come from
// the caller's cart, not the request body.
type placeOrderRequest struct {
	CustomerName  string `json:"customerName"  validate:"required"`
	Email         string `json:"email"         validate:"required,email"`
	Phone         string `json:"phone"         validate:"required"`
	AltPhone      string `json:"altPhone"`
	Address       string `json:"address"       validate:"required"`
	City          string `json:"city"          validate:"required"`
	State         string `json:"state"         validate:"required"`
	Pincode       string `json:"pincode"       validate:"required"`
	PaymentMethod string `json:"paymentMethod" validate:"required"`
	ReferredBy    string `json:"referredBy"`
}

// Validate validates the place order request.
func (r *placeOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

// PlaceOrder handles the place order request: the caller's cart becomes an
// order and the cart is cleared.
func PlaceOrder(w http.ResponseWriter, r *http.Request, service service, carts cartService) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		http.Error(w, "missing X-User-ID header", http.StatusBadRequest)

		return
	}

	req := placeOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for place order", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for place order", "error", err)

		return
	}

	method, err := order.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	c, err := carts.Get(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error loading cart for place order", "user_id", userID, "error", err)

		return
	}
	if len(c.Items) == 0 {
		http.Error(w, "cart is empty", http.StatusBadRequest)

		return
	}

	placed, err := service.PlaceOrder(r.Context(), ordersvc.PlaceOrderInput{
		UserID:        userID,
		CustomerName:  req.CustomerName,
		Email:         req.Email,
		Phone:         req.Phone,
		AltPhone:      req.AltPhone,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		Pincode:       req.Pincode,
		PaymentMethod: method,
		ReferredBy:    req.ReferredBy,
		Items:         c.LineItems(),
	})
	if err != nil {
		writeError(w, err)
		slog.Error("Error placing order", "user_id", userID, "error", err)

		return
	}

	if err := carts.Clear(r.Context(), userID); err != nil {
		slog.Warn("Failed to clear cart after placing order", "user_id", userID, "error", err)
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(placed); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response", "error", err)
	}
}

type queryOrdersRequest struct {
	Ids      []int64  `schema:"ids,omitempty"`
	UserIds  []string `schema:"userIds,omitempty"`
	Statuses []string `schema:"statuses,omitempty"`
	Code     string   `schema:"code,omitempty"`
	Limit    int      `schema:"limit,omitempty"`
	Offset   int      `schema:"offset,omitempty"`
}

func (q *queryOrdersRequest) toModel() (*order.QueryOrdersModel, error) {
	statuses := make([]order.Status, 0, len(q.Statuses))
	for _, s := range q.Statuses {
		status, err := order.ParseStatus(s)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}

	return &order.QueryOrdersModel{
		Ids:      q.Ids,
		UserIds:  q.UserIds,
		Statuses: statuses,
		Code:     q.Code,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}, nil
}

// ListOrders handles the order listing request.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	query := &queryOrdersRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding order query", "error", err)

		return
	}

	filter, err := query.toModel()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	orders, err := service.GetOrders(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error getting orders", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(orders); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response", "error", err)
	}
}

// GetOrder handles the single order request.
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)

		return
	}

	o, err := service.GetOrder(r.Context(), id)
	if err != nil {
		writeError(w, err)
		slog.Error("Error getting order", "order_id", id, "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(o); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response", "error", err)
	}
}

// itemInEditOrderRequest represents a line item in an edit order request.
type itemInEditOrderRequest struct {
	ProductID   int64  `json:"productId"   validate:"gt=0"`
	ProductName string `json:"productName" validate:"required"`
	Quantity    int    `json:"quantity"    validate:"gt=0"`
	Price       int64  `json:"price"       validate:"gte=0"`
}

func (r *itemInEditOrderRequest) toModel() orderitem.OrderItem {
	return orderitem.OrderItem{
		ProductID:   r.ProductID,
		ProductName: r.ProductName,
		Quantity:    r.Quantity,
		Price:       r.Price,
	}
}

// editOrderRequest represents the full target state of an admin order edit.
type editOrderRequest struct {
	CustomerName  string                   `json:"customerName"  validate:"required"`
	Email         string                   `json:"email"         validate:"required,email"`
	Phone         string                   `json:"phone"         validate:"required"`
	AltPhone      string                   `json:"altPhone"`
	Address       string                   `json:"address"       validate:"required"`
	City          string                   `json:"city"          validate:"required"`
	State         string                   `json:"state"         validate:"required"`
	Pincode       string                   `json:"pincode"       validate:"required"`
	Status        string                   `json:"status"        validate:"required"`
	PaymentMethod string                   `json:"paymentMethod" validate:"required"`
	ReferredBy    string                   `json:"referredBy"`
	Discount      order.DiscountSpec       `json:"discount"`
	Items         []itemInEditOrderRequest `json:"items"         validate:"required,min=1,dive"`
}

// Validate validates the edit order request.
func (r *editOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

// toModel converts editOrderRequest to order.Order.
func (r *editOrderRequest) toModel() (*order.Order, error) {
	status, err := order.ParseStatus(r.Status)
	if err != nil {
		return nil, err
	}

	method, err := order.ParsePaymentMethod(r.PaymentMethod)
	if err != nil {
		return nil, err
	}

	items := make([]orderitem.OrderItem, len(r.Items))
	for i := range r.Items {
		items[i] = r.Items[i].toModel()
	}

	return &order.Order{
		CustomerName:  r.CustomerName,
		Email:         r.Email,
		Phone:         r.Phone,
		AltPhone:      r.AltPhone,
		Address:       r.Address,
		City:          r.City,
		State:         r.State,
		Pincode:       r.Pincode,
		Status:        status,
		PaymentMethod: method,
		ReferredBy:    r.ReferredBy,
		Items:         items,
	}, nil
}

// EditOrder handles the admin order edit request. The request carries the
// full target state; the service reconciles the stored order, line items and
// stock to it.
func EditOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)

		return
	}

	req := editOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for edit order", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for edit order", "error", err)

		return
	}

	target, err := req.toModel()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	original, err := service.GetOrder(r.Context(), id)
	if err != nil {
		writeError(w, err)

		return
	}

	updated, err := service.SaveOrderEdits(r.Context(), *original, *target, req.Discount, ChangedBy(r))
	if err != nil {
		writeError(w, err)
		slog.Error("Error saving order edits", "order_id", id, "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(updated); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response", "error", err)
	}
}

// updateStatusRequest represents a status transition request.
type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Validate validates the update status request.
func (r *updateStatusRequest) Validate() error {
	return validator.New().Struct(r)
}

// UpdateStatus handles the order status transition request.
func UpdateStatus(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)

		return
	}

	req := updateStatusRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for update status", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	next, err := order.ParseStatus(req.Status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	updated, err := service.UpdateStatus(r.Context(), id, next, ChangedBy(r))
	if err != nil {
		writeError(w, err)
		slog.Error("Error updating order status", "order_id", id, "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(updated); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response", "error", err)
	}
}

// ListAudits handles the order audit history request.
func ListAudits(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)

		return
	}

	audits, err := service.GetOrderAudits(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error getting order audits", "order_id", id, "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(audits); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response", "error", err)
	}
}
