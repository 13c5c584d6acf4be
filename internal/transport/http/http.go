package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/crackersmart/storefront/internal/service/models/analytics"
	"github.com/crackersmart/storefront/internal/service/models/audit"
	cartmodel "github.com/crackersmart/storefront/internal/service/models/cart"
	"github.com/crackersmart/storefront/internal/service/models/category"
	"github.com/crackersmart/storefront/internal/service/models/expense"
	"github.com/crackersmart/storefront/internal/service/models/order"
	"github.com/crackersmart/storefront/internal/service/models/product"
	"github.com/crackersmart/storefront/internal/service/models/vendormodel"
	"github.com/crackersmart/storefront/internal/service/services/ordersvc"
	analyticshandler "github.com/crackersmart/storefront/internal/transport/http/analytics"
	carthandler "github.com/crackersmart/storefront/internal/transport/http/cart"
	cataloghandler "github.com/crackersmart/storefront/internal/transport/http/catalog"
	expenseshandler "github.com/crackersmart/storefront/internal/transport/http/expenses"
	ordershandler "github.com/crackersmart/storefront/internal/transport/http/orders"
	vendorshandler "github.com/crackersmart/storefront/internal/transport/http/vendors"
	"github.com/crackersmart/storefront/pkg/http/middleware/trace"
	"github.com/crackersmart/storefront/pkg/logger"
)

type catalogService interface {
	ListProducts(ctx context.Context, filter *product.QueryProductsModel) ([]product.Product, error)
	GetProduct(ctx context.Context, id int64) (*product.Product, error)
	CreateProduct(ctx context.Context, p product.Product) (*product.Product, error)
	UpdateProduct(ctx context.Context, p product.Product) (*product.Product, error)
	ListCategories(ctx context.Context, activeOnly bool) ([]category.Category, error)
	CreateCategory(ctx context.Context, c category.Category) (*category.Category, error)
}

type cartService interface {
	Get(ctx context.Context, userID string) (*cartmodel.Cart, error)
	AddItem(ctx context.Context, userID string, productID int64, delta int) (*cartmodel.Cart, error)
	SetQuantity(ctx context.Context, userID string, productID int64, qty int) (*cartmodel.Cart, error)
	Clear(ctx context.Context, userID string) error
}

type orderService interface {
	PlaceOrder(ctx context.Context, in ordersvc.PlaceOrderInput) (*order.Order, error)
	GetOrders(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
	GetOrder(ctx context.Context, id int64) (*order.Order, error)
	SaveOrderEdits(ctx context.Context, original, target order.Order, discount order.DiscountSpec, changedBy string) (*order.Order, error)
	UpdateStatus(ctx context.Context, id int64, next order.Status, changedBy string) (*order.Order, error)
	GetOrderAudits(ctx context.Context, orderID int64) ([]audit.Audit, error)
}

type ledgerService interface {
	CreateVendor(ctx context.Context, v vendor.Vendor) (*vendor.Vendor, error)
	GetVendor(ctx context.Context, id int64) (*vendor.Vendor, error)
	ListVendors(ctx context.Context) ([]vendor.Vendor, error)
	RecordTransaction(ctx context.Context, t vendor.Transaction) (*vendor.Transaction, error)
	VendorLedger(ctx context.Context, vendorID int64) ([]vendor.LedgerEntry, *vendor.Summary, error)
}

type expenseService interface {
	RecordExpense(ctx context.Context, e expense.Expense) (*expense.Expense, error)
	DeleteExpense(ctx context.Context, id int64) error
	ListExpenses(ctx context.Context, filter *expense.QueryExpensesModel) ([]expense.Expense, error)
	SummarizeByCategory(ctx context.Context, filter *expense.QueryExpensesModel) ([]expense.CategorySum, error)
	SummarizeByMonth(ctx context.Context, filter *expense.QueryExpensesModel) ([]expense.MonthlySum, error)
}

type analyticsService interface {
	Dashboard(ctx context.Context, filter analytics.ReportFilter) (*analytics.Dashboard, error)
}

type HTTPTransport struct {
	server    *http.Server
	router    *chi.Mux
	catalog   catalogService
	cart      cartService
	orders    orderService
	ledger    ledgerService
	expenses  expenseService
	analytics analyticsService
}

func NewHTTPTransport(
	catalog catalogService,
	cart cartService,
	orders orderService,
	ledger ledgerService,
	expenses expenseService,
	analytics analyticsService,
) *HTTPTransport {
	router := newRouter()
	server := newServer(router)

	return &HTTPTransport{
		server:    server,
		router:    router,
		catalog:   catalog,
		cart:      cart,
		orders:    orders,
		ledger:    ledger,
		expenses:  expenses,
		analytics: analytics,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport. Storefront
// routes live under /api, back-office routes under /api/admin.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	h.router.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, viper.GetString("server.http.swagger_spec"))
	})

	h.router.Route("/api", func(r chi.Router) {
		r.Get("/products", h.listProducts)
		r.Get("/products/{id}", h.getProduct)
		r.Get("/categories", h.listCategories)

		r.Get("/cart", h.getCart)
		r.Post("/cart/items", h.addCartItem)
		r.Put("/cart/items/{productID}", h.setCartQuantity)
		r.Delete("/cart", h.clearCart)

		r.Post("/orders", h.placeOrder)
		r.Get("/orders", h.listOrders)
		r.Get("/orders/{id}", h.getOrder)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/products", h.createProduct)
			r.Put("/products/{id}", h.updateProduct)
			r.Post("/categories", h.createCategory)

			r.Put("/orders/{id}", h.editOrder)
			r.Patch("/orders/{id}/status", h.updateOrderStatus)
			r.Get("/orders/{id}/audits", h.listOrderAudits)

			r.Post("/vendors", h.createVendor)
			r.Get("/vendors", h.listVendors)
			r.Post("/vendors/{id}/transactions", h.recordVendorTransaction)
			r.Get("/vendors/{id}/ledger", h.getVendorLedger)

			r.Post("/expenses", h.recordExpense)
			r.Get("/expenses", h.listExpenses)
			r.Delete("/expenses/{id}", h.deleteExpense)
			r.Get("/expenses/summary", h.summarizeExpenses)

			r.Get("/analytics/dashboard", h.dashboard)
		})
	})
}

func (h *HTTPTransport) listProducts(w http.ResponseWriter, r *http.Request) {
	cataloghandler.ListProducts(w, r, h.catalog)
}

func (h *HTTPTransport) getProduct(w http.ResponseWriter, r *http.Request) {
	cataloghandler.GetProduct(w, r, h.catalog)
}

func (h *HTTPTransport) createProduct(w http.ResponseWriter, r *http.Request) {
	cataloghandler.CreateProduct(w, r, h.catalog)
}

func (h *HTTPTransport) updateProduct(w http.ResponseWriter, r *http.Request) {
	cataloghandler.UpdateProduct(w, r, h.catalog)
}

func (h *HTTPTransport) listCategories(w http.ResponseWriter, r *http.Request) {
	cataloghandler.ListCategories(w, r, h.catalog)
}

func (h *HTTPTransport) createCategory(w http.ResponseWriter, r *http.Request) {
	cataloghandler.CreateCategory(w, r, h.catalog)
}

func (h *HTTPTransport) getCart(w http.ResponseWriter, r *http.Request) {
	carthandler.GetCart(w, r, h.cart)
}

func (h *HTTPTransport) addCartItem(w http.ResponseWriter, r *http.Request) {
	carthandler.AddItem(w, r, h.cart)
}

func (h *HTTPTransport) setCartQuantity(w http.ResponseWriter, r *http.Request) {
	carthandler.SetQuantity(w, r, h.cart)
}

func (h *HTTPTransport) clearCart(w http.ResponseWriter, r *http.Request) {
	carthandler.ClearCart(w, r, h.cart)
}

func (h *HTTPTransport) placeOrder(w http.ResponseWriter, r *http.Request) {
	ordershandler.PlaceOrder(w, r, h.orders, h.cart)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	ordershandler.ListOrders(w, r, h.orders)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	ordershandler.GetOrder(w, r, h.orders)
}

func (h *HTTPTransport) editOrder(w http.ResponseWriter, r *http.Request) {
	ordershandler.EditOrder(w, r, h.orders)
}

func (h *HTTPTransport) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ordershandler.UpdateStatus(w, r, h.orders)
}

func (h *HTTPTransport) listOrderAudits(w http.ResponseWriter, r *http.Request) {
	ordershandler.ListAudits(w, r, h.orders)
}

func (h *HTTPTransport) createVendor(w http.ResponseWriter, r *http.Request) {
	vendorshandler.CreateVendor(w, r, h.ledger)
}

func (h *HTTPTransport) listVendors(w http.ResponseWriter, r *http.Request) {
	vendorshandler.ListVendors(w, r, h.ledger)
}

func (h *HTTPTransport) recordVendorTransaction(w http.ResponseWriter, r *http.Request) {
	vendorshandler.RecordTransaction(w, r, h.ledger)
}

func (h *HTTPTransport) getVendorLedger(w http.ResponseWriter, r *http.Request) {
	vendorshandler.GetLedger(w, r, h.ledger)
}

func (h *HTTPTransport) recordExpense(w http.ResponseWriter, r *http.Request) {
	expenseshandler.RecordExpense(w, r, h.expenses)
}

func (h *HTTPTransport) listExpenses(w http.ResponseWriter, r *http.Request) {
	expenseshandler.ListExpenses(w, r, h.expenses)
}

func (h *HTTPTransport) deleteExpense(w http.ResponseWriter, r *http.Request) {
	expenseshandler.DeleteExpense(w, r, h.expenses)
}

func (h *HTTPTransport) summarizeExpenses(w http.ResponseWriter, r *http.Request) {
	expenseshandler.SummarizeExpenses(w, r, h.expenses)
}

func (h *HTTPTransport) dashboard(w http.ResponseWriter, r *http.Request) {
	analyticshandler.Dashboard(w, r, h.analytics)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
