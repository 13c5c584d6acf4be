package catalog

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

	productrepo "github.com/crackersmart/storefront/internal/dal/repositories/product/postgres"
	"github.com/crackersmart/storefront/internal/service/models/category"
	"github.com/crackersmart/storefront/internal/service/models/product"
)

// service is an interface for the service layer.
type service interface {
	ListProducts(ctx context.Context, filter *product.QueryProductsModel) ([]product.Product, error)
	GetProduct(ctx context.Context, id int64) (*product.Product, error)
	CreateProduct(ctx context.Context, p product.Product) (*product.Product, error)
	UpdateProduct(ctx context.Context, p product.Product) (*product.Product, error)
	ListCategories(ctx context.Context, activeOnly bool) ([]category.Category, error)
	CreateCategory(ctx context.Context, c category.Category) (*category.Category, error)
}

type queryProductsRequest struct {
	Ids         []int64 `schema:"ids,omitempty"`
	CategoryIds []int64 `schema:"categoryIds,omitempty"`
	ActiveOnly  bool    `schema:"activeOnly,omitempty"`
	Search      string  `schema:"search,omitempty"`
	Limit       int     `schema:"limit,omitempty"`
	Offset      int     `schema:"offset,omitempty"`
}

func (q *queryProductsRequest) toModel() *product.QueryProductsModel {
	return &product.QueryProductsModel{
		Ids:         q.Ids,
		CategoryIds: q.CategoryIds,
		ActiveOnly:  q.ActiveOnly,
		Search:      q.Search,
		Limit:       q.Limit,
		Offset:      q.Offset,
	}
}

// ListProducts handles the product listing request.
func ListProducts(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	query := &queryProductsRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding product query", "error", err)

		return
	}

	products, err := service.ListProducts(r.Context(), query.toModel())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error listing products", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(products); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response", "error", err)
	}
}

// GetProduct handles the single product request.
func GetProduct(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)

		return
	}

	p, err := service.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, productrepo.ErrProductNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)

			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error getting product", "product_id", id, "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(p); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response", "error", err)
	}
}

// productRequest represents a create or update product request.
type productRequest struct {
	CategoryID  int64  `json:"categoryId"  validate:"gt=0"`
	Name        string `json:"name"        validate:"required"`
	Slug        string `json:"slug"        validate:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Price       int64  `json:"price"       validate:"gte=0"`
	OfferPrice  int64  `json:"offerPrice"  validate:"gte=0"`
	Stock       int    `json:"stock"       validate:"gte=0"`
	Active      bool   `json:"active"`
}

// Validate validates the product request.
func (r *productRequest) Validate() error {
	return validator.New().Struct(r)
}

func (r *productRequest) toModel() product.Product {
	return product.Product{
		CategoryID:  r.CategoryID,
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Price:       r.Price,
		OfferPrice:  r.OfferPrice,
		Stock:       r.Stock,
		Active:      r.Active,
	}
}

// CreateProduct handles the create product request.
func CreateProduct(w http.ResponseWriter, r *http.Request, service service) {
	req := productRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for create product", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for create product", "error", err)

		return
	}

	created, err := service.CreateProduct(r.Context(), req.toModel())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error creating product", "error", err)

		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response", "error", err)
	}
}

// UpdateProduct handles the update product request, including stock restocks.
func UpdateProduct(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)

		return
	}

	req := productRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for update product", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for update product", "error", err)

		return
	}

	p := req.toModel()
	p.ID = id

	updated, err := service.UpdateProduct(r.Context(), p)
	if err != nil {
		if errors.Is(err, productrepo.ErrProductNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)

			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error updating product", "product_id", id, "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(updated); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response", "error", err)
	}
}

// ListCategories handles the category listing request.
func ListCategories(w http.ResponseWriter, r *http.Request, service service) {
	activeOnly := r.URL.Query().Get("activeOnly") == "true"

	categories, err := service.ListCategories(r.Context(), activeOnly)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error listing categories", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(categories); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response", "error", err)
	}
}

// categoryRequest represents a create category request.
type categoryRequest struct {
	Name   string `json:"name" validate:"required"`
	Slug   string `json:"slug" validate:"required"`
	Active bool   `json:"active"`
}

// Validate validates the category request.
func (r *categoryRequest) Validate() error {
	return validator.New().Struct(r)
}

// CreateCategory handles the create category request.
func CreateCategory(w http.ResponseWriter, r *http.Request, service service) {
	req := categoryRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for create category", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for create category", "error", err)

		return
	}

	created, err := service.CreateCategory(r.Context(), category.Category{
		Name:   req.Name,
		Slug:   req.Slug,
		Active: req.Active,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error creating category", "error", err)

		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response", "error", err)
	}
}
