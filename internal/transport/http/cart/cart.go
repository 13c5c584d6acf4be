package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	productrepo "github.com/crackersmart/storefront/internal/dal/repositories/product/postgres"
	cartmodel "github.com/crackersmart/storefront/internal/service/models/cart"
	"github.com/crackersmart/storefront/internal/service/services/cartsvc"
)

// service is an interface for the service layer.
type service interface {
	Get(ctx context.Context, userID string) (*cartmodel.Cart, error)
	AddItem(ctx context.Context, userID string, productID int64, delta int) (*cartmodel.Cart, error)
	SetQuantity(ctx context.Context, userID string, productID int64, qty int) (*cartmodel.Cart, error)
	Clear(ctx context.Context, userID string) error
}

// UserID extracts the caller's id, assigned by the storefront frontend.
func UserID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}

// GetCart handles the cart read request.
func GetCart(w http.ResponseWriter, r *http.Request, service service) {
	userID := UserID(r)
	if userID == "" {
		http.Error(w, "missing X-User-ID header", http.StatusBadRequest)

		return
	}

	c, err := service.Get(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error loading cart", "user_id", userID, "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(c); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response", "error", err)
	}
}

// addItemRequest represents an add-to-cart request. Quantity is a delta and
// may be negative to remove part of a line.
type addItemRequest struct {
	ProductID int64 `json:"productId" validate:"gt=0"`
	Quantity  int   `json:"quantity"  validate:"required"`
}

// Validate validates the add item request.
func (r *addItemRequest) Validate() error {
	return validator.New().Struct(r)
}

// AddItem handles the add-to-cart request.
func AddItem(w http.ResponseWriter, r *http.Request, service service) {
	userID := UserID(r)
	if userID == "" {
		http.Error(w, "missing X-User-ID header", http.StatusBadRequest)

		return
	}

	req := addItemRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for add to cart", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for add to cart", "error", err)

		return
	}

	c, err := service.AddItem(r.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, productrepo.ErrProductNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, cartsvc.ErrProductUnavailable):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
			slog.Error("Error adding item to cart", "user_id", userID, "error", err)
		}

		return
	}

	if err := json.NewEncoder(w).Encode(c); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response", "error", err)
	}
}

// setQuantityRequest represents a set-line-quantity request. Zero or negative
// removes the line.
type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SetQuantity handles the set-line-quantity request.
func SetQuantity(w http.ResponseWriter, r *http.Request, service service) {
	userID := UserID(r)
	if userID == "" {
		http.Error(w, "missing X-User-ID header", http.StatusBadRequest)

		return
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)

		return
	}

	req := setQuantityRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for set cart quantity", "error", err)

		return
	}

	c, err := service.SetQuantity(r.Context(), userID, productID, req.Quantity)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error setting cart quantity", "user_id", userID, "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(c); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response", "error", err)
	}
}

// ClearCart handles the clear cart request.
func ClearCart(w http.ResponseWriter, r *http.Request, service service) {
	userID := UserID(r)
	if userID == "" {
		http.Error(w, "missing X-User-ID header", http.StatusBadRequest)

		return
	}

	if err := service.Clear(r.Context(), userID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error clearing cart", "user_id", userID, "error", err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
