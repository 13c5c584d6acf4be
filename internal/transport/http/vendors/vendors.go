package vendors

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	vendorrepo "github.com/crackersmart/storefront/internal/dal/repositories/vendorrepo/postgres"
	"github.com/crackersmart/storefront/internal/service/models/vendormodel"
)

// service is an interface for the service layer.
type service interface {
	CreateVendor(ctx context.Context, v vendor.Vendor) (*vendor.Vendor, error)
	GetVendor(ctx context.Context, id int64) (*vendor.Vendor, error)
	ListVendors(ctx context.Context) ([]vendor.Vendor, error)
	RecordTransaction(ctx context.Context, t vendor.Transaction) (*vendor.Transaction, error)
	VendorLedger(ctx context.Context, vendorID int64) ([]vendor.LedgerEntry, *vendor.Summary, error)
}

// createVendorRequest represents a create vendor request.
type createVendorRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone"`
	GSTIN string `json:"gstin"`
	Notes string `json:"notes"`
}

// Validate validates the create vendor request.
func (r *createVendorRequest) Validate() error {
	return validator.New().Struct(r)
}

// CreateVendor handles the create vendor request.
func CreateVendor(w http.ResponseWriter, r *http.Request, service service) {
	req := createVendorRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for create vendor", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for create vendor", "error", err)

		return
	}

	created, err := service.CreateVendor(r.Context(), vendor.Vendor{
		Name:  req.Name,
		Phone: req.Phone,
		GSTIN: req.GSTIN,
		Notes: req.Notes,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error creating vendor", "error", err)

		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response", "error", err)
	}
}

// ListVendors handles the vendor listing request.
func ListVendors(w http.ResponseWriter, r *http.Request, service service) {
	vendors, err := service.ListVendors(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error listing vendors", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(vendors); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response", "error", err)
	}
}

// recordTransactionRequest represents a ledger movement request.
type recordTransactionRequest struct {
	Kind       string    `json:"kind"   validate:"required"`
	Amount     int64     `json:"amount" validate:"gt=0"`
	OccurredAt time.Time `json:"occurredAt"`
	Note       string    `json:"note"`
}

// Validate validates the record transaction request.
func (r *recordTransactionRequest) Validate() error {
	return validator.New().Struct(r)
}

// RecordTransaction handles the record vendor transaction request.
func RecordTransaction(w http.ResponseWriter, r *http.Request, service service) {
	vendorID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid vendor id", http.StatusBadRequest)

		return
	}

	req := recordTransactionRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for record transaction", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for record transaction", "error", err)

		return
	}

	kind, err := vendor.ParseTransactionKind(req.Kind)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	created, err := service.RecordTransaction(r.Context(), vendor.Transaction{
		VendorID:   vendorID,
		Kind:       kind,
		Amount:     req.Amount,
		OccurredAt: req.OccurredAt,
		Note:       req.Note,
	})
	if err != nil {
		if errors.Is(err, vendorrepo.ErrVendorNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)

			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error recording vendor transaction", "vendor_id", vendorID, "error", err)

		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response", "error", err)
	}
}

// ledgerResponse is the vendor ledger with its aggregate summary.
type ledgerResponse struct {
	Vendor  *vendor.Vendor       `json:"vendor"`
	Entries []vendor.LedgerEntry `json:"entries"`
	Summary *vendor.Summary      `json:"summary"`
}

// GetLedger handles the vendor ledger request.
func GetLedger(w http.ResponseWriter, r *http.Request, service service) {
	vendorID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid vendor id", http.StatusBadRequest)

		return
	}

	v, err := service.GetVendor(r.Context(), vendorID)
	if err != nil {
		if errors.Is(err, vendorrepo.ErrVendorNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)

			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error getting vendor", "vendor_id", vendorID, "error", err)

		return
	}

	entries, summary, err := service.VendorLedger(r.Context(), vendorID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error building vendor ledger", "vendor_id", vendorID, "error", err)

		return
	}

	resp := ledgerResponse{Vendor: v, Entries: entries, Summary: summary}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response", "error", err)
	}
}
