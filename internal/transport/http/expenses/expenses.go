package expenses

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
	"github.com/gorilla/schema"

	expenserepo "github.com/crackersmart/storefront/internal/dal/repositories/expense/postgres"
	"github.com/crackersmart/storefront/internal/service/models/expense"
)

// service is an interface for the service layer.
type service interface {
	RecordExpense(ctx context.Context, e expense.Expense) (*expense.Expense, error)
	DeleteExpense(ctx context.Context, id int64) error
	ListExpenses(ctx context.Context, filter *expense.QueryExpensesModel) ([]expense.Expense, error)
	SummarizeByCategory(ctx context.Context, filter *expense.QueryExpensesModel) ([]expense.CategorySum, error)
	SummarizeByMonth(ctx context.Context, filter *expense.QueryExpensesModel) ([]expense.MonthlySum, error)
}

// recordExpenseRequest represents a record expense request.
type recordExpenseRequest struct {
	Category string    `json:"category" validate:"required"`
	Amount   int64     `json:"amount"   validate:"gt=0"`
	SpentAt  time.Time `json:"spentAt"`
	Note     string    `json:"note"`
}

// Validate validates the record expense request.
func (r *recordExpenseRequest) Validate() error {
	return validator.New().Struct(r)
}

// RecordExpense handles the record expense request.
func RecordExpense(w http.ResponseWriter, r *http.Request, service service) {
	req := recordExpenseRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for record expense", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for record expense", "error", err)

		return
	}

	created, err := service.RecordExpense(r.Context(), expense.Expense{
		Category: req.Category,
		Amount:   req.Amount,
		SpentAt:  req.SpentAt,
		Note:     req.Note,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error recording expense", "error", err)

		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response", "error", err)
	}
}

// DeleteExpense handles the delete expense request.
func DeleteExpense(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid expense id", http.StatusBadRequest)

		return
	}

	if err := service.DeleteExpense(r.Context(), id); err != nil {
		if errors.Is(err, expenserepo.ErrExpenseNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)

			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error deleting expense", "expense_id", id, "error", err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type queryExpensesRequest struct {
	Categories []string `schema:"categories,omitempty"`
	From       string   `schema:"from,omitempty"`
	To         string   `schema:"to,omitempty"`
	Limit      int      `schema:"limit,omitempty"`
	Offset     int      `schema:"offset,omitempty"`
	GroupBy    string   `schema:"groupBy,omitempty"`
}

func (q *queryExpensesRequest) toModel() (*expense.QueryExpensesModel, error) {
	filter := &expense.QueryExpensesModel{
		Categories: q.Categories,
		Limit:      q.Limit,
		Offset:     q.Offset,
	}

	if q.From != "" {
		from, err := time.Parse(time.RFC3339, q.From)
		if err != nil {
			return nil, err
		}
		filter.From = from
	}
	if q.To != "" {
		to, err := time.Parse(time.RFC3339, q.To)
		if err != nil {
			return nil, err
		}
		filter.To = to
	}

	return filter, nil
}

// ListExpenses handles the expense listing request.
func ListExpenses(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	query := &queryExpensesRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding expense query", "error", err)

		return
	}

	filter, err := query.toModel()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	result, err := service.ListExpenses(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error listing expenses", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response", "error", err)
	}
}

// SummarizeExpenses handles the expense summary request, grouped by
// category or, with groupBy=month, by calendar month.
func SummarizeExpenses(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	query := &queryExpensesRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding expense query", "error", err)

		return
	}

	filter, err := query.toModel()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	var sums any
	switch query.GroupBy {
	case "", "category":
		sums, err = service.SummarizeByCategory(r.Context(), filter)
	case "month":
		sums, err = service.SummarizeByMonth(r.Context(), filter)
	default:
		http.Error(w, "unsupported groupBy value", http.StatusBadRequest)

		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error summarizing expenses", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(sums); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response", "error", err)
	}
}
