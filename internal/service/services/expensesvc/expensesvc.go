package expensesvc

import (
	"context"
	"fmt"
	"time"

	"github.com/crackersmart/storefront/internal/dal/interfaces/iexpenserepo"
	"github.com/crackersmart/storefront/internal/dal/postgres"
	expenserepo "github.com/crackersmart/storefront/internal/dal/repositories/expense/postgres"
	"github.com/crackersmart/storefront/internal/service/models/expense"
)

// ExpenseService records and reports back-office spend.
type ExpenseService struct {
	expenseRepo iexpenserepo.IExpenseRepository
}

// option is a function that configures the ExpenseService.
type option func(*ExpenseService)

// MustNewExpenseService creates a new ExpenseService.
func MustNewExpenseService(opts ...option) *ExpenseService {
	s := &ExpenseService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.expenseRepo == nil {
		panic("expensesvc: expense repository not configured")
	}

	return s
}

// WithPostgresClient wires the service to the Postgres-backed expense repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *ExpenseService) {
		s.expenseRepo = expenserepo.NewPostgresExpenseRepository(pgClient.Pool())
	}
}

// WithExpenseRepository injects the repository directly. Used by tests.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithExpenseRepository(repo iexpenserepo.IExpenseRepository) option {
	return func(s *ExpenseService) {
		s.expenseRepo = repo
	}
}

// RecordExpense stores a new spend entry.
func (s *ExpenseService) RecordExpense(ctx context.Context, e expense.Expense) (*expense.Expense, error) {
	if e.Category == "" {
		return nil, fmt.Errorf("expense category is required")
	}
	if e.Amount <= 0 {
		return nil, fmt.Errorf("expense amount must be positive")
	}
	if e.SpentAt.IsZero() {
		e.SpentAt = time.Now()
	}

	return s.expenseRepo.Insert(ctx, e)
}

// DeleteExpense removes a spend entry.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id int64) error {
	return s.expenseRepo.Delete(ctx, id)
}

// ListExpenses retrieves expenses based on filter criteria.
func (s *ExpenseService) ListExpenses(ctx context.Context, filter *expense.QueryExpensesModel) ([]expense.Expense, error) {
	return s.expenseRepo.Query(ctx, filter)
}

// SummarizeByCategory aggregates spend per category over the filter window.
func (s *ExpenseService) SummarizeByCategory(ctx context.Context, filter *expense.QueryExpensesModel) ([]expense.CategorySum, error) {
	return s.expenseRepo.SumByCategory(ctx, filter)
}

// SummarizeByMonth aggregates spend per calendar month over the filter window.
func (s *ExpenseService) SummarizeByMonth(ctx context.Context, filter *expense.QueryExpensesModel) ([]expense.MonthlySum, error) {
	return s.expenseRepo.SumByMonth(ctx, filter)
}
