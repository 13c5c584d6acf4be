package iexpenserepo

import (
	"context"

	"github.com/crackersmart/storefront/internal/service/models/expense"
)

type IExpenseRepository interface {
	Insert(ctx context.Context, e expense.Expense) (*expense.Expense, error)
	Delete(ctx context.Context, id int64) error
	Query(ctx context.Context, filter *expense.QueryExpensesModel) ([]expense.Expense, error)
	SumByCategory(ctx context.Context, filter *expense.QueryExpensesModel) ([]expense.CategorySum, error)
	SumByMonth(ctx context.Context, filter *expense.QueryExpensesModel) ([]expense.MonthlySum, error)
}
