package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/crackersmart/storefront/internal/dal/postgres"
	"github.com/crackersmart/storefront/internal/service/models/expense"
)

var ErrExpenseNotFound = errors.New("expense not found")

// PostgresExpenseRepository is the Postgres expense repository.
type PostgresExpenseRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresExpenseRepository creates a new Postgres expense repository.
func NewPostgresExpenseRepository(conn postgres.Conn) *PostgresExpenseRepository {
	return &PostgresExpenseRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert stores a new expense and returns it with the generated id.
func (r *PostgresExpenseRepository) Insert(ctx context.Context, e expense.Expense) (*expense.Expense, error) {
	now := time.Now()
	query, args, err := r.sb.Insert("expenses").
		Columns("category", "amount", "spent_at", "note", "created_at", "updated_at").
		Values(e.Category, e.Amount, e.SpentAt, e.Note, now, now).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert expense query: %w", err)
	}

	inserted := e
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&inserted.ID, &inserted.CreatedAt, &inserted.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert expense: %w", err)
	}

	return &inserted, nil
}

// Delete removes an expense by id.
func (r *PostgresExpenseRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("expenses").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete expense query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrExpenseNotFound
	}

	return nil
}

func applyExpenseFilter(builder sq.SelectBuilder, filter *expense.QueryExpensesModel) sq.SelectBuilder {
	if len(filter.Categories) > 0 {
		builder = builder.Where(sq.Eq{"category": filter.Categories})
	}
	if !filter.From.IsZero() {
		builder = builder.Where(sq.GtOrEq{"spent_at": filter.From})
	}
	if !filter.To.IsZero() {
		builder = builder.Where(sq.Lt{"spent_at": filter.To})
	}

	return builder
}

// Query retrieves expenses based on filter criteria, newest spend first.
func (r *PostgresExpenseRepository) Query(ctx context.Context, filter *expense.QueryExpensesModel) ([]expense.Expense, error) {
	builder := r.sb.Select("id", "category", "amount", "spent_at", "note", "created_at", "updated_at").
		From("expenses").
		OrderBy("spent_at DESC")

	builder = applyExpenseFilter(builder, filter)

	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query expenses query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var result []expense.Expense
	for rows.Next() {
		var e expense.Expense
		if err := rows.Scan(&e.ID, &e.Category, &e.Amount, &e.SpentAt, &e.Note, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		result = append(result, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// SumByMonth groups expenses by calendar month over the filter window,
// oldest month first.
func (r *PostgresExpenseRepository) SumByMonth(ctx context.Context, filter *expense.QueryExpensesModel) ([]expense.MonthlySum, error) {
	builder := r.sb.Select("date_trunc('month', spent_at) AS month", "COALESCE(SUM(amount), 0)", "COUNT(*)").
		From("expenses").
		GroupBy("month").
		OrderBy("month")

	builder = applyExpenseFilter(builder, filter)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sum expenses by month query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenses by month: %w", err)
	}
	defer rows.Close()

	var result []expense.MonthlySum
	for rows.Next() {
		var s expense.MonthlySum
		if err := rows.Scan(&s.Month, &s.Amount, &s.Count); err != nil {
			return nil, fmt.Errorf("failed to scan monthly expense sum: %w", err)
		}
		result = append(result, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// SumByCategory groups expenses by category over the filter window.
func (r *PostgresExpenseRepository) SumByCategory(ctx context.Context, filter *expense.QueryExpensesModel) ([]expense.CategorySum, error) {
	builder := r.sb.Select("category", "COALESCE(SUM(amount), 0)", "COUNT(*)").
		From("expenses").
		GroupBy("category").
		OrderBy("category")

	builder = applyExpenseFilter(builder, filter)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sum expenses query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenses: %w", err)
	}
	defer rows.Close()

	var result []expense.CategorySum
	for rows.Next() {
		var s expense.CategorySum
		if err := rows.Scan(&s.Category, &s.Amount, &s.Count); err != nil {
			return nil, fmt.Errorf("failed to scan expense sum: %w", err)
		}
		result = append(result, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
