package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/crackersmart/storefront/internal/dal/postgres"
	"github.com/crackersmart/storefront/internal/service/models/analytics"
	"github.com/crackersmart/storefront/internal/service/models/order"
)

// PostgresAnalyticsRepository runs the read-only aggregate queries behind the
// admin dashboard. Nothing here writes.
type PostgresAnalyticsRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresAnalyticsRepository creates a new Postgres analytics repository.
func NewPostgresAnalyticsRepository(conn postgres.Conn) *PostgresAnalyticsRepository {
	return &PostgresAnalyticsRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func applyWindow(builder sq.SelectBuilder, filter analytics.ReportFilter, column string) sq.SelectBuilder {
	if !filter.From.IsZero() {
		builder = builder.Where(sq.GtOrEq{column: filter.From})
	}
	if !filter.To.IsZero() {
		builder = builder.Where(sq.Lt{column: filter.To})
	}

	return builder
}

// CountByStatus returns the number of orders per lifecycle status.
func (r *PostgresAnalyticsRepository) CountByStatus(ctx context.Context, filter analytics.ReportFilter) ([]analytics.StatusCount, error) {
	builder := r.sb.Select("status", "COUNT(*)").
		From("orders").
		GroupBy("status").
		OrderBy("status")
	builder = applyWindow(builder, filter, "created_at")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build count by status query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders by status: %w", err)
	}
	defer rows.Close()

	var result []analytics.StatusCount
	for rows.Next() {
		var c analytics.StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		result = append(result, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// RevenueSummary aggregates order money fields, excluding cancelled orders.
func (r *PostgresAnalyticsRepository) RevenueSummary(ctx context.Context, filter analytics.ReportFilter) (*analytics.RevenueSummary, error) {
	builder := r.sb.Select(
		"COUNT(*)",
		"COALESCE(SUM(total_amount), 0)",
		"COALESCE(SUM(discount_amt), 0)",
		"COALESCE(SUM(total_amount - discount_amt), 0)",
	).
		From("orders").
		Where(sq.NotEq{"status": order.StatusCancelled.String()})
	builder = applyWindow(builder, filter, "created_at")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build revenue summary query: %w", err)
	}

	var summary analytics.RevenueSummary
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&summary.OrderCount,
		&summary.GrossAmount,
		&summary.DiscountAmount,
		&summary.NetAmount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query revenue summary: %w", err)
	}

	return &summary, nil
}

// MonthlyRevenue returns the month-by-month net revenue series, oldest first.
func (r *PostgresAnalyticsRepository) MonthlyRevenue(ctx context.Context, filter analytics.ReportFilter) ([]analytics.MonthlyRevenue, error) {
	builder := r.sb.Select(
		"date_trunc('month', created_at) AS month",
		"COUNT(*)",
		"COALESCE(SUM(total_amount - discount_amt), 0)",
	).
		From("orders").
		Where(sq.NotEq{"status": order.StatusCancelled.String()}).
		GroupBy("month").
		OrderBy("month")
	builder = applyWindow(builder, filter, "created_at")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build monthly revenue query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly revenue: %w", err)
	}
	defer rows.Close()

	var result []analytics.MonthlyRevenue
	for rows.Next() {
		var m analytics.MonthlyRevenue
		if err := rows.Scan(&m.Month, &m.OrderCount, &m.NetAmount); err != nil {
			return nil, fmt.Errorf("failed to scan monthly revenue: %w", err)
		}
		result = append(result, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// TopProducts returns the best sellers by quantity across non-cancelled
// orders in the window.
func (r *PostgresAnalyticsRepository) TopProducts(ctx context.Context, filter analytics.ReportFilter, limit int) ([]analytics.TopProduct, error) {
	builder := r.sb.Select(
		"oi.product_id",
		"oi.product_name",
		"SUM(oi.quantity)",
	).
		From("order_items oi").
		Join("orders o ON o.id = oi.order_id").
		Where(sq.NotEq{"o.status": order.StatusCancelled.String()}).
		GroupBy("oi.product_id", "oi.product_name").
		OrderBy("SUM(oi.quantity) DESC").
		Limit(uint64(limit))
	builder = applyWindow(builder, filter, "o.created_at")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build top products query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query top products: %w", err)
	}
	defer rows.Close()

	var result []analytics.TopProduct
	for rows.Next() {
		var p analytics.TopProduct
		if err := rows.Scan(&p.ProductID, &p.ProductName, &p.QuantitySold); err != nil {
			return nil, fmt.Errorf("failed to scan top product: %w", err)
		}
		result = append(result, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
