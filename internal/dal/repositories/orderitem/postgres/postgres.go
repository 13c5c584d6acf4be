package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/crackersmart/storefront/internal/dal/postgres"
	"github.com/crackersmart/storefront/internal/service/models/orderitem"
	"github.com/jackc/pgx/v5"
)

// OrderItemDal represents the order item data access layer model.
type OrderItemDal struct {
	Id          int64     `db:"id"`
	OrderId     int64     `db:"order_id"`
	ProductId   int64     `db:"product_id"`
	ProductName string    `db:"product_name"`
	Quantity    int       `db:"quantity"`
	Price       int64     `db:"price"`
	TotalPrice  int64     `db:"total_price"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// ToModel converts OrderItemDal to the service layer OrderItem model.
func (oi *OrderItemDal) ToModel() *orderitem.OrderItem {
	return &orderitem.OrderItem{
		ID:          oi.Id,
		OrderID:     oi.OrderId,
		ProductID:   oi.ProductId,
		ProductName: oi.ProductName,
		Quantity:    oi.Quantity,
		Price:       oi.Price,
		TotalPrice:  oi.TotalPrice,
		CreatedAt:   oi.CreatedAt,
		UpdatedAt:   oi.UpdatedAt,
	}
}

// PostgresOrderItemRepository is the Postgres order item repository.
type PostgresOrderItemRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderItemRepository creates a new Postgres order item repository.
func NewPostgresOrderItemRepository(conn postgres.Conn) *PostgresOrderItemRepository {
	return &PostgresOrderItemRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanOrderItem(row pgx.Row) (*orderitem.OrderItem, error) {
	var dal OrderItemDal
	err := row.Scan(
		&dal.Id,
		&dal.OrderId,
		&dal.ProductId,
		&dal.ProductName,
		&dal.Quantity,
		&dal.Price,
		&dal.TotalPrice,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return dal.ToModel(), nil
}

// BulkInsert inserts multiple order items and returns them with generated ids.
func (r *PostgresOrderItemRepository) BulkInsert(
	ctx context.Context,
	items []orderitem.OrderItem,
) ([]orderitem.OrderItem, error) {
	if len(items) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	now := time.Now()
	builder := r.sb.Insert("order_items").
		Columns(
			"order_id",
			"product_id",
			"product_name",
			"quantity",
			"price",
			"total_price",
			"created_at",
			"updated_at",
		)

	for _, item := range items {
		createdAt := item.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		builder = builder.Values(
			item.OrderID,
			item.ProductID,
			item.ProductName,
			item.Quantity,
			item.Price,
			item.TotalPrice,
			createdAt,
			now,
		)
	}

	query, args, err := builder.
		Suffix("RETURNING id, order_id, product_id, product_name, quantity, price, total_price, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build bulk insert order items query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk insert order items: %w", err)
	}
	defer rows.Close()

	result := make([]orderitem.OrderItem, 0, len(items))
	for rows.Next() {
		model, err := scanOrderItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// DeleteByOrderID removes every line item belonging to an order.
func (r *PostgresOrderItemRepository) DeleteByOrderID(ctx context.Context, orderID int64) error {
	query, args, err := r.sb.Delete("order_items").
		Where(sq.Eq{"order_id": orderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete order items query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete order items: %w", err)
	}

	return nil
}

// Query retrieves order items based on filter criteria.
func (r *PostgresOrderItemRepository) Query(
	ctx context.Context,
	filter *orderitem.QueryOrderItemsModel,
) ([]orderitem.OrderItem, error) {
	builder := r.sb.Select(
		"id",
		"order_id",
		"product_id",
		"product_name",
		"quantity",
		"price",
		"total_price",
		"created_at",
		"updated_at",
	).From("order_items").OrderBy("id")

	if len(filter.Ids) > 0 {
		builder = builder.Where(sq.Eq{"id": filter.Ids})
	}
	if len(filter.OrderIds) > 0 {
		builder = builder.Where(sq.Eq{"order_id": filter.OrderIds})
	}
	if len(filter.ProductIds) > 0 {
		builder = builder.Where(sq.Eq{"product_id": filter.ProductIds})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query order items query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var result []orderitem.OrderItem
	for rows.Next() {
		model, err := scanOrderItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
