package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/crackersmart/storefront/internal/dal/postgres"
	"github.com/crackersmart/storefront/internal/service/models/order"
	"github.com/crackersmart/storefront/internal/service/models/orderitem"
	"github.com/jackc/pgx/v5"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderDal represents the order data access layer model.
type OrderDal struct {
	Id            int64     `db:"id"`
	Code          string    `db:"code"`
	UserId        string    `db:"user_id"`
	CustomerName  string    `db:"customer_name"`
	Email         string    `db:"email"`
	Phone         string    `db:"phone"`
	AltPhone      string    `db:"alt_phone"`
	Address       string    `db:"address"`
	City          string    `db:"city"`
	State         string    `db:"state"`
	Pincode       string    `db:"pincode"`
	Status        string    `db:"status"`
	PaymentMethod string    `db:"payment_method"`
	ReferredBy    string    `db:"referred_by"`
	TotalAmount   int64     `db:"total_amount"`
	DiscountAmt   int64     `db:"discount_amt"`
	DiscountPct   *float64  `db:"discount_pct"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}
	method, err := order.ParsePaymentMethod(o.PaymentMethod)
	if err != nil {
		return nil, err
	}

	return &order.Order{
		ID:            o.Id,
		Code:          o.Code,
		UserID:        o.UserId,
		CustomerName:  o.CustomerName,
		Email:         o.Email,
		Phone:         o.Phone,
		AltPhone:      o.AltPhone,
		Address:       o.Address,
		City:          o.City,
		State:         o.State,
		Pincode:       o.Pincode,
		Status:        status,
		PaymentMethod: method,
		ReferredBy:    o.ReferredBy,
		TotalAmount:   o.TotalAmount,
		DiscountAmt:   o.DiscountAmt,
		DiscountPct:   o.DiscountPct,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		Items:         []orderitem.OrderItem{}, // populated separately
	}, nil
}

// OrderDalFromModel converts the service layer Order model to OrderDal.
func OrderDalFromModel(o *order.Order) *OrderDal {
	return &OrderDal{
		Id:            o.ID,
		Code:          o.Code,
		UserId:        o.UserID,
		CustomerName:  o.CustomerName,
		Email:         o.Email,
		Phone:         o.Phone,
		AltPhone:      o.AltPhone,
		Address:       o.Address,
		City:          o.City,
		State:         o.State,
		Pincode:       o.Pincode,
		Status:        o.Status.String(),
		PaymentMethod: o.PaymentMethod.String(),
		ReferredBy:    o.ReferredBy,
		TotalAmount:   o.TotalAmount,
		DiscountAmt:   o.DiscountAmt,
		DiscountPct:   o.DiscountPct,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// PostgresOrderRepository is the Postgres order repository.
type PostgresOrderRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn postgres.Conn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var orderColumns = []string{
	"id",
	"code",
	"user_id",
	"customer_name",
	"email",
	"phone",
	"alt_phone",
	"address",
	"city",
	"state",
	"pincode",
	"status",
	"payment_method",
	"referred_by",
	"total_amount",
	"discount_amt",
	"discount_pct",
	"created_at",
	"updated_at",
}

func scanOrder(row pgx.Row) (*order.Order, error) {
	var dal OrderDal
	err := row.Scan(
		&dal.Id,
		&dal.Code,
		&dal.UserId,
		&dal.CustomerName,
		&dal.Email,
		&dal.Phone,
		&dal.AltPhone,
		&dal.Address,
		&dal.City,
		&dal.State,
		&dal.Pincode,
		&dal.Status,
		&dal.PaymentMethod,
		&dal.ReferredBy,
		&dal.TotalAmount,
		&dal.DiscountAmt,
		&dal.DiscountPct,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return dal.ToModel()
}

// Insert stores a new order row and returns it with the generated id.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (*order.Order, error) {
	dal := OrderDalFromModel(&o)

	query, args, err := r.sb.Insert("orders").
		Columns(
			"code",
			"user_id",
			"customer_name",
			"email",
			"phone",
			"alt_phone",
			"address",
			"city",
			"state",
			"pincode",
			"status",
			"payment_method",
			"referred_by",
			"total_amount",
			"discount_amt",
			"discount_pct",
			"created_at",
			"updated_at",
		).
		Values(
			dal.Code,
			dal.UserId,
			dal.CustomerName,
			dal.Email,
			dal.Phone,
			dal.AltPhone,
			dal.Address,
			dal.City,
			dal.State,
			dal.Pincode,
			dal.Status,
			dal.PaymentMethod,
			dal.ReferredBy,
			dal.TotalAmount,
			dal.DiscountAmt,
			dal.DiscountPct,
			dal.CreatedAt,
			dal.UpdatedAt,
		).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert order query: %w", err)
	}

	inserted, err := scanOrder(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}
	inserted.Items = append(inserted.Items, o.Items...)

	return inserted, nil
}

// Update overwrites the scalar fields of an order keyed by its id.
func (r *PostgresOrderRepository) Update(ctx context.Context, o order.Order) error {
	dal := OrderDalFromModel(&o)

	query, args, err := r.sb.Update("orders").
		Set("customer_name", dal.CustomerName).
		Set("email", dal.Email).
		Set("phone", dal.Phone).
		Set("alt_phone", dal.AltPhone).
		Set("address", dal.Address).
		Set("city", dal.City).
		Set("state", dal.State).
		Set("pincode", dal.Pincode).
		Set("status", dal.Status).
		Set("payment_method", dal.PaymentMethod).
		Set("referred_by", dal.ReferredBy).
		Set("total_amount", dal.TotalAmount).
		Set("discount_amt", dal.DiscountAmt).
		Set("discount_pct", dal.DiscountPct).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": dal.Id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update order query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// GetByID fetches a single order by id.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	query, args, err := r.sb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get order query: %w", err)
	}

	o, err := scanOrder(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}

		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return o, nil
}

// Query retrieves orders based on filter criteria, newest first.
func (r *PostgresOrderRepository) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	builder := r.sb.Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC")

	if len(filter.Ids) > 0 {
		builder = builder.Where(sq.Eq{"id": filter.Ids})
	}
	if len(filter.UserIds) > 0 {
		builder = builder.Where(sq.Eq{"user_id": filter.UserIds})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = s.String()
		}
		builder = builder.Where(sq.Eq{"status": statuses})
	}
	if filter.Code != "" {
		builder = builder.Where(sq.Eq{"code": filter.Code})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query orders query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		model, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

func columnList() string {
	list := orderColumns[0]
	for _, col := range orderColumns[1:] {
		list += ", " + col
	}

	return list
}
