package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/crackersmart/storefront/internal/dal/postgres"
	"github.com/crackersmart/storefront/internal/service/models/vendormodel"
	"github.com/jackc/pgx/v5"
)

var ErrVendorNotFound = errors.New("vendor not found")

// PostgresVendorRepository is the Postgres vendor and vendor transaction
// repository.
type PostgresVendorRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresVendorRepository creates a new Postgres vendor repository.
func NewPostgresVendorRepository(conn postgres.Conn) *PostgresVendorRepository {
	return &PostgresVendorRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert stores a new vendor and returns it with the generated id.
func (r *PostgresVendorRepository) Insert(ctx context.Context, v vendor.Vendor) (*vendor.Vendor, error) {
	now := time.Now()
	query, args, err := r.sb.Insert("vendors").
		Columns("name", "phone", "gstin", "notes", "created_at", "updated_at").
		Values(v.Name, v.Phone, v.GSTIN, v.Notes, now, now).
		Suffix("RETURNING id, name, phone, gstin, notes, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert vendor query: %w", err)
	}

	var inserted vendor.Vendor
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&inserted.ID,
		&inserted.Name,
		&inserted.Phone,
		&inserted.GSTIN,
		&inserted.Notes,
		&inserted.CreatedAt,
		&inserted.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert vendor: %w", err)
	}

	return &inserted, nil
}

// GetByID fetches a single vendor by id.
func (r *PostgresVendorRepository) GetByID(ctx context.Context, id int64) (*vendor.Vendor, error) {
	query, args, err := r.sb.Select("id", "name", "phone", "gstin", "notes", "created_at", "updated_at").
		From("vendors").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get vendor query: %w", err)
	}

	var v vendor.Vendor
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&v.ID,
		&v.Name,
		&v.Phone,
		&v.GSTIN,
		&v.Notes,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVendorNotFound
		}

		return nil, fmt.Errorf("failed to get vendor: %w", err)
	}

	return &v, nil
}

// List returns all vendors ordered by name.
func (r *PostgresVendorRepository) List(ctx context.Context) ([]vendor.Vendor, error) {
	query, args, err := r.sb.Select("id", "name", "phone", "gstin", "notes", "created_at", "updated_at").
		From("vendors").
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list vendors query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	defer rows.Close()

	var result []vendor.Vendor
	for rows.Next() {
		var v vendor.Vendor
		if err := rows.Scan(&v.ID, &v.Name, &v.Phone, &v.GSTIN, &v.Notes, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vendor: %w", err)
		}
		result = append(result, v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// InsertTransaction stores one ledger movement for a vendor.
func (r *PostgresVendorRepository) InsertTransaction(ctx context.Context, t vendor.Transaction) (*vendor.Transaction, error) {
	query, args, err := r.sb.Insert("vendor_transactions").
		Columns("vendor_id", "kind", "amount", "occurred_at", "note", "created_at").
		Values(t.VendorID, t.Kind.String(), t.Amount, t.OccurredAt, t.Note, time.Now()).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert vendor transaction query: %w", err)
	}

	inserted := t
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&inserted.ID, &inserted.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert vendor transaction: %w", err)
	}

	return &inserted, nil
}

// QueryTransactions returns a vendor's transactions oldest first, the order
// the ledger reducer folds them in. Ties on occurred_at break by insert id.
func (r *PostgresVendorRepository) QueryTransactions(ctx context.Context, vendorID int64) ([]vendor.Transaction, error) {
	query, args, err := r.sb.Select("id", "vendor_id", "kind", "amount", "occurred_at", "note", "created_at").
		From("vendor_transactions").
		Where(sq.Eq{"vendor_id": vendorID}).
		OrderBy("occurred_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query vendor transactions query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query vendor transactions: %w", err)
	}
	defer rows.Close()

	var result []vendor.Transaction
	for rows.Next() {
		var (
			t    vendor.Transaction
			kind string
		)
		if err := rows.Scan(&t.ID, &t.VendorID, &kind, &t.Amount, &t.OccurredAt, &t.Note, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vendor transaction: %w", err)
		}
		parsed, err := vendor.ParseTransactionKind(kind)
		if err != nil {
			return nil, fmt.Errorf("failed to parse vendor transaction kind: %w", err)
		}
		t.Kind = parsed
		result = append(result, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
