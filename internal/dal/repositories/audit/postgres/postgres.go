package postgresrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/crackersmart/storefront/internal/dal/postgres"
	"github.com/crackersmart/storefront/internal/service/models/audit"
)

// PostgresAuditRepository is the Postgres order audit repository. The table
// is append-only; no update or delete statements exist here.
type PostgresAuditRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresAuditRepository creates a new Postgres audit repository.
func NewPostgresAuditRepository(conn postgres.Conn) *PostgresAuditRepository {
	return &PostgresAuditRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert appends one audit record with the changes serialized as JSONB.
func (r *PostgresAuditRepository) Insert(ctx context.Context, a audit.Audit) (*audit.Audit, error) {
	changes, err := json.Marshal(a.Changes)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal audit changes: %w", err)
	}

	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query, args, err := r.sb.Insert("order_audits").
		Columns("order_id", "changed_by", "changes", "created_at").
		Values(a.OrderID, a.ChangedBy, changes, createdAt).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert audit query: %w", err)
	}

	inserted := a
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&inserted.ID, &inserted.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert audit record: %w", err)
	}

	return &inserted, nil
}

// QueryByOrderID returns an order's audit history, newest first.
func (r *PostgresAuditRepository) QueryByOrderID(ctx context.Context, orderID int64) ([]audit.Audit, error) {
	query, args, err := r.sb.Select("id", "order_id", "changed_by", "changes", "created_at").
		From("order_audits").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query audits query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audits: %w", err)
	}
	defer rows.Close()

	var result []audit.Audit
	for rows.Next() {
		var (
			a       audit.Audit
			changes []byte
		)
		if err := rows.Scan(&a.ID, &a.OrderID, &a.ChangedBy, &changes, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit record: %w", err)
		}
		if err := json.Unmarshal(changes, &a.Changes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal audit changes: %w", err)
		}
		result = append(result, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
