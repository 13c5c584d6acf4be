package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/crackersmart/storefront/internal/dal/postgres"
	"github.com/crackersmart/storefront/internal/service/models/category"
)

// PostgresCategoryRepository is the Postgres category repository.
type PostgresCategoryRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresCategoryRepository creates a new Postgres category repository.
func NewPostgresCategoryRepository(conn postgres.Conn) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert stores a new category and returns it with the generated id.
func (r *PostgresCategoryRepository) Insert(ctx context.Context, c category.Category) (*category.Category, error) {
	now := time.Now()
	query, args, err := r.sb.Insert("categories").
		Columns("name", "slug", "active", "created_at", "updated_at").
		Values(c.Name, c.Slug, c.Active, now, now).
		Suffix("RETURNING id, name, slug, active, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert category query: %w", err)
	}

	var inserted category.Category
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&inserted.ID,
		&inserted.Name,
		&inserted.Slug,
		&inserted.Active,
		&inserted.CreatedAt,
		&inserted.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}

	return &inserted, nil
}

// List returns categories ordered by name.
func (r *PostgresCategoryRepository) List(ctx context.Context, activeOnly bool) ([]category.Category, error) {
	builder := r.sb.Select("id", "name", "slug", "active", "created_at", "updated_at").
		From("categories").
		OrderBy("name")

	if activeOnly {
		builder = builder.Where(sq.Eq{"active": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list categories query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var result []category.Category
	for rows.Next() {
		var c category.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		result = append(result, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
