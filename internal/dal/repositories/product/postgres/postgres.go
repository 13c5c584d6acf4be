package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/crackersmart/storefront/internal/dal/postgres"
	"github.com/crackersmart/storefront/internal/service/models/product"
	"github.com/jackc/pgx/v5"
)

var ErrProductNotFound = errors.New("product not found")

// ProductDal represents the product data access layer model.
type ProductDal struct {
	Id          int64     `db:"id"`
	CategoryId  int64     `db:"category_id"`
	Name        string    `db:"name"`
	Slug        string    `db:"slug"`
	Description string    `db:"description"`
	ImageUrl    string    `db:"image_url"`
	Price       int64     `db:"price"`
	OfferPrice  int64     `db:"offer_price"`
	Stock       int       `db:"stock"`
	Active      bool      `db:"active"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// ToModel converts ProductDal to the service layer Product model.
func (p *ProductDal) ToModel() *product.Product {
	return &product.Product{
		ID:          p.Id,
		CategoryID:  p.CategoryId,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		ImageURL:    p.ImageUrl,
		Price:       p.Price,
		OfferPrice:  p.OfferPrice,
		Stock:       p.Stock,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// PostgresProductRepository is the Postgres product repository.
type PostgresProductRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresProductRepository creates a new Postgres product repository.
func NewPostgresProductRepository(conn postgres.Conn) *PostgresProductRepository {
	return &PostgresProductRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var productColumns = []string{
	"id",
	"category_id",
	"name",
	"slug",
	"description",
	"image_url",
	"price",
	"offer_price",
	"stock",
	"active",
	"created_at",
	"updated_at",
}

func scanProduct(row pgx.Row) (*product.Product, error) {
	var dal ProductDal
	err := row.Scan(
		&dal.Id,
		&dal.CategoryId,
		&dal.Name,
		&dal.Slug,
		&dal.Description,
		&dal.ImageUrl,
		&dal.Price,
		&dal.OfferPrice,
		&dal.Stock,
		&dal.Active,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return dal.ToModel(), nil
}

// Insert stores a new product and returns it with the generated id.
func (r *PostgresProductRepository) Insert(ctx context.Context, p product.Product) (*product.Product, error) {
	now := time.Now()
	query, args, err := r.sb.Insert("products").
		Columns(
			"category_id",
			"name",
			"slug",
			"description",
			"image_url",
			"price",
			"offer_price",
			"stock",
			"active",
			"created_at",
			"updated_at",
		).
		Values(
			p.CategoryID,
			p.Name,
			p.Slug,
			p.Description,
			p.ImageURL,
			p.Price,
			p.OfferPrice,
			p.Stock,
			p.Active,
			now,
			now,
		).
		Suffix("RETURNING id, category_id, name, slug, description, image_url, price, offer_price, stock, active, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert product query: %w", err)
	}

	inserted, err := scanProduct(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	return inserted, nil
}

// Update overwrites a product's catalog fields and stock keyed by its id.
func (r *PostgresProductRepository) Update(ctx context.Context, p product.Product) error {
	query, args, err := r.sb.Update("products").
		Set("category_id", p.CategoryID).
		Set("name", p.Name).
		Set("slug", p.Slug).
		Set("description", p.Description).
		Set("image_url", p.ImageURL).
		Set("price", p.Price).
		Set("offer_price", p.OfferPrice).
		Set("stock", p.Stock).
		Set("active", p.Active).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update product query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

// GetByID fetches a single product by id.
func (r *PostgresProductRepository) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	query, args, err := r.sb.Select(productColumns...).
		From("products").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get product query: %w", err)
	}

	p, err := scanProduct(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}

		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return p, nil
}

// Query retrieves products based on filter criteria.
func (r *PostgresProductRepository) Query(ctx context.Context, filter *product.QueryProductsModel) ([]product.Product, error) {
	builder := r.sb.Select(productColumns...).
		From("products").
		OrderBy("name")

	if len(filter.Ids) > 0 {
		builder = builder.Where(sq.Eq{"id": filter.Ids})
	}
	if len(filter.CategoryIds) > 0 {
		builder = builder.Where(sq.Eq{"category_id": filter.CategoryIds})
	}
	if filter.ActiveOnly {
		builder = builder.Where(sq.Eq{"active": true})
	}
	if filter.Search != "" {
		builder = builder.Where(sq.ILike{"name": "%" + filter.Search + "%"})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query products query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var result []product.Product
	for rows.Next() {
		model, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// UpdateStock writes an absolute stock value for a product. Stock is clamped
// at zero by the callers; the column itself also refuses negatives.
func (r *PostgresProductRepository) UpdateStock(ctx context.Context, id int64, stock int) error {
	query, args, err := r.sb.Update("products").
		Set("stock", stock).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update stock query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}
