package iproductrepo

import (
	"context"

	"github.com/crackersmart/storefront/internal/service/models/product"
)

type IProductRepository interface {
	Insert(ctx context.Context, p product.Product) (*product.Product, error)
	Update(ctx context.Context, p product.Product) error
	GetByID(ctx context.Context, id int64) (*product.Product, error)
	Query(ctx context.Context, filter *product.QueryProductsModel) ([]product.Product, error)

	// UpdateStock writes an absolute stock value for a product.
	UpdateStock(ctx context.Context, id int64, stock int) error
}
