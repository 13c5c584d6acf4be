package icategoryrepo

import (
	"context"

	"github.com/crackersmart/storefront/internal/service/models/category"
)

type ICategoryRepository interface {
	Insert(ctx context.Context, c category.Category) (*category.Category, error)
	List(ctx context.Context, activeOnly bool) ([]category.Category, error)
}
