package catalogsvc

import (
	"context"
	"fmt"

	"github.com/crackersmart/storefront/internal/dal/interfaces/icategoryrepo"
	"github.com/crackersmart/storefront/internal/dal/interfaces/iproductrepo"
	"github.com/crackersmart/storefront/internal/dal/postgres"
	categoryrepo "github.com/crackersmart/storefront/internal/dal/repositories/category/postgres"
	productrepo "github.com/crackersmart/storefront/internal/dal/repositories/product/postgres"
	"github.com/crackersmart/storefront/internal/service/models/category"
	"github.com/crackersmart/storefront/internal/service/models/product"
)

// CatalogService serves product and category reads for the storefront and
// writes for the admin console.
type CatalogService struct {
	productRepo  iproductrepo.IProductRepository
	categoryRepo icategoryrepo.ICategoryRepository
}

// option is a function that configures the CatalogService.
type option func(*CatalogService)

// MustNewCatalogService creates a new CatalogService.
func MustNewCatalogService(opts ...option) *CatalogService {
	s := &CatalogService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.productRepo == nil || s.categoryRepo == nil {
		panic("catalogsvc: repositories not configured")
	}

	return s
}

// WithPostgresClient wires the service to Postgres-backed repositories.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *CatalogService) {
		s.productRepo = productrepo.NewPostgresProductRepository(pgClient.Pool())
		s.categoryRepo = categoryrepo.NewPostgresCategoryRepository(pgClient.Pool())
	}
}

// WithRepositories injects repositories directly. Used by tests.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithRepositories(productRepo iproductrepo.IProductRepository, categoryRepo icategoryrepo.ICategoryRepository) option {
	return func(s *CatalogService) {
		s.productRepo = productRepo
		s.categoryRepo = categoryRepo
	}
}

// ListProducts retrieves products based on filter criteria.
func (s *CatalogService) ListProducts(ctx context.Context, filter *product.QueryProductsModel) ([]product.Product, error) {
	return s.productRepo.Query(ctx, filter)
}

// GetProduct fetches one product by id.
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*product.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

// CreateProduct stores a new catalog product.
func (s *CatalogService) CreateProduct(ctx context.Context, p product.Product) (*product.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	return s.productRepo.Insert(ctx, p)
}

// UpdateProduct overwrites a product's catalog fields, including stock for
// restocks.
func (s *CatalogService) UpdateProduct(ctx context.Context, p product.Product) (*product.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, p.ID)
}

// ListCategories returns categories for navigation.
func (s *CatalogService) ListCategories(ctx context.Context, activeOnly bool) ([]category.Category, error) {
	return s.categoryRepo.List(ctx, activeOnly)
}

// CreateCategory stores a new category.
func (s *CatalogService) CreateCategory(ctx context.Context, c category.Category) (*category.Category, error) {
	if c.Name == "" {
		return nil, fmt.Errorf("category name is required")
	}

	return s.categoryRepo.Insert(ctx, c)
}

func validateProduct(p product.Product) error {
	if p.Name == "" {
		return fmt.Errorf("product name is required")
	}
	if p.Price < 0 || p.OfferPrice < 0 {
		return fmt.Errorf("product prices must be non-negative")
	}
	if p.Stock < 0 {
		return fmt.Errorf("product stock must be non-negative")
	}

	return nil
}
