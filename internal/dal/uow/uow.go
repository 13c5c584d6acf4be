package uow

import (
	"context"

	"github.com/crackersmart/storefront/internal/dal/interfaces/iorderitemrepo"
	"github.com/crackersmart/storefront/internal/dal/interfaces/iorderrepo"
	"github.com/crackersmart/storefront/internal/dal/interfaces/iproductrepo"
	"github.com/crackersmart/storefront/internal/dal/postgres"
	orderrepo "github.com/crackersmart/storefront/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/crackersmart/storefront/internal/dal/repositories/orderitem/postgres"
	productrepo "github.com/crackersmart/storefront/internal/dal/repositories/product/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// unitOfWork groups the repositories touched by order placement behind one
// database transaction. Before Begin the repositories run directly against
// the pool; after Begin they share the transaction until Commit or Rollback.
type unitOfWork struct {
	pool          *pgxpool.Pool
	tx            pgx.Tx
	orderRepo     iorderrepo.IOrderRepository
	orderItemRepo iorderitemrepo.IOrderItemRepository
	productRepo   iproductrepo.IProductRepository
}

//goland:noinspection GoExportedFuncWithUnexportedType
func NewUnitOfWork(client *postgres.Client) *unitOfWork {
	pool := client.Pool()

	return &unitOfWork{
		pool:          pool,
		orderRepo:     orderrepo.NewPostgresOrderRepository(pool),
		orderItemRepo: orderitemrepo.NewPostgresOrderItemRepository(pool),
		productRepo:   productrepo.NewPostgresProductRepository(pool),
	}
}

func (u *unitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *unitOfWork) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return u.orderItemRepo
}

func (u *unitOfWork) ProductRepository() iproductrepo.IProductRepository {
	return u.productRepo
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.orderRepo = orderrepo.NewPostgresOrderRepository(tx)
	u.orderItemRepo = orderitemrepo.NewPostgresOrderItemRepository(tx)
	u.productRepo = productrepo.NewPostgresProductRepository(tx)

	return nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Commit(ctx)
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Rollback(ctx)
}
