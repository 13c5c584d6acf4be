package iorderitemrepo

import (
	"context"

	"github.com/crackersmart/storefront/internal/service/models/orderitem"
)

type IOrderItemRepository interface {
	BulkInsert(ctx context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error)
	DeleteByOrderID(ctx context.Context, orderID int64) error
	Query(ctx context.Context, filter *orderitem.QueryOrderItemsModel) ([]orderitem.OrderItem, error)
}
