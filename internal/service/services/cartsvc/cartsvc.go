package cartsvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"github.com/crackersmart/storefront/internal/dal/interfaces/iproductrepo"
	"github.com/crackersmart/storefront/internal/dal/postgres"
	"github.com/crackersmart/storefront/internal/dal/redis"
	productrepo "github.com/crackersmart/storefront/internal/dal/repositories/product/postgres"
	"github.com/crackersmart/storefront/internal/service/models/cart"
	"github.com/spf13/viper"
)

var ErrProductUnavailable = errors.New("product is not available")

// CartService keeps each user's cart/quotation in Redis. The cart itself is
// a plain value type; this service only loads, mutates and stores it.
type CartService struct {
	redisClient *redis.Client
	productRepo iproductrepo.IProductRepository
	ttl         time.Duration
}

// option is a function that configures the CartService.
type option func(*CartService)

// MustNewCartService creates a new CartService.
func MustNewCartService(opts ...option) *CartService {
	s := &CartService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.redisClient == nil {
		panic("cartsvc: redis client not configured")
	}
	if s.productRepo == nil {
		panic("cartsvc: product repository not configured")
	}
	if s.ttl == 0 {
		ttlHours := viper.GetInt("redis.cart_ttl_hours")
		if ttlHours == 0 {
			ttlHours = 72
		}
		s.ttl = time.Duration(ttlHours) * time.Hour
	}

	return s
}

// WithRedisClient sets the Redis client for cart storage.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithRedisClient(client *redis.Client) option {
	return func(s *CartService) {
		s.redisClient = client
	}
}

// WithPostgresClient wires the product repository used for price snapshots.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *CartService) {
		s.productRepo = productrepo.NewPostgresProductRepository(pgClient.Pool())
	}
}

// WithProductRepository injects the product repository directly. Used by tests.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithProductRepository(repo iproductrepo.IProductRepository) option {
	return func(s *CartService) {
		s.productRepo = repo
	}
}

func cartKey(userID string) string {
	return "cart:" + userID
}

// Get loads a user's cart. A missing key is an empty cart, not an error.
func (s *CartService) Get(ctx context.Context, userID string) (*cart.Cart, error) {
	payload, err := s.redisClient.RDB().Get(ctx, cartKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return &cart.Cart{}, nil
		}

		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var c cart.Cart
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}

	return &c, nil
}

// AddItem merges a quantity delta for a product into the user's cart and
// stores the result.
func (s *CartService) AddItem(ctx context.Context, userID string, productID int64, delta int) (*cart.Cart, error) {
	c, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !p.Active {
		return nil, ErrProductUnavailable
	}

	c.Add(*p, delta)

	if err := s.save(ctx, userID, c); err != nil {
		return nil, err
	}

	return c, nil
}

// SetQuantity pins a product's quantity in the user's cart.
func (s *CartService) SetQuantity(ctx context.Context, userID string, productID int64, qty int) (*cart.Cart, error) {
	c, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	c.SetQuantity(productID, qty)

	if err := s.save(ctx, userID, c); err != nil {
		return nil, err
	}

	return c, nil
}

// Clear empties the user's cart, typically after an order is placed.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	if err := s.redisClient.RDB().Del(ctx, cartKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}

func (s *CartService) save(ctx context.Context, userID string, c *cart.Cart) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	if err := s.redisClient.RDB().Set(ctx, cartKey(userID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store cart: %w", err)
	}

	return nil
}
