package redis

import (
	"context"
	"fmt"
	"os"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/viper"
)

// Client wraps the Redis connection used for cart storage.
type Client struct {
	rdb *redis.Client
}

// RDB returns the underlying Redis client.
func (c *Client) RDB() *redis.Client {
	return c.rdb
}

// Close closes the connection for graceful shutdown.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// MustNewClient creates a new Redis client and verifies connectivity.
func MustNewClient() *Client {
	addr := fmt.Sprintf("%s:%s",
		viper.GetString("redis.host"),
		viper.GetString("redis.port"),
	)

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("STOREFRONT_REDIS_PASSWORD"),
		DB:       viper.GetInt("redis.db"),
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		panic(fmt.Sprintf("failed to connect to redis: %v", err))
	}

	return &Client{rdb: rdb}
}
