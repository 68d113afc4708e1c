// internal/common/database/redis.go
package database

import (
	"context"
	"fmt"
	"time"

	"dealer-assistant/internal/common/config"

	"github.com/redis/go-redis/v9"
)

// RedisClient backs the conversation session store and the inventory cache.
type RedisClient struct {
	Client *redis.Client
}

// NewRedis creates a client. Connections are established lazily.
func NewRedis(cfg config.RedisConfig) *RedisClient {
	return &RedisClient{Client: redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})}
}

func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (c *RedisClient) Close() error {
	if c == nil || c.Client == nil {
		return nil
	}
	return c.Client.Close()
}
