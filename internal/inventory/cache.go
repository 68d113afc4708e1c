package inventory

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"dealer-assistant/internal/assistant/query"
	"dealer-assistant/internal/common/logger"
	"dealer-assistant/internal/models"
)

// CachedInventory serves repeated queries from Redis for ttl. Cache failures are logged and
// fall through to the wrapped source.
type CachedInventory struct {
	inner  Source
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedInventory(inner Source, client *redis.Client, ttl time.Duration, log logger.Logger) *CachedInventory {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &CachedInventory{inner: inner, client: client, ttl: ttl, logger: log}
}

func findKey(q query.Query) string  { return "inventory:find:" + q.Fingerprint() }
func countKey(q query.Query) string { return "inventory:count:" + q.Fingerprint() }

func (c *CachedInventory) Find(ctx context.Context, q query.Query) ([]models.VehicleSummary, error) {
	key := findKey(q)
	if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var vehicles []models.VehicleSummary
		if err := json.Unmarshal(raw, &vehicles); err == nil {
			return vehicles, nil
		}
	} else if err != redis.Nil {
		c.cacheError("get", key, err)
	}

	vehicles, err := c.inner.Find(ctx, q)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(vehicles); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.cacheError("set", key, err)
		}
	}
	return vehicles, nil
}

func (c *CachedInventory) Count(ctx context.Context, q query.Query) (int, error) {
	key := countKey(q)
	if raw, err := c.client.Get(ctx, key).Result(); err == nil {
		if n, err := strconv.Atoi(raw); err == nil {
			return n, nil
		}
	} else if err != redis.Nil {
		c.cacheError("get", key, err)
	}

	n, err := c.inner.Count(ctx, q)
	if err != nil {
		return 0, err
	}
	if err := c.client.Set(ctx, key, n, c.ttl).Err(); err != nil {
		c.cacheError("set", key, err)
	}
	return n, nil
}

func (c *CachedInventory) cacheError(op, key string, err error) {
	c.logger.Debug("inventory cache unavailable", map[string]interface{}{
		"op":    op,
		"key":   key,
		"error": err,
	})
}
