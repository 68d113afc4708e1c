package database

import (
	"context"
	"errors"
	"fmt"

	"dealer-assistant/internal/common/config"
)

// Connections holds the backing stores the configuration asks for. Unused ones stay nil.
type Connections struct {
	Postgres      *PostgresClient
	Redis         *RedisClient
	Elasticsearch *ElasticsearchClient
}

// Open connects the stores required by cfg. Postgres is always opened because financing
// applications live there regardless of the inventory source.
func Open(cfg *config.Config) (*Connections, error) {
	conns := &Connections{}

	pg, err := NewPostgres(cfg.Database.Postgres)
	if err != nil {
		return nil, err
	}
	conns.Postgres = pg

	if cfg.Assistant.InventorySource == config.InventorySourceElasticsearch {
		es, err := NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			_ = conns.Close()
			return nil, err
		}
		conns.Elasticsearch = es
	}

	if cfg.NeedsRedis() {
		conns.Redis = NewRedis(cfg.Database.Redis)
	}
	return conns, nil
}

// Ping checks every opened store and reports all failures.
func (c *Connections) Ping(ctx context.Context) error {
	var errs []error
	if c.Postgres != nil {
		errs = append(errs, c.Postgres.Ping(ctx))
	}
	if c.Redis != nil {
		errs = append(errs, c.Redis.Ping(ctx))
	}
	if c.Elasticsearch != nil {
		errs = append(errs, c.Elasticsearch.Ping(ctx))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("readiness check failed: %w", err)
	}
	return nil
}

func (c *Connections) Close() error {
	return errors.Join(c.Postgres.Close(), c.Redis.Close())
}
