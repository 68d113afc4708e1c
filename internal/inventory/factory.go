package inventory

import (
	"fmt"

	"dealer-assistant/internal/common/config"
	"dealer-assistant/internal/common/database"
	"dealer-assistant/internal/common/logger"
)

// FromConfig picks the configured source and wraps it in the Redis cache when a cache TTL is set.
func FromConfig(cfg config.AssistantConfig, conns *database.Connections, log logger.Logger) (Source, error) {
	var src Source
	switch cfg.InventorySource {
	case config.InventorySourcePostgres:
		if conns.Postgres == nil {
			return nil, fmt.Errorf("postgres inventory requires a postgres connection")
		}
		src = NewPostgresInventory(conns.Postgres.DB)
	case config.InventorySourceElasticsearch:
		if conns.Elasticsearch == nil {
			return nil, fmt.Errorf("elasticsearch inventory requires an elasticsearch client")
		}
		src = NewSearchInventory(conns.Elasticsearch.Client, conns.Elasticsearch.Index)
	default:
		return nil, fmt.Errorf("unknown inventory source %q", cfg.InventorySource)
	}

	if ttl := cfg.InventoryCacheTTLDuration(); ttl > 0 {
		if conns.Redis == nil {
			return nil, fmt.Errorf("inventory cache requires a redis connection")
		}
		src = NewCachedInventory(src, conns.Redis.Client, ttl, log)
	}
	return src, nil
}
