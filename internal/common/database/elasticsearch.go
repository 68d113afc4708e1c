// internal/common/database/elasticsearch.go
package database

import (
	"context"
	"fmt"

	"dealer-assistant/internal/common/config"

	"github.com/elastic/go-elasticsearch/v8"
)

// ElasticsearchClient serves vehicle search when assistant.inventory_source is elasticsearch.
type ElasticsearchClient struct {
	Client *elasticsearch.Client
	Index  string
}

func NewElasticsearch(cfg config.ElasticsearchConfig) (*ElasticsearchClient, error) {
	esCfg := elasticsearch.Config{Addresses: cfg.Addresses}
	if cfg.Username != "" {
		esCfg.Username = cfg.Username
		esCfg.Password = cfg.Password
	}

	es, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}
	return &ElasticsearchClient{Client: es, Index: cfg.VehicleIndex}, nil
}

// Ping checks the cluster answers and the vehicle index exists.
func (c *ElasticsearchClient) Ping(ctx context.Context) error {
	res, err := c.Client.Indices.Exists([]string{c.Index}, c.Client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch ping failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch index %s unavailable: %s", c.Index, res.Status())
	}
	return nil
}
