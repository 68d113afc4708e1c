// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Server        ServerConfig            `mapstructure:"server"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Assistant     AssistantConfig         `mapstructure:"assistant"`
	Financing     FinancingConfig         `mapstructure:"financing"`
	Notifications NotificationConfig      `mapstructure:"notifications"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Logging       LoggingConfig           `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

// ServerConfig controls the health/metrics listener.
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses    []string `mapstructure:"addresses"`
	Username     string   `mapstructure:"username"`
	Password     string   `mapstructure:"password"`
	VehicleIndex string   `mapstructure:"vehicle_index"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Inventory and session backends understood by AssistantConfig.
const (
	InventorySourcePostgres      = "postgres"
	InventorySourceElasticsearch = "elasticsearch"

	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// AssistantConfig wires the conversational assistant.
type AssistantConfig struct {
	InventorySource   string `mapstructure:"inventory_source"`
	SessionStore      string `mapstructure:"session_store"`
	SessionTTL        int    `mapstructure:"session_ttl"`         // seconds, 0 = no expiry
	InventoryCacheTTL int    `mapstructure:"inventory_cache_ttl"` // seconds, 0 = cache disabled
	RandomSeed        int64  `mapstructure:"random_seed"`         // 0 = seeded from the clock
}

// FinancingConfig holds the loan term bounds offered by the dealership.
type FinancingConfig struct {
	MinTermMonths int `mapstructure:"min_term_months"`
	MaxTermMonths int `mapstructure:"max_term_months"`
}

// NotificationConfig holds settings for the financing status notifications.
type NotificationConfig struct {
	AWSRegion string `mapstructure:"aws_region"`
	Email     struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email"`
	} `mapstructure:"email"`
	SMS struct {
		Enabled  bool   `mapstructure:"enabled"`
		SenderID string `mapstructure:"sender_id"`
	} `mapstructure:"sms"`
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"` // milliseconds
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SessionTTLDuration converts the configured session TTL.
func (a AssistantConfig) SessionTTLDuration() time.Duration {
	return time.Duration(a.SessionTTL) * time.Second
}

// InventoryCacheTTLDuration converts the configured inventory cache TTL.
func (a AssistantConfig) InventoryCacheTTLDuration() time.Duration {
	return time.Duration(a.InventoryCacheTTL) * time.Second
}
