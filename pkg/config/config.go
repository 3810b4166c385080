// ABOUTME: Configuration management with YAML file, environment and default layers
// ABOUTME: Defines configuration structures for server, cache, connectors and ranking

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable override
const EnvPrefix = "AGGREGATOR"

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig `mapstructure:"server"`

	// Cache contains result cache configuration
	Cache CacheConfig `mapstructure:"cache"`

	// Aggregator contains fan-out defaults
	Aggregator AggregatorConfig `mapstructure:"aggregator"`

	// Ranking contains score adjustment limits
	Ranking RankingConfig `mapstructure:"ranking"`

	// Store contains the listing store configuration
	Store StoreConfig `mapstructure:"store"`

	// Signals contains the soft-signal store configuration
	Signals SignalsConfig `mapstructure:"signals"`

	// PartnerFeed configures the partner offers feed connector
	PartnerFeed PartnerFeedConfig `mapstructure:"partner_feed"`

	// Advisory configures the interference advisory service
	Advisory AdvisoryConfig `mapstructure:"advisory"`

	// Logging contains logger configuration
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string `mapstructure:"port"`

	// RateLimit is the number of requests allowed per client per window
	RateLimit int `mapstructure:"rate_limit"`

	// RateWindow is the rate limit window
	RateWindow time.Duration `mapstructure:"rate_window"`

	// CORSOrigins lists allowed CORS origins
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/sqlite/none)
	Type string `mapstructure:"type"`

	// TTL is how long a connector result is reused
	TTL time.Duration `mapstructure:"ttl"`

	// Redis contains Redis-specific configuration
	Redis RedisConfig `mapstructure:"redis"`

	// SQLite contains SQLite-specific configuration
	SQLite SQLiteConfig `mapstructure:"sqlite"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string `mapstructure:"address"`

	// Password is the Redis authentication password
	Password string `mapstructure:"password"`

	// DB is the Redis database number
	DB int `mapstructure:"db"`

	// Prefix namespaces every key this service writes
	Prefix string `mapstructure:"prefix"`
}

// SQLiteConfig holds SQLite cache configuration
type SQLiteConfig struct {
	// Path is the database file
	Path string `mapstructure:"path"`
}

// AggregatorConfig holds orchestrator defaults
type AggregatorConfig struct {
	// Concurrency caps simultaneous connector calls per request
	Concurrency int `mapstructure:"concurrency"`

	// Timeout bounds each connector call; 0 disables the guard
	Timeout time.Duration `mapstructure:"timeout"`

	// CredentialsFile is a YAML map of connector name to credential
	CredentialsFile string `mapstructure:"credentials_file"`
}

// RankingConfig bounds the enhancer pass of one ranking. The base score
// weights are fixed.
type RankingConfig struct {
	// AdjustBudget is the deadline shared by all adjustments of one ranking
	AdjustBudget time.Duration `mapstructure:"adjust_budget"`

	// AdjustConcurrency caps listings adjusted at once
	AdjustConcurrency int `mapstructure:"adjust_concurrency"`
}

// StoreConfig holds listing store configuration
type StoreConfig struct {
	// Path is the SQLite database file
	Path string `mapstructure:"path"`

	// Commodities is the internal connector's commodity allow-list
	Commodities []string `mapstructure:"commodities"`
}

// SignalsConfig holds soft-signal store configuration
type SignalsConfig struct {
	// Path is the JSON file holding buyer intents
	Path string `mapstructure:"path"`

	// Watch reloads the file when it changes on disk
	Watch bool `mapstructure:"watch"`
}

// PartnerFeedConfig holds partner feed connector configuration
type PartnerFeedConfig struct {
	// Name is the connector name; empty disables the connector
	Name string `mapstructure:"name"`

	// URL is the partner's RSS or Atom offers feed
	URL string `mapstructure:"url"`
}

// AdvisoryConfig holds advisory service configuration
type AdvisoryConfig struct {
	// URL is the service base URL; empty disables the client
	URL string `mapstructure:"url"`

	// Timeout bounds each lookup
	Timeout time.Duration `mapstructure:"timeout"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	// Level is one of debug, info, warn, error
	Level string `mapstructure:"level"`

	// Format is json or text
	Format string `mapstructure:"format"`

	// File enables rotated file output when set
	File string `mapstructure:"file"`

	// MaxSizeMB is the size at which the log file rotates
	MaxSizeMB int `mapstructure:"max_size_mb"`

	// MaxBackups is the number of rotated files kept
	MaxBackups int `mapstructure:"max_backups"`

	// MaxAgeDays is how long rotated files are kept
	MaxAgeDays int `mapstructure:"max_age_days"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.rate_limit", 100)
	v.SetDefault("server.rate_window", time.Minute)
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", 60*time.Second)
	v.SetDefault("cache.redis.address", "localhost:6379")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.redis.prefix", "listings")
	v.SetDefault("cache.sqlite.path", "cache.db")

	v.SetDefault("aggregator.concurrency", 5)
	v.SetDefault("aggregator.timeout", 10*time.Second)
	v.SetDefault("aggregator.credentials_file", "")

	v.SetDefault("ranking.adjust_budget", 500*time.Millisecond)
	v.SetDefault("ranking.adjust_concurrency", 32)

	v.SetDefault("store.path", "listings.db")
	v.SetDefault("store.commodities", []string{})

	v.SetDefault("signals.path", "signals.json")
	v.SetDefault("signals.watch", true)

	v.SetDefault("partner_feed.name", "")
	v.SetDefault("partner_feed.url", "")

	v.SetDefault("advisory.url", "")
	v.SetDefault("advisory.timeout", 150*time.Millisecond)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size_mb", 100)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age_days", 28)
}

// Load reads configuration from path (optional), then environment variables
// prefixed with AGGREGATOR_ (nested keys joined by underscores), then defaults.
// PORT is honored for the server port.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT"); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables and defaults only
func LoadFromEnv() (*Config, error) {
	return Load("")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.RateLimit < 0 {
		return errors.New("rate limit cannot be negative")
	}

	switch c.Cache.Type {
	case "memory", "redis", "sqlite", "none":
	default:
		return errors.New("cache type must be 'memory', 'redis', 'sqlite' or 'none'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Cache.Type == "sqlite" && c.Cache.SQLite.Path == "" {
		return errors.New("sqlite path cannot be empty when using sqlite cache")
	}

	if c.Cache.TTL <= 0 {
		return errors.New("cache ttl must be positive")
	}

	if c.Aggregator.Concurrency < 1 {
		return errors.New("aggregator concurrency must be at least 1")
	}

	if c.Aggregator.Timeout < 0 {
		return errors.New("aggregator timeout cannot be negative")
	}

	if c.Ranking.AdjustBudget <= 0 {
		return errors.New("ranking adjust budget must be positive")
	}

	if c.Ranking.AdjustConcurrency < 1 {
		return errors.New("ranking adjust concurrency must be at least 1")
	}

	if c.PartnerFeed.Name != "" && c.PartnerFeed.URL == "" {
		return errors.New("partner feed url cannot be empty when a partner feed is named")
	}

	switch c.Logging.Format {
	case "json", "text":
	default:
		return errors.New("logging format must be 'json' or 'text'")
	}

	return nil
}

// LoadCredentials reads a YAML map of connector name to credential.
// An empty path yields an empty map.
func LoadCredentials(path string) (map[string]string, error) {
	creds := map[string]string{}
	if path == "" {
		return creds, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}
	if creds == nil {
		creds = map[string]string{}
	}
	return creds, nil
}
