// Package config loads application configuration from environment variables.
// All variables use the LEARN_ prefix.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/p-n-ai/pai-recommender/internal/catalog"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Database  DatabaseConfig
	Cache     CacheConfig
	Recommend RecommendConfig
	Log       LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int
	Host string
}

// CatalogConfig lists where the catalog may be loaded from.
type CatalogConfig struct {
	Paths  []string // file candidates, tried in order
	Table  string   // table read when the database is enabled
	Reload bool     // reload on SIGHUP
}

// DatabaseConfig holds PostgreSQL connection settings. An empty URL
// disables the database catalog source.
type DatabaseConfig struct {
	URL      string
	MaxConns int
	MinConns int
}

// CacheConfig holds Dragonfly/Redis settings for the result cache. An
// empty URL disables caching.
type CacheConfig struct {
	URL string
	TTL time.Duration
}

// RecommendConfig bounds recommendation sizes.
type RecommendConfig struct {
	DefaultTopK int
	MaxTopK     int
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with LEARN_ prefix.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("LEARN_SERVER_PORT", 8080),
			Host: envStr("LEARN_SERVER_HOST", "0.0.0.0"),
		},
		Catalog: CatalogConfig{
			Paths:  envList("LEARN_CATALOG_PATHS", catalog.DefaultPaths),
			Table:  envStr("LEARN_CATALOG_TABLE", "content"),
			Reload: envBool("LEARN_CATALOG_RELOAD", true),
		},
		Database: DatabaseConfig{
			URL:      envStr("LEARN_DATABASE_URL", ""),
			MaxConns: envInt("LEARN_DATABASE_MAX_CONNS", 5),
			MinConns: envInt("LEARN_DATABASE_MIN_CONNS", 1),
		},
		Cache: CacheConfig{
			URL: envStr("LEARN_CACHE_URL", ""),
			TTL: time.Duration(envInt("LEARN_CACHE_TTL", 300)) * time.Second,
		},
		Recommend: RecommendConfig{
			DefaultTopK: envInt("LEARN_RECOMMEND_TOP_K", 10),
			MaxTopK:     envInt("LEARN_RECOMMEND_MAX_TOP_K", 100),
		},
		Log: LogConfig{
			Level:  envStr("LEARN_LOG_LEVEL", "info"),
			Format: envStr("LEARN_LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("LEARN_SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Recommend.DefaultTopK < 1 {
		return fmt.Errorf("LEARN_RECOMMEND_TOP_K must be positive, got %d", c.Recommend.DefaultTopK)
	}
	if c.Recommend.MaxTopK < c.Recommend.DefaultTopK {
		return fmt.Errorf("LEARN_RECOMMEND_MAX_TOP_K (%d) must be at least LEARN_RECOMMEND_TOP_K (%d)",
			c.Recommend.MaxTopK, c.Recommend.DefaultTopK)
	}

	if c.Cache.TTL <= 0 {
		return fmt.Errorf("LEARN_CACHE_TTL must be positive")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LEARN_LOG_LEVEL must be debug, info, warn or error, got %q", c.Log.Level)
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("LEARN_LOG_FORMAT must be 'json' or 'text', got %q", c.Log.Format)
	}

	return nil
}

// HasDatabase returns true if the database catalog source is configured.
func (c *Config) HasDatabase() bool {
	return c.Database.URL != ""
}

// HasCache returns true if the result cache is configured.
func (c *Config) HasCache() bool {
	return c.Cache.URL != ""
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.EqualFold(v, "true") || v == "1"
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return append([]string(nil), fallback...)
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
